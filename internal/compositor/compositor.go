// Package compositor decides when, in what order, and where on each
// output the compositor's surfaces get drawn, and keeps track of the
// outputs themselves.
//
// Everything in this package runs on the display's event loop, so
// nothing in it is safe for concurrent use.
package compositor

import (
	"image/color"
	"time"
)

// DefaultBackground is what outputs are cleared to before anything is
// drawn on them.
var DefaultBackground color.Color = color.NRGBA{0x40, 0x40, 0x40, 0xFF}

// Compositor holds the live outputs and views.
type Compositor struct {
	// Background is the color that outputs are cleared to each frame.
	Background color.Color

	// OutputConfigs are matched by name against new outputs.
	OutputConfigs []OutputConfig

	// Now returns the timestamp given to a frame. It defaults to
	// time.Now.
	Now func() time.Time

	renderer Renderer
	layout   Layout

	outputs []*Output
	active  *Output

	views   Stack[*View]
	focused *View
}

// New returns a Compositor that draws with renderer and places
// outputs in layout.
func New(renderer Renderer, layout Layout) *Compositor {
	return &Compositor{
		Background: DefaultBackground,
		Now:        time.Now,
		renderer:   renderer,
		layout:     layout,
	}
}

// Layout returns the output layout that the compositor uses.
func (c *Compositor) Layout() Layout {
	return c.layout
}
