package compositor

import "deedles.dev/ximage/geom"

// Anchor is a set of output edges that a layer is anchored to.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight

	anchorHoriz = AnchorLeft | AnchorRight
	anchorVert  = AnchorTop | AnchorBottom
)

type Margin struct {
	Top, Right, Bottom, Left int
}

// LayerState is the layer-shell state that a client has set on its
// surface.
type LayerState struct {
	Anchor              Anchor
	DesiredSize         geom.Point[int]
	Margin              Margin
	ExclusiveZone       int
	KeyboardInteractive bool
}

var arrangeOrder = [...]Band{BandOverlay, BandTop, BandBottom, BandBackground}

// Arrange lays out every layer on out and configures their surfaces
// with their new sizes.
func (c *Compositor) Arrange(out *Output) {
	c.arrange(out, nil)
}

// arrange lays out out's layers. If initial is not nil, its pending
// state is used instead of its current one, as it has not had a
// chance to commit anything yet.
func (c *Compositor) arrange(out *Output, initial *Layer) {
	w, h := out.Device.EffectiveResolution()
	full := geom.Rt(0, 0, w, h)

	// TODO: Shrink usable by the exclusive zones of anchored layers.
	usable := full
	for _, band := range arrangeOrder {
		c.arrangeBand(out, band, full, usable, true, initial)
	}
	out.usable = usable

	for _, band := range arrangeOrder {
		c.arrangeBand(out, band, full, usable, false, initial)
	}

	out.keyboardLayer = nil
	for _, band := range [...]Band{BandOverlay, BandTop} {
		for layer := range out.bands[band].All() {
			if layer.state(initial).KeyboardInteractive {
				out.keyboardLayer = layer
				return
			}
		}
	}
}

func (layer *Layer) state(initial *Layer) LayerState {
	if layer == initial {
		return layer.Surface.Pending()
	}
	return layer.Surface.Current()
}

func (c *Compositor) arrangeBand(out *Output, band Band, full, usable geom.Rect[int], exclusive bool, initial *Layer) {
	for _, layer := range out.bands[band].snapshot() {
		state := layer.state(initial)
		if exclusive != (state.ExclusiveZone > 0) {
			continue
		}

		bounds := usable
		if state.ExclusiveZone == -1 {
			bounds = full
		}

		r, ok := arrangeLayer(state, bounds)
		if !ok {
			logger().Debug("closing layer with no room", "output", out.Device.Name(), "band", band)
			layer.Surface.Close()
			continue
		}

		layer.geo = r
		layer.Surface.Configure(r.Dx(), r.Dy())
	}
}

// arrangeLayer calculates the box of a layer with the given state
// inside of bounds. It returns false if the layer doesn't fit.
func arrangeLayer(state LayerState, bounds geom.Rect[int]) (geom.Rect[int], bool) {
	var x, y int
	w, h := state.DesiredSize.X, state.DesiredSize.Y

	switch {
	case (state.Anchor&anchorHoriz != 0) && (w == 0):
		x = bounds.Min.X
		w = bounds.Dx()
	case state.Anchor&AnchorLeft != 0:
		x = bounds.Min.X
	case state.Anchor&AnchorRight != 0:
		x = bounds.Min.X + (bounds.Dx() - w)
	default:
		x = bounds.Min.X + (bounds.Dx()/2 - w/2)
	}

	switch {
	case (state.Anchor&anchorVert != 0) && (h == 0):
		y = bounds.Min.Y
		h = bounds.Dy()
	case state.Anchor&AnchorTop != 0:
		y = bounds.Min.Y
	case state.Anchor&AnchorBottom != 0:
		y = bounds.Min.Y + (bounds.Dy() - h)
	default:
		y = bounds.Min.Y + (bounds.Dy()/2 - h/2)
	}

	switch {
	case state.Anchor&anchorHoriz == anchorHoriz:
		x += state.Margin.Left
		w -= state.Margin.Left + state.Margin.Right
	case state.Anchor&AnchorLeft != 0:
		x += state.Margin.Left
	case state.Anchor&AnchorRight != 0:
		x -= state.Margin.Right
	}

	switch {
	case state.Anchor&anchorVert == anchorVert:
		y += state.Margin.Top
		h -= state.Margin.Top + state.Margin.Bottom
	case state.Anchor&AnchorTop != 0:
		y += state.Margin.Top
	case state.Anchor&AnchorBottom != 0:
		y -= state.Margin.Bottom
	}

	if (w < 0) || (h < 0) {
		return geom.Rect[int]{}, false
	}

	return geom.Rect[int]{Min: geom.Pt(x, y), Max: geom.Pt(x+w, y+h)}, true
}
