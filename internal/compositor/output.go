package compositor

import (
	"errors"
	"fmt"
	"iter"

	"deedles.dev/ximage/geom"
	"golang.org/x/exp/slices"
)

var ErrRenderInit = errors.New("failed to initialize output rendering")

// OutputConfig is user configuration for a specific output.
type OutputConfig struct {
	Name string

	// X and Y are the position of the output in the layout. If both
	// are -1, the output is placed automatically.
	X, Y int

	// Width and Height select a mode. If either is zero, or no mode
	// matches, the default mode is used.
	Width, Height int

	// Scale and Transform are only applied if they are non-zero.
	Scale     float64
	Transform Transform
}

type frameState int

const (
	frameIdle frameState = iota
	frameRendering
	frameCommitted
)

// Output is a display that the compositor draws into.
type Output struct {
	Device OutputDevice

	bands [bandCount]Stack[*Layer]

	usable        geom.Rect[int]
	keyboardLayer *Layer

	state     frameState
	destroyed bool

	frame   Listener
	destroy Listener
}

// Layers returns the layers in the given band, frontmost first.
func (out *Output) Layers(band Band) *Stack[*Layer] {
	return &out.bands[band]
}

// UsableArea is the part of the output, in output-local coordinates,
// that is left over for views after layers have been arranged.
func (out *Output) UsableArea() geom.Rect[int] {
	return out.usable
}

// KeyboardLayer returns the topmost layer in the top or overlay bands
// that wants keyboard input, if there is one.
func (out *Output) KeyboardLayer() *Layer {
	return out.keyboardLayer
}

// AddOutput starts managing a newly plugged in output. If the output
// can't be set up, it is left alone and an error is returned.
func (c *Compositor) AddOutput(dev OutputDevice) (*Output, error) {
	err := dev.InitRender()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRenderInit, dev.Name(), err)
	}

	config := c.outputConfig(dev.Name())
	c.setOutputMode(dev, config)

	out := Output{
		Device: dev,
	}
	if config != nil {
		c.configureOutput(&out, config)
	}

	out.frame = dev.OnFrame(func() { c.onFrame(&out) })
	out.destroy = dev.OnDestroy(func() { c.onOutputDestroy(&out) })

	c.outputs = append(c.outputs, &out)
	if c.active == nil {
		c.active = &out
	}

	c.layoutOutput(&out, config)
	dev.CreateGlobal()

	c.Arrange(&out)

	logger().Info("new output", "name", dev.Name(), "outputs", len(c.outputs))
	return &out, nil
}

func (c *Compositor) outputConfig(name string) *OutputConfig {
	i := slices.IndexFunc(c.OutputConfigs, func(config OutputConfig) bool {
		return config.Name == name
	})
	if i < 0 {
		return nil
	}
	return &c.OutputConfigs[i]
}

func (c *Compositor) configureOutput(out *Output, config *OutputConfig) {
	if config.Scale != 0 {
		out.Device.SetScale(config.Scale)
	}

	if config.Transform != 0 {
		out.Device.SetTransform(config.Transform)
	}
}

func (c *Compositor) layoutOutput(out *Output, config *OutputConfig) {
	if (config == nil) || (config.X == -1) && (config.Y == -1) {
		c.layout.AddAuto(out.Device)
		return
	}

	c.layout.Add(out.Device, geom.Pt(config.X, config.Y))
}

// setOutputMode picks the mode that the config asks for or, failing
// that, the last mode that the output lists.
func (c *Compositor) setOutputMode(dev OutputDevice, config *OutputConfig) {
	modes := dev.Modes()
	if len(modes) == 0 {
		return
	}

	if (config != nil) && (config.Width != 0) && (config.Height != 0) {
		for _, mode := range modes {
			if (mode.Width() == int32(config.Width)) && (mode.Height() == int32(config.Height)) {
				dev.SetMode(mode)
				return
			}
		}
		logger().Warn("no matching mode for output", "name", dev.Name(), "width", config.Width, "height", config.Height)
	}

	dev.SetMode(modes[len(modes)-1])
}

func (c *Compositor) onOutputDestroy(out *Output) {
	out.frame.Destroy()
	out.destroy.Destroy()
	out.destroyed = true

	i := slices.Index(c.outputs, out)
	if i >= 0 {
		c.outputs = slices.Delete(c.outputs, i, i+1)
	}

	if c.active == out {
		c.active = nil
		if len(c.outputs) != 0 {
			c.active = c.outputs[len(c.outputs)-1]
		}
	}

	out.keyboardLayer = nil
	for band := range out.bands {
		for _, layer := range out.bands[band].clear() {
			layer.detach()
		}
	}

	logger().Info("output destroyed", "name", out.Device.Name(), "outputs", len(c.outputs))
}

// ActiveOutput returns the output that was last active. If none has
// been marked active, the most recently added output is returned. If
// there are no outputs, it returns nil.
func (c *Compositor) ActiveOutput() *Output {
	if len(c.outputs) == 0 {
		return nil
	}
	if c.active != nil {
		return c.active
	}
	return c.outputs[len(c.outputs)-1]
}

// SetActiveOutput marks out as the active output. Outputs that have
// been destroyed are ignored.
func (c *Compositor) SetActiveOutput(out *Output) {
	if (out == nil) || out.destroyed {
		return
	}
	c.active = out
}

// Outputs yields the live outputs in the order in which they were
// added.
func (c *Compositor) Outputs() iter.Seq[*Output] {
	return func(yield func(*Output) bool) {
		for _, out := range c.outputs {
			if !yield(out) {
				return
			}
		}
	}
}

// OutputAt returns the output at the global point p.
func (c *Compositor) OutputAt(p geom.Point[float64]) *Output {
	dev, ok := c.layout.OutputAt(p)
	if !ok {
		return nil
	}
	return c.outputFor(dev)
}

func (c *Compositor) outputFor(dev OutputDevice) *Output {
	i := slices.IndexFunc(c.outputs, func(out *Output) bool {
		return out.Device == dev
	})
	if i < 0 {
		return nil
	}
	return c.outputs[i]
}
