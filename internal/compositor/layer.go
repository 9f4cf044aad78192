package compositor

import (
	"errors"
	"fmt"

	"deedles.dev/ximage/geom"
)

var (
	ErrNoOutput = errors.New("no output available")
	ErrBadBand  = errors.New("bad layer band")
)

// Band is one of the four fixed stacking bands of the layer shell.
type Band int

const (
	BandBackground Band = iota
	BandBottom
	BandTop
	BandOverlay

	bandCount = iota
)

func (b Band) Valid() bool {
	return (b >= 0) && (b < bandCount)
}

func (b Band) String() string {
	switch b {
	case BandBackground:
		return "background"
	case BandBottom:
		return "bottom"
	case BandTop:
		return "top"
	case BandOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// Layer is a layer-shell surface placed in one band of one output.
type Layer struct {
	Surface LayerSurface

	comp   *Compositor
	out    *Output
	band   Band
	geo    geom.Rect[int]
	mapped bool

	listeners []Listener
}

// Output returns the output that the layer is on, or nil if that
// output has gone away.
func (layer *Layer) Output() *Output {
	return layer.out
}

func (layer *Layer) Band() Band {
	return layer.band
}

// Geometry is the layer's arranged box in output-local coordinates.
func (layer *Layer) Geometry() geom.Rect[int] {
	return layer.geo
}

func (layer *Layer) Mapped() bool {
	return layer.mapped
}

// AddLayer starts managing a new layer-shell surface in the given
// band. If the client didn't ask for a specific output, the layer is
// put on the active one. If the layer can't be placed, the surface is
// closed and an error is returned.
func (c *Compositor) AddLayer(surface LayerSurface, band Band) (*Layer, error) {
	out := c.layerOutput(surface)
	if out == nil {
		surface.Close()
		return nil, ErrNoOutput
	}

	if !band.Valid() {
		logger().Error("bad surface layer", "band", int(band))
		surface.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadBand, band)
	}

	layer := Layer{
		Surface: surface,
		comp:    c,
		band:    band,
	}
	layer.listeners = []Listener{
		surface.OnMap(layer.onMap),
		surface.OnUnmap(layer.onUnmap),
		surface.OnCommit(layer.onCommit),
		surface.OnDestroy(layer.onDestroy),
	}

	out.bands[band].Push(&layer)
	layer.out = out

	c.arrange(out, &layer)
	return &layer, nil
}

func (c *Compositor) layerOutput(surface LayerSurface) *Output {
	dev, ok := surface.Output()
	if ok {
		return c.outputFor(dev)
	}

	out := c.ActiveOutput()
	if out != nil {
		surface.SetOutput(out.Device)
	}
	return out
}

// SetBand moves the layer into another band of its output, putting
// it at the front of that band.
func (layer *Layer) SetBand(band Band) error {
	if !band.Valid() {
		return fmt.Errorf("%w: %v", ErrBadBand, band)
	}
	if layer.out == nil {
		return ErrNoOutput
	}

	layer.out.bands[layer.band].Remove(layer)
	layer.band = band
	layer.out.bands[band].Push(layer)
	layer.comp.Arrange(layer.out)
	return nil
}

func (layer *Layer) onMap() {
	layer.mapped = true
}

func (layer *Layer) onUnmap() {
	layer.mapped = false
}

func (layer *Layer) onCommit() {
	if layer.out == nil {
		return
	}
	layer.comp.Arrange(layer.out)
}

func (layer *Layer) onDestroy() {
	destroyListeners(layer.listeners)
	layer.listeners = nil

	if layer.out != nil {
		layer.out.bands[layer.band].Remove(layer)
		if layer.out.keyboardLayer == layer {
			layer.out.keyboardLayer = nil
		}
		layer.out = nil
	}

	layer.mapped = false
}

// detach cuts the layer off from its output when the output goes
// away. The surface is closed and the client is expected to destroy
// it.
func (layer *Layer) detach() {
	layer.out = nil
	layer.mapped = false
	layer.Surface.Close()
}
