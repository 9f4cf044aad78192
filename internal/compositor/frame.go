package compositor

import (
	"time"

	"deedles.dev/xiter"
	"deedles.dev/ximage/geom"
)

// renderContext is everything needed to draw one layer or view into
// one output.
type renderContext struct {
	out  *Output
	r    Renderer
	when time.Time

	// origin is where the root of the surface tree being drawn ends up
	// in output-local coordinates.
	origin geom.Point[float64]
}

func (c *Compositor) onFrame(out *Output) {
	err := c.RenderFrame(out)
	if err != nil {
		logger().Error("render frame", "output", out.Device.Name(), "err", err)
	}
}

// RenderFrame draws and commits a full frame for out. If the output
// can't be rendered to right now, the frame is skipped.
func (c *Compositor) RenderFrame(out *Output) error {
	if out.destroyed {
		logger().Warn("frame for destroyed output", "output", out.Device.Name())
		return nil
	}
	if out.state != frameIdle {
		return nil
	}

	if !out.Device.AttachRender() {
		logger().Debug("output not ready for rendering", "output", out.Device.Name())
		return nil
	}

	out.state = frameRendering
	defer func() { out.state = frameIdle }()

	now := c.Now()
	w, h := out.Device.EffectiveResolution()
	c.renderer.Begin(out.Device, w, h)

	// TODO: Render an actual background once configurable backgrounds
	// exist.
	c.renderer.Clear(c.Background)

	c.renderLayers(now, out, BandBackground)
	c.renderLayers(now, out, BandBottom)
	c.renderViews(now, out)
	c.renderLayers(now, out, BandTop)
	c.renderLayers(now, out, BandOverlay)

	out.Device.RenderSoftwareCursors()
	c.renderer.End()

	out.state = frameCommitted
	return out.Device.Commit()
}

func (c *Compositor) renderLayers(now time.Time, out *Output, band Band) {
	offset := OutputOffset(c.layout, out.Device)
	for layer := range xiter.Filter(out.bands[band].Backward(), (*Layer).Mapped) {
		// Layer geometry is output-local, so lift it into the layout
		// before the output offset is applied.
		global := Resolve(c.layout, out.Device, geom.PConv[float64](layer.geo.Min))
		rc := renderContext{
			out:    out,
			r:      c.renderer,
			when:   now,
			origin: offset.Add(global),
		}
		layer.Surface.ForEachSurface(rc.renderSurface)
	}
}

func (c *Compositor) renderViews(now time.Time, out *Output) {
	offset := OutputOffset(c.layout, out.Device)
	for view := range xiter.Filter(c.views.Backward(), (*View).Mapped) {
		rc := renderContext{
			out:    out,
			r:      c.renderer,
			when:   now,
			origin: offset.Add(geom.PConv[float64](view.Position)),
		}
		view.Surface.ForEachSurface(rc.renderSurface)
	}
}

// renderSurface draws one surface of a tree at its offset from the
// tree's root and tells the client that it can start on its next
// frame.
func (rc *renderContext) renderSurface(s Surface, offset geom.Point[int]) {
	defer s.SendFrameDone(rc.when)

	texture, ok := s.Texture()
	if !ok {
		return
	}

	dev := rc.out.Device
	scale := dev.Scale()
	p := rc.origin.Add(geom.PConv[float64](offset)).Mul(scale)
	size := geom.PConv[float64](s.Size()).Mul(scale)

	pos := geom.PConv[int](p)
	box := geom.Rect[int]{Min: pos, Max: pos.Add(geom.PConv[int](size))}

	rc.r.RenderTexture(texture, box, s.BufferTransform(), dev)
}
