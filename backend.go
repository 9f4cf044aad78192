package main

import (
	"image"
	"image/color"
	"time"

	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wlr"
	"deedles.dev/ximage/geom"
)

type wlrRenderer struct {
	r wlr.Renderer
}

func (r wlrRenderer) Begin(out compositor.OutputDevice, width, height int) {
	r.r.Begin(out.(wlrOutput).Output, width, height)
}

func (r wlrRenderer) Clear(c color.Color) {
	r.r.Clear(c)
}

func (r wlrRenderer) RenderTexture(t compositor.Texture, box geom.Rect[int], tr compositor.Transform, out compositor.OutputDevice) {
	m := wlr.ProjectBoxMatrix(
		box.ImageRect(),
		wlr.OutputTransform(tr).Invert(),
		0,
		out.(wlrOutput).Output.TransformMatrix(),
	)
	r.r.RenderTextureWithMatrix(t.(wlr.Texture), m, 1)
}

func (r wlrRenderer) End() {
	r.r.End()
}

type wlrLayout struct {
	l      wlr.OutputLayout
	server *Server
}

func (l wlrLayout) Coords(out compositor.OutputDevice) geom.Point[float64] {
	lo := l.l.Get(out.(wlrOutput).Output)
	return geom.Pt(float64(lo.X()), float64(lo.Y()))
}

func (l wlrLayout) AddAuto(out compositor.OutputDevice) {
	l.l.AddAuto(out.(wlrOutput).Output)
}

func (l wlrLayout) Add(out compositor.OutputDevice, p geom.Point[int]) {
	l.l.Add(out.(wlrOutput).Output, p.X, p.Y)
}

func (l wlrLayout) OutputAt(p geom.Point[float64]) (compositor.OutputDevice, bool) {
	out := l.l.OutputAt(p.X, p.Y)
	if out == (wlr.Output{}) {
		return nil, false
	}
	return wlrOutput{Output: out, server: l.server}, true
}

// wlrOutput is an output as the compositor sees it. Two wlrOutputs
// for the same underlying output are equal.
type wlrOutput struct {
	wlr.Output
	server *Server
}

func (out wlrOutput) Modes() []compositor.Mode {
	var modes []compositor.Mode
	for mode := range out.Output.Modes() {
		modes = append(modes, mode)
	}
	return modes
}

func (out wlrOutput) SetMode(mode compositor.Mode) {
	out.Output.SetMode(mode.(wlr.OutputMode))
}

func (out wlrOutput) SetScale(scale float64) {
	out.Output.SetScale(float32(scale))
}

func (out wlrOutput) SetTransform(tr compositor.Transform) {
	out.Output.SetTransform(wlr.OutputTransform(tr))
}

func (out wlrOutput) Scale() float64 {
	return float64(out.Output.Scale())
}

func (out wlrOutput) InitRender() error {
	out.Output.InitRender(out.server.allocator, out.server.renderer)
	return nil
}

func (out wlrOutput) AttachRender() bool {
	_, err := out.Output.AttachRender()
	return err == nil
}

func (out wlrOutput) RenderSoftwareCursors() {
	out.Output.RenderSoftwareCursors(image.ZR)
}

func (out wlrOutput) Commit() error {
	out.Output.Commit()
	return nil
}

func (out wlrOutput) OnFrame(f func()) compositor.Listener {
	return out.Output.OnFrame(func(wlr.Output) { f() })
}

func (out wlrOutput) OnDestroy(f func()) compositor.Listener {
	return out.Output.OnDestroy(func(wlr.Output) { f() })
}

type wlrSurface struct {
	s wlr.Surface
}

func (s wlrSurface) Texture() (compositor.Texture, bool) {
	texture := s.s.GetTexture()
	if !texture.Valid() {
		return nil, false
	}
	return texture, true
}

func (s wlrSurface) Size() geom.Point[int] {
	current := s.s.Current()
	return geom.Pt(current.Width(), current.Height())
}

func (s wlrSurface) BufferTransform() compositor.Transform {
	return compositor.Transform(s.s.Current().Transform())
}

func (s wlrSurface) SendFrameDone(t time.Time) {
	s.s.SendFrameDone(t)
}

func surfaceFunc(f compositor.SurfaceFunc) func(wlr.Surface, int, int) {
	return func(s wlr.Surface, sx, sy int) {
		f(wlrSurface{s}, geom.Pt(sx, sy))
	}
}
