package main

import (
	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wlr"
)

// layerSurface adapts a layer-shell surface. deedles.dev/wlr only
// exposes the wlr.Surface behind a wlr_layer_surface_v1, so events and
// drawing go through that and the output is tracked here.
//
// TODO: Read the client's layer, anchor, size, margins and exclusive
// zone, and send configure and close events, once deedles.dev/wlr
// binds wlr_layer_surface_v1's state and functions.
type layerSurface struct {
	s   wlr.LayerSurfaceV1
	out compositor.OutputDevice
}

func (s *layerSurface) Output() (compositor.OutputDevice, bool) {
	return s.out, s.out != nil
}

func (s *layerSurface) SetOutput(out compositor.OutputDevice) {
	s.out = out
}

func (s *layerSurface) Current() compositor.LayerState {
	return compositor.LayerState{}
}

func (s *layerSurface) Pending() compositor.LayerState {
	return compositor.LayerState{}
}

func (s *layerSurface) ForEachSurface(f compositor.SurfaceFunc) {
	s.s.Surface().ForEachSurface(surfaceFunc(f))
}

func (s *layerSurface) Configure(width, height int) {}

func (s *layerSurface) Close() {}

func (s *layerSurface) OnMap(f func()) compositor.Listener {
	return s.s.Surface().OnMap(func(wlr.Surface) { f() })
}

func (s *layerSurface) OnUnmap(f func()) compositor.Listener {
	return s.s.Surface().OnUnmap(func(wlr.Surface) { f() })
}

func (s *layerSurface) OnCommit(f func()) compositor.Listener {
	return s.s.Surface().OnCommit(func(wlr.Surface) { f() })
}

func (s *layerSurface) OnDestroy(f func()) compositor.Listener {
	return s.s.Surface().OnDestroy(func(wlr.Surface) { f() })
}

func (server *Server) onNewLayerSurface(surface wlr.LayerSurfaceV1) {
	_, err := server.comp.AddLayer(&layerSurface{s: surface}, compositor.BandTop)
	if err != nil {
		wlr.Log(wlr.Error, "new layer surface: %v", err)
	}
}
