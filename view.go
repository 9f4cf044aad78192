package main

import (
	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wlr"
	"deedles.dev/ximage/geom"
)

type viewSurfaceXDG struct {
	s wlr.XDGSurface
}

func (s viewSurfaceXDG) ForEachSurface(f compositor.SurfaceFunc) {
	s.s.ForEachSurface(surfaceFunc(f))
}

func (s viewSurfaceXDG) SurfaceAt(p geom.Point[float64]) (compositor.Surface, geom.Point[float64], bool) {
	surface, sx, sy, ok := s.s.SurfaceAt(p.X, p.Y)
	if !ok {
		return nil, p, false
	}
	return wlrSurface{surface}, geom.Pt(sx, sy), true
}

func (s viewSurfaceXDG) SetActivated(a bool) {
	s.s.Toplevel().SetActivated(a)
}

func (s viewSurfaceXDG) OnMap(f func()) compositor.Listener {
	return s.s.Surface().OnMap(func(wlr.Surface) { f() })
}

func (s viewSurfaceXDG) OnUnmap(f func()) compositor.Listener {
	return s.s.Surface().OnUnmap(func(wlr.Surface) { f() })
}

func (s viewSurfaceXDG) OnDestroy(f func()) compositor.Listener {
	return s.s.OnDestroy(func(wlr.XDGSurface) { f() })
}

func (server *Server) onNewXDGSurface(surface wlr.XDGSurface) {
	if surface.Role() != wlr.XDGSurfaceRoleTopLevel {
		return
	}

	server.comp.AddView(viewSurfaceXDG{s: surface}, server.newViewPosition())
}

// newViewPosition returns where a new view should go. New views are
// placed near the top-left of the active output.
func (server *Server) newViewPosition() geom.Point[int] {
	p := geom.Pt(10, 10)

	out := server.comp.ActiveOutput()
	if out == nil {
		return p
	}

	origin := server.comp.Layout().Coords(out.Device)
	return p.Add(geom.PConv[int](origin)).Add(out.UsableArea().Min)
}

func (server *Server) viewAt(p geom.Point[float64]) (view *compositor.View, surface wlr.Surface, sp geom.Point[float64]) {
	view, s, sp, ok := server.comp.ViewAt(p)
	if !ok {
		return nil, surface, sp
	}
	return view, s.(wlrSurface).s, sp
}
