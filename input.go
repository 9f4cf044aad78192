package main

import (
	"time"

	"deedles.dev/wlr"
	"deedles.dev/ximage/geom"
)

func (server *Server) onNewInput(device wlr.InputDevice) {
	switch device.Type() {
	case wlr.InputDeviceTypePointer:
		server.addPointer(device.Pointer())
	default:
		wlr.Log(wlr.Debug, "ignoring input device %q", device.Name())
	}
}

func (server *Server) addPointer(dev wlr.Pointer) {
	server.cursor.AttachInputDevice(dev.Base())
	server.seat.SetCapabilities(server.seat.Capabilities() | wlr.SeatCapabilityPointer)
	server.cursorMgr.SetCursorImage("left_ptr", server.cursor)

	server.pointers = append(server.pointers, dev)
}

func (server *Server) cursorCoords() geom.Point[float64] {
	return geom.Pt(server.cursor.X(), server.cursor.Y())
}

func (server *Server) onCursorMotion(dev wlr.Pointer, t time.Time, dx, dy float64) {
	server.cursor.Move(dev.Base(), dx, dy)
	server.cursorMoved(t)
}

func (server *Server) onCursorMotionAbsolute(dev wlr.Pointer, t time.Time, x, y float64) {
	server.cursor.WarpAbsolute(dev.Base(), x, y)
	server.cursorMoved(t)
}

// cursorMoved makes the output under the cursor the active one and
// passes the motion on to the surface under it.
func (server *Server) cursorMoved(t time.Time) {
	p := server.cursorCoords()
	if out := server.outputAt(p); out != nil {
		server.comp.SetActiveOutput(out)
	}

	_, surface, sp := server.viewAt(p)
	if !surface.Valid() {
		server.cursorMgr.SetCursorImage("left_ptr", server.cursor)
		server.seat.PointerNotifyClearFocus()
		return
	}

	focus := server.seat.PointerState().FocusedSurface() != surface
	server.seat.PointerNotifyEnter(surface, sp.X, sp.Y)
	if !focus {
		server.seat.PointerNotifyMotion(t, sp.X, sp.Y)
	}
}

func (server *Server) onCursorButton(dev wlr.Pointer, t time.Time, b wlr.CursorButton, state wlr.ButtonState) {
	if state == wlr.ButtonPressed {
		view, _, _ := server.viewAt(server.cursorCoords())
		server.comp.Focus(view)
	}

	server.seat.PointerNotifyButton(t, b, state)
}

func (server *Server) onCursorAxis(dev wlr.Pointer, t time.Time, source wlr.AxisSource, orient wlr.AxisOrientation, delta float64, deltaDiscrete int32) {
	server.seat.PointerNotifyAxis(t, orient, delta, deltaDiscrete, source)
}

func (server *Server) onCursorFrame() {
	server.seat.PointerNotifyFrame()
}
