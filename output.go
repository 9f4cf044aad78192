package main

import (
	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wlr"
	"deedles.dev/ximage/geom"
)

func (server *Server) outputAt(p geom.Point[float64]) *compositor.Output {
	return server.comp.OutputAt(p)
}

func (server *Server) onNewOutput(wout wlr.Output) {
	_, err := server.comp.AddOutput(wlrOutput{Output: wout, server: server})
	if err != nil {
		wlr.Log(wlr.Error, "add output: %v", err)
		return
	}

	// Apply the mode picked for the output.
	wout.Commit()
	server.cursorMgr.SetCursorImage("left_ptr", server.cursor)
}
