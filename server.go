package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wc/internal/config"
	"deedles.dev/wlr"
)

type Server struct {
	Startup string
	Config  config.Config

	display wlr.Display

	allocator    wlr.Allocator
	backend      wlr.Backend
	cursor       wlr.Cursor
	outputLayout wlr.OutputLayout
	renderer     wlr.Renderer
	seat         wlr.Seat
	cursorMgr    wlr.XCursorManager
	xdgShell     wlr.XDGShell
	layerShell   wlr.LayerShellV1

	comp *compositor.Compositor

	pointers []wlr.Pointer

	newOutput            wlr.Listener
	newInput             wlr.Listener
	cursorMotion         wlr.Listener
	cursorMotionAbsolute wlr.Listener
	cursorButton         wlr.Listener
	cursorAxis           wlr.Listener
	cursorFrame          wlr.Listener

	newXDGSurface   wlr.Listener
	newLayerSurface wlr.Listener
}

func (server *Server) Init() error {
	server.display = wlr.CreateDisplay()

	server.backend = wlr.AutocreateBackend(server.display)
	server.renderer = wlr.AutocreateRenderer(server.backend)
	server.renderer.InitWLDisplay(server.display)
	server.allocator = wlr.AutocreateAllocator(server.backend, server.renderer)

	wlr.CreateCompositor(server.display, server.renderer)
	wlr.CreateDataDeviceManager(server.display)

	server.outputLayout = wlr.CreateOutputLayout()

	server.comp = compositor.New(
		wlrRenderer{server.renderer},
		wlrLayout{l: server.outputLayout, server: server},
	)
	server.comp.Background = server.Config.Background
	server.comp.OutputConfigs = server.Config.Outputs

	server.cursor = wlr.CreateCursor()
	server.cursor.AttachOutputLayout(server.outputLayout)
	server.cursorMgr = wlr.CreateXCursorManager("", 24)
	server.cursorMgr.Load(1)

	server.seat = wlr.CreateSeat(server.display, "seat0")

	server.xdgShell = wlr.CreateXDGShell(server.display)
	server.layerShell = wlr.CreateLayerShellV1(server.display)

	server.newOutput = server.backend.OnNewOutput(server.onNewOutput)
	server.newInput = server.backend.OnNewInput(server.onNewInput)
	server.cursorMotion = server.cursor.OnMotion(server.onCursorMotion)
	server.cursorMotionAbsolute = server.cursor.OnMotionAbsolute(server.onCursorMotionAbsolute)
	server.cursorButton = server.cursor.OnButton(server.onCursorButton)
	server.cursorAxis = server.cursor.OnAxis(server.onCursorAxis)
	server.cursorFrame = server.cursor.OnFrame(server.onCursorFrame)
	server.newXDGSurface = server.xdgShell.OnNewSurface(server.onNewXDGSurface)
	server.newLayerSurface = server.layerShell.OnNewSurface(server.onNewLayerSurface)

	return nil
}

func (server *Server) Run() error {
	socket, err := server.display.AddSocketAuto()
	if err != nil {
		return fmt.Errorf("add socket: %w", err)
	}

	err = server.backend.Start()
	if err != nil {
		server.backend.Destroy()
		server.display.Destroy()
		return fmt.Errorf("start backend: %w", err)
	}

	err = os.Setenv("WAYLAND_DISPLAY", socket)
	if err != nil {
		return fmt.Errorf("set WAYLAND_DISPLAY: %w", err)
	}
	wlr.Log(wlr.Info, "Running Wayland compositor on WAYLAND_DISPLAY=%s", socket)

	if server.Startup != "" {
		server.exec(server.Startup)
	}

	server.display.Run()
	return server.shutdown()
}

func (server *Server) exec(command string) {
	wlr.Log(wlr.Info, "Executing %q", command)

	cmd := exec.Command("/bin/sh", "-c", command)
	err := cmd.Start()
	if err != nil {
		wlr.Log(wlr.Error, "start %q: %v", command, err)
		return
	}

	go func() {
		err := cmd.Wait()
		var exit *exec.ExitError
		if err != nil && !errors.As(err, &exit) {
			wlr.Log(wlr.Error, "wait for %q: %v", command, err)
		}
	}()
}

func (server *Server) shutdown() error {
	for _, lis := range []wlr.Listener{
		server.newOutput,
		server.newInput,
		server.cursorMotion,
		server.cursorMotionAbsolute,
		server.cursorButton,
		server.cursorAxis,
		server.cursorFrame,
		server.newXDGSurface,
		server.newLayerSurface,
	} {
		lis.Destroy()
	}

	server.display.DestroyClients()
	server.display.Destroy()
	server.cursorMgr.Destroy()
	server.cursor.Destroy()
	server.outputLayout.Destroy()
	return nil
}
