package compositor

import (
	"image/color"
	"time"

	"deedles.dev/ximage/geom"
)

// Texture is an opaque handle to a texture owned by the rendering
// backend.
type Texture any

// A Listener is an event subscription. Destroy unsubscribes it.
type Listener interface {
	Destroy()
}

// Surface is a single client surface.
type Surface interface {
	// Texture returns the surface's current texture. It returns false
	// if the surface has not committed a buffer yet.
	Texture() (Texture, bool)

	// Size is the committed size of the surface in surface-local
	// coordinates.
	Size() geom.Point[int]

	BufferTransform() Transform
	SendFrameDone(time.Time)
}

// SurfaceFunc is called for each surface in a surface tree along with
// the surface's offset from the root of the tree.
type SurfaceFunc func(s Surface, offset geom.Point[int])

// Mode is a display mode supported by an output.
type Mode interface {
	Width() int32
	Height() int32
}

// OutputDevice is the backend's side of an output.
type OutputDevice interface {
	Name() string

	Modes() []Mode
	SetMode(Mode)
	SetScale(float64)
	SetTransform(Transform)

	Scale() float64
	EffectiveResolution() (width, height int)

	// InitRender prepares the output for rendering. It is called once
	// when the output is created.
	InitRender() error

	// AttachRender acquires the output's render target for a frame. It
	// returns false if the output can't currently be rendered to.
	AttachRender() bool

	RenderSoftwareCursors()
	Commit() error
	CreateGlobal()

	OnFrame(func()) Listener
	OnDestroy(func()) Listener
}

// Renderer is the rendering backend.
type Renderer interface {
	Begin(out OutputDevice, width, height int)
	Clear(color.Color)

	// RenderTexture draws t into box, in the output's buffer
	// coordinates. tr is the transform that the client applied to its
	// buffer, which the renderer undoes before applying the output's own
	// transform.
	RenderTexture(t Texture, box geom.Rect[int], tr Transform, out OutputDevice)
	End()
}

// Layout places outputs in the shared global coordinate space.
type Layout interface {
	// Coords returns the position of the output in global coordinates.
	Coords(out OutputDevice) geom.Point[float64]

	AddAuto(out OutputDevice)
	Add(out OutputDevice, p geom.Point[int])
	OutputAt(p geom.Point[float64]) (OutputDevice, bool)
}

// LayerSurface is a layer-shell surface.
type LayerSurface interface {
	// Output returns the output that the client asked for, if any.
	Output() (OutputDevice, bool)
	SetOutput(OutputDevice)

	Current() LayerState
	Pending() LayerState

	ForEachSurface(SurfaceFunc)
	Configure(width, height int)
	Close()

	OnMap(func()) Listener
	OnUnmap(func()) Listener
	OnCommit(func()) Listener
	OnDestroy(func()) Listener
}

// ViewSurface is the shell side of a regular application window.
type ViewSurface interface {
	ForEachSurface(SurfaceFunc)
	SurfaceAt(p geom.Point[float64]) (s Surface, sp geom.Point[float64], ok bool)
	SetActivated(bool)

	OnMap(func()) Listener
	OnUnmap(func()) Listener
	OnDestroy(func()) Listener
}

func destroyListeners(listeners []Listener) {
	for _, lis := range listeners {
		lis.Destroy()
	}
}
