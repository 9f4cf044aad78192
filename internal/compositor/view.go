package compositor

import "deedles.dev/ximage/geom"

// View is a regular application window. Views aren't tied to any one
// output.
type View struct {
	Surface ViewSurface

	// Position is the global position of the view's top-left corner.
	Position geom.Point[int]

	comp   *Compositor
	mapped bool

	listeners []Listener
}

func (view *View) Mapped() bool {
	return view.mapped
}

// AddView starts managing a new window. It goes in front of every
// other view, but isn't drawn until its surface is mapped.
func (c *Compositor) AddView(surface ViewSurface, p geom.Point[int]) *View {
	view := View{
		Surface:  surface,
		Position: p,
		comp:     c,
	}
	view.listeners = []Listener{
		surface.OnMap(view.onMap),
		surface.OnUnmap(view.onUnmap),
		surface.OnDestroy(view.onDestroy),
	}

	c.views.Push(&view)
	return &view
}

// Views returns the stack of views, frontmost first.
func (c *Compositor) Views() *Stack[*View] {
	return &c.views
}

func (view *View) onMap() {
	view.mapped = true
	view.comp.Focus(view)
}

func (view *View) onUnmap() {
	view.mapped = false
	if view.comp.focused == view {
		view.comp.focused = nil
	}
}

func (view *View) onDestroy() {
	destroyListeners(view.listeners)
	view.listeners = nil

	c := view.comp
	c.views.Remove(view)
	if c.focused == view {
		c.focused = nil
	}
}

// Focus activates view and moves it to the front, deactivating the
// previously focused view.
func (c *Compositor) Focus(view *View) {
	if (view == nil) || (c.focused == view) {
		return
	}

	if c.focused != nil {
		c.focused.Surface.SetActivated(false)
	}

	c.views.Raise(view)
	view.Surface.SetActivated(true)
	c.focused = view
}

// Focused returns the currently focused view, if there is one.
func (c *Compositor) Focused() *View {
	return c.focused
}

// Move moves the view to the global position p.
func (view *View) Move(p geom.Point[int]) {
	view.Position = p
}

// ViewAt finds the frontmost mapped view with a surface at the global
// point p. It returns that view along with the surface and the
// surface-local coordinates of p.
func (c *Compositor) ViewAt(p geom.Point[float64]) (view *View, s Surface, sp geom.Point[float64], ok bool) {
	for view := range c.views.All() {
		if !view.mapped {
			continue
		}

		s, sp, ok := view.Surface.SurfaceAt(p.Sub(geom.PConv[float64](view.Position)))
		if ok {
			return view, s, sp, true
		}
	}

	return nil, nil, sp, false
}
