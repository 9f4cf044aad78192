package compositor

import (
	"image/color"
	"time"

	"deedles.dev/ximage/geom"
)

type event struct {
	handlers map[int]func()
	next     int
}

type eventListener struct {
	ev *event
	id int
}

func (lis eventListener) Destroy() {
	delete(lis.ev.handlers, lis.id)
}

func (ev *event) add(f func()) Listener {
	if ev.handlers == nil {
		ev.handlers = make(map[int]func())
	}
	id := ev.next
	ev.next++
	ev.handlers[id] = f
	return eventListener{ev: ev, id: id}
}

func (ev *event) emit() {
	for _, f := range ev.handlers {
		f()
	}
}

func (ev *event) len() int {
	return len(ev.handlers)
}

type fakeMode struct {
	w, h int32
}

func (m fakeMode) Width() int32  { return m.w }
func (m fakeMode) Height() int32 { return m.h }

type fakeOutput struct {
	name      string
	modes     []Mode
	mode      Mode
	scale     float64
	transform Transform
	width     int
	height    int

	initErr   error
	notReady  bool
	commitErr error
	commits   int
	cursors   int
	global    bool
	frame     event
	destroy   event
	log       *drawLog
}

func newFakeOutput(name string, log *drawLog) *fakeOutput {
	return &fakeOutput{
		name:   name,
		scale:  1,
		width:  1920,
		height: 1080,
		log:    log,
	}
}

func (o *fakeOutput) Name() string              { return o.name }
func (o *fakeOutput) Modes() []Mode             { return o.modes }
func (o *fakeOutput) SetMode(m Mode)            { o.mode = m }
func (o *fakeOutput) SetScale(s float64)        { o.scale = s }
func (o *fakeOutput) SetTransform(tr Transform) { o.transform = tr }
func (o *fakeOutput) Scale() float64            { return o.scale }
func (o *fakeOutput) InitRender() error         { return o.initErr }
func (o *fakeOutput) CreateGlobal()             { o.global = true }

func (o *fakeOutput) EffectiveResolution() (int, int) {
	return o.width, o.height
}

func (o *fakeOutput) AttachRender() bool {
	return !o.notReady
}

func (o *fakeOutput) RenderSoftwareCursors() {
	o.cursors++
	if o.log != nil {
		o.log.add("cursors")
	}
}

func (o *fakeOutput) Commit() error {
	o.commits++
	if o.log != nil {
		o.log.add("commit")
	}
	return o.commitErr
}

func (o *fakeOutput) OnFrame(f func()) Listener   { return o.frame.add(f) }
func (o *fakeOutput) OnDestroy(f func()) Listener { return o.destroy.add(f) }

type drawLog struct {
	entries []string
}

func (l *drawLog) add(entry string) {
	l.entries = append(l.entries, entry)
}

type draw struct {
	texture   Texture
	box       geom.Rect[int]
	transform Transform
	out       OutputDevice
}

type fakeRenderer struct {
	log    *drawLog
	draws  []draw
	clear  color.Color
	begins int
	ends   int
	width  int
	height int
}

func (r *fakeRenderer) Begin(out OutputDevice, width, height int) {
	r.begins++
	r.width, r.height = width, height
	r.log.add("begin")
}

func (r *fakeRenderer) Clear(c color.Color) {
	r.clear = c
	r.log.add("clear")
}

func (r *fakeRenderer) RenderTexture(t Texture, box geom.Rect[int], tr Transform, out OutputDevice) {
	r.draws = append(r.draws, draw{texture: t, box: box, transform: tr, out: out})
	r.log.add(t.(string))
}

func (r *fakeRenderer) End() {
	r.ends++
	r.log.add("end")
}

type fakeLayout struct {
	coords map[OutputDevice]geom.Point[float64]
	sizes  map[OutputDevice]geom.Point[float64]
	auto   []OutputDevice
	nextX  float64
}

func newFakeLayout() *fakeLayout {
	return &fakeLayout{
		coords: make(map[OutputDevice]geom.Point[float64]),
		sizes:  make(map[OutputDevice]geom.Point[float64]),
	}
}

func (l *fakeLayout) Coords(out OutputDevice) geom.Point[float64] {
	return l.coords[out]
}

func (l *fakeLayout) AddAuto(out OutputDevice) {
	l.auto = append(l.auto, out)
	w, h := out.EffectiveResolution()
	l.coords[out] = geom.Pt(l.nextX, 0)
	l.sizes[out] = geom.Pt(float64(w), float64(h))
	l.nextX += float64(w)
}

func (l *fakeLayout) Add(out OutputDevice, p geom.Point[int]) {
	w, h := out.EffectiveResolution()
	l.coords[out] = geom.PConv[float64](p)
	l.sizes[out] = geom.Pt(float64(w), float64(h))
}

func (l *fakeLayout) OutputAt(p geom.Point[float64]) (OutputDevice, bool) {
	for out, c := range l.coords {
		r := geom.Rect[float64]{Min: c, Max: c.Add(l.sizes[out])}
		if p.In(r) {
			return out, true
		}
	}
	return nil, false
}

type fakeSurface struct {
	texture    Texture
	size       geom.Point[int]
	transform  Transform
	frameDones []time.Time
}

func newFakeSurface(texture string, w, h int) *fakeSurface {
	s := fakeSurface{size: geom.Pt(w, h)}
	if texture != "" {
		s.texture = texture
	}
	return &s
}

func (s *fakeSurface) Texture() (Texture, bool) {
	return s.texture, s.texture != nil
}

func (s *fakeSurface) Size() geom.Point[int]      { return s.size }
func (s *fakeSurface) BufferTransform() Transform { return s.transform }
func (s *fakeSurface) SendFrameDone(t time.Time)  { s.frameDones = append(s.frameDones, t) }

type subsurface struct {
	s      *fakeSurface
	offset geom.Point[int]
}

type fakeTree []subsurface

func (tree fakeTree) ForEachSurface(f SurfaceFunc) {
	for _, sub := range tree {
		f(sub.s, sub.offset)
	}
}

type fakeLayerSurface struct {
	fakeTree

	output     OutputDevice
	current    LayerState
	pending    LayerState
	configured []geom.Point[int]
	closed     int

	mapEv, unmapEv, commitEv, destroyEv event
}

func (s *fakeLayerSurface) Output() (OutputDevice, bool) { return s.output, s.output != nil }
func (s *fakeLayerSurface) SetOutput(out OutputDevice)   { s.output = out }
func (s *fakeLayerSurface) Current() LayerState          { return s.current }
func (s *fakeLayerSurface) Pending() LayerState          { return s.pending }
func (s *fakeLayerSurface) Close()                       { s.closed++ }

func (s *fakeLayerSurface) Configure(w, h int) {
	s.configured = append(s.configured, geom.Pt(w, h))
}

func (s *fakeLayerSurface) OnMap(f func()) Listener     { return s.mapEv.add(f) }
func (s *fakeLayerSurface) OnUnmap(f func()) Listener   { return s.unmapEv.add(f) }
func (s *fakeLayerSurface) OnCommit(f func()) Listener  { return s.commitEv.add(f) }
func (s *fakeLayerSurface) OnDestroy(f func()) Listener { return s.destroyEv.add(f) }

func (s *fakeLayerSurface) listeners() int {
	return s.mapEv.len() + s.unmapEv.len() + s.commitEv.len() + s.destroyEv.len()
}

type fakeViewSurface struct {
	fakeTree

	activated bool

	mapEv, unmapEv, destroyEv event
}

func (s *fakeViewSurface) SetActivated(a bool) { s.activated = a }

func (s *fakeViewSurface) SurfaceAt(p geom.Point[float64]) (Surface, geom.Point[float64], bool) {
	for i := len(s.fakeTree) - 1; i >= 0; i-- {
		sub := s.fakeTree[i]
		sp := p.Sub(geom.PConv[float64](sub.offset))
		r := geom.Rect[float64]{Max: geom.PConv[float64](sub.s.size)}
		if sp.In(r) {
			return sub.s, sp, true
		}
	}
	return nil, p, false
}

func (s *fakeViewSurface) OnMap(f func()) Listener     { return s.mapEv.add(f) }
func (s *fakeViewSurface) OnUnmap(f func()) Listener   { return s.unmapEv.add(f) }
func (s *fakeViewSurface) OnDestroy(f func()) Listener { return s.destroyEv.add(f) }

func (s *fakeViewSurface) listeners() int {
	return s.mapEv.len() + s.unmapEv.len() + s.destroyEv.len()
}

type testCompositor struct {
	*Compositor

	log      *drawLog
	renderer *fakeRenderer
	layout   *fakeLayout
	now      time.Time
}

func newTestCompositor() *testCompositor {
	log := new(drawLog)
	tc := testCompositor{
		log:      log,
		renderer: &fakeRenderer{log: log},
		layout:   newFakeLayout(),
		now:      time.Unix(1000, 0),
	}
	tc.Compositor = New(tc.renderer, tc.layout)
	tc.Compositor.Now = func() time.Time { return tc.now }
	return &tc
}

func (tc *testCompositor) addOutput(name string) (*Output, *fakeOutput) {
	dev := newFakeOutput(name, tc.log)
	out, err := tc.AddOutput(dev)
	if err != nil {
		panic(err)
	}
	return out, dev
}

func (tc *testCompositor) addMappedLayer(out *Output, band Band, texture string) (*Layer, *fakeLayerSurface) {
	ls := fakeLayerSurface{
		fakeTree: fakeTree{{s: newFakeSurface(texture, 10, 10)}},
		output:   out.Device,
	}
	layer, err := tc.AddLayer(&ls, band)
	if err != nil {
		panic(err)
	}
	ls.mapEv.emit()
	return layer, &ls
}

func (tc *testCompositor) addMappedView(texture string, p geom.Point[int]) (*View, *fakeViewSurface) {
	vs := fakeViewSurface{
		fakeTree: fakeTree{{s: newFakeSurface(texture, 100, 100)}},
	}
	view := tc.AddView(&vs, p)
	vs.mapEv.emit()
	return view, &vs
}

func (tc *testCompositor) drawn() []string {
	var textures []string
	for _, d := range tc.renderer.draws {
		textures = append(textures, d.texture.(string))
	}
	return textures
}
