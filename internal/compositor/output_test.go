package compositor

import (
	"errors"
	"testing"

	"deedles.dev/ximage/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOutputBands(t *testing.T) {
	tc := newTestCompositor()
	out, dev := tc.addOutput("DP-1")

	for band := BandBackground; band <= BandOverlay; band++ {
		layers := out.Layers(band)
		require.NotNil(t, layers, band.String())
		assert.Zero(t, layers.Len(), band.String())
		for range layers.All() {
			t.Fatalf("band %v is not empty", band)
		}
	}

	assert.True(t, dev.global)
	assert.Equal(t, []OutputDevice{dev}, tc.layout.auto)
	assert.Equal(t, 1, dev.frame.len())
	assert.Equal(t, 1, dev.destroy.len())
	assert.Equal(t, geom.Rt(0, 0, 1920, 1080), out.UsableArea())
}

func TestAddOutputMode(t *testing.T) {
	modes := []Mode{
		fakeMode{3840, 2160},
		fakeMode{2560, 1440},
		fakeMode{1920, 1080},
	}

	tests := []struct {
		name   string
		config *OutputConfig
		mode   Mode
	}{
		{name: "Default", mode: fakeMode{1920, 1080}},
		{name: "Configured", config: &OutputConfig{Name: "DP-1", X: -1, Y: -1, Width: 2560, Height: 1440}, mode: fakeMode{2560, 1440}},
		{name: "NoMatch", config: &OutputConfig{Name: "DP-1", X: -1, Y: -1, Width: 800, Height: 600}, mode: fakeMode{1920, 1080}},
		{name: "OtherOutput", config: &OutputConfig{Name: "HDMI-A-1", Width: 3840, Height: 2160}, mode: fakeMode{1920, 1080}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tc := newTestCompositor()
			if test.config != nil {
				tc.OutputConfigs = []OutputConfig{*test.config}
			}

			dev := newFakeOutput("DP-1", tc.log)
			dev.modes = modes
			_, err := tc.AddOutput(dev)
			require.NoError(t, err)
			assert.Equal(t, test.mode, dev.mode)
		})
	}
}

func TestAddOutputNoModes(t *testing.T) {
	tc := newTestCompositor()
	_, dev := tc.addOutput("virtual")
	assert.Nil(t, dev.mode)
}

func TestAddOutputConfig(t *testing.T) {
	tc := newTestCompositor()
	tc.OutputConfigs = []OutputConfig{
		{Name: "DP-1", X: 1280, Y: 200, Scale: 1.5, Transform: Transform90},
	}

	_, dev := tc.addOutput("DP-1")
	assert.Empty(t, tc.layout.auto)
	assert.Equal(t, geom.Pt[float64](1280, 200), tc.layout.Coords(dev))
	assert.Equal(t, 1.5, dev.scale)
	assert.Equal(t, Transform90, dev.transform)
}

func TestAddOutputInitFailure(t *testing.T) {
	tc := newTestCompositor()
	dev := newFakeOutput("DP-1", tc.log)
	dev.initErr = errors.New("no allocator")

	out, err := tc.AddOutput(dev)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrRenderInit)
	assert.ErrorIs(t, err, dev.initErr)

	assert.Nil(t, tc.ActiveOutput())
	assert.Zero(t, dev.frame.len())
	assert.False(t, dev.global)

	out, _ = tc.addOutput("DP-2")
	assert.Equal(t, out, tc.ActiveOutput())
}

func TestActiveOutputFailover(t *testing.T) {
	tc := newTestCompositor()
	assert.Nil(t, tc.ActiveOutput())

	a, devA := tc.addOutput("A")
	b, devB := tc.addOutput("B")
	c, devC := tc.addOutput("C")
	assert.Equal(t, a, tc.ActiveOutput())

	tc.SetActiveOutput(c)
	assert.Equal(t, c, tc.ActiveOutput())

	devC.destroy.emit()
	assert.Equal(t, b, tc.ActiveOutput())

	devA.destroy.emit()
	assert.Equal(t, b, tc.ActiveOutput())

	devB.destroy.emit()
	assert.Nil(t, tc.ActiveOutput())
}

func TestActiveOutputInactiveDestroyed(t *testing.T) {
	tc := newTestCompositor()
	a, _ := tc.addOutput("A")
	_, devB := tc.addOutput("B")

	devB.destroy.emit()
	assert.Equal(t, a, tc.ActiveOutput())

	var names []string
	for out := range tc.Outputs() {
		names = append(names, out.Device.Name())
	}
	assert.Equal(t, []string{"A"}, names)
}

func TestSetActiveOutputDestroyed(t *testing.T) {
	tc := newTestCompositor()
	a, _ := tc.addOutput("A")
	b, devB := tc.addOutput("B")

	devB.destroy.emit()
	tc.SetActiveOutput(b)
	assert.Equal(t, a, tc.ActiveOutput())

	tc.SetActiveOutput(nil)
	assert.Equal(t, a, tc.ActiveOutput())
}

func TestOutputDestroyUnsubscribes(t *testing.T) {
	tc := newTestCompositor()
	out, dev := tc.addOutput("DP-1")
	tc.addMappedView("view", geom.Pt(0, 0))

	dev.destroy.emit()
	assert.Zero(t, dev.frame.len())
	assert.Zero(t, dev.destroy.len())

	dev.frame.emit()
	assert.Empty(t, tc.log.entries)

	assert.NoError(t, tc.RenderFrame(out))
	assert.Empty(t, tc.log.entries)
}

func TestOutputDestroyClosesLayers(t *testing.T) {
	tc := newTestCompositor()
	out, dev := tc.addOutput("DP-1")
	layer, ls := tc.addMappedLayer(out, BandTop, "panel")

	dev.destroy.emit()
	assert.Equal(t, 1, ls.closed)
	assert.Nil(t, layer.Output())
	assert.False(t, layer.Mapped())
	assert.Zero(t, out.Layers(BandTop).Len())

	ls.destroyEv.emit()
	assert.Zero(t, ls.listeners())
}

func TestOutputAt(t *testing.T) {
	tc := newTestCompositor()
	a, _ := tc.addOutput("A")
	b, _ := tc.addOutput("B")

	assert.Equal(t, a, tc.OutputAt(geom.Pt[float64](10, 10)))
	assert.Equal(t, b, tc.OutputAt(geom.Pt[float64](1930, 10)))
	assert.Nil(t, tc.OutputAt(geom.Pt[float64](-10, 10)))
}
