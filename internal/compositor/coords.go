package compositor

import "deedles.dev/ximage/geom"

// OutputOffset returns the translation from global coordinates into
// out's local coordinates. out should already have been added to the
// layout.
func OutputOffset(layout Layout, out OutputDevice) geom.Point[float64] {
	return geom.Point[float64]{}.Sub(layout.Coords(out))
}

// Resolve converts p from out's local coordinates into global
// coordinates.
func Resolve(layout Layout, out OutputDevice, p geom.Point[float64]) geom.Point[float64] {
	return p.Add(layout.Coords(out))
}
