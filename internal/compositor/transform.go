package compositor

// Transform is a buffer or output transform. The values match
// wl_output.transform.
type Transform int

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

var transformNames = [...]string{
	TransformNormal:     "normal",
	Transform90:         "90",
	Transform180:        "180",
	Transform270:        "270",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "flipped-90",
	TransformFlipped180: "flipped-180",
	TransformFlipped270: "flipped-270",
}

func (tr Transform) Valid() bool {
	return (tr >= TransformNormal) && (tr <= TransformFlipped270)
}

func (tr Transform) String() string {
	if !tr.Valid() {
		return "invalid"
	}
	return transformNames[tr]
}

// ParseTransform returns the Transform named by s.
func ParseTransform(s string) (Transform, bool) {
	for tr, name := range transformNames {
		if name == s {
			return Transform(tr), true
		}
	}
	return TransformNormal, false
}
