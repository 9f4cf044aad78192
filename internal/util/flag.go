// Package util holds small helpers for the compositor's command.
package util

import (
	"flag"
	"fmt"
	"image/color"

	"deedles.dev/wc/internal/config"
)

type colorFlag struct {
	c   *color.Color
	set bool
	raw string
}

func (f *colorFlag) String() string {
	if (f == nil) || !f.set {
		return ""
	}
	return f.raw
}

func (f *colorFlag) Set(v string) error {
	c, err := config.ParseColor(v)
	if err != nil {
		return fmt.Errorf("color flag: %w", err)
	}
	*f.c = c
	f.set = true
	f.raw = v
	return nil
}

// ColorFlag defines a flag that holds a color in any format accepted
// by config.ParseColor. The returned function reports the color and
// whether the flag was given at all.
func ColorFlag(fs *flag.FlagSet, name string, usage string) func() (color.Color, bool) {
	var c color.Color
	f := colorFlag{c: &c}
	fs.Var(&f, name, usage)
	return func() (color.Color, bool) {
		return c, f.set
	}
}
