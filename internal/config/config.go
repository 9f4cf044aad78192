// Package config loads the compositor's configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"deedles.dev/wc/internal/compositor"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config is the compositor's configuration.
type Config struct {
	// Background is the color that outputs are cleared to.
	Background color.Color

	// Outputs configures specific outputs by name.
	Outputs []compositor.OutputConfig
}

// Default returns the configuration used when there is no
// configuration file.
func Default() Config {
	return Config{
		Background: compositor.DefaultBackground,
	}
}

type file struct {
	Background string       `yaml:"background"`
	Outputs    []outputFile `yaml:"outputs"`
}

type outputFile struct {
	Name      string  `yaml:"name"`
	X         *int    `yaml:"x"`
	Y         *int    `yaml:"y"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Scale     float64 `yaml:"scale"`
	Transform string  `yaml:"transform"`
}

// Load reads the configuration file at path. If path is empty or the
// file doesn't exist, the default configuration is returned.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	config, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return config, nil
}

// Parse decodes a YAML configuration.
func Parse(r io.Reader) (Config, error) {
	var f file
	err := yaml.NewDecoder(r).Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	config := Default()
	if f.Background != "" {
		config.Background, err = ParseColor(f.Background)
		if err != nil {
			return Config{}, fmt.Errorf("background: %w", err)
		}
	}

	for i, out := range f.Outputs {
		oc, err := out.outputConfig()
		if err != nil {
			return Config{}, fmt.Errorf("output %v: %w", i, err)
		}
		config.Outputs = append(config.Outputs, oc)
	}

	return config, nil
}

func (out outputFile) outputConfig() (compositor.OutputConfig, error) {
	if out.Name == "" {
		return compositor.OutputConfig{}, errors.New("missing name")
	}
	if (out.X == nil) != (out.Y == nil) {
		return compositor.OutputConfig{}, fmt.Errorf("%v: x and y must be given together", out.Name)
	}
	if out.Scale < 0 {
		return compositor.OutputConfig{}, fmt.Errorf("%v: negative scale %v", out.Name, out.Scale)
	}

	config := compositor.OutputConfig{
		Name:   out.Name,
		X:      -1,
		Y:      -1,
		Width:  out.Width,
		Height: out.Height,
		Scale:  out.Scale,
	}
	if out.X != nil {
		config.X, config.Y = *out.X, *out.Y
	}

	if out.Transform != "" {
		tr, ok := compositor.ParseTransform(out.Transform)
		if !ok {
			return compositor.OutputConfig{}, fmt.Errorf("%v: unknown transform %q", out.Name, out.Transform)
		}
		config.Transform = tr
	}

	return config, nil
}

// ParseColor parses either a hex color of the form #rrggbb or
// #rrggbbaa or an SVG color name.
func ParseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return nil, fmt.Errorf("unknown color %q", s)
		}
		return c, nil
	}

	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return nil, fmt.Errorf("bad color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
