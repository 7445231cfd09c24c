// Package config holds calcex's on-disk preferences: which operator
// preset a fresh evaluator starts with, the default trig angle
// convention, the REPL prompt, and the rational/double window bounds
// package value uses when deciding whether a computed double deserves
// exact rational treatment. It is the direct generalization of the
// teacher's (robpike.io/ivy) config.Config — ivy's Config carries
// format/origin/base settings consumed by package value through a
// single injected *Config pointer (value.SetConfig); this Config plays
// the same role for calcex's much smaller settings surface, consumed
// by value.SetRationalWindow and registry's AngleMode instead.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/value"
)

// Preset names the operator registry a fresh session starts with (spec
// §6's three presets).
type Preset string

const (
	PresetBinary Preset = "binary"
	PresetSimple Preset = "simple"
	PresetFull   Preset = "full"
)

// Config is calcex's YAML-serializable preference set. The zero value
// holds sensible defaults for every field except Preset, whose zero
// value "" is resolved to PresetFull by Registry() — the same
// zero-value-is-default discipline ivy's Config uses (an unconfigured
// *Config behaves like the default session).
type Config struct {
	Preset    Preset         `yaml:"preset"`
	AngleUnit string         `yaml:"angle_unit"`
	Prompt    string         `yaml:"prompt"`
	Rational  RationalWindow `yaml:"rational_window"`
}

// RationalWindow mirrors value.SetRationalWindow's two parameters so a
// config file can widen or narrow them without this package importing
// value's internal constants.
type RationalWindow struct {
	MaxMagnitude         float64 `yaml:"max_magnitude"`
	MaxDenominatorDigits int     `yaml:"max_denominator_digits"`
}

// Default returns calcex's built-in preferences: the full operator
// preset, radians, and the ">" prompt ivy itself defaults to.
func Default() *Config {
	return &Config{
		Preset:    PresetFull,
		AngleUnit: "radians",
		Prompt:    "> ",
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() and overwriting only the fields the file sets — so a
// ~/.calcexrc.yaml that only names `angle_unit: degrees` leaves every
// other preference at its default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is Load, but a missing file is not an error — it just
// yields Default(), the way an ivy invocation with no flags behaves
// identically to one with every flag set to its zero value.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return c, nil
}

// Registry builds the operator registry named by c.Preset.
func (c *Config) Registry() (*registry.Registry, error) {
	switch c.Preset {
	case PresetBinary:
		return registry.NewBinaryRegistry()
	case PresetSimple:
		return registry.NewSimpleRegistry()
	case PresetFull, "":
		return registry.NewFullRegistry()
	default:
		return nil, fmt.Errorf("unknown preset %q (want %q, %q, or %q)", c.Preset, PresetBinary, PresetSimple, PresetFull)
	}
}

// Angle resolves c.AngleUnit to a registry.AngleMode, defaulting to
// Radians for an empty or unrecognized value.
func (c *Config) Angle() registry.AngleMode {
	if c.AngleUnit == "degrees" {
		return registry.Degrees
	}
	return registry.Radians
}

// ApplyRationalWindow pushes c.Rational into package value's global
// window, if the file set either bound — a no-op otherwise, since
// value.SetRationalWindow ignores non-positive arguments.
func (c *Config) ApplyRationalWindow() {
	value.SetRationalWindow(c.Rational.MaxMagnitude, c.Rational.MaxDenominatorDigits)
}
