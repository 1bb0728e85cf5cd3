// Package config loads progress wheel settings from an optional YAML file.
//
// A minimal wheel.yaml:
//
//	version: v1
//	bar:
//	  color: "#FF5588FF"
//	  thickness: 6
//	spin:
//	  speed: 0.75
//	  growthCycle: 460ms
//
// Every field is optional; missing values keep the base configuration.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/progresswheel/pkg/arrow"
	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/graphics"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// FileName is the configuration file LoadOptional looks for.
const FileName = "wheel.yaml"

// SchemaMajor is the only configuration schema major version understood.
const SchemaMajor = "v1"

// File represents wheel.yaml.
type File struct {
	Version        string      `yaml:"version,omitempty"`
	Bar            BarConfig   `yaml:"bar,omitempty"`
	Rim            RimConfig   `yaml:"rim,omitempty"`
	Spin           SpinConfig  `yaml:"spin,omitempty"`
	Arrow          ArrowConfig `yaml:"arrow,omitempty"`
	CircleRadius   float64     `yaml:"circleRadius,omitempty"`
	FillRadius     bool        `yaml:"fillRadius,omitempty"`
	LinearProgress bool        `yaml:"linearProgress,omitempty"`
}

// BarConfig contains the spinning bar settings. Lengths are in degrees.
type BarConfig struct {
	Length    float64  `yaml:"length,omitempty"`
	MaxLength float64  `yaml:"maxLength,omitempty"`
	Thickness *float64 `yaml:"thickness,omitempty"`
	Color     string   `yaml:"color,omitempty"`
}

// RimConfig contains the background circle settings.
type RimConfig struct {
	Thickness *float64 `yaml:"thickness,omitempty"`
	Color     string   `yaml:"color,omitempty"`
}

// SpinConfig contains the indeterminate animation timing.
type SpinConfig struct {
	// Speed is in full turns per second.
	Speed            float64 `yaml:"speed,omitempty"`
	GrowthCycle      string  `yaml:"growthCycle,omitempty"`
	PauseAfterGrowth string  `yaml:"pauseAfterGrowth,omitempty"`
}

// ArrowConfig contains the arrowhead settings.
type ArrowConfig struct {
	Style         string  `yaml:"style,omitempty"`
	MaxLineLength float64 `yaml:"maxLineLength,omitempty"`
}

// LoadOptional reads wheel.yaml from dir if present. A missing file yields
// an empty File.
func LoadOptional(dir string) (*File, error) {
	f, err := Load(filepath.Join(dir, FileName))
	if stderrors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	return f, err
}

// Find walks up from dir to the nearest directory containing wheel.yaml and
// returns the file's path.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found: %w", FileName, os.ErrNotExist)
		}
		dir = parent
	}
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse decodes YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// Resolve applies the file on top of base. Version, color, duration and
// style strings that cannot be parsed are reported as configuration errors;
// numeric ranges are left to [wheel.Engine.Configure].
func (f *File) Resolve(base wheel.Config) (wheel.Config, error) {
	if err := checkVersion(f.Version); err != nil {
		return base, err
	}

	cfg := base
	setPositive(&cfg.BarLength, f.Bar.Length)
	setPositive(&cfg.BarMaxLength, f.Bar.MaxLength)
	setPositive(&cfg.CircleRadius, f.CircleRadius)
	setPositive(&cfg.MaxArrowLineLength, f.Arrow.MaxLineLength)
	if f.Spin.Speed > 0 {
		cfg.SpinSpeed = f.Spin.Speed * 360
	}
	if f.Bar.Thickness != nil {
		cfg.BarThickness = *f.Bar.Thickness
	}
	if f.Rim.Thickness != nil {
		cfg.RimThickness = *f.Rim.Thickness
	}
	cfg.FillRadius = cfg.FillRadius || f.FillRadius
	cfg.LinearProgress = cfg.LinearProgress || f.LinearProgress

	var err error
	if cfg.BarColor, err = parseColor("bar.color", f.Bar.Color, cfg.BarColor); err != nil {
		return base, err
	}
	if cfg.RimColor, err = parseColor("rim.color", f.Rim.Color, cfg.RimColor); err != nil {
		return base, err
	}
	if cfg.GrowthCycle, err = parseDuration("spin.growthCycle", f.Spin.GrowthCycle, cfg.GrowthCycle); err != nil {
		return base, err
	}
	if cfg.PauseAfterGrowth, err = parseDuration("spin.pauseAfterGrowth", f.Spin.PauseAfterGrowth, cfg.PauseAfterGrowth); err != nil {
		return base, err
	}
	if f.Arrow.Style != "" {
		style, perr := arrow.ParseStyle(f.Arrow.Style)
		if perr != nil {
			return base, errors.NewConfigError("config.Resolve", "arrow.style", f.Arrow.Style, perr.Error())
		}
		cfg.ArrowStyle = style
	}
	return cfg, nil
}

// FromConfig describes cfg as a File, the inverse of Resolve.
func FromConfig(cfg wheel.Config) *File {
	barThickness, rimThickness := cfg.BarThickness, cfg.RimThickness
	return &File{
		Version: SchemaMajor,
		Bar: BarConfig{
			Length:    cfg.BarLength,
			MaxLength: cfg.BarMaxLength,
			Thickness: &barThickness,
			Color:     cfg.BarColor.Hex(),
		},
		Rim: RimConfig{
			Thickness: &rimThickness,
			Color:     cfg.RimColor.Hex(),
		},
		Spin: SpinConfig{
			Speed:            cfg.SpinSpeed / 360,
			GrowthCycle:      cfg.GrowthCycle.String(),
			PauseAfterGrowth: cfg.PauseAfterGrowth.String(),
		},
		Arrow: ArrowConfig{
			Style:         cfg.ArrowStyle.String(),
			MaxLineLength: cfg.MaxArrowLineLength,
		},
		CircleRadius:   cfg.CircleRadius,
		FillRadius:     cfg.FillRadius,
		LinearProgress: cfg.LinearProgress,
	}
}

// Marshal encodes the file as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// checkVersion accepts an empty version or any valid semver with major v1.
// The leading "v" is optional.
func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return errors.NewConfigError("config.Resolve", "version", v, "not a semantic version")
	}
	if major := semver.Major(canonical); major != SchemaMajor {
		return errors.NewConfigError("config.Resolve", "version", v,
			fmt.Sprintf("unsupported schema %s, want %s", major, SchemaMajor))
	}
	return nil
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func parseColor(field, s string, fallback graphics.Color) (graphics.Color, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	c, err := graphics.ParseHex(s)
	if err != nil {
		return fallback, errors.NewConfigError("config.Resolve", field, s, err.Error())
	}
	return c, nil
}

func parseDuration(field, s string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback, errors.NewConfigError("config.Resolve", field, s, err.Error())
	}
	if d <= 0 {
		return fallback, errors.NewConfigError("config.Resolve", field, s, "must be positive")
	}
	return d, nil
}
