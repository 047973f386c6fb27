package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/modelview/pkg/controls"
)

// Config holds the viewer settings loaded from an optional YAML file.
// Missing fields keep their defaults, so a partial file only overrides
// what it names.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Controls ControlsConfig `yaml:"controls"`
}

// WindowConfig sets the initial window geometry
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ViewerConfig sets rendering and projection defaults
type ViewerConfig struct {
	Orthographic bool    `yaml:"orthographic"`
	Wireframe    bool    `yaml:"wireframe"`
	FOVDegrees   float64 `yaml:"fov_degrees"`
	WatchFile    bool    `yaml:"watch_file"`
}

// ControlsConfig tunes the interaction behaviour
type ControlsConfig struct {
	RotationSnap           bool    `yaml:"rotation_snap"`
	RotationSnapSteps      int     `yaml:"rotation_snap_steps"`
	RotationSnapPitchSteps int     `yaml:"rotation_snap_pitch_steps"`
	RotationAxisLockRatio  float64 `yaml:"rotation_axis_lock_ratio"`
	RotationAxisLockMinPx  float64 `yaml:"rotation_axis_lock_min_px"`
	RotationSensitivity    float64 `yaml:"rotation_sensitivity"`
	ZoomStep               float64 `yaml:"zoom_step"`
	ZoomDebounceMS         int     `yaml:"zoom_debounce_ms"`
	SettleDelayMS          int     `yaml:"settle_delay_ms"`
	PivotMode              string  `yaml:"pivot_mode"` // screen, world, cursor, selection
}

// Default returns the built-in configuration
func Default() *Config {
	opts := controls.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "modelview",
		},
		Viewer: ViewerConfig{
			FOVDegrees: 45,
			WatchFile:  true,
		},
		Controls: ControlsConfig{
			RotationSnap:          opts.EnableRotationSnap,
			RotationSnapSteps:     opts.RotationSnapSteps,
			RotationAxisLockRatio: opts.RotationAxisLockRatio,
			RotationAxisLockMinPx: opts.RotationAxisLockMinDelta,
			RotationSensitivity:   opts.RotationSensitivity,
			ZoomStep:              opts.ZoomStep,
			ZoomDebounceMS:        int(opts.ZoomDebounce / time.Millisecond),
			SettleDelayMS:         int(opts.SettleDelay / time.Millisecond),
			PivotMode:             "screen",
		},
	}
}

// Load reads a config file on top of the defaults. A missing file is not an
// error, it simply returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// ControlOptions converts the file settings into controller options,
// falling back to the defaults for zero or invalid values
func (c *Config) ControlOptions() controls.Options {
	opts := controls.DefaultOptions()
	opts.EnableRotationSnap = c.Controls.RotationSnap
	if c.Controls.RotationSnapSteps > 0 {
		opts.RotationSnapSteps = c.Controls.RotationSnapSteps
	}
	if c.Controls.RotationSnapPitchSteps > 0 {
		opts.RotationSnapPitchSteps = c.Controls.RotationSnapPitchSteps
	}
	if c.Controls.RotationAxisLockRatio > 1 {
		opts.RotationAxisLockRatio = c.Controls.RotationAxisLockRatio
	}
	if c.Controls.RotationAxisLockMinPx > 0 {
		opts.RotationAxisLockMinDelta = c.Controls.RotationAxisLockMinPx
	}
	if c.Controls.RotationSensitivity > 0 {
		opts.RotationSensitivity = c.Controls.RotationSensitivity
	}
	if c.Controls.ZoomStep > 0 && c.Controls.ZoomStep < 1 {
		opts.ZoomStep = c.Controls.ZoomStep
	}
	if c.Controls.ZoomDebounceMS > 0 {
		opts.ZoomDebounce = time.Duration(c.Controls.ZoomDebounceMS) * time.Millisecond
	}
	if c.Controls.SettleDelayMS > 0 {
		opts.SettleDelay = time.Duration(c.Controls.SettleDelayMS) * time.Millisecond
	}
	return opts
}

// PivotMode maps the configured pivot mode name to its enum value
func (c *Config) PivotMode() controls.PivotMode {
	switch c.Controls.PivotMode {
	case "world":
		return controls.PivotWorld
	case "cursor":
		return controls.PivotCursor
	case "selection":
		return controls.PivotSelection
	default:
		return controls.PivotScreen
	}
}
