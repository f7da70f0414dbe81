// Package config provides configuration loading and access for the flow field effect.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Particles ParticlesConfig `yaml:"particles"`
	Debug     DebugConfig     `yaml:"debug"`
	Text      TextConfig      `yaml:"text"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	Background string `yaml:"background"` // Hex colour used to clear the surface
}

// FieldConfig holds flow field shaping parameters.
type FieldConfig struct {
	CellSize float64 `yaml:"cell_size"` // Side length of one grid cell in surface units
	Zoom     float64 `yaml:"zoom"`      // Spatial frequency of the angle pattern
	Curve    float64 `yaml:"curve"`     // Angle amplitude multiplier
}

// ParticlesConfig holds particle population parameters.
type ParticlesConfig struct {
	Count          int      `yaml:"count"`
	MinTrailLength int      `yaml:"min_trail_length"`
	MaxTrailLength int      `yaml:"max_trail_length"`
	MinSpeed       int      `yaml:"min_speed"`
	MaxSpeed       int      `yaml:"max_speed"`
	LineWidth      float64  `yaml:"line_width"`
	Palette        []string `yaml:"palette"` // Hex colours, leading '#' optional
}

// DebugConfig holds debug overlay settings.
type DebugConfig struct {
	Enabled   bool    `yaml:"enabled"` // Initial state of the grid overlay
	GridColor string  `yaml:"grid_color"`
	GridWidth float64 `yaml:"grid_width"`
}

// TextConfig holds the decorative background text.
type TextConfig struct {
	Enabled bool    `yaml:"enabled"`
	Content string  `yaml:"content"`
	Size    float64 `yaml:"size"`
	Color   string  `yaml:"color"`
}

// TerminalConfig maps terminal cells onto surface units.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Surface units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Surface units per terminal row
	FrameMS    int     `yaml:"frame_ms"`    // Milliseconds between frames
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Palette    []color.RGBA // Particles.Palette parsed
	Background color.RGBA
	GridColor  color.RGBA
	TextColor  color.RGBA
	ScreenW    float64
	ScreenH    float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg. Only fields present in data are overwritten.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks value ranges that would otherwise panic at runtime.
// A non-positive cell size is allowed: it produces an empty flow field.
func (c *Config) Validate() error {
	p := c.Particles
	if p.Count < 0 {
		return fmt.Errorf("particles.count must be >= 0, got %d", p.Count)
	}
	if p.MinTrailLength < 1 || p.MaxTrailLength < p.MinTrailLength {
		return fmt.Errorf("particles trail length range [%d,%d] is invalid", p.MinTrailLength, p.MaxTrailLength)
	}
	if p.MinSpeed < 1 || p.MaxSpeed < p.MinSpeed {
		return fmt.Errorf("particles speed range [%d,%d] is invalid", p.MinSpeed, p.MaxSpeed)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("particles.palette must not be empty")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size %gx%g must be positive", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.Palette = make([]color.RGBA, 0, len(c.Particles.Palette))
	for i, hex := range c.Particles.Palette {
		rgba, err := ParseColor(hex)
		if err != nil {
			return fmt.Errorf("particles.palette[%d]: %w", i, err)
		}
		c.Derived.Palette = append(c.Derived.Palette, rgba)
	}

	var err error
	if c.Derived.Background, err = ParseColor(c.Screen.Background); err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	if c.Derived.GridColor, err = ParseColor(c.Debug.GridColor); err != nil {
		return fmt.Errorf("debug.grid_color: %w", err)
	}
	if c.Derived.TextColor, err = ParseColor(c.Text.Color); err != nil {
		return fmt.Errorf("text.color: %w", err)
	}

	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	return nil
}

// ParseColor parses a hex colour such as "#9622c7". The leading '#' is optional.
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
