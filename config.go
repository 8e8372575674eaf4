package lumen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ToneMap selects how the light accumulation is mapped to displayable values
// before the final blit.
type ToneMap string

const (
	// ToneClamp clamps every channel to [0, 1].
	ToneClamp ToneMap = "clamp"
	// ToneReinhard maps each channel with c / (1 + c).
	ToneReinhard ToneMap = "reinhard"
)

// Config holds the program settings. Zero fields are filled from
// DefaultConfig by NewProgram. Fields whose zero value is a meaningful
// setting are pointers; nil means the default.
type Config struct {
	// Width and Height are the output resolution shared by every pass.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Title and WindowScale are used by Run for the window.
	Title       string `yaml:"title"`
	WindowScale int    `yaml:"window_scale"`

	// ToneMap is applied to the accumulated light before the blit.
	ToneMap ToneMap `yaml:"tone_map"`
	// Exposure scales accumulated light before tone mapping.
	Exposure float64 `yaml:"exposure"`
	// Headroom is the largest accumulated value that survives the 8-bit
	// accumulation target. Lights write value/Headroom.
	Headroom float64 `yaml:"headroom"`

	// GeometryBlend is the blend used when drawables write the geometry
	// targets. BlendNone, the default, means last write wins.
	GeometryBlend *BlendMode `yaml:"geometry_blend"`
	// NormalStrength scales height gradients during normal synthesis.
	NormalStrength float64 `yaml:"normal_strength"`

	// Background fills pixels with no geometry. A transparent background
	// must be set explicitly; nil is opaque black.
	Background *Color `yaml:"background"`

	// MaxFrameFailures is the number of consecutive failed frames tolerated
	// before the run loop gives up. It also caps consecutive failures of a
	// single light before that light is disabled. Zero disables both caps.
	MaxFrameFailures *int `yaml:"max_frame_failures"`

	// Debug prints per-frame pass timings to stderr.
	Debug bool `yaml:"debug"`
	// ScreenshotDir is where Program.Screenshot writes PNGs.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

const defaultMaxFrameFailures = 120

// DefaultConfig returns the settings used for zero fields.
func DefaultConfig() Config {
	return Config{
		Width:            128,
		Height:           128,
		Title:            "lumen",
		WindowScale:      4,
		ToneMap:          ToneClamp,
		Exposure:         1,
		Headroom:         4,
		GeometryBlend:    ptr(BlendNone),
		NormalStrength:   1,
		Background:       ptr(ColorBlack),
		MaxFrameFailures: ptr(defaultMaxFrameFailures),
		ScreenshotDir:    "screenshots",
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("lumen: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("lumen: parse config: %w", err)
	}
	// An explicit null leaves a pointer field nil.
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults fills zero fields and nil pointers from DefaultConfig.
// Booleans are taken as given. Pointer fields are copied so the result
// shares no memory with c.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.WindowScale == 0 {
		c.WindowScale = d.WindowScale
	}
	if c.ToneMap == "" {
		c.ToneMap = d.ToneMap
	}
	if c.Exposure == 0 {
		c.Exposure = d.Exposure
	}
	if c.Headroom == 0 {
		c.Headroom = d.Headroom
	}
	if c.NormalStrength == 0 {
		c.NormalStrength = d.NormalStrength
	}
	c.GeometryBlend = ptr(c.geometryBlend())
	c.Background = ptr(c.background())
	c.MaxFrameFailures = ptr(c.maxFrameFailures())
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	return c
}

func (c Config) geometryBlend() BlendMode {
	if c.GeometryBlend == nil {
		return BlendNone
	}
	return *c.GeometryBlend
}

func (c Config) background() Color {
	if c.Background == nil {
		return ColorBlack
	}
	return *c.Background
}

func (c Config) maxFrameFailures() int {
	if c.MaxFrameFailures == nil {
		return defaultMaxFrameFailures
	}
	return *c.MaxFrameFailures
}

func ptr[T any](v T) *T { return &v }

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("lumen: invalid output dimensions %dx%d", c.Width, c.Height)
	case c.WindowScale < 0:
		return fmt.Errorf("lumen: invalid window scale %d", c.WindowScale)
	case c.ToneMap != ToneClamp && c.ToneMap != ToneReinhard:
		return fmt.Errorf("lumen: unknown tone map %q", c.ToneMap)
	case c.Exposure <= 0:
		return fmt.Errorf("lumen: exposure must be positive, got %v", c.Exposure)
	case c.Headroom < 1:
		return fmt.Errorf("lumen: headroom must be at least 1, got %v", c.Headroom)
	case c.geometryBlend() > BlendNone:
		return fmt.Errorf("lumen: invalid geometry blend %v", c.geometryBlend())
	case c.maxFrameFailures() < 0:
		return fmt.Errorf("lumen: max_frame_failures must not be negative")
	}
	return nil
}
