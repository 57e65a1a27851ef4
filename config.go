package starfield

import (
	"fmt"

	"github.com/gekko3d/starfield/starfieldrt/rt/core"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Axes   bool   `toml:"axes"`
}

type LoggingConfig struct {
	Debug  bool   `toml:"debug"`
	Prefix string `toml:"prefix"`
}

type Config struct {
	Window    WindowConfig         `toml:"window"`
	StarField core.StarFieldConfig `toml:"starfield"`
	Logging   LoggingConfig        `toml:"logging"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Star Field",
			Axes:   true,
		},
		StarField: core.DefaultStarFieldConfig(),
		Logging: LoggingConfig{
			Prefix: "starfield",
		},
	}
}

// LoadConfig decodes a TOML file over DefaultConfig, so keys missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return multierr.Append(err, ValidateStarField(c.StarField))
}

func ValidateStarField(sf core.StarFieldConfig) error {
	var err error
	if sf.Count < 0 {
		err = multierr.Append(err, fmt.Errorf("starfield.count must not be negative, got %d", sf.Count))
	}
	if sf.Radius <= 0 {
		err = multierr.Append(err, fmt.Errorf("starfield.radius must be positive, got %g", sf.Radius))
	}
	if sf.Depth < 0 {
		err = multierr.Append(err, fmt.Errorf("starfield.depth must not be negative, got %g", sf.Depth))
	}
	if sf.Saturation < 0 || sf.Saturation > 1 {
		err = multierr.Append(err, fmt.Errorf("starfield.saturation must be in [0, 1], got %g", sf.Saturation))
	}
	if sf.Factor < 0 {
		err = multierr.Append(err, fmt.Errorf("starfield.factor must not be negative, got %g", sf.Factor))
	}
	if _, perr := core.ParseMotion(string(sf.Motion)); perr != nil {
		err = multierr.Append(err, fmt.Errorf("starfield.motion: %w", perr))
	}
	return err
}
