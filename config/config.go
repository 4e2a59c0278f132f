package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/roombg/background"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Config holds the host settings. Zero fields in a file keep their defaults.
type Config struct {
	RoomFile        string  `yaml:"room_file"`
	CoversDir       string  `yaml:"covers_dir"`
	Watch           bool    `yaml:"watch"`
	FadeFrames      int     `yaml:"fade_frames"`
	BlurSigma       float64 `yaml:"blur_sigma"`
	BackgroundScale float64 `yaml:"background_scale"`
	SlideFrames     int     `yaml:"slide_frames"`
	LogLevel        string  `yaml:"log_level"`
	MetricsAddr     string  `yaml:"metrics_addr"`
}

func Default() Config {
	return Config{
		RoomFile:        "room.yaml",
		CoversDir:       "covers",
		Watch:           true,
		FadeFrames:      background.DefaultFadeFrames,
		BlurSigma:       background.DefaultBlurSigma,
		BackgroundScale: background.DefaultBackgroundScale,
		SlideFrames:     background.DefaultSlideFrames,
		LogLevel:        "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.FadeFrames < 0 {
		return fmt.Errorf("%w: fade_frames %d < 0", ErrInvalid, c.FadeFrames)
	}
	if c.SlideFrames < 0 {
		return fmt.Errorf("%w: slide_frames %d < 0", ErrInvalid, c.SlideFrames)
	}
	if c.BlurSigma < 0 || c.BlurSigma > background.MaxBlurSigma {
		return fmt.Errorf("%w: blur_sigma %v outside [0, %v]", ErrInvalid, c.BlurSigma, background.MaxBlurSigma)
	}
	if c.BackgroundScale <= 0 {
		return fmt.Errorf("%w: background_scale %v <= 0", ErrInvalid, c.BackgroundScale)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// ScreenOptions converts the display settings.
func (c Config) ScreenOptions() background.ScreenOptions {
	return background.ScreenOptions{
		FadeFrames:      c.FadeFrames,
		BlurSigma:       c.BlurSigma,
		BackgroundScale: c.BackgroundScale,
		SlideFrames:     c.SlideFrames,
	}
}
