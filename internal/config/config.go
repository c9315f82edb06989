package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MediaDir        string   `koanf:"media_dir"`
	Extensions      []string `koanf:"extensions"`
	PreferredDevice string   `koanf:"preferred_device"`

	Accent     string `koanf:"accent"`
	AccentDark string `koanf:"accent_dark"`
	Background string `koanf:"background"`

	// CompletionDelayMS is the grace period between the last decoded
	// frame and the track-finished notification.
	CompletionDelayMS int  `koanf:"completion_delay_ms"`
	Autoplay          bool `koanf:"autoplay"`

	LogFile string `koanf:"log_file"`
}

// Load reads the configuration files in order of priority (last wins).
func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		MediaDir:          "media",
		Extensions:        []string{".wav"},
		PreferredDevice:   "MAX98357A",
		Accent:            "#1aff80",
		AccentDark:        "#0e8046",
		Background:        "#000000",
		CompletionDelayMS: 1000,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MediaDir = expandPath(cfg.MediaDir)
	cfg.LogFile = expandPath(cfg.LogFile)
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".wav"}
	}
	if cfg.CompletionDelayMS <= 0 {
		cfg.CompletionDelayMS = 1000
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/pocketradio/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pocketradio", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// CompletionDelay returns the grace period as a duration.
func (c *Config) CompletionDelay() time.Duration {
	return time.Duration(c.CompletionDelayMS) * time.Millisecond
}

// Colors resolves the configured hex colors. Invalid values fall back
// to the defaults rather than failing startup.
func (c *Config) Colors() (accent, accentDark, background color.Color) {
	accent = parseHexOr(c.Accent, color.RGBA{R: 0x1a, G: 0xff, B: 0x80, A: 0xff})
	accentDark = parseHexOr(c.AccentDark, color.RGBA{R: 0x0e, G: 0x80, B: 0x46, A: 0xff})
	background = parseHexOr(c.Background, color.RGBA{A: 0xff})
	return accent, accentDark, background
}

func parseHexOr(s string, fallback color.RGBA) color.Color {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// ParseHexColor parses a #rrggbb color string.
func ParseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
