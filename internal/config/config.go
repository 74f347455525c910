// Package config holds server configuration, loaded from an optional YAML
// file and overridden by flags in cmd.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/playback"
)

type Config struct {
	// Root is the catalog directory containing images/ and sessions/.
	Root string `yaml:"root"`
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// ClientDir is the static browser client to serve at /.
	ClientDir string `yaml:"client_dir"`
	// PublicURL is the externally reachable base URL, used for share links
	// and QR codes. Defaults to http://localhost<listen>.
	PublicURL string `yaml:"public_url"`
	// ThumbWidth is the gallery thumbnail width in pixels.
	ThumbWidth int `yaml:"thumb_width"`
	// TickMs is the replay scheduler period in milliseconds.
	TickMs int64 `yaml:"tick_ms"`
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		Root:       "catalog",
		Listen:     ":8090",
		ClientDir:  "client/dist",
		ThumbWidth: 320,
		TickMs:     playback.TickIntervalMs,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Finalize fills derived defaults after file and flag handling.
func (c *Config) Finalize() {
	if c.PublicURL == "" {
		c.PublicURL = "http://localhost" + c.Listen
	}
	if c.TickMs <= 0 {
		c.TickMs = playback.TickIntervalMs
	}
}

// TickInterval returns the replay scheduler period.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}
