package config

import (
	"fmt"
	"time"

	"pixelmill/pkg/optimizer"
)

// Config is the full application configuration, populated by viper from
// defaults, config.yaml and PIXELMILL_* environment variables.
type Config struct {
	// App: identity used in banners and logs
	App AppInfo `mapstructure:"app"`

	// Presets: the named optimization table exposed to callers
	Presets map[string]Preset `mapstructure:"presets"`

	// Cache: encoded-result cache settings
	Cache CacheConfig `mapstructure:"cache"`

	// Watch: directory watch mode settings
	Watch WatchConfig `mapstructure:"watch"`

	// Responsive: breakpoint widths for responsive variant sets
	Responsive ResponsiveConfig `mapstructure:"responsive"`
}

type AppInfo struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Preset is the serializable form of optimizer.Options used in the config
// file and defaults.
type Preset struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Fit        string  `mapstructure:"fit"`
	Position   string  `mapstructure:"position"`
	Format     string  `mapstructure:"format"`
	Background string  `mapstructure:"background"`
	Quality    float64 `mapstructure:"quality"`
	Blur       float64 `mapstructure:"blur"`
	Sharpen    float64 `mapstructure:"sharpen"`
	Gamma      float64 `mapstructure:"gamma"`
	Lossless   bool    `mapstructure:"lossless"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// MaxCapacity: cache size limit in MB
	MaxCapacity int `mapstructure:"max_capacity"`

	// TTL: entry lifetime, time.ParseDuration syntax (e.g., "30m")
	TTL string `mapstructure:"ttl"`
}

type WatchConfig struct {
	// Dir: input directory monitored for new images
	Dir string `mapstructure:"dir"`

	// Out: directory optimized outputs are written to
	Out string `mapstructure:"out"`

	// Preset: name of the preset applied to every incoming file
	Preset string `mapstructure:"preset"`

	// EventsPerSecond / Burst: throttle for filesystem event storms
	EventsPerSecond float64 `mapstructure:"events_per_second"`
	Burst           int     `mapstructure:"burst"`
}

type ResponsiveConfig struct {
	Widths []int `mapstructure:"widths"`
}

// Options converts the preset into pipeline options, validating the enum
// fields.
func (p Preset) Options() (optimizer.Options, error) {
	fit, err := optimizer.ParseFit(p.Fit)
	if err != nil {
		return optimizer.Options{}, err
	}
	pos, err := optimizer.ParseAnchor(p.Position)
	if err != nil {
		return optimizer.Options{}, err
	}
	format, err := optimizer.ParseFormat(p.Format)
	if err != nil {
		return optimizer.Options{}, err
	}

	return optimizer.Options{
		Quality:    p.Quality,
		MaxWidth:   p.Width,
		MaxHeight:  p.Height,
		Format:     format,
		Fit:        fit,
		Position:   pos,
		Blur:       p.Blur,
		Sharpen:    p.Sharpen,
		Gamma:      p.Gamma,
		Background: p.Background,
		Lossless:   p.Lossless,
	}, nil
}

// PresetOptions converts the whole preset table.
func (c *Config) PresetOptions() (map[string]optimizer.Options, error) {
	out := make(map[string]optimizer.Options, len(c.Presets))
	for name, p := range c.Presets {
		opts, err := p.Options()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = opts
	}
	return out, nil
}

// CacheTTL parses the configured cache TTL, falling back to zero (meaning
// "use the cache package default") on bad input.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

// Validate rejects configurations the pipeline would choke on.
func (c *Config) Validate() error {
	for name, p := range c.Presets {
		if p.Width < 0 || p.Height < 0 {
			return fmt.Errorf("preset %q: negative dimensions (%dx%d)", name, p.Width, p.Height)
		}
		if p.Quality < 0 || p.Quality > 1 {
			return fmt.Errorf("preset %q: quality %v out of range 0-1", name, p.Quality)
		}
		if _, err := p.Options(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	if c.Watch.EventsPerSecond <= 0 {
		return fmt.Errorf("watch.events_per_second must be positive, got %v", c.Watch.EventsPerSecond)
	}
	for _, w := range c.Responsive.Widths {
		if w <= 0 {
			return fmt.Errorf("responsive.widths: non-positive width %d", w)
		}
	}
	return nil
}
