package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pixelmill/pkg/logger"
)

var AppConfig *Config

// LoadEnv pulls a local .env file into the process environment, if present.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads defaults, an optional config.yaml and PIXELMILL_* environment
// variables into AppConfig. Invalid configuration is fatal.
func Load() *Config {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PIXELMILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("watch.dir", "PIXELMILL_WATCH_DIR")
	v.BindEnv("watch.out", "PIXELMILL_WATCH_OUT")
	v.BindEnv("watch.preset", "PIXELMILL_WATCH_PRESET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.LogInfo("Config file not found. Using environment variables and defaults.")
		} else {
			logger.LogWarn("Config file found but unreadable: %v", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		log.Fatalf("[CRITICAL] Error: Failed to parse configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] CONFIGURATION ERROR: %v", err)
	}

	AppConfig = cfg
	return cfg
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "pixelmill")
	v.SetDefault("app.version", "1.0.0")

	// Preset table. Callers select by name or pass custom options.
	v.SetDefault("presets.avatar.width", 256)
	v.SetDefault("presets.avatar.height", 256)
	v.SetDefault("presets.avatar.fit", "cover")
	v.SetDefault("presets.avatar.position", "center")
	v.SetDefault("presets.avatar.format", "webp")
	v.SetDefault("presets.avatar.quality", 0.8)

	v.SetDefault("presets.thumbnail.width", 320)
	v.SetDefault("presets.thumbnail.height", 320)
	v.SetDefault("presets.thumbnail.fit", "cover")
	v.SetDefault("presets.thumbnail.position", "center")
	v.SetDefault("presets.thumbnail.format", "auto")
	v.SetDefault("presets.thumbnail.quality", 0.75)

	v.SetDefault("presets.hero.width", 1920)
	v.SetDefault("presets.hero.height", 1080)
	v.SetDefault("presets.hero.fit", "cover")
	v.SetDefault("presets.hero.position", "smart")
	v.SetDefault("presets.hero.format", "auto")
	v.SetDefault("presets.hero.quality", 0.82)

	v.SetDefault("presets.blog.width", 1200)
	v.SetDefault("presets.blog.height", 800)
	v.SetDefault("presets.blog.fit", "inside")
	v.SetDefault("presets.blog.format", "auto")
	v.SetDefault("presets.blog.quality", 0.8)

	v.SetDefault("presets.recipe.width", 800)
	v.SetDefault("presets.recipe.height", 600)
	v.SetDefault("presets.recipe.fit", "cover")
	v.SetDefault("presets.recipe.position", "center")
	v.SetDefault("presets.recipe.format", "auto")
	v.SetDefault("presets.recipe.quality", 0.8)

	v.SetDefault("presets.icon.width", 64)
	v.SetDefault("presets.icon.height", 64)
	v.SetDefault("presets.icon.fit", "cover")
	v.SetDefault("presets.icon.format", "png")
	v.SetDefault("presets.icon.quality", 1.0)
	v.SetDefault("presets.icon.lossless", true)

	// Result cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_capacity", 100) // MB
	v.SetDefault("cache.ttl", "30m")

	// Watch mode
	v.SetDefault("watch.dir", "./incoming")
	v.SetDefault("watch.out", "./optimized")
	v.SetDefault("watch.preset", "blog")
	v.SetDefault("watch.events_per_second", 2.0)
	v.SetDefault("watch.burst", 4)

	// Responsive breakpoints
	v.SetDefault("responsive.widths", []int{320, 640, 768, 1024, 1280, 1920})
}
