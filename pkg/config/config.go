// Package config loads leftysay's config.toml.
//
// Every key is optional. Missing keys keep their defaults, out-of-range
// numbers fall back to defaults, and unknown enum values are rejected with
// INVALID_CONFIG so a typo never silently changes behavior.
//
// Example:
//
//	enabled = true
//	default_pack = "default"
//	format = "auto"          # auto, symbols, kitty, iterm, sixels
//	colors = "auto"          # auto, full, 256, 16
//	max_height_ratio = 0.55
//	bubble_style = "classic" # classic, round, square, thick, double
//	layout = "vertical"      # vertical, side
//	cache = true
//	cache_max_mb = 64
//	cache_backend = "file"   # file, redis
//	redis_url = "redis://localhost:6379/0"
//	animate = false
//	animate_duration = "3s"
//	render_timeout = "10s"
package config

import (
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/leftysay/pkg/bubble"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/term"
)

// Defaults.
const (
	DefaultPack            = "default"
	DefaultMaxHeightRatio  = 0.55
	DefaultCacheMaxMB      = 64
	DefaultAnimateDuration = 3 * time.Second
	DefaultRenderTimeout   = 10 * time.Second
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the merged content of config.toml.
type Config struct {
	Enabled         bool     `toml:"enabled"`
	DefaultPack     string   `toml:"default_pack"`
	Format          string   `toml:"format"`
	Colors          string   `toml:"colors"`
	MaxHeightRatio  float64  `toml:"max_height_ratio"`
	BubbleStyle     string   `toml:"bubble_style"`
	Layout          string   `toml:"layout"`
	Cache           bool     `toml:"cache"`
	CacheMaxMB      int64    `toml:"cache_max_mb"`
	CacheBackend    string   `toml:"cache_backend"`
	RedisURL        string   `toml:"redis_url"`
	Animate         bool     `toml:"animate"`
	AnimateDuration Duration `toml:"animate_duration"`
	RenderTimeout   Duration `toml:"render_timeout"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
	// Warnings lists unknown keys and values that were ignored.
	Warnings []string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Enabled:         true,
		DefaultPack:     DefaultPack,
		Format:          string(term.FormatAuto),
		Colors:          string(term.ColorsAuto),
		MaxHeightRatio:  DefaultMaxHeightRatio,
		BubbleStyle:     bubble.StyleClassic,
		Layout:          string(compose.Vertical),
		Cache:           true,
		CacheMaxMB:      DefaultCacheMaxMB,
		CacheBackend:    BackendFile,
		AnimateDuration: Duration{DefaultAnimateDuration},
		RenderTimeout:   Duration{DefaultRenderTimeout},
	}
}

// Load reads path. A missing file is not an error and yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid TOML")
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, "unknown key "+key.String())
	}
	sort.Strings(unknown)
	cfg.Warnings = append(cfg.Warnings, unknown...)

	if err := cfg.Normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Normalize replaces out-of-range values with defaults and validates enums.
func (c *Config) Normalize() error {
	if c.MaxHeightRatio <= 0 || c.MaxHeightRatio > 1 {
		c.Warnings = append(c.Warnings, "max_height_ratio out of range, using default")
		c.MaxHeightRatio = DefaultMaxHeightRatio
	}
	if c.CacheMaxMB <= 0 {
		c.CacheMaxMB = DefaultCacheMaxMB
	}
	if c.AnimateDuration.Duration <= 0 {
		c.AnimateDuration = Duration{DefaultAnimateDuration}
	}
	if c.RenderTimeout.Duration <= 0 {
		c.RenderTimeout = Duration{DefaultRenderTimeout}
	}
	if c.DefaultPack == "" {
		c.DefaultPack = DefaultPack
	}

	format, err := term.ParseFormat(c.Format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "format")
	}
	c.Format = string(format)

	colors, err := term.ParseColors(c.Colors)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors")
	}
	c.Colors = string(colors)

	layout, err := compose.ParseMode(c.Layout)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	c.Layout = string(layout)

	if c.BubbleStyle == "" {
		c.BubbleStyle = bubble.StyleClassic
	}
	if !bubble.KnownStyle(c.BubbleStyle) {
		c.Warnings = append(c.Warnings, "unknown bubble_style "+c.BubbleStyle+", drawing classic")
	}

	switch c.CacheBackend {
	case "", BackendFile:
		c.CacheBackend = BackendFile
	case BackendRedis:
		if err := errors.ValidateRedisURL(c.RedisURL); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache_backend %q (must be file or redis)", c.CacheBackend)
	}
	return nil
}

// CacheMaxBytes returns the cache budget in bytes.
func (c Config) CacheMaxBytes() int64 {
	return c.CacheMaxMB << 20
}

// Duration is a time.Duration written as a string such as "3s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
