package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/leftysay/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()
	if !c.Enabled || c.DefaultPack != "default" || c.MaxHeightRatio != 0.55 {
		t.Errorf("Default() = %+v", c)
	}
	if c.CacheMaxBytes() != 64<<20 {
		t.Errorf("CacheMaxBytes() = %d", c.CacheMaxBytes())
	}
	if c.BubbleStyle != "classic" || c.Layout != "vertical" || c.CacheBackend != BackendFile {
		t.Errorf("Default() enums = %+v", c)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
enabled = false
default_pack = "lefty"
format = "kitty"
colors = "truecolor"
max_height_ratio = 0.4
bubble_style = "round"
layout = "side"
cache = false
cache_max_mb = 8
animate = true
animate_duration = "5s"
render_timeout = "2s"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.Enabled || c.DefaultPack != "lefty" || c.Format != "kitty" || c.Colors != "full" {
		t.Errorf("parsed = %+v", c)
	}
	if c.MaxHeightRatio != 0.4 || c.BubbleStyle != "round" || c.Layout != "side" {
		t.Errorf("parsed = %+v", c)
	}
	if c.Cache || c.CacheMaxBytes() != 8<<20 || !c.Animate {
		t.Errorf("parsed = %+v", c)
	}
	if c.AnimateDuration.Duration != 5*time.Second || c.RenderTimeout.Duration != 2*time.Second {
		t.Errorf("durations = %v, %v", c.AnimateDuration, c.RenderTimeout)
	}
	if len(c.Warnings) != 0 {
		t.Errorf("Warnings = %q", c.Warnings)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := Parse([]byte(`format = "symbols"`))
	if err != nil {
		t.Fatal(err)
	}
	if !c.Enabled || !c.Cache || c.MaxHeightRatio != DefaultMaxHeightRatio {
		t.Errorf("missing keys lost defaults: %+v", c)
	}
}

func TestNormalizeFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(Config) bool
	}{
		{"ratio zero", `max_height_ratio = 0.0`, func(c Config) bool { return c.MaxHeightRatio == DefaultMaxHeightRatio }},
		{"ratio above one", `max_height_ratio = 3.5`, func(c Config) bool { return c.MaxHeightRatio == DefaultMaxHeightRatio }},
		{"cache size zero", `cache_max_mb = 0`, func(c Config) bool { return c.CacheMaxMB == DefaultCacheMaxMB }},
		{"negative timeout", `render_timeout = "-1s"`, func(c Config) bool { return c.RenderTimeout.Duration == DefaultRenderTimeout }},
		{"empty pack", `default_pack = ""`, func(c Config) bool { return c.DefaultPack == DefaultPack }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(c) {
				t.Errorf("not normalized: %+v", c)
			}
		})
	}
}

func TestParseRejectsBadEnums(t *testing.T) {
	inputs := []string{
		`format = "png"`,
		`colors = "8"`,
		`layout = "diagonal"`,
		`cache_backend = "memcached"`,
		`cache_backend = "redis"`,
		`cache_backend = "redis"
redis_url = "http://localhost"`,
		`animate_duration = "soon"`,
		`enabled = `,
	}
	for _, in := range inputs {
		if _, err := Parse([]byte(in)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Parse(%q) error = %v, want INVALID_CONFIG", in, err)
		}
	}
}

func TestParseWarnings(t *testing.T) {
	c, err := Parse([]byte(`
bubble_style = "sparkly"
colour = "red"
`))
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(c.Warnings, "\n")
	if !strings.Contains(joined, "unknown key colour") || !strings.Contains(joined, "sparkly") {
		t.Errorf("Warnings = %q", c.Warnings)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if c.Path != "" || !c.Enabled {
		t.Errorf("missing file config = %+v", c)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`cache_backend = "redis"
redis_url = "redis://localhost:6379/1"`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Path != path || c.CacheBackend != BackendRedis || c.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Load = %+v", c)
	}

	if err := os.WriteFile(path, []byte(`format = 12`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("type mismatch error = %v, want INVALID_CONFIG", err)
	}
}
