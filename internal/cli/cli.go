package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/leftysay/pkg/buildinfo"
	"github.com/matzehuels/leftysay/pkg/cache"
	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/config"
	"github.com/matzehuels/leftysay/pkg/paths"
	"github.com/matzehuels/leftysay/pkg/pipeline"
)

const appName = "leftysay"

// Log levels re-exported for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	stdout  io.Writer
	verbose bool
}

// New creates a CLI that logs to w at level. Greetings are written to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdout: os.Stdout,
	}
}

// SetLogLevel changes the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the leftysay command tree.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &greetOptions{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Greet your terminal with a picture and a speech bubble",
		Long: `leftysay prints a greeting: a word-wrapped speech bubble next to an image
from an installed pack, rendered for your terminal by chafa.

Settings come from config.toml (see --doctor for its location); flags
override them for a single run.`,
		Example: `  leftysay
  leftysay --text "Good morning" --pack lefty
  leftysay --image ~/Pictures/cat.png --layout side
  leftysay --no-bubble --format symbols --colors 256`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			installLogHooks(c.Logger, c.verbose)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.changed = cmd.Flags().Changed
			return c.runGreet(cmd.Context(), opts)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	opts.register(root)

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads config.toml and logs anything that was ignored.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return cfg, err
	}
	for _, w := range cfg.Warnings {
		c.Logger.Warn(w, "config", cfg.Path)
	}
	return cfg, nil
}

// openStore opens the configured cache backend.
func openStore(ctx context.Context, cfg config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.BackendRedis:
		return cache.NewRedisStore(ctx, cache.RedisConfig{
			URL:      cfg.RedisURL,
			MaxBytes: cfg.CacheMaxBytes(),
		})
	default:
		return cache.NewFileStore(paths.CacheDir(), cfg.CacheMaxBytes())
	}
}

// newRenderCache opens the store when caching is on. A store that cannot be
// opened disables the cache for this run.
func (c *CLI) newRenderCache(ctx context.Context, cfg config.Config, enabled bool) *cache.RenderCache {
	if !enabled {
		return cache.NewRenderCache(cache.NewNullStore(), false, c.Logger)
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		c.Logger.Warn("render cache disabled", "backend", cfg.CacheBackend, "err", err)
		return cache.NewRenderCache(cache.NewNullStore(), false, c.Logger)
	}
	return cache.NewRenderCache(store, true, c.Logger)
}

// newRenderer builds the chafa renderer, honoring LEFTYSAY_CHAFA.
func (c *CLI) newRenderer(cfg config.Config) *chafa.Chafa {
	return chafa.New(chafa.Options{
		Path:    paths.ChafaOverride(),
		Timeout: cfg.RenderTimeout.Duration,
		Logger:  c.Logger,
	})
}

// newRunner wires renderer and cache into a pipeline runner.
func (c *CLI) newRunner(renderer chafa.Renderer, rc *cache.RenderCache) *pipeline.Runner {
	return pipeline.NewRunner(renderer, rc, cache.NewDefaultKeyer(), c.Logger)
}
