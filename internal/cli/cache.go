package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/leftysay/pkg/cache"
	"github.com/matzehuels/leftysay/pkg/config"
	"github.com/matzehuels/leftysay/pkg/paths"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			before, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			if before.Entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := store.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cleared %d cached renders (%s)", before.Entries, formatBytes(before.Bytes))
			printDetail("%s: %s", before.Backend, before.Location)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, cacheLocation(cfg))
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			printCacheStats(stats)
			return nil
		},
	}
}

// cacheLocation is the directory or redis URL the configured backend uses.
// Passwords in the URL are masked.
func cacheLocation(cfg config.Config) string {
	if cfg.CacheBackend == config.BackendRedis {
		u, err := url.Parse(cfg.RedisURL)
		if err != nil {
			return "redis (unparseable url)"
		}
		return u.Redacted()
	}
	return paths.CacheDir()
}

func printCacheStats(s cache.Stats) {
	printKeyValue("backend", s.Backend)
	printKeyValue("location", orDash(s.Location))
	printKeyValue("entries", fmt.Sprintf("%d", s.Entries))
	used := formatBytes(s.Bytes)
	if s.MaxBytes > 0 {
		used += " of " + formatBytes(s.MaxBytes)
	}
	printKeyValue("size", used)
	if !s.Oldest.IsZero() {
		printKeyValue("oldest", s.Oldest.Format(time.DateTime))
	}
}
