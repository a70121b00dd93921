package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/muesli/termenv"

	"github.com/matzehuels/leftysay/pkg/buildinfo"
	"github.com/matzehuels/leftysay/pkg/config"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/pack"
	"github.com/matzehuels/leftysay/pkg/paths"
	"github.com/matzehuels/leftysay/pkg/term"
)

var goos = runtime.GOOS

// runDoctor reports everything that decides how a greeting renders.
// Problems are shown as warnings; the report itself never fails.
func (c *CLI) runDoctor(ctx context.Context, cfg config.Config) error {
	printHeading(appName + " doctor")
	printKeyValue("version", buildinfo.Short())
	printNewline()

	printHeading("chafa")
	renderer := c.newRenderer(cfg)
	if path, err := renderer.Locate(); err != nil {
		printCheck(false, "binary", errors.UserMessage(err))
	} else {
		printCheck(true, "binary", path)
		if v, err := renderer.Version(ctx); err != nil {
			printCheck(false, "version", errors.UserMessage(err))
		} else {
			printCheck(true, "version", v)
		}
	}
	printKeyValue("timeout", cfg.RenderTimeout.String())
	printNewline()

	env := term.Probe(os.Stdout)
	format := term.Resolve(term.Format(cfg.Format), env)
	printHeading("terminal")
	printKeyValue("size", fmt.Sprintf("%d cols x %d rows", env.Columns, env.Rows))
	printKeyValue("TERM", orDash(env.Term))
	printKeyValue("TERM_PROGRAM", orDash(env.TermProgram))
	printKeyValue("interactive", strconv.FormatBool(env.Interactive))
	printKeyValue("colors", profileName(env.ColorProfile))
	if env.Multiplexer != term.MultiplexerNone {
		printCheck(env.Passthrough, "multiplexer", fmt.Sprintf("%s (passthrough %t)", env.Multiplexer, env.Passthrough))
	}
	printKeyValue("format", fmt.Sprintf("%s -> %s", cfg.Format, format))
	printKeyValue("color mode", fmt.Sprintf("%s -> %s", cfg.Colors, term.ResolveColors(term.Colors(cfg.Colors), env)))
	printNewline()

	printHeading("config")
	if cfg.Path == "" {
		printKeyValue("file", "none, using defaults ("+paths.ConfigFile()+")")
	} else {
		printKeyValue("file", cfg.Path)
	}
	printKeyValue("enabled", strconv.FormatBool(cfg.Enabled))
	printKeyValue("default_pack", cfg.DefaultPack)
	printKeyValue("max_height", strconv.FormatFloat(cfg.MaxHeightRatio, 'g', -1, 64))
	printKeyValue("bubble_style", cfg.BubbleStyle)
	printKeyValue("layout", cfg.Layout)
	printKeyValue("animate", fmt.Sprintf("%t (%s)", cfg.Animate, cfg.AnimateDuration))
	for _, w := range cfg.Warnings {
		printCheck(false, "ignored", w)
	}
	printNewline()

	printHeading("directories")
	printKeyValue("config", paths.ConfigDir())
	printKeyValue("data", paths.DataDir())
	printKeyValue("cache", paths.CacheDir())
	printNewline()

	printHeading("packs")
	for _, dir := range paths.PackSearchPaths() {
		_, err := os.Stat(dir)
		printCheck(err == nil, "search", dir)
	}
	packs := pack.Discover(paths.PackSearchPaths(), c.Logger)
	_, err := pack.Find(packs, cfg.DefaultPack)
	printCheck(err == nil, "default", cfg.DefaultPack)
	printKeyValue("installed", strconv.Itoa(len(packs)))
	printNewline()

	printHeading("cache")
	printKeyValue("enabled", strconv.FormatBool(cfg.Cache))
	printKeyValue("backend", cfg.CacheBackend)
	if !cfg.Cache {
		return nil
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		printCheck(false, "store", errors.UserMessage(err))
		return nil
	}
	defer store.Close()
	stats, err := store.Stats(ctx)
	if err != nil {
		printCheck(false, "stats", err.Error())
		return nil
	}
	printCacheStats(stats)
	return nil
}

// profileName names a termenv color profile.
func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256"
	case termenv.ANSI:
		return "16"
	default:
		return "none"
	}
}
