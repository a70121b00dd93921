package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/leftysay/pkg/bubble"
	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/config"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/pack"
	"github.com/matzehuels/leftysay/pkg/paths"
	"github.com/matzehuels/leftysay/pkg/pipeline"
	"github.com/matzehuels/leftysay/pkg/term"
)

// greetOptions holds the root command's flags.
type greetOptions struct {
	text     string
	image    string
	pack     string
	list     bool
	doctor   bool
	noBubble bool
	seed     uint64
	pick     bool

	format         string
	colors         string
	maxHeightRatio float64
	animate        bool
	style          string
	layout         string
	noCache        bool

	// changed reports whether a flag was given on the command line.
	changed func(name string) bool
}

func (o *greetOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.text, "text", "t", "", "message to show instead of a pack greeting")
	f.StringVarP(&o.image, "image", "i", "", "image file to show instead of a pack image")
	f.StringVarP(&o.pack, "pack", "p", "", "pack to pick from (default from config)")
	f.BoolVar(&o.list, "list", false, "list installed packs and exit")
	f.BoolVar(&o.doctor, "doctor", false, "report chafa, terminal, config and cache status and exit")
	f.BoolVar(&o.noBubble, "no-bubble", false, "show the image only")
	f.Uint64Var(&o.seed, "seed", 0, "seed for reproducible message and image choice")
	f.BoolVar(&o.pick, "pick", false, "choose the pack image interactively")

	f.StringVar(&o.format, "format", "", "image format: auto, symbols, kitty, iterm, sixels")
	f.StringVar(&o.colors, "colors", "", "color depth: auto, full, 256, 16")
	f.Float64Var(&o.maxHeightRatio, "max-height-ratio", 0, "share of terminal rows the image may use, in (0, 1]")
	f.BoolVar(&o.animate, "animate", false, "play animated GIFs after the greeting")
	f.StringVar(&o.style, "style", "", "bubble style: "+strings.Join(bubble.Styles, ", "))
	f.StringVar(&o.layout, "layout", "", "arrangement: vertical or side")
	f.BoolVar(&o.noCache, "no-cache", false, "skip the render cache")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "symbols", "kitty", "iterm", "sixels"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("colors", cobra.FixedCompletions(
		[]string{"auto", "full", "256", "16"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(
		bubble.Styles, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("layout", cobra.FixedCompletions(
		[]string{"vertical", "side"}, cobra.ShellCompDirectiveNoFileComp))
}

// set reports whether flag name was given explicitly.
func (o *greetOptions) set(name string) bool {
	return o.changed != nil && o.changed(name)
}

// runGreet is the root command: report modes first, then the greeting.
func (c *CLI) runGreet(ctx context.Context, opts *greetOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	if opts.doctor {
		return c.runDoctor(ctx, cfg)
	}
	if !cfg.Enabled && !opts.list {
		c.Logger.Debug("greeting disabled in config", "config", cfg.Path)
		return nil
	}

	packs := pack.Discover(paths.PackSearchPaths(), c.Logger)
	if opts.list {
		printPackList(c.stdout, packs)
		return nil
	}

	req, err := buildRequest(cfg, opts)
	if err != nil {
		return err
	}

	picker := pack.NewRandomPicker()
	if opts.set("seed") {
		picker = pack.NewPicker(opts.seed)
	}
	choose := picker.Image
	if opts.pick {
		choose = pickImage
	}

	g, err := selectGreeting(opts, cfg, packs, picker, choose)
	if err != nil {
		return err
	}
	req.Message = g.message
	req.ImagePath = g.image
	c.Logger.Debug("greeting", "pack", g.packName(), "image", g.image, "message", g.message)

	env := term.Probe(os.Stdout)
	renderer := c.newRenderer(cfg)
	rc := c.newRenderCache(ctx, cfg, req.CacheEnabled)
	defer rc.Store().Close()

	prog := newProgress(c.Logger)
	spin := c.startSpinner(ctx, req.ImagePath)
	result, err := c.newRunner(renderer, rc).Execute(ctx, env, req)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("greeting composed")
	c.Logger.Debug("plan",
		"format", result.Plan.Format,
		"colors", result.Plan.Colors,
		"layout", result.Plan.Layout,
		"image", result.Plan.ImageCells,
		"cached", result.CacheInfo.ImageHit)

	reportProblems(result)

	fmt.Fprintln(c.stdout, strings.Join(result.Lines, "\n"))

	if shouldAnimate(req, result, env) {
		return c.animate(ctx, renderer, cfg, req, result)
	}
	return nil
}

// startSpinner shows a spinner on stderr while an image renders, when stderr
// is a terminal.
func (c *CLI) startSpinner(ctx context.Context, imagePath string) *Spinner {
	s := newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(imagePath))
	if imagePath != "" && c.Logger.GetLevel() > LogDebug && isatty.IsTerminal(os.Stderr.Fd()) {
		s.Start()
	}
	return s
}

// reportProblems prints recoverable failures without failing the run.
func reportProblems(result *pipeline.Result) {
	for _, w := range result.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}
	if result.ImageErr == nil {
		return
	}
	printWarning("image skipped: %s", errors.UserMessage(result.ImageErr))
	if errors.Is(result.ImageErr, errors.ErrCodeRenderUnavailable) {
		printDetail("%s", chafa.InstallHint(goos))
	}
}

// buildRequest merges config with explicitly given flags.
func buildRequest(cfg config.Config, opts *greetOptions) (pipeline.Request, error) {
	req := pipeline.Request{
		BubbleEnabled:  !opts.noBubble,
		BubbleStyle:    cfg.BubbleStyle,
		Layout:         compose.Mode(cfg.Layout),
		Format:         term.Format(cfg.Format),
		Colors:         term.Colors(cfg.Colors),
		MaxHeightRatio: cfg.MaxHeightRatio,
		Animate:        cfg.Animate,
		CacheEnabled:   cfg.Cache && !opts.noCache,
	}

	if opts.set("format") {
		f, err := term.ParseFormat(opts.format)
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if opts.set("colors") {
		col, err := term.ParseColors(opts.colors)
		if err != nil {
			return req, err
		}
		req.Colors = col
	}
	if opts.set("layout") {
		mode, err := compose.ParseMode(opts.layout)
		if err != nil {
			return req, err
		}
		req.Layout = mode
	}
	if opts.set("style") {
		if !bubble.KnownStyle(opts.style) {
			return req, errors.New(errors.ErrCodeInvalidInput,
				"unknown bubble style %q (must be one of %s)", opts.style, strings.Join(bubble.Styles, ", "))
		}
		req.BubbleStyle = opts.style
	}
	if opts.set("max-height-ratio") {
		if err := errors.ValidateMaxHeightRatio(opts.maxHeightRatio); err != nil {
			return req, err
		}
		req.MaxHeightRatio = opts.maxHeightRatio
	}
	if opts.set("animate") {
		req.Animate = opts.animate
	}

	req.SetDefaults()
	return req, nil
}

// greeting is the chosen message and image.
type greeting struct {
	message string
	image   string
	pack    *pack.Pack
}

func (g greeting) packName() string {
	if g.pack == nil {
		return ""
	}
	return g.pack.Name
}

// selectGreeting picks the message and the image.
//
// --text and --image win. Otherwise both come from the pack named by --pack
// or default_pack; a pack without messages falls back to the default
// message. When the default pack is not installed the greeting is bubble
// only, but a pack asked for by name must exist.
func selectGreeting(opts *greetOptions, cfg config.Config, packs []*pack.Pack, picker *pack.Picker, choose func(*pack.Pack) (string, error)) (greeting, error) {
	name := cfg.DefaultPack
	if opts.set("pack") {
		name = opts.pack
	}
	pk, findErr := pack.Find(packs, name)

	var g greeting
	if findErr == nil {
		g.pack = pk
	}

	switch {
	case opts.set("text"):
		g.message = opts.text
	case g.pack != nil && len(g.pack.Messages) > 0:
		g.message = picker.Message(g.pack)
	default:
		g.message = pipeline.DefaultMessage
	}

	if opts.set("image") {
		g.image = paths.ExpandHome(opts.image)
		return g, nil
	}
	if findErr != nil {
		if opts.set("pack") || opts.noBubble {
			return g, findErr
		}
		return g, nil
	}

	img, err := choose(g.pack)
	if err != nil {
		return g, err
	}
	g.image = img
	return g, nil
}
