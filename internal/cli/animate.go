package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/config"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/pipeline"
	"github.com/matzehuels/leftysay/pkg/term"
)

// shouldAnimate reports whether the static greeting should be followed by
// playing the image: animation requested, a GIF that rendered, and a
// terminal to play it on.
func shouldAnimate(req pipeline.Request, result *pipeline.Result, env term.EnvSignals) bool {
	return req.Animate &&
		env.Interactive &&
		result.Image != nil &&
		result.ImageErr == nil &&
		strings.EqualFold(filepath.Ext(req.ImagePath), ".gif")
}

// animate hands the terminal to chafa for animate_duration, sized like the
// static image. Failures only warn; the greeting has already been printed.
func (c *CLI) animate(ctx context.Context, renderer *chafa.Chafa, cfg config.Config, req pipeline.Request, result *pipeline.Result) error {
	if err := errors.ValidateImagePath(req.ImagePath); err != nil {
		printWarning("animation skipped: %s", errors.UserMessage(err))
		return nil
	}

	plan := result.Plan
	play := chafa.Request{
		ImagePath:   req.ImagePath,
		Format:      plan.Format,
		Colors:      plan.Colors,
		Cells:       plan.ImageCells,
		Passthrough: plan.Passthrough,
	}

	err := renderer.Play(ctx, play, cfg.AnimateDuration.Duration, c.stdout)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		printWarning("animation skipped: %s", errors.UserMessage(err))
	}
	return nil
}
