package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/bubble"
	"github.com/matzehuels/leftysay/pkg/cache"
	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/observability"
	"github.com/matzehuels/leftysay/pkg/term"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different requests.
type Runner struct {
	Renderer chafa.Renderer
	Cache    *cache.RenderCache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner around renderer.
// If renderCache is nil, caching is disabled.
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(renderer chafa.Renderer, renderCache *cache.RenderCache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if renderCache == nil {
		renderCache = cache.NewRenderCache(nil, false, logger)
	}
	return &Runner{
		Renderer: renderer,
		Cache:    renderCache,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs resolve → (bubble ∥ image) → compose for one request.
//
// An image that cannot be rendered is not an error: Result.ImageErr is set
// and the bubble is shown alone. Execute fails only when the request is
// invalid, ctx is cancelled, or nothing at all can be shown (NO_CONTENT).
func (r *Runner) Execute(ctx context.Context, env term.EnvSignals, req Request) (*Result, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	plan := NewPlan(env, req)
	result := &Result{Plan: plan}

	r.Logger.Debug("resolved capabilities",
		"format", plan.Format,
		"colors", plan.Colors,
		"layout", plan.Layout,
		"terminal", fmt.Sprintf("%dx%d", env.Columns, env.Rows),
		"image_cells", plan.ImageCells)

	var g errgroup.Group

	if req.BubbleEnabled {
		g.Go(func() error {
			t := time.Now()
			b, warn := r.Bubble(req, plan)
			result.Bubble = &b
			if warn != nil {
				result.Warnings = append(result.Warnings, warn)
			}
			result.Stats.BubbleTime = time.Since(t)
			return nil
		})
	}

	if req.ImagePath != "" {
		g.Go(func() error {
			t := time.Now()
			img, hit, key, err := r.RenderImageWithCacheInfo(ctx, req, plan)
			result.Stats.ImageTime = time.Since(t)
			result.CacheInfo = CacheInfo{ImageHit: hit, Key: key}
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				result.ImageErr = err
				return nil
			}
			result.Image = &img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.ImageErr != nil {
		r.Logger.Debug("image unavailable, showing bubble only", "err", result.ImageErr)
	}

	composeStart := time.Now()
	lines, err := compose.Compose(result.Bubble, result.Image, compose.Options{
		BubbleEnabled: req.BubbleEnabled,
		Mode:          plan.Layout,
	})
	result.Stats.ComposeTime = time.Since(composeStart)
	if err != nil && result.ImageErr != nil {
		err = errors.Wrap(errors.ErrCodeNoContent, result.ImageErr, "nothing to display")
	}
	observability.Pipeline().OnComposeComplete(ctx, string(plan.Layout), len(lines), result.Stats.ComposeTime, err)
	if err != nil {
		return nil, err
	}

	result.Lines = lines
	result.Stats.TotalTime = time.Since(start)

	r.Logger.Debug("composed greeting",
		"lines", len(lines),
		"image_cached", result.CacheInfo.ImageHit,
		"duration", result.Stats.TotalTime)

	return result, nil
}

// Bubble lays out the message for plan. The returned error is a
// LAYOUT_OVERFLOW warning, never a failure.
func (r *Runner) Bubble(req Request, plan Plan) (block.Block, error) {
	_, warn := bubble.Fit(plan.BubbleWidth)
	if warn != nil {
		r.Logger.Warn("terminal too narrow for bubble", "width_hint", plan.BubbleWidth)
	}
	return bubble.Layout(req.Message, plan.BubbleWidth, req.BubbleStyle), warn
}

// RenderImageWithCacheInfo renders the request's image through the cache.
// It returns the block, whether it was a cache hit, and the cache key.
func (r *Runner) RenderImageWithCacheInfo(ctx context.Context, req Request, plan Plan) (block.Block, bool, string, error) {
	if r.Renderer == nil {
		return block.Block{}, false, "", errors.New(errors.ErrCodeRenderUnavailable, "no image renderer configured")
	}

	hash, err := cache.HashFile(req.ImagePath)
	if err != nil {
		return block.Block{}, false, "", errors.Wrap(errors.ErrCodeRenderFailed, err, "cannot read image %s", req.ImagePath)
	}

	key := r.Keyer.ImageKey(hash, cache.ImageKeyOpts{
		Cols:        plan.ImageCells.Width,
		Rows:        plan.ImageCells.Height,
		Format:      string(plan.Format),
		Colors:      string(plan.Colors),
		Animate:     req.Animate,
		Passthrough: string(plan.Passthrough),
	})

	compute := func(ctx context.Context) (block.Block, error) {
		return r.render(ctx, req, plan)
	}

	var (
		b   block.Block
		hit bool
	)
	if req.CacheEnabled {
		b, hit, err = r.Cache.GetOrCompute(ctx, key, compute)
	} else {
		b, err = compute(ctx)
	}
	if err != nil {
		return block.Block{}, false, key, err
	}
	return b.Clip(plan.ImageCells.Height), hit, key, nil
}

func (r *Runner) render(ctx context.Context, req Request, plan Plan) (block.Block, error) {
	observability.Pipeline().OnRenderStart(ctx, req.ImagePath, string(plan.Format))
	start := time.Now()

	b, err := r.Renderer.Render(ctx, chafa.Request{
		ImagePath:   req.ImagePath,
		Format:      plan.Format,
		Colors:      plan.Colors,
		Cells:       plan.ImageCells,
		Passthrough: plan.Passthrough,
	})

	observability.Pipeline().OnRenderComplete(ctx, string(plan.Format), time.Since(start), err)
	if err != nil {
		return block.Block{}, err
	}
	if b.Empty() {
		return block.Block{}, errors.New(errors.ErrCodeRenderFailed, "renderer returned no lines")
	}
	return b, nil
}
