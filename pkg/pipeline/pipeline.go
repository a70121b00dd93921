// Package pipeline provides the greeting pipeline for leftysay.
//
// A run resolves the terminal's image protocol, lays out the speech bubble
// and renders the image (through the render cache) concurrently, then
// composes both into the final lines. Nothing is written to the terminal
// here; the caller prints Result.Lines once Execute returns.
//
// # Usage
//
//	runner := pipeline.NewRunner(chafa.New(chafa.Options{}), renderCache, nil, logger)
//	req := pipeline.Request{
//	    Message:       "Hello from leftysay!",
//	    ImagePath:     "/usr/share/leftysay/packs/lefty/images/wave.png",
//	    BubbleEnabled: true,
//	}
//	result, err := runner.Execute(ctx, term.Probe(os.Stdout), req)
//	if err != nil {
//	    return err
//	}
//	if result.ImageErr != nil {
//	    // bubble only; warn the user
//	}
//	fmt.Println(strings.Join(result.Lines, "\n"))
package pipeline

import (
	"time"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/bubble"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/term"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config
// =============================================================================

const (
	// DefaultMessage is shown when neither --text nor the pack supplies one.
	DefaultMessage = "Hello from leftysay!"

	// DefaultMaxHeightRatio is the share of terminal rows the image may use.
	DefaultMaxHeightRatio = 0.55

	// DefaultBubbleStyle is the default border style.
	DefaultBubbleStyle = bubble.StyleClassic

	// DefaultLayout is the default arrangement of bubble and image.
	DefaultLayout = compose.Vertical

	// MaxBubbleWidth caps the bubble's text width in cells.
	MaxBubbleWidth = 60

	// BubblePadding is the border and padding the bubble adds around its text.
	BubblePadding = 4
)

// =============================================================================
// Request - Pipeline Input
// =============================================================================

// Request is one fully merged greeting request. The CLI builds it from
// config and flags; the pipeline never mutates it after validation.
type Request struct {
	Message       string `json:"message"`
	ImagePath     string `json:"image_path,omitempty"`
	BubbleEnabled bool   `json:"bubble_enabled"`
	BubbleStyle   string `json:"bubble_style,omitempty"`

	Layout         compose.Mode `json:"layout,omitempty"`
	Format         term.Format  `json:"format,omitempty"`
	Colors         term.Colors  `json:"colors,omitempty"`
	MaxHeightRatio float64      `json:"max_height_ratio,omitempty"`
	Animate        bool         `json:"animate,omitempty"`

	// CacheEnabled toggles the render cache for this request. The size
	// budget belongs to the store.
	CacheEnabled bool `json:"cache_enabled"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// SetDefaults fills zero values with defaults.
func (r *Request) SetDefaults() {
	if r.BubbleStyle == "" {
		r.BubbleStyle = DefaultBubbleStyle
	}
	if r.Layout == "" {
		r.Layout = DefaultLayout
	}
	if r.Format == "" {
		r.Format = term.FormatAuto
	}
	if r.Colors == "" {
		r.Colors = term.ColorsAuto
	}
	if r.MaxHeightRatio == 0 {
		r.MaxHeightRatio = DefaultMaxHeightRatio
	}
}

// Validate checks enum fields and ranges. It does not touch the filesystem;
// an unreadable image surfaces later as a recoverable render error.
func (r *Request) Validate() error {
	if _, err := term.ParseFormat(string(r.Format)); err != nil {
		return err
	}
	if _, err := term.ParseColors(string(r.Colors)); err != nil {
		return err
	}
	if _, err := compose.ParseMode(string(r.Layout)); err != nil {
		return err
	}
	if err := errors.ValidateMaxHeightRatio(r.MaxHeightRatio); err != nil {
		return err
	}
	if !r.BubbleEnabled && r.ImagePath == "" {
		return errors.New(errors.ErrCodeNoContent, "bubble disabled and no image given")
	}
	return nil
}

// ValidateAndSetDefaults applies defaults, then validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	r.SetDefaults()
	if err := r.Validate(); err != nil {
		return err
	}
	r.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lines is the composed greeting, ready to print.
	Lines []string

	// Plan records the resolved format, colors and size budgets.
	Plan Plan

	// Bubble and Image are the intermediate blocks; either may be nil.
	Bubble *block.Block
	Image  *block.Block

	// ImageErr is set when the image could not be rendered. The greeting
	// still succeeded with the bubble alone.
	ImageErr error

	// Warnings holds non-fatal problems such as LAYOUT_OVERFLOW.
	Warnings []error

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the image came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BubbleTime  time.Duration
	ImageTime   time.Duration
	ComposeTime time.Duration
	TotalTime   time.Duration
}

// CacheInfo tracks cache use for the image stage.
type CacheInfo struct {
	ImageHit bool   // Whether the image block came from cache
	Key      string // Cache key of the image render, empty without an image
}
