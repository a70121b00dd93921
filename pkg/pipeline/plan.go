package pipeline

import (
	"math"

	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/term"
)

// Plan is everything decided before any rendering starts.
type Plan struct {
	Format      term.ResolvedFormat
	Colors      term.Colors
	Passthrough term.Multiplexer

	// Layout is the effective arrangement. Side requests fall back to
	// Vertical for graphics formats, which cannot be placed beside text
	// line by line.
	Layout compose.Mode

	// BubbleWidth is the width hint passed to the bubble layout. It may be
	// below 1 on very narrow terminals; the layout clamps it.
	BubbleWidth int

	// ImageCells is the size budget for the renderer.
	ImageCells chafa.Cells
}

// NewPlan resolves capabilities and splits the terminal between bubble and
// image. req should already have defaults applied.
func NewPlan(env term.EnvSignals, req Request) Plan {
	format := term.Resolve(req.Format, env)
	p := Plan{
		Format:      format,
		Colors:      term.ResolveColors(req.Colors, env),
		Passthrough: term.PassthroughMode(format, env),
		Layout:      req.Layout,
	}
	if p.Layout == compose.Side && (format.Graphical() || !req.BubbleEnabled || req.ImagePath == "") {
		p.Layout = compose.Vertical
	}

	cols := max(env.Columns, 1)
	rows := ImageRows(env.Rows, req.MaxHeightRatio)

	switch p.Layout {
	case compose.Side:
		bubbleCols := cols / 2
		p.BubbleWidth = min(bubbleCols-BubblePadding, MaxBubbleWidth)
		p.ImageCells = chafa.Cells{
			Width:  max(cols-bubbleCols-compose.DefaultGap, 1),
			Height: rows,
		}
	default:
		p.BubbleWidth = min(cols-BubblePadding, MaxBubbleWidth)
		p.ImageCells = chafa.Cells{Width: cols, Height: rows}
	}
	return p
}

// ImageRows is the image height budget: floor(ratio × rows), at least 1.
func ImageRows(rows int, ratio float64) int {
	return max(int(math.Floor(ratio*float64(rows))), 1)
}
