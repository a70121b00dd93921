// Package chafa renders images to terminal text by running the external
// chafa program.
//
// The [Renderer] interface is the seam the pipeline depends on; [Chafa] is
// the production implementation and tests substitute their own.
package chafa

import (
	"context"
	"fmt"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/term"
)

// Cells is a size in terminal character cells.
type Cells struct {
	Width  int
	Height int
}

// String formats the size as chafa's --size argument.
func (c Cells) String() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// Request describes one image render.
type Request struct {
	ImagePath   string
	Format      term.ResolvedFormat
	Colors      term.Colors
	Cells       Cells
	Passthrough term.Multiplexer
}

// Renderer turns an image into a block of terminal lines no taller than
// Request.Cells.Height.
type Renderer interface {
	Render(ctx context.Context, req Request) (block.Block, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, req Request) (block.Block, error)

// Render calls f(ctx, req).
func (f RendererFunc) Render(ctx context.Context, req Request) (block.Block, error) {
	return f(ctx, req)
}
