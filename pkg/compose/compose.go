// Package compose merges the bubble and image blocks into the final lines.
//
// Compose is pure: it never touches the terminal and gives the same output
// for the same inputs.
package compose

import (
	"strings"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/errors"
)

// Mode selects how the two blocks are arranged.
type Mode string

// Layout modes.
const (
	Vertical Mode = "vertical"
	Side     Mode = "side"
)

// DefaultGap is the number of blank columns between image and bubble in
// side mode.
const DefaultGap = 2

// sgrReset closes any styling an image line left open.
const sgrReset = "\x1b[0m"

// Options controls composition.
type Options struct {
	BubbleEnabled bool
	Mode          Mode
	// Gap is the column gap in side mode. Zero means DefaultGap; use a
	// negative value for no gap.
	Gap int
}

// ParseMode parses a layout name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "stacked":
		return Vertical, nil
	case "side", "horizontal":
		return Side, nil
	default:
		return Vertical, errors.New(errors.ErrCodeInvalidLayout,
			"unknown layout %q (must be vertical or side)", s)
	}
}

// Compose arranges bubble and image into output lines. Either block may be
// nil. It fails with NO_CONTENT when nothing would be shown.
func Compose(bubble, image *block.Block, opts Options) ([]string, error) {
	hasImage := image != nil && !image.Empty()
	hasBubble := opts.BubbleEnabled && bubble != nil && !bubble.Empty()

	switch {
	case !hasBubble && !hasImage:
		return nil, errors.New(errors.ErrCodeNoContent, "nothing to display")
	case !hasBubble:
		return copyLines(image.Lines), nil
	case !hasImage:
		return copyLines(bubble.Lines), nil
	}

	if opts.Mode == Side {
		return sideBySide(*image, *bubble, gapOf(opts)), nil
	}

	out := make([]string, 0, bubble.Height+image.Height)
	out = append(out, bubble.Lines...)
	return append(out, image.Lines...), nil
}

func gapOf(opts Options) int {
	switch {
	case opts.Gap < 0:
		return 0
	case opts.Gap == 0:
		return DefaultGap
	default:
		return opts.Gap
	}
}

// sideBySide puts left beside right, top aligned. The shorter block is padded
// with blank lines of its own width.
func sideBySide(left, right block.Block, gap int) []string {
	height := max(left.Height, right.Height)
	spacer := strings.Repeat(" ", gap)
	blankLeft := strings.Repeat(" ", left.Width)
	blankRight := strings.Repeat(" ", right.Width)

	out := make([]string, height)
	for i := range height {
		l := blankLeft
		if i < len(left.Lines) {
			l = block.PadRight(left.Lines[i], left.Width) + sgrReset
		}
		r := blankRight
		if i < len(right.Lines) {
			r = right.Lines[i]
		}
		out[i] = l + spacer + r
	}
	return out
}

func copyLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
