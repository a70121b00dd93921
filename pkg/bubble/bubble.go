// Package bubble lays out a message as a speech bubble.
//
// Layout is pure and deterministic: the same message, width and style always
// produce byte-identical lines, all of the same visible width.
package bubble

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/errors"
)

// Placeholder is shown when the message is empty after trimming.
const Placeholder = "..."

// Border styles.
const (
	StyleClassic = "classic"
	StyleRound   = "round"
	StyleSquare  = "square"
	StyleThick   = "thick"
	StyleDouble  = "double"
)

// Styles lists the known border styles in display order.
var Styles = []string{StyleClassic, StyleRound, StyleSquare, StyleThick, StyleDouble}

var borders = map[string]lipgloss.Border{
	StyleRound:  lipgloss.RoundedBorder(),
	StyleSquare: lipgloss.NormalBorder(),
	StyleThick:  lipgloss.ThickBorder(),
	StyleDouble: lipgloss.DoubleBorder(),
}

// KnownStyle reports whether style names a border style. Layout accepts
// unknown names too and draws them as classic.
func KnownStyle(style string) bool {
	if style == StyleClassic {
		return true
	}
	_, ok := borders[style]
	return ok
}

// Fit clamps a width hint to the smallest usable text width.
// A hint below 1 yields 1 and a LAYOUT_OVERFLOW error for the caller to log.
func Fit(widthHint int) (int, error) {
	if widthHint < 1 {
		return 1, errors.New(errors.ErrCodeLayoutOverflow,
			"bubble width budget %d too small, clamped to 1", widthHint)
	}
	return widthHint, nil
}

// Layout wraps message to at most widthHint cells and draws a border around
// it. The returned block is widthHint+4 cells wide at most.
func Layout(message string, widthHint int, style string) block.Block {
	width, _ := Fit(widthHint)

	var lines []string
	if strings.TrimSpace(message) == "" {
		lines = []string{Placeholder}
	} else {
		lines = Wrap(strings.TrimSpace(message), width)
	}

	inner := block.MaxWidth(lines)
	for i, l := range lines {
		lines[i] = block.PadRight(l, inner)
	}

	if b, ok := borders[style]; ok {
		return block.New(framed(lines, inner, b))
	}
	return block.New(classic(lines, inner))
}

// classic draws the cowsay bubble.
func classic(lines []string, inner int) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, " "+strings.Repeat("_", inner+2)+" ")

	if len(lines) == 1 {
		out = append(out, "< "+lines[0]+" >")
	} else {
		for i, l := range lines {
			left, right := "|", "|"
			switch i {
			case 0:
				left, right = "/", "\\"
			case len(lines) - 1:
				left, right = "\\", "/"
			}
			out = append(out, left+" "+l+" "+right)
		}
	}

	out = append(out, " "+strings.Repeat("-", inner+2)+" ")
	return out
}

func framed(lines []string, inner int, b lipgloss.Border) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, b.TopLeft+strings.Repeat(b.Top, inner+2)+b.TopRight)
	for _, l := range lines {
		out = append(out, b.Left+" "+l+" "+b.Right)
	}
	out = append(out, b.BottomLeft+strings.Repeat(b.Bottom, inner+2)+b.BottomRight)
	return out
}
