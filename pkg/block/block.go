// Package block defines the rectangular text blocks the greeting is built from.
//
// A Block is an ordered list of terminal lines with a declared size in
// character cells. Lines may carry styling or image protocol escape
// sequences; widths are always measured in visible cells, never bytes.
package block

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Block is a rendered rectangle of terminal lines.
type Block struct {
	Lines  []string `msgpack:"lines"`
	Width  int      `msgpack:"width"`
	Height int      `msgpack:"height"`
}

// New creates a Block from lines, computing Width as the widest visible line
// and Height as the line count. The slice is copied.
func New(lines []string) Block {
	owned := make([]string, len(lines))
	copy(owned, lines)
	return Block{
		Lines:  owned,
		Width:  MaxWidth(owned),
		Height: len(owned),
	}
}

// FromOutput splits captured renderer output into a Block.
// A single trailing line break is dropped so "a\nb\n" yields two lines.
// CRLF line endings are normalized.
func FromOutput(data []byte) Block {
	if len(data) == 0 {
		return Block{}
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	text := strings.TrimSuffix(string(data), "\n")
	return New(strings.Split(text, "\n"))
}

// Empty reports whether the block has no lines.
func (b Block) Empty() bool {
	return len(b.Lines) == 0
}

// Size returns the number of bytes held by the block's lines.
func (b Block) Size() int {
	n := 0
	for _, l := range b.Lines {
		n += len(l)
	}
	return n
}

// Clip returns a block holding at most maxHeight lines.
// A non-positive maxHeight leaves the block unchanged.
func (b Block) Clip(maxHeight int) Block {
	if maxHeight <= 0 || len(b.Lines) <= maxHeight {
		return b
	}
	return New(b.Lines[:maxHeight])
}

// String joins the lines with newlines.
func (b Block) String() string {
	return strings.Join(b.Lines, "\n")
}

// Width returns the visible width of s in terminal cells.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// MaxWidth returns the widest visible width among lines.
func MaxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if lw := ansi.StringWidth(l); lw > w {
			w = lw
		}
	}
	return w
}

// PadRight pads s with spaces up to width visible cells.
// Strings already at or beyond width are returned unchanged.
func PadRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
