package bubble

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Wrap breaks message into lines no wider than width visible cells.
//
// Lines break on whitespace. A word wider than width is hard-split at the
// width boundary. Explicit newlines always start a new line, and an empty
// paragraph stays as an empty line. Every word of message appears in the
// output in its original order. width < 1 is treated as 1.
func Wrap(message string, width int) []string {
	if width < 1 {
		width = 1
	}

	message = strings.ReplaceAll(message, "\r\n", "\n")

	var out []string
	for _, paragraph := range strings.Split(message, "\n") {
		out = append(out, wrapParagraph(paragraph, width)...)
	}
	return out
}

func wrapParagraph(paragraph string, width int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines   []string
		current strings.Builder
		curW    int
	)
	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		curW = 0
	}

	for _, word := range words {
		ww := ansi.StringWidth(word)

		if ww > width {
			if curW > 0 {
				flush()
			}
			pieces := splitWord(word, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			current.WriteString(last)
			curW = ansi.StringWidth(last)
			continue
		}

		if curW > 0 && curW+1+ww > width {
			flush()
		}
		if curW > 0 {
			current.WriteByte(' ')
			curW++
		}
		current.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return lines
}

// splitWord hard-splits a single word into width-cell chunks. A character
// wider than width gets a line of its own.
func splitWord(word string, width int) []string {
	var pieces []string
	for _, p := range strings.Split(ansi.Hardwrap(word, width, false), "\n") {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
