// Package term resolves which terminal image protocol and color depth to use.
//
// Resolution is a pure function of the requested options and an [EnvSignals]
// snapshot captured once per invocation, so every stage of a run sees the
// same answer:
//
//	env := term.Probe(os.Stdout)
//	format := term.Resolve(term.FormatAuto, env) // Kitty, ITerm, Sixel or Symbols
//	colors := term.ResolveColors(term.ColorsAuto, env)
package term

import (
	"strings"

	"github.com/matzehuels/leftysay/pkg/errors"
)

// Format is a requested output format. FormatAuto defers to detection.
type Format string

// Requested formats. Names match the config and flag values.
const (
	FormatAuto    Format = "auto"
	FormatSymbols Format = "symbols"
	FormatKitty   Format = "kitty"
	FormatITerm   Format = "iterm"
	FormatSixels  Format = "sixels"
)

// ResolvedFormat is a concrete terminal image protocol. It is never "auto".
type ResolvedFormat string

// Resolved formats. Values are the names chafa expects for --format.
const (
	Symbols ResolvedFormat = "symbols"
	Kitty   ResolvedFormat = "kitty"
	ITerm   ResolvedFormat = "iterm"
	Sixel   ResolvedFormat = "sixels"
)

// Graphical reports whether f is a pixel protocol rather than character art.
func (f ResolvedFormat) Graphical() bool {
	return f != Symbols
}

// Colors is a requested color depth. ColorsAuto defers to detection.
type Colors string

// Color depths. Values are the names chafa expects for --colors.
const (
	ColorsAuto Colors = "auto"
	ColorsFull Colors = "full"
	Colors256  Colors = "256"
	Colors16   Colors = "16"
)

// ParseFormat parses a format name. Aliases from older configs are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "symbols", "unicode":
		return FormatSymbols, nil
	case "kitty":
		return FormatKitty, nil
	case "iterm", "iterm2":
		return FormatITerm, nil
	case "sixel", "sixels":
		return FormatSixels, nil
	default:
		return FormatAuto, errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (must be auto, symbols, kitty, iterm or sixels)", s)
	}
}

// ParseColors parses a color depth name. Aliases from older configs are accepted.
func ParseColors(s string) (Colors, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorsAuto, nil
	case "full", "truecolor":
		return ColorsFull, nil
	case "256", "c256":
		return Colors256, nil
	case "16", "c16":
		return Colors16, nil
	default:
		return ColorsAuto, errors.New(errors.ErrCodeInvalidColors,
			"unknown colors %q (must be auto, full, 256 or 16)", s)
	}
}
