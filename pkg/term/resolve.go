package term

import "github.com/muesli/termenv"

// Resolve picks the image protocol for a run.
//
// An explicit request always wins, even when detection disagrees; this is
// how users force a fallback. FormatAuto probes Kitty, iTerm and Sixel in
// that order and falls back to Symbols, which every terminal can show.
func Resolve(requested Format, env EnvSignals) ResolvedFormat {
	switch requested {
	case FormatSymbols:
		return Symbols
	case FormatKitty:
		return Kitty
	case FormatITerm:
		return ITerm
	case FormatSixels:
		return Sixel
	}

	graphicsReachable := env.Multiplexer == MultiplexerNone || env.Passthrough
	switch {
	case graphicsReachable && env.SupportsKitty:
		return Kitty
	case graphicsReachable && env.SupportsITerm:
		return ITerm
	case graphicsReachable && env.SupportsSixel:
		return Sixel
	default:
		return Symbols
	}
}

// ResolveColors picks the color depth for a run. An explicit request wins;
// ColorsAuto follows the terminal's color profile.
func ResolveColors(requested Colors, env EnvSignals) Colors {
	if requested != ColorsAuto && requested != "" {
		return requested
	}
	switch env.ColorProfile {
	case termenv.TrueColor:
		return ColorsFull
	case termenv.ANSI256:
		return Colors256
	default:
		return Colors16
	}
}

// PassthroughMode returns the multiplexer chafa should wrap graphics output
// for, or MultiplexerNone when no wrapping is needed.
func PassthroughMode(format ResolvedFormat, env EnvSignals) Multiplexer {
	if !format.Graphical() || !env.Passthrough {
		return MultiplexerNone
	}
	return env.Multiplexer
}
