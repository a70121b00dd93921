package term

import (
	"testing"

	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/muesli/termenv"
)

func envFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		requested Format
		env       EnvSignals
		want      ResolvedFormat
	}{
		{"auto prefers kitty", FormatAuto, EnvSignals{SupportsKitty: true, SupportsITerm: true, SupportsSixel: true}, Kitty},
		{"auto iterm before sixel", FormatAuto, EnvSignals{SupportsITerm: true, SupportsSixel: true}, ITerm},
		{"auto sixel", FormatAuto, EnvSignals{SupportsSixel: true}, Sixel},
		{"auto falls back to symbols", FormatAuto, EnvSignals{}, Symbols},
		{"explicit symbols beats kitty", FormatSymbols, EnvSignals{SupportsKitty: true}, Symbols},
		{"explicit kitty without support", FormatKitty, EnvSignals{}, Kitty},
		{"explicit sixels", FormatSixels, EnvSignals{SupportsKitty: true}, Sixel},
		{"explicit iterm", FormatITerm, EnvSignals{}, ITerm},
		{"tmux hides graphics", FormatAuto, EnvSignals{SupportsKitty: true, Multiplexer: MultiplexerTmux}, Symbols},
		{"tmux passthrough", FormatAuto, EnvSignals{SupportsKitty: true, Multiplexer: MultiplexerTmux, Passthrough: true}, Kitty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.requested, tt.env); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestResolveIsStable(t *testing.T) {
	env := EnvSignals{SupportsITerm: true, SupportsSixel: true}
	first := Resolve(FormatAuto, env)
	for i := 0; i < 10; i++ {
		if got := Resolve(FormatAuto, env); got != first {
			t.Fatalf("Resolve changed from %q to %q", first, got)
		}
	}
}

func TestResolveColors(t *testing.T) {
	tests := []struct {
		requested Colors
		profile   termenv.Profile
		want      Colors
	}{
		{ColorsAuto, termenv.TrueColor, ColorsFull},
		{ColorsAuto, termenv.ANSI256, Colors256},
		{ColorsAuto, termenv.ANSI, Colors16},
		{ColorsAuto, termenv.Ascii, Colors16},
		{Colors256, termenv.TrueColor, Colors256},
		{ColorsFull, termenv.Ascii, ColorsFull},
	}

	for _, tt := range tests {
		got := ResolveColors(tt.requested, EnvSignals{ColorProfile: tt.profile})
		if got != tt.want {
			t.Errorf("ResolveColors(%q, %v) = %q, want %q", tt.requested, tt.profile, got, tt.want)
		}
	}
}

func TestDetectEnv(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]string
		kitty bool
		iterm bool
		sixel bool
		mux   Multiplexer
	}{
		{name: "plain xterm", vars: map[string]string{"TERM": "xterm-256color"}},
		{name: "kitty window", vars: map[string]string{"KITTY_WINDOW_ID": "1", "TERM": "xterm-kitty"}, kitty: true},
		{name: "ghostty program", vars: map[string]string{"TERM_PROGRAM": "ghostty"}, kitty: true},
		{name: "iterm", vars: map[string]string{"TERM_PROGRAM": "iTerm.app"}, iterm: true},
		{name: "wezterm", vars: map[string]string{"TERM_PROGRAM": "WezTerm"}, iterm: true},
		{name: "lc terminal", vars: map[string]string{"LC_TERMINAL": "iTerm2"}, iterm: true},
		{name: "foot", vars: map[string]string{"TERM": "foot-extra"}, sixel: true},
		{name: "xterm sixel", vars: map[string]string{"TERM": "xterm-sixel"}, sixel: true},
		{name: "tmux", vars: map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0", "TERM": "tmux-256color"}, mux: MultiplexerTmux},
		{name: "screen", vars: map[string]string{"TERM": "screen.xterm-256color"}, mux: MultiplexerScreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := DetectEnv(envFrom(tt.vars))
			if env.SupportsKitty != tt.kitty || env.SupportsITerm != tt.iterm || env.SupportsSixel != tt.sixel {
				t.Errorf("signals = kitty:%v iterm:%v sixel:%v, want kitty:%v iterm:%v sixel:%v",
					env.SupportsKitty, env.SupportsITerm, env.SupportsSixel, tt.kitty, tt.iterm, tt.sixel)
			}
			if env.Multiplexer != tt.mux {
				t.Errorf("Multiplexer = %q, want %q", env.Multiplexer, tt.mux)
			}
		})
	}
}

func TestDetectEnvSize(t *testing.T) {
	env := DetectEnv(envFrom(map[string]string{"COLUMNS": "120", "LINES": "40"}))
	if env.Columns != 120 || env.Rows != 40 {
		t.Errorf("size = %dx%d, want 120x40", env.Columns, env.Rows)
	}

	env = DetectEnv(envFrom(map[string]string{"COLUMNS": "nope", "LINES": "-3"}))
	if env.Columns != DefaultColumns || env.Rows != DefaultRows {
		t.Errorf("size = %dx%d, want defaults", env.Columns, env.Rows)
	}
}

func TestDetectEnvColorProfile(t *testing.T) {
	tests := []struct {
		vars map[string]string
		want termenv.Profile
	}{
		{map[string]string{"COLORTERM": "truecolor", "TERM": "xterm"}, termenv.TrueColor},
		{map[string]string{"TERM": "xterm-256color"}, termenv.ANSI256},
		{map[string]string{"TERM": "xterm"}, termenv.ANSI},
		{map[string]string{"TERM": "dumb"}, termenv.Ascii},
		{map[string]string{"TERM": "xterm-256color", "NO_COLOR": "1"}, termenv.Ascii},
	}
	for _, tt := range tests {
		if got := DetectEnv(envFrom(tt.vars)).ColorProfile; got != tt.want {
			t.Errorf("DetectEnv(%v).ColorProfile = %v, want %v", tt.vars, got, tt.want)
		}
	}
}

func TestPassthroughMode(t *testing.T) {
	env := EnvSignals{Multiplexer: MultiplexerTmux, Passthrough: true}
	if got := PassthroughMode(Kitty, env); got != MultiplexerTmux {
		t.Errorf("PassthroughMode(kitty) = %q, want tmux", got)
	}
	if got := PassthroughMode(Symbols, env); got != MultiplexerNone {
		t.Errorf("PassthroughMode(symbols) = %q, want none", got)
	}
	env.Passthrough = false
	if got := PassthroughMode(Kitty, env); got != MultiplexerNone {
		t.Errorf("PassthroughMode without opt-in = %q, want none", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"AUTO", FormatAuto, false},
		{"unicode", FormatSymbols, false},
		{"iterm2", FormatITerm, false},
		{"sixel", FormatSixels, false},
		{"kitty", FormatKitty, false},
		{"png", FormatAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) code = %s, want INVALID_FORMAT", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseColors(t *testing.T) {
	for in, want := range map[string]Colors{"truecolor": ColorsFull, "256": Colors256, "16": Colors16, "": ColorsAuto} {
		got, err := ParseColors(in)
		if err != nil || got != want {
			t.Errorf("ParseColors(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseColors("8"); !errors.Is(err, errors.ErrCodeInvalidColors) {
		t.Errorf("ParseColors(8) error = %v, want INVALID_COLORS", err)
	}
}
