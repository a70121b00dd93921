package term

import (
	"os"
	"strconv"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Default terminal size used when nothing can be detected.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// Multiplexer names a terminal multiplexer that sits between leftysay and the
// real terminal. Graphics protocols only reach the outer terminal when the
// output is wrapped for passthrough.
type Multiplexer string

// Known multiplexers.
const (
	MultiplexerNone   Multiplexer = ""
	MultiplexerTmux   Multiplexer = "tmux"
	MultiplexerScreen Multiplexer = "screen"
)

// EnvSignals is a snapshot of everything capability resolution looks at.
// Build it once per run with [Probe] or [DetectEnv] and pass it around.
type EnvSignals struct {
	Columns int
	Rows    int

	SupportsKitty bool
	SupportsITerm bool
	SupportsSixel bool

	ColorProfile termenv.Profile
	Interactive  bool

	Multiplexer Multiplexer
	// Passthrough is true when the user allowed graphics passthrough
	// through Multiplexer (LEFTYSAY_PASSTHROUGH).
	Passthrough bool

	// Raw values, kept for diagnostics.
	Term        string
	TermProgram string
}

// Probe captures the process environment and the terminal attached to out.
func Probe(out *os.File) EnvSignals {
	env := DetectEnv(os.Getenv)

	if cols, rows, err := xterm.GetSize(out.Fd()); err == nil && cols > 0 && rows > 0 {
		env.Columns, env.Rows = cols, rows
	}

	env.Interactive = isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	env.ColorProfile = termenv.NewOutput(out).EnvColorProfile()
	return env
}

// DetectEnv derives signals from environment variables alone. Terminal size
// comes from COLUMNS/LINES and falls back to 80x24; the color profile comes
// from COLORTERM/TERM.
func DetectEnv(getenv func(string) string) EnvSignals {
	env := EnvSignals{
		Columns:     positiveInt(getenv("COLUMNS"), DefaultColumns),
		Rows:        positiveInt(getenv("LINES"), DefaultRows),
		Term:        getenv("TERM"),
		TermProgram: getenv("TERM_PROGRAM"),
	}

	termName := strings.ToLower(env.Term)
	program := strings.ToLower(env.TermProgram)

	env.SupportsKitty = getenv("KITTY_WINDOW_ID") != "" ||
		strings.Contains(termName, "kitty") ||
		strings.Contains(termName, "ghostty") ||
		program == "ghostty"

	env.SupportsITerm = program == "iterm.app" ||
		program == "wezterm" ||
		getenv("LC_TERMINAL") == "iTerm2"

	env.SupportsSixel = strings.Contains(termName, "sixel") ||
		hasAnyPrefix(termName, "foot", "mlterm", "yaft", "contour") ||
		program == "mlterm" || program == "foot"

	switch {
	case getenv("TMUX") != "":
		env.Multiplexer = MultiplexerTmux
	case getenv("STY") != "" || strings.HasPrefix(termName, "screen"):
		env.Multiplexer = MultiplexerScreen
	}
	env.Passthrough = truthy(getenv("LEFTYSAY_PASSTHROUGH"))

	env.ColorProfile = profileFromEnv(getenv)
	return env
}

// profileFromEnv mirrors termenv's environment heuristics without touching
// a file descriptor.
func profileFromEnv(getenv func(string) string) termenv.Profile {
	if getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	termName := strings.ToLower(getenv("TERM"))
	switch {
	case termName == "" || termName == "dumb":
		return termenv.Ascii
	case strings.Contains(termName, "kitty"), strings.Contains(termName, "ghostty"), strings.Contains(termName, "direct"):
		return termenv.TrueColor
	case strings.Contains(termName, "256color"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
