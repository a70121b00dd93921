// Package cli implements the leftysay command-line interface.
//
// The root command is the greeter itself: it merges config.toml with flags,
// picks a message and an image from the installed packs, runs the pipeline
// and prints the composed greeting to stdout. Status output (warnings,
// spinners, doctor and list reports) goes to stderr so a greeting can be
// piped or captured cleanly.
//
// # Commands
//
//   - leftysay: print a greeting (see --help for flags)
//   - cache: inspect or clear the render cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// --verbose (-v) switches to debug-level logging. Loggers are passed through
// context.Context so pipeline hooks and helpers can reach them.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress logs how long an operation took once it is done.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time, e.g. "greeting composed (12ms)".
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
