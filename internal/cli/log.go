// Package cli implements the draftboard command-line interface.
//
// The commands cover the whole pipeline: generate turns a text prompt
// into a diagram document via a language model, layout computes the
// drawable scene for a document, and render writes SVG, PNG, PDF, JSON
// or DOT artifacts. boards browses saved boards, serve runs the HTTP
// API, and cache manages the local result cache.
//
// Every command accepts --verbose (-v) for debug output. Structured
// loggers travel via context.Context so library code never depends on
// CLI state.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the charmbracelet logger the CLI uses everywhere.
// Sub-second timestamps matter here: pipeline stages usually finish in
// tens of milliseconds and whole-second stamps would all read the same.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one operation from construction to done. Not for
// concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey keeps this package's context values from colliding with
// anyone else's.
type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or
// log.Default() so callers never have to nil-check.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
