package pipeline

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stopwatch measures elapsed wall-clock time against an injectable clock.
type Stopwatch struct {
	clock clockwork.Clock
	start time.Time
}

// StartStopwatch starts timing now.
func StartStopwatch(clock clockwork.Clock) *Stopwatch {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Stopwatch{clock: clock, start: clock.Now()}
}

// Elapsed returns the time since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.clock.Since(s.start)
}

// Option tunes a single corpus call.
type Option func(*callOptions)

type callOptions struct {
	timing   bool
	progress func(batchNo, rows int)
}

// WithTiming logs the elapsed time of the call (per batch for Chunkify).
func WithTiming() Option {
	return func(o *callOptions) { o.timing = true }
}

// WithProgress registers a callback invoked after each chunk is written.
func WithProgress(fn func(batchNo, rows int)) Option {
	return func(o *callOptions) { o.progress = fn }
}

func applyOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// logElapsed reports the stopwatch reading when timing was requested.
func logElapsed(logger *slog.Logger, enabled bool, msg string, sw *Stopwatch, attrs ...any) {
	if !enabled {
		return
	}
	logger.Info(msg, append(attrs, slog.Duration("elapsed", sw.Elapsed()))...)
}
