package profiler

import (
	"io"
	"log"
	"time"

	"github.com/muesli/termenv"
)

// ProfilerBuilderOption is a functional option used to configure a Profiler during construction.
type ProfilerBuilderOption func(*Profiler)

// WithEnabled sets whether the profiler reports statistics.
//
// Parameters:
//   - enabled: the initial state
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the state
func WithEnabled(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.enabled = enabled
	}
}

// WithUpdateInterval sets how often statistics are reported.
//
// Parameters:
//   - d: the interval, ignored when not positive
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the interval
func WithUpdateInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithOutput writes reports to w. Colors are used only when w is a terminal.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the output
func WithOutput(w io.Writer) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.output = termenv.NewOutput(w)
		p.logger = log.New(p.output, "", log.LstdFlags)
	}
}

// WithClock replaces time.Now, letting tests drive frame timing.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the clock
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
