package viewer

import "github.com/Carmen-Shannon/oxy-portal/engine/profiler"

// AppBuilderOption is a functional option used to configure an App during construction.
type AppBuilderOption func(*app)

// WithProfiler sets the profiler that brackets every frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - AppBuilderOption: a function that sets the profiler
func WithProfiler(p *profiler.Profiler) AppBuilderOption {
	return func(a *app) {
		a.profiler = p
	}
}

