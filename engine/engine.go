package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/window"
)

// engine implements the Engine interface.
// Drives a single frame loop on the thread that owns the window.
type engine struct {
	mu sync.Mutex

	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler *profiler.Profiler

	beforeFrame    []func(now time.Duration)
	resizeHandlers []func(width, height int) error
	frameCallback  func(now time.Duration) error

	// pendingResize holds the latest unapplied resize; earlier ones in the same iteration are dropped.
	pendingResize *[2]int

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	clock func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It owns the frame loop: window events, resizes, before-frame hooks, the frame callback and profiling.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Profiler returns the frame profiler ticked by the loop.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// BeforeFrame registers a hook run every iteration before the frame callback. Hooks run in
	// registration order and all of them complete before the frame callback of the same iteration.
	//
	// Parameters:
	//   - hook: function receiving the time since Run started
	BeforeFrame(hook func(now time.Duration))

	// OnResize registers a handler for window resizes. Resizes are coalesced and applied at the
	// start of an iteration, so the frame callback never observes a half-applied size. A handler
	// error stops the loop.
	//
	// Parameters:
	//   - handler: function receiving the new framebuffer size in pixels
	OnResize(handler func(width, height int) error)

	// SetFrameCallback registers the function called once per iteration. An error stops the loop.
	//
	// Parameters:
	//   - callback: function receiving the time since Run started
	SetFrameCallback(callback func(now time.Duration) error)

	// Run drives the loop on the calling goroutine until the window closes, Quit is called or a
	// handler fails.
	//
	// Returns:
	//   - error: the resize or frame failure that stopped the loop, nil otherwise
	Run() error

	// Quit stops the loop after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
// Panics when no window is provided.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(profiler.WithEnabled(false)),
		clock:       time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine: a window is required")
	}
	e.window.SetResizeCallback(e.queueResize)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.profiler.SetEnabled(true)
}

func (e *engine) DisableProfiler() {
	e.profiler.SetEnabled(false)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) BeforeFrame(hook func(now time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beforeFrame = append(e.beforeFrame, hook)
}

func (e *engine) OnResize(handler func(width, height int) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeHandlers = append(e.resizeHandlers, handler)
}

func (e *engine) SetFrameCallback(callback func(now time.Duration) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("engine is already running")
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	start := e.clock()
	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		frameStart := e.clock()
		if !e.window.PollEvents() {
			return nil
		}
		if err := e.step(frameStart.Sub(start)); err != nil {
			log.Printf("[Engine] stopping: %v", err)
			e.Quit()
			return err
		}
		e.profiler.Tick()

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit > 0 {
			if remaining := limit - e.clock().Sub(frameStart); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
}

// step runs one iteration after events were polled: pending resize, before-frame hooks, frame callback.
func (e *engine) step(now time.Duration) error {
	e.mu.Lock()
	pending := e.pendingResize
	e.pendingResize = nil
	resizeHandlers := append([]func(int, int) error(nil), e.resizeHandlers...)
	hooks := append([]func(time.Duration)(nil), e.beforeFrame...)
	frame := e.frameCallback
	e.mu.Unlock()

	if pending != nil {
		for _, h := range resizeHandlers {
			if err := h(pending[0], pending[1]); err != nil {
				return fmt.Errorf("resize to %dx%d: %w", pending[0], pending[1], err)
			}
		}
	}

	for _, hook := range hooks {
		hook(now)
	}

	if frame != nil {
		if err := frame(now); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
	}
	return nil
}

// queueResize records a resize reported by the window; only the latest one is applied.
func (e *engine) queueResize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingResize = &[2]int{width, height}
}

// frameDuration converts a frame rate cap to a minimum frame duration, 0 when uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
