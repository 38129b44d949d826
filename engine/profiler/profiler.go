package profiler

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Stats summarises the frames counted since the previous report.
type Stats struct {
	// Frames is the number of frames ended in the interval.
	Frames int
	// FPS is Frames divided by the interval length.
	FPS float64
	// AvgFrame is the mean time between Begin and End.
	AvgFrame time.Duration
	// MaxFrame is the longest time between Begin and End.
	MaxFrame time.Duration
}

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval while enabled.
type Profiler struct {
	mu sync.Mutex

	enabled        bool
	now            func() time.Time
	logger         *log.Logger
	output         *termenv.Output
	updateInterval time.Duration

	frameCount  int
	totalFrames uint64
	frameStart  time.Time
	inFrame     bool
	busy        time.Duration
	maxFrame    time.Duration
	lastTime    time.Time
	last        Stats

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and output goes to stderr, colored when it is a terminal.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		enabled:        true,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.output == nil {
		p.output = termenv.NewOutput(os.Stderr)
	}
	if p.logger == nil {
		p.logger = log.New(p.output, "", log.LstdFlags)
	}
	p.lastTime = p.now()
	return p
}

// Enabled reports whether Tick reports statistics.
func (p *Profiler) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetEnabled turns reporting on or off. Frames are still counted while disabled.
//
// Parameters:
//   - enabled: the new state
func (p *Profiler) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Begin marks the start of a frame's work. A Begin without a matching End is replaced.
func (p *Profiler) Begin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameStart = p.now()
	p.inFrame = true
}

// End marks the end of a frame's work and counts the frame. An End without Begin is ignored.
func (p *Profiler) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inFrame {
		return
	}
	p.inFrame = false
	d := p.now().Sub(p.frameStart)
	p.busy += d
	if d > p.maxFrame {
		p.maxFrame = d
	}
	p.frameCount++
	p.totalFrames++
}

// TotalFrames returns the number of frames counted since creation.
func (p *Profiler) TotalFrames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalFrames
}

// Last returns the statistics of the most recent report.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Tick should be called once per loop iteration, after End.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	stats := Stats{
		Frames:   p.frameCount,
		FPS:      float64(p.frameCount) / elapsed.Seconds(),
		MaxFrame: p.maxFrame,
	}
	if p.frameCount > 0 {
		stats.AvgFrame = p.busy / time.Duration(p.frameCount)
	}
	p.last = stats

	p.frameCount = 0
	p.busy = 0
	p.maxFrame = 0
	p.lastTime = currentTime

	if !p.enabled {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc

	fps := p.output.String(fmt.Sprintf("FPS: %.2f", stats.FPS)).Foreground(p.fpsColor(stats.FPS)).Bold()
	p.logger.Printf("[Profiler] %s | Frame: %s avg, %s max | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond),
		allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	return true
}

// fpsColor grades the frame rate: green at 55 and above, yellow from 30, red below.
func (p *Profiler) fpsColor(fps float64) termenv.Color {
	switch {
	case fps >= 55:
		return p.output.Color("2")
	case fps >= 30:
		return p.output.Color("3")
	default:
		return p.output.Color("1")
	}
}
