// Package postprocess chains full-frame passes between a scene render and the screen. A Composer
// owns two ping-pong render targets; each pass reads the previous result and writes the next,
// and the last enabled pass writes to the screen.
package postprocess

import "github.com/Carmen-Shannon/oxy-portal/engine/renderer"

// Pass is one step of a Composer chain.
type Pass interface {
	// Name returns the pass name, used in errors.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled reports whether the composer runs this pass.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the pass.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// NeedsSwap reports whether the pass wrote into the write target, so the composer must swap
	// read and write targets afterwards.
	//
	// Returns:
	//   - bool: true if the targets must be swapped
	NeedsSwap() bool

	// SetSize is called by the composer when the chain is resized.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	SetSize(width, height int)

	// Render runs the pass.
	//
	// Parameters:
	//   - r: the renderer
	//   - read: the target holding the previous result
	//   - write: the target to write into when NeedsSwap is true
	//   - toScreen: true when this is the last enabled pass and must write to the screen
	//
	// Returns:
	//   - error: an error if rendering fails
	Render(r renderer.Renderer, read, write renderer.RenderTarget, toScreen bool) error
}
