package postprocess

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
)

type composer struct {
	mu sync.Mutex

	renderer renderer.Renderer
	label    string

	read  renderer.RenderTarget
	write renderer.RenderTarget

	passes []Pass
}

// Composer runs an ordered chain of passes every frame. Intermediate results travel through two
// render targets sized to the viewport; the last enabled pass writes to the screen, after which
// the frame is presented.
type Composer interface {
	// AddPass appends a pass to the chain.
	//
	// Parameters:
	//   - p: the pass
	AddPass(p Pass)

	// Passes returns a copy of the chain in run order.
	//
	// Returns:
	//   - []Pass: the passes
	Passes() []Pass

	// ReadTarget returns the target holding the most recent intermediate result.
	//
	// Returns:
	//   - renderer.RenderTarget: the read target
	ReadTarget() renderer.RenderTarget

	// SetSize resizes both internal targets and notifies every pass.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: an error if a target cannot be resized
	SetSize(width, height int) error

	// Render runs every enabled pass and presents the frame. The renderer's target is reset to the
	// screen afterwards, including on error.
	//
	// Returns:
	//   - error: the first pass or presentation failure
	Render() error

	// Release frees the internal targets.
	Release()
}

var _ Composer = &composer{}

// NewComposer creates a Composer drawing through r, allocating its targets at the given size.
//
// Parameters:
//   - r: the renderer
//   - width, height: the initial target size in pixels
//   - options: variadic list of ComposerBuilderOption functions
//
// Returns:
//   - Composer: the composer
//   - error: an error if a target cannot be created
func NewComposer(r renderer.Renderer, width, height int, options ...ComposerBuilderOption) (Composer, error) {
	if r == nil {
		panic("postprocess: nil renderer")
	}
	c := &composer{renderer: r, label: "composer"}
	for _, opt := range options {
		opt(c)
	}

	read, err := r.CreateRenderTarget(c.label+"_read", width, height)
	if err != nil {
		return nil, fmt.Errorf("creating read target: %w", err)
	}
	write, err := r.CreateRenderTarget(c.label+"_write", width, height)
	if err != nil {
		read.Release()
		return nil, fmt.Errorf("creating write target: %w", err)
	}
	c.read, c.write = read, write
	return c, nil
}

func (c *composer) AddPass(p Pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passes = append(c.passes, p)
}

func (c *composer) Passes() []Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pass, len(c.passes))
	copy(out, c.passes)
	return out
}

func (c *composer) ReadTarget() renderer.RenderTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read
}

func (c *composer) SetSize(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.read.SetSize(width, height); err != nil {
		return fmt.Errorf("resizing %s: %w", c.read.Label(), err)
	}
	if err := c.write.SetSize(width, height); err != nil {
		return fmt.Errorf("resizing %s: %w", c.write.Label(), err)
	}
	for _, p := range c.passes {
		p.SetSize(width, height)
	}
	return nil
}

func (c *composer) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.renderer.SetRenderTarget(nil)

	last := -1
	for i, p := range c.passes {
		if p.Enabled() {
			last = i
		}
	}
	if last < 0 {
		return nil
	}

	for i := 0; i <= last; i++ {
		p := c.passes[i]
		if !p.Enabled() {
			continue
		}
		toScreen := i == last
		if err := p.Render(c.renderer, c.read, c.write, toScreen); err != nil {
			return fmt.Errorf("%s pass: %w", p.Name(), err)
		}
		if p.NeedsSwap() && !toScreen {
			c.read, c.write = c.write, c.read
		}
	}

	c.renderer.SetRenderTarget(nil)
	if err := c.renderer.Present(); err != nil {
		return fmt.Errorf("presenting: %w", err)
	}
	return nil
}

func (c *composer) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.read != nil {
		c.read.Release()
	}
	if c.write != nil {
		c.write.Release()
	}
}
