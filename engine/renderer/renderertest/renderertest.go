// Package renderertest provides a recording Renderer for tests of code that drives the renderer
// without a GPU.
package renderertest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Target is a RenderTarget without GPU memory. Its texture is replaced on every size change.
type Target struct {
	mu       sync.Mutex
	label    string
	size     common.Size
	tex      *texture.Texture
	released bool

	// SetSizeErr, when set, is returned by SetSize.
	SetSizeErr error
}

var _ renderer.RenderTarget = &Target{}

// NewTarget creates a Target of the given size.
func NewTarget(label string, width, height int) *Target {
	t := &Target{label: label}
	_ = t.SetSize(width, height)
	return t
}

func (t *Target) Label() string { return t.label }

func (t *Target) Texture() *texture.Texture {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tex
}

func (t *Target) Size() common.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

func (t *Target) SetSize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.SetSizeErr != nil {
		return t.SetSizeErr
	}
	s := common.Size{Width: width, Height: height}
	if !s.Valid() {
		return fmt.Errorf("target %s: %w", t.label, renderer.ErrInvalidSize)
	}
	if s == t.size && t.tex != nil {
		return nil
	}
	t.size = s
	t.tex = texture.New(t.label, width, height, &wgpu.TextureView{})
	return nil
}

// Released reports whether Release was called.
func (t *Target) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

func (t *Target) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.released = true
}

// Call is one recorded Renderer call that produces or presents pixels.
type Call struct {
	// Op is "render", "fullscreen" or "present".
	Op string
	// Target is the render target current at the time of the call, nil for the screen.
	Target renderer.RenderTarget
	// Scene is the scene passed to Render.
	Scene scene.Scene
	// Camera is the camera passed to Render.
	Camera camera.Camera
	// Material is the material passed to RenderFullscreen.
	Material material.Material
	// Texture is the material's texture at the time of a RenderFullscreen call.
	Texture *texture.Texture
}

// Renderer records calls instead of drawing. All methods are safe for concurrent use.
type Renderer struct {
	mu sync.Mutex

	size    common.Size
	target  renderer.RenderTarget
	targets []*Target
	calls   []Call
	resizes int

	// SRGB is returned by SurfaceIsSRGB.
	SRGB bool
	// ResizeErr, when set, is returned by Resize.
	ResizeErr error
	// CreateErr, when set, is returned by CreateRenderTarget.
	CreateErr error
	// RenderErr, when set, is returned by Render and RenderFullscreen.
	RenderErr error
	// PresentErr, when set, is returned by Present.
	PresentErr error
}

var _ renderer.Renderer = &Renderer{}

// New creates a Renderer reporting the given surface size.
func New(width, height int) *Renderer {
	return &Renderer{size: common.Size{Width: width, Height: height}}
}

func (r *Renderer) Size() common.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *Renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ResizeErr != nil {
		return r.ResizeErr
	}
	s := common.Size{Width: width, Height: height}
	if !s.Valid() {
		return fmt.Errorf("resizing to %dx%d: %w", width, height, renderer.ErrInvalidSize)
	}
	r.size = s
	r.resizes++
	return nil
}

// Resizes returns the number of successful Resize calls.
func (r *Renderer) Resizes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resizes
}

func (r *Renderer) SurfaceIsSRGB() bool {
	return r.SRGB
}

func (r *Renderer) CreateRenderTarget(label string, width, height int) (renderer.RenderTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	if !(common.Size{Width: width, Height: height}).Valid() {
		return nil, fmt.Errorf("creating %s: %w", label, renderer.ErrInvalidSize)
	}
	t := NewTarget(label, width, height)
	r.targets = append(r.targets, t)
	return t, nil
}

// Targets returns every target created through CreateRenderTarget.
func (r *Renderer) Targets() []*Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Target, len(r.targets))
	copy(out, r.targets)
	return out
}

func (r *Renderer) SetRenderTarget(t renderer.RenderTarget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = t
}

func (r *Renderer) RenderTarget() renderer.RenderTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *Renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RenderErr != nil {
		return r.RenderErr
	}
	r.calls = append(r.calls, Call{Op: "render", Target: r.target, Scene: s, Camera: cam})
	return nil
}

func (r *Renderer) RenderFullscreen(m material.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RenderErr != nil {
		return r.RenderErr
	}
	r.calls = append(r.calls, Call{Op: "fullscreen", Target: r.target, Material: m, Texture: m.Texture()})
	return nil
}

func (r *Renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PresentErr != nil {
		return r.PresentErr
	}
	r.calls = append(r.calls, Call{Op: "present"})
	return nil
}

// Calls returns the recorded calls in order.
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets recorded calls.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Renderer) Release() {}
