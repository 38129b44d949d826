package postprocess

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
)

type renderPass struct {
	mu      sync.RWMutex
	enabled atomic.Bool

	scene  scene.Scene
	camera camera.Camera
}

// RenderPass draws a scene through a camera into the composer's read target.
type RenderPass interface {
	Pass

	// Scene returns the scene drawn by the pass.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// SetScene swaps the scene drawn by the pass.
	//
	// Parameters:
	//   - s: the scene
	SetScene(s scene.Scene)

	// Camera returns the camera the scene is drawn through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera
}

var _ RenderPass = &renderPass{}

// NewRenderPass creates an enabled RenderPass.
//
// Parameters:
//   - s: the scene to draw
//   - cam: the camera to draw it through
//
// Returns:
//   - RenderPass: the pass
func NewRenderPass(s scene.Scene, cam camera.Camera) RenderPass {
	p := &renderPass{scene: s, camera: cam}
	p.enabled.Store(true)
	return p
}

func (p *renderPass) Name() string {
	return "render"
}

func (p *renderPass) Enabled() bool {
	return p.enabled.Load()
}

func (p *renderPass) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *renderPass) NeedsSwap() bool {
	return false
}

func (p *renderPass) SetSize(int, int) {}

func (p *renderPass) Scene() scene.Scene {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scene
}

func (p *renderPass) SetScene(s scene.Scene) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scene = s
}

func (p *renderPass) Camera() camera.Camera {
	return p.camera
}

func (p *renderPass) Render(r renderer.Renderer, read, _ renderer.RenderTarget, toScreen bool) error {
	if toScreen {
		r.SetRenderTarget(nil)
	} else {
		r.SetRenderTarget(read)
	}
	return r.Render(p.Scene(), p.camera)
}
