package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-portal/engine/debug"
	"github.com/Carmen-Shannon/oxy-portal/engine/postprocess"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-portal/engine/timeline"
)

// ErrResourceAcquisition is wrapped by every failure to create, resize or acquire a render
// destination. The viewer cannot continue after it.
var ErrResourceAcquisition = errors.New("resource acquisition failed")

// FrameResult describes one executed frame.
type FrameResult struct {
	// Scene is the scene composited to the screen.
	Scene SceneID
	// PortalTexture is the texture pushed to the portal surface.
	PortalTexture *texture.Texture
	// Elapsed is the frame time in seconds since the loop started.
	Elapsed float64
	// Delta is Elapsed minus the previous frame's Elapsed.
	Delta float64
}

type app struct {
	mu sync.Mutex

	renderer renderer.Renderer
	store    *Store
	viewport Viewport

	offscreen  renderer.RenderTarget
	composer   postprocess.Composer
	renderPass postprocess.RenderPass
	outputPass postprocess.OutputPass

	profiler *profiler.Profiler

	previous float64
}

// App is the viewer's application context: it owns the store, the offscreen target and the
// post-processing chain, and runs the per-frame sequence.
type App interface {
	// Viewport returns the current drawable size.
	//
	// Returns:
	//   - Viewport: the viewport
	Viewport() Viewport

	// Store returns the scene store.
	//
	// Returns:
	//   - *Store: the store
	Store() *Store

	// Composer returns the post-processing chain.
	//
	// Returns:
	//   - postprocess.Composer: the composer
	Composer() postprocess.Composer

	// Offscreen returns the target the secondary scene is rendered into.
	//
	// Returns:
	//   - renderer.RenderTarget: the offscreen target
	Offscreen() renderer.RenderTarget

	// OnResize applies a new drawable size to the camera, the surface, the offscreen target, the
	// composer and the portal. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: an error wrapping ErrResourceAcquisition if a resource cannot be resized
	OnResize(width, height int) error

	// Frame runs the per-frame sequence: secondary scene offscreen, portal input, scene selection,
	// composite, sphere follow and timing.
	//
	// Parameters:
	//   - now: time since the loop started
	//
	// Returns:
	//   - FrameResult: what the frame did
	//   - error: an error wrapping ErrResourceAcquisition if a render destination fails
	Frame(now time.Duration) (FrameResult, error)

	// ApplyCameraValues overwrites the camera position and x rotation. Values are not validated.
	//
	// Parameters:
	//   - v: the animated values
	ApplyCameraValues(v timeline.CameraValues)

	// ApplySettings applies debug settings.
	//
	// Parameters:
	//   - s: the settings
	ApplySettings(s debug.Settings)

	// Release frees the offscreen target and the composer.
	Release()
}

var _ App = &app{}

// NewApp creates the application context and its GPU resources at the given viewport size.
//
// Parameters:
//   - r: the renderer
//   - store: the scene store
//   - viewport: the initial drawable size
//   - options: variadic list of AppBuilderOption functions
//
// Returns:
//   - App: the application
//   - error: an error wrapping ErrResourceAcquisition if a render target cannot be created
func NewApp(r renderer.Renderer, store *Store, viewport Viewport, options ...AppBuilderOption) (App, error) {
	if r == nil || store == nil {
		panic("viewer: renderer and store are required")
	}
	a := &app{
		renderer: r,
		store:    store,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.profiler == nil {
		a.profiler = profiler.NewProfiler(profiler.WithEnabled(false))
	}
	if !viewport.Valid() {
		return nil, fmt.Errorf("%w: viewport %dx%d: %w", ErrResourceAcquisition, viewport.Width, viewport.Height, renderer.ErrInvalidSize)
	}

	offscreen, err := r.CreateRenderTarget("offscreen", viewport.Width, viewport.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: offscreen target: %w", ErrResourceAcquisition, err)
	}

	a.renderPass = postprocess.NewRenderPass(store.Primary, store.Camera)
	a.outputPass = postprocess.NewOutputPass(
		postprocess.WithToneMapping(postprocess.ToneMappingACESFilmic),
	)
	composer, err := postprocess.NewComposer(r, viewport.Width, viewport.Height,
		postprocess.WithPasses(a.renderPass, a.outputPass),
	)
	if err != nil {
		offscreen.Release()
		return nil, fmt.Errorf("%w: composer: %w", ErrResourceAcquisition, err)
	}

	a.offscreen = offscreen
	a.composer = composer
	a.viewport = viewport
	store.Camera.SetAspect(viewport.Aspect())
	store.Portal.SetResolution(viewport.Width, viewport.Height)
	return a, nil
}

func (a *app) Viewport() Viewport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewport
}

func (a *app) Store() *Store {
	return a.store
}

func (a *app) Composer() postprocess.Composer {
	return a.composer
}

func (a *app) Offscreen() renderer.RenderTarget {
	return a.offscreen
}

func (a *app) OnResize(width, height int) error {
	v := Viewport{Width: width, Height: height}
	if !v.Valid() {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.renderer.Resize(width, height); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrResourceAcquisition, err)
	}
	if err := a.offscreen.SetSize(width, height); err != nil {
		return fmt.Errorf("%w: offscreen target: %w", ErrResourceAcquisition, err)
	}
	if err := a.composer.SetSize(width, height); err != nil {
		return fmt.Errorf("%w: composer: %w", ErrResourceAcquisition, err)
	}
	a.store.Camera.SetAspect(v.Aspect())
	a.viewport = v
	a.store.Portal.SetResolution(width, height)
	return nil
}

func (a *app) Frame(now time.Duration) (FrameResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.profiler.Begin()
	defer a.profiler.End()

	cam := a.store.Camera

	a.renderer.SetRenderTarget(a.offscreen)
	if err := a.renderer.Render(a.store.Secondary, cam); err != nil {
		a.renderer.SetRenderTarget(nil)
		return FrameResult{}, fmt.Errorf("%w: secondary scene: %w", ErrResourceAcquisition, err)
	}
	tex := a.offscreen.Texture()
	a.store.Portal.SetInputTexture(tex)
	a.store.Portal.SetResolution(a.viewport.Width, a.viewport.Height)
	a.renderer.SetRenderTarget(nil)

	_, _, z := cam.Position()
	selected := SelectScene(z)
	a.renderPass.SetScene(a.store.Scene(selected))
	if err := a.composer.Render(); err != nil {
		return FrameResult{}, fmt.Errorf("%w: composite: %w", ErrResourceAcquisition, err)
	}

	a.store.Sphere.SetPosition(0, 0, z-sphereOffset)
	a.store.Sphere2.SetPosition(0, 0, z-sphereOffset)

	elapsed := now.Seconds()
	delta := elapsed - a.previous
	a.previous = elapsed

	return FrameResult{
		Scene:         selected,
		PortalTexture: tex,
		Elapsed:       elapsed,
		Delta:         delta,
	}, nil
}

func (a *app) ApplyCameraValues(v timeline.CameraValues) {
	cam := a.store.Camera
	cam.SetPosition(v.Position.X, v.Position.Y, v.Position.Z)
	_, ry, rz := cam.Rotation()
	cam.SetRotation(v.Rotation.X, ry, rz)
}

func (a *app) ApplySettings(s debug.Settings) {
	a.outputPass.SetExposure(s.Exposure)
	a.store.BackgroundSphere.SetEnabled(s.BackgroundSphere)
	a.store.Primary.SetBackground(s.PrimaryBackground)
	a.store.Secondary.SetBackground(s.SecondaryBackground)
	if s.Profiler != nil {
		a.profiler.SetEnabled(*s.Profiler)
	}
}

func (a *app) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composer.Release()
	a.offscreen.Release()
}
