package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInvalidSize is returned when a surface or target is sized with a non-positive dimension.
var ErrInvalidSize = errors.New("invalid size")

// drawCall is one encoded object draw within a scene pass.
type drawCall struct {
	p          pipeline.Pipeline
	mesh       bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	size   common.Size
	target RenderTarget

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount

	// Pre-allocated slices reused each render to avoid per-frame allocations.
	writePool []bind_group_provider.BufferWrite
	drawPool  []drawCall
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API: callers hand it a Scene and a Camera, and the Renderer lazily creates
// pipelines, mesh buffers and bind groups, uploads uniforms and encodes one render pass into the
// current render target (the screen when none is set). Pipelines are cached by material pipeline
// key and target configuration.
type Renderer interface {
	// Size returns the current surface size.
	//
	// Returns:
	//   - common.Size: the surface size in pixels
	Size() common.Size

	// Resize reconfigures the surface for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidSize for non-positive sizes, or the backend failure
	Resize(width, height int) error

	// SurfaceIsSRGB reports whether the surface format applies sRGB encoding on write.
	//
	// Returns:
	//   - bool: true for *Srgb surface formats
	SurfaceIsSRGB() bool

	// CreateRenderTarget allocates an offscreen render target.
	//
	// Parameters:
	//   - label: debug label
	//   - width, height: the size in pixels
	//
	// Returns:
	//   - RenderTarget: the target
	//   - error: an error if the size is invalid or allocation fails
	CreateRenderTarget(label string, width, height int) (RenderTarget, error)

	// SetRenderTarget selects the destination of subsequent renders; nil selects the screen.
	//
	// Parameters:
	//   - t: the render target or nil
	SetRenderTarget(t RenderTarget)

	// RenderTarget returns the current destination, nil for the screen.
	//
	// Returns:
	//   - RenderTarget: the current target
	RenderTarget() RenderTarget

	// Render draws every enabled object of s through cam into the current target, cleared to the
	// scene background.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw it through
	//
	// Returns:
	//   - error: an error if a resource could not be created or the destination acquired
	Render(s scene.Scene, cam camera.Camera) error

	// RenderFullscreen draws a fullscreen triangle with m into the current target. The material's
	// shader must declare a single bind group and generate its own vertices.
	//
	// Parameters:
	//   - m: the fullscreen material
	//
	// Returns:
	//   - error: an error if a resource could not be created or the destination acquired
	RenderFullscreen(m material.Material) error

	// Present displays the frame rendered to the screen, if any.
	//
	// Returns:
	//   - error: an error if presentation fails
	Present() error

	// Release frees the pipeline cache and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, presenting to the window's surface.
// GPU bootstrap failures panic.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.Resize(w.Width(), w.Height()); err != nil {
		panic(fmt.Sprintf("renderer: failed to configure surface: %v", err))
	}
	return r
}

// newRendererWithBackend wires a Renderer around an existing backend without configuring the surface.
func newRendererWithBackend(backend RendererBackend, size common.Size) *renderer {
	return &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       backend,
		size:          size,
	}
}

func (r *renderer) Size() common.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *renderer) Resize(width, height int) error {
	size := common.Size{Width: width, Height: height}
	if !size.Valid() {
		return fmt.Errorf("resize surface to %dx%d: %w", width, height, ErrInvalidSize)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("resize surface to %dx%d: %w", width, height, err)
	}
	r.size = size
	return nil
}

func (r *renderer) SurfaceIsSRGB() bool {
	switch r.backend.SurfaceFormat() {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

func (r *renderer) CreateRenderTarget(label string, width, height int) (RenderTarget, error) {
	if !(common.Size{Width: width, Height: height}).Valid() {
		return nil, fmt.Errorf("create render target %s at %dx%d: %w", label, width, height, ErrInvalidSize)
	}
	t, err := r.backend.CreateRenderTarget(label, width, height)
	if err != nil {
		return nil, fmt.Errorf("create render target %s: %w", label, err)
	}
	return t, nil
}

func (r *renderer) SetRenderTarget(t RenderTarget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = t
}

func (r *renderer) RenderTarget() RenderTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	format, samples := r.passConfig(true)

	camBGP := cam.BindGroupProvider()
	if camBGP == nil {
		camBGP = bind_group_provider.NewBindGroupProvider("camera")
		cam.SetBindGroupProvider(camBGP)
	}
	lightsBGP := s.LightBindGroupProvider()

	writes := r.writePool[:0]
	draws := r.drawPool[:0]

	for _, obj := range s.Objects() {
		if !obj.Enabled() {
			continue
		}
		mat := obj.Material()
		p, err := r.pipelineFor(mat, format, samples, true)
		if err != nil {
			return err
		}

		mdl := obj.Model()
		mesh := mdl.MeshProvider()
		if mesh.VertexBuffer() == nil {
			if err := r.backend.InitMeshBuffers(mesh, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
				return fmt.Errorf("init mesh %s: %w", mdl.Name(), err)
			}
		}

		tex := mat.Texture()
		if tex == nil && mat.Shader().Sampled(shader.GroupMaterial) {
			tex = r.backend.PlaceholderTexture()
		}

		groups := []struct {
			provider bind_group_provider.BindGroupProvider
			group    int
			tex      *texture.Texture
			data     []byte
		}{
			{camBGP, shader.GroupCamera, nil, nil},
			{lightsBGP, shader.GroupLights, nil, nil},
			{obj.BindGroupProvider(), shader.GroupModelData, nil, obj.ModelData()},
			{mat.BindGroupProvider(), shader.GroupMaterial, tex, mat.UniformData()},
		}
		bindGroups := make([]bind_group_provider.BindGroupProvider, len(groups))
		for i, g := range groups {
			if err := r.ensureBindGroup(g.provider, p, g.group, g.tex); err != nil {
				return err
			}
			if g.data != nil {
				writes = append(writes, bind_group_provider.BufferWrite{Provider: g.provider, Binding: 0, Data: g.data})
			}
			bindGroups[i] = g.provider
		}
		draws = append(draws, drawCall{p: p, mesh: mesh, bindGroups: bindGroups})
	}

	if len(draws) > 0 {
		camUniform := cam.GPUUniform()
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: camBGP, Binding: 0, Data: camUniform.Marshal()},
			bind_group_provider.BufferWrite{Provider: lightsBGP, Binding: 0, Data: s.LightData()},
		)
		r.backend.WriteBuffers(writes)
	}
	r.writePool = writes
	r.drawPool = draws

	if err := r.backend.BeginPass(r.target, s.Background().Linear(), true); err != nil {
		return fmt.Errorf("render scene %s: %w", s.Name(), err)
	}
	for _, d := range draws {
		r.backend.Draw(d.p, d.mesh, d.bindGroups)
	}
	if err := r.backend.EndPass(); err != nil {
		return fmt.Errorf("render scene %s: %w", s.Name(), err)
	}
	return nil
}

func (r *renderer) RenderFullscreen(m material.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	format, samples := r.passConfig(false)
	p, err := r.pipelineFor(m, format, samples, false)
	if err != nil {
		return err
	}

	tex := m.Texture()
	if tex == nil && m.Shader().Sampled(0) {
		tex = r.backend.PlaceholderTexture()
	}
	bgp := m.BindGroupProvider()
	if err := r.ensureBindGroup(bgp, p, 0, tex); err != nil {
		return err
	}
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{Provider: bgp, Binding: 0, Data: m.UniformData()}})

	if err := r.backend.BeginPass(r.target, common.Color{}, false); err != nil {
		return fmt.Errorf("render fullscreen %s: %w", m.Name(), err)
	}
	r.backend.DrawFullscreen(p, []bind_group_provider.BindGroupProvider{bgp})
	if err := r.backend.EndPass(); err != nil {
		return fmt.Errorf("render fullscreen %s: %w", m.Name(), err)
	}
	return nil
}

func (r *renderer) Present() error {
	return r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}

// passConfig returns the color format and sample count of a pass into the current target.
// Must be called with r.mu held.
func (r *renderer) passConfig(depth bool) (wgpu.TextureFormat, uint32) {
	if r.target != nil {
		return TargetFormat, r.backend.SampleCount()
	}
	if depth {
		return r.backend.SurfaceFormat(), r.backend.SampleCount()
	}
	return r.backend.SurfaceFormat(), 1
}

// pipelineFor returns the cached pipeline for a material and target configuration, registering it on first use.
// Must be called with r.mu held.
func (r *renderer) pipelineFor(m material.Material, format wgpu.TextureFormat, samples uint32, depth bool) (pipeline.Pipeline, error) {
	key := pipeline.Key(m.PipelineKey(), format, samples)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(key,
		pipeline.WithShader(m.Shader()),
		pipeline.WithColorTarget(format, samples),
		pipeline.WithCullMode(m.Side().CullMode()),
		pipeline.WithDepthTestEnabled(depth),
		pipeline.WithDepthWriteEnabled(depth),
	)
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("register pipeline %s: %w", key, err)
	}
	r.pipelineCache[key] = p
	return p, nil
}

// ensureBindGroup creates the provider's bind group on first use and recreates it when the bound texture changed.
func (r *renderer) ensureBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int, tex *texture.Texture) error {
	if provider.Initialized() && (tex == nil || provider.BoundTextureID() == tex.ID) {
		return nil
	}
	desc := p.Shader().BindGroupLayoutDescriptor(group)
	if err := r.backend.InitBindGroup(provider, p.BindGroupLayout(group), desc, tex); err != nil {
		return fmt.Errorf("init bind group %s: %w", provider.Label(), err)
	}
	return nil
}
