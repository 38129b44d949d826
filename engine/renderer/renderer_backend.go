package renderer

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// TargetFormat is the color format of every offscreen RenderTarget. Scenes are rendered in linear
// HDR and only converted for display by a fullscreen output pass.
const TargetFormat = wgpu.TextureFormatRGBA16Float

// RenderTarget is an offscreen color destination with a depth buffer. Its resolved color texture
// can be sampled by materials once a pass into it has ended.
type RenderTarget interface {
	// Label returns the debug label of the target.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Texture returns the sampleable resolved color texture. The handle is replaced (new ID) on resize.
	//
	// Returns:
	//   - *texture.Texture: the color texture
	Texture() *texture.Texture

	// Size returns the current size in pixels.
	//
	// Returns:
	//   - common.Size: the size
	Size() common.Size

	// SetSize reallocates the target's GPU textures. Setting the current size is a no-op.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the size is invalid or allocation fails
	SetSize(width, height int) error

	// Release frees the target's GPU textures.
	Release()
}

// RendererBackend is the GPU API facing half of the Renderer. The Renderer decides what to draw and
// in which order; the backend owns the device, the surface and every GPU allocation.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface and its multisample and depth attachments.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the size is invalid or an attachment cannot be created
	ConfigureSurface(width, height int) error

	// SurfaceFormat returns the configured surface texture format.
	SurfaceFormat() wgpu.TextureFormat

	// SampleCount returns the MSAA sample count used by depth-tested passes.
	SampleCount() uint32

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the GPU render pipeline and bind group layouts for p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates GPU vertex and index buffers and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates (or recreates) the provider's bind group against layout. Uniform buffers and
	// samplers are created on first use and reused afterwards; texture entries bind tex.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the bind group on
	//   - layout: the bind group layout, usually taken from a registered pipeline
	//   - descriptor: the layout descriptor defining the entries
	//   - tex: the texture for texture entries, nil if the group has none
	//
	// Returns:
	//   - error: an error if creation fails or a texture entry has no texture
	InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor, tex *texture.Texture) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateRenderTarget allocates an offscreen target in TargetFormat.
	//
	// Parameters:
	//   - label: debug label
	//   - width, height: the size in pixels
	//
	// Returns:
	//   - RenderTarget: the target
	//   - error: an error if allocation fails
	CreateRenderTarget(label string, width, height int) (RenderTarget, error)

	// PlaceholderTexture returns a 1x1 texture bound where a material samples a texture it does not have yet.
	PlaceholderTexture() *texture.Texture

	// BeginPass opens a render pass into target, or into the surface when target is nil, clearing
	// color to clear. Depth-tested passes attach a depth buffer and use the MSAA sample count.
	// The surface texture is acquired by the first surface pass of a frame and held until Present.
	//
	// Parameters:
	//   - target: the destination, nil for the screen
	//   - clear: the linear clear color
	//   - depth: whether to attach a depth buffer
	//
	// Returns:
	//   - error: an error if the destination cannot be acquired
	BeginPass(target RenderTarget, clear common.Color, depth bool) error

	// Draw encodes an indexed draw of the mesh with the given bind groups in group order.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - mesh: the provider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at indices 0..n-1
	Draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// DrawFullscreen encodes a three-vertex draw without vertex buffers.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - bindGroups: providers whose bind groups are set at indices 0..n-1
	DrawFullscreen(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider)

	// EndPass ends the open pass and submits it to the queue.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndPass() error

	// Present presents the acquired surface texture, if any, and releases it.
	//
	// Returns:
	//   - error: always nil for now; reserved for surface loss reporting
	Present() error

	// Release frees every GPU object owned by the backend.
	Release()
}
