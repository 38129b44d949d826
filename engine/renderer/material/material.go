package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// Side selects which faces of a mesh a material renders.
type Side int

const (
	// SideFront renders counter-clockwise faces only.
	SideFront Side = iota
	// SideBack renders clockwise faces only, used for skyboxes seen from inside.
	SideBack
	// SideDouble renders both faces.
	SideDouble
)

// CullMode maps the side to the pipeline cull mode.
//
// Returns:
//   - wgpu.CullMode: the faces to discard
func (s Side) CullMode() wgpu.CullMode {
	switch s {
	case SideBack:
		return wgpu.CullModeFront
	case SideDouble:
		return wgpu.CullModeNone
	default:
		return wgpu.CullModeBack
	}
}

// String returns the side name, used in pipeline keys.
func (s Side) String() string {
	switch s {
	case SideBack:
		return "back"
	case SideDouble:
		return "double"
	default:
		return "front"
	}
}

// material is the implementation of the Material interface for the flat color shaders.
type material struct {
	mu sync.RWMutex

	name              string
	shader            shader.Shader
	side              Side
	color             common.Color
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material. A material names the shader it is drawn
// with, the faces it renders, the uniform bytes written to the material bind group, and the optional
// texture sampled by that group. GPU resources live in the material's BindGroupProvider and are
// created lazily by the Renderer.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Shader retrieves the shader this material is drawn with.
	//
	// Returns:
	//   - shader.Shader: the material's shader
	Shader() shader.Shader

	// PipelineKey retrieves the key identifying the render pipeline state this material needs,
	// excluding the render target configuration.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Side retrieves the faces rendered by this material.
	//
	// Returns:
	//   - Side: the rendered side
	Side() Side

	// Color retrieves the material's sRGB color. For textured materials this is the fallback color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// SetColor sets the material's sRGB color.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c common.Color)

	// Texture retrieves the texture sampled by the material bind group, or nil when the material
	// is untextured or has no input yet.
	//
	// Returns:
	//   - *texture.Texture: the sampled texture
	Texture() *texture.Texture

	// UniformData serializes the material uniform for binding 0 of the material group.
	//
	// Returns:
	//   - []byte: the uniform bytes
	UniformData() []byte

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Clone returns an independent copy of the material with its own, uninitialized GPU resources.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewStandard creates a lit color material drawn with the standard (Lambert) shader.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewStandard(options ...MaterialBuilderOption) Material {
	return newMaterial(shader.Standard(), options...)
}

// NewBasic creates an unlit color material drawn with the basic shader.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewBasic(options ...MaterialBuilderOption) Material {
	return newMaterial(shader.Basic(), options...)
}

func newMaterial(s shader.Shader, options ...MaterialBuilderOption) *material {
	m := &material{
		name:   s.Key(),
		shader: s,
		side:   SideFront,
		color:  common.Color{R: 1, G: 1, B: 1},
	}
	for _, opt := range options {
		opt(m)
	}
	m.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + m.name)
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Shader() shader.Shader {
	return m.shader
}

func (m *material) PipelineKey() string {
	return PipelineKey(m.shader, m.side)
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Color() common.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

func (m *material) SetColor(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

func (m *material) Texture() *texture.Texture {
	return nil
}

func (m *material) UniformData() []byte {
	u := GPUColorMaterial{Color: m.Color().Linear().Vec4(1)}
	return u.Marshal()
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) Clone() Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return newMaterial(m.shader, WithName(m.name), WithSide(m.side), WithColor(m.color))
}

// PipelineKey combines a shader key and a side into a material pipeline key.
//
// Parameters:
//   - s: the material shader
//   - side: the rendered side
//
// Returns:
//   - string: the pipeline key
func PipelineKey(s shader.Shader, side Side) string {
	return s.Key() + "/" + side.String()
}
