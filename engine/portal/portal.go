// Package portal implements the surface that shows another scene: a material whose color is read
// from an input texture at the fragment's screen position.
package portal

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
)

type surface struct {
	mu sync.RWMutex

	name       string
	side       material.Side
	fallback   common.Color
	input      *texture.Texture
	resolution common.Size

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Surface is the portal material. Each frame the input texture and resolution are overwritten;
// nothing from earlier frames is retained. Until an input texture is set the surface renders its
// fallback color without sampling.
type Surface interface {
	material.Material

	// SetInputTexture sets the texture shown through the portal. The reference is non-owning.
	//
	// Parameters:
	//   - t: the texture, or nil to show the fallback color
	SetInputTexture(t *texture.Texture)

	// InputTexture returns the current input texture, nil if unset.
	//
	// Returns:
	//   - *texture.Texture: the input texture
	InputTexture() *texture.Texture

	// SetResolution sets the screen resolution used to turn fragment coordinates into texture coordinates.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetResolution(width, height int)

	// Resolution returns the current resolution.
	//
	// Returns:
	//   - common.Size: the resolution in pixels
	Resolution() common.Size
}

var _ Surface = &surface{}

// NewSurface creates a portal surface with no input texture.
//
// Parameters:
//   - options: variadic list of SurfaceBuilderOption functions
//
// Returns:
//   - Surface: the new surface
func NewSurface(options ...SurfaceBuilderOption) Surface {
	s := &surface{
		name:     shader.KeyPortal,
		side:     material.SideFront,
		fallback: common.Color{},
	}
	for _, opt := range options {
		opt(s)
	}
	s.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + s.name)
	return s
}

func (s *surface) Name() string {
	return s.name
}

func (s *surface) Shader() shader.Shader {
	return shader.Portal()
}

func (s *surface) PipelineKey() string {
	return material.PipelineKey(shader.Portal(), s.side)
}

func (s *surface) Side() material.Side {
	return s.side
}

func (s *surface) Color() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback
}

func (s *surface) SetColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = c
}

func (s *surface) Texture() *texture.Texture {
	return s.InputTexture()
}

func (s *surface) SetInputTexture(t *texture.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = t
}

func (s *surface) InputTexture() *texture.Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

func (s *surface) SetResolution(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolution = common.Size{Width: width, Height: height}
}

func (s *surface) Resolution() common.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolution
}

func (s *surface) UniformData() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := GPUPortalMaterial{
		Resolution: [2]float32{float32(s.resolution.Width), float32(s.resolution.Height)},
		Fallback:   s.fallback.Linear().Vec4(1),
	}
	if s.input != nil {
		u.HasTexture = 1
	}
	return u.Marshal()
}

func (s *surface) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return s.bindGroupProvider
}

// Clone returns a portal with the same fallback, side and resolution and no input texture.
func (s *surface) Clone() material.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := NewSurface(WithName(s.name), WithSide(s.side), WithFallbackColor(s.fallback))
	c.SetResolution(s.resolution.Width, s.resolution.Height)
	return c
}
