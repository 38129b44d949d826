// Package texture holds the renderer-agnostic handle used to pass GPU textures between
// render targets and the materials that sample them.
package texture

import (
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// textureCount generates unique texture IDs so bind groups can detect when a referenced texture was replaced.
var textureCount atomic.Uint64

// Texture is a non-owning reference to a sampleable GPU texture.
// The owner (usually a RenderTarget) releases the underlying GPU resources; holders of a
// Texture must not outlive the owner's next resize, which replaces the texture with a new ID.
type Texture struct {
	// ID uniquely identifies this texture allocation.
	ID uint64
	// Label is a debug label.
	Label string
	// Width and Height are the texture dimensions in pixels.
	Width, Height int
	// View is the GPU texture view used for sampling. Nil for textures created without a GPU device.
	View *wgpu.TextureView
}

// New creates a texture handle with a fresh ID.
//
// Parameters:
//   - label: debug label for the texture
//   - width: the texture width in pixels
//   - height: the texture height in pixels
//   - view: the GPU texture view, may be nil in headless use
//
// Returns:
//   - *Texture: the new texture handle
func New(label string, width, height int, view *wgpu.TextureView) *Texture {
	return &Texture{
		ID:     textureCount.Add(1),
		Label:  label,
		Width:  width,
		Height: height,
		View:   view,
	}
}
