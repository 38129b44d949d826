package portal

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
)

// SurfaceBuilderOption is a functional option used to configure a Surface during construction.
type SurfaceBuilderOption func(*surface)

// WithName sets the material name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - SurfaceBuilderOption: a function that sets the name
func WithName(name string) SurfaceBuilderOption {
	return func(s *surface) {
		s.name = name
	}
}

// WithSide sets which faces of the portal mesh are rendered.
//
// Parameters:
//   - side: the rendered side
//
// Returns:
//   - SurfaceBuilderOption: a function that sets the side
func WithSide(side material.Side) SurfaceBuilderOption {
	return func(s *surface) {
		s.side = side
	}
}

// WithFallbackColor sets the color written while no input texture is set. Defaults to black.
//
// Parameters:
//   - c: the sRGB fallback color
//
// Returns:
//   - SurfaceBuilderOption: a function that sets the fallback color
func WithFallbackColor(c common.Color) SurfaceBuilderOption {
	return func(s *surface) {
		s.fallback = c
	}
}

// WithResolution sets the initial resolution.
//
// Parameters:
//   - width, height: the resolution in pixels
//
// Returns:
//   - SurfaceBuilderOption: a function that sets the resolution
func WithResolution(width, height int) SurfaceBuilderOption {
	return func(s *surface) {
		s.resolution = common.Size{Width: width, Height: height}
	}
}
