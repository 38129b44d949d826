package model

import (
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the vertex and index data of the Model from generated geometry.
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - ModelBuilderOption: a function that applies the geometry to a model
func WithGeometry(g Geometry) ModelBuilderOption {
	return func(m *model) {
		m.vertexData, m.indexData = geometryBytes(g)
		m.vertexCount = len(g.Vertices)
		m.indexCount = len(g.Indices)
		m.boundingRadius = ComputeBoundingRadius(g.Vertices)
	}
}

// WithMeshProvider is an option builder that sets the bind group provider that will hold the GPU mesh buffers.
//
// Parameters:
//   - provider: the mesh provider
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
