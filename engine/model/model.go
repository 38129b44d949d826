package model

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexCount           int
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for renderable mesh data.
// A Model owns its CPU-side vertex and index bytes and a BindGroupProvider that receives the
// GPU vertex and index buffers the first time the Renderer draws it. Models are immutable after
// construction; use Clone when an object needs a mesh of its own.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// VertexCount returns the number of vertices in the mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data (uint32 little-endian)
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Clone returns a copy of the model that owns its own vertex and index bytes and an
	// uninitialized mesh provider, so the two never share GPU buffers.
	//
	// Parameters:
	//   - name: the name of the copy
	//
	// Returns:
	//   - Model: the copy
	Clone(name string) Model
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider("model_"+m.name,
			bind_group_provider.WithIndexCount(m.indexCount),
		)
	}
	return m
}

// NewModelFromGeometry wraps generated geometry in a Model.
//
// Parameters:
//   - name: the model identifier
//   - g: the geometry to upload
//
// Returns:
//   - Model: the model
func NewModelFromGeometry(name string, g Geometry) Model {
	return NewModel(
		WithName(name),
		WithGeometry(g),
	)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Clone(name string) Model {
	c := &model{
		name:           name,
		boundingRadius: m.boundingRadius,
		vertexCount:    m.vertexCount,
		vertexData:     append([]byte(nil), m.vertexData...),
		indexData:      append([]byte(nil), m.indexData...),
		indexCount:     m.indexCount,
	}
	c.meshProvider = bind_group_provider.NewBindGroupProvider("model_"+name,
		bind_group_provider.WithIndexCount(c.indexCount),
	)
	return c
}

// geometryBytes converts geometry slices into upload-ready bytes. The returned slices are
// copies so the Geometry can be discarded.
func geometryBytes(g Geometry) (vertexData, indexData []byte) {
	vertexData = append([]byte(nil), common.SliceToBytes(g.Vertices)...)
	indexData = append([]byte(nil), common.SliceToBytes(g.Indices)...)
	return vertexData, indexData
}
