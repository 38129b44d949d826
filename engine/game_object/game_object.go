package game_object

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
)

var nextID atomic.Uint64

// Transform is the placement of a game object in its scene. Rotation holds Euler XYZ angles in radians.
type Transform struct {
	Position common.Vec3
	Rotation common.Vec3
	Scale    common.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: common.Vec3{X: 1, Y: 1, Z: 1}}
}

type gameObject struct {
	mu sync.RWMutex

	id      uint64
	name    string
	enabled atomic.Bool

	transform Transform
	mdl       model.Model
	mat       material.Material

	// bindGroupProvider carries the per-object model data uniform (group 2).
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// GameObject defines the interface for a drawable scene entity: a shared Model drawn with a Material
// at a Transform. Each object owns its model data uniform.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the Model drawn by this object.
	//
	// Returns:
	//   - model.Model: the associated model
	Model() model.Model

	// Material returns the Material the object is drawn with.
	//
	// Returns:
	//   - material.Material: the associated material
	Material() material.Material

	// Transform returns a copy of the object's transform.
	//
	// Returns:
	//   - Transform: the current transform
	Transform() Transform

	// SetTransform replaces the object's transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t Transform)

	// Position returns the object's position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// SetPosition sets the object's position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's Euler XYZ rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the object's scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// ModelMatrix computes the object's column-major model matrix from its transform.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// ModelData serializes the model data uniform (model and normal matrices) for upload.
	//
	// Returns:
	//   - []byte: 128 bytes of uniform data
	ModelData() []byte

	// BindGroupProvider returns the provider holding the object's model data uniform.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Clone creates a new object with a copy of this object's Model, a cloned Material, the same
	// transform and the same enabled state. The clone owns its own GPU resources.
	//
	// Parameters:
	//   - name: the name of the new object
	//
	// Returns:
	//   - GameObject: the clone
	Clone(name string) GameObject
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options. A Model and a Material are required.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		id:        nextID.Add(1),
		transform: IdentityTransform(),
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	if g.mdl == nil || g.mat == nil {
		panic(fmt.Sprintf("game object %q requires a model and a material", g.name))
	}
	if g.name == "" {
		g.name = fmt.Sprintf("object_%d", g.id)
	}
	g.bindGroupProvider = bind_group_provider.NewBindGroupProvider("object_" + g.name)
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) Transform() Transform {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform
}

func (g *gameObject) SetTransform(t Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform = t
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p := g.transform.Position
	return p.X, p.Y, p.Z
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Position = common.Vec3{X: x, Y: y, Z: z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Rotation = common.Vec3{X: rx, Y: ry, Z: rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Scale = common.Vec3{X: sx, Y: sy, Z: sz}
}

func (g *gameObject) ModelMatrix() [16]float32 {
	t := g.Transform()
	var m [16]float32
	common.BuildModelMatrix(m[:],
		t.Position.X, t.Position.Y, t.Position.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z,
		t.Scale.X, t.Scale.Y, t.Scale.Z,
	)
	return m
}

func (g *gameObject) ModelData() []byte {
	data := model.NewGPUModelData(g.ModelMatrix())
	return data.Marshal()
}

func (g *gameObject) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return g.bindGroupProvider
}

func (g *gameObject) Clone(name string) GameObject {
	return NewGameObject(
		WithName(name),
		WithModel(g.mdl.Clone(name)),
		WithMaterial(g.mat.Clone()),
		WithTransform(g.Transform()),
		WithEnabled(g.Enabled()),
	)
}
