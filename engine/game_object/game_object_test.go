package game_object

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
)

func newSphere(t *testing.T) GameObject {
	t.Helper()
	return NewGameObject(
		WithName("sphere"),
		WithModel(model.NewModelFromGeometry("sphere", model.Sphere(1, 8, 6))),
		WithMaterial(material.NewStandard(material.WithColor(common.MustParseColor("#99d98c")))),
	)
}

func TestNewGameObject_Defaults(t *testing.T) {
	g := newSphere(t)

	assert.Equal(t, "sphere", g.Name())
	assert.True(t, g.Enabled())
	assert.Equal(t, IdentityTransform(), g.Transform())
	assert.Equal(t, "object_sphere", g.BindGroupProvider().Label())
	assert.Len(t, g.ModelData(), 128)
}

func TestNewGameObject_RequiresModelAndMaterial(t *testing.T) {
	assert.Panics(t, func() { NewGameObject(WithName("empty")) })
}

func TestModelMatrix_Translation(t *testing.T) {
	g := newSphere(t)
	g.SetPosition(0, 0, -8)

	m := g.ModelMatrix()
	assert.Equal(t, float32(-8), m[14])
	x, y, z := g.Position()
	assert.Equal(t, []float32{0, 0, -8}, []float32{x, y, z})
}

func TestModelMatrix_RotationX(t *testing.T) {
	g := newSphere(t)
	g.SetRotation(-math32.Pi/2, 0, 0)

	m := g.ModelMatrix()
	_, y, z := common.TransformPoint(m[:], 0, 1, 0)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, -1, z, 1e-6)
}

func TestClone_IsIndependent(t *testing.T) {
	g := newSphere(t)
	g.SetPosition(1, 2, 3)

	c := g.Clone("sphere2")

	assert.Equal(t, "sphere2", c.Name())
	assert.NotEqual(t, g.ID(), c.ID())
	assert.NotSame(t, g.Model(), c.Model())
	assert.Equal(t, g.Model().VertexData(), c.Model().VertexData())
	assert.NotSame(t, g.Model().MeshProvider(), c.Model().MeshProvider())
	assert.NotSame(t, g.Material(), c.Material())
	assert.NotSame(t, g.BindGroupProvider(), c.BindGroupProvider())
	assert.Equal(t, g.Transform(), c.Transform())

	c.SetPosition(0, 0, -8)
	c.Material().SetColor(common.MustParseColor("skyblue"))
	x, y, z := g.Position()
	assert.Equal(t, []float32{1, 2, 3}, []float32{x, y, z})
	assert.Equal(t, common.MustParseColor("#99d98c"), g.Material().Color())
}

func TestSetEnabled(t *testing.T) {
	g := newSphere(t)
	g.SetEnabled(false)
	assert.False(t, g.Enabled())

	c := g.Clone("hidden")
	assert.False(t, c.Enabled())
}
