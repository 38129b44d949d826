package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
)

func newObject(name string) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithModel(model.NewModelFromGeometry(name, model.Circle(1, 8))),
		game_object.WithMaterial(material.NewBasic()),
	)
}

func TestNewScene(t *testing.T) {
	bg := common.MustParseColor("#75D963")
	a, b := newObject("a"), newObject("b")
	s := NewScene("primary", WithBackground(bg), WithObjects(a, b, a))

	assert.Equal(t, "primary", s.Name())
	assert.Equal(t, bg, s.Background())
	require.Equal(t, 2, s.Count())
	assert.Equal(t, []game_object.GameObject{a, b}, s.Objects())
	assert.Equal(t, "lights_primary", s.LightBindGroupProvider().Label())
}

func TestScene_AddFindRemove(t *testing.T) {
	s := NewScene("s")
	a := newObject("ground")
	s.Add(a)

	assert.Same(t, a, s.Get(a.ID()))
	assert.Same(t, a, s.Find("ground"))
	assert.Nil(t, s.Find("missing"))

	s.Remove(a.ID())
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, s.Get(a.ID()))
	assert.NotPanics(t, func() { s.Remove(a.ID()) })
}

func TestScene_Objects_ReturnsCopy(t *testing.T) {
	s := NewScene("s", WithObjects(newObject("a")))
	objs := s.Objects()
	objs[0] = nil
	assert.NotNil(t, s.Objects()[0])
}

func TestScene_LightData(t *testing.T) {
	s := NewScene("s", WithLights(
		light.NewLight(light.LightTypeDirectional, light.WithPosition(1.76, 2.26, 2.38)),
		light.NewLight(light.LightTypeAmbient),
	))
	assert.Len(t, s.Lights(), 2)
	assert.Len(t, s.LightData(), 144)

	s.SetBackground(common.MustParseColor("#75CAFF"))
	assert.Equal(t, "#75caff", s.Background().String())
}
