package light

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionPointsTowardsLight(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(1.76, 2.26, 2.38))
	d := l.Direction()

	length := math32.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	assert.InDelta(t, 1, length, 1e-6)
	assert.Greater(t, d[1], float32(0))

	ambient := NewLight(LightTypeAmbient, WithPosition(1, 1, 1))
	assert.Equal(t, [3]float32{}, ambient.Direction())
}

func TestPackLights(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeDirectional, WithPosition(0, 10, 0), WithCastsShadows(true)),
		NewLight(LightTypeAmbient, WithIntensity(0.5)),
		NewLight(LightTypeAmbient, WithIntensity(0.25)),
		NewLight(LightTypeDirectional, WithEnabled(false)),
	}
	packed := PackLights(lights)

	require.Equal(t, uint32(1), packed.Count)
	assert.InDelta(t, 0.75, packed.Ambient[0], 1e-6)
	assert.Equal(t, [3]float32{0, 1, 0}, packed.Directional[0].Direction)
	assert.Equal(t, uint32(1), packed.Directional[0].CastsShadows)

	buf := packed.Marshal()
	assert.Len(t, buf, 144)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12:16]))
}

func TestPackLightsCapsDirectional(t *testing.T) {
	var lights []Light
	for range MaxDirectionalLights + 2 {
		lights = append(lights, NewLight(LightTypeDirectional, WithPosition(0, 1, 0)))
	}
	assert.Equal(t, uint32(MaxDirectionalLights), PackLights(lights).Count)
}

func TestPackLightsUsesLinearColor(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithColor(common.MustParseColor("#808080")))
	packed := PackLights([]Light{l})
	assert.InDelta(t, 0.2158, packed.Ambient[0], 1e-3)
}
