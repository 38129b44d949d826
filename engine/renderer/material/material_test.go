package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSide_CullMode(t *testing.T) {
	tests := []struct {
		side Side
		want wgpu.CullMode
	}{
		{SideFront, wgpu.CullModeBack},
		{SideBack, wgpu.CullModeFront},
		{SideDouble, wgpu.CullModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.side.CullMode())
		})
	}
}

func TestNewStandard(t *testing.T) {
	green := common.MustParseColor("#99d98c")
	m := NewStandard(WithName("ground"), WithColor(green))

	assert.Equal(t, "ground", m.Name())
	assert.Equal(t, shader.KeyStandard, m.Shader().Key())
	assert.Equal(t, SideFront, m.Side())
	assert.Equal(t, green, m.Color())
	assert.Nil(t, m.Texture())
	assert.Equal(t, "material_ground", m.BindGroupProvider().Label())
	assert.Equal(t, "standard/front", m.PipelineKey())
}

func TestNewBasic_BackSide(t *testing.T) {
	m := NewBasic(WithSide(SideBack))
	assert.Equal(t, shader.KeyBasic, m.Shader().Key())
	assert.Equal(t, "basic/back", m.PipelineKey())
}

func TestUniformData_IsLinear(t *testing.T) {
	c := common.MustParseColor("#808080")
	m := NewStandard(WithColor(c))

	data := m.UniformData()
	require.Len(t, data, 16)
	r := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	a := math.Float32frombits(binary.LittleEndian.Uint32(data[12:16]))
	assert.InDelta(t, c.Linear().R, r, 1e-6)
	assert.Less(t, r, c.R)
	assert.Equal(t, float32(1), a)
}

func TestClone_IsIndependent(t *testing.T) {
	m := NewStandard(WithName("sphere"), WithColor(common.MustParseColor("#99d98c")))
	c := m.Clone()

	assert.Equal(t, m.Color(), c.Color())
	assert.Equal(t, m.PipelineKey(), c.PipelineKey())
	assert.NotSame(t, m.BindGroupProvider(), c.BindGroupProvider())

	c.SetColor(common.MustParseColor("skyblue"))
	assert.NotEqual(t, m.Color(), c.Color())
}
