package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("k")

	assert.Equal(t, "k", p.PipelineKey())
	assert.Nil(t, p.Shader())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.BindGroupLayout(0))
	assert.Equal(t, uint32(1), p.SampleCount())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.BlendState(), "blend state is only reported when blending is enabled")
}

func TestNewPipeline_Options(t *testing.T) {
	s := shader.Basic()
	p := NewPipeline("k",
		WithShader(s),
		WithColorTarget(wgpu.TextureFormatBGRA8Unorm, 0),
		WithDepthTestEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithBlendEnabled(true),
	)

	assert.Equal(t, s, p.Shader())
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, p.ColorFormat())
	assert.Equal(t, uint32(1), p.SampleCount(), "sample count is clamped to at least one")
	assert.False(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.NotNil(t, p.BlendState())
}

func TestKey(t *testing.T) {
	a := Key("standard", wgpu.TextureFormatRGBA16Float, 4)
	b := Key("standard", wgpu.TextureFormatRGBA16Float, 1)
	c := Key("standard", wgpu.TextureFormatBGRA8Unorm, 4)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, Key("standard", wgpu.TextureFormatRGBA16Float, 4))
}

func TestRelease_Empty(t *testing.T) {
	p := NewPipeline("k")
	assert.NotPanics(t, p.Release)
}
