package postprocess

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChain(t *testing.T, r *renderertest.Renderer) (Composer, RenderPass, OutputPass) {
	t.Helper()
	rp := NewRenderPass(scene.NewScene("primary"), camera.NewCamera())
	op := NewOutputPass()
	c, err := NewComposer(r, 800, 600, WithPasses(rp, op))
	require.NoError(t, err)
	return c, rp, op
}

func TestNewComposer_CreatesTargets(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, _ := newChain(t, r)

	targets := r.Targets()
	require.Len(t, targets, 2)
	assert.Equal(t, "composer_read", targets[0].Label())
	assert.Equal(t, "composer_write", targets[1].Label())
	assert.Equal(t, 800, c.ReadTarget().Size().Width)
	assert.Len(t, c.Passes(), 2)
}

func TestNewComposer_CreateError(t *testing.T) {
	r := renderertest.New(800, 600)
	r.CreateErr = errors.New("out of memory")

	_, err := NewComposer(r, 800, 600)
	assert.ErrorIs(t, err, r.CreateErr)
}

func TestComposer_RenderOrder(t *testing.T) {
	r := renderertest.New(800, 600)
	c, rp, op := newChain(t, r)
	read := c.ReadTarget()

	require.NoError(t, c.Render())

	calls := r.Calls()
	require.Len(t, calls, 3)

	assert.Equal(t, "render", calls[0].Op)
	assert.Same(t, read, calls[0].Target)
	assert.Equal(t, rp.Scene(), calls[0].Scene)

	assert.Equal(t, "fullscreen", calls[1].Op)
	assert.Nil(t, calls[1].Target)
	assert.Same(t, read.Texture(), calls[1].Texture)
	assert.Equal(t, op.Material(), calls[1].Material)

	assert.Equal(t, "present", calls[2].Op)
	assert.Nil(t, r.RenderTarget())
}

func TestComposer_DisabledOutputRendersSceneToScreen(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, op := newChain(t, r)
	op.SetEnabled(false)

	require.NoError(t, c.Render())

	calls := r.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "render", calls[0].Op)
	assert.Nil(t, calls[0].Target)
	assert.Equal(t, "present", calls[1].Op)
}

func TestComposer_NoEnabledPasses(t *testing.T) {
	r := renderertest.New(800, 600)
	c, rp, op := newChain(t, r)
	rp.SetEnabled(false)
	op.SetEnabled(false)

	require.NoError(t, c.Render())
	assert.Empty(t, r.Calls())
}

func TestComposer_SwapsAfterIntermediateOutput(t *testing.T) {
	r := renderertest.New(800, 600)
	rp := NewRenderPass(scene.NewScene("primary"), camera.NewCamera())
	first := NewOutputPass(WithToneMapping(ToneMappingNone))
	last := NewOutputPass()
	c, err := NewComposer(r, 800, 600, WithPasses(rp, first, last))
	require.NoError(t, err)
	read := c.ReadTarget()

	require.NoError(t, c.Render())

	calls := r.Calls()
	require.Len(t, calls, 4)
	// the intermediate pass samples read and writes the other target
	assert.Same(t, read.Texture(), calls[1].Texture)
	require.NotNil(t, calls[1].Target)
	assert.NotSame(t, read, calls[1].Target)
	// which the last pass then samples
	assert.Same(t, calls[1].Target.Texture(), calls[2].Texture)
	assert.Nil(t, calls[2].Target)
	assert.Same(t, calls[1].Target, c.ReadTarget())
}

func TestComposer_RenderError(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, _ := newChain(t, r)
	r.SetRenderTarget(c.ReadTarget())
	r.RenderErr = errors.New("surface lost")

	err := c.Render()
	assert.ErrorIs(t, err, r.RenderErr)
	assert.Contains(t, err.Error(), "render pass")
	assert.Nil(t, r.RenderTarget())
}

func TestComposer_PresentError(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, _ := newChain(t, r)
	r.PresentErr = errors.New("outdated")

	assert.ErrorIs(t, c.Render(), r.PresentErr)
}

func TestComposer_SetSize(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, _ := newChain(t, r)
	before := c.ReadTarget().Texture()

	require.NoError(t, c.SetSize(1024, 768))
	for _, tgt := range r.Targets() {
		assert.Equal(t, 1024, tgt.Size().Width)
		assert.Equal(t, 768, tgt.Size().Height)
	}
	assert.NotEqual(t, before.ID, c.ReadTarget().Texture().ID)

	assert.ErrorIs(t, c.SetSize(0, 768), renderer.ErrInvalidSize)
}

func TestComposer_Release(t *testing.T) {
	r := renderertest.New(800, 600)
	c, _, _ := newChain(t, r)

	c.Release()
	for _, tgt := range r.Targets() {
		assert.True(t, tgt.Released())
	}
}

func TestRenderPass_SetScene(t *testing.T) {
	a := scene.NewScene("a")
	b := scene.NewScene("b")
	rp := NewRenderPass(a, camera.NewCamera())
	assert.Equal(t, "a", rp.Scene().Name())

	rp.SetScene(b)
	assert.Equal(t, "b", rp.Scene().Name())
	assert.False(t, rp.NeedsSwap())
}

func TestOutputPass_Uniform(t *testing.T) {
	tests := []struct {
		name     string
		srgb     bool
		toneMap  ToneMapping
		exposure float32
		encode   uint32
	}{
		{name: "linear surface encodes", srgb: false, toneMap: ToneMappingACESFilmic, exposure: 1, encode: 1},
		{name: "srgb surface skips encode", srgb: true, toneMap: ToneMappingACESFilmic, exposure: 1.5, encode: 0},
		{name: "no tone mapping", srgb: false, toneMap: ToneMappingNone, exposure: 1, encode: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := renderertest.New(800, 600)
			r.SRGB = tt.srgb
			op := NewOutputPass(WithToneMapping(tt.toneMap), WithExposure(tt.exposure))
			read := renderertest.NewTarget("read", 800, 600)

			require.NoError(t, op.Render(r, read, nil, true))

			want := (&GPUOutputParams{Exposure: tt.exposure, ToneMapping: uint32(tt.toneMap), EncodeSRGB: tt.encode}).Marshal()
			assert.Equal(t, want, op.Material().UniformData())
			assert.Same(t, read.Texture(), op.Material().Texture())
		})
	}
}

func TestOutputPass_Material(t *testing.T) {
	op := NewOutputPass()
	m := op.Material()

	assert.Equal(t, shader.KeyOutput, m.Shader().Key())
	assert.Len(t, m.UniformData(), shader.OutputParamsSize)
	assert.Equal(t, ToneMappingACESFilmic, op.ToneMapping())
	assert.Equal(t, float32(1), op.Exposure())

	op.SetExposure(2)
	assert.Equal(t, float32(2), op.Exposure())
	assert.True(t, op.NeedsSwap())

	clone := m.Clone()
	assert.Nil(t, clone.Texture())
	assert.Equal(t, m.UniformData(), clone.UniformData())
	assert.NotSame(t, m.BindGroupProvider(), clone.BindGroupProvider())
}

func TestGPUOutputParams_Size(t *testing.T) {
	p := &GPUOutputParams{}
	assert.Equal(t, shader.OutputParamsSize, p.Size())
	assert.Len(t, p.Marshal(), shader.OutputParamsSize)
}
