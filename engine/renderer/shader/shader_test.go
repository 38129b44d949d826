package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessor_ExpandsRegisteredIncludes(t *testing.T) {
	p := NewPreProcessor()
	p.Register("foo", "struct Foo { x: f32, }")

	out, err := p.Process("// @oxy:include foo\n@group(0) @binding(0) var<uniform> foo: Foo;")
	require.NoError(t, err)
	assert.Contains(t, out, "struct Foo")
	assert.NotContains(t, out, includeDirective)
}

func TestPreProcessor_IncludesEachNameOnce(t *testing.T) {
	p := NewPreProcessor()
	p.Register("foo", "struct Foo { x: f32, }")

	out, err := p.Process("// @oxy:include foo\n// @oxy:include foo")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "struct Foo"))
}

func TestPreProcessor_Errors(t *testing.T) {
	p := NewPreProcessor()

	_, err := p.Process("// @oxy:include missing")
	assert.ErrorContains(t, err, "unknown include")

	_, err = p.Process("// @oxy:include")
	assert.Error(t, err)

	_, err = p.Process("// @oxy:include a b")
	assert.Error(t, err)

	p.Register("loop", "// @oxy:include loop2")
	p.Register("loop2", "// @oxy:include loop3")
	p.Register("loop3", "// @oxy:include loop4")
	p.Register("loop4", "// @oxy:include loop5")
	p.Register("loop5", "// @oxy:include loop6")
	p.Register("loop6", "fn f() {}")
	_, err = p.Process("// @oxy:include loop")
	assert.ErrorContains(t, err, "nested deeper")
}

func TestPreProcessor_LeavesOrdinaryComments(t *testing.T) {
	out, err := NewPreProcessor().Process("// plain comment\nfn f() {}")
	require.NoError(t, err)
	assert.Equal(t, "// plain comment\nfn f() {}", out)
}

func TestBuiltinShaders(t *testing.T) {
	for _, s := range []Shader{Standard(), Basic(), Portal()} {
		t.Run(s.Key(), func(t *testing.T) {
			assert.NotContains(t, s.Source(), includeDirective)
			assert.Contains(t, s.Source(), "struct CameraUniform")
			assert.Contains(t, s.Source(), "struct Lights")
			assert.Contains(t, s.Source(), "struct ModelData")
			assert.Len(t, s.BindGroupLayoutDescriptors(), 4)
			assert.Len(t, s.VertexLayouts(), 1)
			assert.Equal(t, "vs_main", s.VertexEntryPoint())
			assert.Equal(t, "fs_main", s.FragmentEntryPoint())
			assert.Equal(t, uint64(80), s.BindGroupLayoutDescriptor(GroupCamera).Entries[0].Buffer.MinBindingSize)
			assert.Equal(t, uint64(144), s.BindGroupLayoutDescriptor(GroupLights).Entries[0].Buffer.MinBindingSize)
			assert.Equal(t, uint64(128), s.BindGroupLayoutDescriptor(GroupModelData).Entries[0].Buffer.MinBindingSize)
		})
	}

	assert.False(t, Standard().Sampled(GroupMaterial))
	assert.True(t, Portal().Sampled(GroupMaterial))
	assert.Len(t, Portal().BindGroupLayoutDescriptor(GroupMaterial).Entries, 3)
}

func TestPortalShader_FallbackSkipsSampling(t *testing.T) {
	src := Portal().Source()
	fallback := strings.Index(src, "return portal.fallback;")
	sample := strings.Index(src, "textureSampleLevel(t_diffuse")
	require.NotEqual(t, -1, fallback)
	require.NotEqual(t, -1, sample)
	assert.Less(t, fallback, sample, "the fallback returns before the texture is read")
	assert.NotContains(t, src, "textureSample(")
}

func TestOutputShader(t *testing.T) {
	s := Output()
	assert.Empty(t, s.VertexLayouts())
	require.Len(t, s.BindGroupLayoutDescriptors(), 1)
	assert.True(t, s.Sampled(0))
	assert.Equal(t, uint64(OutputParamsSize), s.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize)
	assert.Empty(t, s.BindGroupLayoutDescriptor(7).Entries)
}

func TestVertexLayout(t *testing.T) {
	l := VertexLayout()
	assert.Equal(t, uint64(32), l.ArrayStride)
	require.Len(t, l.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, l.Attributes[2].Format)
	assert.Equal(t, uint64(24), l.Attributes[2].Offset)
}
