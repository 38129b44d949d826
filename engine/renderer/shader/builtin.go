package shader

import (
	_ "embed"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/scene_common.wgsl
var sceneCommonSource string

//go:embed assets/standard.wgsl
var standardSource string

//go:embed assets/basic.wgsl
var basicSource string

//go:embed assets/portal.wgsl
var portalSource string

//go:embed assets/output.wgsl
var outputSource string

// Built-in shader keys.
const (
	KeyStandard = "standard"
	KeyBasic    = "basic"
	KeyPortal   = "portal"
	KeyOutput   = "output"
)

// mustShader panics if a built-in shader fails to pre-process, since the sources ship with the binary.
func mustShader(key, source string, options ...ShaderBuilderOption) Shader {
	s, err := NewShader(key, source, options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Standard returns the lit (Lambert) color shader.
var Standard = sync.OnceValue(func() Shader {
	return mustShader(KeyStandard, standardSource,
		WithBindGroupLayouts(sceneLayouts(KeyStandard, UniformEntry(0, wgpu.ShaderStageFragment, ColorMaterialSize))...),
		WithVertexLayouts(VertexLayout()),
	)
})

// Basic returns the unlit color shader.
var Basic = sync.OnceValue(func() Shader {
	return mustShader(KeyBasic, basicSource,
		WithBindGroupLayouts(sceneLayouts(KeyBasic, UniformEntry(0, wgpu.ShaderStageFragment, ColorMaterialSize))...),
		WithVertexLayouts(VertexLayout()),
	)
})

// Portal returns the screen-space texture shader used by portal surfaces.
var Portal = sync.OnceValue(func() Shader {
	return mustShader(KeyPortal, portalSource,
		WithBindGroupLayouts(sceneLayouts(KeyPortal,
			UniformEntry(0, wgpu.ShaderStageFragment, PortalMaterialSize),
			TextureEntry(1),
			SamplerEntry(2),
		)...),
		WithVertexLayouts(VertexLayout()),
	)
})

// Output returns the fullscreen tone mapping and color space conversion shader.
// It has a single bind group and generates its own vertices.
var Output = sync.OnceValue(func() Shader {
	return mustShader(KeyOutput, outputSource,
		WithBindGroupLayouts(wgpu.BindGroupLayoutDescriptor{
			Label: KeyOutput,
			Entries: []wgpu.BindGroupLayoutEntry{
				UniformEntry(0, wgpu.ShaderStageFragment, OutputParamsSize),
				TextureEntry(1),
				SamplerEntry(2),
			},
		}),
	)
})
