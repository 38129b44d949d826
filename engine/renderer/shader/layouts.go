package shader

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
)

// Scene bind group indices shared by every scene shader.
const (
	GroupCamera    = 0
	GroupLights    = 1
	GroupModelData = 2
	GroupMaterial  = 3
)

// ColorMaterialSize is the byte size of the ColorMaterial uniform (vec4<f32>).
const ColorMaterialSize = 16

// PortalMaterialSize is the byte size of the PortalMaterial uniform.
const PortalMaterialSize = 32

// OutputParamsSize is the byte size of the OutputParams uniform.
const OutputParamsSize = 16

// UniformEntry describes a uniform buffer binding.
//
// Parameters:
//   - binding: the binding index within the group
//   - visibility: the shader stages that read the buffer
//   - size: the minimum binding size in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry
func UniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

// TextureEntry describes a filterable 2D float texture binding visible to the fragment stage.
func TextureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

// SamplerEntry describes a filtering sampler binding visible to the fragment stage.
func SamplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	}
}

// sceneLayouts returns the camera, lights and model data groups followed by the material group.
func sceneLayouts(label string, material ...wgpu.BindGroupLayoutEntry) []wgpu.BindGroupLayoutDescriptor {
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	return []wgpu.BindGroupLayoutDescriptor{
		{Label: label + "_camera", Entries: []wgpu.BindGroupLayoutEntry{UniformEntry(0, both, uint64((&camera.GPUCameraUniform{}).Size()))}},
		{Label: label + "_lights", Entries: []wgpu.BindGroupLayoutEntry{UniformEntry(0, wgpu.ShaderStageFragment, uint64((&light.GPULights{}).Size()))}},
		{Label: label + "_model", Entries: []wgpu.BindGroupLayoutEntry{UniformEntry(0, wgpu.ShaderStageVertex, uint64((&model.GPUModelData{}).Size()))}},
		{Label: label + "_material", Entries: material},
	}
}

// VertexLayout is the interleaved position/normal/uv layout of model.GPUVertex.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&model.GPUVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}
