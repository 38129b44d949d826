package postprocess

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
)

// ToneMapping selects the tone mapping operator of the output pass.
type ToneMapping uint32

const (
	// ToneMappingNone writes linear color unchanged (exposure is ignored).
	ToneMappingNone ToneMapping = iota
	// ToneMappingACESFilmic applies exposure and the ACES filmic curve.
	ToneMappingACESFilmic
)

// GPUOutputParams is the GPU-aligned uniform of the output shader.
// Matches the WGSL OutputParams struct layout exactly.
// Size: 16 bytes.
type GPUOutputParams struct {
	Exposure    float32 // offset 0 (4 bytes)
	ToneMapping uint32  // offset 4 (4 bytes)
	EncodeSRGB  uint32  // offset 8: 1 when the surface does not encode sRGB itself (4 bytes)
	_           uint32  // offset 12: padding (4 bytes)
}

// Size returns the size of the GPUOutputParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUOutputParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUOutputParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUOutputParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Exposure))
	binary.LittleEndian.PutUint32(buf[4:8], g.ToneMapping)
	binary.LittleEndian.PutUint32(buf[8:12], g.EncodeSRGB)
	return buf
}

// outputMaterial is the fullscreen material drawn by the output pass.
type outputMaterial struct {
	mu sync.RWMutex

	exposure    float32
	toneMapping ToneMapping
	encodeSRGB  bool
	input       *texture.Texture

	bindGroupProvider bind_group_provider.BindGroupProvider
}

var _ material.Material = &outputMaterial{}

func (m *outputMaterial) Name() string { return shader.KeyOutput }
func (m *outputMaterial) Shader() shader.Shader { return shader.Output() }
func (m *outputMaterial) Side() material.Side { return material.SideDouble }
func (m *outputMaterial) Color() common.Color { return common.Color{} }
func (m *outputMaterial) SetColor(common.Color) {}
func (m *outputMaterial) PipelineKey() string {
	return material.PipelineKey(shader.Output(), material.SideDouble)
}

func (m *outputMaterial) Texture() *texture.Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.input
}

func (m *outputMaterial) UniformData() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := GPUOutputParams{Exposure: m.exposure, ToneMapping: uint32(m.toneMapping)}
	if m.encodeSRGB {
		u.EncodeSRGB = 1
	}
	return u.Marshal()
}

func (m *outputMaterial) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *outputMaterial) Clone() material.Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &outputMaterial{
		exposure:          m.exposure,
		toneMapping:       m.toneMapping,
		encodeSRGB:        m.encodeSRGB,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider("output"),
	}
}

type outputPass struct {
	enabled atomic.Bool
	mat     *outputMaterial
}

// OutputPass converts the linear HDR result of the chain for display: exposure, tone mapping and,
// when the surface format does not encode it, sRGB transfer.
type OutputPass interface {
	Pass

	// Exposure returns the exposure multiplier.
	//
	// Returns:
	//   - float32: the exposure
	Exposure() float32

	// SetExposure sets the exposure multiplier applied before tone mapping.
	//
	// Parameters:
	//   - exposure: the multiplier, 1 for neutral
	SetExposure(exposure float32)

	// ToneMapping returns the tone mapping operator.
	//
	// Returns:
	//   - ToneMapping: the operator
	ToneMapping() ToneMapping

	// Material returns the fullscreen material drawn by the pass.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material
}

var _ OutputPass = &outputPass{}

// NewOutputPass creates an enabled OutputPass with exposure 1 and ACES filmic tone mapping.
//
// Parameters:
//   - options: variadic list of OutputPassBuilderOption functions
//
// Returns:
//   - OutputPass: the pass
func NewOutputPass(options ...OutputPassBuilderOption) OutputPass {
	p := &outputPass{
		mat: &outputMaterial{
			exposure:          1,
			toneMapping:       ToneMappingACESFilmic,
			bindGroupProvider: bind_group_provider.NewBindGroupProvider("output"),
		},
	}
	p.enabled.Store(true)
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *outputPass) Name() string {
	return "output"
}

func (p *outputPass) Enabled() bool {
	return p.enabled.Load()
}

func (p *outputPass) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *outputPass) NeedsSwap() bool {
	return true
}

func (p *outputPass) SetSize(int, int) {}

func (p *outputPass) Exposure() float32 {
	p.mat.mu.RLock()
	defer p.mat.mu.RUnlock()
	return p.mat.exposure
}

func (p *outputPass) SetExposure(exposure float32) {
	p.mat.mu.Lock()
	defer p.mat.mu.Unlock()
	p.mat.exposure = exposure
}

func (p *outputPass) ToneMapping() ToneMapping {
	p.mat.mu.RLock()
	defer p.mat.mu.RUnlock()
	return p.mat.toneMapping
}

func (p *outputPass) Material() material.Material {
	return p.mat
}

func (p *outputPass) Render(r renderer.Renderer, read, write renderer.RenderTarget, toScreen bool) error {
	p.mat.mu.Lock()
	p.mat.input = read.Texture()
	p.mat.encodeSRGB = toScreen && !r.SurfaceIsSRGB()
	p.mat.mu.Unlock()

	if toScreen {
		r.SetRenderTarget(nil)
	} else {
		r.SetRenderTarget(write)
	}
	return r.RenderFullscreen(p.mat)
}
