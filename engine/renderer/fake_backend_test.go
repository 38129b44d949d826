package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeTarget is a RenderTarget without GPU memory.
type fakeTarget struct {
	label string
	size  common.Size
	tex   *texture.Texture
}

func (t *fakeTarget) Label() string { return t.label }
func (t *fakeTarget) Texture() *texture.Texture { return t.tex }
func (t *fakeTarget) Size() common.Size { return t.size }
func (t *fakeTarget) Release() { t.tex = nil }
func (t *fakeTarget) SetSize(w, h int) error {
	s := common.Size{Width: w, Height: h}
	if !s.Valid() {
		return ErrInvalidSize
	}
	if s == t.size && t.tex != nil {
		return nil
	}
	t.size = s
	t.tex = texture.New(t.label, w, h, &wgpu.TextureView{})
	return nil
}

type fakePass struct {
	target     RenderTarget
	clear      common.Color
	depth      bool
	draws      int
	fullscreen int
}

// fakeBackend records what the Renderer asks of the GPU.
type fakeBackend struct {
	format      wgpu.TextureFormat
	samples     uint32
	size        common.Size
	configErr   error
	beginErr    error
	pipelines   []pipeline.Pipeline
	bindInits   map[string]int
	meshInits   int
	writes      []bind_group_provider.BufferWrite
	passes      []fakePass
	open        *fakePass
	presented   int
	placeholder *texture.Texture
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		format:      wgpu.TextureFormatBGRA8Unorm,
		samples:     4,
		bindInits:   make(map[string]int),
		placeholder: texture.New("placeholder", 1, 1, &wgpu.TextureView{}),
	}
}

func (f *fakeBackend) ConfigureSurface(w, h int) error {
	if f.configErr != nil {
		return f.configErr
	}
	f.size = common.Size{Width: w, Height: h}
	return nil
}
func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat { return f.format }
func (f *fakeBackend) SampleCount() uint32 { return f.samples }
func (f *fakeBackend) SetPresentMode(PresentMode) {}
func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p)
	return nil
}
func (f *fakeBackend) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, n int) error {
	f.meshInits++
	p.SetVertexBuffer(&wgpu.Buffer{})
	p.SetIndexCount(n)
	return nil
}
func (f *fakeBackend) InitBindGroup(p bind_group_provider.BindGroupProvider, _ *wgpu.BindGroupLayout, _ wgpu.BindGroupLayoutDescriptor, tex *texture.Texture) error {
	f.bindInits[p.Label()]++
	if tex != nil {
		p.SetTextureView(1, tex.View, tex.ID)
	}
	if !p.Initialized() {
		p.SetBindGroup(&wgpu.BindGroup{})
	}
	return nil
}
func (f *fakeBackend) WriteBuffers(w []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, w...)
}
func (f *fakeBackend) CreateRenderTarget(label string, w, h int) (RenderTarget, error) {
	t := &fakeTarget{label: label}
	return t, t.SetSize(w, h)
}
func (f *fakeBackend) PlaceholderTexture() *texture.Texture { return f.placeholder }
func (f *fakeBackend) BeginPass(target RenderTarget, clear common.Color, depth bool) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	if f.open != nil {
		return errors.New("pass already open")
	}
	f.open = &fakePass{target: target, clear: clear, depth: depth}
	return nil
}
func (f *fakeBackend) Draw(pipeline.Pipeline, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) {
	f.open.draws++
}
func (f *fakeBackend) DrawFullscreen(pipeline.Pipeline, []bind_group_provider.BindGroupProvider) {
	f.open.fullscreen++
}
func (f *fakeBackend) EndPass() error {
	if f.open == nil {
		return errors.New("no pass open")
	}
	f.passes = append(f.passes, *f.open)
	f.open = nil
	return nil
}
func (f *fakeBackend) Present() error {
	f.presented++
	return nil
}
func (f *fakeBackend) Release() {}
