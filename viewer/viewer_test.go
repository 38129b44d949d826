package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/debug"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-portal/engine/timeline"
)

func newTestApp(t *testing.T, width, height int, options ...AppBuilderOption) (App, *renderertest.Renderer) {
	t.Helper()
	store := NewStore(WithWorkers(2))
	r := renderertest.New(width, height)
	a, err := NewApp(r, store, Viewport{Width: width, Height: height}, options...)
	require.NoError(t, err)
	return a, r
}

func TestSelectScene(t *testing.T) {
	tests := []struct {
		depth float32
		want  SceneID
	}{
		{depth: 5, want: ScenePrimary},
		{depth: 0, want: ScenePrimary},
		{depth: -3.5, want: ScenePrimary},
		{depth: -3.5001, want: SceneSecondary},
		{depth: -4, want: SceneSecondary},
		{depth: -100, want: SceneSecondary},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SelectScene(tt.depth))
			assert.Equal(t, SelectScene(tt.depth), SelectScene(tt.depth))
		})
	}
	assert.Equal(t, "unknown", SceneID(7).String())
}

func TestNewStore_Content(t *testing.T) {
	s := NewStore()

	assert.Equal(t, primaryBackground, s.Primary.Background())
	assert.Equal(t, secondaryBackground, s.Secondary.Background())
	assert.Equal(t, 4, s.Primary.Count())
	assert.Equal(t, 2, s.Secondary.Count())

	for _, sc := range []interface{ Lights() []light.Light }{s.Primary, s.Secondary} {
		lights := sc.Lights()
		require.Len(t, lights, 2)
		assert.Equal(t, light.LightTypeDirectional, lights[0].Type())
		assert.True(t, lights[0].CastsShadows())
		assert.Equal(t, light.LightTypeAmbient, lights[1].Type())
	}

	assert.False(t, s.BackgroundSphere.Enabled())
	assert.Equal(t, material.SideBack, s.BackgroundSphere.Material().Side())
	assert.Equal(t, material.Material(s.Portal), s.PortalObject.Material())

	x, y, z := s.PortalObject.Position()
	assert.Equal(t, [3]float32{0, 1, -5}, [3]float32{x, y, z})
	x, y, z = s.Ground2.Position()
	assert.Equal(t, [3]float32{0, -1, -20}, [3]float32{x, y, z})

	_, _, cz := s.Camera.Position()
	assert.Equal(t, float32(5), cz)
	assert.InDelta(t, 75*math32.Pi/180, s.Camera.Fov(), 1e-6)

	assert.Same(t, s.Primary, s.Scene(ScenePrimary))
	assert.Same(t, s.Secondary, s.Scene(SceneSecondary))
}

func TestNewStore_SphereCloneIsIndependent(t *testing.T) {
	s := NewStore()

	assert.NotEqual(t, s.Sphere.ID(), s.Sphere2.ID())
	assert.NotSame(t, s.Sphere.Model(), s.Sphere2.Model())
	assert.Equal(t, s.Sphere.Model().IndexCount(), s.Sphere2.Model().IndexCount())
	assert.NotSame(t, s.Sphere.Material(), s.Sphere2.Material())

	s.Sphere2.Material().SetColor(common.ColorFromHex(0xff0000))
	assert.Equal(t, groundColor, s.Sphere.Material().Color())

	s.Sphere2.SetPosition(1, 2, 3)
	x, y, z := s.Sphere.Position()
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{x, y, z})
}

func TestNewApp_InvalidViewport(t *testing.T) {
	store := NewStore()

	_, err := NewApp(renderertest.New(0, 0), store, Viewport{})
	assert.ErrorIs(t, err, ErrResourceAcquisition)
	assert.ErrorIs(t, err, renderer.ErrInvalidSize)
}

func TestNewApp_TargetFailure(t *testing.T) {
	store := NewStore()
	r := renderertest.New(800, 600)
	r.CreateErr = errors.New("device lost")

	_, err := NewApp(r, store, Viewport{Width: 800, Height: 600})
	assert.ErrorIs(t, err, ErrResourceAcquisition)
	assert.ErrorIs(t, err, r.CreateErr)
}

// Camera at its initial depth: the secondary scene goes offscreen, the portal receives its texture
// and the primary scene is composited.
func TestFrame_InitialCameraShowsPrimary(t *testing.T) {
	a, r := newTestApp(t, 1920, 1080)
	s := a.Store()

	res, err := a.Frame(16 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, ScenePrimary, res.Scene)
	assert.Same(t, a.Offscreen().Texture(), res.PortalTexture)
	assert.Same(t, res.PortalTexture, s.Portal.InputTexture())
	assert.Equal(t, common.Size{Width: 1920, Height: 1080}, s.Portal.Resolution())

	calls := r.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "render", calls[0].Op)
	assert.Same(t, a.Offscreen(), calls[0].Target)
	assert.Same(t, s.Secondary, calls[0].Scene)
	assert.Same(t, s.Camera, calls[0].Camera)

	assert.Equal(t, "render", calls[1].Op)
	assert.Same(t, s.Primary, calls[1].Scene)
	assert.Same(t, s.Camera, calls[1].Camera)
	assert.NotNil(t, calls[1].Target)
	assert.NotSame(t, a.Offscreen(), calls[1].Target)

	assert.Equal(t, "fullscreen", calls[2].Op)
	assert.Nil(t, calls[2].Target)
	assert.Equal(t, "present", calls[3].Op)
	assert.Nil(t, r.RenderTarget())

	_, _, z := s.Sphere.Position()
	assert.Equal(t, float32(-3), z)
}

// The binder moves the camera past the threshold: the secondary scene is composited and both
// spheres follow the camera.
func TestFrame_CameraPastThresholdShowsSecondary(t *testing.T) {
	a, r := newTestApp(t, 1920, 1080)
	s := a.Store()
	_, err := a.Frame(0)
	require.NoError(t, err)
	r.Reset()

	a.ApplyCameraValues(timeline.CameraValues{Position: timeline.Vec3{Z: -4}})
	res, err := a.Frame(16 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, SceneSecondary, res.Scene)
	calls := r.Calls()
	require.Len(t, calls, 4)
	assert.Same(t, s.Secondary, calls[0].Scene)
	assert.Same(t, s.Secondary, calls[1].Scene)

	for _, obj := range []interface{ Position() (float32, float32, float32) }{s.Sphere, s.Sphere2} {
		x, y, z := obj.Position()
		assert.Equal(t, [3]float32{0, 0, -12}, [3]float32{x, y, z})
	}
}

// A mid-session resize reaches every derived resource before the next frame renders anything.
func TestOnResize_AppliesBeforeNextFrame(t *testing.T) {
	a, r := newTestApp(t, 1920, 1080)
	s := a.Store()
	_, err := a.Frame(0)
	require.NoError(t, err)
	r.Reset()
	oldTexture := a.Offscreen().Texture()

	require.NoError(t, a.OnResize(800, 600))

	want := common.Size{Width: 800, Height: 600}
	assert.Equal(t, Viewport{Width: 800, Height: 600}, a.Viewport())
	assert.InDelta(t, 800.0/600.0, s.Camera.Aspect(), 1e-6)
	assert.Equal(t, want, r.Size())
	assert.Equal(t, want, a.Offscreen().Size())
	assert.Equal(t, want, a.Composer().ReadTarget().Size())
	assert.Equal(t, want, s.Portal.Resolution())
	assert.NotEqual(t, oldTexture.ID, a.Offscreen().Texture().ID)

	res, err := a.Frame(16 * time.Millisecond)
	require.NoError(t, err)
	for _, c := range r.Calls() {
		if c.Target != nil {
			assert.Equal(t, want, c.Target.Size())
		}
	}
	assert.Equal(t, 800, res.PortalTexture.Width)
	assert.Equal(t, 600, res.PortalTexture.Height)
}

func TestOnResize_IgnoresEmptySizes(t *testing.T) {
	a, r := newTestApp(t, 1920, 1080)

	require.NoError(t, a.OnResize(0, 0))
	require.NoError(t, a.OnResize(-1, 600))

	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, a.Viewport())
	assert.Zero(t, r.Resizes())
	assert.Equal(t, 1920, a.Offscreen().Size().Width)
}

func TestOnResize_Failure(t *testing.T) {
	a, r := newTestApp(t, 1920, 1080)
	r.ResizeErr = errors.New("surface lost")

	err := a.OnResize(800, 600)
	assert.ErrorIs(t, err, ErrResourceAcquisition)
	assert.ErrorIs(t, err, r.ResizeErr)

	// nothing observes the new size when the surface cannot follow
	assert.InDelta(t, 1920.0/1080.0, a.Store().Camera.Aspect(), 1e-6)
	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, a.Viewport())
	assert.Equal(t, common.Size{Width: 1920, Height: 1080}, a.Offscreen().Size())
}

func TestFrame_Idempotent(t *testing.T) {
	a, _ := newTestApp(t, 1280, 720)

	first, err := a.Frame(time.Second)
	require.NoError(t, err)
	second, err := a.Frame(time.Second)
	require.NoError(t, err)

	assert.Equal(t, first.Scene, second.Scene)
	assert.Same(t, first.PortalTexture, second.PortalTexture)
}

func TestFrame_Timing(t *testing.T) {
	a, _ := newTestApp(t, 1280, 720)

	res, err := a.Frame(time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Elapsed, 1e-9)
	assert.InDelta(t, 1.0, res.Delta, 1e-9)

	res, err = a.Frame(1500 * time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, res.Elapsed, 1e-9)
	assert.InDelta(t, 0.5, res.Delta, 1e-9)
}

func TestFrame_RenderFailure(t *testing.T) {
	a, r := newTestApp(t, 1280, 720)
	r.RenderErr = errors.New("out of memory")

	_, err := a.Frame(0)
	assert.ErrorIs(t, err, ErrResourceAcquisition)
	assert.ErrorIs(t, err, r.RenderErr)
	assert.Nil(t, r.RenderTarget())
}

func TestFrame_PresentFailure(t *testing.T) {
	a, r := newTestApp(t, 1280, 720)
	r.PresentErr = errors.New("surface outdated")

	_, err := a.Frame(0)
	assert.ErrorIs(t, err, ErrResourceAcquisition)
}

func TestFrame_CountedByProfiler(t *testing.T) {
	p := profiler.NewProfiler(profiler.WithEnabled(false))
	a, _ := newTestApp(t, 1280, 720, WithProfiler(p))

	for i := 0; i < 3; i++ {
		_, err := a.Frame(time.Duration(i) * time.Millisecond)
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(3), p.TotalFrames())
}

func TestApplyCameraValues(t *testing.T) {
	a, _ := newTestApp(t, 1280, 720)
	s := a.Store()
	s.Camera.SetRotation(0, 0.25, 0.5)

	a.ApplyCameraValues(timeline.CameraValues{
		Position: timeline.Vec3{X: 1, Y: 2, Z: -50},
		Rotation: timeline.Euler{X: 3},
	})

	x, y, z := s.Camera.Position()
	assert.Equal(t, [3]float32{1, 2, -50}, [3]float32{x, y, z})
	rx, ry, rz := s.Camera.Rotation()
	assert.Equal(t, [3]float32{3, 0.25, 0.5}, [3]float32{rx, ry, rz})

	// the secondary camera is deliberately left where it started
	_, _, z2 := s.SecondaryCamera.Position()
	assert.Equal(t, float32(5), z2)
}

func TestApplySettings(t *testing.T) {
	p := profiler.NewProfiler(profiler.WithEnabled(false))
	a, r := newTestApp(t, 1280, 720, WithProfiler(p))
	s := a.Store()

	settings := debug.DefaultSettings()
	settings.Exposure = 2
	settings.BackgroundSphere = true
	enabled := true
	settings.Profiler = &enabled
	settings.PrimaryBackground = common.ColorFromHex(0x112233)
	settings.SecondaryBackground = common.ColorFromHex(0x445566)
	a.ApplySettings(settings)

	assert.True(t, s.BackgroundSphere.Enabled())
	assert.True(t, p.Enabled())
	assert.Equal(t, settings.PrimaryBackground, s.Primary.Background())
	assert.Equal(t, settings.SecondaryBackground, s.Secondary.Background())

	_, err := a.Frame(0)
	require.NoError(t, err)
	calls := r.Calls()
	require.Len(t, calls, 4)
	uniform := calls[2].Material.UniformData()
	assert.Equal(t, []byte{0, 0, 0, 0x40}, uniform[0:4], "exposure 2.0 little endian")
}

func TestApplySettings_UnsetProfilerKeepsConfig(t *testing.T) {
	p := profiler.NewProfiler(profiler.WithEnabled(true))
	a, _ := newTestApp(t, 1280, 720, WithProfiler(p))

	a.ApplySettings(debug.DefaultSettings())
	assert.True(t, p.Enabled())

	off := false
	settings := debug.DefaultSettings()
	settings.Profiler = &off
	a.ApplySettings(settings)
	assert.False(t, p.Enabled())
}

func TestRelease(t *testing.T) {
	a, r := newTestApp(t, 1280, 720)
	a.Release()
	for _, tgt := range r.Targets() {
		assert.True(t, tgt.Released())
	}
}
