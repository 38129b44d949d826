package timeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = `
name: Portal
sheets:
  - name: Animated scene
    objects:
      - name: Camera
        tracks:
          position.z:
            - {time: 4, value: -10}
            - {time: 0, value: 5}
          rotation.x:
            - {time: 0, value: 0, easing: hold}
            - {time: 2, value: 0.5}
  - name: Looping
    loop: 2
    objects:
      - name: Camera
        tracks:
          position.x:
            - {time: 0, value: 0}
            - {time: 2, value: 4}
`

func mustParse(t *testing.T, doc string) *Project {
	t.Helper()
	p, err := Parse([]byte(doc))
	require.NoError(t, err)
	return p
}

func TestTrack_Sample(t *testing.T) {
	tr := Track{
		{Time: 1, Value: 10, Easing: EasingLinear},
		{Time: 3, Value: 20, Easing: EasingHold},
		{Time: 5, Value: 0, Easing: EasingLinear},
	}
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{name: "before first clamps", t: 0, want: 10},
		{name: "on first", t: 1, want: 10},
		{name: "linear midpoint", t: 2, want: 15},
		{name: "on keyframe", t: 3, want: 20},
		{name: "hold", t: 4.9, want: 20},
		{name: "after last clamps", t: 9, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tr.Sample(tt.t), 1e-9)
		})
	}
	assert.Zero(t, Track{}.Sample(1))
}

func TestParse_SortsAndDefaultsEasing(t *testing.T) {
	p := mustParse(t, testProject)
	sheet, err := p.Sheet("Animated scene")
	require.NoError(t, err)
	obj, err := sheet.Object("Camera")
	require.NoError(t, err)

	tr, ok := obj.Track(PositionZ)
	require.True(t, ok)
	assert.Equal(t, 0.0, tr[0].Time)
	assert.Equal(t, EasingLinear, tr[0].Easing)

	_, ok = obj.Track(PositionY)
	assert.False(t, ok)
}

func TestParse_JSON(t *testing.T) {
	doc := `{"name": "p", "sheets": [{"name": "s", "objects": [{"name": "Camera", "tracks": {"rotation.x": [{"time": 0, "value": 1}]}}]}]}`
	p := mustParse(t, doc)
	assert.Equal(t, "p", p.Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "sheets: ["},
		{name: "unknown track", doc: "sheets: [{name: s, objects: [{name: c, tracks: {scale.x: [{time: 0, value: 1}]}}]}]"},
		{name: "unknown easing", doc: "sheets: [{name: s, objects: [{name: c, tracks: {position.x: [{time: 0, value: 1, easing: bounce}]}}]}]"},
		{name: "negative loop", doc: "sheets: [{name: s, loop: -1}]"},
		{name: "non-finite value", doc: "sheets: [{name: s, objects: [{name: c, tracks: {position.x: [{time: 0, value: .inf}]}}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProject), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Sheets, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSheet_TimeLoops(t *testing.T) {
	s := &Sheet{Loop: 2}
	assert.InDelta(t, 0.5, s.Time(4.5), 1e-9)
	assert.InDelta(t, 3.0, (&Sheet{}).Time(3), 1e-9)
}

func TestNewBinder_NotFound(t *testing.T) {
	p := mustParse(t, testProject)

	_, err := NewBinder(p, "missing", "Camera")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = NewBinder(p, "Animated scene", "Light")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBinder_Values(t *testing.T) {
	p := mustParse(t, testProject)
	b, err := NewBinder(p, "Animated scene", "Camera")
	require.NoError(t, err)

	v := b.Values(2 * time.Second)
	assert.InDelta(t, -2.5, v.Position.Z, 1e-5)
	assert.InDelta(t, 0.5, v.Rotation.X, 1e-5)
	assert.Zero(t, v.Position.X)

	v = b.Values(time.Second)
	assert.Zero(t, v.Rotation.X, "hold keeps the first value")
}

func TestBinder_IsolatedFromProjectEdits(t *testing.T) {
	p := mustParse(t, testProject)
	b, err := NewBinder(p, "Animated scene", "Camera")
	require.NoError(t, err)

	obj, err := p.Sheets[0].Object("Camera")
	require.NoError(t, err)
	obj.Tracks[PositionZ][0].Value = 100
	delete(obj.Tracks, RotationX)
	p.Sheets[0].Loop = 1

	v := b.Values(2 * time.Second)
	assert.InDelta(t, -2.5, v.Position.Z, 1e-5)
	assert.InDelta(t, 0.5, v.Rotation.X, 1e-5)
}

func TestBinder_DefaultsForMissingTracks(t *testing.T) {
	p := mustParse(t, testProject)
	b, err := NewBinder(p, "Looping", "Camera")
	require.NoError(t, err)

	v := b.Values(time.Second)
	assert.InDelta(t, 2, v.Position.X, 1e-5)
	assert.Equal(t, float32(5), v.Position.Z)

	b, err = NewBinder(p, "Looping", "Camera", WithDefaults(CameraValues{Position: Vec3{Y: 1, Z: 7}}))
	require.NoError(t, err)
	v = b.Values(time.Second)
	assert.Equal(t, float32(1), v.Position.Y)
	assert.Equal(t, float32(7), v.Position.Z)
}

func TestBinder_TickFiresOnChange(t *testing.T) {
	p := mustParse(t, testProject)
	b, err := NewBinder(p, "Animated scene", "Camera")
	require.NoError(t, err)

	var got []CameraValues
	b.OnValuesChange(func(v CameraValues) { got = append(got, v) })

	// the first tick always reports, even at rest
	assert.True(t, b.Tick(0))
	require.Len(t, got, 1)
	assert.Equal(t, float32(5), got[0].Position.Z)

	// past the last keyframe values stop changing
	assert.True(t, b.Tick(5*time.Second))
	assert.False(t, b.Tick(6*time.Second))
	assert.Len(t, got, 2)
	assert.Equal(t, float32(-10), got[1].Position.Z)
}

func TestLoad_ShippedProject(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "assets", "project.yaml"))
	require.NoError(t, err)

	b, err := NewBinder(p, "Animated scene", "Camera")
	require.NoError(t, err)
	assert.Equal(t, float32(5), b.Values(0).Position.Z)
	assert.Less(t, b.Values(6*time.Second).Position.Z, float32(-3.5))
}
