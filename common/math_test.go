package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	a := make([]float32, 16)
	BuildModelMatrix(a, 1, 2, 3, 0.3, 0.2, 0.1, 1, 2, 3)
	id := make([]float32, 16)
	Identity(id)

	out := make([]float32, 16)
	Mul4(out, a, id)
	assert.InDeltaSlice(t, a, out, 1e-6)

	Mul4(out, id, a)
	assert.InDeltaSlice(t, a, out, 1e-6)
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, 0, 5, -0.4, 0.7, 0, 1, 1, 1)

	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	out := make([]float32, 16)
	Mul4(out, m, inv)
	id := make([]float32, 16)
	Identity(id)
	assert.InDeltaSlice(t, id, out, 1e-5)
}

func TestInvert4Singular(t *testing.T) {
	m := make([]float32, 16)
	out := make([]float32, 16)
	out[0] = 42
	assert.False(t, Invert4(out, m))
	assert.Equal(t, float32(42), out[0])
}

func TestBuildModelMatrixRotationX(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, -1, 0, -math32.Pi/2, 0, 0, 1, 1, 1)

	// A flat circle facing +Z must face +Y after the ground rotation.
	nx, ny, nz := TransformPoint(m, 0, 0, 1)
	assert.InDelta(t, 0, nx, 1e-6)
	assert.InDelta(t, 0, ny, 1e-6) // translation y=-1 plus rotated normal y=+1
	assert.InDelta(t, 0, nz, 1e-6)

	px, py, pz := TransformPoint(m, 0, 1, 0)
	assert.InDelta(t, 0, px, 1e-6)
	assert.InDelta(t, -1, py, 1e-6)
	assert.InDelta(t, -1, pz, 1e-6)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := make([]float32, 16)
	near, far := float32(0.1), float32(100)
	Perspective(p, 75*math32.Pi/180, 16.0/9.0, near, far)

	depth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0, depth(-near), 1e-5)
	assert.InDelta(t, 1, depth(-far), 1e-5)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestSize(t *testing.T) {
	assert.True(t, Size{Width: 2, Height: 1}.Valid())
	assert.False(t, Size{Width: 0, Height: 1}.Valid())
	assert.Equal(t, float32(2), Size{Width: 2, Height: 1}.Aspect())
	assert.Equal(t, float32(1), Size{}.Aspect())
}
