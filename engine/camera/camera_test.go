package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))

	assert.InDelta(t, 75*math32.Pi/180, c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())

	x, y, z := c.Position()
	assert.Equal(t, [3]float32{0, 0, 5}, [3]float32{x, y, z})
	assert.NotEmpty(t, c.BindGroupProvider().Label())
}

func TestViewMatrixTranslatesWorldIntoCameraSpace(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	view := c.ViewMatrix()

	// The origin sits 5 units in front of the camera, on its -Z axis.
	x, y, z := common.TransformPoint(view[:], 0, 0, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, -5, z, 1e-5)

	c.SetPosition(0, 0, -2)
	view = c.ViewMatrix()
	_, _, z = common.TransformPoint(view[:], 0, 0, -10)
	assert.InDelta(t, -8, z, 1e-5)
}

func TestRotationPitchesView(t *testing.T) {
	c := NewCamera()
	c.SetRotation(math32.Pi/2, 0, 0)
	view := c.ViewMatrix()

	// Pitching up by 90 degrees makes a point above the camera appear straight ahead.
	x, y, z := common.TransformPoint(view[:], 0, 3, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, -3, z, 1e-5)
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()

	assert.Equal(t, float32(2), c.Aspect())
	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, before[5], after[5])
}

func TestGPUUniformMarshal(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	u := c.GPUUniform()

	assert.Equal(t, 80, u.Size())
	buf := u.Marshal()
	assert.Len(t, buf, 80)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
}
