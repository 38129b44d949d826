package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("camera_0", WithIndexCount(36))

	assert.Equal(t, "camera_0", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.False(t, p.Initialized())
	assert.Nil(t, p.Buffer(0))
	assert.Zero(t, p.BoundTextureID())
}

func TestSetTextureViewTracksTextureID(t *testing.T) {
	p := NewBindGroupProvider("portal")
	p.SetTextureView(1, nil, 7)
	assert.Equal(t, uint64(7), p.BoundTextureID())

	p.Release()
	assert.Zero(t, p.BoundTextureID())
	assert.Zero(t, p.IndexCount())
}
