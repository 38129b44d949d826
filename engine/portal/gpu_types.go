package portal

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPortalMaterial is the GPU-aligned uniform of the portal shader.
// Matches the WGSL PortalMaterial struct layout exactly.
// Size: 32 bytes.
type GPUPortalMaterial struct {
	Resolution [2]float32 // offset 0: viewport size in pixels (8 bytes)
	HasTexture float32    // offset 8: 1 when an input texture is bound, 0 otherwise (4 bytes)
	_          float32    // offset 12: padding (4 bytes)
	Fallback   [4]float32 // offset 16: linear RGBA written when no texture is bound (16 bytes)
}

// Size returns the size of the GPUPortalMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPortalMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPortalMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUPortalMaterial) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Resolution[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.HasTexture))
	for i, v := range g.Fallback {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(v))
	}
	return buf
}
