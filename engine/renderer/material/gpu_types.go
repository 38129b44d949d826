package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUColorMaterial is the GPU-aligned uniform shared by the standard and basic shaders.
// Matches the WGSL ColorMaterial struct layout exactly.
// Size: 16 bytes (one vec4<f32>).
type GPUColorMaterial struct {
	Color [4]float32 // offset 0: linear RGBA color (16 bytes)
}

// Size returns the size of the GPUColorMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUColorMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUColorMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUColorMaterial) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
