package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxDirectionalLights is the number of directional light slots in the lights uniform.
// Enabled directional lights beyond this budget are dropped.
const MaxDirectionalLights = 4

// GPULightSource is the canonical WGSL definition of the DirectionalLight and Lights structs.
// Matches GPULights layout exactly (144 bytes, uniform aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPUDirectionalLight is the GPU-aligned representation of a single directional light.
// Size: 32 bytes.
type GPUDirectionalLight struct {
	Direction    [3]float32 // offset  0: normalized direction towards the light
	CastsShadows uint32     // offset 12: 1 = shadow caster, 0 = not
	Color        [3]float32 // offset 16: linear RGB color
	Intensity    float32    // offset 28: scalar multiplier
}

// GPULights is the GPU-aligned lights uniform for a scene: accumulated ambient term plus a fixed
// array of directional lights.
// Size: 144 bytes.
type GPULights struct {
	Ambient     [3]float32                                // offset  0: sum of ambient color * intensity, linear RGB
	Count       uint32                                    // offset 12: number of valid directional entries
	Directional [MaxDirectionalLights]GPUDirectionalLight // offset 16: directional lights
}

// Size returns the size of the GPULights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPULights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPULights) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:], g.Ambient)
	binary.LittleEndian.PutUint32(buf[12:16], g.Count)
	for i, d := range g.Directional {
		off := 16 + i*32
		putVec3(buf[off:], d.Direction)
		binary.LittleEndian.PutUint32(buf[off+12:], d.CastsShadows)
		putVec3(buf[off+16:], d.Color)
		binary.LittleEndian.PutUint32(buf[off+28:], math.Float32bits(d.Intensity))
	}
	return buf
}

// PackLights folds a light list into the lights uniform. Ambient lights are summed; enabled
// directional lights fill the directional slots in order. Disabled lights are skipped.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULights: the packed uniform
func PackLights(lights []Light) GPULights {
	var out GPULights
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		c := l.Color().Linear()
		switch l.Type() {
		case LightTypeAmbient:
			out.Ambient[0] += c.R * l.Intensity()
			out.Ambient[1] += c.G * l.Intensity()
			out.Ambient[2] += c.B * l.Intensity()
		case LightTypeDirectional:
			if out.Count >= MaxDirectionalLights {
				continue
			}
			shadow := uint32(0)
			if l.CastsShadows() {
				shadow = 1
			}
			out.Directional[out.Count] = GPUDirectionalLight{
				Direction:    l.Direction(),
				CastsShadows: shadow,
				Color:        [3]float32{c.R, c.G, c.B},
				Intensity:    l.Intensity(),
			}
			out.Count++
		}
	}
	return out
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
