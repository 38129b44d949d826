package model

import (
	"github.com/chewxy/math32"
)

// Geometry is CPU-side indexed triangle data ready to be wrapped in a Model.
type Geometry struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// Circle generates a flat disc in the XY plane facing +Z, fanned around its center.
// Segments below 3 are raised to 3.
//
// Parameters:
//   - radius: the disc radius
//   - segments: the number of triangles around the rim
//
// Returns:
//   - Geometry: segments+2 vertices and segments*3 indices
func Circle(radius float32, segments int) Geometry {
	segments = max(3, segments)
	g := Geometry{
		Vertices: make([]GPUVertex, 0, segments+2),
		Indices:  make([]uint32, 0, segments*3),
	}

	g.Vertices = append(g.Vertices, GPUVertex{
		Normal:   [3]float32{0, 0, 1},
		TexCoord: [2]float32{0.5, 0.5},
	})
	for s := 0; s <= segments; s++ {
		theta := float32(s) / float32(segments) * 2 * math32.Pi
		x := radius * math32.Cos(theta)
		y := radius * math32.Sin(theta)
		g.Vertices = append(g.Vertices, GPUVertex{
			Position: [3]float32{x, y, 0},
			Normal:   [3]float32{0, 0, 1},
			TexCoord: [2]float32{(x/radius + 1) / 2, (y/radius + 1) / 2},
		})
	}
	for i := 1; i <= segments; i++ {
		g.Indices = append(g.Indices, uint32(i), uint32(i+1), 0)
	}
	return g
}

// Sphere generates a UV sphere centered on the origin. Width segments below 3 are raised to 3
// and height segments below 2 are raised to 2. The pole rows emit a single triangle per quad
// so no degenerate triangles are produced.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: the number of horizontal segments
//   - heightSegments: the number of vertical segments
//
// Returns:
//   - Geometry: (widthSegments+1)*(heightSegments+1) vertices with outward normals
func Sphere(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	g := Geometry{
		Vertices: make([]GPUVertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}
	grid := make([][]uint32, heightSegments+1)

	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		row := make([]uint32, widthSegments+1)
		v := float32(iy) / float32(heightSegments)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi

			x := -radius * math32.Cos(phi) * math32.Sin(theta)
			y := radius * math32.Cos(theta)
			z := radius * math32.Sin(phi) * math32.Sin(theta)

			n := [3]float32{x / radius, y / radius, z / radius}
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: [3]float32{x, y, z},
				Normal:   n,
				TexCoord: [2]float32{u + uOffset, 1 - v},
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}
