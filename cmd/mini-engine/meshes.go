package main

import "mini-engine/internal/graphics"

// boxMesh returns a w x h x d box standing on the origin, with one quad of
// four vertices per face.
func boxMesh(w, h, d float32) graphics.Mesh {
	x, z := w/2, d/2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-x, h, z}, {-x, 0, z}, {x, 0, z}, {x, h, z}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{x, h, -z}, {x, 0, -z}, {-x, 0, -z}, {-x, h, -z}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{x, h, z}, {x, 0, z}, {x, 0, -z}, {x, h, -z}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-x, h, -z}, {-x, 0, -z}, {-x, 0, z}, {-x, h, z}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-x, h, -z}, {-x, h, z}, {x, h, z}, {x, h, -z}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-x, 0, z}, {-x, 0, -z}, {x, 0, -z}, {x, 0, z}}},
	}

	mesh := graphics.Mesh{Dimensions: 3}
	for i, f := range faces {
		for _, c := range f.corners {
			mesh.Positions = append(mesh.Positions, c[:]...)
			mesh.Normals = append(mesh.Normals, f.normal[:]...)
		}
		mesh.TexCoords = append(mesh.TexCoords, 0, 0, 0, 1, 1, 1, 1, 0)
		mesh.Indices = append(mesh.Indices, quad(uint32(i*4))...)
	}
	return mesh
}

// crossMesh returns two upright quads crossing at the origin, the usual
// shape for grass and ferns. Normals point up.
func crossMesh(w, h float32) graphics.Mesh {
	x := w / 2
	mesh := graphics.Mesh{
		Dimensions: 3,
		Positions: []float32{
			-x, h, 0, -x, 0, 0, x, 0, 0, x, h, 0,
			0, h, -x, 0, 0, -x, 0, 0, x, 0, h, x,
		},
		TexCoords: []float32{0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0},
	}
	for range 8 {
		mesh.Normals = append(mesh.Normals, 0, 1, 0)
	}
	mesh.Indices = append(quad(0), quad(4)...)
	return mesh
}

// quad indexes the counter-clockwise corners top-left, bottom-left,
// bottom-right, top-right starting at base.
func quad(base uint32) []uint32 {
	return []uint32{base, base + 1, base + 3, base + 3, base + 1, base + 2}
}
