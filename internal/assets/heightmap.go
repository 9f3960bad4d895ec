package assets

import (
	"image"
	"image/color"
)

// HeightsFromImage turns a grayscale heightmap into heights[x][z] in
// [-maxHeight, maxHeight]: black is lowest, white highest. Non-square
// images are cropped to their smaller side.
func HeightsFromImage(img image.Image, maxHeight float32) [][]float32 {
	b := img.Bounds()
	n := min(b.Dx(), b.Dy())
	heights := make([][]float32, n)
	for x := range n {
		heights[x] = make([]float32, n)
		for z := range n {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.Gray16)
			v := float32(g.Y) / 0xffff
			heights[x][z] = (v*2 - 1) * maxHeight
		}
	}
	return heights
}
