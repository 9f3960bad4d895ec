package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the built-in bitmap face used when no font file is given.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// LoadFace opens a TrueType or OpenType font at the given pixel size.
func LoadFace(path string, pixels float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// TextImage renders text on a transparent background, sized to fit with
// padding pixels on each side. The result is suitable for a GUI texture.
func TextImage(text string, face font.Face, fg color.Color, padding int) *image.RGBA {
	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (m.Ascent + m.Descent).Ceil()

	img := image.NewRGBA(image.Rect(0, 0, width+2*padding, height+2*padding))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(padding, padding+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}
