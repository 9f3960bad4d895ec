package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mini-engine/internal/graphics"
	"mini-engine/internal/graphics/graphicstest"
	"mini-engine/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
}

func TestDecodeImageFormats(t *testing.T) {
	src := checker(4, 3)
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}
	for want, encode := range encoders {
		t.Run(want, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))
			img, format, err := DecodeImage(&buf)
			require.NoError(t, err)
			assert.Equal(t, want, format)
			assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())
		})
	}

	_, _, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestToRGBA(t *testing.T) {
	sub := checker(4, 4).SubImage(image.Rect(1, 1, 3, 3))
	rgba := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba.RGBAAt(0, 0))

	same := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, same, ToRGBA(same))

	// anchored at the origin but rows are wider than the image
	corner := image.NewRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(0, 0, 2, 2)).(*image.RGBA)
	packed := ToRGBA(corner)
	assert.NotSame(t, corner, packed)
	assert.Equal(t, 2*4, packed.Stride)
	assert.Len(t, packed.Pix, 2*2*4)
}

func TestHeightsFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 255})

	h := HeightsFromImage(img, 40)
	require.Len(t, h, 2)
	require.Len(t, h[0], 2)
	assert.InDelta(t, -40, h[0][0], 1e-3)
	assert.InDelta(t, 40, h[1][0], 1e-3)
	assert.InDelta(t, 40, h[0][1], 1e-3)
	assert.InDelta(t, -40, h[1][1], 1e-3)
}

func TestTextImage(t *testing.T) {
	img := TextImage("Hi", DefaultFace(), color.White, 2)
	assert.Equal(t, image.Pt(14+4, 13+4), img.Bounds().Size())

	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	assert.Positive(t, opaque)
	assert.Zero(t, img.RGBAAt(0, 0).A)

	_, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 12)
	assert.Error(t, err)
}

func TestTextureManagerCaches(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "grass.png", checker(8, 8))
	api := graphicstest.New()
	m := NewTextureManager(api, dir, logging.Nop())

	a, err := m.Texture("grass.png")
	require.NoError(t, err)
	b, err := m.Texture("grass.png")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 8, a.Width)
	assert.Len(t, api.Textures, 1)

	_, err = m.Texture("missing.png")
	assert.Error(t, err)
	assert.Equal(t, 1, m.Len())

	label, err := m.Image("label:hello", TextImage("hello", DefaultFace(), color.Black, 0))
	require.NoError(t, err)
	assert.Equal(t, 35, label.Width)

	m.Dispose()
	assert.Zero(t, m.Len())
	assert.Empty(t, api.Textures)
}

func TestTextureManagerCubeAndHeights(t *testing.T) {
	dir := t.TempDir()
	faces := [6]string{"right.png", "left.png", "top.png", "bottom.png", "back.png", "front.png"}
	for _, f := range faces {
		writePNG(t, dir, f, checker(16, 16))
	}
	writePNG(t, dir, "heightmap.png", image.NewGray(image.Rect(0, 0, 4, 4)))

	api := graphicstest.New()
	m := NewTextureManager(api, dir, logging.Nop())

	cube, err := m.CubeTexture(faces)
	require.NoError(t, err)
	assert.Equal(t, graphics.TextureCube, cube.Kind)
	again, err := m.CubeTexture(faces)
	require.NoError(t, err)
	assert.Same(t, cube, again)

	faces[5] = "nope.png"
	_, err = m.CubeTexture(faces)
	assert.Error(t, err)

	h, err := m.Heights("heightmap.png", 10)
	require.NoError(t, err)
	assert.Len(t, h, 4)
	assert.InDelta(t, -10, h[3][3], 1e-4)
}
