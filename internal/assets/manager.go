package assets

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"
)

// TextureManager uploads image files once and hands out the cached handle
// on later requests. Names are relative to the asset directory.
type TextureManager struct {
	loader graphics.Loader
	dir    string
	log    logging.Logger

	mu    sync.RWMutex
	cache map[string]*graphics.Texture
}

func NewTextureManager(loader graphics.Loader, dir string, log logging.Logger) *TextureManager {
	return &TextureManager{
		loader: loader,
		dir:    dir,
		log:    log,
		cache:  make(map[string]*graphics.Texture),
	}
}

// Path resolves a name against the asset directory.
func (m *TextureManager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// Texture returns the 2D texture for name, loading it on first use.
func (m *TextureManager) Texture(name string) (*graphics.Texture, error) {
	return m.cached(name, func() (*graphics.Texture, error) {
		img, err := LoadImage(m.Path(name))
		if err != nil {
			return nil, err
		}
		return m.loader.LoadTexture(img)
	})
}

// CubeTexture returns the cube map built from six faces in the order
// right, left, top, bottom, back, front.
func (m *TextureManager) CubeTexture(faces [6]string) (*graphics.Texture, error) {
	key := fmt.Sprintf("cube:%v", faces)
	return m.cached(key, func() (*graphics.Texture, error) {
		var imgs [6]image.Image
		for i, name := range faces {
			img, err := LoadImage(m.Path(name))
			if err != nil {
				return nil, err
			}
			imgs[i] = img
		}
		return m.loader.LoadCubeTexture(imgs)
	})
}

// Image uploads an in-memory image under key, for generated textures such
// as text labels.
func (m *TextureManager) Image(key string, img image.Image) (*graphics.Texture, error) {
	return m.cached(key, func() (*graphics.Texture, error) {
		return m.loader.LoadTexture(img)
	})
}

// Heights loads a heightmap image.
func (m *TextureManager) Heights(name string, maxHeight float32) ([][]float32, error) {
	img, err := LoadImage(m.Path(name))
	if err != nil {
		return nil, err
	}
	return HeightsFromImage(img, maxHeight), nil
}

func (m *TextureManager) cached(key string, load func() (*graphics.Texture, error)) (*graphics.Texture, error) {
	m.mu.RLock()
	if tex, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return tex, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double check locking
	if tex, ok := m.cache[key]; ok {
		return tex, nil
	}

	tex, err := load()
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", key, err)
	}
	m.log.Debugf("loaded texture %s (%dx%d)", key, tex.Width, tex.Height)
	m.cache[key] = tex
	return tex, nil
}

// Len returns the number of cached textures.
func (m *TextureManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

// Dispose releases every cached texture.
func (m *TextureManager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, tex := range m.cache {
		m.loader.DisposeTexture(tex)
		delete(m.cache, key)
	}
}
