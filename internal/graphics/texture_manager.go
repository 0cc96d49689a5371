package graphics

import (
	"fmt"
	"image"
	"sync"

	"scene-viewer/internal/asset"
)

// TextureCache uploads each image once. File-backed textures are keyed by path,
// in-memory images (glTF materials) by pointer.
type TextureCache struct {
	mu     sync.RWMutex
	byPath map[string]*Texture
	byImg  map[*image.RGBA]*Texture
}

func NewTextureCache() *TextureCache {
	return &TextureCache{
		byPath: make(map[string]*Texture),
		byImg:  make(map[*image.RGBA]*Texture),
	}
}

// Load returns the cached texture for path, decoding and uploading it on first use.
// Width and height resample the image when both are positive.
func (c *TextureCache) Load(path string, width, height int, opts TextureOptions) (*Texture, error) {
	c.mu.RLock()
	if tex, ok := c.byPath[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.byPath[path]; ok {
		return tex, nil
	}

	img, err := asset.LoadImage(path, width, height)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	tex := UploadTexture(img, opts)
	c.byPath[path] = tex
	return tex, nil
}

// Image returns the texture for an in-memory image, uploading it on first use.
func (c *TextureCache) Image(img *image.RGBA, opts TextureOptions) *Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tex, ok := c.byImg[img]; ok {
		return tex
	}
	tex := UploadTexture(img, opts)
	c.byImg[img] = tex
	return tex
}

func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath) + len(c.byImg)
}

// Dispose deletes every cached texture.
func (c *TextureCache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, t := range c.byPath {
		t.Delete()
		delete(c.byPath, k)
	}
	for k, t := range c.byImg {
		t.Delete()
		delete(c.byImg, k)
	}
}
