package graphics

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureOptions selects sampling for an uploaded image.
type TextureOptions struct {
	Repeat  bool // GL_REPEAT instead of GL_CLAMP_TO_EDGE
	Nearest bool // GL_NEAREST instead of linear filtering
	Mipmaps bool
}

// Texture is a 2D GL texture handle with its size.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// UploadTexture copies img into a new RGBA8 texture. Rows are uploaded top first,
// so v=0 samples the top of the image, matching glTF texture coordinates.
func UploadTexture(img *image.RGBA, opts TextureOptions) *Texture {
	size := img.Rect.Size()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	minFilter, magFilter := int32(gl.LINEAR), int32(gl.LINEAR)
	if opts.Nearest {
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	}
	if opts.Mipmaps {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: id, Width: size.X, Height: size.Y}
}

// Bind makes t current on the given texture unit (0-based).
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// WhiteTexture is a 1x1 opaque white texture, bound when a material has no image.
func WhiteTexture() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{255, 255, 255, 255})
	return UploadTexture(img, TextureOptions{Nearest: true})
}
