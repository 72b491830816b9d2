// Package raster handles reading source images and converting them into
// the zero-origin NRGBA form the codec operates on.
//
// The codec samples straight (non-premultiplied) RGBA bytes, so NRGBA is
// the canonical in-memory pixel layout. PNG, JPEG, GIF and BMP inputs are
// recognized.
package raster

import (
	"image"
	"image/draw"
	"io"

	"image/jpeg"
	"image/png"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
)

// Decode reads an image from r and returns it together with the detected
// format name ("png", "jpeg", "gif", "bmp").
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// NewCanvas allocates a zeroed w×h canvas: every pixel fully transparent
// black, the decoder's required starting state.
func NewCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// ToNRGBA converts any image to a zero-origin *image.NRGBA.
// Premultiplied sources are converted losslessly only where alpha is 255;
// that matches how such sources were produced in the first place.
func ToNRGBA(m image.Image) *image.NRGBA {
	b := m.Bounds()

	if n, ok := m.(*image.NRGBA); ok {
		if b.Min.X == 0 && b.Min.Y == 0 {
			return n
		}
		out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			srcRow := n.Pix[(y+b.Min.Y-n.Rect.Min.Y)*n.Stride+(b.Min.X-n.Rect.Min.X)*4:]
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], srcRow[:b.Dx()*4])
		}
		return out
	}

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), m, b.Min, draw.Src)
	return out
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteJPEG encodes img as JPEG with default quality. JPEG carries no
// alpha channel, which is why it is only used for opaque decode results.
func WriteJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}
