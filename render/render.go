// Package render draws cosmetic previews of documents: each vector
// becomes a dot in its plane color, composited over a light gray
// background. Nothing here affects the persisted format or the decoder;
// a preview is a visualization of the sample positions, not a
// reconstruction of the source image.
package render

import (
	"image"
	"math"

	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/raster"
)

// Background is the canvas fill behind the vector dots.
var Background = document.Color{240, 240, 240}

// Options controls a single preview rendering.
type Options struct {
	// ShowVectors draws each vector as a filled circle of VectorSize
	// pixels. When false every vector is a single pixel.
	ShowVectors bool

	// VectorSize is the dot diameter in pixels. Values outside [1, 10]
	// are clamped.
	VectorSize int

	// Animating scales the dot diameter by a sinusoidal pulse derived
	// from Phase. Ignored when ShowVectors is false.
	Animating bool

	// Phase is the animation phase in radians.
	Phase float64
}

// DotDiameter returns the effective dot diameter for these options.
// While animating the diameter pulses between roughly 40% and 100% of
// VectorSize, never below one pixel.
func (o Options) DotDiameter() int {
	size := clampVectorSize(o.VectorSize)
	if !o.Animating {
		return size
	}
	pulse := math.Sin(o.Phase)*0.3 + 0.7
	return max(1, int(math.Floor(float64(size)*pulse)))
}

// Preview renders the document's vectors onto a w×h canvas. The canvas
// is cleared, filled with Background, and each vector is drawn in
// document order with source-over blending at its own alpha. Vectors
// whose dots extend past the canvas edge are clipped, not rejected;
// preview is cosmetic and deliberately more forgiving than Decode.
func Preview(doc *document.Document, opts Options) *image.NRGBA {
	img := raster.NewCanvas(doc.Width, doc.Height)
	fill(img, Background.R(), Background.G(), Background.B())

	d := opts.DotDiameter()

	for pi := range doc.Planes {
		p := &doc.Planes[pi]
		r, g, b := p.Color.R(), p.Color.G(), p.Color.B()

		for vi := range p.Vectors {
			v := &p.Vectors[vi]
			a := uint8(math.Round(v.Alpha * 255))

			if !opts.ShowVectors {
				blendPixel(img, v.X, v.Y, r, g, b, a)
				continue
			}
			drawDot(img, v.X, v.Y, d, r, g, b, a)
		}
	}

	return img
}

func fill(img *image.NRGBA, r, g, b uint8) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
}

// drawDot fills a circle of diameter d whose bounding box has its
// top-left corner at (x-d/2, y-d/2). The integer halving keeps the dot
// anchored on the vector's pixel for odd and even diameters alike.
func drawDot(img *image.NRGBA, x, y, d int, r, g, b, a uint8) {
	tlx := x - d/2
	tly := y - d/2
	cx := float64(tlx) + float64(d)/2
	cy := float64(tly) + float64(d)/2
	radius := float64(d) / 2

	for py := tly; py < tly+d; py++ {
		for px := tlx; px < tlx+d; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				blendPixel(img, px, py, r, g, b, a)
			}
		}
	}
}

// blendPixel composites a straight-alpha source pixel over the canvas.
// The canvas is opaque after the background fill, so the destination
// alpha stays 255.
func blendPixel(img *image.NRGBA, x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	i := y*img.Stride + x*4

	sa := uint32(a)
	da := 255 - sa
	img.Pix[i] = uint8((uint32(r)*sa + uint32(img.Pix[i])*da + 127) / 255)
	img.Pix[i+1] = uint8((uint32(g)*sa + uint32(img.Pix[i+1])*da + 127) / 255)
	img.Pix[i+2] = uint8((uint32(b)*sa + uint32(img.Pix[i+2])*da + 127) / 255)
	img.Pix[i+3] = 255
}
