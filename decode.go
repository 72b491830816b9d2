package ccvi

import (
	"image"
	"math"
	"time"

	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/internal/mask"
	"github.com/hupe1980/ccvi/raster"
)

// Decode reconstructs a raster from the document's planes.
//
// Pixels no vector touches stay transparent black; that sparseness is the
// visible artifact of the lossy encoding and is preserved as-is. When two
// vectors target the same pixel the later one in document order wins.
// The returned Format reports whether the result needs its alpha channel:
// FormatOpaque means every pixel ended fully opaque.
func (c *Converter) Decode(d *document.Document) (*image.NRGBA, Format, error) {
	start := time.Now()

	img, format, err := c.decode(d)

	width, height := 0, 0
	if d != nil {
		width, height = d.Width, d.Height
	}
	c.metricsCollector.RecordDecode(time.Since(start), err)
	c.logger.LogDecode(width, height, format.String(), err)

	return img, format, err
}

func (c *Converter) decode(d *document.Document) (*image.NRGBA, Format, error) {
	if err := d.Validate(); err != nil {
		return nil, FormatAlpha, translateError(err)
	}

	canvas := raster.NewCanvas(d.Width, d.Height)
	covered := mask.New()

	for _, p := range d.Planes {
		for _, v := range p.Vectors {
			if v.X < 0 || v.X >= d.Width || v.Y < 0 || v.Y >= d.Height {
				return nil, FormatAlpha, &OutOfBoundsError{X: v.X, Y: v.Y, Width: d.Width, Height: d.Height}
			}

			i := v.Y*canvas.Stride + v.X*4
			canvas.Pix[i] = p.Color.R()
			canvas.Pix[i+1] = p.Color.G()
			canvas.Pix[i+2] = p.Color.B()
			canvas.Pix[i+3] = uint8(math.Round(v.Alpha * 255))

			covered.Add(uint32(v.Y*d.Width + v.X))
		}
	}

	return canvas, chooseFormat(canvas, covered, d.Width, d.Height), nil
}

// chooseFormat picks the output format from the final canvas state.
// Any pixel left uncovered has alpha 0, so full coverage is a cheap
// precondition before scanning the alpha bytes themselves. The scan looks
// at final values only: a translucent write later overwritten by an opaque
// one does not force the alpha format.
func chooseFormat(canvas *image.NRGBA, covered *mask.Mask, width, height int) Format {
	if !covered.Covers(uint64(width) * uint64(height)) {
		return FormatAlpha
	}
	for i := 3; i < len(canvas.Pix); i += 4 {
		if canvas.Pix[i] < 255 {
			return FormatAlpha
		}
	}
	return FormatOpaque
}
