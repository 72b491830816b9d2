package ccvi

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/internal/mask"
	"github.com/hupe1980/ccvi/raster"
)

// colorKey packs an RGB triple for bucketing. Alpha is excluded: planes
// group by color only, and per-pixel alpha is carried on each vector.
type colorKey uint32

func makeColorKey(r, g, b uint8) colorKey {
	return colorKey(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (k colorKey) rgb() (uint8, uint8, uint8) {
	return uint8(k >> 16), uint8(k >> 8), uint8(k)
}

// Encode extracts per-color planes from img and subsamples each plane
// down to its retained vectors.
//
// marginError in [0, 1] controls fidelity: 0 retains every pixel of every
// plane, 1 retains a single pixel per plane. Plane order is the order in
// which colors are first discovered during a top-to-bottom, left-to-right
// scan, and vectors within a plane keep that same scan order.
func (c *Converter) Encode(img image.Image, marginError float64) (*document.Document, error) {
	start := time.Now()

	doc, err := c.encode(img, marginError)

	planes, vectors := 0, 0
	width, height := 0, 0
	if doc != nil {
		planes = len(doc.Planes)
		vectors = doc.TotalVectors()
		width, height = doc.Width, doc.Height
	}
	c.metricsCollector.RecordEncode(planes, vectors, time.Since(start), err)
	c.logger.LogEncode(width, height, planes, vectors, marginError, err)

	return doc, err
}

func (c *Converter) encode(img image.Image, marginError float64) (*document.Document, error) {
	// The negated comparison also rejects NaN.
	if !(marginError >= 0 && marginError <= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidMargin, marginError)
	}
	if img == nil {
		return nil, &UnsupportedInputError{Reason: "nil image"}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, &UnsupportedInputError{Reason: "empty raster"}
	}

	nrgba := raster.ToNRGBA(img)

	// Single scan buckets every pixel index into the mask of its color.
	// Pixel indices are y*width+x, so each mask iterates in row-major
	// order and the order slice preserves first-discovery plane order.
	masks := make(map[colorKey]*mask.Mask)
	order := make([]colorKey, 0, 16)

	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			key := makeColorKey(row[x*4], row[x*4+1], row[x*4+2])
			m, ok := masks[key]
			if !ok {
				m = mask.New()
				masks[key] = m
				order = append(order, key)
			}
			m.Add(uint32(y*width + x))
		}
	}

	planes := make([]document.Plane, len(order))

	if c.workers > 1 && len(order) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(c.workers)
		for pi, key := range order {
			g.Go(func() error {
				planes[pi] = samplePlane(nrgba, width, key, masks[key], marginError)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for pi, key := range order {
			planes[pi] = samplePlane(nrgba, width, key, masks[key], marginError)
		}
	}

	return &document.Document{
		Width:       width,
		Height:      height,
		MarginError: marginError,
		Planes:      planes,
	}, nil
}

// samplePlane stride-samples one color's mask into its retained vectors.
//
// With count masked pixels the plane keeps the coordinates at positions
// 0, k, 2k, ... of the row-major coordinate list, where
// k = max(1, count/numVectors) and numVectors = max(1, count*(1-margin)).
// Integer stride rounding can make the retained count deviate from
// numVectors by up to one stride window; that deviation is part of the
// format and must not be corrected.
func samplePlane(img *image.NRGBA, width int, key colorKey, m *mask.Mask, marginError float64) document.Plane {
	r, g, b := key.rgb()

	count := int(m.Population())
	numVectors := max(1, int(float64(count)*(1.0-marginError)))
	k := max(1, count/numVectors)

	vectors := make([]document.Vector, 0, count/k+1)
	pos := 0
	for idx := range m.Indices() {
		if pos%k == 0 {
			x, y := int(idx)%width, int(idx)/width
			a := img.Pix[y*img.Stride+x*4+3]
			vectors = append(vectors, sampleVector(x, y, r, g, b, a))
		}
		pos++
	}

	return document.Plane{
		Color:   document.Color{r, g, b},
		Vectors: vectors,
	}
}
