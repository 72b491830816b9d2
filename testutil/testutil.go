package testutil

import (
	"image"
	"math/rand"
	"sync"

	"github.com/hupe1980/ccvi/document"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Palette returns n distinct colors. Colors are derived from the index,
// not the seed, so a palette of size n is stable across runs.
func Palette(n int) []document.Color {
	colors := make([]document.Color, n)
	for i := range n {
		// Walk the color cube with coprime steps so indices stay distinct
		// for any palette a test realistically asks for.
		colors[i] = document.Color{
			uint8((i*29 + 7) % 256),
			uint8((i*83 + 13) % 256),
			uint8((i*151 + 31) % 256),
		}
	}
	return colors
}

// PaletteImage generates a w×h opaque raster drawing from exactly n
// distinct colors. The first n pixels in scan order use colors 0..n-1, so
// first-discovery plane order equals palette order; remaining pixels pick
// palette colors at random.
func (r *RNG) PaletteImage(w, h, n int) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	colors := Palette(n)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := range h {
		for x := range w {
			pos := y*w + x
			c := colors[r.rand.Intn(n)]
			if pos < n {
				c = colors[pos]
			}
			i := y*img.Stride + x*4
			img.Pix[i] = c.R()
			img.Pix[i+1] = c.G()
			img.Pix[i+2] = c.B()
			img.Pix[i+3] = 255
		}
	}

	return img
}

// TranslucentImage generates a w×h raster like PaletteImage but with a
// pseudo-random alpha per pixel drawn from [minAlpha, 255].
func (r *RNG) TranslucentImage(w, h, n int, minAlpha uint8) *image.NRGBA {
	img := r.PaletteImage(w, h, n)

	r.mu.Lock()
	defer r.mu.Unlock()
	span := int(255-minAlpha) + 1
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = minAlpha + uint8(r.rand.Intn(span))
	}
	return img
}

// Checkerboard generates a w×h opaque raster alternating two colors, with
// color a at (0,0).
func Checkerboard(w, h int, a, b document.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			i := y*img.Stride + x*4
			img.Pix[i] = c.R()
			img.Pix[i+1] = c.G()
			img.Pix[i+2] = c.B()
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Solid generates a w×h raster of a single color with the given alpha.
func Solid(w, h int, c document.Color, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R()
		img.Pix[i+1] = c.G()
		img.Pix[i+2] = c.B()
		img.Pix[i+3] = alpha
	}
	return img
}

// RandomDocument constructs a well-formed document with the given number
// of planes and vectors per plane. Coordinates are in bounds, colors are
// distinct across planes, and attributes quantize to byte fractions so
// the document survives an encode/decode cycle unchanged.
func (r *RNG) RandomDocument(w, h, planes, vectorsPerPlane int) *document.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	colors := Palette(planes)
	doc := &document.Document{
		Width:       w,
		Height:      h,
		MarginError: 0.5,
		Planes:      make([]document.Plane, planes),
	}

	for pi := range planes {
		vectors := make([]document.Vector, vectorsPerPlane)
		for vi := range vectorsPerPlane {
			vectors[vi] = document.Vector{
				X:          r.rand.Intn(w),
				Y:          r.rand.Intn(h),
				Height:     float64(r.rand.Intn(256)) / 255.0,
				Saturation: float64(r.rand.Intn(256)) / 255.0,
				Alpha:      float64(r.rand.Intn(256)) / 255.0,
			}
		}
		doc.Planes[pi] = document.Plane{Color: colors[pi], Vectors: vectors}
	}

	return doc
}
