package document

import (
	"fmt"
)

// Color is an RGB triple. Within one document no two planes share a color.
type Color [3]uint8

// R returns the red component.
func (c Color) R() uint8 { return c[0] }

// G returns the green component.
func (c Color) G() uint8 { return c[1] }

// B returns the blue component.
func (c Color) B() uint8 { return c[2] }

// String returns the color in #RRGGBB form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2])
}

// Vector is one retained pixel sample.
//
// X and Y address the source pixel (0 ≤ X < width, 0 ≤ Y < height).
// Height, Saturation and Alpha are derived at encode time and normalized
// to [0, 1]:
//
//	height     = mean(R, G, B) / 255
//	saturation = (max(R, G, B) - min(R, G, B)) / 255
//	alpha      = A / 255
type Vector struct {
	X          int
	Y          int
	Height     float64
	Saturation float64
	Alpha      float64
}

// Plane holds every retained sample for one exact RGB color.
// Vectors keep the row-major scan order of the stride sample that
// produced them.
type Plane struct {
	Color   Color
	Vectors []Vector
}

// Document is the CCVI interchange entity. It is constructed wholly at
// encode time and treated as immutable once serialized.
type Document struct {
	Width       int
	Height      int
	MarginError float64
	Planes      []Plane
}

// Validate checks the structural invariants that do not depend on a
// raster: positive dimensions, margin in [0, 1], and per-vector
// attributes in [0, 1]. Coordinate bounds are intentionally not checked
// here; replaying a vector outside the canvas is a decode-time error.
func (d *Document) Validate() error {
	if d == nil {
		return ErrNilDocument
	}
	if d.Width <= 0 {
		return &ErrInvalidField{Field: "width", Reason: fmt.Sprintf("must be positive, got %d", d.Width)}
	}
	if d.Height <= 0 {
		return &ErrInvalidField{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", d.Height)}
	}
	if d.MarginError < 0 || d.MarginError > 1 {
		return &ErrInvalidField{Field: "margin_error", Reason: fmt.Sprintf("must be in [0, 1], got %g", d.MarginError)}
	}
	for i, p := range d.Planes {
		for j, v := range p.Vectors {
			if v.Height < 0 || v.Height > 1 {
				return &ErrInvalidField{
					Field:  fmt.Sprintf("planes[%d].vectors[%d].height", i, j),
					Reason: fmt.Sprintf("must be in [0, 1], got %g", v.Height),
				}
			}
			if v.Saturation < 0 || v.Saturation > 1 {
				return &ErrInvalidField{
					Field:  fmt.Sprintf("planes[%d].vectors[%d].saturation", i, j),
					Reason: fmt.Sprintf("must be in [0, 1], got %g", v.Saturation),
				}
			}
			if v.Alpha < 0 || v.Alpha > 1 {
				return &ErrInvalidField{
					Field:  fmt.Sprintf("planes[%d].vectors[%d].alpha", i, j),
					Reason: fmt.Sprintf("must be in [0, 1], got %g", v.Alpha),
				}
			}
		}
	}
	return nil
}

// Equal reports structural equality: same dimensions, margin, plane order,
// and per-plane vector sequences. Float fields compare exactly; the text
// form round-trips float64 values bit-identically.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Width != other.Width || d.Height != other.Height || d.MarginError != other.MarginError {
		return false
	}
	if len(d.Planes) != len(other.Planes) {
		return false
	}
	for i := range d.Planes {
		a, b := &d.Planes[i], &other.Planes[i]
		if a.Color != b.Color || len(a.Vectors) != len(b.Vectors) {
			return false
		}
		for j := range a.Vectors {
			if a.Vectors[j] != b.Vectors[j] {
				return false
			}
		}
	}
	return true
}

// TotalVectors returns the number of vectors across all planes.
func (d *Document) TotalVectors() int {
	n := 0
	for i := range d.Planes {
		n += len(d.Planes[i].Vectors)
	}
	return n
}

// Stats summarizes a document for display and logging.
type Stats struct {
	Width       int
	Height      int
	Planes      int
	Vectors     int
	MarginError float64
}

// Stats returns the document summary.
func (d *Document) Stats() Stats {
	return Stats{
		Width:       d.Width,
		Height:      d.Height,
		Planes:      len(d.Planes),
		Vectors:     d.TotalVectors(),
		MarginError: d.MarginError,
	}
}

// String renders the summary in the multi-line info form.
func (s Stats) String() string {
	return fmt.Sprintf("Dimensions: %d x %d\nPlanes: %d\nVectors: %d\nMargin: %g",
		s.Width, s.Height, s.Planes, s.Vectors, s.MarginError)
}
