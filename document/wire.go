package document

import (
	"fmt"

	"github.com/hupe1980/ccvi/codec"
)

// FormatVersion is written into serialized documents. Readers tolerate its
// absence so documents produced by older tools stay loadable, and readers
// that predate it ignore the extra field.
const FormatVersion = 1

type docOut struct {
	Version     int        `json:"version"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	MarginError float64    `json:"margin_error"`
	Planes      []planeOut `json:"planes"`
}

type planeOut struct {
	Color   Color       `json:"color"`
	Vectors []vectorOut `json:"vectors"`
}

type vectorOut struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Height     float64 `json:"height"`
	Saturation float64 `json:"saturation"`
	Alpha      float64 `json:"alpha"`
}

// Pointer fields distinguish absent from zero-valued; a nil pointer after
// decoding means the field was missing (or an explicit null).
type docIn struct {
	Version     *int       `json:"version"`
	Width       *int       `json:"width"`
	Height      *int       `json:"height"`
	MarginError *float64   `json:"margin_error"`
	Planes      *[]planeIn `json:"planes"`
}

type planeIn struct {
	Color   *[]int      `json:"color"`
	Vectors *[]vectorIn `json:"vectors"`
}

type vectorIn struct {
	X          *int     `json:"x"`
	Y          *int     `json:"y"`
	Height     *float64 `json:"height"`
	Saturation *float64 `json:"saturation"`
	Alpha      *float64 `json:"alpha"`
}

// Marshal serializes a document with the given codec. A nil codec falls
// back to codec.Default. The document is validated first so persisted
// bytes are always well-formed.
func Marshal(d *Document, c codec.Codec) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = codec.Default
	}

	out := docOut{
		Version:     FormatVersion,
		Width:       d.Width,
		Height:      d.Height,
		MarginError: d.MarginError,
		Planes:      make([]planeOut, len(d.Planes)),
	}
	for i, p := range d.Planes {
		vectors := make([]vectorOut, len(p.Vectors))
		for j, v := range p.Vectors {
			vectors[j] = vectorOut{
				X:          v.X,
				Y:          v.Y,
				Height:     v.Height,
				Saturation: v.Saturation,
				Alpha:      v.Alpha,
			}
		}
		out.Planes[i] = planeOut{Color: p.Color, Vectors: vectors}
	}

	return c.Marshal(out)
}

// Unmarshal parses a serialized document with the given codec. A nil codec
// falls back to codec.Default. Every required field must be present with
// the right arity and type; coordinates are never defaulted.
func Unmarshal(data []byte, c codec.Codec) (*Document, error) {
	if len(data) == 0 {
		return nil, &ErrMalformedDocument{}
	}
	if c == nil {
		c = codec.Default
	}

	var in docIn
	if err := c.Unmarshal(data, &in); err != nil {
		return nil, &ErrMalformedDocument{cause: err}
	}

	if in.Width == nil {
		return nil, &ErrMissingField{Field: "width"}
	}
	if in.Height == nil {
		return nil, &ErrMissingField{Field: "height"}
	}
	if in.MarginError == nil {
		return nil, &ErrMissingField{Field: "margin_error"}
	}
	if in.Planes == nil {
		return nil, &ErrMissingField{Field: "planes"}
	}

	d := &Document{
		Width:       *in.Width,
		Height:      *in.Height,
		MarginError: *in.MarginError,
		Planes:      make([]Plane, len(*in.Planes)),
	}

	for i, p := range *in.Planes {
		if p.Color == nil {
			return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].color", i)}
		}
		if len(*p.Color) != 3 {
			return nil, &ErrInvalidField{
				Field:  fmt.Sprintf("planes[%d].color", i),
				Reason: fmt.Sprintf("want 3 components, got %d", len(*p.Color)),
			}
		}
		var col Color
		for k, comp := range *p.Color {
			if comp < 0 || comp > 255 {
				return nil, &ErrInvalidField{
					Field:  fmt.Sprintf("planes[%d].color[%d]", i, k),
					Reason: fmt.Sprintf("component out of byte range: %d", comp),
				}
			}
			col[k] = uint8(comp)
		}
		if p.Vectors == nil {
			return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors", i)}
		}

		vectors := make([]Vector, len(*p.Vectors))
		for j, v := range *p.Vectors {
			switch {
			case v.X == nil:
				return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors[%d].x", i, j)}
			case v.Y == nil:
				return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors[%d].y", i, j)}
			case v.Height == nil:
				return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors[%d].height", i, j)}
			case v.Saturation == nil:
				return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors[%d].saturation", i, j)}
			case v.Alpha == nil:
				return nil, &ErrMissingField{Field: fmt.Sprintf("planes[%d].vectors[%d].alpha", i, j)}
			}
			vectors[j] = Vector{
				X:          *v.X,
				Y:          *v.Y,
				Height:     *v.Height,
				Saturation: *v.Saturation,
				Alpha:      *v.Alpha,
			}
		}
		d.Planes[i] = Plane{Color: col, Vectors: vectors}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
