package ccvi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/testutil"
)

// opaqueVector places a fully opaque sample at (x, y).
func opaqueVector(x, y int) document.Vector {
	return document.Vector{X: x, Y: y, Height: 0.5, Saturation: 0.5, Alpha: 1.0}
}

func TestDecode_WritesVectorPixels(t *testing.T) {
	doc := &document.Document{
		Width:  2,
		Height: 2,
		Planes: []document.Plane{
			{Color: red, Vectors: []document.Vector{opaqueVector(1, 0)}},
		},
	}

	img, format, err := New().Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, FormatAlpha, format)

	// The addressed pixel carries the plane color, fully opaque.
	i := 0*img.Stride + 1*4
	assert.Equal(t, uint8(255), img.Pix[i])
	assert.Equal(t, uint8(0), img.Pix[i+1])
	assert.Equal(t, uint8(0), img.Pix[i+2])
	assert.Equal(t, uint8(255), img.Pix[i+3])

	// Untouched pixels stay transparent black.
	for _, off := range []int{0, img.Stride, img.Stride + 4} {
		for c := 0; c < 4; c++ {
			assert.Equal(t, uint8(0), img.Pix[off+c])
		}
	}
}

func TestDecode_OutOfBounds(t *testing.T) {
	conv := New()

	tests := []struct {
		name string
		x, y int
	}{
		{name: "x one past last column", x: 2, y: 0},
		{name: "y one past last row", x: 0, y: 2},
		{name: "negative x", x: -1, y: 0},
		{name: "negative y", x: 0, y: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &document.Document{
				Width:  2,
				Height: 2,
				Planes: []document.Plane{
					{Color: red, Vectors: []document.Vector{opaqueVector(tt.x, tt.y)}},
				},
			}

			_, _, err := conv.Decode(doc)
			require.Error(t, err)

			var oob *OutOfBoundsError
			require.ErrorAs(t, err, &oob)
			assert.Equal(t, tt.x, oob.X)
			assert.Equal(t, tt.y, oob.Y)
			assert.Equal(t, 2, oob.Width)
			assert.Equal(t, 2, oob.Height)
		})
	}
}

func TestDecode_LastWriteWins(t *testing.T) {
	doc := &document.Document{
		Width:  1,
		Height: 1,
		Planes: []document.Plane{
			{Color: red, Vectors: []document.Vector{{X: 0, Y: 0, Alpha: 0.25}}},
			{Color: blue, Vectors: []document.Vector{{X: 0, Y: 0, Alpha: 1.0}}},
		},
	}

	img, format, err := New().Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), img.Pix[0])
	assert.Equal(t, uint8(255), img.Pix[2])
	assert.Equal(t, uint8(255), img.Pix[3])
	// The translucent write was overwritten, so the final canvas is opaque.
	assert.Equal(t, FormatOpaque, format)
}

func TestDecode_FormatSelection(t *testing.T) {
	tests := []struct {
		name string
		doc  *document.Document
		want Format
	}{
		{
			name: "full coverage, all opaque",
			doc: &document.Document{
				Width:  2,
				Height: 1,
				Planes: []document.Plane{
					{Color: red, Vectors: []document.Vector{opaqueVector(0, 0), opaqueVector(1, 0)}},
				},
			},
			want: FormatOpaque,
		},
		{
			name: "uncovered pixel",
			doc: &document.Document{
				Width:  2,
				Height: 1,
				Planes: []document.Plane{
					{Color: red, Vectors: []document.Vector{opaqueVector(0, 0)}},
				},
			},
			want: FormatAlpha,
		},
		{
			name: "full coverage, one translucent",
			doc: &document.Document{
				Width:  2,
				Height: 1,
				Planes: []document.Plane{
					{Color: red, Vectors: []document.Vector{
						opaqueVector(0, 0),
						{X: 1, Y: 0, Alpha: 0.5},
					}},
				},
			},
			want: FormatAlpha,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, format, err := New().Decode(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestDecode_AlphaRounding(t *testing.T) {
	doc := &document.Document{
		Width:  3,
		Height: 1,
		Planes: []document.Plane{
			{Color: red, Vectors: []document.Vector{
				{X: 0, Y: 0, Alpha: 0.5},           // 127.5 rounds up
				{X: 1, Y: 0, Alpha: 64.0 / 255.0},  // exact byte fraction
				{X: 2, Y: 0, Alpha: 0.0},
			}},
		},
	}

	img, _, err := New().Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, uint8(128), img.Pix[3])
	assert.Equal(t, uint8(64), img.Pix[7])
	assert.Equal(t, uint8(0), img.Pix[11])
}

func TestDecode_InvalidDocument(t *testing.T) {
	conv := New()

	var formatErr *FormatError

	_, _, err := conv.Decode(nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &formatErr)

	_, _, err = conv.Decode(&document.Document{Width: 0, Height: 4})
	require.Error(t, err)
	assert.ErrorAs(t, err, &formatErr)

	_, _, err = conv.Decode(&document.Document{
		Width:  2,
		Height: 2,
		Planes: []document.Plane{
			{Color: red, Vectors: []document.Vector{{X: 0, Y: 0, Alpha: 1.5}}},
		},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "planes[0].vectors[0].alpha", formatErr.Field)
}

func TestEncodeDecode_ZeroErrorRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)
	img := rng.TranslucentImage(32, 32, 6, 0)
	conv := New()

	doc, err := conv.Encode(img, 0.0)
	require.NoError(t, err)

	decoded, _, err := conv.Decode(doc)
	require.NoError(t, err)

	// Alpha survives exactly: round((a/255)*255) == a for every byte.
	assert.Equal(t, img.Pix, decoded.Pix)
}

func TestEncodeDecode_EndToEnd2x2(t *testing.T) {
	// Top row red opaque, bottom row blue at alpha 128.
	img := testutil.Solid(2, 2, red, 255)
	img.Pix[img.Stride] = 0
	img.Pix[img.Stride+2] = 255
	img.Pix[img.Stride+3] = 128
	img.Pix[img.Stride+4] = 0
	img.Pix[img.Stride+6] = 255
	img.Pix[img.Stride+7] = 128

	conv := New()
	doc, err := conv.Encode(img, 0.0)
	require.NoError(t, err)

	require.Equal(t, 2, len(doc.Planes))

	redPlane := doc.Planes[0]
	assert.Equal(t, red, redPlane.Color)
	require.Equal(t, 2, len(redPlane.Vectors))
	assert.Equal(t, []document.Vector{
		{X: 0, Y: 0, Height: 255.0 / 3.0 / 255.0, Saturation: 1.0, Alpha: 1.0},
		{X: 1, Y: 0, Height: 255.0 / 3.0 / 255.0, Saturation: 1.0, Alpha: 1.0},
	}, redPlane.Vectors)

	bluePlane := doc.Planes[1]
	assert.Equal(t, blue, bluePlane.Color)
	require.Equal(t, 2, len(bluePlane.Vectors))
	assert.Equal(t, 0, bluePlane.Vectors[0].X)
	assert.Equal(t, 1, bluePlane.Vectors[0].Y)
	assert.Equal(t, 1, bluePlane.Vectors[1].X)
	assert.Equal(t, 1, bluePlane.Vectors[1].Y)
	assert.InDelta(t, 128.0/255.0, bluePlane.Vectors[0].Alpha, 1e-15)

	decoded, format, err := conv.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, FormatAlpha, format)
	assert.Equal(t, img.Pix, decoded.Pix)
}
