package codec_test

import (
	"testing"

	"github.com/hupe1980/ccvi/codec"
	"github.com/hupe1980/ccvi/document"
)

// benchDocument builds a document shaped like a real encode result:
// a handful of planes with a few hundred vectors each.
func benchDocument(planes, vectorsPerPlane int) *document.Document {
	d := &document.Document{
		Width:       640,
		Height:      480,
		MarginError: 0.25,
		Planes:      make([]document.Plane, planes),
	}
	for i := 0; i < planes; i++ {
		p := document.Plane{
			Color:   document.Color{uint8(i * 17), uint8(i * 29), uint8(i * 43)},
			Vectors: make([]document.Vector, vectorsPerPlane),
		}
		for j := 0; j < vectorsPerPlane; j++ {
			p.Vectors[j] = document.Vector{
				X:          (i*31 + j*7) % 640,
				Y:          (i*13 + j*11) % 480,
				Height:     float64(j%256) / 255,
				Saturation: float64((j*3)%256) / 255,
				Alpha:      float64((j*5)%256) / 255,
			}
		}
		d.Planes[i] = p
	}
	return d
}

func benchmarkDocumentMarshal(b *testing.B, c codec.Codec, d *document.Document) {
	b.Helper()
	b.ReportAllocs()

	warm, err := document.Marshal(d, c)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := document.Marshal(d, c)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkDocumentUnmarshal(b *testing.B, c codec.Codec, data []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var sink *document.Document
	b.ResetTimer()
	for b.Loop() {
		d, err := document.Unmarshal(data, c)
		if err != nil {
			b.Fatal(err)
		}
		sink = d
	}
	_ = sink
}

func BenchmarkCodec_Marshal_Document(b *testing.B) {
	d := benchDocument(16, 256)

	b.Run("stdlib", func(b *testing.B) { benchmarkDocumentMarshal(b, codec.JSON{}, d) })
	b.Run("go-json", func(b *testing.B) { benchmarkDocumentMarshal(b, codec.GoJSON{}, d) })
}

func BenchmarkCodec_Unmarshal_Document(b *testing.B) {
	d := benchDocument(16, 256)
	data, err := document.Marshal(d, codec.JSON{})
	if err != nil {
		b.Fatal(err)
	}

	b.Run("stdlib", func(b *testing.B) { benchmarkDocumentUnmarshal(b, codec.JSON{}, data) })
	b.Run("go-json", func(b *testing.B) { benchmarkDocumentUnmarshal(b, codec.GoJSON{}, data) })
}
