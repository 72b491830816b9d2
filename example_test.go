package ccvi_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/ccvi"
	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/testutil"
)

// Example demonstrates the basic encode/decode cycle.
func Example() {
	red := document.Color{255, 0, 0}
	blue := document.Color{0, 0, 255}
	img := testutil.Checkerboard(4, 4, red, blue)

	doc, err := ccvi.Encode(img, 0.5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc.Stats())

	// Half of each plane was dropped, so the reconstruction has holes and
	// needs the alpha-preserving format.
	_, format, err := ccvi.Decode(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("format:", format)

	// Output:
	// Dimensions: 4 x 4
	// Planes: 2
	// Vectors: 8
	// Margin: 0.5
	// format: alpha
}

// ExampleConverter_Marshal shows the persisted text form.
func ExampleConverter_Marshal() {
	img := testutil.Solid(1, 1, document.Color{255, 0, 0}, 255)
	conv := ccvi.New()

	doc, err := conv.Encode(img, 0)
	if err != nil {
		log.Fatal(err)
	}

	data, err := conv.Marshal(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	// Output:
	// {"version":1,"width":1,"height":1,"margin_error":0,"planes":[{"color":[255,0,0],"vectors":[{"x":0,"y":0,"height":0.3333333333333333,"saturation":1,"alpha":1}]}]}
}

// ExampleNew demonstrates configuring a Converter.
func ExampleNew() {
	metrics := &ccvi.BasicMetricsCollector{}
	conv := ccvi.New(
		ccvi.WithWorkers(4),
		ccvi.WithMetricsCollector(metrics),
	)

	rng := testutil.NewRNG(42)
	doc, err := conv.Encode(rng.PaletteImage(8, 8, 4), 0)
	if err != nil {
		log.Fatal(err)
	}

	stats := metrics.GetStats()
	fmt.Printf("planes=%d vectors=%d encodes=%d\n", len(doc.Planes), doc.TotalVectors(), stats.EncodeCount)

	// Output:
	// planes=4 vectors=64 encodes=1
}
