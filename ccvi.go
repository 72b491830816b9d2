package ccvi

import (
	"bytes"
	"image"
	"time"

	"github.com/hupe1980/ccvi/codec"
	"github.com/hupe1980/ccvi/container"
	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/internal/fs"
)

// Converter is the entry point for encoding rasters into documents and
// reconstructing rasters from them. The zero value is not usable; create
// instances with New.
//
// A Converter is stateless between calls and safe for concurrent use.
type Converter struct {
	codec            codec.Codec
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	container        bool
	compression      container.CompressionType
	fs               fs.FileSystem
}

// New creates a Converter.
//
//	conv := ccvi.New(
//		ccvi.WithCodec(codec.GoJSON{}),
//		ccvi.WithWorkers(4),
//	)
func New(optFns ...Option) *Converter {
	opts := applyOptions(optFns)

	c := opts.codec
	if c == nil {
		c = codec.Default
	}

	workers := opts.workers
	if workers < 1 {
		workers = 1
	}

	return &Converter{
		codec:            c,
		workers:          workers,
		metricsCollector: opts.metricsCollector,
		logger:           opts.logger,
		container:        opts.container,
		compression:      opts.compression,
		fs:               fs.Default,
	}
}

// Marshal renders the document into its plain text form.
func (c *Converter) Marshal(d *document.Document) ([]byte, error) {
	start := time.Now()

	data, err := document.Marshal(d, c.codec)
	err = translateError(err)

	c.metricsCollector.RecordMarshal(len(data), time.Since(start), err)
	c.logger.LogMarshal(len(data), err)

	if err != nil {
		return nil, err
	}
	return data, nil
}

// Unmarshal parses document bytes in either persisted form: framed
// containers are detected by their magic and read with the codec recorded
// in their header, anything else is parsed as plain document text.
func (c *Converter) Unmarshal(data []byte) (*document.Document, error) {
	start := time.Now()

	doc, err := c.unmarshal(data)

	c.metricsCollector.RecordUnmarshal(len(data), time.Since(start), err)
	c.logger.LogUnmarshal(len(data), err)

	return doc, err
}

func (c *Converter) unmarshal(data []byte) (*document.Document, error) {
	if container.Sniff(data) {
		payload, cc, err := container.Read(bytes.NewReader(data))
		if err != nil {
			return nil, translateError(err)
		}
		doc, err := document.Unmarshal(payload, cc)
		if err != nil {
			return nil, translateError(err)
		}
		return doc, nil
	}

	doc, err := document.Unmarshal(data, c.codec)
	if err != nil {
		return nil, translateError(err)
	}
	return doc, nil
}

// Encode extracts a document from img using a default Converter.
func Encode(img image.Image, marginError float64) (*document.Document, error) {
	return defaultConverter.Encode(img, marginError)
}

// Decode reconstructs a raster from d using a default Converter.
func Decode(d *document.Document) (*image.NRGBA, Format, error) {
	return defaultConverter.Decode(d)
}

// Marshal renders d into plain document text with a default Converter.
func Marshal(d *document.Document) ([]byte, error) {
	return defaultConverter.Marshal(d)
}

// Unmarshal parses document bytes with a default Converter.
func Unmarshal(data []byte) (*document.Document, error) {
	return defaultConverter.Unmarshal(data)
}

var defaultConverter = New()
