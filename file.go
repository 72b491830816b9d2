package ccvi

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/ccvi/container"
	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/raster"
)

// FileExt is the canonical extension for persisted documents.
const FileExt = ".ccvi"

// DefaultOutputPath derives the conventional output location for a
// conversion of inputPath: the user's Pictures directory, the input's
// stem, and the given extension (with leading dot). The directory is not
// created here; writers create it on save.
func DefaultOutputPath(inputPath, ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(home, "Pictures", stem+ext), nil
}

// SaveDocument writes d to path, replacing any existing file atomically.
// The persisted form is plain document text, or a framed container when
// the Converter was built with WithContainer.
func (c *Converter) SaveDocument(ctx context.Context, path string, d *document.Document) error {
	start := time.Now()

	n, err := c.saveDocument(ctx, path, d)

	c.metricsCollector.RecordSave(n, time.Since(start), err)
	c.logger.LogSave(ctx, path, n, err)

	return err
}

func (c *Converter) saveDocument(ctx context.Context, path string, d *document.Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := document.Marshal(d, c.codec)
	if err != nil {
		return 0, translateError(err)
	}

	if c.container {
		var buf bytes.Buffer
		if err := container.Write(&buf, data, c.codec, c.compression); err != nil {
			return 0, err
		}
		data = buf.Bytes()
	}

	if err := c.writeFile(path, data); err != nil {
		return 0, &IOFailure{Op: "save", Path: path, cause: err}
	}
	return len(data), nil
}

// LoadDocument reads and parses the document at path. Both persisted
// forms are accepted; see Unmarshal.
func (c *Converter) LoadDocument(ctx context.Context, path string) (*document.Document, error) {
	start := time.Now()

	doc, n, err := c.loadDocument(ctx, path)

	c.metricsCollector.RecordLoad(n, time.Since(start), err)
	c.logger.LogLoad(ctx, path, n, err)

	return doc, err
}

func (c *Converter) loadDocument(ctx context.Context, path string) (*document.Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	data, err := c.readFile(path)
	if err != nil {
		return nil, 0, &IOFailure{Op: "load", Path: path, cause: err}
	}

	doc, err := c.unmarshal(data)
	if err != nil {
		return nil, len(data), err
	}
	return doc, len(data), nil
}

// EncodeFile encodes the raster file at inputPath and saves the document,
// returning the path written. An empty outputPath selects
// DefaultOutputPath with the document extension.
func (c *Converter) EncodeFile(ctx context.Context, inputPath, outputPath string, marginError float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if outputPath == "" {
		p, err := DefaultOutputPath(inputPath, FileExt)
		if err != nil {
			return "", &IOFailure{Op: "resolve output path", Path: inputPath, cause: err}
		}
		outputPath = p
	}

	f, err := c.fs.OpenFile(inputPath, os.O_RDONLY, 0)
	if err != nil {
		return "", &IOFailure{Op: "read", Path: inputPath, cause: err}
	}
	img, _, err := raster.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return "", &UnsupportedInputError{Reason: "undecodable image data", cause: err}
	}
	if closeErr != nil {
		return "", &IOFailure{Op: "read", Path: inputPath, cause: closeErr}
	}

	doc, err := c.Encode(img, marginError)
	if err != nil {
		return "", err
	}

	if err := c.SaveDocument(ctx, outputPath, doc); err != nil {
		return "", err
	}
	return outputPath, nil
}

// DecodeFile reconstructs the raster from the document at inputPath and
// saves it, returning the path written. An empty outputPath selects
// DefaultOutputPath with the extension chosen by the decoded format:
// ".png" when alpha must survive, ".jpeg" otherwise. An explicit
// outputPath picks the raster encoder by its own extension.
func (c *Converter) DecodeFile(ctx context.Context, inputPath, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := c.LoadDocument(ctx, inputPath)
	if err != nil {
		return "", err
	}

	img, format, err := c.Decode(doc)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		p, err := DefaultOutputPath(inputPath, format.Ext())
		if err != nil {
			return "", &IOFailure{Op: "resolve output path", Path: inputPath, cause: err}
		}
		outputPath = p
	}

	if err := c.writeRaster(outputPath, img, format); err != nil {
		return "", &IOFailure{Op: "save", Path: outputPath, cause: err}
	}
	return outputPath, nil
}

// ConvertFile dispatches on the input extension: document files decode
// back into rasters, anything else encodes into a document.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string, marginError float64) (string, error) {
	var out string
	var err error

	if strings.EqualFold(filepath.Ext(inputPath), FileExt) {
		out, err = c.DecodeFile(ctx, inputPath, outputPath)
	} else {
		out, err = c.EncodeFile(ctx, inputPath, outputPath, marginError)
	}

	c.logger.LogConvertFile(ctx, inputPath, out, err)
	return out, err
}

func (c *Converter) writeRaster(path string, img image.Image, format Format) error {
	var buf bytes.Buffer
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = raster.WritePNG(&buf, img)
	case ".jpg", ".jpeg":
		err = raster.WriteJPEG(&buf, img)
	default:
		if format == FormatOpaque {
			err = raster.WriteJPEG(&buf, img)
		} else {
			err = raster.WritePNG(&buf, img)
		}
	}
	if err != nil {
		return err
	}

	return c.writeFile(path, buf.Bytes())
}

func (c *Converter) readFile(path string) ([]byte, error) {
	f, err := c.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// writeFile writes data via a temp file in the target directory followed
// by a rename, so readers never observe a partially written file.
func (c *Converter) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpName := path + ".tmp"
	tmp, err := c.fs.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tmpName)
		return err
	}

	if err := c.fs.Rename(tmpName, path); err != nil {
		_ = c.fs.Remove(tmpName)
		return err
	}
	return nil
}
