package gallery

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/hupe1980/ccvi/codec"
	"github.com/hupe1980/ccvi/container"
	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/resource"
)

// DocumentExt is the extension gallery entries are stored under.
const DocumentExt = ".ccvi"

// Gallery stores named documents on a Store. Entries are framed in the
// container envelope so they are self-describing regardless of backend.
type Gallery struct {
	store       Store
	codec       codec.Codec
	compression container.CompressionType
	rc          *resource.Controller
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithCodec sets the codec used for document payloads. Defaults to
// codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(g *Gallery) {
		if c != nil {
			g.codec = c
		}
	}
}

// WithCompression sets the container compression for saved documents.
func WithCompression(c container.CompressionType) Option {
	return func(g *Gallery) {
		g.compression = c
	}
}

// WithResourceController paces transfers through rc: saves and loads take
// a worker permit and their byte streams are charged against the IO
// limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(g *Gallery) {
		g.rc = rc
	}
}

// New creates a Gallery over the given store.
func New(store Store, optFns ...Option) *Gallery {
	g := &Gallery{
		store:       store,
		codec:       codec.Default,
		compression: container.CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(g)
		}
	}
	return g
}

// entryName normalizes a gallery entry name to its stored blob name.
func entryName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), DocumentExt) {
		return name
	}
	return name + DocumentExt
}

// SaveDocument persists d under the given name, replacing any existing
// entry.
func (g *Gallery) SaveDocument(ctx context.Context, name string, d *document.Document) error {
	payload, err := document.Marshal(d, g.codec)
	if err != nil {
		return err
	}

	if g.rc != nil {
		if err := g.rc.AcquireBackground(ctx); err != nil {
			return err
		}
		defer g.rc.ReleaseBackground()
	}

	w, err := g.store.Create(ctx, entryName(name))
	if err != nil {
		return err
	}

	var dst io.Writer = w
	if g.rc != nil {
		dst = resource.NewRateLimitedWriter(ctx, w, g.rc)
	}

	if err := container.Write(dst, payload, g.codec, g.compression); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// LoadDocument reads and parses the entry with the given name. Both the
// framed container form and plain document text are accepted, so entries
// written by external tools stay loadable.
func (g *Gallery) LoadDocument(ctx context.Context, name string) (*document.Document, error) {
	if g.rc != nil {
		if err := g.rc.AcquireBackground(ctx); err != nil {
			return nil, err
		}
		defer g.rc.ReleaseBackground()
	}

	data, err := ReadAll(ctx, g.store, entryName(name))
	if err != nil {
		return nil, err
	}
	if g.rc != nil {
		if err := g.rc.AcquireIO(ctx, len(data)); err != nil {
			return nil, err
		}
	}

	if container.Sniff(data) {
		payload, cc, err := container.Read(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return document.Unmarshal(payload, cc)
	}
	return document.Unmarshal(data, g.codec)
}

// Delete removes the entry with the given name.
func (g *Gallery) Delete(ctx context.Context, name string) error {
	return g.store.Delete(ctx, entryName(name))
}

// Documents returns the names of all stored entries, without the
// extension, sorted.
func (g *Gallery) Documents(ctx context.Context) ([]string, error) {
	blobs, err := g.store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if strings.HasSuffix(strings.ToLower(b), DocumentExt) {
			names = append(names, b[:len(b)-len(DocumentExt)])
		}
	}
	return names, nil
}
