// Package container implements the framed binary form of persisted documents.
//
// A container wraps codec-marshaled document text in a fixed header (magic,
// version, compression, codec name) followed by the payload and a trailing
// CRC32 over everything before it. Files are self-describing: the codec that
// rendered the payload is recorded by name, and corruption is detected on
// open. Plain document text remains a valid persisted form; loaders sniff
// the magic before choosing how to parse.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/ccvi/codec"
)

const (
	// MagicNumber identifies framed document files (ASCII: "CCVI")
	MagicNumber = 0x43435649
	// Version is the current container format version.
	Version = 1

	// maxPayloadSize bounds the allocation for a declared payload so a
	// corrupt length field cannot exhaust memory.
	maxPayloadSize = 1 << 28
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported container version")
	ErrUnknownCompression = errors.New("unknown compression type")
	ErrUnknownCodec       = errors.New("unknown codec name")
	ErrTruncated          = errors.New("truncated container")
)

var byteOrder = binary.LittleEndian

// fileHeader is the fixed 12-byte header at the start of every container.
type fileHeader struct {
	Magic       uint32
	Version     uint8
	Compression uint8
	CodecLen    uint8
	Padding     uint8
	PayloadLen  uint32 // payload bytes as stored, after compression
}

// Write frames payload into w. The payload is expected to be document text
// produced by c; nil c records codec.Default. The trailing checksum covers
// the header, codec name and stored payload.
func Write(w io.Writer, payload []byte, c codec.Codec, compression CompressionType) error {
	if c == nil {
		c = codec.Default
	}

	name := []byte(c.Name())
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("codec name %q does not fit the header", c.Name())
	}

	stored, err := compress(payload, compression)
	if err != nil {
		return err
	}
	if len(stored) > maxPayloadSize {
		return fmt.Errorf("payload of %d bytes exceeds container limit", len(stored))
	}

	cw := NewChecksumWriter(w)
	header := fileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(compression),
		CodecLen:    uint8(len(name)),
		PayloadLen:  uint32(len(stored)),
	}
	if err := binary.Write(cw, byteOrder, header); err != nil {
		return err
	}
	if _, err := cw.Write(name); err != nil {
		return err
	}
	if _, err := cw.Write(stored); err != nil {
		return err
	}

	return binary.Write(w, byteOrder, cw.Sum())
}

// Read parses a framed document from r and returns the decompressed payload
// together with the codec recorded in the header. The checksum is verified
// before the payload is interpreted.
func Read(r io.Reader) ([]byte, codec.Codec, error) {
	cr := NewChecksumReader(r)

	var header fileHeader
	if err := binary.Read(cr, byteOrder, &header); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if header.Magic != MagicNumber {
		return nil, nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}
	compression := CompressionType(header.Compression)
	if compression > CompressionZSTD {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownCompression, header.Compression)
	}
	if header.PayloadLen > maxPayloadSize {
		return nil, nil, fmt.Errorf("declared payload of %d bytes exceeds container limit", header.PayloadLen)
	}

	name := make([]byte, header.CodecLen)
	if _, err := io.ReadFull(cr, name); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	stored := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(cr, stored); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	// The trailing checksum is read from the raw reader so it does not feed
	// the running hash.
	var expected uint32
	if err := binary.Read(r, byteOrder, &expected); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := cr.Verify(expected); err != nil {
		return nil, nil, err
	}

	// Codec resolution happens after verification so a flipped name byte
	// reports as corruption, not as an unknown codec.
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(name))
	}

	payload, err := decompress(stored, compression)
	if err != nil {
		return nil, nil, err
	}
	return payload, c, nil
}

// Sniff reports whether data begins with the container magic. Callers use it
// to route bytes to Read or to the plain-text unmarshal path.
func Sniff(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return byteOrder.Uint32(data) == MagicNumber
}
