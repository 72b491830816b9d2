package container

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccvi/codec"
)

// fakeCodec writes valid frames whose codec name no reader resolves.
type fakeCodec struct{}

func (fakeCodec) Marshal(v any) ([]byte, error)    { return codec.JSON{}.Marshal(v) }
func (fakeCodec) Unmarshal(data []byte, v any) error { return codec.JSON{}.Unmarshal(data, v) }
func (fakeCodec) Name() string                     { return "xml" }

func samplePayload() []byte {
	// Repetitive document-like text so LZ4 and ZSTD actually compress it.
	return []byte(strings.Repeat(`{"x":12,"y":34,"height":0.5,"saturation":0.25,"alpha":1},`, 64))
}

func frame(t *testing.T, payload []byte, c codec.Codec, compression CompressionType) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, payload, c, compression))
	return buf.Bytes()
}

func TestWriteRead_RoundTrip(t *testing.T) {
	payload := samplePayload()

	tests := []struct {
		name        string
		compression CompressionType
	}{
		{name: "none", compression: CompressionNone},
		{name: "lz4", compression: CompressionLZ4},
		{name: "zstd", compression: CompressionZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := frame(t, payload, codec.GoJSON{}, tt.compression)

			got, c, err := Read(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, "go-json", c.Name())
		})
	}
}

func TestWriteRead_CompressionShrinksFrame(t *testing.T) {
	payload := samplePayload()

	plain := frame(t, payload, nil, CompressionNone)
	zstd := frame(t, payload, nil, CompressionZSTD)

	assert.Less(t, len(zstd), len(plain))
}

func TestWriteRead_IncompressiblePayload(t *testing.T) {
	// Too short for LZ4 to find matches; exercises the raw-block fallback.
	payload := []byte{0x00, 0x8f, 0x3a, 0xd1, 0x42, 0x77, 0x01, 0xee}

	data := frame(t, payload, nil, CompressionLZ4)

	got, c, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, codec.Default.Name(), c.Name())
}

func TestWrite_NilCodecRecordsDefault(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)

	_, c, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, codec.Default.Name(), c.Name())
}

func TestSniff(t *testing.T) {
	framed := frame(t, samplePayload(), nil, CompressionNone)

	assert.True(t, Sniff(framed))
	assert.False(t, Sniff([]byte(`{"version":1,"width":2,"height":2}`)))
	assert.False(t, Sniff([]byte("CC")))
	assert.False(t, Sniff(nil))
}

func TestRead_InvalidMagic(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)
	data[0] ^= 0xff

	_, _, err := Read(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestRead_UnsupportedVersion(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)
	data[4] = 99 // version byte

	_, _, err := Read(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestRead_UnknownCompression(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)
	data[5] = 7 // compression byte

	_, _, err := Read(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestRead_UnknownCodec(t *testing.T) {
	data := frame(t, samplePayload(), fakeCodec{}, CompressionNone)

	_, _, err := Read(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCodec)
	assert.Contains(t, err.Error(), "xml")
}

func TestRead_ChecksumMismatch(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)
	data[len(data)-5] ^= 0x01 // last payload byte, just before the trailing sum

	_, _, err := Read(bytes.NewReader(data))
	require.Error(t, err)

	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.NotEqual(t, mismatch.Expected, mismatch.Actual)
	assert.True(t, IsChecksumMismatch(err))
}

func TestRead_Truncated(t *testing.T) {
	data := frame(t, samplePayload(), nil, CompressionNone)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "partial header", data: data[:8]},
		{name: "partial payload", data: data[:len(data)/2]},
		{name: "missing trailing sum", data: data[:len(data)-2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestCompressDecompress(t *testing.T) {
	payload := samplePayload()

	for _, compression := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compression.String(), func(t *testing.T) {
			stored, err := compress(payload, compression)
			require.NoError(t, err)

			got, err := decompress(stored, compression)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestDecompress_TruncatedBlock(t *testing.T) {
	stored, err := compress(samplePayload(), CompressionZSTD)
	require.NoError(t, err)

	_, err = decompress(stored[:blockHeaderSize-1], CompressionZSTD)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = decompress(stored[:blockHeaderSize+1], CompressionZSTD)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    CompressionType
		wantErr bool
	}{
		{in: "", want: CompressionNone},
		{in: "none", want: CompressionNone},
		{in: "lz4", want: CompressionLZ4},
		{in: "zstd", want: CompressionZSTD},
		{in: "snappy", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownCompression, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCompressionTypeString(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "unknown(9)", CompressionType(9).String())
}

func TestChecksumWriterReader(t *testing.T) {
	payload := samplePayload()

	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	_, err := cw.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, Checksum(payload), cw.Sum())

	cr := NewChecksumReader(bytes.NewReader(buf.Bytes()))
	out := make([]byte, len(payload))
	_, err = cr.Read(out)
	require.NoError(t, err)

	require.NoError(t, cr.Verify(cw.Sum()))
	assert.Error(t, cr.Verify(cw.Sum()+1))
}
