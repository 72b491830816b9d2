package ccvi

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccvi/codec"
	"github.com/hupe1980/ccvi/container"
	"github.com/hupe1980/ccvi/document"
	"github.com/hupe1980/ccvi/testutil"
)

func TestConverter_MarshalUnmarshalRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)
	doc := rng.RandomDocument(32, 32, 4, 16)

	tests := []struct {
		name string
		conv *Converter
	}{
		{name: "default codec", conv: New()},
		{name: "stdlib json", conv: New(WithCodec(codec.JSON{}))},
		{name: "go-json", conv: New(WithCodec(codec.GoJSON{}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.conv.Marshal(doc)
			require.NoError(t, err)

			got, err := tt.conv.Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, doc.Equal(got))
		})
	}
}

func TestConverter_UnmarshalSniffsContainer(t *testing.T) {
	rng := testutil.NewRNG(4711)
	doc := rng.RandomDocument(16, 16, 2, 8)
	conv := New()

	plain, err := conv.Marshal(doc)
	require.NoError(t, err)

	var framed bytes.Buffer
	require.NoError(t, container.Write(&framed, plain, codec.GoJSON{}, container.CompressionZSTD))

	fromPlain, err := conv.Unmarshal(plain)
	require.NoError(t, err)
	fromFramed, err := conv.Unmarshal(framed.Bytes())
	require.NoError(t, err)

	assert.True(t, fromPlain.Equal(fromFramed))
}

func TestConverter_UnmarshalMalformed(t *testing.T) {
	conv := New()

	var formatErr *FormatError

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("not a document")},
		{name: "wrong type", data: []byte(`{"version":1,"width":"wide","height":2,"margin_error":0,"planes":[]}`)},
		{name: "truncated container", data: []byte{0x49, 0x56, 0x43, 0x43, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.Unmarshal(tt.data)
			require.Error(t, err)
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestConverter_UnmarshalMissingField(t *testing.T) {
	conv := New()

	_, err := conv.Unmarshal([]byte(`{"version":1,"height":2,"margin_error":0.5,"planes":[]}`))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "width", formatErr.Field)
}

func TestConverter_MarshalRejectsInvalidDocument(t *testing.T) {
	conv := New()

	_, err := conv.Marshal(nil)
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)

	_, err = conv.Marshal(&document.Document{Width: -1, Height: 2})
	require.Error(t, err)
	assert.ErrorAs(t, err, &formatErr)
}

func TestConverter_MetricsCollection(t *testing.T) {
	rng := testutil.NewRNG(4711)
	img := rng.PaletteImage(16, 16, 4)

	metrics := &BasicMetricsCollector{}
	conv := New(WithMetricsCollector(metrics), WithLogger(NewTextLogger(slog.LevelError)))

	doc, err := conv.Encode(img, 0.5)
	require.NoError(t, err)

	_, _, err = conv.Decode(doc)
	require.NoError(t, err)

	data, err := conv.Marshal(doc)
	require.NoError(t, err)
	_, err = conv.Unmarshal(data)
	require.NoError(t, err)

	_, err = conv.Encode(nil, 0.5)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.EncodeCount)
	assert.Equal(t, int64(1), stats.EncodeErrors)
	assert.Equal(t, int64(1), stats.DecodeCount)
	assert.Equal(t, int64(1), stats.MarshalCount)
	assert.Equal(t, int64(1), stats.UnmarshalCount)
	assert.Equal(t, int64(4), stats.EncodedPlanes)
	assert.Greater(t, stats.EncodedVectors, int64(0))
}

func TestPackageLevelHelpers(t *testing.T) {
	img := testutil.Checkerboard(4, 4, red, blue)

	doc, err := Encode(img, 0.0)
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, doc.Equal(got))

	decoded, format, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, FormatOpaque, format)
	assert.NotNil(t, decoded)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "opaque", FormatOpaque.String())
	assert.Equal(t, "alpha", FormatAlpha.String())
	assert.Equal(t, ".jpeg", FormatOpaque.Ext())
	assert.Equal(t, ".png", FormatAlpha.Ext())
}
