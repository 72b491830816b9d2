package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Both built-in codecs emit the same document text; JSON is the
// zero-dependency option. Documents written by either codec are read by
// either codec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// Plain-text documents do not record which implementation produced them
// (the two codecs are wire-compatible); containers are self-describing
// and store the codec name in their header.
var Default Codec = GoJSON{}
