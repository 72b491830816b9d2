// Package document defines the CCVI document model shared by the encoder
// and the decoder.
//
// # Entities
//
//   - Document: the persisted/interchange unit (canvas size, fidelity
//     parameter, ordered planes)
//   - Plane: all retained samples sharing one exact RGB color
//   - Vector: one retained pixel sample (position + derived attributes)
//   - Color: an (R, G, B) byte triple identifying a plane
//
// Plane order follows first-discovery order of colors in the source image
// and is significant: decoding replays planes in document order.
//
// # Serialization
//
// Marshal/Unmarshal render the document through a codec.Codec into the
// field-tagged text form (width, height, margin_error, planes). Unmarshal
// rejects documents with missing or mistyped required fields; it never
// defaults coordinates.
package document
