// Package ccvi implements the CCVI lossy image codec.
//
// CCVI stores an image as per-color planes: every distinct RGB triple in
// the source becomes one plane, and each plane keeps a stride-sampled
// subset of its pixels ("vectors") with derived height, saturation and
// alpha attributes. Decoding paints the retained vectors back onto a
// transparent canvas; pixels the encoder dropped stay transparent black,
// which is the visible signature of the format.
//
// # Quick Start
//
// Encode a raster into a document and back:
//
//	conv := ccvi.New()
//	doc, _ := conv.Encode(img, 0.5)
//	img2, format, _ := conv.Decode(doc)
//
// File conversion, including the persisted text form:
//
//	ctx := context.Background()
//	out, _ := conv.ConvertFile(ctx, "gopher.png", "", 0.5)  // writes gopher.ccvi
//	out, _ = conv.ConvertFile(ctx, out, "", 0)              // writes gopher.png or .jpeg
//
// # Fidelity
//
// The margin of error in [0, 1] is the only tuning knob. At 0 every pixel
// of every plane is retained and the decode reproduces the source exactly.
// At 1 each plane keeps a single pixel. In between, each plane keeps
// roughly count*(1-margin) vectors via deterministic stride sampling.
//
// # Persisted Forms
//
// Documents persist as plain JSON text, or framed in a binary container
// with compression and a checksum (see WithContainer). Loading sniffs the
// file header, so both forms are always readable:
//
//	conv := ccvi.New(ccvi.WithContainer(container.CompressionZSTD))
//	_ = conv.SaveDocument(ctx, "gopher.ccvi", doc)
//	doc2, _ := conv.LoadDocument(ctx, "gopher.ccvi")
//
// # Key Properties
//
//   - Deterministic: identical inputs produce identical documents
//   - Order-preserving: plane order is first-discovery, vector order is
//     row-major scan order
//   - Fail-fast: malformed documents are rejected, never coerced
package ccvi
