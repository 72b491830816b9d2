// Package testutil provides testing utilities for CCVI.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating synthetic rasters with controlled
// palettes and for constructing well-formed documents.
//
// # Synthetic Rasters
//
//	rng := testutil.NewRNG(seed)
//	img := rng.PaletteImage(64, 64, 8)       // exactly 8 distinct colors
//	img = testutil.Checkerboard(4, 4, red, blue)
//
// # Document Generation
//
//	doc := rng.RandomDocument(32, 32, 4, 16) // 4 planes, 16 vectors each
package testutil
