package ccvi

import "github.com/hupe1980/ccvi/document"

// sampleVector derives the stored attributes for one retained pixel.
// Height averages the color channels, saturation is the channel spread,
// alpha carries the source alpha. All three are scaled to [0, 1].
func sampleVector(x, y int, r, g, b, a uint8) document.Vector {
	return document.Vector{
		X:          x,
		Y:          y,
		Height:     float64(int(r)+int(g)+int(b)) / 3.0 / 255.0,
		Saturation: float64(max(r, g, b)-min(r, g, b)) / 255.0,
		Alpha:      float64(a) / 255.0,
	}
}
