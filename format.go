package ccvi

// Format is the decoder's chosen output pixel model.
type Format uint8

const (
	// FormatOpaque means every canvas pixel ended fully opaque; the alpha
	// channel carries no information and is dropped on save.
	FormatOpaque Format = iota
	// FormatAlpha means at least one pixel is unset or carries partial
	// alpha; the output must preserve the alpha channel.
	FormatAlpha
)

// String returns "opaque" or "alpha".
func (f Format) String() string {
	switch f {
	case FormatOpaque:
		return "opaque"
	case FormatAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Ext returns the file extension the format maps to: ".jpeg" for opaque
// output, ".png" when alpha must survive.
func (f Format) Ext() string {
	if f == FormatAlpha {
		return ".png"
	}
	return ".jpeg"
}
