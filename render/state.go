package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/hupe1980/ccvi/document"
)

const (
	// DefaultVectorSize is the dot diameter a fresh State starts with.
	DefaultVectorSize = 2

	zoomStep = 1.2
	minZoom  = 0.1
	maxZoom  = 10.0

	minVectorSize = 1
	maxVectorSize = 10

	phaseStep = 0.1
)

// State is the explicit renderer state machine for an interactive
// preview. All mutation goes through the named transitions below; each
// transition documents whether it invalidates the cached base image.
//
// Zoom never invalidates the base. The base is rendered once at 1:1 and
// zooming is a rescale of that cache, so only transitions that change
// what the base looks like (vector visibility, dot size, animation
// frames) mark it dirty.
//
// State is not safe for concurrent use.
type State struct {
	doc *document.Document

	zoom        float64
	showVectors bool
	vectorSize  int
	animating   bool
	phase       float64

	base  *image.NRGBA
	dirty bool
}

// NewState creates a renderer state for the document: zoom 1.0, vectors
// shown at the default size, animation stopped.
func NewState(doc *document.Document) *State {
	return &State{
		doc:         doc,
		zoom:        1.0,
		showVectors: true,
		vectorSize:  DefaultVectorSize,
		dirty:       true,
	}
}

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// ShowVectors reports whether vectors render as dots.
func (s *State) ShowVectors() bool { return s.showVectors }

// VectorSize returns the current dot diameter.
func (s *State) VectorSize() int { return s.vectorSize }

// Animating reports whether the pulse animation is running.
func (s *State) Animating() bool { return s.animating }

// Phase returns the current animation phase in radians.
func (s *State) Phase() float64 { return s.phase }

// ZoomIn multiplies the zoom factor by the zoom step, clamped to the
// maximum. Does not invalidate the base image.
func (s *State) ZoomIn() {
	s.zoom = math.Min(s.zoom*zoomStep, maxZoom)
}

// ZoomOut divides the zoom factor by the zoom step, clamped to the
// minimum. Does not invalidate the base image.
func (s *State) ZoomOut() {
	s.zoom = math.Max(s.zoom/zoomStep, minZoom)
}

// ResetView restores zoom to 1.0. Does not invalidate the base image.
func (s *State) ResetView() {
	s.zoom = 1.0
}

// ToggleVectors flips between dot and single-pixel rendering.
// Invalidates the base image.
func (s *State) ToggleVectors() {
	s.showVectors = !s.showVectors
	s.dirty = true
}

// SetVectorSize changes the dot diameter, clamped to [1, 10].
// Invalidates the base image when the effective size changes.
func (s *State) SetVectorSize(size int) {
	size = clampVectorSize(size)
	if size == s.vectorSize {
		return
	}
	s.vectorSize = size
	s.dirty = true
}

// SetAnimating starts or stops the pulse animation. Invalidates the
// base image on any change, so stopping redraws the static dots.
func (s *State) SetAnimating(animating bool) {
	if animating == s.animating {
		return
	}
	s.animating = animating
	s.dirty = true
}

// AdvanceAnimation steps the phase forward one tick, wrapping back to
// zero past a full period. Invalidates the base image. No-op while the
// animation is stopped.
func (s *State) AdvanceAnimation() {
	if !s.animating {
		return
	}
	s.phase += phaseStep
	if s.phase > 2*math.Pi {
		s.phase = 0
	}
	s.dirty = true
}

// Frame returns the image to display: the cached base rendered fresh if
// a transition invalidated it, then rescaled to the current zoom. At
// zoom 1.0 the base is returned directly.
func (s *State) Frame() *image.NRGBA {
	if s.dirty || s.base == nil {
		s.base = Preview(s.doc, Options{
			ShowVectors: s.showVectors,
			VectorSize:  s.vectorSize,
			Animating:   s.animating,
			Phase:       s.phase,
		})
		s.dirty = false
	}

	if s.zoom == 1.0 {
		return s.base
	}
	return Scale(s.base, s.zoom)
}

// Scale resamples src by the zoom factor with a Catmull-Rom kernel.
// Output dimensions round to the nearest pixel, never below 1×1.
func Scale(src *image.NRGBA, zoom float64) *image.NRGBA {
	w := max(1, int(math.Round(float64(src.Rect.Dx())*zoom)))
	h := max(1, int(math.Round(float64(src.Rect.Dy())*zoom)))

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func clampVectorSize(size int) int {
	if size < minVectorSize {
		return minVectorSize
	}
	if size > maxVectorSize {
		return maxVectorSize
	}
	return size
}
