// Package mask tracks sets of pixel indices with roaring bitmaps.
//
// A pixel index is y*width + x, so ascending index order is exactly the
// row-major scan order the sampler depends on.
package mask

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a set of pixel indices on one canvas.
type Mask struct {
	rb *roaring.Bitmap
}

// New creates an empty mask.
func New() *Mask {
	return &Mask{rb: roaring.New()}
}

// Add inserts a pixel index.
func (m *Mask) Add(idx uint32) {
	m.rb.Add(idx)
}

// Population returns the number of set indices (the mask population).
func (m *Mask) Population() uint64 {
	return m.rb.GetCardinality()
}

// Covers reports whether every index in [0, total) is set.
func (m *Mask) Covers(total uint64) bool {
	return m.rb.GetCardinality() >= total
}

// Indices iterates set indices in ascending (row-major) order.
func (m *Mask) Indices() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
