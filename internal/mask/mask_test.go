package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAddAndPopulation(t *testing.T) {
	m := New()
	assert.Equal(t, uint64(0), m.Population())

	m.Add(5)
	m.Add(2)
	m.Add(9)
	m.Add(5) // duplicate

	assert.Equal(t, uint64(3), m.Population())
}

func TestMaskIndicesAscending(t *testing.T) {
	m := New()
	for _, idx := range []uint32{7, 0, 3, 100000, 42} {
		m.Add(idx)
	}

	var got []uint32
	for idx := range m.Indices() {
		got = append(got, idx)
	}
	assert.Equal(t, []uint32{0, 3, 7, 42, 100000}, got)
}

func TestMaskIndicesEarlyStop(t *testing.T) {
	m := New()
	for i := uint32(0); i < 10; i++ {
		m.Add(i)
	}

	seen := 0
	for range m.Indices() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestMaskCovers(t *testing.T) {
	m := New()
	for i := uint32(0); i < 16; i++ {
		m.Add(i)
	}
	assert.True(t, m.Covers(16))
	assert.False(t, m.Covers(17))
	assert.True(t, New().Covers(0))
}
