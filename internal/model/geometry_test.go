package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize_DerivedMetrics(t *testing.T) {
	s := NewSize(40, 10)

	assert.Equal(t, uint64(400), s.Area())
	assert.Equal(t, uint64(100), s.Perimeter())
	assert.Equal(t, uint32(40), s.MaxSide())
	assert.Equal(t, uint32(10), s.MinSide())
	assert.InDelta(t, 1600.0, s.PathologicalMult(), 1e-9)
	assert.Equal(t, NewSize(10, 40), s.Flip())
	assert.False(t, s.IsEmpty())
	assert.True(t, NewSize(0, 5).IsEmpty())
}

func TestSize_AreaDoesNotOverflow(t *testing.T) {
	s := NewSize(1<<20, 1<<20)
	assert.Equal(t, uint64(1)<<40, s.Area())
}

func TestSize_ExpandWith(t *testing.T) {
	var s Size
	s.ExpandWith(NewRect(0, 0, 10, 20))
	s.ExpandWith(NewRect(30, 5, 10, 5))
	assert.Equal(t, NewSize(40, 20), s)
}

func TestRect_InclusiveEdges(t *testing.T) {
	r := NewRect(10, 20, 5, 3)
	assert.Equal(t, uint32(20), r.Top())
	assert.Equal(t, uint32(10), r.Left())
	assert.Equal(t, uint32(22), r.Bottom())
	assert.Equal(t, uint32(14), r.Right())
}

func TestRect_Contains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	assert.True(t, outer.Contains(NewRect(0, 0, 100, 100)))
	assert.True(t, outer.Contains(NewRect(10, 10, 20, 20)))
	assert.False(t, outer.Contains(NewRect(90, 90, 20, 5)))
	assert.False(t, NewRect(10, 10, 5, 5).Contains(outer))
}

func TestRect_Intersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	assert.True(t, a.Intersects(NewRect(9, 9, 5, 5)))
	assert.False(t, a.Intersects(NewRect(10, 0, 5, 5)), "touching edges do not overlap")
	assert.False(t, a.Intersects(NewRect(0, 10, 5, 5)))
}

func TestPlacedRect_Requested(t *testing.T) {
	p := PlacedRect{Rect: NewRect(0, 0, 8, 2), Flipped: true}
	assert.Equal(t, NewSize(2, 8), p.Requested())

	p.Flipped = false
	assert.Equal(t, NewSize(8, 2), p.Requested())
}

func TestPackerConfig_CanEverFit(t *testing.T) {
	cfg := PackerConfig{MaxWidth: 100, MaxHeight: 50, AllowFlipping: false}

	assert.True(t, cfg.CanEverFit(NewSize(100, 50)))
	assert.False(t, cfg.CanEverFit(NewSize(50, 100)))
	assert.False(t, cfg.CanEverFit(NewSize(0, 10)))

	cfg.AllowFlipping = true
	assert.True(t, cfg.CanEverFit(NewSize(50, 100)))
	assert.False(t, cfg.CanEverFit(NewSize(101, 1)))
}
