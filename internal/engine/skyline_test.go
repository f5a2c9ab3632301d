package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkyline_RotatesWhenOnlyFlippedFits(t *testing.T) {
	p := NewSkylinePacker(newConfig(10, 10, true))

	first, ok := p.Insert(8, 2)
	require.True(t, ok)
	assert.Equal(t, model.PlacedRect{Rect: model.NewRect(0, 0, 8, 2)}, first)

	second, ok := p.Insert(2, 8)
	require.True(t, ok)
	assert.True(t, second.Flipped)
	assert.Equal(t, model.NewRect(0, 2, 8, 2), second.Rect)
	assert.False(t, first.Rect.Intersects(second.Rect))
}

func TestSkyline_NoFlipKeepsOrientation(t *testing.T) {
	p := NewSkylinePacker(newConfig(10, 10, false))

	_, ok := p.Insert(8, 2)
	require.True(t, ok)

	r, ok := p.Insert(2, 8)
	require.True(t, ok)
	assert.False(t, r.Flipped)
	assert.Equal(t, model.NewRect(8, 0, 2, 8), r.Rect)
}

func TestSkyline_SegmentsCoverWidthAndMerge(t *testing.T) {
	p := NewSkylinePacker(newConfig(100, 100, false))

	_, ok := p.Insert(30, 10)
	require.True(t, ok)
	assert.Equal(t, []segment{{0, 10, 30}, {30, 0, 70}}, p.skylines)

	_, ok = p.Insert(70, 10)
	require.True(t, ok)
	assert.Equal(t, []segment{{0, 10, 100}}, p.skylines, "equal heights merge")

	_, ok = p.Insert(50, 5)
	require.True(t, ok)
	assert.Equal(t, []segment{{0, 15, 50}, {50, 10, 50}}, p.skylines)
}

func TestSkyline_InvariantsHoldUnderLoad(t *testing.T) {
	p := NewSkylinePacker(newConfig(300, 300, true))

	for _, s := range sizesOf(randomInputs(3, 200, 50)) {
		p.Insert(s.W, s.H)

		var total uint32
		for i, seg := range p.skylines {
			require.Equal(t, total, seg.x, "segments must be contiguous")
			total += seg.w
			if i > 0 {
				require.NotEqual(t, p.skylines[i-1].y, seg.y, "neighbours must be merged")
			}
		}
		require.Equal(t, uint32(300), total, "segments must cover the width")
	}
}

func TestSkyline_PrefersLowestBottom(t *testing.T) {
	p := NewSkylinePacker(newConfig(100, 100, false))

	_, ok := p.Insert(50, 40)
	require.True(t, ok)

	// The right half is still at y=0.
	r, ok := p.Insert(20, 20)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(50, 0, 20, 20), r.Rect)
}

func TestSkyline_TieBreaksOnNarrowestSegment(t *testing.T) {
	p := NewSkylinePacker(newConfig(100, 100, false))

	for _, s := range []model.Size{sz(70, 10), sz(10, 30), sz(20, 10)} {
		_, ok := p.Insert(s.W, s.H)
		require.True(t, ok)
	}
	require.Equal(t, []segment{{0, 10, 70}, {70, 30, 10}, {80, 10, 20}}, p.skylines)

	// Both y=10 segments give the same bottom edge; the 20 wide one wins.
	r, ok := p.Insert(15, 5)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(80, 10, 15, 5), r.Rect)
}

func TestSkyline_RejectsTooTall(t *testing.T) {
	p := NewSkylinePacker(newConfig(10, 10, true))

	_, ok := p.Insert(11, 11)
	assert.False(t, ok)

	_, ok = p.Insert(10, 10)
	require.True(t, ok)
	_, ok = p.Insert(1, 1)
	assert.False(t, ok)
}
