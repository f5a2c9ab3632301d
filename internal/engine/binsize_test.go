package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestBin_ThreeSquares(t *testing.T) {
	b := NewBinSearch(true)
	res := b.BestBin([]model.Size{sz(50, 50), sz(50, 50), sz(50, 50)}, sz(200, 200), 0)

	require.True(t, res.Fits)
	assert.GreaterOrEqual(t, res.Size.Area(), uint64(7500))
	w, h := res.Size.W, res.Size.H
	assert.True(t, (w <= 150 && h <= 100) || (w <= 100 && h <= 150), "bin %dx%d larger than 150x100", w, h)
}

func TestBestBin_TooLarge(t *testing.T) {
	b := NewBinSearch(true)
	res := b.BestBin([]model.Size{sz(300, 300)}, sz(200, 200), 1)

	assert.False(t, res.Fits)
	assert.Equal(t, uint64(0), res.InsertedArea)
}

func TestBestBin_ReportsInsertedAreaOnFailure(t *testing.T) {
	b := NewBinSearch(false)
	order := []model.Size{sz(32, 32), sz(32, 32), sz(32, 32), sz(32, 32), sz(32, 32)}
	res := b.BestBin(order, sz(64, 64), 1)

	assert.False(t, res.Fits)
	assert.Equal(t, uint64(4*32*32), res.InsertedArea)
}

func TestBestBin_DiscardStepVariants(t *testing.T) {
	order := []model.Size{sz(30, 10), sz(10, 30), sz(20, 20), sz(5, 40)}
	for _, discard := range []int{-4, 0, 1, 8, 1000} {
		res := NewBinSearch(true).BestBin(order, sz(256, 256), discard)
		require.True(t, res.Fits, "discard step %d", discard)

		// The reported bin really holds the order.
		p := NewSplitPacker(newConfig(res.Size.W, res.Size.H, true))
		_, oks := insertAll(p, order)
		for i, ok := range oks {
			assert.True(t, ok, "discard step %d: input %d does not fit %+v", discard, i, res.Size)
		}
	}
}

func TestFindBestPacking_ThreeSquares(t *testing.T) {
	inputs := inputsOf(sz(50, 50), sz(50, 50), sz(50, 50))
	cfg := newConfig(200, 200, false)

	best, err := FindBestPacking(inputs, cfg, 0)
	require.NoError(t, err)

	assert.Empty(t, best.Unplaced)
	require.Len(t, best.Placed, 3)
	assert.GreaterOrEqual(t, best.Bin.Area(), uint64(7500))
	assert.LessOrEqual(t, best.Bin.Area(), uint64(15000))
	assert.True(t, best.Bin.Fits(best.Used))
	// Every ordering finds the same bin, so the last one tried is kept.
	assert.Equal(t, Orderings[len(Orderings)-1].Name, best.Ordering)

	binCfg := newConfig(best.Bin.W, best.Bin.H, false)
	requireValidPacking(t, binCfg, inputs, best.Placed)
}

func TestFindBestPacking_ReportsUnplaced(t *testing.T) {
	inputs := inputsOf(sz(32, 32), sz(32, 32), sz(32, 32), sz(32, 32), sz(32, 32))
	cfg := newConfig(64, 64, false)

	best, err := FindBestPacking(inputs, cfg, 1)
	require.NoError(t, err)

	assert.Equal(t, cfg.Bounds(), best.Bin)
	assert.Len(t, best.Placed, 4)
	assert.Len(t, best.Unplaced, 1)
	assert.Equal(t, sz(64, 64), best.Used)
}

func TestFindBestPacking_UsesFlipping(t *testing.T) {
	inputs := inputsOf(sz(100, 20))
	best, err := FindBestPacking(inputs, newConfig(50, 200, true), 1)
	require.NoError(t, err)

	require.Len(t, best.Placed, 1)
	assert.True(t, best.Placed[0].Rect.Flipped)
	assert.Empty(t, best.Unplaced)
}

func TestFindBestPacking_Errors(t *testing.T) {
	_, err := FindBestPacking(inputsOf(sz(0, 3)), model.DefaultPackerConfig(), 1)
	assert.ErrorIs(t, err, ErrEmptyRect)

	_, err = FindBestPackingWith(inputsOf(sz(3, 3)), model.DefaultPackerConfig(), 1, nil)
	assert.ErrorIs(t, err, ErrNoOrderFound)

	best, err := FindBestPacking[int](nil, model.DefaultPackerConfig(), 1)
	require.NoError(t, err)
	assert.Empty(t, best.Placed)
}

func TestSubSat(t *testing.T) {
	assert.Equal(t, uint32(0), subSat(3, 5))
	assert.Equal(t, uint32(0), subSat(5, 5))
	assert.Equal(t, uint32(2), subSat(5, 3))
}
