package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/require"
)

func sz(w, h uint32) model.Size {
	return model.NewSize(w, h)
}

func newConfig(w, h uint32, flip bool) model.PackerConfig {
	return model.PackerConfig{MaxWidth: w, MaxHeight: h, AllowFlipping: flip}
}

// inputsOf keys each size by its position.
func inputsOf(sizes ...model.Size) []model.RectInput[int] {
	inputs := make([]model.RectInput[int], len(sizes))
	for i, s := range sizes {
		inputs[i] = model.RectInput[int]{Size: s, Key: i}
	}
	return inputs
}

// randomInputs returns n sizes in [1, maxSide] from a seeded generator.
func randomInputs(seed int64, n int, maxSide uint32) []model.RectInput[int] {
	rng := rand.New(rand.NewSource(seed))
	sizes := make([]model.Size, n)
	for i := range sizes {
		sizes[i] = sz(uint32(rng.Intn(int(maxSide)))+1, uint32(rng.Intn(int(maxSide)))+1)
	}
	return inputsOf(sizes...)
}

// requireValidPlacement checks a single placement against its request and
// the atlas bounds.
func requireValidPlacement(t *testing.T, cfg model.PackerConfig, req model.Size, r model.PlacedRect) {
	t.Helper()
	require.Equal(t, req, r.Requested(), "placed size must match the request, rect %+v", r)
	if r.Flipped {
		require.True(t, cfg.AllowFlipping, "flipped placement with flipping disabled")
	}
	bounds := model.NewRect(0, 0, cfg.MaxWidth, cfg.MaxHeight)
	require.True(t, bounds.Contains(r.Rect), "rect %+v outside %dx%d", r.Rect, cfg.MaxWidth, cfg.MaxHeight)
}

// requireNoOverlap checks that no two rectangles share a pixel.
func requireNoOverlap(t *testing.T, rects []model.Rect) {
	t.Helper()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			require.False(t, rects[i].Intersects(rects[j]), "rects %+v and %+v overlap", rects[i], rects[j])
		}
	}
}

// requireValidPacking checks driver output: every input placed exactly once
// with the right size, inside bounds, no overlap per atlas and atlas indices
// that never decrease.
func requireValidPacking(t *testing.T, cfg model.PackerConfig, inputs []model.RectInput[int], outputs []model.RectOutput[int]) {
	t.Helper()
	require.Len(t, outputs, len(inputs))

	seen := make(map[int]bool)
	byAtlas := make(map[int][]model.Rect)
	prevAtlas := 0
	for _, out := range outputs {
		require.False(t, seen[out.Key], "key %d placed twice", out.Key)
		seen[out.Key] = true

		requireValidPlacement(t, cfg, inputs[out.Key].Size, out.Rect)
		require.GreaterOrEqual(t, out.Atlas, prevAtlas, "atlas indices must not decrease")
		require.LessOrEqual(t, out.Atlas, prevAtlas+1, "atlas indices must not skip")
		prevAtlas = out.Atlas
		byAtlas[out.Atlas] = append(byAtlas[out.Atlas], out.Rect.Rect)
	}
	for _, rects := range byAtlas {
		requireNoOverlap(t, rects)
	}
}

// insertAll feeds sizes to p, recording successful placements.
func insertAll(p Packer, sizes []model.Size) ([]model.PlacedRect, []bool) {
	placed := make([]model.PlacedRect, len(sizes))
	oks := make([]bool, len(sizes))
	for i, s := range sizes {
		placed[i], oks[i] = p.Insert(s.W, s.H)
	}
	return placed, oks
}

func sizesOf(inputs []model.RectInput[int]) []model.Size {
	sizes := make([]model.Size, len(inputs))
	for i, in := range inputs {
		sizes[i] = in.Size
	}
	return sizes
}
