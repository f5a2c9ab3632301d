package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_SingleAtlas(t *testing.T) {
	opt := New(testSettings())
	sprites := []model.Sprite{model.NewSprite("A", 50, 30, 1)}

	layout, err := opt.Optimize(sprites)
	require.NoError(t, err)

	require.Len(t, layout.Atlases, 1)
	assert.Empty(t, layout.Unplaced)
	require.Len(t, layout.Atlases[0].Placements, 1)
	assert.Equal(t, "A", layout.Atlases[0].Placements[0].Sprite.Label)
	assert.Equal(t, model.NewSize(256, 256), layout.Atlases[0].Bounds)
}

func TestOptimize_OversizedSpritesAreUnplaced(t *testing.T) {
	opt := New(testSettings())
	sprites := []model.Sprite{
		model.NewSprite("Huge", 500, 300, 1),
		model.NewSprite("Small", 10, 10, 2),
	}

	layout, err := opt.Optimize(sprites)
	require.NoError(t, err)

	require.Len(t, layout.Unplaced, 1)
	assert.Equal(t, "Huge", layout.Unplaced[0].Label)
	assert.Equal(t, 2, layout.PlacedCount())
}

func TestOptimize_AllStrategies(t *testing.T) {
	for _, strategy := range Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			settings := testSettings()
			settings.Strategy = strategy.String()

			layout, err := New(settings).Optimize(testSprites())
			require.NoError(t, err)
			assert.Equal(t, 26, layout.PlacedCount())

			for _, a := range layout.Atlases {
				var rects []model.Rect
				for _, p := range a.Placements {
					assert.Equal(t, p.Sprite.Size(), p.Rect.Requested())
					rects = append(rects, p.Rect.Rect)
				}
				requireNoOverlap(t, rects)
			}
		})
	}
}

func TestOptimize_FitToContent(t *testing.T) {
	settings := testSettings()
	settings.FitToContent = true

	layout, err := New(settings).Optimize(testSprites())
	require.NoError(t, err)

	require.Len(t, layout.Atlases, 1)
	a := layout.Atlases[0]
	assert.True(t, a.Bounds.Fits(a.UsedSize()))
	assert.LessOrEqual(t, a.Bounds.W, uint32(256))
	assert.LessOrEqual(t, a.Bounds.H, uint32(256))
	assert.Equal(t, 26, layout.PlacedCount()+len(layout.Unplaced))

	// The atlas takes the searched bin, not the used bounding box
	best, err := FindBestPacking(model.Inputs(testSprites()), settings.PackerConfig(), settings.DiscardStep)
	require.NoError(t, err)
	assert.Equal(t, best.Bin, a.Bounds)
}

func TestOptimize_Genetic(t *testing.T) {
	settings := testSettings()
	settings.Genetic = model.GeneticSettings{Enabled: true, PopulationSize: 8, Generations: 4, Seed: 3}

	layout, err := New(settings).Optimize(testSprites())
	require.NoError(t, err)
	assert.Equal(t, 26, layout.PlacedCount())
}

func TestOptimize_UnknownStrategy(t *testing.T) {
	settings := testSettings()
	settings.Strategy = "guillotine"

	_, err := New(settings).Optimize(testSprites())
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestOptimize_Empty(t *testing.T) {
	layout, err := New(testSettings()).Optimize(nil)
	require.NoError(t, err)
	assert.Empty(t, layout.Atlases)
	assert.Empty(t, layout.Unplaced)
}
