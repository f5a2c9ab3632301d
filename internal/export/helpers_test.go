package export

import (
	"fmt"
	"os"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func placement(id, label string, x, y, w, h uint32, flipped bool) model.Placement {
	sw, sh := w, h
	if flipped {
		sw, sh = h, w
	}
	return model.Placement{
		Sprite: model.Sprite{ID: id, Label: label, Width: sw, Height: sh, Quantity: 1},
		Rect:   model.PlacedRect{Rect: model.NewRect(x, y, w, h), Flipped: flipped},
	}
}

// buildTestLayout creates a two-atlas layout with one flipped sprite.
func buildTestLayout() model.Layout {
	return model.Layout{
		Config: model.PackerConfig{MaxWidth: 256, MaxHeight: 256, AllowFlipping: true},
		Atlases: []model.Atlas{
			{
				Index:  0,
				Bounds: model.NewSize(256, 256),
				Placements: []model.Placement{
					placement("s1", "hero", 0, 0, 64, 96, false),
					placement("s2", "tile", 64, 0, 32, 32, false),
					placement("s3", "banner", 0, 96, 40, 120, true),
				},
			},
			{
				Index:  1,
				Bounds: model.NewSize(128, 64),
				Placements: []model.Placement{
					placement("s4", "coin", 0, 0, 16, 16, false),
				},
			},
		},
	}
}

func manyPlacementsLayout(n int) model.Layout {
	placements := make([]model.Placement, n)
	for i := range placements {
		placements[i] = placement(fmt.Sprintf("s%d", i), fmt.Sprintf("Sprite %d", i+1),
			uint32(i%5)*20, uint32(i/5)*20, 18, 16, i%3 == 0)
	}
	return model.Layout{Atlases: []model.Atlas{{Bounds: model.NewSize(100, 200), Placements: placements}}}
}

func requireNonEmptyFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}
