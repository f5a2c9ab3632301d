package model

import "math"

// AtlasEstimate holds an area-based estimate of how many atlases a sprite
// list needs. It is a lower bound: real packings waste space.
type AtlasEstimate struct {
	TotalSpriteArea    uint64  `json:"total_sprite_area"`    // Sum of sprite areas (px)
	AtlasArea          uint64  `json:"atlas_area"`           // Area of one atlas (px)
	AtlasesNeededExact float64 `json:"atlases_needed_exact"` // Exact fractional number of atlases
	AtlasesNeededMin   int     `json:"atlases_needed_min"`   // Ceiling of exact
	AtlasesWithWaste   int     `json:"atlases_with_waste"`   // Recommended count including waste factor
	WastePercent       float64 `json:"waste_percent"`        // Waste factor applied (e.g., 15 for 15%)

	// Sprites that fit no atlas in any orientation
	Oversized []Sprite `json:"oversized,omitempty"`
}

// EstimateAtlases computes how many atlases of cfg's size a sprite list needs.
// Sprites that can never fit are reported in Oversized and excluded from the area.
func EstimateAtlases(sprites []Sprite, cfg PackerConfig, wastePercent float64) AtlasEstimate {
	est := AtlasEstimate{WastePercent: wastePercent}
	for _, s := range sprites {
		if !cfg.CanEverFit(s.Size()) {
			est.Oversized = append(est.Oversized, s)
			continue
		}
		est.TotalSpriteArea += s.Size().Area() * uint64(s.Quantity)
	}

	est.AtlasArea = cfg.Bounds().Area()
	if est.AtlasArea == 0 {
		return est
	}

	est.AtlasesNeededExact = float64(est.TotalSpriteArea) / float64(est.AtlasArea)
	est.AtlasesNeededMin = int(math.Ceil(est.AtlasesNeededExact))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.AtlasesWithWaste = int(math.Ceil(est.AtlasesNeededExact * wasteFactor))
	if est.AtlasesWithWaste < est.AtlasesNeededMin {
		est.AtlasesWithWaste = est.AtlasesNeededMin
	}
	return est
}
