package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.AppConfig
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Layout        model.Layout
	AtlasesUsed   int
	UsedArea      uint64 // sum of used bounding boxes
	WastePercent  float64
	UnplacedCount int
	Err           error
}

// CompareScenarios packs the same sprites under each scenario and returns
// the results in scenario order. A failing scenario records its error and
// does not stop the others.
func CompareScenarios(scenarios []ComparisonScenario, sprites []model.Sprite) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		layout, err := New(scenario.Settings).Optimize(sprites)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		var used uint64
		for _, a := range layout.Atlases {
			used += a.UsedSize().Area()
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Layout:        layout,
			AtlasesUsed:   len(layout.Atlases),
			UsedArea:      used,
			WastePercent:  100.0 - layout.TotalEfficiency(),
			UnplacedCount: len(layout.Unplaced),
		})
	}

	return results
}

// BestComparison returns the index of the successful result that places the
// most sprites, then uses the fewest atlases, then the least used area.
// It returns -1 when every scenario failed.
func BestComparison(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		switch {
		case r.UnplacedCount != b.UnplacedCount:
			if r.UnplacedCount < b.UnplacedCount {
				best = i
			}
		case r.AtlasesUsed != b.AtlasesUsed:
			if r.AtlasesUsed < b.AtlasesUsed {
				best = i
			}
		case r.UsedArea < b.UsedArea:
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates comparison scenarios around the current
// settings: every other strategy, the opposite flipping mode and a fitted
// single atlas.
func BuildDefaultScenarios(base model.AppConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, s := range Strategies {
		if s.String() == base.Strategy {
			continue
		}
		alt := base
		alt.Strategy = s.String()
		alt.FitToContent = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Strategy %s", s),
			Settings: alt,
		})
	}

	flip := base
	flip.AllowFlipping = !base.AllowFlipping
	name := "Flipping Enabled"
	if base.AllowFlipping {
		name = "Flipping Disabled"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: flip})

	if !base.FitToContent {
		fitted := base
		fitted.FitToContent = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Fit To Content",
			Settings: fitted,
		})
	}

	return scenarios
}
