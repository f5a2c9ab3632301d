package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Optimizer turns a sprite list into a layout using the packing settings of
// an AppConfig.
type Optimizer struct {
	Settings model.AppConfig
}

func New(settings model.AppConfig) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize packs sprites into atlases. Sprites that can never fit an atlas
// in any permitted orientation are reported in Layout.Unplaced instead of
// failing the run.
//
// With FitToContent set the sprites go into a single split-packed atlas
// shrunk by the bin size search; anything that does not fit the configured
// bounds is reported as unplaced. Otherwise the configured strategy packs
// into as many full-size atlases as needed, with the genetic ordering
// search when it is enabled.
func (o *Optimizer) Optimize(sprites []model.Sprite) (model.Layout, error) {
	cfg := o.Settings.PackerConfig()
	strategy, err := ParseStrategy(o.Settings.Strategy)
	if err != nil {
		return model.Layout{Config: cfg}, err
	}

	var inputs []model.RectInput[model.Sprite]
	var unplaced []model.Sprite
	for _, in := range model.Inputs(sprites) {
		if !cfg.CanEverFit(in.Size) {
			unplaced = append(unplaced, in.Key)
			continue
		}
		inputs = append(inputs, in)
	}
	if len(unplaced) > 0 {
		Logger().Warn("sprites too large for atlas", "count", len(unplaced),
			"max_width", cfg.MaxWidth, "max_height", cfg.MaxHeight)
	}

	var layout model.Layout
	if o.Settings.FitToContent {
		layout, err = o.optimizeFitted(cfg, inputs)
	} else {
		layout, err = o.optimizeAtlases(cfg, strategy, inputs)
	}
	if err != nil {
		return model.Layout{Config: cfg}, err
	}

	layout.Unplaced = append(unplaced, layout.Unplaced...)
	return layout, nil
}

// optimizeAtlases packs inputs into fixed-size atlases.
func (o *Optimizer) optimizeAtlases(cfg model.PackerConfig, strategy Strategy, inputs []model.RectInput[model.Sprite]) (model.Layout, error) {
	p, err := NewPacker(strategy, cfg)
	if err != nil {
		return model.Layout{}, err
	}

	var trial Trial[model.Sprite]
	if o.Settings.Genetic.Enabled {
		trial, err = SearchOrdering(inputs, p, GeneticConfigFor(len(inputs), o.Settings.Genetic))
	} else {
		trial, err = PackBest(inputs, p, Orderings)
	}
	if err != nil {
		return model.Layout{}, fmt.Errorf("packing %d sprites with %s: %w", len(inputs), strategy, err)
	}

	return model.BuildLayout(cfg, trial.Outputs, cfg.Bounds()), nil
}

// optimizeFitted packs inputs into one atlas sized by the bin search.
func (o *Optimizer) optimizeFitted(cfg model.PackerConfig, inputs []model.RectInput[model.Sprite]) (model.Layout, error) {
	best, err := FindBestPacking(inputs, cfg, o.Settings.DiscardStep)
	if err != nil {
		return model.Layout{}, fmt.Errorf("fitting %d sprites: %w", len(inputs), err)
	}

	layout := model.BuildLayout(cfg, best.Placed, best.Bin)
	for _, in := range best.Unplaced {
		layout.Unplaced = append(layout.Unplaced, in.Key)
	}
	return layout, nil
}
