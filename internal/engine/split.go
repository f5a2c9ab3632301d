package engine

import (
	"slices"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// splits holds the free spaces left over after placing a rectangle in a
// free space. Only the first count entries are valid.
type splits struct {
	count  int
	spaces [2]model.Rect
}

// splitsFailed marks a request that does not fit the candidate space.
const splitsFailed = -1

func (s splits) valid() bool {
	return s.count >= 0
}

func (s splits) betterThan(o splits) bool {
	return s.count < o.count
}

// insertAndSplit places a w x h rectangle at the top-left of space and
// returns the remaining free spaces.
//
// Leftover area is concentrated into one big space spanning the whole of
// the axis with more room, plus one small space beside the rectangle.
func insertAndSplit(w, h uint32, space model.Rect) splits {
	if space.W < w || space.H < h {
		return splits{count: splitsFailed}
	}

	freeW := space.W - w
	freeH := space.H - h

	switch {
	case freeW == 0 && freeH == 0:
		return splits{}
	case freeH == 0:
		return splits{count: 1, spaces: [2]model.Rect{
			model.NewRect(space.X+w, space.Y, freeW, space.H),
		}}
	case freeW == 0:
		return splits{count: 1, spaces: [2]model.Rect{
			model.NewRect(space.X, space.Y+h, space.W, freeH),
		}}
	}

	if freeW > freeH {
		return splits{count: 2, spaces: [2]model.Rect{
			model.NewRect(space.X+w, space.Y, freeW, space.H),
			model.NewRect(space.X, space.Y+h, w, freeH),
		}}
	}
	return splits{count: 2, spaces: [2]model.Rect{
		model.NewRect(space.X, space.Y+h, space.W, freeH),
		model.NewRect(space.X+w, space.Y, freeW, h),
	}}
}

// SplitPacker keeps a list of free rectangles and carves each insertion out
// of the most recently created space that can hold it. Free spaces are not
// merged back together, so fragmentation is permanent until Reset.
type SplitPacker struct {
	config model.PackerConfig
	spaces []model.Rect
	used   model.Size
}

// NewSplitPacker creates an empty split packer bounded by cfg.
func NewSplitPacker(cfg model.PackerConfig) *SplitPacker {
	p := &SplitPacker{config: cfg}
	p.Reset(nil)
	return p
}

// Insert implements Packer.
func (p *SplitPacker) Insert(w, h uint32) (model.PlacedRect, bool) {
	if w == 0 || h == 0 {
		return model.PlacedRect{}, false
	}

	// Newest spaces first: small fragments get reused before big ones.
	for i := len(p.spaces) - 1; i >= 0; i-- {
		space := p.spaces[i]
		normal := insertAndSplit(w, h, space)

		if p.config.AllowFlipping {
			flipped := insertAndSplit(h, w, space)
			switch {
			case normal.valid() && flipped.valid():
				if flipped.betterThan(normal) {
					return p.accept(i, flipped, h, w, true), true
				}
				return p.accept(i, normal, w, h, false), true
			case normal.valid():
				return p.accept(i, normal, w, h, false), true
			case flipped.valid():
				return p.accept(i, flipped, h, w, true), true
			}
			continue
		}

		if normal.valid() {
			return p.accept(i, normal, w, h, false), true
		}
	}
	return model.PlacedRect{}, false
}

func (p *SplitPacker) accept(i int, s splits, w, h uint32, flipped bool) model.PlacedRect {
	space := p.spaces[i]
	p.spaces = slices.Delete(p.spaces, i, i+1)
	p.spaces = append(p.spaces, s.spaces[:s.count]...)

	r := model.PlacedRect{Rect: model.NewRect(space.X, space.Y, w, h), Flipped: flipped}
	p.used.ExpandWith(r.Rect)
	return r
}

// Reset implements Packer.
func (p *SplitPacker) Reset(resize *model.Size) {
	if resize != nil {
		p.config.MaxWidth = resize.W
		p.config.MaxHeight = resize.H
	}
	p.used = model.Size{}
	p.spaces = p.spaces[:0]
	if p.config.MaxWidth > 0 && p.config.MaxHeight > 0 {
		p.spaces = append(p.spaces, model.NewRect(0, 0, p.config.MaxWidth, p.config.MaxHeight))
	}
}

// UsedArea implements Packer.
func (p *SplitPacker) UsedArea() model.Size {
	return p.used
}

// Spaces returns a copy of the remaining free spaces, oldest first.
func (p *SplitPacker) Spaces() []model.Rect {
	return slices.Clone(p.spaces)
}
