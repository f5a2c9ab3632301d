package engine

import (
	"math"
	"slices"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// segment is one horizontal step of the skyline: the columns [x, x+w) are
// filled down to row y.
type segment struct {
	x, y, w uint32
}

func (s segment) right() uint32 {
	return s.x + s.w - 1
}

// SkylinePacker tracks the upper outline of placed content as a list of
// segments sorted by x. The segments always cover the full atlas width and
// no two neighbours share the same height.
type SkylinePacker struct {
	config   model.PackerConfig
	skylines []segment
	used     model.Size
}

// NewSkylinePacker creates an empty skyline packer bounded by cfg.
func NewSkylinePacker(cfg model.PackerConfig) *SkylinePacker {
	p := &SkylinePacker{config: cfg}
	p.Reset(nil)
	return p
}

// canPut returns where a w x h rectangle would rest if its left edge is
// aligned with segment i, or false if it would leave the atlas.
func (p *SkylinePacker) canPut(i int, w, h uint32) (model.Rect, bool) {
	r := model.NewRect(p.skylines[i].x, 0, w, h)
	widthLeft := w
	for {
		r.Y = max(r.Y, p.skylines[i].y)
		if uint64(r.X)+uint64(r.W) > uint64(p.config.MaxWidth) ||
			uint64(r.Y)+uint64(r.H) > uint64(p.config.MaxHeight) {
			return model.Rect{}, false
		}
		if p.skylines[i].w >= widthLeft {
			return r, true
		}
		widthLeft -= p.skylines[i].w
		i++
		if i >= len(p.skylines) {
			return model.Rect{}, false
		}
	}
}

// findSkyline picks the placement with the lowest bottom edge, breaking
// ties with the narrowest starting segment. The normal orientation is
// tested first so it wins exact ties.
func (p *SkylinePacker) findSkyline(w, h uint32) (int, model.Rect, bool) {
	bottom := uint32(math.MaxUint32)
	width := uint32(math.MaxUint32)
	index := -1
	var best model.Rect

	consider := func(i int, r model.Rect) {
		segW := p.skylines[i].w
		if r.Bottom() < bottom || (r.Bottom() == bottom && segW < width) {
			bottom = r.Bottom()
			width = segW
			index = i
			best = r
		}
	}

	for i := range p.skylines {
		if r, ok := p.canPut(i, w, h); ok {
			consider(i, r)
		}
		if p.config.AllowFlipping {
			if r, ok := p.canPut(i, h, w); ok {
				consider(i, r)
			}
		}
	}

	return index, best, index >= 0
}

// split raises the skyline over r, which rests on segment index, and trims
// the segments it now covers.
func (p *SkylinePacker) split(index int, r model.Rect) {
	p.skylines = slices.Insert(p.skylines, index, segment{x: r.Left(), y: r.Bottom() + 1, w: r.W})

	i := index + 1
	for i < len(p.skylines) {
		prev := p.skylines[i-1]
		if p.skylines[i].x > prev.right() {
			break
		}
		shrink := prev.right() - p.skylines[i].x + 1
		if p.skylines[i].w <= shrink {
			p.skylines = slices.Delete(p.skylines, i, i+1)
			continue
		}
		p.skylines[i].x += shrink
		p.skylines[i].w -= shrink
		break
	}
}

// merge joins neighbouring segments at the same height.
func (p *SkylinePacker) merge() {
	for i := 1; i < len(p.skylines); {
		if p.skylines[i-1].y == p.skylines[i].y {
			p.skylines[i-1].w += p.skylines[i].w
			p.skylines = slices.Delete(p.skylines, i, i+1)
			continue
		}
		i++
	}
}

// Insert implements Packer.
func (p *SkylinePacker) Insert(w, h uint32) (model.PlacedRect, bool) {
	if w == 0 || h == 0 || len(p.skylines) == 0 {
		return model.PlacedRect{}, false
	}
	i, r, ok := p.findSkyline(w, h)
	if !ok {
		return model.PlacedRect{}, false
	}
	p.split(i, r)
	p.merge()
	p.used.ExpandWith(r)
	return model.PlacedRect{Rect: r, Flipped: r.W != w}, true
}

// Reset implements Packer.
func (p *SkylinePacker) Reset(resize *model.Size) {
	if resize != nil {
		p.config.MaxWidth = resize.W
		p.config.MaxHeight = resize.H
	}
	p.used = model.Size{}
	p.skylines = p.skylines[:0]
	if p.config.MaxWidth > 0 {
		p.skylines = append(p.skylines, segment{x: 0, y: 0, w: p.config.MaxWidth})
	}
}

// UsedArea implements Packer.
func (p *SkylinePacker) UsedArea() model.Size {
	return p.used
}
