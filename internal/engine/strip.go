package engine

import (
	"github.com/piwi3910/AtlasPack/internal/model"
)

// StripPacker fills the atlas row by row, left to right. It never rotates
// and never revisits a finished row, which makes it fast and a good fit for
// glyphs of similar height.
type StripPacker struct {
	config    model.PackerConfig
	cursorX   uint32
	cursorY   uint32
	rowHeight uint32
	// overflowed is set once a request did not fit below the last row.
	overflowed bool
	used       model.Size
}

// NewStripPacker creates an empty strip packer bounded by cfg. The config's
// AllowFlipping is ignored.
func NewStripPacker(cfg model.PackerConfig) *StripPacker {
	return &StripPacker{config: cfg}
}

// Insert implements Packer. A failed insert only sets the overflow flag.
func (p *StripPacker) Insert(w, h uint32) (model.PlacedRect, bool) {
	if w == 0 || h == 0 || w > p.config.MaxWidth {
		return model.PlacedRect{}, false
	}

	x, y, rowHeight := p.cursorX, p.cursorY, p.rowHeight
	if uint64(x)+uint64(w) > uint64(p.config.MaxWidth) {
		x = 0
		y += rowHeight
		rowHeight = 0
	}
	rowHeight = max(rowHeight, h)

	if uint64(y)+uint64(rowHeight) > uint64(p.config.MaxHeight) {
		p.overflowed = true
		return model.PlacedRect{}, false
	}

	r := model.PlacedRect{Rect: model.NewRect(x, y, w, h)}
	p.cursorX, p.cursorY, p.rowHeight = x+w, y, rowHeight
	p.used.ExpandWith(r.Rect)
	return r, true
}

// Reset implements Packer.
func (p *StripPacker) Reset(resize *model.Size) {
	if resize != nil {
		p.config.MaxWidth = resize.W
		p.config.MaxHeight = resize.H
	}
	p.cursorX, p.cursorY, p.rowHeight = 0, 0, 0
	p.overflowed = false
	p.used = model.Size{}
}

// UsedArea implements Packer.
func (p *StripPacker) UsedArea() model.Size {
	return p.used
}

// Cursor returns the position the next rectangle would be tried at.
func (p *StripPacker) Cursor() (x, y uint32) {
	return p.cursorX, p.cursorY
}

// FillRatio returns the fraction of the atlas height consumed so far, or 1
// once a request has overflowed. A high ratio means it is time to start a
// new atlas.
func (p *StripPacker) FillRatio() float64 {
	if p.overflowed || p.config.MaxHeight == 0 {
		return 1.0
	}
	return float64(p.cursorY+p.rowHeight) / float64(p.config.MaxHeight)
}
