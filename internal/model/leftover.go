package model

import (
	"sort"
)

// Leftover is a rectangular region of an atlas that no placement touches
// and that is large enough to hold more sprites later.
type Leftover struct {
	AtlasIndex int  `json:"atlas_index"`
	Rect       Rect `json:"rect"`
}

// Area returns the leftover area in pixels.
func (l Leftover) Area() uint64 {
	return l.Rect.Area()
}

// MinLeftoverSide is the minimum width or height (px) for a free strip to be
// reported. Thinner strips are waste.
const MinLeftoverSide = 16

// DetectLeftovers reports the free strips to the right of and below the used
// bounding box of an atlas, largest first. An empty atlas is one leftover.
func DetectLeftovers(a Atlas) []Leftover {
	if a.Bounds.IsEmpty() {
		return nil
	}
	if len(a.Placements) == 0 {
		return []Leftover{{AtlasIndex: a.Index, Rect: NewRect(0, 0, a.Bounds.W, a.Bounds.H)}}
	}

	used := a.UsedSize()
	usedW := min(used.W, a.Bounds.W)
	usedH := min(used.H, a.Bounds.H)

	var leftovers []Leftover

	// Right strip spans the full atlas height
	if rightW := a.Bounds.W - usedW; rightW >= MinLeftoverSide && a.Bounds.H >= MinLeftoverSide {
		leftovers = append(leftovers, Leftover{
			AtlasIndex: a.Index,
			Rect:       NewRect(usedW, 0, rightW, a.Bounds.H),
		})
	}

	// Bottom strip stops at the right strip to avoid overlap
	if bottomH := a.Bounds.H - usedH; bottomH >= MinLeftoverSide && usedW >= MinLeftoverSide {
		leftovers = append(leftovers, Leftover{
			AtlasIndex: a.Index,
			Rect:       NewRect(0, usedH, usedW, bottomH),
		})
	}

	sort.Slice(leftovers, func(i, j int) bool {
		return leftovers[i].Area() > leftovers[j].Area()
	})
	return leftovers
}

// DetectAllLeftovers finds leftovers across every atlas of a layout.
func DetectAllLeftovers(l Layout) []Leftover {
	var all []Leftover
	for _, a := range l.Atlases {
		all = append(all, DetectLeftovers(a)...)
	}
	return all
}

// TotalLeftoverArea returns the summed area of leftovers.
func TotalLeftoverArea(leftovers []Leftover) uint64 {
	var total uint64
	for _, l := range leftovers {
		total += l.Area()
	}
	return total
}
