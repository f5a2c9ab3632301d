package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// binDimension selects which sides of the candidate bin a search phase varies.
type binDimension int

const (
	binBoth binDimension = iota
	binWidth
	binHeight
)

func (d binDimension) String() string {
	switch d {
	case binBoth:
		return "both"
	case binWidth:
		return "width"
	default:
		return "height"
	}
}

// BinResult is the outcome of a bin size search. When Fits is false no bin
// up to the starting one held every input, and InsertedArea reports how much
// area the last failed attempt managed to place.
type BinResult struct {
	Size         model.Size
	Fits         bool
	InsertedArea uint64
}

// BinSearch finds the smallest single atlas that holds a fixed sequence of
// rectangles using a split packer.
type BinSearch struct {
	packer *SplitPacker
}

// NewBinSearch creates a search whose packer may rotate inputs when
// allowFlipping is set.
func NewBinSearch(allowFlipping bool) *BinSearch {
	return &BinSearch{packer: NewSplitPacker(model.PackerConfig{AllowFlipping: allowFlipping})}
}

// BestBin binary-searches the bin size for order, which is packed as given.
// It first shrinks both sides together starting from half of start, then
// refines the width and finally the height.
//
// discardStep is the search precision: the search stops once the step is no
// larger than it. A value <= 0 searches down to a step of 1 and then keeps
// shrinking for -discardStep more successful attempts.
func (b *BinSearch) BestBin(order []model.Size, start model.Size, discardStep int) BinResult {
	best := b.search(order, start, discardStep, binBoth)
	if !best.Fits {
		return best
	}
	if r := b.search(order, best.Size, discardStep, binWidth); r.Fits {
		best.Size = r.Size
	}
	if r := b.search(order, best.Size, discardStep, binHeight); r.Fits {
		best.Size = r.Size
	}
	return best
}

func (b *BinSearch) search(order []model.Size, start model.Size, discardStep int, dim binDimension) BinResult {
	candidate := start
	tries := 0
	if discardStep <= 0 {
		tries = -discardStep
		discardStep = 1
	}

	var step uint32
	switch dim {
	case binBoth:
		candidate.W /= 2
		candidate.H /= 2
		step = candidate.W / 2
	case binWidth:
		candidate.W /= 2
		step = candidate.W / 2
	case binHeight:
		candidate.H /= 2
		step = candidate.H / 2
	}

	for {
		inserted, all := b.tryPack(order, candidate)

		if all {
			if int64(step) <= int64(discardStep) {
				if tries == 0 {
					Logger().Debug("bin search phase", "phase", dim, "fits", true, "w", candidate.W, "h", candidate.H)
					return BinResult{Size: candidate, Fits: true, InsertedArea: inserted}
				}
				tries--
			}
			switch dim {
			case binBoth:
				candidate.W = subSat(candidate.W, step)
				candidate.H = subSat(candidate.H, step)
			case binWidth:
				candidate.W = subSat(candidate.W, step)
			case binHeight:
				candidate.H = subSat(candidate.H, step)
			}
		} else {
			exceeded := false
			switch dim {
			case binBoth:
				candidate.W += step
				candidate.H += step
				exceeded = candidate.Area() > start.Area()
			case binWidth:
				candidate.W += step
				exceeded = candidate.W > start.W
			case binHeight:
				candidate.H += step
				exceeded = candidate.H > start.H
			}
			if exceeded {
				Logger().Debug("bin search phase", "phase", dim, "fits", false, "inserted_area", inserted)
				return BinResult{InsertedArea: inserted}
			}
		}

		step = max(1, step/2)
	}
}

// tryPack packs order into an empty bin of size bin and reports the placed
// area and whether everything fit.
func (b *BinSearch) tryPack(order []model.Size, bin model.Size) (uint64, bool) {
	b.packer.Reset(&bin)
	var inserted uint64
	for _, s := range order {
		if _, ok := b.packer.Insert(s.W, s.H); !ok {
			return inserted, false
		}
		inserted += s.Area()
	}
	return inserted, true
}

func subSat(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// BestPacking is a single atlas sized as tightly as the bin search could
// manage.
type BestPacking[K any] struct {
	Ordering string
	// Bin is the atlas size the search settled on.
	Bin model.Size
	// Used is the bounding box of the placed rectangles.
	Used     model.Size
	Placed   []model.RectOutput[K]
	Unplaced []model.RectInput[K]
}

// FindBestPacking runs the bin search for each of the Orderings, keeps the
// ordering with the smallest bin (later orderings win ties) and packs it.
//
// When no ordering fits cfg's bounds, the ordering that placed the most area
// is packed into the full bounds and the leftovers are returned in Unplaced.
func FindBestPacking[K any](inputs []model.RectInput[K], cfg model.PackerConfig, discardStep int) (BestPacking[K], error) {
	return FindBestPackingWith(inputs, cfg, discardStep, Orderings)
}

// FindBestPackingWith is FindBestPacking with a custom set of orderings.
func FindBestPackingWith[K any](inputs []model.RectInput[K], cfg model.PackerConfig, discardStep int, orderings []Ordering) (BestPacking[K], error) {
	for i, in := range inputs {
		if in.Size.IsEmpty() {
			return BestPacking[K]{}, fmt.Errorf("input %d (%dx%d): %w", i, in.Size.W, in.Size.H, ErrEmptyRect)
		}
	}
	if len(inputs) == 0 {
		return BestPacking[K]{}, nil
	}

	maxBin := cfg.Bounds()
	search := NewBinSearch(cfg.AllowFlipping)

	var (
		bestOrder     []model.RectInput[K]
		bestName      string
		bestBin       = maxBin
		bestInserted  uint64
		foundFullSize bool
	)

	for _, o := range orderings {
		order := Sorted(inputs, o)
		sizes := make([]model.Size, len(order))
		for i, in := range order {
			sizes[i] = in.Size
		}

		res := search.BestBin(sizes, maxBin, discardStep)
		switch {
		case res.Fits:
			if res.Size.Area() <= bestBin.Area() {
				bestOrder, bestName, bestBin = order, o.Name, res.Size
				foundFullSize = true
			}
		case !foundFullSize:
			// Remember the ordering that placed the most, in case none fit.
			if bestOrder == nil || res.InsertedArea > bestInserted {
				bestOrder, bestName, bestInserted = order, o.Name, res.InsertedArea
			}
		}
	}

	if bestOrder == nil {
		return BestPacking[K]{}, ErrNoOrderFound
	}

	result := BestPacking[K]{Ordering: bestName, Bin: bestBin}
	p := search.packer
	p.Reset(&bestBin)
	for _, in := range bestOrder {
		if r, ok := p.Insert(in.Size.W, in.Size.H); ok {
			result.Placed = append(result.Placed, model.RectOutput[K]{Rect: r, Key: in.Key})
		} else {
			result.Unplaced = append(result.Unplaced, in)
		}
	}
	result.Used = p.UsedArea()

	Logger().Info("best packing found", "ordering", bestName, "w", bestBin.W, "h", bestBin.H,
		"placed", len(result.Placed), "unplaced", len(result.Unplaced))
	return result, nil
}
