package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Ordering is a named sort order for packing inputs. Compare follows the
// cmp.Compare convention.
type Ordering struct {
	Name    string
	Compare func(a, b model.Size) int
}

// Orderings are the heuristics tried by Pack, all largest first.
var Orderings = []Ordering{
	{Name: "area", Compare: func(a, b model.Size) int { return cmp.Compare(b.Area(), a.Area()) }},
	{Name: "perimeter", Compare: func(a, b model.Size) int { return cmp.Compare(b.Perimeter(), a.Perimeter()) }},
	{Name: "max_side", Compare: func(a, b model.Size) int { return cmp.Compare(b.MaxSide(), a.MaxSide()) }},
	{Name: "width", Compare: func(a, b model.Size) int { return cmp.Compare(b.W, a.W) }},
	{Name: "height", Compare: func(a, b model.Size) int { return cmp.Compare(b.H, a.H) }},
	{Name: "pathological", Compare: func(a, b model.Size) int { return cmp.Compare(b.PathologicalMult(), a.PathologicalMult()) }},
}

// Sorted returns a copy of inputs sorted by o. Equal inputs keep their
// relative order.
func Sorted[K any](inputs []model.RectInput[K], o Ordering) []model.RectInput[K] {
	sorted := slices.Clone(inputs)
	slices.SortStableFunc(sorted, func(a, b model.RectInput[K]) int {
		return o.Compare(a.Size, b.Size)
	})
	return sorted
}

// Trial is the outcome of packing one ordering.
type Trial[K any] struct {
	Ordering string
	Outputs  []model.RectOutput[K]
	// UsedArea sums the used bounding box area of every atlas.
	UsedArea uint64
	Atlases  int
}

// Pack places every input into as many atlases as needed, trying each of
// the Orderings and keeping the one with the smallest total used area.
// The first ordering wins ties. The caller's slice is not reordered.
//
// Output is grouped by atlas, atlas indices start at 0. An input that does
// not fit an empty atlas fails the whole call with ErrUnplaceable.
func Pack[K any](inputs []model.RectInput[K], p Packer) ([]model.RectOutput[K], error) {
	best, err := PackBest(inputs, p, Orderings)
	if err != nil {
		return nil, err
	}
	return best.Outputs, nil
}

// PackBest runs Pack with a custom set of orderings and returns the
// winning trial.
func PackBest[K any](inputs []model.RectInput[K], p Packer, orderings []Ordering) (Trial[K], error) {
	for i, in := range inputs {
		if in.Size.IsEmpty() {
			return Trial[K]{}, fmt.Errorf("input %d (%dx%d): %w", i, in.Size.W, in.Size.H, ErrEmptyRect)
		}
	}
	if len(inputs) == 0 {
		return Trial[K]{Outputs: []model.RectOutput[K]{}}, nil
	}

	best := Trial[K]{UsedArea: math.MaxUint64}
	found := false
	for _, o := range orderings {
		outputs, used, err := PackOrdered(Sorted(inputs, o), p)
		if err != nil {
			// Placement in an empty atlas does not depend on order.
			return Trial[K]{}, err
		}
		atlases := outputs[len(outputs)-1].Atlas + 1
		Logger().Debug("packing trial", "ordering", o.Name, "atlases", atlases, "used_area", used)

		if used < best.UsedArea {
			best = Trial[K]{Ordering: o.Name, Outputs: outputs, UsedArea: used, Atlases: atlases}
			found = true
		}
	}
	if !found {
		return Trial[K]{}, ErrNoOrderFound
	}

	Logger().Info("packing complete", "ordering", best.Ordering, "atlases", best.Atlases,
		"used_area", best.UsedArea, "inputs", len(inputs))
	return best, nil
}

// PackOrdered packs inputs in the given order, opening a new atlas whenever
// the current one is full. It returns the placements and the summed used
// area of all atlases.
func PackOrdered[K any](inputs []model.RectInput[K], p Packer) ([]model.RectOutput[K], uint64, error) {
	outputs := make([]model.RectOutput[K], 0, len(inputs))
	var total uint64
	atlas := 0
	inAtlas := 0

	p.Reset(nil)
	for i := 0; i < len(inputs); {
		in := inputs[i]
		r, ok := p.Insert(in.Size.W, in.Size.H)
		if ok {
			outputs = append(outputs, model.RectOutput[K]{Rect: r, Atlas: atlas, Key: in.Key})
			inAtlas++
			i++
			continue
		}
		if inAtlas == 0 {
			Logger().Warn("input does not fit an empty atlas", "w", in.Size.W, "h", in.Size.H)
			return nil, 0, fmt.Errorf("input %dx%d: %w", in.Size.W, in.Size.H, ErrUnplaceable)
		}

		// Close this atlas and retry the same input in a fresh one.
		total += p.UsedArea().Area()
		atlas++
		inAtlas = 0
		p.Reset(nil)
	}
	total += p.UsedArea().Area()

	return outputs, total, nil
}
