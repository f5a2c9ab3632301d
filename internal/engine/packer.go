package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Packer places rectangles into a single atlas.
//
// Insert never partially mutates state: when it reports false the packer is
// exactly as it was before the call.
type Packer interface {
	// Insert places a w x h rectangle, rotated if that is allowed and
	// helps. Zero-sized requests are rejected.
	Insert(w, h uint32) (model.PlacedRect, bool)
	// Reset clears all placements. A non-nil resize also changes the
	// atlas bounds for subsequent insertions.
	Reset(resize *model.Size)
	// UsedArea returns the bounding box of everything placed so far.
	UsedArea() model.Size
}

var (
	// ErrEmptyRect is returned when an input has a zero width or height.
	ErrEmptyRect = errors.New("rectangle has zero width or height")
	// ErrUnplaceable is returned when an input does not fit an empty atlas.
	ErrUnplaceable = errors.New("rectangle does not fit an empty atlas")
	// ErrNoOrderFound is returned when no ordering produced a usable packing.
	ErrNoOrderFound = errors.New("no order found")
	// ErrUnknownStrategy is returned by ParseStrategy for unknown names.
	ErrUnknownStrategy = errors.New("unknown packing strategy")
)

// Strategy selects one of the packing algorithms.
type Strategy int

const (
	StrategySkyline Strategy = iota // lowest bottom edge, narrowest segment
	StrategySplit                   // free rectangle list, first fit
	StrategyStrip                   // rows, no rotation
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{StrategySkyline, StrategySplit, StrategyStrip}

func (s Strategy) String() string {
	switch s {
	case StrategySkyline:
		return "skyline"
	case StrategySplit:
		return "split"
	case StrategyStrip:
		return "strip"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy returns the strategy with the given name (case-insensitive).
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// NewPacker creates an empty packer of the given strategy.
func NewPacker(s Strategy, cfg model.PackerConfig) (Packer, error) {
	switch s {
	case StrategySkyline:
		return NewSkylinePacker(cfg), nil
	case StrategySplit:
		return NewSplitPacker(cfg), nil
	case StrategyStrip:
		return NewStripPacker(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}
}
