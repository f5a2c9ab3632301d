package model

// Default atlas limits used when a config leaves them unset.
const (
	DefaultMaxWidth  = 1024
	DefaultMaxHeight = 1024
)

// PackerConfig bounds every atlas a packer produces.
type PackerConfig struct {
	MaxWidth      uint32 `json:"max_width" toml:"max_width"`
	MaxHeight     uint32 `json:"max_height" toml:"max_height"`
	AllowFlipping bool   `json:"allow_flipping" toml:"allow_flipping"` // rotate inputs 90 degrees when it helps
}

// DefaultPackerConfig returns a 1024x1024 config with flipping enabled.
func DefaultPackerConfig() PackerConfig {
	return PackerConfig{
		MaxWidth:      DefaultMaxWidth,
		MaxHeight:     DefaultMaxHeight,
		AllowFlipping: true,
	}
}

// Bounds returns the atlas size as a Size.
func (c PackerConfig) Bounds() Size {
	return Size{W: c.MaxWidth, H: c.MaxHeight}
}

// CanEverFit reports whether a rectangle of size s fits an empty atlas in
// at least one permitted orientation.
func (c PackerConfig) CanEverFit(s Size) bool {
	if s.IsEmpty() {
		return false
	}
	b := c.Bounds()
	if b.Fits(s) {
		return true
	}
	return c.AllowFlipping && b.Fits(s.Flip())
}

// RectInput is a packing request. Key is carried through to the output
// untouched so callers can map placements back to their assets.
type RectInput[K any] struct {
	Size Size `json:"size"`
	Key  K    `json:"key"`
}

// RectOutput is a placed request together with the atlas it landed in.
type RectOutput[K any] struct {
	Rect  PlacedRect `json:"rect"`
	Atlas int        `json:"atlas"`
	Key   K          `json:"key"`
}
