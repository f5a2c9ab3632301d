package model

// Size is a width/height pair in pixels.
type Size struct {
	W uint32 `json:"w" toml:"w"`
	H uint32 `json:"h" toml:"h"`
}

// NewSize returns a Size of w x h.
func NewSize(w, h uint32) Size {
	return Size{W: w, H: h}
}

// Area returns w*h widened to 64 bits.
func (s Size) Area() uint64 {
	return uint64(s.W) * uint64(s.H)
}

// Perimeter returns 2w+2h widened to 64 bits.
func (s Size) Perimeter() uint64 {
	return 2*uint64(s.W) + 2*uint64(s.H)
}

// MaxSide returns the longer side.
func (s Size) MaxSide() uint32 {
	if s.H > s.W {
		return s.H
	}
	return s.W
}

// MinSide returns the shorter side.
func (s Size) MinSide() uint32 {
	if s.H < s.W {
		return s.H
	}
	return s.W
}

// PathologicalMult scores how awkward a rectangle is to pack: the aspect
// ratio multiplied by the area. Long thin rectangles score high.
func (s Size) PathologicalMult() float64 {
	return float64(s.MaxSide()) / float64(s.MinSide()) * float64(s.Area())
}

// Flip returns the size rotated by 90 degrees.
func (s Size) Flip() Size {
	return Size{W: s.H, H: s.W}
}

// IsEmpty reports whether either side is zero.
func (s Size) IsEmpty() bool {
	return s.W == 0 || s.H == 0
}

// Fits reports whether other fits inside s without rotation.
func (s Size) Fits(other Size) bool {
	return other.W <= s.W && other.H <= s.H
}

// ExpandWith grows s so that it covers r, treating s as a bounding box
// anchored at the origin.
func (s *Size) ExpandWith(r Rect) {
	s.W = max(s.W, r.X+r.W)
	s.H = max(s.H, r.Y+r.H)
}

// Rect is an axis-aligned rectangle with the origin at the top-left corner.
type Rect struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// NewRect returns a Rect at (x, y) of size w x h.
func NewRect(x, y, w, h uint32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Area returns w*h widened to 64 bits.
func (r Rect) Area() uint64 {
	return uint64(r.W) * uint64(r.H)
}

// Top returns the first row covered by the rectangle.
func (r Rect) Top() uint32 {
	return r.Y
}

// Left returns the first column covered by the rectangle.
func (r Rect) Left() uint32 {
	return r.X
}

// Bottom returns the last row covered by the rectangle (inclusive).
// Undefined for zero-height rectangles.
func (r Rect) Bottom() uint32 {
	return r.Y + r.H - 1
}

// Right returns the last column covered by the rectangle (inclusive).
// Undefined for zero-width rectangles.
func (r Rect) Right() uint32 {
	return r.X + r.W - 1
}

// Contains reports whether other lies fully inside r.
func (r Rect) Contains(other Rect) bool {
	return r.Left() <= other.Left() &&
		r.Right() >= other.Right() &&
		r.Top() <= other.Top() &&
		r.Bottom() >= other.Bottom()
}

// Intersects reports whether r and other share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// PlacedRect is the result of a successful insertion. When Flipped is set
// the rectangle's width and height are swapped relative to the request.
type PlacedRect struct {
	Rect
	Flipped bool `json:"flipped"`
}

// Requested returns the size the caller originally asked for.
func (p PlacedRect) Requested() Size {
	if p.Flipped {
		return p.Size().Flip()
	}
	return p.Size()
}
