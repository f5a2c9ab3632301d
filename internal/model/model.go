package model

import (
	"github.com/google/uuid"
)

// Sprite is a named image region that has to be placed in an atlas.
type Sprite struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    uint32 `json:"width"`  // px
	Height   uint32 `json:"height"` // px
	Quantity int    `json:"quantity"`
	Source   string `json:"source,omitempty"` // File or drawing the sprite came from
}

func NewSprite(label string, w, h uint32, qty int) Sprite {
	return Sprite{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Size returns the sprite's dimensions.
func (s Sprite) Size() Size {
	return Size{W: s.Width, H: s.Height}
}

// Inputs expands sprites by quantity into packing requests keyed by sprite.
// Each copy keeps the sprite's ID and has Quantity 1.
func Inputs(sprites []Sprite) []RectInput[Sprite] {
	var inputs []RectInput[Sprite]
	for _, s := range sprites {
		for i := 0; i < s.Quantity; i++ {
			cp := s
			cp.Quantity = 1
			inputs = append(inputs, RectInput[Sprite]{Size: s.Size(), Key: cp})
		}
	}
	return inputs
}

// Placement is a single sprite placed in an atlas.
type Placement struct {
	Sprite Sprite     `json:"sprite"`
	Rect   PlacedRect `json:"rect"`
}

// Atlas is one fixed-size packing target with its placements.
type Atlas struct {
	Index      int         `json:"index"`
	Bounds     Size        `json:"bounds"`
	Placements []Placement `json:"placements"`
}

// UsedSize returns the bounding box of all placements.
func (a Atlas) UsedSize() Size {
	var s Size
	for _, p := range a.Placements {
		s.ExpandWith(p.Rect.Rect)
	}
	return s
}

// UsedArea returns the total pixel area covered by placements.
func (a Atlas) UsedArea() uint64 {
	var total uint64
	for _, p := range a.Placements {
		total += p.Rect.Area()
	}
	return total
}

// TotalArea returns the atlas area.
func (a Atlas) TotalArea() uint64 {
	return a.Bounds.Area()
}

// Efficiency returns the usage percentage.
func (a Atlas) Efficiency() float64 {
	ta := a.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(a.UsedArea()) / float64(ta) * 100.0
}

// Layout holds the full packing solution.
type Layout struct {
	Config   PackerConfig `json:"config"`
	Atlases  []Atlas      `json:"atlases"`
	Unplaced []Sprite     `json:"unplaced"`
}

// TotalEfficiency returns overall atlas usage percentage.
func (l Layout) TotalEfficiency() float64 {
	var usedArea, totalArea uint64
	for _, a := range l.Atlases {
		usedArea += a.UsedArea()
		totalArea += a.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return float64(usedArea) / float64(totalArea) * 100.0
}

// PlacedCount returns the number of placements across all atlases.
func (l Layout) PlacedCount() int {
	n := 0
	for _, a := range l.Atlases {
		n += len(a.Placements)
	}
	return n
}

// BuildLayout groups packer output by atlas index. Atlases are sized to
// bounds, or to their used bounding box when bounds is empty. Fitted
// layouts pass the bin the bin-size search settled on.
func BuildLayout(cfg PackerConfig, outputs []RectOutput[Sprite], bounds Size) Layout {
	layout := Layout{Config: cfg}
	for _, out := range outputs {
		for len(layout.Atlases) <= out.Atlas {
			layout.Atlases = append(layout.Atlases, Atlas{
				Index:  len(layout.Atlases),
				Bounds: bounds,
			})
		}
		a := &layout.Atlases[out.Atlas]
		a.Placements = append(a.Placements, Placement{Sprite: out.Key, Rect: out.Rect})
	}
	if bounds.IsEmpty() {
		for i := range layout.Atlases {
			layout.Atlases[i].Bounds = layout.Atlases[i].UsedSize()
		}
	}
	return layout
}

// Project ties everything together for save/load.
type Project struct {
	Name    string    `json:"name"`
	Sprites []Sprite  `json:"sprites"`
	Config  AppConfig `json:"config"`
	Layout  *Layout   `json:"layout,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:    "Untitled",
		Sprites: []Sprite{},
		Config:  DefaultAppConfig(),
	}
}
