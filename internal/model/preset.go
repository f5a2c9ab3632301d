package model

import (
	"time"

	"github.com/google/uuid"
)

// AtlasPreset is a reusable atlas configuration, typically matching the
// texture size limit of a target GPU or engine.
type AtlasPreset struct {
	ID            string `json:"id" toml:"id"`
	Name          string `json:"name" toml:"name"`
	Description   string `json:"description" toml:"description"`
	CreatedAt     string `json:"created_at" toml:"created_at"`
	Width         uint32 `json:"width" toml:"width"`
	Height        uint32 `json:"height" toml:"height"`
	AllowFlipping bool   `json:"allow_flipping" toml:"allow_flipping"`
	Strategy      string `json:"strategy,omitempty" toml:"strategy,omitempty"`
	BuiltIn       bool   `json:"built_in" toml:"-"`
}

// NewAtlasPreset creates a user preset.
func NewAtlasPreset(name, description string, w, h uint32, allowFlipping bool) AtlasPreset {
	return AtlasPreset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Description:   description,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Width:         w,
		Height:        h,
		AllowFlipping: allowFlipping,
	}
}

// PackerConfig returns the packer config the preset describes.
func (p AtlasPreset) PackerConfig() PackerConfig {
	return PackerConfig{MaxWidth: p.Width, MaxHeight: p.Height, AllowFlipping: p.AllowFlipping}
}

// BuiltInPresets lists common texture size limits.
var BuiltInPresets = []AtlasPreset{
	{ID: "webgl1", Name: "WebGL 1 (2048)", Description: "Safe limit for older WebGL and mobile GPUs", Width: 2048, Height: 2048, AllowFlipping: true, BuiltIn: true},
	{ID: "gles3", Name: "OpenGL ES 3 (4096)", Description: "Typical modern mobile GPU", Width: 4096, Height: 4096, AllowFlipping: true, BuiltIn: true},
	{ID: "desktop", Name: "Desktop (8192)", Description: "Desktop GPUs", Width: 8192, Height: 8192, AllowFlipping: true, BuiltIn: true},
	{ID: "default", Name: "Default (1024)", Description: "Small atlas for UI and icon sheets", Width: 1024, Height: 1024, AllowFlipping: true, BuiltIn: true},
	{ID: "glyphs", Name: "Glyph strip (512)", Description: "Font glyph cache, row packing without rotation", Width: 512, Height: 512, AllowFlipping: false, Strategy: "strip", BuiltIn: true},
}

// PresetStore holds a collection of user atlas presets.
type PresetStore struct {
	Presets []AtlasPreset `json:"presets" toml:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []AtlasPreset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p AtlasPreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *AtlasPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns the first preset with the given name. User presets
// shadow built-in ones.
func (ps *PresetStore) FindByName(name string) (AtlasPreset, bool) {
	for _, p := range ps.Presets {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltInPresets {
		if p.Name == name || p.ID == name {
			return p, true
		}
	}
	return AtlasPreset{}, false
}

// Names returns the names of all user and built-in presets.
func (ps *PresetStore) Names() []string {
	names := make([]string, 0, len(ps.Presets)+len(BuiltInPresets))
	for _, p := range ps.Presets {
		names = append(names, p.Name)
	}
	for _, p := range BuiltInPresets {
		names = append(names, p.Name)
	}
	return names
}
