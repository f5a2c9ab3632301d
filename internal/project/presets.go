package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// DefaultPresetPath returns the default file path for the preset store.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.toml")
}

// SavePresets writes the user presets to path.
func SavePresets(path string, store model.PresetStore) error {
	return writeFile(path, store)
}

// LoadPresets reads a preset store from path.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	var store model.PresetStore
	if err := readFile(path, &store); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []model.AtlasPreset{}
	}
	return store, nil
}
