package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// FileExtension is the extension of saved project files.
const FileExtension = ".atlaspack"

// SaveProject writes a project, including its last layout, as JSON.
func SaveProject(path string, proj model.Project) error {
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// LoadProject reads a project written by SaveProject.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	proj := model.NewProject()
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if proj.Sprites == nil {
		proj.Sprites = []model.Sprite{}
	}
	return proj, nil
}
