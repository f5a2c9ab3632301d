package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// SheetVersion is written into the metadata of every sprite sheet file.
const SheetVersion = "1.0"

// Frame locates one sprite inside an atlas image.
type Frame struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Source  string     `json:"source,omitempty"`
	Region  model.Rect `json:"region"`
	Size    model.Size `json:"sourceSize"`
	Rotated bool       `json:"rotated"`
}

// SheetAtlas describes one atlas image and its frames.
type SheetAtlas struct {
	Image  string     `json:"image"`
	Size   model.Size `json:"size"`
	Frames []Frame    `json:"frames"`
}

// Sheet is the sprite sheet metadata consumed by game engines.
type Sheet struct {
	Meta struct {
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Atlases []SheetAtlas `json:"atlases"`
}

// BuildSheet describes a layout. images names the image file of each atlas;
// missing names default to atlas_<n>.png.
func BuildSheet(layout model.Layout, images []string) Sheet {
	var sheet Sheet
	sheet.Meta.Version = SheetVersion
	sheet.Meta.Timestamp = time.Now().UTC().Format(time.RFC3339)

	for i, a := range layout.Atlases {
		name := fmt.Sprintf("atlas_%d.png", a.Index+1)
		if i < len(images) {
			name = images[i]
		}
		sa := SheetAtlas{Image: name, Size: a.Bounds, Frames: make([]Frame, 0, len(a.Placements))}
		for _, p := range a.Placements {
			sa.Frames = append(sa.Frames, Frame{
				ID:      p.Sprite.ID,
				Label:   p.Sprite.Label,
				Source:  p.Sprite.Source,
				Region:  p.Rect.Rect,
				Size:    p.Sprite.Size(),
				Rotated: p.Rect.Flipped,
			})
		}
		sheet.Atlases = append(sheet.Atlases, sa)
	}
	return sheet
}

// ExportSheetJSON writes BuildSheet's output as indented JSON.
func ExportSheetJSON(path string, layout model.Layout, images []string) error {
	data, err := json.MarshalIndent(BuildSheet(layout, images), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
