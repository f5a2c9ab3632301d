package export

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// atlasGap is the horizontal space between atlases in the drawing.
const atlasGap = 32.0

// ExportDXF writes the layout as a DXF drawing, one drawing unit per pixel.
// Atlases sit side by side on the ATLAS layer, sprites on SPRITES and their
// labels on LABELS. The y axis is flipped so the drawing reads like the
// image, origin at the top left.
func ExportDXF(path string, layout model.Layout) error {
	if len(layout.Atlases) == 0 {
		return fmt.Errorf("no atlases to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{"ATLAS", color.White},
		{"SPRITES", color.Cyan},
		{"LABELS", color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return err
		}
	}

	offsetX := 0.0
	for _, a := range layout.Atlases {
		h := float64(a.Bounds.H)
		box := func(r model.Rect) [][]float64 {
			x0, x1 := offsetX+float64(r.X), offsetX+float64(r.X+r.W)
			y0, y1 := h-float64(r.Y), h-float64(r.Y+r.H)
			return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		}

		if err := d.ChangeLayer("ATLAS"); err != nil {
			return err
		}
		if _, err := d.LwPolyline(true, box(model.NewRect(0, 0, a.Bounds.W, a.Bounds.H))...); err != nil {
			return err
		}

		for _, p := range a.Placements {
			if err := d.ChangeLayer("SPRITES"); err != nil {
				return err
			}
			if _, err := d.LwPolyline(true, box(p.Rect.Rect)...); err != nil {
				return err
			}

			textH := min(float64(p.Rect.H)/4, 8)
			if err := d.ChangeLayer("LABELS"); err != nil {
				return err
			}
			tx := offsetX + float64(p.Rect.X) + 1
			ty := h - float64(p.Rect.Y) - textH - 1
			if _, err := d.Text(p.Sprite.Label, tx, ty, 0, textH); err != nil {
				return err
			}
		}

		offsetX += float64(a.Bounds.W) + atlasGap
	}

	return d.SaveAs(path)
}
