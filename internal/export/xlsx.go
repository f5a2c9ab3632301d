package export

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
	unplacedSheet   = "Unplaced"
)

// ExportXLSX writes a workbook with a per-atlas summary, every placement
// and, when any exist, the unplaced sprites.
func ExportXLSX(path string, layout model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Atlas", "Width", "Height", "Used Width", "Used Height", "Sprites", "Efficiency %"},
	}
	for _, a := range layout.Atlases {
		used := a.UsedSize()
		summary = append(summary, []interface{}{
			a.Index + 1, a.Bounds.W, a.Bounds.H, used.W, used.H, len(a.Placements), round1(a.Efficiency()),
		})
	}
	if err := writeRows(f, summarySheet, summary, header); err != nil {
		return err
	}

	if _, err := f.NewSheet(placementsSheet); err != nil {
		return err
	}
	placements := [][]interface{}{
		{"Atlas", "ID", "Label", "X", "Y", "Width", "Height", "Flipped", "Source"},
	}
	for _, a := range layout.Atlases {
		for _, p := range a.Placements {
			placements = append(placements, []interface{}{
				a.Index + 1, p.Sprite.ID, p.Sprite.Label, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, p.Rect.Flipped, p.Sprite.Source,
			})
		}
	}
	if err := writeRows(f, placementsSheet, placements, header); err != nil {
		return err
	}

	if len(layout.Unplaced) > 0 {
		if _, err := f.NewSheet(unplacedSheet); err != nil {
			return err
		}
		unplaced := [][]interface{}{{"ID", "Label", "Width", "Height", "Source"}}
		for _, s := range layout.Unplaced {
			unplaced = append(unplaced, []interface{}{s.ID, s.Label, s.Width, s.Height, s.Source})
		}
		if err := writeRows(f, unplacedSheet, unplaced, header); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeRows writes rows starting at A1 and bolds the first one.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
