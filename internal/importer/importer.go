// Package importer provides CSV, Excel, DXF and image directory import of
// sprite lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Sprites  []model.Sprite
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
	Source   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "sprite", "sprite name", "id", "frame", "glyph", "item"},
	"width":    {"width", "w", "x", "cols"},
	"height":   {"height", "h", "y", "rows"},
	"quantity": {"quantity", "qty", "count", "num", "copies", "instances"},
	"source":   {"source", "file", "path", "image", "src"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (label, width, height, quantity, source) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Quantity: -1, Source: -1}
	roles := map[string]*int{
		"label":    &mapping.Label,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"quantity": &mapping.Quantity,
		"source":   &mapping.Source,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := roles[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3, Source: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parsePixels parses a positive pixel dimension. Fractional values are
// rounded up and reported as rounded.
func parsePixels(s string) (px uint32, rounded bool, err error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return ceilPixels(v)
}

// ceilPixels rounds a positive dimension up to whole pixels. NaN, values
// <= 0 and values beyond uint32 are out of range.
func ceilPixels(v float64) (px uint32, rounded bool, err error) {
	if math.IsNaN(v) || v <= 0 || v > math.MaxUint32 {
		return 0, false, fmt.Errorf("out of range")
	}
	c := math.Ceil(v)
	return uint32(c), c != v, nil
}

// parseRow extracts a Sprite from a row using the given column mapping.
// Returns the sprite, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, spriteCount int) (model.Sprite, string, []string) {
	var warnings []string

	label := normalizeLabel(getCell(row, mapping.Label))
	if label == "" {
		label = fmt.Sprintf("Sprite %d", spriteCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Sprite{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, rounded, err := parsePixels(widthStr)
	if err != nil {
		return model.Sprite{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}
	if rounded {
		warnings = append(warnings, fmt.Sprintf("%s: Width '%s' rounded up to %d px", rowLabel, widthStr, width))
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Sprite{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
	}
	height, rounded, err := parsePixels(heightStr)
	if err != nil {
		return model.Sprite{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
	}
	if rounded {
		warnings = append(warnings, fmt.Sprintf("%s: Height '%s' rounded up to %d px", rowLabel, heightStr, height))
	}

	// Quantity is optional and defaults to one copy
	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return model.Sprite{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if qty <= 0 {
			return model.Sprite{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
	}

	sprite := model.NewSprite(label, width, height, qty)
	sprite.Source = getCell(row, mapping.Source)
	return sprite, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports sprites from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	result = importFromRows(records, "Line", warnings)
	for i := range result.Sprites {
		if result.Sprites[i].Source == "" {
			result.Sprites[i].Source = path
		}
	}
	return result
}

// ImportCSVFromReader imports sprites from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports sprites from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric width cell
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		sprite, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Sprites))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Sprites = append(result.Sprites, sprite)
	}

	return result
}

// normalizeLabel trims a label and puts it in Unicode NFC form, so names
// typed in a spreadsheet match file names read back in decomposed form.
func normalizeLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SortByLabel sorts sprites in natural label order, so "frame2" comes
// before "frame10".
func SortByLabel(sprites []model.Sprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return natural.Less(sprites[i].Label, sprites[j].Label)
	})
}
