package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Label,Width,Height,Qty\nhero,48,64,2\ncoin,16,16,8\n", ','},
		{"semicolon", "Label;Width;Height;Qty\nhero;48;64;2\ncoin;16;16;8\n", ';'},
		{"tab", "Label\tWidth\tHeight\tQty\nhero\t48\t64\t2\ncoin\t16\t16\t8\n", '\t'},
		{"pipe", "Label|Width|Height|Qty\nhero|48|64|2\ncoin|16|16|8\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Width", "Height", "Quantity", "Source"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3, Source: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"FILE", " h ", "W", "Frame", "Copies"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 3, Width: 2, Height: 1, Quantity: 4, Source: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"hero", "48", "64", "2"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity,Source\nhero,48,64,2,hero.png\ncoin,16,16,8,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(result.Sprites))
	}

	s := result.Sprites[0]
	if s.Label != "hero" || s.Width != 48 || s.Height != 64 || s.Quantity != 2 {
		t.Errorf("unexpected sprite %+v", s)
	}
	if s.Source != "hero.png" {
		t.Errorf("expected source 'hero.png', got '%s'", s.Source)
	}
	if s.ID == "" {
		t.Error("expected generated ID")
	}
	if result.Sprites[1].Quantity != 8 {
		t.Errorf("expected quantity 8, got %d", result.Sprites[1].Quantity)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("hero,48,64,2\ncoin,16,16,8\n"), ',')

	if len(result.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d (errors: %v)", len(result.Sprites), result.Errors)
	}
	if result.Sprites[0].Label != "hero" || result.Sprites[0].Width != 48 {
		t.Errorf("unexpected sprite %+v", result.Sprites[0])
	}
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name;W;H\nicon;32;32\n"), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sprites) != 1 || result.Sprites[0].Quantity != 1 {
		t.Errorf("expected one sprite with quantity 1, got %+v", result.Sprites)
	}
}

func TestImportCSVFromReader_FractionalSizesRoundUp(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Height\nglyph,10.2,7\n"), ',')

	if len(result.Sprites) != 1 {
		t.Fatalf("expected 1 sprite, got %d (errors: %v)", len(result.Sprites), result.Errors)
	}
	if result.Sprites[0].Width != 11 || result.Sprites[0].Height != 7 {
		t.Errorf("expected 11x7, got %dx%d", result.Sprites[0].Width, result.Sprites[0].Height)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "rounded up") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected rounding warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		wantErr string
	}{
		{"invalid width", "hero,abc,64,1", "Invalid width"},
		{"zero width", "hero,0,64,1", "Invalid width"},
		{"nan width", "hero,NaN,64,1", "Invalid width"},
		{"huge height", "hero,48,5000000000,1", "Invalid height"},
		{"negative height", "hero,48,-5,1", "Invalid height"},
		{"missing height", "hero,48,,1", "Missing height"},
		{"invalid quantity", "hero,48,64,many", "Invalid quantity"},
		{"zero quantity", "hero,48,64,0", "Quantity must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Label,Width,Height,Quantity\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')

			if len(result.Sprites) != 0 {
				t.Errorf("expected no sprites, got %d", len(result.Sprites))
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, result.Errors)
			}
			if len(result.Errors) == 1 && !strings.HasPrefix(result.Errors[0], "Line 2") {
				t.Errorf("expected error to name line 2, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Width,Height,Quantity\nhero,48,64,1\nbad,x,64,1\n\n,16,16,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(result.Sprites))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
	if result.Sprites[1].Label != "Sprite 2" {
		t.Errorf("expected generated label 'Sprite 2', got '%s'", result.Sprites[1].Label)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Quantity\nhero,48,1\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.csv")
	content := "Label;Width;Height;Quantity\nhero;48;64;2\ncoin;16;16;8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d (errors: %v)", len(result.Sprites), result.Errors)
	}
	if result.Sprites[0].Source != path {
		t.Errorf("expected source %q, got %q", path, result.Sprites[0].Source)
	}

	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileErrors(t *testing.T) {
	if result := ImportCSV("/nonexistent/path/file.csv"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if result := ImportCSV(path); len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprites.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Sprite", "Height", "Width", "Qty"},
		{"hero", 64, 48, 2},
		{"coin", 16, 16, 8},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(result.Sprites))
	}
	if got := result.Sprites[0].Size(); got != model.NewSize(48, 64) {
		t.Errorf("expected 48x64, got %v", got)
	}
	if !strings.HasPrefix(result.Warnings[0], "Detected header") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportExcel_InvalidRowReportsRow(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"hero", 48, 64, 1},
		{"bad", "wide", 64, 1},
	})

	result := ImportExcel(path)

	if len(result.Sprites) != 1 {
		t.Errorf("expected 1 sprite, got %d", len(result.Sprites))
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected error for row 2, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	if result := ImportExcel("/nonexistent/sprites.xlsx"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── Sorting Tests ─────────────────────────────────────────

func TestSortByLabel_Natural(t *testing.T) {
	sprites := []model.Sprite{
		model.NewSprite("frame10", 1, 1, 1),
		model.NewSprite("frame2", 1, 1, 1),
		model.NewSprite("frame1", 1, 1, 1),
	}
	SortByLabel(sprites)

	got := []string{sprites[0].Label, sprites[1].Label, sprites[2].Label}
	want := []string{"frame1", "frame2", "frame10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
