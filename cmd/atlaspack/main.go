// AtlasPack packs sprite lists into texture atlases.
//
// Sprites come from a CSV or Excel sheet, a DXF drawing or a directory of
// images. The layout is written as any mix of PDF, QR labels, XLSX, DXF,
// PNG previews and sprite sheet JSON.
//
// Build:
//   go build -o atlaspack ./cmd/atlaspack
//
// Example:
//   atlaspack -input sprites/ -output out -strategy skyline -formats png,json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// options holds the parsed command line.
type options struct {
	configPath  string
	presetsPath string
	preset      string
	input       string
	outputDir   string
	formats     string
	trim        bool
	compare     bool
	saveProject string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
}

// run parses args, loads settings, imports sprites, packs them and writes
// the requested reports.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("atlaspack", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "settings file (.toml or .json)")
	fs.StringVar(&opts.presetsPath, "presets", project.DefaultPresetPath(), "user preset file")
	fs.StringVar(&opts.preset, "preset", "", "atlas preset name or id")
	fs.StringVar(&opts.input, "input", "", "sprite list (.csv, .xlsx, .dxf) or image directory")
	fs.StringVar(&opts.outputDir, "output", "output", "output directory")
	fs.StringVar(&opts.formats, "formats", "", "comma separated reports: pdf, labels, xlsx, dxf, png, json")
	fs.BoolVar(&opts.trim, "trim", false, "trim transparent borders of imported images")
	fs.BoolVar(&opts.compare, "compare", false, "compare strategies instead of writing reports")
	fs.StringVar(&opts.saveProject, "save", "", "save the project with its layout to this file")

	strategy := fs.String("strategy", "", "packing strategy: skyline, split or strip")
	width := fs.Uint("width", 0, "maximum atlas width")
	height := fs.Uint("height", 0, "maximum atlas height")
	flip := fs.Bool("flip", true, "allow 90 degree flips")
	fit := fs.Bool("fit", false, "shrink a single atlas to fit the sprites")
	discard := fs.Int("discard", 1, "bin search precision, <= 0 runs extra single pixel tries")
	genetic := fs.Bool("genetic", false, "search insertion orders with a genetic algorithm")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.input == "" {
		fs.Usage()
		return errors.New("missing -input")
	}
	if *width > math.MaxUint32 || *height > math.MaxUint32 {
		return fmt.Errorf("atlas size %dx%d exceeds %d", *width, *height, uint32(math.MaxUint32))
	}

	settings, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if opts.preset != "" {
		presets, err := project.LoadPresets(opts.presetsPath)
		if err != nil {
			return fmt.Errorf("loading presets: %w", err)
		}
		p, ok := presets.FindByName(opts.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", opts.preset)
		}
		settings.ApplyPreset(p)
	}

	// Explicit flags override the file and the preset
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			settings.Strategy = *strategy
		case "width":
			settings.MaxWidth = uint32(*width)
		case "height":
			settings.MaxHeight = uint32(*height)
		case "flip":
			settings.AllowFlipping = *flip
		case "fit":
			settings.FitToContent = *fit
		case "discard":
			settings.DiscardStep = *discard
		case "genetic":
			settings.Genetic.Enabled = *genetic
		case "log-level":
			settings.LogLevel = *logLevel
		case "formats":
			settings.ReportFormats = splitList(opts.formats)
		}
	})

	logger, err := newLogger(stderr, settings.LogLevel)
	if err != nil {
		return err
	}
	engine.SetLogger(logger)
	defer engine.SetLogger(nil)

	sprites, err := importSprites(logger, opts.input, opts.trim)
	if err != nil {
		return err
	}

	est := model.EstimateAtlases(sprites, settings.PackerConfig(), 15)
	logger.Info("imported sprites", "count", len(sprites), "area", est.TotalSpriteArea,
		"atlases_min", est.AtlasesNeededMin, "atlases_estimate", est.AtlasesWithWaste)

	if opts.compare {
		return printComparison(stdout, engine.CompareScenarios(engine.BuildDefaultScenarios(settings), sprites))
	}

	layout, err := engine.New(settings).Optimize(sprites)
	if err != nil {
		return err
	}
	printSummary(stdout, layout)

	if err := writeReports(logger, opts.outputDir, layout, settings); err != nil {
		return err
	}

	if opts.saveProject != "" {
		proj := model.NewProject()
		proj.Name = strings.TrimSuffix(filepath.Base(opts.saveProject), filepath.Ext(opts.saveProject))
		proj.Sprites = sprites
		proj.Config = settings
		proj.Layout = &layout
		if err := project.SaveProject(opts.saveProject, proj); err != nil {
			return err
		}
		project.AddRecentProject(&settings, opts.saveProject)
		if err := project.SaveAppConfig(opts.configPath, settings); err != nil {
			logger.Warn("could not update recent projects", "err", err)
		}
	}
	return nil
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// importSprites reads sprites from a file or image directory. Row problems
// are logged; an import without any sprite fails.
func importSprites(logger *slog.Logger, input string, trim bool) ([]model.Sprite, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	var result importer.ImportResult
	switch ext := strings.ToLower(filepath.Ext(input)); {
	case info.IsDir():
		result = importer.ImportImages(input, trim)
	case ext == ".csv" || ext == ".txt":
		result = importer.ImportCSV(input)
	case ext == ".xlsx" || ext == ".xlsm":
		result = importer.ImportExcel(input)
	case ext == ".dxf":
		result = importer.ImportDXF(input)
	default:
		return nil, fmt.Errorf("unsupported input %s", input)
	}

	for _, w := range result.Warnings {
		logger.Debug("import", "warning", w)
	}
	for _, e := range result.Errors {
		logger.Warn("import", "error", e)
	}
	if len(result.Sprites) == 0 {
		return nil, fmt.Errorf("no sprites imported from %s", input)
	}
	return result.Sprites, nil
}

// writeReports writes each configured report format into dir.
func writeReports(logger *slog.Logger, dir string, layout model.Layout, settings model.AppConfig) error {
	if len(layout.Atlases) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var images []string
	for _, format := range settings.ReportFormats {
		var err error
		switch format {
		case "pdf":
			err = export.ExportPDF(filepath.Join(dir, "atlases.pdf"), layout, settings)
		case "labels":
			err = export.ExportLabels(filepath.Join(dir, "labels.pdf"), layout)
		case "xlsx":
			err = export.ExportXLSX(filepath.Join(dir, "atlases.xlsx"), layout)
		case "dxf":
			err = export.ExportDXF(filepath.Join(dir, "atlases.dxf"), layout)
		case "png":
			var paths []string
			paths, err = export.ExportPreviews(dir, layout)
			for _, p := range paths {
				images = append(images, filepath.Base(p))
			}
		case "json":
			err = export.ExportSheetJSON(filepath.Join(dir, "atlases.json"), layout, images)
		default:
			err = fmt.Errorf("unknown report format %q", format)
		}
		if err != nil {
			return fmt.Errorf("writing %s report: %w", format, err)
		}
		logger.Info("wrote report", "format", format, "dir", dir)
	}
	return nil
}

func printSummary(w io.Writer, layout model.Layout) {
	for _, a := range layout.Atlases {
		used := a.UsedSize()
		fmt.Fprintf(w, "atlas %d: %dx%d, used %dx%d, %d sprites, %.1f%%\n",
			a.Index+1, a.Bounds.W, a.Bounds.H, used.W, used.H, len(a.Placements), a.Efficiency())
	}
	fmt.Fprintf(w, "placed %d, unplaced %d, efficiency %.1f%%\n",
		layout.PlacedCount(), len(layout.Unplaced), layout.TotalEfficiency())
}

func printComparison(w io.Writer, results []engine.ComparisonResult) error {
	best := engine.BestComparison(results)
	if best < 0 {
		return errors.New("every scenario failed")
	}
	for i, r := range results {
		mark := " "
		if i == best {
			mark = "*"
		}
		if r.Err != nil {
			fmt.Fprintf(w, "%s %-20s error: %v\n", mark, r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s %-20s atlases %d, used area %d, waste %.1f%%, unplaced %d\n",
			mark, r.Scenario.Name, r.AtlasesUsed, r.UsedArea, r.WastePercent, r.UnplacedCount)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
