package importer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// imageExtensions lists the formats the decoders registered by imaging read.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// ImportImages creates one sprite per image file in dir, sized to the image
// and labelled with the file name without extension. Files are taken in
// natural name order. With trim set, fully transparent borders are cut and
// the sprite is sized to the opaque region.
func ImportImages(dir string, trim bool) ImportResult {
	result := ImportResult{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read directory: %v", err))
		return result
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Sort(natural.StringSlice(paths))

	if len(paths) == 0 {
		result.Errors = append(result.Errors, "No image files found")
		return result
	}

	for _, path := range paths {
		w, h, err := imageSize(path, trim)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		if w == 0 || h == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Skipped fully transparent image", filepath.Base(path)))
			continue
		}

		label := normalizeLabel(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		sprite := model.NewSprite(label, uint32(w), uint32(h), 1)
		sprite.Source = path
		result.Sprites = append(result.Sprites, sprite)
	}

	return result
}

// imageSize returns an image's size, reading only the header unless the
// transparent border has to be measured.
func imageSize(path string, trim bool) (int, int, error) {
	if trim {
		img, err := imaging.Open(path)
		if err != nil {
			return 0, 0, err
		}
		r := OpaqueBounds(img)
		return r.Dx(), r.Dy(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// OpaqueBounds returns the smallest rectangle holding every pixel with
// non-zero alpha. A fully transparent image yields an empty rectangle.
func OpaqueBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}

	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
