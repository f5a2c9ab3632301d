package export

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderAtlas composes an atlas image. Sprites whose Source is a readable
// image are drawn from it, cropped to their opaque region when the sprite
// was trimmed and rotated clockwise when flipped. Other sprites are drawn
// as solid palette blocks carrying their label when it fits.
func RenderAtlas(atlas model.Atlas) *image.NRGBA {
	dst := imaging.New(int(atlas.Bounds.W), int(atlas.Bounds.H), color.NRGBA{})

	for i, p := range atlas.Placements {
		src := spriteImage(p)
		if src == nil {
			col := spriteColors[i%len(spriteColors)]
			block := imaging.New(int(p.Rect.W), int(p.Rect.H), color.NRGBA{R: uint8(col.R), G: uint8(col.G), B: uint8(col.B), A: 255})
			drawLabel(block, p.Sprite.Label)
			src = block
		}
		dst = imaging.Paste(dst, src, image.Pt(int(p.Rect.X), int(p.Rect.Y)))
	}
	return dst
}

// drawLabel writes label into the top left corner of img in a 7x13 bitmap
// font. Labels wider or taller than the image are skipped.
func drawLabel(img *image.NRGBA, label string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	width := d.MeasureString(label).Ceil()
	if label == "" || width+4 > img.Bounds().Dx() || face.Height+4 > img.Bounds().Dy() {
		return
	}
	d.Dot = fixed.P(2, 2+face.Ascent)
	d.DrawString(label)
}

// spriteImage loads the source image for a placement, or nil when there is
// none matching the sprite size.
func spriteImage(p model.Placement) image.Image {
	if p.Sprite.Source == "" {
		return nil
	}
	img, err := imaging.Open(p.Sprite.Source)
	if err != nil {
		return nil
	}

	want := image.Pt(int(p.Sprite.Width), int(p.Sprite.Height))
	if img.Bounds().Size() != want {
		img = imaging.Crop(img, importer.OpaqueBounds(img))
	}
	if img.Bounds().Size() != want {
		return nil
	}
	if p.Rect.Flipped {
		img = imaging.Rotate270(img)
	}
	return img
}

// ExportPreviews renders every atlas to dir as atlas_<n>.png and returns
// the written paths in atlas order.
func ExportPreviews(dir string, layout model.Layout) ([]string, error) {
	paths := make([]string, 0, len(layout.Atlases))
	for _, a := range layout.Atlases {
		if a.Bounds.IsEmpty() {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("atlas_%d.png", a.Index+1))
		if err := imaging.Save(RenderAtlas(a), path); err != nil {
			return paths, fmt.Errorf("saving atlas %d: %w", a.Index+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
