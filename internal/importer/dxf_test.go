package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func writeTestDXF(t *testing.T, build func(d *drawing.Drawing)) string {
	t.Helper()
	d := dxf.NewDrawing()
	build(d)
	path := filepath.Join(t.TempDir(), "shapes.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportDXF_PolylineAndChainedLines(t *testing.T) {
	path := writeTestDXF(t, func(d *drawing.Drawing) {
		_, err := d.LwPolyline(true, []float64{10, 10}, []float64{50, 10}, []float64{50, 35}, []float64{10, 35})
		require.NoError(t, err)

		// Square from four loose lines, out of order
		_, err = d.Line(100, 0, 0, 112, 0, 0)
		require.NoError(t, err)
		_, err = d.Line(100, 12, 0, 100, 0, 0)
		require.NoError(t, err)
		_, err = d.Line(112, 0, 0, 112, 12, 0)
		require.NoError(t, err)
		_, err = d.Line(112, 12, 0, 100, 12, 0)
		require.NoError(t, err)
	})

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Sprites, 2)

	assert.Equal(t, uint32(40), result.Sprites[0].Width)
	assert.Equal(t, uint32(25), result.Sprites[0].Height)
	assert.Equal(t, uint32(12), result.Sprites[1].Width)
	assert.Equal(t, uint32(12), result.Sprites[1].Height)
	assert.Equal(t, path, result.Sprites[0].Source)
	assert.Equal(t, "DXF Shape 1", result.Sprites[0].Label)
}

func TestImportDXF_OpenChainIsIgnored(t *testing.T) {
	path := writeTestDXF(t, func(d *drawing.Drawing) {
		_, err := d.Line(0, 0, 0, 10, 0, 0)
		require.NoError(t, err)
	})

	result := ImportDXF(path)
	assert.Empty(t, result.Sprites)
	assert.NotEmpty(t, result.Errors)
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/shapes.dxf")
	assert.NotEmpty(t, result.Errors)
}

func TestOutlineSize(t *testing.T) {
	w, h, err := outlineSize(outline{{0, 0}, {40.2, 0}, {40.2, 25}, {0, 25}})
	require.NoError(t, err)
	assert.Equal(t, uint32(41), w)
	assert.Equal(t, uint32(25), h)

	_, _, err = outlineSize(outline{{0, 0}, {5e9, 0}, {5e9, 10}, {0, 10}})
	assert.Error(t, err)
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{start: point{0, 0}, end: point{4, 0}},
		{start: point{4, 3}, end: point{4, 0}},
		{start: point{4, 3}, end: point{0, 0}},
		{start: point{10, 10}, end: point{11, 10}},
	}

	outlines := chainSegments(segs, 0.01)
	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 3)
	assert.InDelta(t, 6.0, outlines[0].area(), 1e-9)
}

func TestBulgeArcPoints_HalfCircle(t *testing.T) {
	// Bulge 1 is a half circle over the chord
	pts := bulgeArcPoints(point{0, 0}, point{10, 0}, 1, 16)
	lo, hi := pts.bounds()

	assert.InDelta(t, 0, lo.x, 1e-9)
	assert.InDelta(t, 10, hi.x, 1e-9)
	assert.InDelta(t, 5, hi.y-lo.y, 1e-9)
}
