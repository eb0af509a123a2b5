package tweakview

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelRaster_RedrawsOnlyOnChange(t *testing.T) {
	params := DefaultTweakParams()
	panel := NewTweakPanel(params)
	panel.Layout(1280)
	raster := NewPanelRaster()

	img, at := raster.Render(panel)
	require.NotNil(t, img)
	assert.Equal(t, image.Pt(1280-panelWidth-panelMargin, panelMargin), at)
	assert.Equal(t, panel.Bounds().Size(), img.Bounds().Size())
	assert.Equal(t, uint64(1), raster.Version)

	again, _ := raster.Render(panel)
	assert.Same(t, img, again)
	assert.Equal(t, uint64(1), raster.Version)

	_, err := params.SetScale(SelectHero, 3)
	require.NoError(t, err)
	changed, _ := raster.Render(panel)
	assert.NotSame(t, img, changed)
	assert.Equal(t, uint64(2), raster.Version)

	panel.Layout(800)
	_, at = raster.Render(panel)
	assert.Equal(t, 800-panelWidth-panelMargin, at.X)
	assert.Equal(t, uint64(3), raster.Version)
}

func TestPanelRaster_Collapsed(t *testing.T) {
	panel := NewTweakPanel(DefaultTweakParams())
	raster := NewPanelRaster()
	open, _ := raster.Render(panel)

	panel.Collapsed = true
	img, _ := raster.Render(panel)
	assert.Equal(t, panelTitleH, img.Bounds().Dy())
	assert.Greater(t, open.Bounds().Dy(), img.Bounds().Dy())
}

func TestPanelRaster_LabelImage(t *testing.T) {
	raster := NewPanelRaster()
	short := raster.LabelImage("ok")
	long := raster.LabelImage("Loading models")
	assert.Greater(t, long.Bounds().Dx(), short.Bounds().Dx())
	assert.Equal(t, panelRowH+4, short.Bounds().Dy())

	// the plate is opaque enough to read against any background
	_, _, _, a := short.At(0, 0).RGBA()
	assert.Equal(t, uint32(panelBg.A)*0x101, a)

	assert.Same(t, raster.loadingLabel(), raster.loadingLabel())
}

func TestTweakPanel_RowsFollowParams(t *testing.T) {
	panel := NewTweakPanel(DefaultTweakParams())
	for _, label := range []string{
		"Hero Scale", "Hero X", "Trump Z", "Cube Color", "Cube Scale",
		"Bloom", "Grid Size", "Grid Divisions", "Show Axes", "Background",
	} {
		assert.GreaterOrEqual(t, panel.RowIndex(label), 0, label)
	}
	assert.Equal(t, -1, panel.RowIndex("Hero Color"), "only the cube has a colour")
	assert.Equal(t, -1, panel.RowIndex("nope"))
}

func TestTweakPanel_HitTesting(t *testing.T) {
	panel := NewTweakPanel(DefaultTweakParams())
	panel.Layout(1280)
	b := panel.Bounds()

	assert.Equal(t, -2, panel.rowAt(b.Min.X+5, b.Min.Y+5))
	assert.Equal(t, 0, panel.rowAt(b.Min.X+5, b.Min.Y+panelTitleH+1))
	assert.Equal(t, -1, panel.rowAt(b.Min.X-1, b.Min.Y+5))

	row := panel.RowIndex("Bloom")
	x, y := panel.RowCenter(row)
	assert.Equal(t, row, panel.rowAt(int(x), int(y)))
	assert.Less(t, panel.SliderX(row, 0), panel.SliderX(row, 5))
}
