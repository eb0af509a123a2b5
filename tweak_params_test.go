package tweakview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ff69b4", Color{0xff, 0x69, 0xb4}, true},
		{"222233", Color{0x22, 0x22, 0x33}, true},
		{"#abc", Color{0xaa, 0xbb, 0xcc}, true},
		{" #FFFFFF ", Color{0xff, 0xff, 0xff}, true},
		{"#ff69b", Color{}, false},
		{"#gggggg", Color{}, false},
		{"", Color{}, false},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrInvalidColor, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c, tt.in)
	}
	assert.Equal(t, "#ff69b4", MustParseColor("#FF69B4").Hex())
	assert.Panics(t, func() { MustParseColor("nope") })
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, Color{R: 255}.Vec4())
}

func TestFloatRange_Apply(t *testing.T) {
	r := FloatRange{Min: -10, Max: 10, Step: 0.1}
	assert.Equal(t, float32(10), r.Apply(11))
	assert.Equal(t, float32(-10), r.Apply(-25))
	assert.InDelta(t, 2.1, r.Apply(2.07), 1e-5)
	assert.InDelta(t, 0, r.Apply(0.04), 1e-5)

	grid := FloatRange{Min: 1, Max: 100, Step: 1}
	assert.Equal(t, float32(1), grid.Apply(0))
	assert.Equal(t, float32(37), grid.Apply(36.6))

	assert.Equal(t, float32(0.5), r.Fraction(0))
	assert.Equal(t, float32(1), r.Fraction(50))
	assert.Equal(t, float32(-10), r.Lerp(-1))
}

func TestTweakParams_Defaults(t *testing.T) {
	p := DefaultTweakParams()

	hero, ok := p.Object(SelectHero)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, hero.Position)
	assert.Equal(t, float32(2), hero.Scale)
	assert.False(t, hero.HasColor)

	trump, _ := p.Object(SelectTrump)
	assert.Equal(t, mgl32.Vec3{-4, 0, 0}, trump.Position)
	assert.Equal(t, float32(0.2), trump.Scale)

	cube, _ := p.Object(SelectCube)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, cube.Position)
	assert.Equal(t, float32(1), cube.Scale)
	assert.Equal(t, "#ff69b4", cube.Color.Hex())

	s := p.Scene()
	assert.Equal(t, float32(2), s.BloomIntensity)
	assert.Equal(t, 20, s.GridSize)
	assert.Equal(t, 20, s.GridDivisions)
	assert.True(t, s.AxesVisible)
	assert.Equal(t, "#222233", s.BackgroundColor.Hex())

	_, ok = p.Object(SelectNone)
	assert.False(t, ok)
}

func TestTweakParams_ObjectsAreIndependent(t *testing.T) {
	p := DefaultTweakParams()
	before := map[SelectableId]ObjectParams{}
	for _, id := range p.Objects() {
		before[id], _ = p.Object(id)
	}

	v, err := p.SetPosition(SelectHero, 1, 3.33)
	require.NoError(t, err)
	assert.InDelta(t, 3.3, v, 1e-5)
	_, err = p.SetScale(SelectHero, 99)
	require.NoError(t, err)

	hero, _ := p.Object(SelectHero)
	assert.Equal(t, float32(5), hero.Scale, "clamped to the hero range")
	assert.Equal(t, uint64(2), p.Revision(SelectHero))

	for _, id := range []SelectableId{SelectTrump, SelectCube} {
		got, _ := p.Object(id)
		assert.Equal(t, before[id], got, id.String())
		assert.Zero(t, p.Revision(id), id.String())
	}
}

func TestTweakParams_Errors(t *testing.T) {
	p := DefaultTweakParams()
	_, err := p.SetScale(SelectNone, 1)
	assert.ErrorIs(t, err, ErrUnknownSelectable)
	_, err = p.SetPosition(SelectCube, 3, 1)
	assert.Error(t, err)
	assert.Error(t, p.SetColor(SelectHero, Color{}), "only the cube has a colour")
	require.NoError(t, p.SetColor(SelectCube, MustParseColor("#00ff00")))
}

func TestTweakParams_SceneSetters(t *testing.T) {
	p := DefaultTweakParams()
	assert.Equal(t, float32(0), p.SetBloom(-3))
	assert.Equal(t, float32(10), p.SetBloom(12))
	assert.Equal(t, 100, p.SetGridSize(1000))
	assert.Equal(t, 1, p.SetGridDivisions(0))
	p.SetAxesVisible(false)
	p.SetBackground(MustParseColor("#000000"))

	s := p.Scene()
	assert.False(t, s.AxesVisible)
	assert.Equal(t, "#000000", s.BackgroundColor.Hex())
	assert.Equal(t, uint64(6), p.SceneRevision())
}
