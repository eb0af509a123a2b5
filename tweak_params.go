package tweakview

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidColor = errors.New("invalid color")

type Color struct {
	R, G, B uint8
}

// ParseColor accepts #rrggbb and #rgb, with or without the leading '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}

// FloatRange clamps to [Min, Max] and snaps to multiples of Step from Min.
type FloatRange struct {
	Min, Max, Step float32
}

func (r FloatRange) Apply(v float32) float32 {
	if math.IsNaN(float64(v)) {
		v = r.Min
	}
	v = mgl32.Clamp(v, r.Min, r.Max)
	if r.Step > 0 {
		n := math.Round(float64((v - r.Min) / r.Step))
		v = r.Min + float32(n)*r.Step
		v = mgl32.Clamp(v, r.Min, r.Max)
	}
	return v
}

// Fraction maps v into [0,1] across the range, for slider rendering.
func (r FloatRange) Fraction(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return mgl32.Clamp((v-r.Min)/(r.Max-r.Min), 0, 1)
}

func (r FloatRange) Lerp(f float32) float32 {
	return r.Min + mgl32.Clamp(f, 0, 1)*(r.Max-r.Min)
}

type ObjectParams struct {
	Position mgl32.Vec3
	Scale    float32
	// Color is only meaningful when HasColor is set (the cube).
	Color    Color
	HasColor bool
}

type ObjectParamSpec struct {
	Position FloatRange
	Scale    FloatRange
}

type SceneParams struct {
	BloomIntensity  float32
	GridSize        int
	GridDivisions   int
	AxesVisible     bool
	BackgroundColor Color
}

var (
	PositionRange = FloatRange{Min: -10, Max: 10, Step: 0.1}
	BloomRange    = FloatRange{Min: 0, Max: 10, Step: 0.1}
	GridRange     = FloatRange{Min: 1, Max: 100, Step: 1}
)

type objectEntry struct {
	params   ObjectParams
	spec     ObjectParamSpec
	revision uint64
}

// TweakParams holds every panel-editable value. Each object owns its entry;
// a write to one object never touches another's values or revision.
type TweakParams struct {
	objects       map[SelectableId]*objectEntry
	scene         SceneParams
	sceneRevision uint64
}

func DefaultTweakParams() *TweakParams {
	return &TweakParams{
		objects: map[SelectableId]*objectEntry{
			SelectHero: {
				params: ObjectParams{Position: mgl32.Vec3{2, 0, 0}, Scale: 2},
				spec:   ObjectParamSpec{Position: PositionRange, Scale: FloatRange{Min: 0.1, Max: 5, Step: 0.1}},
			},
			SelectTrump: {
				params: ObjectParams{Position: mgl32.Vec3{-4, 0, 0}, Scale: 0.2},
				spec:   ObjectParamSpec{Position: PositionRange, Scale: FloatRange{Min: 0.05, Max: 2, Step: 0.01}},
			},
			SelectCube: {
				params: ObjectParams{Position: mgl32.Vec3{-2, 0, 0}, Scale: 1, Color: MustParseColor("#ff69b4"), HasColor: true},
				spec:   ObjectParamSpec{Position: PositionRange, Scale: FloatRange{Min: 0.1, Max: 5, Step: 0.1}},
			},
		},
		scene: SceneParams{
			BloomIntensity:  2,
			GridSize:        20,
			GridDivisions:   20,
			AxesVisible:     true,
			BackgroundColor: MustParseColor("#222233"),
		},
	}
}

// Objects lists the ids with parameters, in panel order.
func (p *TweakParams) Objects() []SelectableId {
	return []SelectableId{SelectHero, SelectTrump, SelectCube}
}

func (p *TweakParams) Object(id SelectableId) (ObjectParams, bool) {
	e, ok := p.objects[id]
	if !ok {
		return ObjectParams{}, false
	}
	return e.params, true
}

func (p *TweakParams) Spec(id SelectableId) ObjectParamSpec {
	if e, ok := p.objects[id]; ok {
		return e.spec
	}
	return ObjectParamSpec{Position: PositionRange, Scale: FloatRange{Min: 0.01, Max: 100}}
}

// Revision increases every time the object's parameters are written.
func (p *TweakParams) Revision(id SelectableId) uint64 {
	if e, ok := p.objects[id]; ok {
		return e.revision
	}
	return 0
}

func (p *TweakParams) entry(id SelectableId) (*objectEntry, error) {
	e, ok := p.objects[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSelectable)
	}
	return e, nil
}

// SetPosition sets one axis (0..2) and returns the stored value.
func (p *TweakParams) SetPosition(id SelectableId, axis int, v float32) (float32, error) {
	e, err := p.entry(id)
	if err != nil {
		return 0, err
	}
	if axis < 0 || axis > 2 {
		return 0, fmt.Errorf("axis %d out of range", axis)
	}
	e.params.Position[axis] = e.spec.Position.Apply(v)
	e.revision++
	return e.params.Position[axis], nil
}

func (p *TweakParams) SetScale(id SelectableId, v float32) (float32, error) {
	e, err := p.entry(id)
	if err != nil {
		return 0, err
	}
	e.params.Scale = e.spec.Scale.Apply(v)
	e.revision++
	return e.params.Scale, nil
}

func (p *TweakParams) SetColor(id SelectableId, c Color) error {
	e, err := p.entry(id)
	if err != nil {
		return err
	}
	if !e.params.HasColor {
		return fmt.Errorf("%s has no color parameter", id)
	}
	e.params.Color = c
	e.revision++
	return nil
}

func (p *TweakParams) Scene() SceneParams {
	return p.scene
}

func (p *TweakParams) SceneRevision() uint64 {
	return p.sceneRevision
}

func (p *TweakParams) SetBloom(v float32) float32 {
	p.scene.BloomIntensity = BloomRange.Apply(v)
	p.sceneRevision++
	return p.scene.BloomIntensity
}

func (p *TweakParams) SetGridSize(v int) int {
	p.scene.GridSize = int(GridRange.Apply(float32(v)))
	p.sceneRevision++
	return p.scene.GridSize
}

func (p *TweakParams) SetGridDivisions(v int) int {
	p.scene.GridDivisions = int(GridRange.Apply(float32(v)))
	p.sceneRevision++
	return p.scene.GridDivisions
}

func (p *TweakParams) SetAxesVisible(v bool) {
	p.scene.AxesVisible = v
	p.sceneRevision++
}

func (p *TweakParams) SetBackground(c Color) {
	p.scene.BackgroundColor = c
	p.sceneRevision++
}
