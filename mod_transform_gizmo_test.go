package tweakview

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/tweakview/render/core"
)

func down(x, z float32) core.Ray {
	return core.Ray{Origin: mgl32.Vec3{x, 5, z}, Dir: mgl32.Vec3{0, -1, 0}}
}

func forward(x, y float32) core.Ray {
	return core.Ray{Origin: mgl32.Vec3{x, y, 5}, Dir: mgl32.Vec3{0, 0, -1}}
}

func TestTransformGizmo_Hit(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	g.Enabled = true

	assert.Equal(t, 0, g.hit(forward(1, 0), mgl32.Vec3{}))
	assert.Equal(t, 1, g.hit(forward(0, 1.5), mgl32.Vec3{}))
	assert.Equal(t, noAxis, g.hit(forward(3, 3), mgl32.Vec3{}))
	assert.Equal(t, noAxis, g.hit(forward(-1, 0), mgl32.Vec3{}), "handles only extend along the positive axis")

	g.Mode = ModeRotate
	assert.Equal(t, 1, g.hit(down(2, 0), mgl32.Vec3{}))
	assert.Equal(t, noAxis, g.hit(down(1, 0), mgl32.Vec3{}))
}

func TestTransformGizmo_TranslateDrag(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	tr := NewTransform(mgl32.Vec3{}, 1)

	g.begin(forward(1, 0), &tr, 0)
	require.True(t, g.Dragging())
	g.apply(forward(3, 0.4), &tr)
	assert.InDelta(t, 2, tr.Position.X(), 1e-5)
	assert.Equal(t, float32(0), tr.Position.Y(), "movement is constrained to the axis")

	g.apply(forward(0, 0), &tr)
	assert.InDelta(t, -1, tr.Position.X(), 1e-5)
}

func TestTransformGizmo_ScaleDrag(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	g.Mode = ModeScale
	tr := NewTransform(mgl32.Vec3{}, 1)

	g.begin(forward(1, 0), &tr, 0)
	g.apply(forward(2.5, 0), &tr)
	assert.InDelta(t, 2.5, tr.Scale.X(), 1e-5)
	assert.InDelta(t, 2.5, tr.Scale.Y(), 1e-5, "scale stays uniform")

	g.apply(forward(-3, 0), &tr)
	assert.InDelta(t, 0.01, tr.Scale.X(), 1e-6)
}

func TestTransformGizmo_RotateDrag(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	g.Mode = ModeRotate
	tr := NewTransform(mgl32.Vec3{}, 1)
	tr.Rotation = mgl32.Vec3{0.1, 0, 0}

	g.begin(down(2, 0), &tr, 1)
	g.apply(down(0, -2), &tr)

	got := tr.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-5)
	assert.InDelta(t, -1, got.Z(), 1e-5)
	assert.Equal(t, mgl32.Vec3{0.1, 0, 0}, tr.Rotation, "Euler angles are left alone")

	g.apply(down(0, 2), &tr)
	angle := 2 * math.Acos(float64(tr.Orientation.W))
	assert.InDelta(t, math.Pi/2, angle, 1e-4)
}

func TestTransformGizmo_SyncEndsDragOnDeselect(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	state := &ViewerState{}
	state.Select(SelectHero)
	state.SetMode(ModeScale)
	g.sync(state)
	assert.True(t, g.Enabled)
	assert.Equal(t, ModeScale, g.Mode)

	tr := NewTransform(mgl32.Vec3{}, 1)
	g.begin(forward(1, 0), &tr, 0)
	state.BeginTransform()

	state.Select(SelectCube)
	g.sync(state)
	assert.False(t, g.Enabled)
	assert.False(t, g.Dragging())
	assert.False(t, state.IsTransforming)
	assert.Nil(t, g.Lines(mgl32.Vec3{}))
}

func TestTransformGizmo_LinesPerMode(t *testing.T) {
	g := NewTransformGizmo(SelectHero, 1)
	g.Enabled = true
	for _, mode := range []TransformMode{ModeTranslate, ModeScale, ModeRotate} {
		g.Mode = mode
		assert.NotEmpty(t, g.Lines(mgl32.Vec3{1, 2, 3}), mode.String())
	}
}
