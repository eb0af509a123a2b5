package tweakview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

var gizmoAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

var gizmoColors = [3]mgl32.Vec4{{1, 0.2, 0.2, 1}, {0.2, 1, 0.2, 1}, {0.3, 0.4, 1, 1}}

const noAxis = -1

// TransformGizmo manipulates one object's handle. Only the gizmo whose Target
// matches the selection is enabled; a disabled gizmo draws nothing and ignores input.
type TransformGizmo struct {
	Target  SelectableId
	Object  EntityId
	Enabled bool
	Mode    TransformMode
	Size    float32

	hover int
	drag  gizmoDrag
}

type gizmoDrag struct {
	active   bool
	axis     int
	mode     TransformMode
	startS   float32
	startVec mgl32.Vec3
	initial  TransformComponent
}

func NewTransformGizmo(target SelectableId, object EntityId) TransformGizmo {
	return TransformGizmo{Target: target, Object: object, Size: 1, hover: noAxis}
}

func (g *TransformGizmo) Dragging() bool {
	return g.drag.active
}

type TransformGizmoModule struct{}

func (TransformGizmoModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(gizmoInteractionSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(gizmoSyncSystem).
			InStage(PostUpdate),
	)
}

// sync pulls enablement and mode from the viewer state. Losing the selection
// mid-drag ends the drag.
func (g *TransformGizmo) sync(state *ViewerState) {
	g.Enabled = state.GizmoEnabled(g.Target)
	g.Mode = state.Mode
	if !g.Enabled {
		g.hover = noAxis
		if g.drag.active {
			g.drag.active = false
			state.EndTransform()
		}
	}
}

func gizmoSyncSystem(cmd *Commands, state *ViewerState, server *AssetServer) {
	MakeQuery1[TransformGizmo](cmd).Map(func(eid EntityId, g *TransformGizmo) bool {
		g.sync(state)
		if tr := Get[TransformComponent](cmd, g.Object); tr != nil {
			g.Size = gizmoSize(cmd, server, g.Object, tr)
		}
		return true
	})
}

// gizmoSize follows the object's world bounds, never below 1.
func gizmoSize(cmd *Commands, server *AssetServer, eid EntityId, tr *TransformComponent) float32 {
	mr := Get[MeshRendererComponent](cmd, eid)
	if mr == nil {
		return 1
	}
	asset, ok := server.Mesh(mr.Mesh)
	if !ok || asset.State != LoadReady {
		return 1
	}
	size := asset.Bounds.Transform(tr.Model()).Size()
	maxDim := max(size.X(), size.Y(), size.Z())
	return max(maxDim*0.5, 1)
}

func gizmoInteractionSystem(cmd *Commands, input *Input, state *ViewerState) {
	ray, ok := cursorRay(cmd, input)

	MakeQuery1[TransformGizmo](cmd).Map(func(eid EntityId, g *TransformGizmo) bool {
		g.sync(state)
		if !g.Enabled {
			return true
		}
		tr := Get[TransformComponent](cmd, g.Object)
		if tr == nil || !ok {
			return true
		}

		if g.drag.active {
			if !input.Pressed[MouseButtonLeft] {
				g.drag.active = false
				state.EndTransform()
				cmd.Logger().Debugf("Gizmo %s: drag ended", g.Target)
				return true
			}
			g.apply(ray, tr)
			input.MouseConsumed = true
			return true
		}

		g.hover = g.hit(ray, tr.Position)
		if input.JustPressed[MouseButtonLeft] && !input.MouseConsumed && g.hover != noAxis {
			g.begin(ray, tr, g.hover)
			state.BeginTransform()
			input.MouseConsumed = true
			cmd.Logger().Debugf("Gizmo %s: %s drag on axis %d", g.Target, g.Mode, g.hover)
		}
		return true
	})
}

// hit returns the axis under the ray, or noAxis. Nearest handle wins.
func (g *TransformGizmo) hit(ray core.Ray, pivot mgl32.Vec3) int {
	best := noAxis
	minT := float32(math.MaxFloat32)
	size := g.Size

	for axis, dir := range gizmoAxes {
		switch g.Mode {
		case ModeTranslate, ModeScale:
			t, s, d := core.ClosestPoints(ray.Origin, ray.Dir, pivot, dir)
			if t > 0 && s >= 0 && s <= 2.2*size && d < 0.25*size && t < minT {
				minT = t
				best = axis
			}
		case ModeRotate:
			t, ok := ray.IntersectPlane(pivot, dir)
			if !ok {
				continue
			}
			dist := ray.At(t).Sub(pivot).Len()
			if math.Abs(float64(dist-2*size)) < float64(0.25*size) && t < minT {
				minT = t
				best = axis
			}
		}
	}
	return best
}

func (g *TransformGizmo) begin(ray core.Ray, tr *TransformComponent, axis int) {
	g.drag = gizmoDrag{
		active:  true,
		axis:    axis,
		mode:    g.Mode,
		initial: *tr,
	}
	g.drag.initial.Orientation = tr.orientation()
	dir := gizmoAxes[axis]

	switch g.drag.mode {
	case ModeTranslate, ModeScale:
		_, s, _ := core.ClosestPoints(ray.Origin, ray.Dir, tr.Position, dir)
		g.drag.startS = s
	case ModeRotate:
		if t, ok := ray.IntersectPlane(tr.Position, dir); ok {
			g.drag.startVec = ray.At(t).Sub(tr.Position).Normalize()
		}
	}
}

// apply writes the dragged transform. Translation and scale are measured
// along the axis through the drag start position; rotation composes onto the
// orientation captured at drag start and leaves the Euler angles alone.
func (g *TransformGizmo) apply(ray core.Ray, tr *TransformComponent) {
	d := g.drag
	dir := gizmoAxes[d.axis]
	pivot := d.initial.Position

	switch d.mode {
	case ModeTranslate:
		if s, ok := axisParam(ray, pivot, dir); ok {
			tr.Position = pivot.Add(dir.Mul(s - d.startS))
		}
	case ModeScale:
		if math.Abs(float64(d.startS)) < 1e-3 {
			return
		}
		if s, ok := axisParam(ray, pivot, dir); ok {
			ratio := max(s/d.startS, 0.01)
			tr.Scale = d.initial.Scale.Mul(ratio)
		}
	case ModeRotate:
		t, ok := ray.IntersectPlane(pivot, dir)
		if !ok {
			return
		}
		current := ray.At(t).Sub(pivot).Normalize()
		cosTheta := mgl32.Clamp(current.Dot(d.startVec), -1, 1)
		angle := float32(math.Acos(float64(cosTheta)))
		if d.startVec.Cross(current).Dot(dir) < 0 {
			angle = -angle
		}
		tr.Orientation = mgl32.QuatRotate(angle, dir).Mul(d.initial.Orientation).Normalize()
	}
}

// axisParam is the line parameter of the point on the axis closest to the ray.
// Near-parallel rays are rejected.
func axisParam(ray core.Ray, origin, dir mgl32.Vec3) (float32, bool) {
	r := ray.Origin.Sub(origin)
	a := ray.Dir.Dot(ray.Dir)
	b := ray.Dir.Dot(dir)
	e := dir.Dot(dir)
	f := dir.Dot(r)
	det := a*e - b*b
	if det <= 0.01 {
		return 0, false
	}
	c := ray.Dir.Dot(r)
	return (a*f - b*c) / det, true
}

// Lines draws the handles for the current mode around pivot. A disabled gizmo
// draws nothing.
func (g *TransformGizmo) Lines(pivot mgl32.Vec3) core.LineList {
	if !g.Enabled {
		return nil
	}
	var lines core.LineList
	size := g.Size
	for axis, dir := range gizmoAxes {
		color := gizmoColors[axis]
		if axis == g.hover || (g.drag.active && axis == g.drag.axis) {
			color = mgl32.Vec4{1, 1, 0, 1}
		}
		switch g.Mode {
		case ModeTranslate:
			lines.Arrow(pivot, pivot.Add(dir.Mul(2*size)), 0.3*size, color)
		case ModeScale:
			tip := pivot.Add(dir.Mul(2 * size))
			lines.Segment(pivot, tip, color)
			h := 0.12 * size
			lines.Box(core.AABB{
				Min: tip.Sub(mgl32.Vec3{h, h, h}),
				Max: tip.Add(mgl32.Vec3{h, h, h}),
			}, color)
		case ModeRotate:
			lines.Circle(pivot, dir, 2*size, 48, color)
		}
	}
	return lines
}
