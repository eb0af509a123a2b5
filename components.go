package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

// TransformComponent places an entity in the world. Rotation holds XYZ Euler
// angles in radians so per-axis increments accumulate exactly; Orientation is
// an extra rotation applied on top of it by the rotate gizmo.
type TransformComponent struct {
	Position    mgl32.Vec3
	Rotation    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
}

func NewTransform(position mgl32.Vec3, scale float32) TransformComponent {
	return TransformComponent{
		Position:    position,
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{scale, scale, scale},
	}
}

// orientation treats the zero quaternion as identity.
func (t *TransformComponent) orientation() mgl32.Quat {
	if t.Orientation.W == 0 && t.Orientation.V.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return t.Orientation
}

func (t *TransformComponent) Model() mgl32.Mat4 {
	return core.Model(t.Position, t.orientation(), t.Rotation, t.Scale)
}

// UniformScale returns the X scale, which all viewer objects keep equal on every axis.
func (t *TransformComponent) UniformScale() float32 {
	return t.Scale.X()
}

// MaterialComponent is the surface description used by the mesh pass.
type MaterialComponent struct {
	Color     mgl32.Vec4
	Roughness float32
	Metalness float32
}

// MeshRendererComponent draws the mesh of an asset with the entity transform.
type MeshRendererComponent struct {
	Mesh AssetId
}
