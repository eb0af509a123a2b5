package tweakview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

type SelectionModule struct{}

func (SelectionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ViewerState{})
	app.UseSystem(
		System(selectionPickSystem).
			InStage(PreUpdate),
	)
}

// activeCamera returns the first camera entity, or nil.
func activeCamera(cmd *Commands) *CameraComponent {
	var camera *CameraComponent
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		camera = cam
		return false
	})
	return camera
}

func viewportAspect(input *Input) float32 {
	if input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return 1
	}
	return float32(input.WindowWidth) / float32(input.WindowHeight)
}

// cursorRay is the world-space ray under the mouse cursor.
func cursorRay(cmd *Commands, input *Input) (core.Ray, bool) {
	camera := activeCamera(cmd)
	if camera == nil || input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return core.Ray{}, false
	}
	vp := camera.Camera.ViewProj(viewportAspect(input))
	return core.ScreenRay(vp, float32(input.MouseX), float32(input.MouseY),
		float32(input.WindowWidth), float32(input.WindowHeight)), true
}

// PickObject returns the clickable object nearest along the ray, or nil.
func PickObject(cmd *Commands, server *AssetServer, ray core.Ray) SceneObject {
	var best SceneObject
	minT := float32(math.MaxFloat32)

	MakeQuery2[ObjectComponent, TransformComponent](cmd).Map(func(eid EntityId, obj *ObjectComponent, tr *TransformComponent) bool {
		if !obj.Object.Clickable(server) {
			return true
		}
		asset, ok := server.Mesh(obj.Object.Mesh())
		if !ok {
			return true
		}
		bounds := asset.Bounds.Transform(tr.Model())
		if t, hit := ray.IntersectAABB(bounds); hit && t < minT {
			minT = t
			best = obj.Object
		}
		return true
	})
	return best
}

// selectionPickSystem selects the object under a fresh left click. Clicks on
// empty space keep the current selection.
func selectionPickSystem(cmd *Commands, input *Input, state *ViewerState, server *AssetServer) {
	if !input.JustPressed[MouseButtonLeft] || input.MouseConsumed {
		return
	}
	ray, ok := cursorRay(cmd, input)
	if !ok {
		return
	}

	if obj := PickObject(cmd, server, ray); obj != nil {
		obj.OnClick(state)
		cmd.Logger().Debugf("Selected %s", state.Selected)
	}
}

// ScreenPosition projects a world point with the active camera, for tests and overlays.
func ScreenPosition(cmd *Commands, input *Input, p mgl32.Vec3) (float32, float32, bool) {
	camera := activeCamera(cmd)
	if camera == nil {
		return 0, 0, false
	}
	vp := camera.Camera.ViewProj(viewportAspect(input))
	return core.WorldToScreen(vp, p, float32(input.WindowWidth), float32(input.WindowHeight))
}
