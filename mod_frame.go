package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

// RenderFrame is the draw list built each frame for the renderer.
type RenderFrame struct {
	Frame core.Frame
	// Number is the frame counter value the draw list was built for.
	Number uint64
}

type FrameModule struct{}

func (FrameModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&RenderFrame{})
	app.UseSystem(
		System(collectFrameSystem).
			InStage(PreRender),
	)
}

var (
	placeholderColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}
	failedColor      = mgl32.Vec4{1, 0.15, 0.15, 1}
)

func collectFrameSystem(
	cmd *Commands,
	input *Input,
	params *TweakParams,
	env *SceneEnvironment,
	server *AssetServer,
	panel *TweakPanel,
	raster *PanelRaster,
	out *RenderFrame,
) {
	camera := activeCamera(cmd)
	if camera == nil {
		return
	}
	scene := params.Scene()
	f := core.Frame{
		ViewProj:  camera.Camera.ViewProj(viewportAspect(input)),
		CameraPos: camera.Camera.Position,
		Clear:     env.Clear.Vec4(),
		Width:     input.WindowWidth,
		Height:    input.WindowHeight,
		Bloom:     core.Bloom{Intensity: scene.BloomIntensity, Threshold: env.BloomThreshold},
		Lights:    collectLights(cmd, env),
	}

	var lines, overlay core.LineList
	pending := 0

	MakeQuery3[MeshRendererComponent, TransformComponent, MaterialComponent](cmd).Map(func(eid EntityId, mr *MeshRendererComponent, tr *TransformComponent, mat *MaterialComponent) bool {
		asset, ok := server.Mesh(mr.Mesh)
		if !ok {
			return true
		}
		model := tr.Model()
		switch asset.State {
		case LoadReady:
			f.Meshes = append(f.Meshes, core.MeshDraw{
				Key:       string(mr.Mesh),
				Mesh:      asset.Mesh,
				Model:     model,
				Color:     mat.Color,
				Roughness: mat.Roughness,
				Metalness: mat.Metalness,
			})
		case LoadPending:
			pending++
			lines.Box(unitBox().Transform(model), placeholderColor)
		case LoadFailed:
			lines.Box(unitBox().Transform(model), failedColor)
		}
		return true
	})

	grid := GridLines(float32(scene.GridSize), scene.GridDivisions, env.GridCenter.Vec4(), env.GridColor.Vec4())
	lines = append(lines, grid...)
	if scene.AxesVisible {
		lines = append(lines, AxesLines(env.AxesLength)...)
	}

	MakeQuery1[TransformGizmo](cmd).Map(func(eid EntityId, g *TransformGizmo) bool {
		if tr := Get[TransformComponent](cmd, g.Object); tr != nil {
			overlay = append(overlay, g.Lines(tr.Position)...)
		}
		return true
	})

	f.Lines = lines
	f.OverlayLines = overlay

	img, at := raster.Render(panel)
	f.Overlays = append(f.Overlays, core.Overlay{Key: "panel", Image: img, X: at.X, Y: at.Y, Version: raster.Version})

	if pending > 0 {
		label := raster.loadingLabel()
		b := label.Bounds()
		f.Overlays = append(f.Overlays, core.Overlay{
			Key:     "loading",
			Image:   label,
			X:       (input.WindowWidth - b.Dx()) / 2,
			Y:       (input.WindowHeight - b.Dy()) / 2,
			Version: 1,
		})
	}

	out.Frame = f
	if t := Resource[Time](cmd.app); t != nil {
		out.Number = t.Frame
	}
}

// unitBox is the placeholder extent in object space.
func unitBox() core.AABB {
	return core.AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
}

func collectLights(cmd *Commands, env *SceneEnvironment) core.Lights {
	lights := core.Lights{
		SkyColor:    env.Preset.Sky,
		GroundColor: env.Preset.Ground,
	}
	MakeQuery2[LightComponent, TransformComponent](cmd).Map(func(eid EntityId, l *LightComponent, tr *TransformComponent) bool {
		switch l.Type {
		case LightTypeAmbient:
			lights.Ambient += l.Intensity
		case LightTypeSpot:
			lights.Spot = core.SpotLight{
				Position:  tr.Position,
				Target:    l.Target,
				Angle:     l.Angle,
				Penumbra:  l.Penumbra,
				Intensity: l.Intensity,
			}
		case LightTypePoint:
			lights.Point = core.PointLight{Position: tr.Position, Intensity: l.Intensity}
		}
		return true
	})
	return lights
}
