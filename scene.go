package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of the viewer scene.
type SceneDef struct {
	Objects     []ObjectDef
	Lights      []LightDef
	Environment string
}

// ObjectDef defines a selectable object. An empty ModelPath means a procedural cube.
type ObjectDef struct {
	ID        SelectableId
	ModelPath string
	Spin      mgl32.Vec3
	Material  MaterialComponent
}

// LightDef defines a light instantiation.
type LightDef struct {
	Type      LightType
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Color     [3]float32
	Intensity float32
	Angle     float32
	Penumbra  float32
}

var white = [3]float32{1, 1, 1}

func DefaultSceneDef(heroPath, trumpPath string) SceneDef {
	neutral := MaterialComponent{Color: mgl32.Vec4{1, 1, 1, 1}, Roughness: 0.6, Metalness: 0.1}
	return SceneDef{
		Objects: []ObjectDef{
			{ID: SelectHero, ModelPath: heroPath, Material: neutral},
			{ID: SelectTrump, ModelPath: trumpPath, Material: neutral},
			{
				ID:       SelectCube,
				Spin:     mgl32.Vec3{0.01, 0.01, 0},
				Material: MaterialComponent{Roughness: 0.2, Metalness: 0.8},
			},
		},
		Lights: []LightDef{
			{Type: LightTypeAmbient, Color: white, Intensity: 0.4},
			{Type: LightTypeSpot, Position: mgl32.Vec3{10, 20, 10}, Color: white, Intensity: 2, Angle: 0.3, Penumbra: 1},
			{Type: LightTypePoint, Position: mgl32.Vec3{-10, -10, -10}, Color: white, Intensity: 1},
		},
		Environment: "sunset",
	}
}

// LoadScene spawns every object with its gizmo and every light. Object
// transforms start from the current tweak parameters.
func LoadScene(cmd *Commands, assets *AssetServer, params *TweakParams, scene *SceneDef) []SceneObject {
	objects := make([]SceneObject, 0, len(scene.Objects))
	for _, def := range scene.Objects {
		objects = append(objects, spawnObject(cmd, assets, params, def))
	}
	for _, light := range scene.Lights {
		spawnLight(cmd, light)
	}
	return objects
}

func spawnObject(cmd *Commands, assets *AssetServer, params *TweakParams, def ObjectDef) SceneObject {
	p, _ := params.Object(def.ID)
	transform := NewTransform(p.Position, p.Scale)
	material := def.Material
	if p.HasColor {
		material.Color = p.Color.Vec4()
	}

	var obj SceneObject
	var mesh AssetId
	eid := cmd.AddEntity()
	if def.ModelPath != "" {
		mesh = assets.LoadMesh(def.ModelPath)
		obj = NewAssetObject(def.ID, eid, mesh, def.ModelPath)
	} else {
		mesh = assets.CreateCubeMesh()
		obj = NewProceduralObject(def.ID, eid, mesh, &material)
	}

	comps := []any{
		&transform,
		&material,
		&MeshRendererComponent{Mesh: mesh},
		&ObjectComponent{Object: obj},
	}
	if def.Spin != (mgl32.Vec3{}) {
		comps = append(comps, &SpinComponent{Rate: def.Spin})
	}
	cmd.AddComponents(eid, comps...)

	gizmo := NewTransformGizmo(def.ID, eid)
	cmd.AddEntity(&gizmo)

	cmd.Logger().Debugf("Spawned %s (%s) as entity %d", def.ID, obj.Kind(), eid)
	return obj
}

func spawnLight(cmd *Commands, def LightDef) EntityId {
	return cmd.AddEntity(
		&TransformComponent{Position: def.Position, Scale: mgl32.Vec3{1, 1, 1}},
		&LightComponent{
			Type:      def.Type,
			Color:     def.Color,
			Intensity: def.Intensity,
			Target:    def.Target,
			Angle:     def.Angle,
			Penumbra:  def.Penumbra,
		},
	)
}
