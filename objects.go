package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ObjectKind int

const (
	KindAsset ObjectKind = iota
	KindProcedural
)

func (k ObjectKind) String() string {
	if k == KindProcedural {
		return "procedural"
	}
	return "asset"
}

// SceneObject is what selection, gizmos and the panel know about a selectable
// object. Handle is the entity carrying its TransformComponent.
type SceneObject interface {
	ID() SelectableId
	Kind() ObjectKind
	Handle() EntityId
	Mesh() AssetId
	OnClick(state *ViewerState)
	SetTransform(t *TransformComponent, p ObjectParams)
	Clickable(server *AssetServer) bool
}

// ObjectComponent binds a SceneObject to its handle entity. appliedRevision
// tracks the last TweakParams revision written into the transform.
type ObjectComponent struct {
	Object          SceneObject
	appliedRevision uint64
	applied         bool
}

// AssetObject is backed by a file loaded asynchronously. It cannot be clicked
// until the load has finished.
type AssetObject struct {
	id     SelectableId
	handle EntityId
	mesh   AssetId
	Path   string
}

func NewAssetObject(id SelectableId, handle EntityId, mesh AssetId, path string) *AssetObject {
	return &AssetObject{id: id, handle: handle, mesh: mesh, Path: path}
}

func (o *AssetObject) ID() SelectableId             { return o.id }
func (o *AssetObject) Kind() ObjectKind             { return KindAsset }
func (o *AssetObject) Handle() EntityId             { return o.handle }
func (o *AssetObject) Mesh() AssetId                { return o.mesh }
func (o *AssetObject) OnClick(state *ViewerState)   { state.Select(o.id) }
func (o *AssetObject) Clickable(s *AssetServer) bool { return s.State(o.mesh) == LoadReady }

func (o *AssetObject) SetTransform(t *TransformComponent, p ObjectParams) {
	t.Position = p.Position
	t.Scale = mgl32.Vec3{p.Scale, p.Scale, p.Scale}
}

// ProceduralObject is generated in memory and spins continuously.
type ProceduralObject struct {
	id       SelectableId
	handle   EntityId
	mesh     AssetId
	material *MaterialComponent
}

func NewProceduralObject(id SelectableId, handle EntityId, mesh AssetId, material *MaterialComponent) *ProceduralObject {
	return &ProceduralObject{id: id, handle: handle, mesh: mesh, material: material}
}

func (o *ProceduralObject) ID() SelectableId             { return o.id }
func (o *ProceduralObject) Kind() ObjectKind             { return KindProcedural }
func (o *ProceduralObject) Handle() EntityId             { return o.handle }
func (o *ProceduralObject) Mesh() AssetId                { return o.mesh }
func (o *ProceduralObject) OnClick(state *ViewerState)   { state.Select(o.id) }
func (o *ProceduralObject) Clickable(s *AssetServer) bool { return true }

func (o *ProceduralObject) SetTransform(t *TransformComponent, p ObjectParams) {
	t.Position = p.Position
	t.Scale = mgl32.Vec3{p.Scale, p.Scale, p.Scale}
	if p.HasColor && o.material != nil {
		o.material.Color = p.Color.Vec4()
	}
}
