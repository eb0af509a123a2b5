package tweakview

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/gekko3d/tweakview/render/core"
)

var ErrNoMeshes = errors.New("no triangle meshes")

// GLBLoader flattens every triangle primitive reachable from the default scene
// into one mesh, baking node transforms in.
type GLBLoader struct{}

func (GLBLoader) Load(ctx context.Context, path string) (*core.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glb: %w", err)
	}
	return meshFromDocument(ctx, doc)
}

func meshFromDocument(ctx context.Context, doc *gltf.Document) (*core.Mesh, error) {
	out := &core.Mesh{}

	var roots []int
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil {
			scene = *doc.Scene
		}
		roots = doc.Scenes[scene].Nodes
	} else {
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var visit func(idx int, parent mgl32.Mat4, depth int) error
	visit = func(idx int, parent mgl32.Mat4, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if idx < 0 || idx >= len(doc.Nodes) || depth > 64 {
			return nil
		}
		node := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(node))

		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			for _, prim := range doc.Meshes[*node.Mesh].Primitives {
				part, err := readPrimitive(doc, prim)
				if err != nil {
					return err
				}
				if part != nil {
					out.Append(part, world)
				}
			}
		}
		for _, child := range node.Children {
			if err := visit(child, world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root, mgl32.Ident4(), 0); err != nil {
			return nil, err
		}
	}

	if len(out.Indices) == 0 {
		return nil, ErrNoMeshes
	}
	return out, nil
}

// readPrimitive returns nil for primitives that are not indexed or plain triangle lists.
func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*core.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	mesh := &core.Mesh{Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		mesh.Positions[i] = p
	}

	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		if len(normals) == len(positions) {
			mesh.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				mesh.Normals[i] = n
			}
		}
	}

	if prim.Indices != nil {
		mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	mesh.ComputeNormals()
	return mesh, nil
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	m := node.MatrixOrDefault()
	if m != identityMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}
