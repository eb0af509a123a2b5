package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

// CreateCubeMesh registers a unit cube centred on the origin, with flat per-face normals.
func (server *AssetServer) CreateCubeMesh() AssetId {
	return server.CreateMesh(NewCubeMesh(1))
}

func NewCubeMesh(size float32) *core.Mesh {
	h := size / 2
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	mesh := &core.Mesh{}
	for _, f := range faces {
		base := uint32(len(mesh.Positions))
		center := f.normal.Mul(h)
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := center.Add(f.u.Mul(c[0] * h)).Add(f.v.Mul(c[1] * h))
			mesh.Positions = append(mesh.Positions, p)
			mesh.Normals = append(mesh.Normals, f.normal)
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// GridLines builds a square grid of the given extent in the XZ plane with
// divisions+1 lines per direction. The two centre lines use centerColor.
func GridLines(size float32, divisions int, centerColor, gridColor mgl32.Vec4) core.LineList {
	if divisions < 1 {
		divisions = 1
	}
	var lines core.LineList
	half := size / 2
	step := size / float32(divisions)
	center := divisions / 2
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		color := gridColor
		if i == center && divisions%2 == 0 {
			color = centerColor
		}
		lines.Segment(mgl32.Vec3{-half, 0, k}, mgl32.Vec3{half, 0, k}, color)
		lines.Segment(mgl32.Vec3{k, 0, -half}, mgl32.Vec3{k, 0, half}, color)
	}
	return lines
}

// AxesLines draws X, Y and Z from the origin in red, green and blue.
func AxesLines(length float32) core.LineList {
	var lines core.LineList
	lines.Segment(mgl32.Vec3{}, mgl32.Vec3{length, 0, 0}, mgl32.Vec4{1, 0, 0, 1})
	lines.Segment(mgl32.Vec3{}, mgl32.Vec3{0, length, 0}, mgl32.Vec4{0, 1, 0, 1})
	lines.Segment(mgl32.Vec3{}, mgl32.Vec3{0, 0, length}, mgl32.Vec4{0, 0, 1, 1})
	return lines
}
