package gpu

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

// sceneUniforms matches Scene in mesh.wgsl. lines.wgsl reads only ViewProj.
type sceneUniforms struct {
	ViewProj   [16]float32
	CameraPos  [4]float32
	Sky        [4]float32
	Ground     [4]float32
	SpotPos    [4]float32
	SpotDir    [4]float32
	SpotParams [4]float32
	PointPos   [4]float32
	Bloom      [4]float32
}

// drawUniforms matches Draw in mesh.wgsl.
type drawUniforms struct {
	Model    [16]float32
	Color    [4]float32
	Material [4]float32
}

// packScene converts a frame to shader layout. The frame's OpenGL clip space
// is remapped to WebGPU depth here.
func packScene(f *core.Frame) sceneUniforms {
	l := f.Lights
	spotDir := l.Spot.Target.Sub(l.Spot.Position)
	if spotDir.Len() > 0 {
		spotDir = spotDir.Normalize()
	} else {
		spotDir = mgl32.Vec3{0, -1, 0}
	}
	outer := float32(math.Cos(float64(l.Spot.Angle)))
	inner := float32(math.Cos(float64(l.Spot.Angle * (1 - l.Spot.Penumbra))))

	return sceneUniforms{
		ViewProj:   core.ClipToWebGPU.Mul4(f.ViewProj),
		CameraPos:  vec4(f.CameraPos, 1),
		Sky:        vec4(l.SkyColor, l.Ambient),
		Ground:     vec4(l.GroundColor, 0),
		SpotPos:    vec4(l.Spot.Position, l.Spot.Intensity),
		SpotDir:    vec4(spotDir, outer),
		SpotParams: [4]float32{inner, 0, 0, 0},
		PointPos:   vec4(l.Point.Position, l.Point.Intensity),
		Bloom:      [4]float32{f.Bloom.Intensity, f.Bloom.Threshold, 0, 0},
	}
}

func packDraw(d *core.MeshDraw) drawUniforms {
	return drawUniforms{
		Model:    d.Model,
		Color:    d.Color,
		Material: [4]float32{d.Roughness, d.Metalness, 0, 0},
	}
}

func vec4(v mgl32.Vec3, w float32) [4]float32 {
	return [4]float32{v.X(), v.Y(), v.Z(), w}
}

// meshVertex matches VertexInput in mesh.wgsl.
type meshVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// interleave packs positions and normals into one vertex stream. Missing
// normals are left zero.
func interleave(m *core.Mesh) []meshVertex {
	out := make([]meshVertex, len(m.Positions))
	for i, p := range m.Positions {
		out[i].Position = p
		if i < len(m.Normals) {
			out[i].Normal = m.Normals[i]
		}
	}
	return out
}

// overlayPlacement matches Placement in overlay.wgsl.
type overlayPlacement struct {
	Rect     [4]float32
	Viewport [4]float32
}

func placeOverlay(o *core.Overlay, width, height uint32) overlayPlacement {
	b := o.Image.Bounds()
	return overlayPlacement{
		Rect:     [4]float32{float32(o.X), float32(o.Y), float32(b.Dx()), float32(b.Dy())},
		Viewport: [4]float32{float32(width), float32(height), 0, 0},
	}
}
