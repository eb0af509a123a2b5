package gpu

import (
	"image"
	"math"
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/tweakview/render/core"
)

func TestUniformLayoutSizes(t *testing.T) {
	// WGSL struct sizes: Scene 64 + 8*16, Draw 64 + 2*16, Placement 2*16.
	assert.Equal(t, uintptr(192), unsafe.Sizeof(sceneUniforms{}))
	assert.Equal(t, uintptr(96), unsafe.Sizeof(drawUniforms{}))
	assert.Equal(t, uintptr(32), unsafe.Sizeof(overlayPlacement{}))
	assert.Equal(t, uintptr(24), unsafe.Sizeof(meshVertex{}))
	assert.Equal(t, uintptr(28), unsafe.Sizeof(core.LineVertex{}))
}

func TestPackSceneLights(t *testing.T) {
	f := &core.Frame{
		ViewProj:  mgl32.Ident4(),
		CameraPos: mgl32.Vec3{0, 2, 10},
		Lights: core.Lights{
			Ambient:     0.4,
			SkyColor:    mgl32.Vec3{1, 0.5, 0.25},
			GroundColor: mgl32.Vec3{0.1, 0.1, 0.1},
			Spot: core.SpotLight{
				Position:  mgl32.Vec3{0, 10, 0},
				Angle:     0.3,
				Penumbra:  1,
				Intensity: 2,
			},
			Point: core.PointLight{Position: mgl32.Vec3{-10, -10, -10}, Intensity: 1},
		},
		Bloom: core.Bloom{Intensity: 2, Threshold: 0.2},
	}
	u := packScene(f)

	assert.Equal(t, [4]float32{0, 2, 10, 1}, u.CameraPos)
	assert.Equal(t, float32(0.4), u.Sky[3])
	assert.Equal(t, [4]float32{0, 10, 0, 2}, u.SpotPos)
	assert.InDelta(t, -1, u.SpotDir[1], 1e-6, "spot aims at its target")
	assert.InDelta(t, math.Cos(0.3), u.SpotDir[3], 1e-6)
	assert.InDelta(t, 1, u.SpotParams[0], 1e-6, "full penumbra fades from the axis")
	assert.Equal(t, [4]float32{-10, -10, -10, 1}, u.PointPos)
	assert.Equal(t, [4]float32{2, 0.2, 0, 0}, u.Bloom)

	// depth is remapped from [-1,1] to [0,1]
	vp := mgl32.Mat4(u.ViewProj)
	near := vp.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := vp.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, 0, near.Z(), 1e-6)
	assert.InDelta(t, 1, far.Z(), 1e-6)
}

func TestPackSceneZeroBloom(t *testing.T) {
	f := &core.Frame{
		ViewProj: mgl32.Ident4(),
		Lights:   core.Lights{Ambient: 0.4, Point: core.PointLight{Intensity: 1}},
		Bloom:    core.Bloom{Intensity: 0, Threshold: 0.2},
	}
	u := packScene(f)
	assert.Equal(t, float32(0), u.Bloom[0], "zero intensity adds no boost in the mesh shader")
	assert.Equal(t, float32(0.2), u.Bloom[1])

	f.Bloom.Intensity = 2
	boosted := packScene(f)
	boosted.Bloom = u.Bloom
	assert.Equal(t, u, boosted, "bloom touches nothing else")
}

func TestInterleaveMissingNormals(t *testing.T) {
	m := &core.Mesh{
		Positions: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}},
		Normals:   []mgl32.Vec3{{0, 1, 0}},
	}
	v := interleave(m)
	assert.Len(t, v, 2)
	assert.Equal(t, [3]float32{0, 1, 0}, v[0].Normal)
	assert.Equal(t, [3]float32{}, v[1].Normal)
	assert.Equal(t, [3]float32{4, 5, 6}, v[1].Position)
}

func TestPlaceOverlay(t *testing.T) {
	o := &core.Overlay{Image: image.NewRGBA(image.Rect(0, 0, 300, 40)), X: 970, Y: 10}
	p := placeOverlay(o, 1280, 720)
	assert.Equal(t, [4]float32{970, 10, 300, 40}, p.Rect)
	assert.Equal(t, [4]float32{1280, 720, 0, 0}, p.Viewport)
}

func TestPickFormatPrefersLinear(t *testing.T) {
	formats := []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm}
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, pickFormat(formats))
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, pickFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float}))
}
