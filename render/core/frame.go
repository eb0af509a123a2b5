package core

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything the renderer needs to draw one frame. It is rebuilt every
// frame on the CPU and handed to the GPU side as a value.
type Frame struct {
	ViewProj  mgl32.Mat4
	CameraPos mgl32.Vec3
	Clear     mgl32.Vec4

	// Width and Height are the window size in the units of overlay and cursor
	// coordinates, which may differ from the framebuffer size.
	Width, Height int

	Lights Lights
	Bloom  Bloom

	Meshes []MeshDraw
	// Lines are depth tested against the scene; OverlayLines draw on top of it.
	Lines        []LineVertex
	OverlayLines []LineVertex

	Overlays []Overlay
}

type MeshDraw struct {
	// Key identifies the mesh data for GPU-side caching.
	Key       string
	Mesh      *Mesh
	Model     mgl32.Mat4
	Color     mgl32.Vec4
	Roughness float32
	Metalness float32
}

type LineVertex struct {
	Position [3]float32
	Color    [4]float32
}

type Lights struct {
	Ambient     float32
	SkyColor    mgl32.Vec3
	GroundColor mgl32.Vec3
	Spot        SpotLight
	Point       PointLight
}

type SpotLight struct {
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Angle     float32
	Penumbra  float32
	Intensity float32
}

type PointLight struct {
	Position  mgl32.Vec3
	Intensity float32
}

type Bloom struct {
	Intensity float32
	Threshold float32
}

// Overlay is a screen-space RGBA image placed at pixel coordinates. Version
// changes whenever Image content changes so the GPU copy can be refreshed.
type Overlay struct {
	Key     string
	Image   *image.RGBA
	X, Y    int
	Version uint64
}
