package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a look-at perspective camera. Y is up.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32 // vertical, degrees
	Near     float32
	Far      float32
}

func NewCamera(position mgl32.Vec3, fov float32) Camera {
	return Camera{
		Position: position,
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      fov,
		Near:     0.1,
		Far:      1000.0,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1.0
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// ViewProj uses OpenGL clip conventions (z in [-1,1]). The GPU side remaps depth with ClipToWebGPU.
func (c Camera) ViewProj(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

func (c Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ClipToWebGPU maps OpenGL clip z in [-w,w] to [0,w].
var ClipToWebGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}
