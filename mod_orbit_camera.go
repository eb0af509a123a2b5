package tweakview

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/tweakview/render/core"
)

type CameraComponent struct {
	Camera core.Camera
}

// OrbitControlsComponent orbits the camera around its target. Goal values follow
// pointer input; the camera eases towards them with critically damped springs.
type OrbitControlsComponent struct {
	RotateSpeed float64
	PanSpeed    float64
	ZoomSpeed   float64
	MinDistance float64
	MaxDistance float64

	goal, cur   orbitPose
	vel         orbitPose
	spring      harmonica.Spring
	orbiting    bool
	panning     bool
	initialized bool
}

type orbitPose struct {
	yaw, pitch, dist float64
	target           [3]float64
}

const maxPitch = math.Pi/2 - 0.01

func NewOrbitControls() OrbitControlsComponent {
	return OrbitControlsComponent{
		RotateSpeed: 0.005,
		PanSpeed:    0.0015,
		ZoomSpeed:   0.95,
		MinDistance: 1,
		MaxDistance: 200,
	}
}

type OrbitCameraModule struct {
	Position mgl32.Vec3
	Fov      float32
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	cmd.AddEntity(
		&CameraComponent{Camera: core.NewCamera(m.Position, m.Fov)},
		NewOrbitControls(),
	)
	app.UseSystem(
		System(orbitCameraSystem).
			InStage(Update),
	)
}

func (o *OrbitControlsComponent) init(cam core.Camera) {
	offset := cam.Position.Sub(cam.Target)
	dist := float64(offset.Len())
	pose := orbitPose{
		yaw:    math.Atan2(float64(offset.X()), float64(offset.Z())),
		pitch:  math.Asin(float64(offset.Y()) / math.Max(dist, 1e-6)),
		dist:   dist,
		target: [3]float64{float64(cam.Target.X()), float64(cam.Target.Y()), float64(cam.Target.Z())},
	}
	o.goal, o.cur = pose, pose
	o.vel = orbitPose{}
	o.spring = harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0)
	o.initialized = true
}

// orbitCameraSystem is skipped entirely while a gizmo drag is in progress, so
// neither new input nor easing moves the camera.
func orbitCameraSystem(cmd *Commands, input *Input, state *ViewerState) {
	if state.IsTransforming {
		return
	}

	MakeQuery2[CameraComponent, OrbitControlsComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, orbit *OrbitControlsComponent) bool {
		if !orbit.initialized {
			orbit.init(cam.Camera)
		}
		orbit.handleInput(input)
		orbit.step()
		cam.Camera.Position, cam.Camera.Target = orbit.cur.eye()
		return true
	})
}

func (o *OrbitControlsComponent) handleInput(input *Input) {
	if !input.MouseConsumed {
		if input.JustPressed[MouseButtonLeft] {
			o.orbiting = true
		}
		if input.JustPressed[MouseButtonRight] {
			o.panning = true
		}
	}
	if !input.Pressed[MouseButtonLeft] {
		o.orbiting = false
	}
	if !input.Pressed[MouseButtonRight] {
		o.panning = false
	}

	dx, dy := input.MouseDeltaX, input.MouseDeltaY
	if o.orbiting {
		o.goal.yaw -= dx * o.RotateSpeed
		o.goal.pitch = math.Max(-maxPitch, math.Min(maxPitch, o.goal.pitch+dy*o.RotateSpeed))
	}
	if o.panning {
		_, right, up := o.goal.basis()
		scale := o.goal.dist * o.PanSpeed
		for i := 0; i < 3; i++ {
			o.goal.target[i] += -dx*scale*right[i] + dy*scale*up[i]
		}
	}
	if input.ScrollY != 0 && !input.MouseConsumed {
		o.goal.dist *= math.Pow(o.ZoomSpeed, input.ScrollY)
		o.goal.dist = math.Max(o.MinDistance, math.Min(o.MaxDistance, o.goal.dist))
	}
}

func (o *OrbitControlsComponent) step() {
	o.cur.yaw, o.vel.yaw = o.spring.Update(o.cur.yaw, o.vel.yaw, o.goal.yaw)
	o.cur.pitch, o.vel.pitch = o.spring.Update(o.cur.pitch, o.vel.pitch, o.goal.pitch)
	o.cur.dist, o.vel.dist = o.spring.Update(o.cur.dist, o.vel.dist, o.goal.dist)
	for i := 0; i < 3; i++ {
		o.cur.target[i], o.vel.target[i] = o.spring.Update(o.cur.target[i], o.vel.target[i], o.goal.target[i])
	}
}

func (p orbitPose) offset() [3]float64 {
	cp := math.Cos(p.pitch)
	return [3]float64{
		p.dist * cp * math.Sin(p.yaw),
		p.dist * math.Sin(p.pitch),
		p.dist * cp * math.Cos(p.yaw),
	}
}

// basis returns the view direction and the camera right and up vectors.
func (p orbitPose) basis() (forward, right, up [3]float64) {
	off := p.offset()
	f := mgl32.Vec3{float32(-off[0]), float32(-off[1]), float32(-off[2])}.Normalize()
	r := f.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	u := r.Cross(f)
	for i := 0; i < 3; i++ {
		forward[i], right[i], up[i] = float64(f[i]), float64(r[i]), float64(u[i])
	}
	return
}

func (p orbitPose) eye() (position, target mgl32.Vec3) {
	off := p.offset()
	for i := 0; i < 3; i++ {
		target[i] = float32(p.target[i])
		position[i] = float32(p.target[i] + off[i])
	}
	return
}
