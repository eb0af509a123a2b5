package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SpinComponent adds Rate to the entity's Euler rotation once per frame.
type SpinComponent struct {
	Rate mgl32.Vec3
}

type SpinModule struct{}

func (SpinModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(spinSystem).
			InStage(Update),
	)
}

// spinSystem does not look at selection or gizmo state.
func spinSystem(cmd *Commands) {
	MakeQuery2[SpinComponent, TransformComponent](cmd).Map(func(eid EntityId, spin *SpinComponent, tr *TransformComponent) bool {
		tr.Rotation = tr.Rotation.Add(spin.Rate)
		return true
	})
}
