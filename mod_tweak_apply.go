package tweakview

// tweakApplySystem writes panel values into object handles. An object is only
// rewritten when its own parameters changed since the last write, so gizmo
// edits survive until that object is edited on the panel again.
func tweakApplySystem(cmd *Commands, params *TweakParams, env *SceneEnvironment) {
	MakeQuery2[ObjectComponent, TransformComponent](cmd).Map(func(eid EntityId, obj *ObjectComponent, tr *TransformComponent) bool {
		id := obj.Object.ID()
		rev := params.Revision(id)
		if obj.applied && rev == obj.appliedRevision {
			return true
		}
		p, ok := params.Object(id)
		if !ok {
			return true
		}
		obj.Object.SetTransform(tr, p)
		obj.appliedRevision = rev
		obj.applied = true
		return true
	})

	if env.LiveBackground {
		env.Clear = params.Scene().BackgroundColor
	}
}

type TweakApplyModule struct{}

func (TweakApplyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(tweakApplySystem).
			InStage(Update),
	)
}
