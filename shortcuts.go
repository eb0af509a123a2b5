package tweakview

// UiFocus records which UI element owns the keyboard. While TextInput is set
// typed characters belong to that field and are never routed as shortcuts.
type UiFocus struct {
	TextInput bool
	Owner     string
}

// ShortcutRouter maps typed characters to transform modes. Case is handled by
// listing both forms, the same way the keys are documented.
type ShortcutRouter struct {
	Bindings map[rune]TransformMode
}

func DefaultShortcuts() ShortcutRouter {
	return ShortcutRouter{
		Bindings: map[rune]TransformMode{
			'g': ModeTranslate, 'G': ModeTranslate,
			's': ModeScale, 'S': ModeScale,
			'r': ModeRotate, 'R': ModeRotate,
		},
	}
}

// Route applies the binding for ch, if any. It reports whether the key was handled.
func (r ShortcutRouter) Route(ch rune, focus *UiFocus, state *ViewerState) bool {
	if focus != nil && focus.TextInput {
		return false
	}
	mode, ok := r.Bindings[ch]
	if !ok {
		return false
	}
	state.SetMode(mode)
	return true
}

type ShortcutModule struct{}

func (ShortcutModule) Install(app *App, cmd *Commands) {
	router := DefaultShortcuts()
	cmd.AddResources(&router)
	if Resource[UiFocus](app) == nil {
		cmd.AddResources(&UiFocus{})
	}
	app.UseSystem(
		System(shortcutSystem).
			InStage(PreUpdate),
	)
}

func shortcutSystem(cmd *Commands, input *Input, focus *UiFocus, router *ShortcutRouter, state *ViewerState) {
	for _, ch := range input.CharBuffer {
		if router.Route(ch, focus, state) {
			cmd.Logger().Debugf("Transform mode: %s", state.Mode)
		}
	}
}
