package tweakview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortcutRouter_Route(t *testing.T) {
	tests := []struct {
		ch      rune
		want    TransformMode
		handled bool
	}{
		{'g', ModeTranslate, true},
		{'G', ModeTranslate, true},
		{'s', ModeScale, true},
		{'S', ModeScale, true},
		{'r', ModeRotate, true},
		{'R', ModeRotate, true},
		{'x', ModeRotate, false},
	}
	router := DefaultShortcuts()
	state := &ViewerState{}
	for _, tt := range tests {
		handled := router.Route(tt.ch, &UiFocus{}, state)
		assert.Equal(t, tt.handled, handled, string(tt.ch))
		assert.Equal(t, tt.want, state.Mode, string(tt.ch))
	}
}

func TestShortcutRouter_IgnoredWhileTextFocused(t *testing.T) {
	router := DefaultShortcuts()
	state := &ViewerState{Mode: ModeTranslate}
	focus := &UiFocus{TextInput: true, Owner: "Cube Color"}

	assert.False(t, router.Route('r', focus, state))
	assert.Equal(t, ModeTranslate, state.Mode)

	focus.TextInput = false
	assert.True(t, router.Route('r', focus, state))
	assert.Equal(t, ModeRotate, state.Mode)
}

func TestShortcutSystem_ModeChangesWithoutSelection(t *testing.T) {
	app := newApp()
	app.UseModules(InputModule{}, SelectionModule{}, ShortcutModule{})
	input := Resource[Input](app)
	state := Resource[ViewerState](app)

	input.Type("S")
	app.callSystem(shortcutSystem)
	assert.Equal(t, ModeScale, state.Mode)
	assert.Equal(t, SelectNone, state.Selected)

	input.Type("gR")
	app.callSystem(shortcutSystem)
	assert.Equal(t, ModeRotate, state.Mode, "the last mapped key of the frame wins")
}
