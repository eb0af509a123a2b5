package tweakview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerState_Defaults(t *testing.T) {
	var s ViewerState
	assert.Equal(t, SelectNone, s.Selected)
	assert.Equal(t, ModeTranslate, s.Mode)
	assert.False(t, s.IsTransforming)
	for _, id := range []SelectableId{SelectNone, SelectHero, SelectTrump, SelectCube} {
		assert.False(t, s.GizmoEnabled(id), id.String())
	}
}

func TestViewerState_GizmoFollowsSelection(t *testing.T) {
	var s ViewerState
	s.Select(SelectTrump)
	assert.True(t, s.GizmoEnabled(SelectTrump))
	assert.False(t, s.GizmoEnabled(SelectHero))
	assert.False(t, s.GizmoEnabled(SelectCube))

	s.Select(SelectCube)
	assert.True(t, s.GizmoEnabled(SelectCube))
	assert.False(t, s.GizmoEnabled(SelectTrump))
}

func TestViewerState_SetModeWithoutSelection(t *testing.T) {
	var s ViewerState
	s.SetMode(ModeRotate)
	assert.Equal(t, ModeRotate, s.Mode)
	assert.Equal(t, SelectNone, s.Selected)
}

func TestViewerState_Transforming(t *testing.T) {
	var s ViewerState
	s.BeginTransform()
	assert.True(t, s.IsTransforming)
	s.EndTransform()
	assert.False(t, s.IsTransforming)
}

func TestParseSelectableId(t *testing.T) {
	for _, name := range []string{"none", "hero", "trump", "cube"} {
		id, err := ParseSelectableId(name)
		require.NoError(t, err)
		assert.Equal(t, name, id.String())
	}
	id, err := ParseSelectableId("Hero")
	require.NoError(t, err)
	assert.Equal(t, SelectHero, id)

	_, err = ParseSelectableId("teapot")
	assert.ErrorIs(t, err, ErrUnknownSelectable)
	assert.Equal(t, "SelectableId(9)", SelectableId(9).String())
}

func TestParseTransformMode(t *testing.T) {
	for _, name := range []string{"translate", "scale", "rotate"} {
		m, err := ParseTransformMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	_, err := ParseTransformMode("shear")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
