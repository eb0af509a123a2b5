package tweakview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSelectable = errors.New("unknown selectable id")
	ErrUnknownMode       = errors.New("unknown transform mode")
)

type SelectableId int

const (
	SelectNone SelectableId = iota
	SelectHero
	SelectTrump
	SelectCube
)

var selectableNames = [...]string{
	SelectNone:  "none",
	SelectHero:  "hero",
	SelectTrump: "trump",
	SelectCube:  "cube",
}

func (id SelectableId) String() string {
	if id < 0 || int(id) >= len(selectableNames) {
		return fmt.Sprintf("SelectableId(%d)", int(id))
	}
	return selectableNames[id]
}

func ParseSelectableId(s string) (SelectableId, error) {
	for i, name := range selectableNames {
		if strings.EqualFold(s, name) {
			return SelectableId(i), nil
		}
	}
	return SelectNone, fmt.Errorf("%q: %w", s, ErrUnknownSelectable)
}

type TransformMode int

const (
	ModeTranslate TransformMode = iota
	ModeScale
	ModeRotate
)

var modeNames = [...]string{
	ModeTranslate: "translate",
	ModeScale:     "scale",
	ModeRotate:    "rotate",
}

func (m TransformMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("TransformMode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseTransformMode(s string) (TransformMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return TransformMode(i), nil
		}
	}
	return ModeTranslate, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// ViewerState is the interaction state shared by picking, shortcuts, gizmos and
// the orbit camera. The zero value is the initial state: nothing selected,
// translate mode, not transforming.
type ViewerState struct {
	Selected       SelectableId
	Mode           TransformMode
	IsTransforming bool
}

// Select makes id the current selection. There is no way back to SelectNone
// through user input.
func (s *ViewerState) Select(id SelectableId) {
	s.Selected = id
}

// SetMode changes the mode regardless of whether anything is selected.
func (s *ViewerState) SetMode(m TransformMode) {
	s.Mode = m
}

func (s *ViewerState) BeginTransform() {
	s.IsTransforming = true
}

func (s *ViewerState) EndTransform() {
	s.IsTransforming = false
}

// GizmoEnabled reports whether the gizmo bound to id accepts input and draws.
func (s *ViewerState) GizmoEnabled(id SelectableId) bool {
	return id != SelectNone && s.Selected == id
}
