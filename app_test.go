package tweakview

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, cmd *Commands) {
	m.installed = true
}

type counter struct {
	calls []string
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	app.addResources(&MockResource2{name: "Resource2"})
	assert.Equal(t, "Resource2", Resource[MockResource2](app).name)

	require.Panics(t, func() {
		app.addResources(MockResource2{})
	}, "resources must be pointers")
}

func TestApp_callSystemResolvesResources(t *testing.T) {
	app := newApp()
	res := &MockResource1{name: "a"}
	app.addResources(res)

	var got *MockResource1
	var gotCmd *Commands
	app.callSystem(func(cmd *Commands, r *MockResource1) {
		gotCmd = cmd
		got = r
	})
	assert.Same(t, res, got)
	require.NotNil(t, gotCmd)
	assert.Same(t, app, gotCmd.app)

	assert.Panics(t, func() {
		app.callSystem(func(r *MockResource2) {})
	}, "unregistered dependency")
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := newApp()
	c := &counter{}
	app.addResources(c)

	for _, stage := range []Stage{Finale, Update, Prelude, PreRender, PreUpdate} {
		stage := stage
		app.UseSystem(System(func(c *counter) {
			c.calls = append(c.calls, stage.Name)
		}).InStage(stage))
	}
	app.UseSystem(System(func(c *counter) {
		c.calls = append(c.calls, "Update2")
	}))

	app.Step()
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "Update2", "PreRender", "Finale"}, c.calls)
}

func TestApp_UseStage(t *testing.T) {
	app := newApp()
	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))
	idx := func(s Stage) int {
		for i, st := range app.stages {
			if st.Name == s.Name {
				return i
			}
		}
		return -1
	}
	assert.Equal(t, idx(Update)+1, idx(custom))
	assert.Equal(t, idx(PostUpdate)-1, idx(custom))

	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "missing"})) })
}

func TestCommands_EntitiesLandAtStageEnd(t *testing.T) {
	type Marker struct{ n int }
	app := newApp()
	cmd := app.Commands()

	var seenDuring, seenAfter int
	app.UseSystem(System(func(cmd *Commands) {
		cmd.AddEntity(&Marker{n: 1})
		MakeQuery1[Marker](cmd).Map(func(eid EntityId, m *Marker) bool {
			seenDuring++
			return true
		})
	}).InStage(PreUpdate))
	app.UseSystem(System(func(cmd *Commands) {
		MakeQuery1[Marker](cmd).Map(func(eid EntityId, m *Marker) bool {
			seenAfter++
			return true
		})
	}).InStage(Update))

	app.Step()
	assert.Equal(t, 0, seenDuring)
	assert.Equal(t, 1, seenAfter)

	eid := cmd.AddEntity(&Marker{n: 2})
	cmd.RemoveEntity(eid)
	app.FlushCommands()
	assert.True(t, app.ecs.hasEntity(eid), "removals are applied before additions")

	cmd.RemoveEntity(eid)
	app.FlushCommands()
	assert.False(t, app.ecs.hasEntity(eid))
}

func TestApp_RunStopsOnQuit(t *testing.T) {
	app := newApp()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Quit()
		}
	}))
	var exits []int
	app.OnExit(func() { exits = append(exits, 1) })
	app.OnExit(func() { exits = append(exits, 2) })

	app.Run(context.Background())
	assert.Equal(t, 3, frames)
	assert.Equal(t, []int{2, 1}, exits)
	assert.Error(t, app.Context().Err(), "run context is cancelled on exit")
}

func TestApp_RunStopsOnContext(t *testing.T) {
	app := newApp()
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	app.UseSystem(System(func() {
		frames++
		if frames == 2 {
			cancel()
		}
	}))
	app.Run(ctx)
	assert.Equal(t, 2, frames)
}

func TestAppBuilder_Build(t *testing.T) {
	m1, m2 := &MockModule{}, &MockModule{}
	app := NewAppBuilder().UseModule(m1).UseModule(m2).Build()
	require.NotNil(t, app)
	assert.True(t, m1.installed)
	assert.True(t, m2.installed)
	assert.Len(t, app.stages, len(defaultStages))
}
