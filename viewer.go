package tweakview

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneObjects lists the spawned selectable objects in scene order.
type SceneObjects struct {
	List []SceneObject
}

// Find returns the object with the given id, or nil.
func (s *SceneObjects) Find(id SelectableId) SceneObject {
	for _, o := range s.List {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

// ViewerModule assembles the whole viewer: input, selection, panel, gizmos,
// assets, camera and the default scene. Headless skips the window and GPU
// client so the same frame loop can be stepped in tests.
type ViewerModule struct {
	Config   ViewerConfig
	Headless bool
	// Logger replaces the zap logger when set.
	Logger Logger
	// Loader replaces the GLB loader when set.
	Loader MeshLoader
}

func (m ViewerModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	preset, err := LookupEnvironment(cfg.Environment)
	if err != nil {
		panic(err)
	}

	if m.Logger != nil {
		cmd.AddResources(m.Logger)
	} else {
		LoggingModule{Prefix: "tweakview", Debug: cfg.Debug}.Install(app, cmd)
	}

	params := DefaultTweakParams()
	if err := cfg.Params.Apply(params); err != nil {
		panic(err)
	}
	cmd.AddResources(params)

	env := &SceneEnvironment{
		Preset:         preset,
		BloomThreshold: 0.2,
		GridCenter:     MustParseColor("#101010"),
		GridColor:      MustParseColor("#505050"),
		AxesLength:     3,
		Clear:          params.Scene().BackgroundColor,
		LiveBackground: cfg.LiveBackground,
	}
	cmd.AddResources(env)

	// PreUpdate systems run in install order: window and input first, then
	// the panel, which may consume the pointer and keyboard before shortcuts,
	// gizmos and picking see them.
	modules := []Module{TimeModule{}}
	if !m.Headless {
		modules = append(modules, NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title))
	}
	modules = append(modules,
		InputModule{},
		TweakPanelModule{},
		ShortcutModule{},
		TransformGizmoModule{},
		SelectionModule{},
		AssetServerModule{Root: cfg.Assets.Root, Loader: m.Loader, Timeout: cfg.LoadTimeout},
		OrbitCameraModule{Position: mgl32.Vec3{0, 2, 10}, Fov: 60},
		SpinModule{},
		TweakApplyModule{},
		FrameModule{},
	)
	if !m.Headless {
		modules = append(modules, ClientModule{})
	}
	for _, mod := range modules {
		mod.Install(app, cmd)
	}

	if input := Resource[Input](app); input != nil && m.Headless {
		input.WindowWidth, input.WindowHeight = cfg.Window.Width, cfg.Window.Height
	}

	scene := DefaultSceneDef(cfg.Assets.Hero, cfg.Assets.Trump)
	scene.Environment = cfg.Environment
	objects := LoadScene(cmd, Resource[AssetServer](app), params, &scene)
	cmd.AddResources(&SceneObjects{List: objects})

	cmd.Logger().Infof("Viewer ready: %d objects, environment %s, window %dx%d",
		len(objects), cfg.Environment, cfg.Window.Width, cfg.Window.Height)
}
