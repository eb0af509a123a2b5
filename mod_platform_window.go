package tweakview

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

var typeOfWindowState = reflect.TypeFor[WindowState]()

// PlatformWindowModule creates the single GLFW window shared by input and rendering.
// Install is a no-op if a WindowState resource already exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "tweakview"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if app.hasResource(typeOfWindowState) {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		panic(err)
	}
	app.addResources(ws)
	app.OnExit(func() {
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	})
	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate),
	)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}, nil
}

// eventSource is the part of a glfw window the event pump reads.
type eventSource interface {
	ShouldClose() bool
	GetFramebufferSize() (int, int)
}

// windowEventsSystem pumps the glfw queue first, so input and close requests
// raised since the last frame are seen in this one.
func windowEventsSystem(cmd *Commands, s *WindowState) {
	pumpWindowEvents(cmd, s, s.windowGlfw, glfw.PollEvents)
}

func pumpWindowEvents(cmd *Commands, s *WindowState, win eventSource, poll func()) {
	poll()
	s.WindowWidth, s.WindowHeight = win.GetFramebufferSize()
	if win.ShouldClose() {
		cmd.Logger().Infof("Window closed")
		cmd.Quit()
	}
}
