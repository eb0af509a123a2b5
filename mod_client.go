package tweakview

import (
	"github.com/cogentcore/webgpu/wgpuglfw"

	"github.com/gekko3d/tweakview/render/gpu"
)

// ClientModule draws the RenderFrame into the platform window every frame.
// It needs PlatformWindowModule to be installed first.
type ClientModule struct{}

type clientState struct {
	renderer *gpu.Renderer
	failures int
}

func (ClientModule) Install(app *App, cmd *Commands) {
	ws := Resource[WindowState](app)
	if ws == nil {
		panic("ClientModule requires PlatformWindowModule")
	}
	width, height := ws.windowGlfw.GetFramebufferSize()
	renderer, err := gpu.NewRenderer(wgpuglfw.GetSurfaceDescriptor(ws.windowGlfw), width, height)
	if err != nil {
		panic(err)
	}
	app.OnExit(renderer.Release)
	cmd.AddResources(&clientState{renderer: renderer})
	app.UseSystem(
		System(clientRenderSystem).
			InStage(Render),
	)
}

func clientRenderSystem(cmd *Commands, ws *WindowState, state *clientState, frame *RenderFrame) {
	if err := state.renderer.Resize(ws.WindowWidth, ws.WindowHeight); err != nil {
		cmd.Logger().Errorf("Resize to %dx%d failed: %v", ws.WindowWidth, ws.WindowHeight, err)
		return
	}
	if ws.WindowWidth <= 0 || ws.WindowHeight <= 0 {
		return
	}
	if err := state.renderer.Render(&frame.Frame); err != nil {
		// A lost surface usually recovers after the next resize; log the first few only.
		if state.failures < 3 {
			cmd.Logger().Warnf("Frame %d not rendered: %v", frame.Number, err)
		}
		state.failures++
		return
	}
	state.failures = 0
}
