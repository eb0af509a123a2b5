package tweakview

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

// Input is the per-frame snapshot of keyboard and mouse state. The Just* flags,
// CharBuffer, ScrollY and mouse deltas only live for one frame; they are cleared in Finale.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollY                  float64

	// MouseConsumed is set by UI systems that handled the pointer this frame,
	// so scene picking and camera controls ignore it.
	MouseConsumed bool

	WindowWidth, WindowHeight int
	CharBuffer                []rune

	pendingScroll float64
	pendingChars  []rune
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)
	if ws := Resource[WindowState](app); ws != nil {
		installInputCallbacks(ws, input)
		app.UseSystem(
			System(inputSystem).
				InStage(PreUpdate),
		)
	}
	app.UseSystem(
		System(inputEndFrameSystem).
			InStage(Finale),
	)
}

// Press simulates a key or mouse button going down.
func (input *Input) Press(key int) {
	if !input.Pressed[key] {
		input.JustPressed[key] = true
	}
	input.Pressed[key] = true
}

func (input *Input) Release(key int) {
	if input.Pressed[key] {
		input.JustReleased[key] = true
	}
	input.Pressed[key] = false
}

// Type appends characters as if they had been typed this frame.
func (input *Input) Type(s string) {
	input.CharBuffer = append(input.CharBuffer, []rune(s)...)
}

func (input *Input) MoveMouse(x, y float64) {
	input.MouseDeltaX += x - input.MouseX
	input.MouseDeltaY += y - input.MouseY
	input.MouseX = x
	input.MouseY = y
}

func (input *Input) Scroll(dy float64) {
	input.ScrollY += dy
}

func (input *Input) EndFrame() {
	input.JustPressed = [256]bool{}
	input.JustReleased = [256]bool{}
	input.CharBuffer = input.CharBuffer[:0]
	input.MouseDeltaX = 0
	input.MouseDeltaY = 0
	input.ScrollY = 0
	input.MouseConsumed = false
}

func inputEndFrameSystem(input *Input) {
	input.EndFrame()
}

// installInputCallbacks hooks the buffered glfw events. Events are pumped by
// the window module, which runs before inputSystem.
func installInputCallbacks(s *WindowState, input *Input) {
	s.windowGlfw.SetCharCallback(func(w *glfw.Window, char rune) {
		input.pendingChars = append(input.pendingChars, char)
	})
	s.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		input.pendingScroll += yoff
	})
}

func inputSystem(s *WindowState, input *Input) {
	input.CharBuffer = append(input.CharBuffer, input.pendingChars...)
	input.pendingChars = input.pendingChars[:0]
	input.ScrollY += input.pendingScroll
	input.pendingScroll = 0

	for key, glfwKey := range keyToGlfw {
		if glfw.Press == s.windowGlfw.GetKey(glfwKey) {
			input.Press(key)
		} else {
			input.Release(key)
		}
	}

	mouseButtons := map[int]glfw.MouseButton{
		MouseButtonLeft:   glfw.MouseButtonLeft,
		MouseButtonRight:  glfw.MouseButtonRight,
		MouseButtonMiddle: glfw.MouseButtonMiddle,
	}
	for btn, glfwBtn := range mouseButtons {
		if glfw.Press == s.windowGlfw.GetMouseButton(glfwBtn) {
			input.Press(btn)
		} else {
			input.Release(btn)
		}
	}

	input.MoveMouse(s.windowGlfw.GetCursorPos())
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyTab:       glfw.KeyTab,
	KeyBackspace: glfw.KeyBackspace,
	KeyInsert:    glfw.KeyInsert,
	KeyDelete:    glfw.KeyDelete,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyF1:        glfw.KeyF1,
	KeyF2:        glfw.KeyF2,
	KeyF3:        glfw.KeyF3,
	KeyF4:        glfw.KeyF4,
	KeyF5:        glfw.KeyF5,
	KeyF6:        glfw.KeyF6,
	KeyF7:        glfw.KeyF7,
	KeyF8:        glfw.KeyF8,
	KeyF9:        glfw.KeyF9,
	KeyF10:       glfw.KeyF10,
	KeyF11:       glfw.KeyF11,
	KeyF12:       glfw.KeyF12,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyLeftAlt:   glfw.KeyLeftAlt,
}
