package starfield

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	MouseButtonLeft int = iota
	MouseButtonRight
	MouseButtonMiddle
	KeyEscape
	KeyF
	KeyH
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// ScrollY accumulates wheel steps since the last frame.
	ScrollY float64

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureResource(app, &Input{})
	if _, ok := Resource[WindowState](app); ok {
		app.UseSystem(
			System(inputSystem).
				InStage(PreUpdate),
		)
	}
}

// press records a level-triggered state and derives the edge flags.
func (input *Input) press(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func inputSystem(s *WindowState, input *Input, cmd *Commands) {
	input.ScrollY = s.takeScroll()

	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		cmd.Logger().Infof("window closed")
		cmd.Quit()
	}

	input.press(KeyEscape, s.windowGlfw.GetKey(glfw.KeyEscape) == glfw.Press)
	input.press(KeyF, s.windowGlfw.GetKey(glfw.KeyF) == glfw.Press)
	input.press(KeyH, s.windowGlfw.GetKey(glfw.KeyH) == glfw.Press)
	input.press(MouseButtonLeft, s.windowGlfw.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
	input.press(MouseButtonRight, s.windowGlfw.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)
	input.press(MouseButtonMiddle, s.windowGlfw.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press)

	mx, my := s.windowGlfw.GetCursorPos()
	if input.Pressed[MouseButtonLeft] && !input.JustPressed[MouseButtonLeft] {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	} else {
		input.MouseDeltaX = 0
		input.MouseDeltaY = 0
	}
	input.MouseX = mx
	input.MouseY = my

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
}
