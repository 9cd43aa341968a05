package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window wraps a GLFW window with an OpenGL context and fans its input
// events out to registered callbacks.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    800,
		Title:     "Viewport",
		Resizable: true,
		VSync:     true,
	}
}

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// CursorPosCallback receives cursor movement in client coordinates.
type CursorPosCallback func(x, y float64)

func (w *Window) SetCursorPosCallback(cb CursorPosCallback) {
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

// MouseButtonCallback receives button transitions; pressed is true on press.
type MouseButtonCallback func(button int, pressed bool)

func (w *Window) SetMouseButtonCallback(cb MouseButtonCallback) {
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		cb(int(button), action == glfw.Press)
	})
}

// FocusCallback receives window focus transitions; losing focus is the
// desktop analogue of a browser window blur.
type FocusCallback func(focused bool)

func (w *Window) SetFocusCallback(cb FocusCallback) {
	w.Handle.SetFocusCallback(func(win *glfw.Window, focused bool) {
		cb(focused)
	})
}

// IconifyCallback receives minimize/restore transitions, the analogue of
// a document visibility change.
type IconifyCallback func(iconified bool)

func (w *Window) SetIconifyCallback(cb IconifyCallback) {
	w.Handle.SetIconifyCallback(func(win *glfw.Window, iconified bool) {
		cb(iconified)
	})
}

// SizeCallback receives client-area resizes.
type SizeCallback func(width, height int)

func (w *Window) SetSizeCallback(cb SizeCallback) {
	w.Handle.SetSizeCallback(func(win *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		cb(width, height)
	})
}

// ScrollCallback receives scroll wheel offsets.
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// MouseButtonsDown returns a bitmask of currently held buttons, bit i for
// button i.
func (w *Window) MouseButtonsDown() int {
	mask := 0
	for b := 0; b < 3; b++ {
		if w.Handle.GetMouseButton(glfw.MouseButton(b)) == glfw.Press {
			mask |= 1 << b
		}
	}
	return mask
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
