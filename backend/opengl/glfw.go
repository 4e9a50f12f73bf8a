package opengl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/learn"
)

var (
	ErrWindowCreate = errors.New("failed to create GLFW window")
	ErrGLInit       = errors.New("failed to load OpenGL functions")
)

// WindowConfig describes the window and context to create.
type WindowConfig struct {
	Width, Height int
	Title         string
	SwapInterval  int  // 1 = vsync, 0 = unthrottled
	Hidden        bool // Create the window invisible (offscreen rendering)
	Logger        *slog.Logger
}

// DefaultWindowConfig returns a visible 1024x768 "Learn" window with vsync.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:        1024,
		Height:       768,
		Title:        "Learn",
		SwapInterval: 1,
	}
}

// Window adapts a GLFW window with a current OpenGL 3.3 core context to
// learn.Window.
type Window struct {
	window   *glfw.Window
	input    *learn.InputState
	onResize func(width, height int)
	logger   *slog.Logger
}

var _ learn.Window = (*Window)(nil)

// OpenWindow initializes GLFW, creates the window, makes its context
// current and loads the OpenGL function pointers. On failure everything
// it created is released again. The caller must be locked to the main
// OS thread.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = learn.Logger()
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %w", ErrWindowCreate, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrWindowCreate, err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrGLInit, err)
	}

	logger.Debug("OpenGL context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	w := &Window{
		window: window,
		input:  learn.NewInputState(),
		logger: logger,
	}
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	return w, nil
}

// Terminate destroys the window and shuts GLFW down.
func (w *Window) Terminate() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}

// GLFW returns the underlying GLFW window.
func (w *Window) GLFW() *glfw.Window {
	return w.window
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.window.SetShouldClose(value)
}

// polledKeys are the GLFW keys sampled by UpdateInput.
var polledKeys = []glfw.Key{glfw.KeyEscape, glfw.KeyF1}

// UpdateInput samples the key state of every mapped key.
// Call this at the start of each frame.
func (w *Window) UpdateInput() *learn.InputState {
	w.input.Reset()
	for _, key := range polledKeys {
		w.input.SetKey(glfwKeyToLearnKey(key), w.window.GetKey(key) == glfw.Press)
	}
	return w.input
}

func (w *Window) FramebufferSize() (width, height int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) OnFramebufferResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.logger.Debug("framebuffer resized", "width", width, "height", height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// glfwKeyToLearnKey maps GLFW keys to learn keys.
func glfwKeyToLearnKey(key glfw.Key) learn.Key {
	switch key {
	case glfw.KeyEscape:
		return learn.KeyEscape
	case glfw.KeyF1:
		return learn.KeyF1
	default:
		return learn.KeyNone
	}
}
