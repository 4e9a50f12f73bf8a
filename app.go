package learn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names the fragment shader is expected to declare.
const (
	UniformResolution = "u_Resolution"
	UniformTime       = "u_Time"
)

// ErrNotInitialized is returned when the loop is driven before Init.
var ErrNotInitialized = errors.New("app not initialized")

// State is the render loop state.
type State int

const (
	StateRunning State = iota
	StateClosing
)

func (s State) String() string {
	if s == StateClosing {
		return "closing"
	}
	return "running"
}

// Stats counts the work the loop has issued.
type Stats struct {
	Frames    uint64 // Completed Frame calls
	DrawCalls uint64 // Indexed draw calls issued
}

// App owns the program, the uploaded mesh and the per-frame uniforms,
// and drives a Window and Device through the render loop.
type App struct {
	window Window
	device Device
	logger *slog.Logger

	shaderOpts []ShaderOption
	clearColor mgl32.Vec4
	wireframe  bool

	initialized   bool
	program       uint32
	mesh          MeshHandle
	resolutionLoc int32
	timeLoc       int32
	resolution    mgl32.Vec2
	lastTime      float32
	stats         Stats
}

// Option configures an App.
type Option func(*App)

// WithClearColor sets the color the framebuffer is cleared to each frame.
func WithClearColor(c mgl32.Vec4) Option {
	return func(a *App) { a.clearColor = c }
}

// WithWireframe starts the app in wireframe polygon mode.
func WithWireframe(enabled bool) Option {
	return func(a *App) { a.wireframe = enabled }
}

// WithLogger sets the logger for the app and its shader builder.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithShaderOptions passes options through to the shader builder.
func WithShaderOptions(opts ...ShaderOption) Option {
	return func(a *App) { a.shaderOpts = append(a.shaderOpts, opts...) }
}

// New creates an App. Call Init before Frame or Run.
func New(window Window, device Device, opts ...Option) *App {
	a := &App{
		window:        window,
		device:        device,
		logger:        defaultLogger,
		clearColor:    mgl32.Vec4{0, 0, 0, 1},
		resolutionLoc: -1,
		timeLoc:       -1,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init installs the resize handler, builds the shader program, uploads
// the mesh and resolves the uniform locations.
func (a *App) Init(vertexPath, fragmentPath string) error {
	a.window.OnFramebufferResize(a.Resize)

	builderOpts := append([]ShaderOption{WithShaderLogger(a.logger)}, a.shaderOpts...)
	program, err := NewShaderBuilder(a.device, builderOpts...).Build(vertexPath, fragmentPath)
	if err != nil {
		return fmt.Errorf("build shader program: %w", err)
	}
	a.program = program

	a.mesh = a.device.UploadMesh(Vertices(), Indices())

	a.resolutionLoc = a.device.UniformLocation(program, UniformResolution)
	a.timeLoc = a.device.UniformLocation(program, UniformTime)
	if a.resolutionLoc < 0 {
		a.logger.Debug("uniform not active", "name", UniformResolution)
	}
	if a.timeLoc < 0 {
		a.logger.Debug("uniform not active", "name", UniformTime)
	}

	a.Resize(a.window.FramebufferSize())
	a.device.SetWireframe(a.wireframe)

	a.initialized = true
	a.logger.Debug("app initialized", "program", program, "resolution", a.resolution)
	return nil
}

// State reports whether the loop should keep running.
func (a *App) State() State {
	if a.window.ShouldClose() {
		return StateClosing
	}
	return StateRunning
}

// Run calls Frame until the window is asked to close.
func (a *App) Run() error {
	if !a.initialized {
		return ErrNotInitialized
	}

	for a.State() == StateRunning {
		if err := a.Frame(); err != nil {
			return err
		}
	}

	a.logger.Info("render loop finished", "frames", a.stats.Frames)
	return nil
}

// Frame runs one loop iteration: input, draw, present, event pump.
func (a *App) Frame() error {
	if !a.initialized {
		return ErrNotInitialized
	}

	a.processInput(a.window.UpdateInput())
	a.draw()
	a.window.SwapBuffers()
	a.window.PollEvents()

	a.stats.Frames++
	return nil
}

// Draw renders one frame into the back buffer without presenting it.
func (a *App) Draw() error {
	if !a.initialized {
		return ErrNotInitialized
	}
	a.draw()
	return nil
}

func (a *App) draw() {
	a.device.Clear(a.clearColor)
	a.device.UseProgram(a.program)
	a.device.Uniform2f(a.resolutionLoc, a.resolution)
	a.device.Uniform1f(a.timeLoc, a.elapsed())
	a.device.DrawMesh(a.mesh, IndexCount)
	a.stats.DrawCalls++
}

func (a *App) processInput(input *InputState) {
	if input == nil {
		return
	}
	if input.KeyDown(KeyEscape) && !a.window.ShouldClose() {
		a.logger.Info("close requested", "key", KeyEscape)
		a.window.SetShouldClose(true)
	}
	if input.KeyPressed(KeyF1) {
		a.SetWireframe(!a.wireframe)
	}
}

// elapsed returns the window clock, never earlier than the last value sent.
func (a *App) elapsed() float32 {
	t := float32(a.window.Time())
	if t < a.lastTime {
		t = a.lastTime
	}
	a.lastTime = t
	return t
}

// Resize updates the viewport and the resolution uniform source.
// Non-positive sizes (a minimized window) are ignored.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.device.Viewport(width, height)
	a.resolution = mgl32.Vec2{float32(width), float32(height)}
}

// SetWireframe switches between filled and line polygon mode.
func (a *App) SetWireframe(enabled bool) {
	a.wireframe = enabled
	a.device.SetWireframe(enabled)
	a.logger.Debug("polygon mode", "wireframe", enabled)
}

// Wireframe reports whether line polygon mode is active.
func (a *App) Wireframe() bool {
	return a.wireframe
}

// Resolution returns the last known framebuffer size.
func (a *App) Resolution() mgl32.Vec2 {
	return a.resolution
}

// Program returns the linked program handle, or 0 before Init.
func (a *App) Program() uint32 {
	return a.program
}

// Stats returns the counters accumulated so far.
func (a *App) Stats() Stats {
	return a.stats
}

// Close releases the mesh and program. The App must be re-initialized
// before it can draw again.
func (a *App) Close() {
	if !a.initialized {
		return
	}
	a.device.DeleteMesh(a.mesh)
	a.device.DeleteProgram(a.program)
	a.mesh = MeshHandle{}
	a.program = 0
	a.initialized = false
}
