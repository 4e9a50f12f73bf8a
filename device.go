package learn

import "github.com/go-gl/mathgl/mgl32"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the graphics API surface the sample needs.
// Every method runs on the thread that owns the context.
type Device interface {
	// Shader stages
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLog returns at most maxLen bytes of the compile log.
	ShaderInfoLog(shader uint32, maxLen int) string
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	// ProgramInfoLog returns at most maxLen bytes of the link log.
	ProgramInfoLog(program uint32, maxLen int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// Uniforms. A location of -1 is silently ignored.
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v mgl32.Vec2)

	// Geometry
	UploadMesh(vertices []Vertex, indices []uint32) MeshHandle
	DrawMesh(mesh MeshHandle, indexCount int32)
	DeleteMesh(mesh MeshHandle)

	// Framebuffer state
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	SetWireframe(enabled bool)
}

// Window is the windowing collaborator driving the loop.
type Window interface {
	ShouldClose() bool
	SetShouldClose(value bool)

	// UpdateInput refreshes and returns the keyboard state for this frame.
	UpdateInput() *InputState

	FramebufferSize() (width, height int)

	// Time returns seconds since the window system was initialized.
	Time() float64

	SwapBuffers()
	PollEvents()

	// OnFramebufferResize registers the handler invoked when the
	// framebuffer changes size. It replaces any previous handler.
	OnFramebufferResize(fn func(width, height int))
}
