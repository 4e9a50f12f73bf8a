package learn_test

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/learn"
)

const (
	validVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
out vec3 vColor;
void main() { gl_Position = vec4(aPos, 1.0); vColor = aColor; }
`
	validFragmentSource = `#version 330 core
in vec3 vColor;
out vec4 FragColor;
uniform vec2 u_Resolution;
uniform float u_Time;
void main() { FragColor = vec4(vColor, 1.0); }
`
	brokenVertexSource = `#version 330 core
void mian( {
`
	fakeSyntaxError = "0:2(1): error: syntax error, unexpected '{'"
)

// callLog records device and window calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// fakeDevice is an in-memory learn.Device. A stage compiles when its
// source contains "void main"; linking fails when linkLog is set.
type fakeDevice struct {
	log *callLog

	nextID   uint32
	sources  map[uint32]string
	compiled map[uint32]bool

	compileLog string // returned for failed compiles (fakeSyntaxError if empty)
	linkLog    string // non-empty makes LinkProgram fail
	lastLogMax int

	deletedShaders  []uint32
	deletedPrograms []uint32
	deletedMeshes   []learn.MeshHandle

	uploaded   bool
	uploadedV  []learn.Vertex
	uploadedI  []uint32
	draws      int
	drawCounts []int32
	uniform1f  []float32
	uniform2f  []mgl32.Vec2
	viewport   [2]int
	wireframe  bool
	cleared    []mgl32.Vec4
}

func newFakeDevice(log *callLog) *fakeDevice {
	if log == nil {
		log = &callLog{}
	}
	return &fakeDevice{
		log:      log,
		sources:  make(map[uint32]string),
		compiled: make(map[uint32]bool),
	}
}

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) CreateShader(stage learn.ShaderStage) uint32 {
	id := d.id()
	d.log.add("CreateShader(%s)", stage)
	return id
}

func (d *fakeDevice) ShaderSource(shader uint32, source string) {
	d.sources[shader] = source
}

func (d *fakeDevice) CompileShader(shader uint32) {
	d.compiled[shader] = strings.Contains(d.sources[shader], "void main")
}

func (d *fakeDevice) ShaderCompiled(shader uint32) bool {
	return d.compiled[shader]
}

func (d *fakeDevice) ShaderInfoLog(shader uint32, maxLen int) string {
	d.lastLogMax = maxLen
	if d.compiled[shader] {
		return ""
	}
	msg := d.compileLog
	if msg == "" {
		msg = fakeSyntaxError
	}
	return truncate(msg, maxLen)
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	d.deletedShaders = append(d.deletedShaders, shader)
}

func (d *fakeDevice) CreateProgram() uint32 {
	id := d.id()
	d.log.add("CreateProgram")
	return id
}

func (d *fakeDevice) AttachShader(program, shader uint32) {}

func (d *fakeDevice) LinkProgram(program uint32) {
	d.log.add("LinkProgram")
}

func (d *fakeDevice) ProgramLinked(program uint32) bool {
	return d.linkLog == ""
}

func (d *fakeDevice) ProgramInfoLog(program uint32, maxLen int) string {
	d.lastLogMax = maxLen
	return truncate(d.linkLog, maxLen)
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	d.deletedPrograms = append(d.deletedPrograms, program)
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.log.add("UseProgram")
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.log.add("UniformLocation(%s)", name)
	switch name {
	case learn.UniformResolution:
		return 0
	case learn.UniformTime:
		return 1
	default:
		return -1
	}
}

func (d *fakeDevice) Uniform1f(location int32, v float32) {
	d.log.add("Uniform1f")
	d.uniform1f = append(d.uniform1f, v)
}

func (d *fakeDevice) Uniform2f(location int32, v mgl32.Vec2) {
	d.log.add("Uniform2f")
	d.uniform2f = append(d.uniform2f, v)
}

func (d *fakeDevice) UploadMesh(vertices []learn.Vertex, indices []uint32) learn.MeshHandle {
	d.log.add("UploadMesh")
	d.uploaded = true
	d.uploadedV = vertices
	d.uploadedI = indices
	return learn.MeshHandle{VAO: d.id(), VBO: d.id(), EBO: d.id()}
}

func (d *fakeDevice) DrawMesh(mesh learn.MeshHandle, indexCount int32) {
	d.log.add("DrawMesh")
	if !d.uploaded {
		panic("draw before upload")
	}
	d.draws++
	d.drawCounts = append(d.drawCounts, indexCount)
}

func (d *fakeDevice) DeleteMesh(mesh learn.MeshHandle) {
	d.deletedMeshes = append(d.deletedMeshes, mesh)
}

func (d *fakeDevice) Viewport(width, height int) {
	d.viewport = [2]int{width, height}
}

func (d *fakeDevice) Clear(color mgl32.Vec4) {
	d.log.add("Clear")
	d.cleared = append(d.cleared, color)
}

func (d *fakeDevice) SetWireframe(enabled bool) {
	d.wireframe = enabled
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// fakeWindow is an in-memory learn.Window.
type fakeWindow struct {
	log *callLog

	shouldClose bool
	held        map[learn.Key]bool
	input       *learn.InputState

	width, height int
	onResize      func(width, height int)

	times   []float64 // successive Time results; the last one repeats
	timeIdx int

	swaps, polls int
	onPoll       func(w *fakeWindow) // runs inside PollEvents
}

func newFakeWindow(log *callLog) *fakeWindow {
	if log == nil {
		log = &callLog{}
	}
	return &fakeWindow{
		log:    log,
		held:   make(map[learn.Key]bool),
		input:  learn.NewInputState(),
		width:  1024,
		height: 768,
	}
}

func (w *fakeWindow) ShouldClose() bool { return w.shouldClose }

func (w *fakeWindow) SetShouldClose(value bool) {
	w.log.add("SetShouldClose(%t)", value)
	w.shouldClose = value
}

func (w *fakeWindow) UpdateInput() *learn.InputState {
	w.log.add("UpdateInput")
	w.input.Reset()
	for _, k := range []learn.Key{learn.KeyEscape, learn.KeyF1} {
		w.input.SetKey(k, w.held[k])
	}
	return w.input
}

func (w *fakeWindow) FramebufferSize() (int, int) { return w.width, w.height }

func (w *fakeWindow) Time() float64 {
	if len(w.times) == 0 {
		return 0
	}
	t := w.times[w.timeIdx]
	if w.timeIdx < len(w.times)-1 {
		w.timeIdx++
	}
	return t
}

func (w *fakeWindow) SwapBuffers() {
	w.log.add("SwapBuffers")
	w.swaps++
}

func (w *fakeWindow) PollEvents() {
	w.log.add("PollEvents")
	w.polls++
	if w.onPoll != nil {
		w.onPoll(w)
	}
}

func (w *fakeWindow) OnFramebufferResize(fn func(width, height int)) {
	w.onResize = fn
}

// resize simulates the window system reporting a new framebuffer size.
func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
