// Package opengl provides the GLFW window and the OpenGL 3.3 core device
// the learn package renders with.
package opengl

import (
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/learn"
)

// Device implements learn.Device on the current OpenGL context.
// gl.Init must have succeeded on the calling thread (OpenWindow does it).
type Device struct{}

// NewDevice returns a device bound to the current context.
func NewDevice() *Device {
	return &Device{}
}

var _ learn.Device = (*Device)(nil)

func (d *Device) CreateShader(stage learn.ShaderStage) uint32 {
	switch stage {
	case learn.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32, maxLen int) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, maxLen, func(size int32, written *int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, size, written, buf)
	})
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32, maxLen int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return readInfoLog(logLength, maxLen, func(size int32, written *int32, buf *uint8) {
		gl.GetProgramInfoLog(program, size, written, buf)
	})
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform2f(location int32, v mgl32.Vec2) {
	gl.Uniform2f(location, v.X(), v.Y())
}

// UploadMesh creates a VAO with a static vertex buffer and element buffer
// and installs the position and color attribute pointers.
func (d *Device) UploadMesh(vertices []learn.Vertex, indices []uint32) learn.MeshHandle {
	var m learn.MeshHandle

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.GenBuffers(1, &m.EBO)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(learn.VertexStride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(learn.AttribPosition, learn.ComponentsPerAttrib, gl.FLOAT, false,
		learn.VertexStride, learn.PositionOffset)
	gl.EnableVertexAttribArray(learn.AttribPosition)

	gl.VertexAttribPointerWithOffset(learn.AttribColor, learn.ComponentsPerAttrib, gl.FLOAT, false,
		learn.VertexStride, learn.ColorOffset)
	gl.EnableVertexAttribArray(learn.AttribColor)

	// The element buffer binding is VAO state and must stay bound.
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m
}

func (d *Device) DrawMesh(m learn.MeshHandle, indexCount int32) {
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
}

func (d *Device) DeleteMesh(m learn.MeshHandle) {
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Snapshot reads the current framebuffer into an image.
// Call it after drawing and before swapping buffers.
func (d *Device) Snapshot(width, height int) *image.RGBA {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, flipRows(pixels, width*4, height))
	return img
}

// flipRows reverses row order in place (OpenGL origin is bottom-left).
func flipRows(pixels []byte, rowLen, rows int) []byte {
	tmp := make([]byte, rowLen)
	for y := 0; y < rows/2; y++ {
		top := y * rowLen
		bot := (rows - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
	return pixels
}

// readInfoLog fetches a driver info log of the reported length, capped at
// maxLen bytes (maxLen <= 0 means uncapped).
func readInfoLog(logLength int32, maxLen int, get func(size int32, written *int32, buf *uint8)) string {
	if maxLen > 0 && int(logLength) > maxLen {
		logLength = int32(maxLen)
	}
	if logLength <= 0 {
		return ""
	}

	buf := make([]byte, logLength)
	var written int32
	get(logLength, &written, &buf[0])
	if written < 0 || int(written) > len(buf) {
		written = int32(len(buf))
	}
	return string(buf[:written])
}
