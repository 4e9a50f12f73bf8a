package learn

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex.
// Memory layout matches the attribute pointers the device installs:
// position at location 0, color at location 1, no padding.
type Vertex struct {
	Pos   mgl32.Vec3 // Position (x, y, z)
	Color mgl32.Vec3 // Color (r, g, b)
}

// Vertex attribute layout.
const (
	AttribPosition uint32 = 0
	AttribColor    uint32 = 1

	// ComponentsPerAttrib is the float count of each attribute (vec3).
	ComponentsPerAttrib = 3
	// FloatsPerVertex is the interleaved float count of one vertex.
	FloatsPerVertex = 2 * ComponentsPerAttrib

	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	PositionOffset = unsafe.Offsetof(Vertex{}.Pos)
	ColorOffset    = unsafe.Offsetof(Vertex{}.Color)
)

// Mesh sizes.
const (
	VertexCount = 5
	IndexCount  = 6
)

var meshVertices = [VertexCount]Vertex{
	{Pos: mgl32.Vec3{0.7, 0.7, 0.0}, Color: mgl32.Vec3{1, 0, 0}},   // top right
	{Pos: mgl32.Vec3{0.7, -0.7, 0.0}, Color: mgl32.Vec3{0, 1, 0}},  // bottom right
	{Pos: mgl32.Vec3{0.0, 0.0, 0.0}, Color: mgl32.Vec3{0, 0, 1}},   // center
	{Pos: mgl32.Vec3{-0.7, -0.7, 0.0}, Color: mgl32.Vec3{0, 1, 0}}, // bottom left
	{Pos: mgl32.Vec3{-0.7, 0.7, 0.0}, Color: mgl32.Vec3{1, 0, 0}},  // top left
}

var meshIndices = [IndexCount]uint32{
	2, 1, 0, // right triangle
	2, 3, 4, // left triangle
}

// MeshHandle references a mesh uploaded to the device.
type MeshHandle struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// Vertices returns a copy of the mesh vertices.
func Vertices() []Vertex {
	out := make([]Vertex, len(meshVertices))
	copy(out, meshVertices[:])
	return out
}

// Indices returns a copy of the mesh indices.
func Indices() []uint32 {
	out := make([]uint32, len(meshIndices))
	copy(out, meshIndices[:])
	return out
}

// VertexData returns the mesh vertices flattened into interleaved floats,
// FloatsPerVertex per vertex.
func VertexData() []float32 {
	out := make([]float32, 0, len(meshVertices)*FloatsPerVertex)
	for _, v := range meshVertices {
		out = append(out, v.Pos[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}
