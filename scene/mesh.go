package scene

import (
	"viewport-chrome/core"
)

// DrawMode controls the GL primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawLines             // pairs of indices form line segments
)

// Mesh holds CPU-side vertex/index data. GPU upload is managed by the
// renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	DrawMode DrawMode

	// GPUData is set by the renderer backend. Do not access directly.
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	if m.DrawMode != DrawTriangles {
		return 0
	}
	return len(m.Indices) / 3
}
