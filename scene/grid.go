package scene

import (
	"viewport-chrome/core"
	"viewport-chrome/math"
)

// CreateGrid builds a flat reference grid in the XY plane (Z-up world),
// rendered as line segments.
//
//	size:      total extent (grid spans -size/2 .. +size/2)
//	divisions: number of cells along each axis
//
// The X-axis centre line is red, the Y-axis centre line is green, and all
// other lines are dark gray.
func CreateGrid(size float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2.0
	step := size / float32(divisions)

	gray := core.Color{R: 0.32, G: 0.32, B: 0.32, A: 1}
	red := core.Color{R: 0.85, G: 0.2, B: 0.2, A: 1}
	green := core.Color{R: 0.25, G: 0.75, B: 0.25, A: 1}

	var vertices []core.Vertex
	var indices []uint32

	addLine := func(a, b math.Vec3, c core.Color) {
		base := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: a, Normal: math.Vec3Front, Color: c},
			core.Vertex{Position: b, Normal: math.Vec3Front, Color: c},
		)
		indices = append(indices, base, base+1)
	}

	// Lines parallel to Y (vary X)
	for i := 0; i <= divisions; i++ {
		x := -half + float32(i)*step
		c := gray
		if i == divisions/2 {
			c = green
		}
		addLine(math.NewVec3(x, -half, 0), math.NewVec3(x, half, 0), c)
	}

	// Lines parallel to X (vary Y)
	for i := 0; i <= divisions; i++ {
		y := -half + float32(i)*step
		c := gray
		if i == divisions/2 {
			c = red
		}
		addLine(math.NewVec3(-half, y, 0), math.NewVec3(half, y, 0), c)
	}

	mesh := CreateMeshFromData("Grid", vertices, indices)
	mesh.DrawMode = DrawLines
	return mesh
}
