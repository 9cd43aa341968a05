package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"viewport-chrome/core"
	"viewport-chrome/math"
)

// LoadGLTF opens a .glb or .gltf file and returns one Mesh per primitive,
// with every node's world transform baked into the vertex data. The
// hierarchy is flattened: the viewer renders showcase models as static
// geometry and has no use for a scene graph.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var meshes []*Mesh
	visit := func(idx int, world math.Mat4) error {
		node := doc.Nodes[idx]
		if node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
			return nil
		}
		gm := doc.Meshes[*node.Mesh]
		for pi, prim := range gm.Primitives {
			m, err := loadPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				return fmt.Errorf("mesh %q prim %d: %w", gm.Name, pi, err)
			}
			bakeTransform(m, world)
			meshes = append(meshes, m)
		}
		return nil
	}

	var walk func(idx int, parent math.Mat4) error
	walk = func(idx int, parent math.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil
		}
		world := nodeLocalMatrix(doc.Nodes[idx]).Mul(parent)
		if err := visit(idx, world); err != nil {
			return err
		}
		for _, child := range doc.Nodes[idx].Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	roots := rootNodes(doc)
	for _, r := range roots {
		if err := walk(r, math.Mat4Identity()); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeLocalMatrix(n *gltf.Node) math.Mat4 {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // [x, y, z, w]
	s := n.ScaleOrDefault()

	q := math.Quaternion{
		X: float32(r[0]), Y: float32(r[1]),
		Z: float32(r[2]), W: float32(r[3]),
	}.Normalize()
	rx := q.RotateVector(math.Vec3Right)
	ry := q.RotateVector(math.Vec3Up)
	rz := q.RotateVector(math.Vec3Front)
	rot := math.Mat4{
		{rx.X, rx.Y, rx.Z, 0},
		{ry.X, ry.Y, ry.Z, 0},
		{rz.X, rz.Y, rz.Z, 0},
		{0, 0, 0, 1},
	}

	scale := math.Mat4Scale(math.NewVec3(float32(s[0]), float32(s[1]), float32(s[2])))
	trans := math.Mat4Translation(math.NewVec3(float32(t[0]), float32(t[1]), float32(t[2])))
	return scale.Mul(rot).Mul(trans)
}

func loadPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.NewVec3(p[0], p[1], p[2]),
			Normal:   math.Vec3Front,
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			v.Normal = math.NewVec3(normals[i][0], normals[i][1], normals[i][2])
		}
		if i < len(uvs) {
			v.UV = math.NewVec2(uvs[i][0], uvs[i][1])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	return CreateMeshFromData(name, verts, indices), nil
}

func bakeTransform(m *Mesh, world math.Mat4) {
	rot := world.RotationOnly()
	for i := range m.Vertices {
		m.Vertices[i].Position = world.MulPoint(m.Vertices[i].Position)
		m.Vertices[i].Normal = rot.MulDir(m.Vertices[i].Normal).Normalize()
	}
}
