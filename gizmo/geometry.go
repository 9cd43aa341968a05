package gizmo

import (
	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

// maxChamferRatio caps the bevel so opposing chamfers can never meet and
// collapse a face to a point.
const maxChamferRatio = 0.48

// Geometry is the chamfered-cube hit geometry: the renderable mesh data, a
// per-triangle hit table parallel to the index buffer, and a highlight
// sub-mesh per unique hit key. Built once, read-only afterwards.
type Geometry struct {
	Vertices []core.Vertex
	Indices  []uint32

	// Hits[i] classifies triangle i (indices 3i..3i+2).
	Hits []Hit

	// Highlights maps a hit key to the raw, non-indexed vertex positions
	// (x,y,z per vertex, 3 vertices per triangle) of every triangle that
	// shares the hit, so hover feedback renders independently of the base
	// mesh.
	Highlights map[string][]float32
}

// CubeDirections returns all 26 feature directions of the cube ordered
// faces, then edges, then corners. Components are -1, 0 or +1.
func CubeDirections() []math.Vec3 {
	var faces, edges, corners []math.Vec3
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				d := math.NewVec3(float32(x), float32(y), float32(z))
				switch HitForDirection(d).Kind {
				case HitFace:
					faces = append(faces, d)
				case HitEdge:
					edges = append(edges, d)
				case HitCorner:
					corners = append(corners, d)
				}
			}
		}
	}
	out := make([]math.Vec3, 0, 26)
	out = append(out, faces...)
	out = append(out, edges...)
	return append(out, corners...)
}

// BuildChamferedCube constructs the cube hit geometry. Each of the six
// face planes is inset by the chamfer amount, producing flat bevels along
// edges and at corners so all 26 features are individually hittable.
// Degenerate chamfer values are clamped, never rejected.
func BuildChamferedCube(size, chamfer float32) *Geometry {
	half := size / 2
	if chamfer < 0 {
		chamfer = 0
	}
	if limit := maxChamferRatio * half; chamfer > limit {
		chamfer = limit
	}
	inner := half - chamfer

	g := &Geometry{Highlights: make(map[string][]float32)}

	for _, dir := range CubeDirections() {
		hit := HitForDirection(dir)
		switch hit.Kind {
		case HitFace:
			g.addPolygon(hit, facePolygon(dir, half, inner), faceUVs())
		case HitEdge:
			g.addPolygon(hit, edgePolygon(dir, half, inner), nil)
		case HitCorner:
			g.addPolygon(hit, cornerPolygon(dir, half, inner), nil)
		}
	}
	return g
}

// ToMesh wraps the geometry in a renderable mesh.
func (g *Geometry) ToMesh() *scene.Mesh {
	return scene.CreateMeshFromData("ViewCube", g.Vertices, g.Indices)
}

// facePolygon is the inset quad of an axis-aligned face.
func facePolygon(dir math.Vec3, half, inner float32) []math.Vec3 {
	axis, sign := soleAxis(dir)
	u := (axis + 1) % 3
	v := (axis + 2) % 3

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	pts := make([]math.Vec3, 4)
	for i, c := range corners {
		var p [3]float32
		p[axis] = sign * half
		p[u] = c[0] * inner
		p[v] = c[1] * inner
		pts[i] = math.NewVec3(p[0], p[1], p[2])
	}
	return pts
}

// edgePolygon is the bevel quad between two adjacent faces. dir has two
// non-zero axes; the quad runs the length of the remaining axis.
func edgePolygon(dir math.Vec3, half, inner float32) []math.Vec3 {
	d := [3]float32{dir.X, dir.Y, dir.Z}
	i, j, k := -1, -1, -1
	for a := 0; a < 3; a++ {
		if d[a] == 0 {
			k = a
		} else if i < 0 {
			i = a
		} else {
			j = a
		}
	}

	pts := make([]math.Vec3, 0, 4)
	set := func(onI bool, sk float32) {
		var p [3]float32
		if onI {
			p[i] = d[i] * half
			p[j] = d[j] * inner
		} else {
			p[i] = d[i] * inner
			p[j] = d[j] * half
		}
		p[k] = sk * inner
		pts = append(pts, math.NewVec3(p[0], p[1], p[2]))
	}
	set(true, -1)
	set(false, -1)
	set(false, 1)
	set(true, 1)
	return pts
}

// cornerPolygon is the triangular facet where three bevels meet.
func cornerPolygon(dir math.Vec3, half, inner float32) []math.Vec3 {
	return []math.Vec3{
		math.NewVec3(dir.X*half, dir.Y*inner, dir.Z*inner),
		math.NewVec3(dir.X*inner, dir.Y*half, dir.Z*inner),
		math.NewVec3(dir.X*inner, dir.Y*inner, dir.Z*half),
	}
}

func faceUVs() []math.Vec2 {
	return []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// addPolygon fan-triangulates pts, orients each triangle so its geometric
// normal agrees with the feature's outward direction, and records the hit
// table and highlight entries.
func (g *Geometry) addPolygon(hit Hit, pts []math.Vec3, uvs []math.Vec2) {
	outward := hit.Dir.Normalize()
	key := hit.Key()

	uv := func(i int) math.Vec2 {
		if uvs != nil {
			return uvs[i]
		}
		return math.Vec2{}
	}

	for t := 1; t+1 < len(pts); t++ {
		ia, ib, ic := 0, t, t+1
		a, b, c := pts[ia], pts[ib], pts[ic]
		// Flip winding when the cross-product normal points inward.
		if b.Sub(a).Cross(c.Sub(a)).Dot(outward) < 0 {
			ib, ic = ic, ib
			b, c = c, b
		}

		base := uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices,
			core.Vertex{Position: a, Normal: outward, UV: uv(ia), Color: core.ColorWhite},
			core.Vertex{Position: b, Normal: outward, UV: uv(ib), Color: core.ColorWhite},
			core.Vertex{Position: c, Normal: outward, UV: uv(ic), Color: core.ColorWhite},
		)
		g.Indices = append(g.Indices, base, base+1, base+2)
		g.Hits = append(g.Hits, hit)

		g.Highlights[key] = append(g.Highlights[key],
			a.X, a.Y, a.Z,
			b.X, b.Y, b.Z,
			c.X, c.Y, c.Z,
		)
	}
}

func soleAxis(dir math.Vec3) (axis int, sign float32) {
	switch {
	case dir.X != 0:
		return 0, dir.X
	case dir.Y != 0:
		return 1, dir.Y
	default:
		return 2, dir.Z
	}
}
