package gizmo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"viewport-chrome/math"
)

func TestCubeDirections(t *testing.T) {
	dirs := CubeDirections()
	require.Len(t, dirs, 26)

	var faces, edges, corners int
	for _, d := range dirs {
		switch HitForDirection(d).Kind {
		case HitFace:
			faces++
		case HitEdge:
			edges++
		case HitCorner:
			corners++
		}
	}
	require.Equal(t, 6, faces)
	require.Equal(t, 12, edges)
	require.Equal(t, 8, corners)

	// Grouped faces, then edges, then corners.
	for i, d := range dirs {
		kind := HitForDirection(d).Kind
		switch {
		case i < 6:
			require.Equal(t, HitFace, kind, "index %d", i)
		case i < 18:
			require.Equal(t, HitEdge, kind, "index %d", i)
		default:
			require.Equal(t, HitCorner, kind, "index %d", i)
		}
	}
}

func TestHitForDirection(t *testing.T) {
	tests := []struct {
		dir  math.Vec3
		kind HitKind
	}{
		{math.NewVec3(1, 0, 0), HitFace},
		{math.NewVec3(0, -1, 0), HitFace},
		{math.NewVec3(1, 1, 0), HitEdge},
		{math.NewVec3(0, -1, 1), HitEdge},
		{math.NewVec3(1, 1, 1), HitCorner},
		{math.NewVec3(-1, 1, -1), HitCorner},
		{math.NewVec3(0, 0, 0), HitNone},
	}
	for _, tc := range tests {
		require.Equal(t, tc.kind, HitForDirection(tc.dir).Kind, "dir %v", tc.dir)
	}
}

func TestBuildChamferedCubeCoverage(t *testing.T) {
	g := BuildChamferedCube(1, 0.15)

	// 6 face quads + 12 edge quads at two triangles each, 8 corner facets
	// at one.
	require.Len(t, g.Hits, 44)
	require.Len(t, g.Indices, 44*3)
	require.Len(t, g.Vertices, 44*3)
	require.Len(t, g.Highlights, 26)

	for _, h := range g.Hits {
		require.True(t, h.Valid())
	}

	// Every feature direction has at least one triangle and one highlight
	// entry.
	counts := make(map[string]int)
	for _, h := range g.Hits {
		counts[h.Key()]++
	}
	for _, d := range CubeDirections() {
		key := HitForDirection(d).Key()
		require.Positive(t, counts[key], "no triangles for %s", key)
		require.NotEmpty(t, g.Highlights[key], "no highlight for %s", key)
		// 9 floats per triangle.
		require.Equal(t, counts[key]*9, len(g.Highlights[key]), "highlight size for %s", key)
	}
}

func TestBuildChamferedCubeWinding(t *testing.T) {
	g := BuildChamferedCube(2, 0.3)

	for i := 0; i+2 < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Position
		b := g.Vertices[g.Indices[i+1]].Position
		c := g.Vertices[g.Indices[i+2]].Position
		outward := g.Hits[i/3].Dir.Normalize()

		n := b.Sub(a).Cross(c.Sub(a))
		require.Positive(t, n.Dot(outward), "triangle %d winds inward", i/3)
	}
}

func TestBuildChamferedCubeClampsChamfer(t *testing.T) {
	// A chamfer wider than the half-extent must clamp, not invert faces.
	g := BuildChamferedCube(1, 10)
	require.Len(t, g.Hits, 44)

	half := float32(0.5)
	for _, v := range g.Vertices {
		for _, c := range []float32{v.Position.X, v.Position.Y, v.Position.Z} {
			require.LessOrEqual(t, math32Abs(c), half+1e-6)
		}
	}

	g2 := BuildChamferedCube(1, -3)
	require.Len(t, g2.Hits, 44)
}

func math32Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
