package gizmo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"viewport-chrome/math"
)

const orientationTolerance = 1e-5

func TestLocalToWorld(t *testing.T) {
	tests := []struct {
		name  string
		local math.Vec3
		world math.Vec3
	}{
		{"right", math.NewVec3(1, 0, 0), math.NewVec3(1, 0, 0)},
		{"left", math.NewVec3(-1, 0, 0), math.NewVec3(-1, 0, 0)},
		{"top", math.NewVec3(0, 1, 0), math.NewVec3(0, 0, 1)},
		{"bottom", math.NewVec3(0, -1, 0), math.NewVec3(0, 0, -1)},
		{"front", math.NewVec3(0, 0, 1), math.NewVec3(0, -1, 0)},
		{"back", math.NewVec3(0, 0, -1), math.NewVec3(0, 1, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LocalToWorld(tc.local)
			require.True(t, got.ApproxEqual(tc.world, orientationTolerance),
				"expected %v, got %v", tc.world, got)
		})
	}
}

func TestLocalToWorldNormalizes(t *testing.T) {
	got := LocalToWorld(math.NewVec3(1, 1, 1))
	require.InDelta(t, 1.0, float64(got.Length()), orientationTolerance)

	want := math.NewVec3(1, -1, 1).Normalize()
	require.True(t, got.ApproxEqual(want, orientationTolerance))
}

func TestLocalToWorldZero(t *testing.T) {
	require.Equal(t, math.Vec3Front, LocalToWorld(math.Vec3Zero))
}

func TestConventionMatrixMatchesMapping(t *testing.T) {
	m := conventionMatrix()
	for _, d := range CubeDirections() {
		want := LocalToWorld(d)
		got := m.MulDir(d).Normalize()
		require.True(t, got.ApproxEqual(want, orientationTolerance),
			"dir %v: expected %v, got %v", d, want, got)
	}
}

func TestOrientationMapperOverride(t *testing.T) {
	var seen math.Vec3
	m := OrientationMapper{Override: func(local math.Vec3) math.Vec3 {
		seen = local
		return math.NewVec3(0, 1, 0)
	}}

	got := m.WorldDirection(math.NewVec3(1, 0, 0))
	require.Equal(t, math.NewVec3(1, 0, 0), seen)
	require.Equal(t, math.NewVec3(0, 1, 0), got)

	// Without an override the fixed mapping applies.
	def := OrientationMapper{}
	require.Equal(t, LocalToWorld(math.Vec3Up), def.WorldDirection(math.Vec3Up))
}
