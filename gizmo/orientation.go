package gizmo

import (
	"viewport-chrome/math"
)

// The cube's local frame is rotated relative to the world frame by a fixed
// convention: local X maps to world X, local Y to world Z, and local Z to
// world -Y. The application world is Z-up; the cube's labels live in a
// Y-up frame.

// LocalToWorld converts a local cube-feature direction into a world unit
// vector. A zero direction maps to the default (0, 0, 1).
func LocalToWorld(local math.Vec3) math.Vec3 {
	if local.LengthSqr() == 0 {
		return math.Vec3Front
	}
	return math.NewVec3(local.X, -local.Z, local.Y).Normalize()
}

// conventionMatrix is LocalToWorld as a rotation matrix (row-vector form),
// used when composing the cube's display orientation.
func conventionMatrix() math.Mat4 {
	return math.Mat4{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, -1, 0, 0},
		{0, 0, 0, 1},
	}
}

// OrientationMapper converts local cube directions to world directions,
// with an optional host-supplied override for camera-aware mappings.
type OrientationMapper struct {
	Override func(local math.Vec3) math.Vec3
}

func (m OrientationMapper) WorldDirection(local math.Vec3) math.Vec3 {
	if m.Override != nil {
		return m.Override(local)
	}
	return LocalToWorld(local)
}
