package gizmo

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"viewport-chrome/math"
	"viewport-chrome/scene"
)

var _ CameraControls = (*scene.OrbitCamera)(nil)

// fakeControls records every camera operation the widget issues. The world
// is Z-up.
type fakeControls struct {
	target   math.Vec3
	position math.Vec3
	up       math.Vec3

	rotations [][2]float32
	lookAts   int
	updates   int
}

func newFakeControls(position math.Vec3) *fakeControls {
	return &fakeControls{
		position: position,
		up:       math.NewVec3(0, 0, 1),
	}
}

func (f *fakeControls) Target() math.Vec3   { return f.target }
func (f *fakeControls) Position() math.Vec3 { return f.position }
func (f *fakeControls) Up() math.Vec3       { return f.up }

func (f *fakeControls) Rotate(azimuth, polar float32) {
	f.rotations = append(f.rotations, [2]float32{azimuth, polar})
}

func (f *fakeControls) SetLookAt(position, target math.Vec3) {
	f.position = position
	f.target = target
	f.lookAts++
}

func (f *fakeControls) Update(dt float32) bool {
	f.updates++
	return false
}

func (f *fakeControls) cameraCalls() int {
	return len(f.rotations) + f.lookAts
}

func TestMoveToPreservesRadius(t *testing.T) {
	c := newFakeControls(math.NewVec3(4, 0, 0))
	d := NewCameraDriver(c)

	d.MoveTo(math.NewVec3(0, -1, 0))

	require.Equal(t, 1, c.lookAts)
	require.True(t, c.position.ApproxEqual(math.NewVec3(0, -4, 0), 1e-5),
		"position %v", c.position)
	require.InDelta(t, 4.0, float64(c.position.Distance(c.target)), 1e-5)
	// The pose must be observable synchronously.
	require.Equal(t, 1, c.updates)
}

func TestMoveToNormalizesDirection(t *testing.T) {
	c := newFakeControls(math.NewVec3(0, 3, 0))
	d := NewCameraDriver(c)

	d.MoveTo(math.NewVec3(10, 0, 0))
	require.True(t, c.position.ApproxEqual(math.NewVec3(3, 0, 0), 1e-5))
}

func TestMoveToPoleKeepsLongitude(t *testing.T) {
	c := newFakeControls(math.NewVec3(5, 0, 0))
	d := NewCameraDriver(c)

	d.MoveTo(math.NewVec3(0, 0, 1))

	require.Equal(t, 1, c.lookAts)
	// Nudged off the exact pole toward the previous lateral direction.
	require.Greater(t, c.position.X, float32(0))
	require.InDelta(t, 0, float64(c.position.Y), 1e-5)
	require.Greater(t, c.position.Z, float32(4))
	require.InDelta(t, 5.0, float64(c.position.Distance(c.target)), 1e-4)
}

func TestMoveToDegenerateInputs(t *testing.T) {
	// Zero radius.
	c := newFakeControls(math.Vec3Zero)
	NewCameraDriver(c).MoveTo(math.NewVec3(1, 0, 0))
	require.Zero(t, c.cameraCalls())

	// Zero direction.
	c = newFakeControls(math.NewVec3(4, 0, 0))
	NewCameraDriver(c).MoveTo(math.Vec3Zero)
	require.Zero(t, c.cameraCalls())

	// Non-finite pose.
	c = newFakeControls(math.NewVec3(math32.NaN(), 0, 0))
	NewCameraDriver(c).MoveTo(math.NewVec3(1, 0, 0))
	require.Zero(t, c.cameraCalls())

	// Nil collaborator.
	d := NewCameraDriver(nil)
	d.MoveTo(math.NewVec3(1, 0, 0))
	d.Orbit(0.1, 0.1)
	d.RotateAroundUp(1)
}

func TestOrbitRelays(t *testing.T) {
	c := newFakeControls(math.NewVec3(4, 0, 0))
	d := NewCameraDriver(c)

	d.Orbit(0.25, -0.5)
	require.Equal(t, [][2]float32{{0.25, -0.5}}, c.rotations)
}

func TestRotateAroundUp(t *testing.T) {
	c := newFakeControls(math.NewVec3(4, 0, 0))
	d := NewCameraDriver(c)

	d.RotateAroundUp(math32.Pi / 2)

	require.Equal(t, 1, c.lookAts)
	require.True(t, c.position.ApproxEqual(math.NewVec3(0, 4, 0), 1e-5),
		"position %v", c.position)

	d.RotateAroundUp(-math32.Pi / 2)
	require.True(t, c.position.ApproxEqual(math.NewVec3(4, 0, 0), 1e-5),
		"position %v", c.position)
}
