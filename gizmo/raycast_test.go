package gizmo

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

func newHUDCamera() *scene.Camera {
	cam := scene.NewCamera(math32.Pi/5, 1, 0.1, 10)
	cam.Position = math.NewVec3(0, 0, 2.75)
	cam.Target = math.Vec3Zero
	cam.Up = math.Vec3Up
	return cam
}

func newTestTester() *HitTester {
	tester := NewHitTester(BuildChamferedCube(1, 0.15), newHUDCamera())
	tester.SetRect(core.Rect{X: 670, Y: 10, Width: 120, Height: 120})
	return tester
}

func TestScreenPointToRay(t *testing.T) {
	cam := newHUDCamera()
	rect := core.Rect{X: 100, Y: 50, Width: 200, Height: 200}

	ray, ok := ScreenPointToRay(200, 150, rect, cam)
	require.True(t, ok)
	require.Equal(t, cam.Position, ray.Origin)
	// The rect center looks straight down the camera forward axis.
	require.True(t, ray.Dir.ApproxEqual(math.NewVec3(0, 0, -1), 1e-5))

	_, ok = ScreenPointToRay(99, 150, rect, cam)
	require.False(t, ok)
	_, ok = ScreenPointToRay(200, 251, rect, cam)
	require.False(t, ok)

	_, ok = ScreenPointToRay(0, 0, core.Rect{}, cam)
	require.False(t, ok)
}

func TestHitTestCenterHitsFrontFace(t *testing.T) {
	tester := newTestTester()

	hit, ok := tester.HitTest(730, 70)
	require.True(t, ok)
	require.Equal(t, HitFace, hit.Kind)
	require.Equal(t, math.NewVec3(0, 0, 1), hit.Dir)
}

func TestHitTestOutsideRect(t *testing.T) {
	tester := newTestTester()

	_, ok := tester.HitTest(5, 5)
	require.False(t, ok)

	// Inside the rect but past the cube's silhouette.
	_, ok = tester.HitTest(671, 11)
	require.False(t, ok)
}

func TestHitTestRespectsOrientation(t *testing.T) {
	tester := newTestTester()
	m := math.Mat4RotationAxis(math.Vec3Up, math32.Pi/2)
	tester.SetOrientation(m)

	hit, ok := tester.HitTest(730, 70)
	require.True(t, ok)
	require.Equal(t, HitFace, hit.Kind)

	// Whatever local face was hit, rotating it by the display orientation
	// must face the camera.
	display := m.MulDir(hit.Dir).Normalize()
	require.True(t, display.ApproxEqual(math.NewVec3(0, 0, 1), 1e-5),
		"local %v maps to %v", hit.Dir, display)
}

func TestNearestTriangleClassifiesFeatures(t *testing.T) {
	geo := BuildChamferedCube(1, 0.15)
	half, inner := float32(0.5), float32(0.35)

	aim := func(origin, at math.Vec3) Hit {
		t.Helper()
		ray := Ray{Origin: origin, Dir: at.Sub(origin).Normalize()}
		idx, ok := nearestTriangle(ray, geo)
		require.True(t, ok, "ray toward %v missed", at)
		return geo.Hits[idx]
	}

	mid := (half + inner) / 2
	edge := aim(math.NewVec3(0, 2, 2), math.NewVec3(0, mid, mid))
	require.Equal(t, HitEdge, edge.Kind)
	require.Equal(t, math.NewVec3(0, 1, 1), edge.Dir)

	c := (half + 2*inner) / 3
	corner := aim(math.NewVec3(2, 2, 2), math.NewVec3(c, c, c))
	require.Equal(t, HitCorner, corner.Kind)
	require.Equal(t, math.NewVec3(1, 1, 1), corner.Dir)

	face := aim(math.NewVec3(2, 0, 0), math.Vec3Zero)
	require.Equal(t, HitFace, face.Kind)
	require.Equal(t, math.NewVec3(1, 0, 0), face.Dir)
}

func TestNearestTrianglePicksNearFace(t *testing.T) {
	geo := BuildChamferedCube(1, 0.15)

	// A ray through the cube center crosses both the entry and exit faces;
	// the nearer one must win.
	ray := Ray{Origin: math.NewVec3(0, 0, 3), Dir: math.NewVec3(0, 0, -1)}
	idx, ok := nearestTriangle(ray, geo)
	require.True(t, ok)
	require.Equal(t, math.NewVec3(0, 0, 1), geo.Hits[idx].Dir)

	ray = Ray{Origin: math.NewVec3(0, 0, -3), Dir: math.NewVec3(0, 0, 1)}
	idx, ok = nearestTriangle(ray, geo)
	require.True(t, ok)
	require.Equal(t, math.NewVec3(0, 0, -1), geo.Hits[idx].Dir)
}

func TestHitTestNilSafety(t *testing.T) {
	var tester *HitTester
	_, ok := tester.HitTest(0, 0)
	require.False(t, ok)

	empty := NewHitTester(nil, newHUDCamera())
	empty.SetRect(core.Rect{Width: 10, Height: 10})
	_, ok = empty.HitTest(5, 5)
	require.False(t, ok)
}
