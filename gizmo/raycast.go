package gizmo

import (
	"github.com/chewxy/math32"

	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

// Ray is a ray in HUD space.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3
}

// ScreenPointToRay converts a point in client coordinates into a ray from
// the HUD camera through that pixel of the gizmo's screen rect. It reports
// false for points outside the rect or a degenerate rect.
func ScreenPointToRay(x, y float32, rect core.Rect, cam *scene.Camera) (Ray, bool) {
	if rect.Width <= 0 || rect.Height <= 0 || !rect.Contains(x, y) {
		return Ray{}, false
	}

	// Normalized device coordinates, Y flipped (client Y grows downward).
	ndcX := (2*(x-rect.X))/rect.Width - 1
	ndcY := 1 - (2*(y-rect.Y))/rect.Height

	forward := cam.Target.Sub(cam.Position).Normalize()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward)

	tanHalf := math32.Tan(cam.FOV / 2)
	dir := forward.
		Add(right.Mul(ndcX * tanHalf * cam.Aspect)).
		Add(up.Mul(ndcY * tanHalf)).
		Normalize()

	return Ray{Origin: cam.Position, Dir: dir}, true
}

// HitTester maps screen points to classified cube hits. The cube is
// displayed rotated by an orientation matrix (synced from the main camera
// each frame); rays are transformed into cube-local space instead of
// transforming every triangle out.
type HitTester struct {
	geo  *Geometry
	cam  *scene.Camera
	rect core.Rect

	orientation math.Mat4 // cube local -> HUD display space, rotation only
	inverse     math.Mat4
}

func NewHitTester(geo *Geometry, cam *scene.Camera) *HitTester {
	t := &HitTester{geo: geo, cam: cam}
	t.SetOrientation(math.Mat4Identity())
	return t
}

func (t *HitTester) SetRect(rect core.Rect) {
	t.rect = rect
	if t.cam != nil {
		t.cam.UpdateAspect(rect.Width, rect.Height)
	}
}

func (t *HitTester) Rect() core.Rect { return t.rect }

// SetOrientation updates the cube's display rotation. The matrix must be a
// pure rotation; its inverse is taken as the transpose.
func (t *HitTester) SetOrientation(m math.Mat4) {
	t.orientation = m
	t.inverse = m.Transpose()
}

func (t *HitTester) Orientation() math.Mat4 { return t.orientation }

// HitTest casts a ray through the HUD camera and classifies the nearest
// intersected triangle. It has no side effects and reports false for
// out-of-bounds points, missing geometry/camera, or no intersection.
func (t *HitTester) HitTest(x, y float32) (Hit, bool) {
	if t == nil || t.geo == nil || t.cam == nil {
		return Hit{}, false
	}
	ray, ok := ScreenPointToRay(x, y, t.rect, t.cam)
	if !ok {
		return Hit{}, false
	}

	local := Ray{
		Origin: t.inverse.MulDir(ray.Origin),
		Dir:    t.inverse.MulDir(ray.Dir),
	}

	idx, ok := nearestTriangle(local, t.geo)
	if !ok {
		return Hit{}, false
	}
	return t.geo.Hits[idx], true
}

// nearestTriangle runs Möller-Trumbore over every triangle and returns the
// index of the closest front hit.
func nearestTriangle(ray Ray, geo *Geometry) (int, bool) {
	best := -1
	bestDist := float32(math32.MaxFloat32)

	for i := 0; i+2 < len(geo.Indices); i += 3 {
		v0 := geo.Vertices[geo.Indices[i]].Position
		v1 := geo.Vertices[geo.Indices[i+1]].Position
		v2 := geo.Vertices[geo.Indices[i+2]].Position

		t, hit := mollerTrumbore(ray, v0, v1, v2)
		if hit && t < bestDist {
			bestDist = t
			best = i / 3
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// mollerTrumbore implements the Möller-Trumbore ray-triangle intersection
// algorithm, returning the ray parameter of the hit.
func mollerTrumbore(ray Ray, v0, v1, v2 math.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Dir.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return 0, false // ray parallel to triangle plane
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
