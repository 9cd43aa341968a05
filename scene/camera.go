package scene

import (
	"github.com/chewxy/math32"

	"viewport-chrome/math"
)

// Camera is a perspective look-at camera. View and projection matrices are
// derived from the public fields on demand.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Position: math.NewVec3(0, 0, 5),
		Target:   math.Vec3Zero,
		Up:       math.Vec3Up,
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

func (c *Camera) UpdateAspect(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.ViewMatrix().Mul(c.ProjectionMatrix())
}

// Forward returns the unit view direction from position toward target.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// maxPitch keeps the orbit slightly off the poles so the look-at basis
// never degenerates.
const maxPitch = math32.Pi/2 - 0.01

// orbitTransition interpolates spherical orbit state over a fixed duration.
type orbitTransition struct {
	fromYaw, toYaw           float32
	fromPitch, toPitch       float32
	fromDistance, toDistance float32
	fromTarget, toTarget     math.Vec3
	elapsed, duration        float32
}

// OrbitCamera orbits a perspective camera around a target point, with an
// arbitrary up axis and animated look-at transitions. It satisfies the view
// cube's camera-controls contract.
type OrbitCamera struct {
	Cam *Camera

	up, e1, e2 math.Vec3 // orthonormal frame: e1/e2 span the horizon plane

	target   math.Vec3
	distance float32
	yaw      float32
	pitch    float32

	anim *orbitTransition
}

// TransitionDuration is the length of an animated look-at move in seconds.
const TransitionDuration = 0.35

func NewOrbitCamera(cam *Camera, target math.Vec3, distance float32, up math.Vec3) *OrbitCamera {
	up = up.Normalize()
	helper := math.Vec3Up
	if math32.Abs(up.Dot(helper)) > 0.9 {
		helper = math.Vec3Right
	}
	e1 := helper.Cross(up).Normalize()
	e2 := up.Cross(e1)

	o := &OrbitCamera{
		Cam:      cam,
		up:       up,
		e1:       e1,
		e2:       e2,
		target:   target,
		distance: distance,
		yaw:      math32.Pi / 4,
		pitch:    0.5,
	}
	o.apply()
	return o
}

func (o *OrbitCamera) Target() math.Vec3   { return o.target }
func (o *OrbitCamera) Position() math.Vec3 { return o.Cam.Position }
func (o *OrbitCamera) Up() math.Vec3       { return o.up }
func (o *OrbitCamera) Distance() float32   { return o.distance }

// Rotate applies azimuth/polar deltas in radians. Any in-flight transition
// is cancelled at its current state.
func (o *OrbitCamera) Rotate(azimuth, polar float32) {
	o.anim = nil
	o.yaw += azimuth
	o.pitch = clamp(o.pitch+polar, -maxPitch, maxPitch)
	o.apply()
}

// Dolly moves the camera along the view direction.
func (o *OrbitCamera) Dolly(delta float32) {
	o.anim = nil
	o.distance += delta
	if o.distance < 0.1 {
		o.distance = 0.1
	}
	o.apply()
}

// Pan translates the target in the current view plane.
func (o *OrbitCamera) Pan(dx, dy float32) {
	o.anim = nil
	view := o.Cam.ViewMatrix()
	right := math.NewVec3(view[0][0], view[1][0], view[2][0])
	upv := math.NewVec3(view[0][1], view[1][1], view[2][1])
	o.target = o.target.Add(right.Mul(dx)).Add(upv.Mul(dy))
	o.apply()
}

// SetLookAt starts an animated transition placing the camera at position
// looking at target.
func (o *OrbitCamera) SetLookAt(position, target math.Vec3) {
	toYaw, toPitch, toDistance, ok := o.spherical(position, target)
	if !ok {
		return
	}
	o.anim = &orbitTransition{
		fromYaw: o.yaw, toYaw: o.yaw + shortestAngle(toYaw-o.yaw),
		fromPitch: o.pitch, toPitch: toPitch,
		fromDistance: o.distance, toDistance: toDistance,
		fromTarget: o.target, toTarget: target,
		duration: TransitionDuration,
	}
}

// JumpTo places the camera immediately, with no transition.
func (o *OrbitCamera) JumpTo(position, target math.Vec3) {
	yaw, pitch, distance, ok := o.spherical(position, target)
	if !ok {
		return
	}
	o.anim = nil
	o.yaw, o.pitch, o.distance, o.target = yaw, pitch, distance, target
	o.apply()
}

// Update advances any in-flight transition and recomputes the camera pose.
// It reports whether a transition is still running. Update(0) forces an
// immediate pose recompute without advancing time.
func (o *OrbitCamera) Update(dt float32) bool {
	if a := o.anim; a != nil {
		a.elapsed += dt
		t := a.elapsed / a.duration
		if t >= 1 {
			t = 1
		}
		s := t * t * (3 - 2*t) // smoothstep
		o.yaw = a.fromYaw + (a.toYaw-a.fromYaw)*s
		o.pitch = a.fromPitch + (a.toPitch-a.fromPitch)*s
		o.distance = a.fromDistance + (a.toDistance-a.fromDistance)*s
		o.target = a.fromTarget.Lerp(a.toTarget, s)
		if t >= 1 {
			o.anim = nil
		}
	}
	o.apply()
	return o.anim != nil
}

// spherical decomposes a pose into yaw/pitch/distance around the up frame.
func (o *OrbitCamera) spherical(position, target math.Vec3) (yaw, pitch, distance float32, ok bool) {
	offset := position.Sub(target)
	distance = offset.Length()
	if distance <= 0 || !offset.IsFinite() {
		return 0, 0, 0, false
	}
	dir := offset.Div(distance)
	pitch = math32.Asin(clamp(dir.Dot(o.up), -1, 1))
	pitch = clamp(pitch, -maxPitch, maxPitch)
	yaw = math32.Atan2(dir.Dot(o.e2), dir.Dot(o.e1))
	return yaw, pitch, distance, true
}

func (o *OrbitCamera) apply() {
	cosPitch := math32.Cos(o.pitch)
	horizontal := o.e1.Mul(math32.Cos(o.yaw)).Add(o.e2.Mul(math32.Sin(o.yaw)))
	offset := horizontal.Mul(o.distance * cosPitch).Add(o.up.Mul(o.distance * math32.Sin(o.pitch)))
	o.Cam.Position = o.target.Add(offset)
	o.Cam.Target = o.target
	o.Cam.Up = o.up
}

// shortestAngle wraps a into (-pi, pi] so yaw transitions take the short
// way around.
func shortestAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
