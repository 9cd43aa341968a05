package gizmo

import (
	"github.com/chewxy/math32"

	"viewport-chrome/math"
)

// CameraControls is the camera-controls collaborator the widget drives. An
// orbit-style controller satisfies it; the widget tolerates a nil
// collaborator by treating every camera operation as a no-op.
type CameraControls interface {
	// Target and Position report the current pose, not the end state of
	// any in-flight transition.
	Target() math.Vec3
	Position() math.Vec3
	Up() math.Vec3

	// Rotate applies incremental azimuth/polar orbit deltas in radians.
	Rotate(azimuth, polar float32)

	// SetLookAt starts an animated transition placing the camera at
	// position looking at target.
	SetLookAt(position, target math.Vec3)

	// Update advances transitions by dt seconds and recomputes the pose;
	// Update(0) forces an immediate tick so dependent systems observe the
	// new pose synchronously.
	Update(dt float32) bool
}

// defaultPoleThreshold is the cosine above which a requested direction
// counts as aligned with the up axis.
const defaultPoleThreshold = 0.98

// poleNudge is the fraction of the current lateral view direction blended
// into a near-pole move so the orbit keeps its longitude instead of
// snapping to an arbitrary one.
const poleNudge = 0.05

// CameraDriver repositions the camera along requested world directions at
// the current orbit radius, and relays raw orbit input.
type CameraDriver struct {
	Controls      CameraControls
	PoleThreshold float32
}

func NewCameraDriver(controls CameraControls) *CameraDriver {
	return &CameraDriver{Controls: controls, PoleThreshold: defaultPoleThreshold}
}

// MoveTo orbits the camera to look along -worldDir at the current radius,
// preserving the target point. Degenerate radii and directions are silent
// no-ops.
func (d *CameraDriver) MoveTo(worldDir math.Vec3) {
	c := d.Controls
	if c == nil {
		return
	}

	target := c.Target()
	pos := c.Position()
	if !target.IsFinite() || !pos.IsFinite() {
		return
	}
	radius := pos.Distance(target)
	if !(radius > 0) || math32.IsInf(radius, 0) {
		return
	}

	dir := worldDir.Normalize()
	if dir.LengthSqr() == 0 {
		return
	}

	up := c.Up().Normalize()
	if math32.Abs(dir.Dot(up)) >= d.PoleThreshold {
		// Near the pole the azimuth is ill-defined; bias it with the
		// current lateral view so the move keeps its longitude.
		view := pos.Sub(target)
		lateral := view.Sub(up.Mul(view.Dot(up)))
		if lateral.LengthSqr() > 1e-8 {
			dir = dir.Add(lateral.Normalize().Mul(poleNudge)).Normalize()
		}
	}

	c.SetLookAt(target.Add(dir.Mul(radius)), target)
	c.Update(0)
}

// Orbit relays incremental azimuth/polar deltas to the collaborator.
func (d *CameraDriver) Orbit(azimuth, polar float32) {
	if d.Controls == nil {
		return
	}
	d.Controls.Rotate(azimuth, polar)
}

// RotateAroundUp spins the camera position around the up axis about the
// target by the given angle.
func (d *CameraDriver) RotateAroundUp(radians float32) {
	c := d.Controls
	if c == nil {
		return
	}
	target := c.Target()
	offset := c.Position().Sub(target)
	if !offset.IsFinite() || offset.LengthSqr() == 0 {
		return
	}
	q := math.QuaternionFromAxisAngle(c.Up(), radians)
	c.SetLookAt(target.Add(q.RotateVector(offset)), target)
	c.Update(0)
}
