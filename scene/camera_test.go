package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"viewport-chrome/math"
)

const tolerance = 1e-4

func newTestOrbit() *OrbitCamera {
	cam := NewCamera(math32.Pi/4, 16.0/9.0, 0.1, 100)
	return NewOrbitCamera(cam, math.Vec3Zero, 5, math.NewVec3(0, 0, 1))
}

func TestNewOrbitCameraFrame(t *testing.T) {
	o := newTestOrbit()

	if d := o.Cam.Position.Distance(o.target); math32.Abs(d-5) > tolerance {
		t.Errorf("expected distance 5, got %f", d)
	}
	if got := o.Up(); !got.ApproxEqual(math.NewVec3(0, 0, 1), tolerance) {
		t.Errorf("up: got %v", got)
	}
	if dot := o.e1.Dot(o.e2); math32.Abs(dot) > tolerance {
		t.Errorf("horizon basis not orthogonal: %f", dot)
	}
	if dot := o.e1.Dot(o.up); math32.Abs(dot) > tolerance {
		t.Errorf("e1 not in horizon plane: %f", dot)
	}
}

func TestOrbitCameraJumpTo(t *testing.T) {
	o := newTestOrbit()

	want := math.NewVec3(4, 0, 0)
	o.JumpTo(want, math.Vec3Zero)

	if got := o.Cam.Position; !got.ApproxEqual(want, tolerance) {
		t.Errorf("JumpTo: expected %v, got %v", want, got)
	}
	if d := o.Distance(); math32.Abs(d-4) > tolerance {
		t.Errorf("expected distance 4, got %f", d)
	}

	// Degenerate pose is rejected.
	o.JumpTo(math.Vec3Zero, math.Vec3Zero)
	if got := o.Cam.Position; !got.ApproxEqual(want, tolerance) {
		t.Errorf("degenerate JumpTo moved camera to %v", got)
	}
}

func TestOrbitCameraTransition(t *testing.T) {
	o := newTestOrbit()
	o.JumpTo(math.NewVec3(4, 0, 0), math.Vec3Zero)

	dest := math.NewVec3(0, 4, 0)
	o.SetLookAt(dest, math.Vec3Zero)

	// A forced zero-dt tick recomputes the pose without advancing time.
	if !o.Update(0) {
		t.Fatal("expected transition in flight")
	}
	start := math.NewVec3(4, 0, 0)
	if got := o.Cam.Position; !got.ApproxEqual(start, tolerance) {
		t.Errorf("transition jumped at t=0: %v", got)
	}

	if o.Update(TransitionDuration / 2) != true {
		t.Fatal("expected transition still running at midpoint")
	}
	if got := o.Cam.Position; got.ApproxEqual(start, tolerance) || got.ApproxEqual(dest, tolerance) {
		t.Errorf("midpoint should be between endpoints, got %v", got)
	}

	if o.Update(TransitionDuration) {
		t.Fatal("expected transition finished")
	}
	if got := o.Cam.Position; !got.ApproxEqual(dest, tolerance) {
		t.Errorf("expected %v, got %v", dest, got)
	}
}

func TestOrbitCameraSetLookAtDegenerate(t *testing.T) {
	o := newTestOrbit()
	before := o.Cam.Position

	o.SetLookAt(math.NewVec3(1, 1, 1), math.NewVec3(1, 1, 1))
	if o.Update(0) {
		t.Error("degenerate SetLookAt started a transition")
	}
	if got := o.Cam.Position; !got.ApproxEqual(before, tolerance) {
		t.Errorf("degenerate SetLookAt moved camera to %v", got)
	}
}

func TestOrbitCameraRotateCancelsTransition(t *testing.T) {
	o := newTestOrbit()
	o.JumpTo(math.NewVec3(4, 0, 0), math.Vec3Zero)
	o.SetLookAt(math.NewVec3(0, 4, 0), math.Vec3Zero)

	o.Rotate(0.1, 0)
	if o.Update(TransitionDuration) {
		t.Error("rotate should cancel the transition")
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	o := newTestOrbit()
	o.Rotate(0, 10)

	height := o.Cam.Position.Sub(o.target).Dot(o.up)
	want := o.Distance() * math32.Sin(maxPitch)
	if math32.Abs(height-want) > tolerance {
		t.Errorf("pitch not clamped: height %f, want %f", height, want)
	}
}

func TestOrbitCameraDollyClamp(t *testing.T) {
	o := newTestOrbit()
	o.Dolly(-100)
	if d := o.Distance(); d != 0.1 {
		t.Errorf("expected minimum distance 0.1, got %f", d)
	}
}

func TestOrbitCameraPan(t *testing.T) {
	o := newTestOrbit()
	o.Pan(1, 0)
	if o.target.ApproxEqual(math.Vec3Zero, tolerance) {
		t.Error("pan did not move the target")
	}
	if d := o.Cam.Position.Distance(o.target); math32.Abs(d-5) > tolerance {
		t.Errorf("pan changed the orbit distance: %f", d)
	}
}

func TestShortestAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{math32.Pi / 2, math32.Pi / 2},
		{3 * math32.Pi / 2, -math32.Pi / 2},
		{-3 * math32.Pi / 2, math32.Pi / 2},
		{2 * math32.Pi, 0},
	}
	for _, tc := range tests {
		if got := shortestAngle(tc.in); math32.Abs(got-tc.want) > tolerance {
			t.Errorf("shortestAngle(%f): expected %f, got %f", tc.in, tc.want, got)
		}
	}
}

func TestCameraForward(t *testing.T) {
	cam := NewCamera(math32.Pi/4, 1, 0.1, 100)
	cam.Position = math.NewVec3(0, 0, 5)
	cam.Target = math.Vec3Zero
	if got := cam.Forward(); !got.ApproxEqual(math.NewVec3(0, 0, -1), tolerance) {
		t.Errorf("forward: got %v", got)
	}
}
