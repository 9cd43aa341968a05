package math

import (
	"testing"

	"github.com/chewxy/math32"
)

const tolerance = 0.0001

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got, want := v1.Add(v2), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), float32(32); got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}

	// Right x Up = Front in a right-handed system
	if got := Vec3Right.Cross(Vec3Up); got != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	if got, want := v.Normalize(), NewVec3(1, 0, 0); got != want {
		t.Errorf("Normalize: expected %v, got %v", want, got)
	}
	if l := NewVec3(1, 2, 2).Normalize().Length(); !approx(l, 1) {
		t.Errorf("Normalize: expected length 1, got %v", l)
	}

	// Zero vector stays zero rather than producing NaN
	if got := Vec3Zero.Normalize(); got != Vec3Zero {
		t.Errorf("Normalize zero: expected %v, got %v", Vec3Zero, got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("IsFinite: expected true for a plain vector")
	}
	if NewVec3(math32.NaN(), 0, 0).IsFinite() {
		t.Error("IsFinite: expected false for NaN component")
	}
	if NewVec3(0, math32.Inf(1), 0).IsFinite() {
		t.Error("IsFinite: expected false for Inf component")
	}
}

func TestMat4MulPoint(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if got := m.MulPoint(Vec3Zero); got != translation {
		t.Errorf("MulPoint: expected %v, got %v", translation, got)
	}

	// MulDir must ignore translation
	if got := m.MulDir(Vec3Right); got != Vec3Right {
		t.Errorf("MulDir: expected %v, got %v", Vec3Right, got)
	}
}

func TestMat4RotationAxis(t *testing.T) {
	m := Mat4RotationAxis(Vec3Front, math32.Pi/2)
	got := m.MulDir(Vec3Right)
	if !got.ApproxEqual(Vec3Up, tolerance) {
		t.Errorf("RotationAxis: expected %v, got %v", Vec3Up, got)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The view matrix transforms the eye position to the origin
	got := m.MulPoint(eye)
	if !got.ApproxEqual(Vec3Zero, tolerance) {
		t.Errorf("LookAt: expected eye to map to origin, got %v", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4LookAt(NewVec3(3, -2, 7), NewVec3(0.5, 1, 0), Vec3Up)
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approx(id[i][j], want[i][j]) {
				t.Fatalf("Inverse: M*M^-1 [%d][%d] = %v, want %v", i, j, id[i][j], want[i][j])
			}
		}
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	view := Mat4LookAt(NewVec3(1, 4, -3), Vec3Zero, Vec3Up)
	p := NewVec3(-2, 0.5, 1.5)

	back := view.Inverse().MulPoint(view.MulPoint(p))
	if !back.ApproxEqual(p, tolerance) {
		t.Errorf("Inverse round trip: expected %v, got %v", p, back)
	}
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, math32.Pi/2)
	got := q.RotateVector(Vec3Right)
	if !got.ApproxEqual(Vec3Back, tolerance) {
		t.Errorf("RotateVector: expected %v, got %v", Vec3Back, got)
	}

	if q := QuaternionIdentity(); q.RotateVector(Vec3Front) != Vec3Front {
		t.Error("identity quaternion must not rotate")
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationAxis(Vec3Up, 0.3)
	m2 := Mat4Translation(NewVec3(1, 2, 3))
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
