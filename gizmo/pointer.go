package gizmo

// PointerKind distinguishes input devices; the defensive stuck-session
// check applies to mice only.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// PointerEvent is a device-independent pointer sample in client
// coordinates. Hosts with a single mouse synthesize a constant ID.
type PointerEvent struct {
	ID   int64
	Kind PointerKind
	X, Y float32

	// Button is the button that triggered a down/up event; 0 is primary.
	Button int
	// Buttons is a bitmask of buttons held at the time of the event,
	// bit i for button i.
	Buttons int
}

// Capturer is an optional collaborator granting exclusive pointer capture
// to the widget's host element for the duration of a drag.
type Capturer interface {
	SetPointerCapture(id int64)
	ReleasePointerCapture(id int64)
}

// machineState is the widget's interaction mode. Expressing it as a tagged
// state rather than boolean flags keeps illegal combinations (for example
// a drag session without a captured pointer id) unrepresentable.
type machineState uint8

const (
	stateIdle machineState = iota
	stateHovering
	stateDragging
)

// dragSession is the single in-flight drag, keyed by pointer id. didDrag
// is a one-way latch: once cumulative movement passes the threshold the
// session is an orbit, never again a pick.
type dragSession struct {
	pointerID    int64
	kind         PointerKind
	startX       float32
	startY       float32
	lastX, lastY float32
	didDrag      bool
	snapHit      Hit // best-known hit for a click release; invalid when none
}

func (s *dragSession) displacementSqr(x, y float32) float32 {
	dx := x - s.startX
	dy := y - s.startY
	return dx*dx + dy*dy
}
