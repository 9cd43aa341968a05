package gizmo

import (
	"github.com/chewxy/math32"

	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

// Config holds the widget's tunables. Zero values fall back to defaults.
type Config struct {
	CubeSize float32 // cube extent in HUD units
	Chamfer  float32 // bevel width in HUD units
	SizePx   float32 // on-screen side length of the gizmo square
	Pad      float32 // gap between the reserved region and the gizmo

	DragThresholdPx float32 // cumulative movement before a press becomes a drag
	RotateSpeed     float32 // radians of orbit per pixel of drag
	FOV             float32 // HUD camera vertical field of view, radians
}

func DefaultConfig() Config {
	return Config{
		CubeSize:        1,
		Chamfer:         0.15,
		SizePx:          120,
		Pad:             10,
		DragThresholdPx: 3,
		RotateSpeed:     0.008,
		FOV:             math32.Pi / 5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CubeSize <= 0 {
		c.CubeSize = d.CubeSize
	}
	if c.Chamfer <= 0 {
		c.Chamfer = d.Chamfer
	}
	if c.SizePx <= 0 {
		c.SizePx = d.SizePx
	}
	if c.Pad <= 0 {
		c.Pad = d.Pad
	}
	if c.DragThresholdPx <= 0 {
		c.DragThresholdPx = d.DragThresholdPx
	}
	if c.RotateSpeed <= 0 {
		c.RotateSpeed = d.RotateSpeed
	}
	if c.FOV <= 0 {
		c.FOV = d.FOV
	}
	return c
}

// Callbacks are optional host-supplied strategies. Each falls back to the
// built-in behavior when absent; the boolean-returning ones report whether
// the host handled the action.
type Callbacks struct {
	// OnSelectDirection is invoked with the world direction of a resolved
	// click. Returning true suppresses the built-in camera move.
	OnSelectDirection func(world math.Vec3) bool

	// OnOrbitInput is invoked per drag-orbit tick with azimuth/polar
	// deltas. Returning true suppresses the built-in rotate.
	OnOrbitInput func(azimuth, polar float32) bool

	// OnRotateAroundUp is invoked on a quick-rotate button press.
	// Returning true suppresses the built-in rotate.
	OnRotateAroundUp func(radians float32) bool

	// WorldFromLocal overrides the fixed local-to-world direction mapping.
	WorldFromLocal func(local math.Vec3) math.Vec3
}

// quick-rotate button placement, relative to the gizmo rect
const (
	buttonSizePx = 22
	buttonGapPx  = 4
)

// ViewCube is the interactive orientation gizmo: a chamfered cube rendered
// in its own HUD layer whose faces, edges and corners snap the camera to
// canonical orientations, with drag-to-orbit and quick-rotate buttons.
//
// All methods are main-thread only; pointer handling is synchronous within
// event dispatch.
type ViewCube struct {
	cfg       Config
	callbacks Callbacks
	mapper    OrientationMapper
	driver    *CameraDriver
	capturer  Capturer

	geo    *Geometry
	hudCam *scene.Camera
	tester *HitTester
	layout Layout

	state   machineState
	session *dragSession
	hover   Hit

	lastX, lastY float32
	havePointer  bool

	mounted bool
}

func New(cfg Config, controls CameraControls, callbacks Callbacks) *ViewCube {
	cfg = cfg.withDefaults()
	return &ViewCube{
		cfg:       cfg,
		callbacks: callbacks,
		mapper:    OrientationMapper{Override: callbacks.WorldFromLocal},
		driver:    NewCameraDriver(controls),
		layout:    Layout{SizePx: cfg.SizePx, Pad: cfg.Pad},
	}
}

// SetCapturer installs the optional pointer-capture collaborator.
func (vc *ViewCube) SetCapturer(c Capturer) { vc.capturer = c }

// Mount builds the cube geometry and the dedicated HUD camera. Idempotent.
func (vc *ViewCube) Mount() {
	if vc.mounted {
		return
	}
	vc.geo = BuildChamferedCube(vc.cfg.CubeSize, vc.cfg.Chamfer)

	cam := scene.NewCamera(vc.cfg.FOV, 1, vc.cfg.CubeSize*0.1, vc.cfg.CubeSize*10)
	cam.Position = math.NewVec3(0, 0, vc.cfg.CubeSize*2.75)
	cam.Target = math.Vec3Zero
	cam.Up = math.Vec3Up
	vc.hudCam = cam

	vc.tester = NewHitTester(vc.geo, cam)
	vc.tester.SetRect(vc.layout.Rect())
	vc.mounted = true
}

// Unmount releases the widget's resources and abandons any interaction in
// flight. GPU-side buffers uploaded by the host renderer are the host's to
// free; this clears everything the widget owns even if Mount only
// partially completed.
func (vc *ViewCube) Unmount() {
	vc.abandonSession()
	vc.geo = nil
	vc.hudCam = nil
	vc.tester = nil
	vc.havePointer = false
	vc.mounted = false
}

func (vc *ViewCube) Mounted() bool         { return vc.mounted }
func (vc *ViewCube) Geometry() *Geometry   { return vc.geo }
func (vc *ViewCube) Camera() *scene.Camera { return vc.hudCam }
func (vc *ViewCube) Driver() *CameraDriver { return vc.driver }

// Resize recomputes the HUD placement for a new window size and reserved
// viewport region.
func (vc *ViewCube) Resize(windowW, windowH float32, region core.Rect) {
	vc.layout.Update(windowW, windowH, region)
	if vc.tester != nil {
		vc.tester.SetRect(vc.layout.Rect())
	}
}

// Rect is the gizmo's current screen rect.
func (vc *ViewCube) Rect() core.Rect { return vc.layout.Rect() }

// ButtonRects returns the screen rects of the counter-clockwise and
// clockwise quick-rotate buttons.
func (vc *ViewCube) ButtonRects() (ccw, cw core.Rect) {
	r := vc.layout.Rect()
	if r.Width <= 0 || r.Height <= 0 {
		return core.Rect{}, core.Rect{}
	}
	y := r.Bottom() + buttonGapPx
	ccw = core.Rect{X: r.X, Y: y, Width: buttonSizePx, Height: buttonSizePx}
	cw = core.Rect{X: r.Right() - buttonSizePx, Y: y, Width: buttonSizePx, Height: buttonSizePx}
	return ccw, cw
}

// Orientation is the cube's display rotation for the HUD render pass.
func (vc *ViewCube) Orientation() math.Mat4 {
	if vc.tester == nil {
		return math.Mat4Identity()
	}
	return vc.tester.Orientation()
}

// Hover reports the currently highlighted feature, if any.
func (vc *ViewCube) Hover() (Hit, bool) {
	return vc.hover, vc.hover.Valid()
}

// Update runs the widget's per-frame work, ordered after the main scene
// camera update: syncing the cube's display orientation to the given view
// matrix and re-testing hover while no drag owns the pointer.
func (vc *ViewCube) Update(view math.Mat4) {
	if !vc.mounted {
		return
	}
	vc.tester.SetOrientation(conventionMatrix().Mul(view.RotationOnly()))

	// The camera may have moved under a stationary cursor.
	if vc.state != stateDragging && vc.havePointer {
		vc.refreshHover(vc.lastX, vc.lastY)
	}
}

// HandlePointerDown starts a drag session or triggers a quick-rotate
// button. It reports whether the event was consumed.
func (vc *ViewCube) HandlePointerDown(ev PointerEvent) bool {
	if !vc.mounted || vc.session != nil || ev.Button != 0 {
		return false
	}

	if ccw, cw := vc.ButtonRects(); ccw.Contains(ev.X, ev.Y) {
		vc.RotateAroundUp(math32.Pi / 2)
		return true
	} else if cw.Contains(ev.X, ev.Y) {
		vc.RotateAroundUp(-math32.Pi / 2)
		return true
	}

	hit, ok := vc.tester.HitTest(ev.X, ev.Y)
	if !ok {
		return false
	}

	vc.session = &dragSession{
		pointerID: ev.ID,
		kind:      ev.Kind,
		startX:    ev.X,
		startY:    ev.Y,
		lastX:     ev.X,
		lastY:     ev.Y,
		snapHit:   hit,
	}
	vc.state = stateDragging
	if vc.capturer != nil {
		vc.capturer.SetPointerCapture(ev.ID)
	}
	return true
}

// HandlePointerMove updates hover while idle, advances the drag threshold
// while pressed, and relays orbit deltas once the drag has latched.
func (vc *ViewCube) HandlePointerMove(ev PointerEvent) {
	if !vc.mounted {
		return
	}
	vc.lastX, vc.lastY = ev.X, ev.Y
	vc.havePointer = true

	s := vc.session
	if s == nil {
		vc.refreshHover(ev.X, ev.Y)
		return
	}
	if ev.ID != s.pointerID {
		return // a session owns its pointer exclusively
	}

	// Missed pointer-up: a mouse moving with no buttons held cannot be
	// mid-drag.
	if s.kind == PointerMouse && ev.Buttons == 0 {
		vc.abandonSession()
		return
	}

	if !s.didDrag {
		// snapHit keeps the last good hit so a release off the cube can
		// still resolve; the hover display tracks the pointer exactly.
		if hit, ok := vc.tester.HitTest(ev.X, ev.Y); ok {
			s.snapHit = hit
			vc.setHover(hit)
		} else {
			vc.clearHover()
		}
		if s.displacementSqr(ev.X, ev.Y) >= vc.cfg.DragThresholdPx*vc.cfg.DragThresholdPx {
			// From here on the gesture is an orbit, not a pick.
			s.didDrag = true
			vc.clearHover()
		}
		s.lastX, s.lastY = ev.X, ev.Y
		return
	}

	dx := ev.X - s.lastX
	dy := ev.Y - s.lastY
	s.lastX, s.lastY = ev.X, ev.Y

	azimuth := -dx * vc.cfg.RotateSpeed
	polar := -dy * vc.cfg.RotateSpeed
	if cb := vc.callbacks.OnOrbitInput; cb != nil && cb(azimuth, polar) {
		return
	}
	vc.driver.Orbit(azimuth, polar)
}

// HandlePointerUp ends the session: a release under the drag threshold is
// a click that snaps the camera to the resolved feature; past it the orbit
// already happened incrementally.
func (vc *ViewCube) HandlePointerUp(ev PointerEvent) {
	s := vc.session
	if s == nil || ev.ID != s.pointerID {
		return
	}
	vc.endSession()
	if s.didDrag {
		return
	}

	hit, ok := vc.tester.HitTest(ev.X, ev.Y)
	if !ok {
		hit = s.snapHit
	}
	if !hit.Valid() {
		return
	}

	world := vc.mapper.WorldDirection(hit.Dir)
	if cb := vc.callbacks.OnSelectDirection; cb != nil && cb(world) {
		return
	}
	vc.driver.MoveTo(world)
}

// HandlePointerCancel abandons the session for the given pointer with no
// camera action.
func (vc *ViewCube) HandlePointerCancel(ev PointerEvent) {
	if s := vc.session; s != nil && ev.ID == s.pointerID {
		vc.abandonSession()
	}
}

// HandleCaptureLost abandons the session when the host loses pointer
// capture.
func (vc *ViewCube) HandleCaptureLost(pointerID int64) {
	if s := vc.session; s != nil && s.pointerID == pointerID {
		vc.abandonSession()
	}
}

// HandleWindowBlur abandons any interaction when the window loses focus.
func (vc *ViewCube) HandleWindowBlur() {
	vc.abandonSession()
	vc.havePointer = false
}

// HandleVisibilityChange abandons any interaction when the document is
// hidden.
func (vc *ViewCube) HandleVisibilityChange(hidden bool) {
	if hidden {
		vc.abandonSession()
		vc.havePointer = false
	}
}

// HandlePointerLeave clears hover when the pointer exits the host element.
func (vc *ViewCube) HandlePointerLeave() {
	if vc.session == nil {
		vc.clearHover()
	}
	vc.havePointer = false
}

// RotateAroundUp performs a quick rotation around the up axis, delegating
// to the host handler first.
func (vc *ViewCube) RotateAroundUp(radians float32) {
	if cb := vc.callbacks.OnRotateAroundUp; cb != nil && cb(radians) {
		return
	}
	vc.driver.RotateAroundUp(radians)
}

// refreshHover re-tests the given point and updates the hover hit,
// treating quick-rotate buttons as exempt chrome.
func (vc *ViewCube) refreshHover(x, y float32) {
	if ccw, cw := vc.ButtonRects(); ccw.Contains(x, y) || cw.Contains(x, y) {
		vc.clearHover()
		return
	}
	if hit, ok := vc.tester.HitTest(x, y); ok {
		vc.setHover(hit)
	} else {
		vc.clearHover()
	}
}

func (vc *ViewCube) setHover(hit Hit) {
	vc.hover = hit
	if vc.session == nil {
		vc.state = stateHovering
	}
}

func (vc *ViewCube) clearHover() {
	vc.hover = Hit{}
	if vc.session == nil {
		vc.state = stateIdle
	}
}

// endSession releases capture and clears the session without touching
// hover.
func (vc *ViewCube) endSession() {
	if vc.session == nil {
		return
	}
	if vc.capturer != nil {
		vc.capturer.ReleasePointerCapture(vc.session.pointerID)
	}
	vc.session = nil
	if vc.hover.Valid() {
		vc.state = stateHovering
	} else {
		vc.state = stateIdle
	}
}

// abandonSession unconditionally terminates any drag and hover with zero
// camera mutations.
func (vc *ViewCube) abandonSession() {
	vc.endSession()
	vc.clearHover()
}
