// Command viewer is a demo host for the viewport chrome: an orbitable
// grid scene with an optional glTF model, a header bar, a toolbar strip
// and the view cube gizmo in the top-right corner.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/chewxy/math32"

	"viewport-chrome/chrome"
	"viewport-chrome/core"
	"viewport-chrome/gizmo"
	"viewport-chrome/internal/opengl"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

const (
	headerHeight   = 48
	toolbarWidth   = 56
	mousePointerID = 1
)

func main() {
	modelPath := flag.String("model", "", "glTF model to load into the scene")
	toolbarPath := flag.String("toolbar", "", "TOML toolbar definition")
	docTitle := flag.String("title", "Untitled", "document title")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("viewer: ")

	if err := run(*modelPath, *toolbarPath, *docTitle); err != nil {
		log.Fatal(err)
	}
}

func run(modelPath, toolbarPath, docTitle string) error {
	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	toolbar := chrome.DefaultToolbar()
	if toolbarPath != "" {
		toolbar, err = chrome.LoadToolbar(toolbarPath)
		if err != nil {
			return err
		}
	}

	title := chrome.NewTitleField(docTitle)
	title.OnCommit = func(t string) { window.SetTitle(t + " - Viewport") }
	window.SetTitle(title.Value() + " - Viewport")

	// Z-up world.
	worldUp := math.NewVec3(0, 0, 1)
	cam := scene.NewCamera(math32.Pi/4, float32(window.Width)/float32(window.Height), 0.1, 500)
	orbit := scene.NewOrbitCamera(cam, math.Vec3Zero, 10, worldUp)

	grid := scene.CreateGrid(20, 20)
	var meshes []*scene.Mesh
	if modelPath != "" {
		meshes, err = scene.LoadGLTF(modelPath)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
	}

	widget := gizmo.New(gizmo.Config{}, orbit, gizmo.Callbacks{})
	widget.Mount()
	defer widget.Unmount()

	cubeMesh := widget.Geometry().ToMesh()
	for key, positions := range widget.Geometry().Highlights {
		renderer.UploadHighlight(key, positions)
	}

	cfg := gizmo.DefaultConfig()
	labels := buildFaceLabels(cfg)
	defer releaseFaceLabels(labels)

	ccwTex := opengl.UploadTexture(gizmo.FaceLabelImage("<", 64))
	cwTex := opengl.UploadTexture(gizmo.FaceLabelImage(">", 64))
	defer opengl.DeleteTexture(ccwTex)
	defer opengl.DeleteTexture(cwTex)

	quad := unitQuad()

	resize := func(width, height int) {
		fbW, fbH := window.GetFramebufferSize()
		renderer.SetViewport(fbW, fbH)
		cam.UpdateAspect(float32(width), float32(height))
		region := core.Rect{
			X:      toolbarWidth,
			Y:      headerHeight,
			Width:  float32(width) - toolbarWidth,
			Height: float32(height) - headerHeight,
		}
		widget.Resize(float32(width), float32(height), region)
	}
	resize(window.Width, window.Height)
	window.SetSizeCallback(resize)

	// Input wiring. The widget sees device-independent pointer events; the
	// leftover left-drags orbit the scene camera.
	var (
		dragScene    bool
		lastX, lastY float32
	)

	pointerEvent := func(x, y float32) gizmo.PointerEvent {
		return gizmo.PointerEvent{
			ID:      mousePointerID,
			Kind:    gizmo.PointerMouse,
			X:       x,
			Y:       y,
			Buttons: window.MouseButtonsDown(),
		}
	}

	window.SetCursorPosCallback(func(x, y float64) {
		fx, fy := float32(x), float32(y)
		widget.HandlePointerMove(pointerEvent(fx, fy))
		if dragScene {
			orbit.Rotate(-(fx-lastX)*0.005, -(fy-lastY)*0.005)
		}
		lastX, lastY = fx, fy
	})

	window.SetMouseButtonCallback(func(button int, pressed bool) {
		x, y := window.GetCursorPos()
		ev := pointerEvent(float32(x), float32(y))
		ev.Button = button

		if button != 0 {
			return
		}
		if pressed {
			if !widget.HandlePointerDown(ev) && ev.Y > headerHeight {
				dragScene = true
			}
		} else {
			widget.HandlePointerUp(ev)
			dragScene = false
		}
	})

	window.SetScrollCallback(func(xoff, yoff float64) {
		orbit.Dolly(float32(-yoff) * 0.6)
	})

	window.SetFocusCallback(func(focused bool) {
		if !focused {
			widget.HandleWindowBlur()
			dragScene = false
		}
	})

	window.SetIconifyCallback(func(iconified bool) {
		widget.HandleVisibilityChange(iconified)
	})

	for _, g := range toolbar.Groups {
		log.Printf("toolbar group %q: %d tools", g.Name, len(g.Tools))
	}

	background := core.Color{R: 0.16, G: 0.17, B: 0.19, A: 1}
	cubeTint := core.Color{R: 0.82, G: 0.84, B: 0.88, A: 1}
	hoverTint := core.Color{R: 1, G: 0.62, B: 0.12, A: 1}

	prev := time.Now()
	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(prev).Seconds())
		prev = now

		orbit.Update(dt)
		widget.Update(cam.ViewMatrix())

		renderer.BeginFrame(background)

		vp := cam.ViewProjectionMatrix()
		renderer.DrawMesh(grid, vp, math.Mat4Identity(), core.ColorWhite, 0)
		for _, m := range meshes {
			renderer.DrawMesh(m, vp, math.Mat4Identity(), core.ColorWhite, 0)
		}

		drawGizmo(renderer, window, widget, cubeMesh, labels, cubeTint, hoverTint)
		drawChrome(renderer, window, widget, quad, ccwTex, cwTex)

		window.SwapBuffers()
	}

	renderer.ReleaseMesh(grid)
	renderer.ReleaseMesh(cubeMesh)
	for _, m := range meshes {
		renderer.ReleaseMesh(m)
	}
	renderer.ReleaseMesh(quad)
	return nil
}

type faceLabel struct {
	quad *scene.Mesh
	tex  uint32
}

func buildFaceLabels(cfg gizmo.Config) []faceLabel {
	var labels []faceLabel
	for _, dir := range gizmo.CubeDirections() {
		text, ok := gizmo.LabelForDirection(dir)
		if !ok {
			continue
		}
		labels = append(labels, faceLabel{
			quad: gizmo.FaceLabelQuad(dir, cfg.CubeSize, cfg.Chamfer),
			tex:  opengl.UploadTexture(gizmo.FaceLabelImage(text, 128)),
		})
	}
	return labels
}

func releaseFaceLabels(labels []faceLabel) {
	for _, l := range labels {
		opengl.DeleteTexture(l.tex)
	}
}

// drawGizmo renders the view cube into its HUD rect: base mesh, hover
// highlight and face labels, all under the camera-synced orientation.
func drawGizmo(renderer *opengl.Renderer, window *core.Window, widget *gizmo.ViewCube,
	cubeMesh *scene.Mesh, labels []faceLabel, cubeTint, hoverTint core.Color) {

	rect := widget.Rect()
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	renderer.BeginHUD(scaleRect(rect, framebufferScale(window)))

	orient := widget.Orientation()
	mvp := orient.Mul(widget.Camera().ViewProjectionMatrix())

	renderer.DrawMesh(cubeMesh, mvp, orient, cubeTint, 0)
	for _, l := range labels {
		renderer.DrawMesh(l.quad, mvp, orient, core.ColorWhite, l.tex)
	}
	if hit, ok := widget.Hover(); ok {
		renderer.DrawHighlight(hit.Key(), mvp, hoverTint)
	}

	renderer.EndHUD()
}

// drawChrome renders the header band, the toolbar strip and the gizmo's
// quick-rotate buttons as screen-space quads.
func drawChrome(renderer *opengl.Renderer, window *core.Window, widget *gizmo.ViewCube,
	quad *scene.Mesh, ccwTex, cwTex uint32) {

	scale := framebufferScale(window)
	w := float32(window.Width)
	h := float32(window.Height)
	ortho := clientOrtho(w*scale, h*scale)

	renderer.BeginOverlay()

	header := core.Rect{X: 0, Y: 0, Width: w, Height: headerHeight}
	drawRect(renderer, quad, ortho, scaleRect(header, scale), chrome.PanelHeader.BackgroundColor(), 0)

	strip := core.Rect{X: 0, Y: headerHeight, Width: toolbarWidth, Height: h - headerHeight}
	drawRect(renderer, quad, ortho, scaleRect(strip, scale), chrome.PanelToolbar.BackgroundColor(), 0)

	ccw, cw := widget.ButtonRects()
	buttonBG := chrome.PanelOverlay.BackgroundColor()
	drawRect(renderer, quad, ortho, scaleRect(ccw, scale), buttonBG, 0)
	drawRect(renderer, quad, ortho, scaleRect(ccw, scale), core.ColorWhite, ccwTex)
	drawRect(renderer, quad, ortho, scaleRect(cw, scale), buttonBG, 0)
	drawRect(renderer, quad, ortho, scaleRect(cw, scale), core.ColorWhite, cwTex)

	renderer.EndOverlay()
}

func drawRect(renderer *opengl.Renderer, quad *scene.Mesh, ortho math.Mat4,
	rect core.Rect, color core.Color, tex uint32) {

	model := math.Mat4Scale(math.NewVec3(rect.Width, rect.Height, 1)).
		Mul(math.Mat4Translation(math.NewVec3(rect.X, rect.Y, 0)))
	renderer.DrawMesh(quad, model.Mul(ortho), math.Mat4Identity(), color, tex)
}

// framebufferScale is the HiDPI ratio between framebuffer and client
// coordinates.
func framebufferScale(window *core.Window) float32 {
	fbW, _ := window.GetFramebufferSize()
	if window.Width == 0 {
		return 1
	}
	return float32(fbW) / float32(window.Width)
}

func scaleRect(r core.Rect, s float32) core.Rect {
	return core.Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

// clientOrtho maps client-style coordinates (origin top-left, Y down) to
// normalized device coordinates.
func clientOrtho(w, h float32) math.Mat4 {
	return math.Mat4{
		{2 / w, 0, 0, 0},
		{0, -2 / h, 0, 0},
		{0, 0, 1, 0},
		{-1, 1, 0, 1},
	}
}

func unitQuad() *scene.Mesh {
	verts := []core.Vertex{
		{Position: math.NewVec3(0, 0, 0), Normal: math.Vec3Front, UV: math.NewVec2(0, 0), Color: core.ColorWhite},
		{Position: math.NewVec3(1, 0, 0), Normal: math.Vec3Front, UV: math.NewVec2(1, 0), Color: core.ColorWhite},
		{Position: math.NewVec3(1, 1, 0), Normal: math.Vec3Front, UV: math.NewVec2(1, 1), Color: core.ColorWhite},
		{Position: math.NewVec3(0, 1, 0), Normal: math.Vec3Front, UV: math.NewVec2(0, 1), Color: core.ColorWhite},
	}
	return scene.CreateMeshFromData("UnitQuad", verts, []uint32{0, 1, 2, 0, 2, 3})
}
