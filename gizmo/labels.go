package gizmo

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

// FaceLabels maps each face direction's hit key to its display text. The
// cube is labelled in its local Y-up frame.
var FaceLabels = map[string]string{
	HitForDirection(math.NewVec3(1, 0, 0)).Key():  "RIGHT",
	HitForDirection(math.NewVec3(-1, 0, 0)).Key(): "LEFT",
	HitForDirection(math.NewVec3(0, 1, 0)).Key():  "TOP",
	HitForDirection(math.NewVec3(0, -1, 0)).Key(): "BOTTOM",
	HitForDirection(math.NewVec3(0, 0, 1)).Key():  "FRONT",
	HitForDirection(math.NewVec3(0, 0, -1)).Key(): "BACK",
}

// LabelForDirection returns the label text of the face along dir, if any.
func LabelForDirection(dir math.Vec3) (string, bool) {
	text, ok := FaceLabels[HitForDirection(dir).Key()]
	return text, ok
}

var labelInk = color.RGBA{R: 40, G: 40, B: 48, A: 255}

// FaceLabelImage rasterizes text centered on a transparent square, sized
// for upload as a face texture. The bitmap font is drawn at its natural
// size and upscaled by an integer factor so the glyphs stay crisp.
func FaceLabelImage(text string, sizePx int) *image.RGBA {
	if sizePx <= 0 {
		sizePx = 64
	}
	face := basicfont.Face7x13

	w := font.MeasureString(face, text).Ceil()
	if w < 1 {
		w = 1
	}
	metrics := face.Metrics()
	h := metrics.Height.Ceil()

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(labelInk),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)

	// Fill roughly 70% of the square, never downscale below 1:1.
	scale := (sizePx * 7) / (10 * w)
	if s := (sizePx * 7) / (10 * h); s < scale {
		scale = s
	}
	if scale < 1 {
		scale = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	ox := (sizePx - w*scale) / 2
	oy := (sizePx - h*scale) / 2
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			c := small.RGBAAt(x/scale, y/scale)
			if c.A == 0 {
				continue
			}
			dst.SetRGBA(ox+x, oy+y, c)
		}
	}
	return dst
}

// FaceLabelQuad builds a textured quad floating just off the given face for
// drawing its label over the base cube. Winding and UVs are arranged so the
// texture reads unmirrored from outside the cube.
func FaceLabelQuad(dir math.Vec3, size, chamfer float32) *scene.Mesh {
	half := size / 2
	if chamfer < 0 {
		chamfer = 0
	}
	if limit := maxChamferRatio * half; chamfer > limit {
		chamfer = limit
	}

	pts := facePolygon(dir, half*1.002, half-chamfer)
	uvs := faceUVs()
	outward := dir.Normalize()

	indices := []uint32{0, 1, 2, 0, 2, 3}
	if pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0])).Dot(outward) < 0 {
		indices = []uint32{0, 2, 1, 0, 3, 2}
		for i := range uvs {
			uvs[i].X = 1 - uvs[i].X
		}
	}

	verts := make([]core.Vertex, 4)
	for i := range pts {
		verts[i] = core.Vertex{
			Position: pts[i],
			Normal:   outward,
			UV:       uvs[i],
			Color:    core.ColorWhite,
		}
	}
	return scene.CreateMeshFromData("ViewCubeLabel:"+HitForDirection(dir).Key(), verts, indices)
}
