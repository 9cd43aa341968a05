package core

import (
	"viewport-chrome/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color
}

// Rect is a screen-space rectangle. Y grows downward, matching window
// client coordinates.
type Rect struct {
	X, Y, Width, Height float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }
