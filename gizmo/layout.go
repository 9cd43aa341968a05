package gizmo

import (
	"viewport-chrome/core"
)

// Layout computes the gizmo's on-screen placement: margin offsets that
// track a reserved viewport region as the window resizes, and the square
// rect the HUD pass and hit tester share.
type Layout struct {
	SizePx float32 // side length of the gizmo square
	Pad    float32 // gap between the region edges and the gizmo

	marginRight float32
	marginTop   float32
	rect        core.Rect
}

// Update recomputes the margins for the given window size and reserved
// region. A degenerate region falls back to the full window; a degenerate
// window collapses the rect so hit tests reject everything.
func (l *Layout) Update(windowW, windowH float32, region core.Rect) {
	if windowW <= 0 || windowH <= 0 {
		l.rect = core.Rect{}
		return
	}
	if region.Width <= 0 || region.Height <= 0 {
		region = core.Rect{X: 0, Y: 0, Width: windowW, Height: windowH}
	}

	l.marginRight = windowW - region.Right() + l.Pad
	l.marginTop = region.Y + l.Pad

	l.rect = core.Rect{
		X:      windowW - l.marginRight - l.SizePx,
		Y:      l.marginTop,
		Width:  l.SizePx,
		Height: l.SizePx,
	}
}

func (l *Layout) MarginRight() float32 { return l.marginRight }
func (l *Layout) MarginTop() float32   { return l.marginTop }
func (l *Layout) Rect() core.Rect      { return l.rect }
