package gizmo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"viewport-chrome/core"
)

func TestLayoutTracksRegion(t *testing.T) {
	l := Layout{SizePx: 120, Pad: 10}
	l.Update(1280, 800, core.Rect{X: 40, Y: 30, Width: 1000, Height: 700})

	// 1280 - (40 + 1000) = 240 to the right of the region.
	require.Equal(t, float32(250), l.MarginRight())
	require.Equal(t, float32(40), l.MarginTop())

	r := l.Rect()
	require.Equal(t, float32(1280-250-120), r.X)
	require.Equal(t, float32(40), r.Y)
	require.Equal(t, float32(120), r.Width)
	require.Equal(t, float32(120), r.Height)
}

func TestLayoutDegenerateRegionUsesWindow(t *testing.T) {
	l := Layout{SizePx: 100, Pad: 8}
	l.Update(800, 600, core.Rect{})

	require.Equal(t, float32(8), l.MarginRight())
	require.Equal(t, float32(8), l.MarginTop())

	r := l.Rect()
	require.Equal(t, float32(800-8-100), r.X)
	require.Equal(t, float32(8), r.Y)
}

func TestLayoutDegenerateWindowCollapsesRect(t *testing.T) {
	l := Layout{SizePx: 100, Pad: 8}
	l.Update(0, 600, core.Rect{Width: 100, Height: 100})

	r := l.Rect()
	require.Zero(t, r.Width)
	require.Zero(t, r.Height)
	require.False(t, r.Contains(0, 0))
}

func TestLayoutResizeKeepsAnchoring(t *testing.T) {
	l := Layout{SizePx: 120, Pad: 10}

	l.Update(1280, 800, core.Rect{X: 0, Y: 0, Width: 1280, Height: 800})
	first := l.Rect()

	l.Update(1920, 1080, core.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	second := l.Rect()

	// Anchored to the top-right corner at the same offsets.
	require.Equal(t, first.Y, second.Y)
	require.Equal(t, float32(1280)-first.Right(), float32(1920)-second.Right())
}
