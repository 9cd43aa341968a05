package chrome

import "viewport-chrome/core"

// PanelStyle describes the translucent backing of a floating viewport
// panel.
type PanelStyle struct {
	Tint         core.Color
	Opacity      float32
	CornerRadius float32
	BlurRadius   float32
}

// Preset styles for the standard panel roles.
var (
	// PanelHeader backs the title bar along the viewport's top edge.
	PanelHeader = PanelStyle{
		Tint:         core.Color{R: 0.12, G: 0.12, B: 0.14, A: 1},
		Opacity:      0.92,
		CornerRadius: 0,
		BlurRadius:   12,
	}

	// PanelToolbar backs the floating tool strip.
	PanelToolbar = PanelStyle{
		Tint:         core.Color{R: 0.10, G: 0.10, B: 0.12, A: 1},
		Opacity:      0.85,
		CornerRadius: 8,
		BlurRadius:   16,
	}

	// PanelOverlay backs transient popovers and menus.
	PanelOverlay = PanelStyle{
		Tint:         core.Color{R: 0.08, G: 0.08, B: 0.10, A: 1},
		Opacity:      0.97,
		CornerRadius: 10,
		BlurRadius:   24,
	}
)

// WithOpacity returns a copy of the style at the given opacity, clamped to
// [0, 1].
func (s PanelStyle) WithOpacity(opacity float32) PanelStyle {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	s.Opacity = opacity
	return s
}

// BackgroundColor folds the opacity into the tint's alpha for renderers
// without a separate opacity input.
func (s PanelStyle) BackgroundColor() core.Color {
	c := s.Tint
	c.A *= s.Opacity
	return c
}
