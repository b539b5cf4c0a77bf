package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/card-deck/gesture"
)

// Theme holds the palette used for cards and chrome
type Theme struct {
	Background colorful.Color
	Card       colorful.Color
	Border     colorful.Color
	Text       colorful.Color
	Judged     colorful.Color
	HUD        colorful.Color
	// Directions tints the border toward the dragged direction, indexed by gesture.Direction
	Directions [gesture.Bottom + 1]colorful.Color
}

// DefaultTheme returns a dark palette
func DefaultTheme() Theme {
	return Theme{
		Background: colorful.Color{R: 0.08, G: 0.08, B: 0.12},
		Card:       colorful.Color{R: 0.18, G: 0.19, B: 0.25},
		Border:     colorful.Color{R: 0.55, G: 0.57, B: 0.65},
		Text:       colorful.Color{R: 0.92, G: 0.92, B: 0.95},
		Judged:     colorful.Color{R: 0.35, G: 0.35, B: 0.40},
		HUD:        colorful.Color{R: 0.55, G: 0.55, B: 0.62},
		Directions: [gesture.Bottom + 1]colorful.Color{
			gesture.None:   {R: 0.55, G: 0.57, B: 0.65},
			gesture.Left:   colorful.Hsv(355, 0.75, 0.95),
			gesture.Top:    colorful.Hsv(205, 0.70, 0.95),
			gesture.Right:  colorful.Hsv(135, 0.70, 0.90),
			gesture.Bottom: colorful.Hsv(45, 0.80, 0.95),
		},
	}
}

// Tint blends the border toward dir's color by progress in [0,1]
func (t Theme) Tint(dir gesture.Direction, progress float64) colorful.Color {
	if dir == gesture.None || int(dir) >= len(t.Directions) || progress <= 0 {
		return t.Border
	}
	if progress >= 1 {
		return t.Directions[dir]
	}
	return t.Border.BlendLab(t.Directions[dir], progress).Clamped()
}

// Fade blends c toward the background for cards deeper in the stack
func (t Theme) Fade(c colorful.Color, depth int) colorful.Color {
	if depth <= 0 {
		return c
	}
	return c.BlendLab(t.Background, min(0.2*float64(depth), 0.8)).Clamped()
}

// Color converts to a tcell true color
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
