package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/stack"
	"github.com/lixenwraith/card-deck/status"
)

// Overlay is the live gesture feedback drawn on the target card
type Overlay struct {
	Direction gesture.Direction
	Progress  float64
}

// OverlayOf builds an overlay from a gesture state, using the larger progress measure
func OverlayOf[ID comparable](s gesture.State[ID]) Overlay {
	if !s.Tracking {
		return Overlay{}
	}
	return Overlay{Direction: s.Direction, Progress: max(s.Progress, s.EstimateProgress)}
}

// Renderer draws frames of cards whose records are E
type Renderer[ID comparable, E deck.Identifiable[ID]] struct {
	screen tcell.Screen
	theme  Theme
	label  func(E) string
}

// NewRenderer creates a renderer; label extracts the text shown on a card
func NewRenderer[ID comparable, E deck.Identifiable[ID]](screen tcell.Screen, theme Theme, label func(E) string) *Renderer[ID, E] {
	if label == nil {
		label = func(e E) string { return fmt.Sprint(e.CardID()) }
	}
	return &Renderer[ID, E]{screen: screen, theme: theme, label: label}
}

// Draw clears the screen, paints frame back-to-front with overlay on the
// target, writes hud on the bottom row and shows the result
func (r *Renderer[ID, E]) Draw(vp Viewport, frame []stack.Card[ID, E], overlay Overlay, hud string) {
	bg := tcell.StyleDefault.Background(Color(r.theme.Background))
	r.screen.Fill(' ', bg)

	for _, c := range frame {
		r.drawCard(vp, c, overlay)
	}
	r.drawHUD(vp, hud)
	r.screen.Show()
}

func (r *Renderer[ID, E]) drawCard(vp Viewport, c stack.Card[ID, E], overlay Overlay) {
	rect := vp.CardRect(c.Depth)
	if rect.W < 4 || rect.H < 3 {
		return
	}
	dx, dy := vp.ToCells(c.Pose.Offset)
	rect.X += dx
	rect.Y += dy

	fill := r.theme.Fade(r.theme.Card, c.Depth)
	border := r.theme.Fade(r.theme.Border, c.Depth)
	text := r.theme.Fade(r.theme.Text, c.Depth)
	if c.Judged && !c.IsTarget {
		text = r.theme.Judged
	}
	if c.IsTarget {
		border = r.theme.Tint(overlay.Direction, overlay.Progress)
	}

	body := tcell.StyleDefault.Background(Color(fill)).Foreground(Color(text))
	edge := tcell.StyleDefault.Background(Color(fill)).Foreground(Color(border))

	// Rows above the centre shift toward the tilt, rows below away from it
	shear := math.Tan(c.Pose.Angle*math.Pi/180) * CellAspect
	mid := float64(rect.H-1) / 2

	for row := 0; row < rect.H; row++ {
		y := rect.Y + row
		x0 := rect.X + int(math.Round(-(float64(row)-mid)*shear))
		for col := 0; col < rect.W; col++ {
			ch, style := borderRune(col, row, rect.W, rect.H), edge
			if ch == 0 {
				ch, style = ' ', body
			}
			r.setCell(vp, x0+col, y, ch, style)
		}
		if row == rect.H/2 {
			r.drawLabel(vp, x0+1, y, rect.W-2, r.label(c.Element), body.Bold(c.IsTarget))
		}
		if row == 1 && c.IsTarget && overlay.Direction != gesture.None && overlay.Progress > 0 {
			stamp := strings.ToUpper(overlay.Direction.String())
			r.drawLabel(vp, x0+1, y, rect.W-2, stamp, edge.Bold(overlay.Progress >= 1))
		}
	}
}

// borderRune returns the box-drawing rune for an edge cell, 0 for the interior
func borderRune(col, row, w, h int) rune {
	top, bottom := row == 0, row == h-1
	left, right := col == 0, col == w-1
	switch {
	case top && left:
		return '╭'
	case top && right:
		return '╮'
	case bottom && left:
		return '╰'
	case bottom && right:
		return '╯'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return 0
}

// drawLabel centres s within width cells starting at x, truncating wide text
func (r *Renderer[ID, E]) drawLabel(vp Viewport, x, y, width int, s string, style tcell.Style) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	x += (width - runewidth.StringWidth(s)) / 2
	for _, ch := range s {
		r.setCell(vp, x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
}

func (r *Renderer[ID, E]) drawHUD(vp Viewport, hud string) {
	y := vp.Rows - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(Color(r.theme.Background)).Foreground(Color(r.theme.HUD))
	s := runewidth.Truncate(hud, vp.Cols, "…")
	x := 0
	for _, ch := range s {
		r.setCell(vp, x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
}

// setCell clips to the viewport
func (r *Renderer[ID, E]) setCell(vp Viewport, x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= vp.Cols || y >= vp.Rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// FormatStatus renders metric samples as a compact key=value line
func FormatStatus(samples []status.Sample) string {
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		key := s.Key
		if i := strings.LastIndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		switch v := s.Value.(type) {
		case float64:
			parts = append(parts, fmt.Sprintf("%s=%.2f", key, v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	return strings.Join(parts, " ")
}
