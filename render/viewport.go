// Package render draws card stack frames onto a tcell screen
//
// Deck geometry is in points. A Viewport maps points to terminal cells, with
// cells counted as twice as tall as they are wide. Rotation is approximated by
// shearing card rows, which reads as a tilt at terminal resolution.
package render

import (
	"math"

	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/vmath"
)

// CellAspect is the height of a terminal cell over its width
const CellAspect = 2.0

// hudRows is reserved at the bottom of the screen for the status line
const hudRows = 1

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x,y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Viewport describes the screen in cells and the points-per-column scale
type Viewport struct {
	Cols, Rows int
	Scale      float64
}

// NewViewport creates a viewport, non-positive scale selects 4 points per column
func NewViewport(cols, rows int, scale float64) Viewport {
	if scale <= 0 {
		scale = 4
	}
	return Viewport{Cols: cols, Rows: rows, Scale: scale}
}

// Bounds returns the viewport size in points, for deck.SetBounds
func (v Viewport) Bounds() vmath.Vec2 {
	return vmath.V2(float64(v.Cols)*v.Scale, float64(v.Rows)*v.Scale*CellAspect)
}

// ToCells converts a point offset to a cell offset
func (v Viewport) ToCells(p vmath.Vec2) (dx, dy int) {
	return int(math.Round(p.X / v.Scale)), int(math.Round(p.Y / (v.Scale * CellAspect)))
}

// FromCells converts a cell offset to points
func (v Viewport) FromCells(dx, dy int) vmath.Vec2 {
	return vmath.V2(float64(dx)*v.Scale, float64(dy)*v.Scale*CellAspect)
}

// CardRect returns the resting rectangle of a card depth cards below the top
func (v Viewport) CardRect(depth int) Rect {
	rows := v.Rows - hudRows
	w := min(v.Cols/2, 40)
	h := min(int(float64(rows)*0.6), 14)
	r := Rect{X: (v.Cols - w) / 2, Y: (rows - h) / 2, W: w, H: h}

	// Deeper cards peek out below and are narrower
	r.X += 2 * depth
	r.W -= 4 * depth
	r.Y += depth
	return r
}

// HitTest reports whether the cell x,y hits the top card drawn at pose
// Tilt is ignored
func (v Viewport) HitTest(pose deck.Visual, x, y int) bool {
	dx, dy := v.ToCells(pose.Offset)
	r := v.CardRect(0)
	r.X += dx
	r.Y += dy
	return r.Contains(x, y)
}
