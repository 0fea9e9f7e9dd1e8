// Package view binds a perspective to a screen rectangle with its own scroll
// state.
//
// The layout engine assigns Rect every frame; Fit then derives how many grid
// rows and columns are visible. All methods take the resolved
// perspective.Grid so a view never addresses through a stale region.
package view

import (
	"math"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/internal/arena"
	"github.com/joshuapare/hexkit/internal/buf"
)

// Key is the stable handle of a View in a metadata document.
type Key = arena.Key[View]

// Scroll is the position of a view's top-left visible cell, in display
// rows and grid columns, plus a sub-cell pixel offset.
type Scroll struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	PixelX float64 `json:"pixel_x,omitempty"`
	PixelY float64 `json:"pixel_y,omitempty"`
}

// View is one on-screen rendering of a perspective.
type View struct {
	Perspective perspective.Key `json:"perspective"`
	Kind        Kind            `json:"kind"`
	Name        string          `json:"name"`
	Scroll      Scroll          `json:"scroll"`

	// Assigned by layout and Fit every frame; not persisted.
	Rect Rect `json:"-"`
	Rows int  `json:"-"`
	Cols int  `json:"-"`
}

func (v *View) cellSize(m Metrics) (w, h float64) {
	return float64(v.Kind.Glyphs()) * m.CellW, m.CellH
}

// MaxNeededSize is the pixel size that shows every column and row of g
// without clipping.
func (v *View) MaxNeededSize(g perspective.Grid, m Metrics) Size {
	cw, ch := v.cellSize(m)
	return Size{
		W: float64(g.Cols) * cw,
		H: float64(g.RowCount()) * ch,
	}
}

// Fit derives Rows and Cols from Rect and re-clamps the scroll offset.
// A non-positive rect or metric leaves nothing visible.
func (v *View) Fit(g perspective.Grid, m Metrics) {
	cw, ch := v.cellSize(m)
	if v.Rect.Empty() || cw <= 0 || ch <= 0 {
		v.Rows, v.Cols = 0, 0
	} else {
		v.Cols = min(int(math.Floor(v.Rect.W/cw)), g.Cols)
		v.Rows = min(int(math.Floor(v.Rect.H/ch)), g.RowCount())
	}
	v.clampScroll(g)
}

func (v *View) clampScroll(g perspective.Grid) {
	v.Scroll.Row = buf.Clamp(v.Scroll.Row, 0, buf.SatSub(g.RowCount(), v.Rows))
	v.Scroll.Col = buf.Clamp(v.Scroll.Col, 0, buf.SatSub(g.Cols, v.Cols))
}

// ScrollBy moves the view by whole rows and columns.
func (v *View) ScrollBy(rows, cols int, g perspective.Grid) {
	v.Scroll.Row += rows
	v.Scroll.Col += cols
	v.clampScroll(g)
}

// ScrollTo scrolls the minimum amount needed to bring off on screen.
func (v *View) ScrollTo(off int, g perspective.Grid) {
	if v.Rows == 0 || v.Cols == 0 || !g.Region.Contains(off) {
		return
	}
	row, col := g.RowColOf(off)
	drow := g.DisplayRow(row)

	switch {
	case drow < v.Scroll.Row:
		v.Scroll.Row = drow
	case drow >= v.Scroll.Row+v.Rows:
		v.Scroll.Row = drow - v.Rows + 1
	}
	switch {
	case col < v.Scroll.Col:
		v.Scroll.Col = col
	case col >= v.Scroll.Col+v.Cols:
		v.Scroll.Col = col - v.Cols + 1
	}
	v.clampScroll(g)
}

// VisibleRange returns the bounding byte range currently on screen. With
// horizontal clipping the range also covers off-screen bytes between the
// visible rows. ok is false when nothing is visible.
func (v *View) VisibleRange(g perspective.Grid) (region.Region, bool) {
	if v.Rows == 0 || v.Cols == 0 {
		return region.Region{}, false
	}
	top := g.DisplayRow(v.Scroll.Row)
	bottom := g.DisplayRow(v.Scroll.Row + v.Rows - 1)
	if top > bottom {
		top, bottom = bottom, top
	}
	lastCol := min(v.Scroll.Col+v.Cols, g.Cols) - 1

	r := region.Region{
		Begin: g.ByteOffsetOf(top, v.Scroll.Col),
		End:   min(g.ByteOffsetOf(bottom, lastCol), g.Region.End),
	}
	if r.IsEmpty() {
		return region.Region{}, false
	}
	return r, true
}

// HitTest maps a screen point inside Rect to the byte offset drawn there.
func (v *View) HitTest(x, y float64, g perspective.Grid, m Metrics) (int, bool) {
	if !v.Rect.Contains(x, y) || v.Rows == 0 || v.Cols == 0 {
		return 0, false
	}
	cw, ch := v.cellSize(m)
	dcol := int(math.Floor((x - v.Rect.X + v.Scroll.PixelX) / cw))
	drow := int(math.Floor((y - v.Rect.Y + v.Scroll.PixelY) / ch))
	if dcol >= v.Cols || drow >= v.Rows {
		return 0, false
	}
	row := g.DisplayRow(v.Scroll.Row + drow)
	col := v.Scroll.Col + dcol
	if !g.InBounds(row, col) {
		return 0, false
	}
	return g.ByteOffsetOf(row, col), true
}
