// Package perspective maps a region of the data buffer onto a row-major grid
// with a fixed column count.
//
// Row r, column c of a grid addresses byte Begin + r*Cols + c. All arithmetic
// is saturating: offsets before the region start map to row 0, column 0, and
// products that would overflow clamp instead of wrapping. Cols is clamped to
// [1, region length] before any division uses it.
package perspective

import (
	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/internal/arena"
	"github.com/joshuapare/hexkit/internal/buf"
)

// Key is the stable handle of a Perspective in a metadata document.
type Key = arena.Key[Perspective]

// Perspective is the persisted description of a grid over one region.
type Perspective struct {
	Region region.Key `json:"region"`
	Cols   int        `json:"cols"`
	// FlipRowOrder reverses the vertical draw order of rows. Offset math
	// is unaffected.
	FlipRowOrder bool   `json:"flip_row_order"`
	Name         string `json:"name"`
}

// ClampCols enforces 1 <= Cols <= r.Len() on p.
func (p *Perspective) ClampCols(r region.Region) {
	p.Cols = ClampCols(p.Cols, r)
}

// Grid resolves p against its region.
func (p Perspective) Grid(r region.Region) Grid {
	return NewGrid(r, p.Cols, p.FlipRowOrder)
}

// ClampCols bounds a requested column count to [1, r.Len()]. A degenerate
// region still yields one column.
func ClampCols(cols int, r region.Region) int {
	n := r.Len()
	if cols > n {
		cols = n
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Grid is a perspective resolved against a live region. It carries every
// addressing operation and is cheap to copy.
type Grid struct {
	Region region.Region
	Cols   int
	Flip   bool
}

// NewGrid builds a grid over r, clamping cols.
func NewGrid(r region.Region, cols int, flip bool) Grid {
	return Grid{Region: r, Cols: ClampCols(cols, r), Flip: flip}
}

func (g Grid) cols() int {
	// Guards zero-value Grids that skipped NewGrid.
	if g.Cols < 1 {
		return 1
	}
	return g.Cols
}

// ByteOffsetOf returns the absolute offset of (row, col). The result is not
// bounds-checked; use InBounds for that.
func (g Grid) ByteOffsetOf(row, col int) int {
	rel := buf.SatAdd(buf.SatMul(max(row, 0), g.cols()), max(col, 0))
	return buf.SatAdd(g.Region.Begin, rel)
}

// RowColOf returns the grid position of an absolute offset. Offsets before
// the region start map to (0, 0).
func (g Grid) RowColOf(off int) (row, col int) {
	rel := buf.SatSub(off, g.Region.Begin)
	c := g.cols()
	return rel / c, rel % c
}

// InBounds reports whether (row, col) is a real cell: col < Cols and the
// addressed offset lies within the region.
func (g Grid) InBounds(row, col int) bool {
	if row < 0 || col < 0 || col >= g.cols() {
		return false
	}
	return g.Region.Contains(g.ByteOffsetOf(row, col))
}

// RowCount returns ceil(region length / Cols).
func (g Grid) RowCount() int {
	n := g.Region.Len()
	if n == 0 {
		return 0
	}
	c := g.cols()
	return (n-1)/c + 1
}

// LastRow returns the row index holding the region's last byte. Rows count
// from Region.Begin, so this is (End-Begin)/Cols rather than End/Cols; the
// two agree only for regions starting at a multiple of Cols.
func (g Grid) LastRow() int {
	row, _ := g.RowColOf(g.Region.End)
	return row
}

// LastCol returns the column index of the region's last byte, measured
// from Region.Begin like LastRow.
func (g Grid) LastCol() int {
	_, col := g.RowColOf(g.Region.End)
	return col
}

// RowSpanOf returns the first and last grid rows touched by sub. ok is false
// when sub does not overlap the grid's region.
func (g Grid) RowSpanOf(sub region.Region) (first, last int, ok bool) {
	in, ok := g.Region.Intersect(sub)
	if !ok {
		return 0, 0, false
	}
	first, _ = g.RowColOf(in.Begin)
	last, _ = g.RowColOf(in.End)
	return first, last, true
}

// RowRegion returns the bytes of one grid row, clipped to the region.
func (g Grid) RowRegion(row int) (region.Region, bool) {
	if row < 0 || row >= g.RowCount() {
		return region.Region{}, false
	}
	begin := g.ByteOffsetOf(row, 0)
	end := min(buf.SatAdd(begin, g.cols()-1), g.Region.End)
	return region.Region{Begin: begin, End: end}, true
}

// DisplayRow maps a display-order row to the grid row drawn there. With Flip
// set the last grid row is drawn first. The mapping is its own inverse.
func (g Grid) DisplayRow(row int) int {
	if !g.Flip {
		return row
	}
	return g.LastRow() - row
}
