package perspective

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/hex/region"
)

func TestGrid_Scenario100x10(t *testing.T) {
	g := NewGrid(region.Region{Begin: 0, End: 99}, 10, false)

	assert.Equal(t, 34, g.ByteOffsetOf(3, 4))
	row, col := g.RowColOf(34)
	assert.Equal(t, 3, row)
	assert.Equal(t, 4, col)
	assert.Equal(t, 10, g.RowCount())
	assert.Equal(t, 9, g.LastRow())
	assert.Equal(t, 9, g.LastCol())
}

func TestGrid_InverseMapping(t *testing.T) {
	regions := []region.Region{
		{Begin: 0, End: 0},
		{Begin: 0, End: 99},
		{Begin: 7, End: 60},
		{Begin: 1000, End: 1016},
	}
	for _, r := range regions {
		for cols := 1; cols <= r.Len(); cols++ {
			g := NewGrid(r, cols, false)
			for row := 0; row <= g.RowCount(); row++ {
				for col := 0; col <= cols; col++ {
					if !g.InBounds(row, col) {
						continue
					}
					gr, gc := g.RowColOf(g.ByteOffsetOf(row, col))
					require.Equal(t, row, gr, "region %v cols %d", r, cols)
					require.Equal(t, col, gc, "region %v cols %d", r, cols)
				}
			}
		}
	}
}

func TestGrid_InBounds(t *testing.T) {
	// 25 bytes in 10 columns: the last row holds 5 bytes.
	g := NewGrid(region.Region{Begin: 100, End: 124}, 10, false)

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(2, 4))
	assert.False(t, g.InBounds(2, 5), "past the region end")
	assert.False(t, g.InBounds(0, 10), "col must be < cols")
	assert.False(t, g.InBounds(-1, 0))
	assert.False(t, g.InBounds(3, 0))
	assert.Equal(t, 3, g.RowCount())
	assert.Equal(t, 2, g.LastRow())
	assert.Equal(t, 4, g.LastCol())
}

func TestGrid_LastRowCountsFromBegin(t *testing.T) {
	// Ten bytes at 5..14 fit one row, though 14/10 would say row 1.
	g := NewGrid(region.Region{Begin: 5, End: 14}, 10, false)
	assert.Equal(t, 0, g.LastRow())
	assert.Equal(t, 9, g.LastCol())
	assert.Equal(t, 1, g.RowCount())
}

func TestGrid_RowColBeforeRegionSaturates(t *testing.T) {
	g := NewGrid(region.Region{Begin: 50, End: 99}, 8, false)
	row, col := g.RowColOf(3)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestGrid_ByteOffsetSaturates(t *testing.T) {
	g := NewGrid(region.Region{Begin: 10, End: math.MaxInt}, 1<<20, false)
	assert.Equal(t, math.MaxInt, g.ByteOffsetOf(math.MaxInt/2, 5))
}

func TestClampCols(t *testing.T) {
	r := region.Region{Begin: 0, End: 15}
	tests := []struct {
		requested int
		want      int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{16, 16},
		{17, 16},
		{math.MaxInt, 16},
	}
	for _, tt := range tests {
		got := ClampCols(tt.requested, r)
		assert.Equal(t, tt.want, got, "ClampCols(%d)", tt.requested)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, r.Len())
	}

	// A degenerate region never yields zero columns.
	assert.Equal(t, 1, ClampCols(8, region.Region{Begin: 5, End: 2}))
}

func TestPerspective_ClampColsAfterResize(t *testing.T) {
	p := Perspective{Cols: 32}
	p.ClampCols(region.Region{Begin: 0, End: 9})
	assert.Equal(t, 10, p.Cols)

	g := p.Grid(region.Region{Begin: 0, End: 3})
	assert.Equal(t, 4, g.Cols)
}

func TestGrid_ZeroValueNeverDividesByZero(t *testing.T) {
	var g Grid
	assert.NotPanics(t, func() {
		g.RowColOf(10)
		g.RowCount()
		g.LastRow()
	})
}

func TestGrid_RowSpanOf(t *testing.T) {
	g := NewGrid(region.Region{Begin: 0, End: 99}, 10, false)

	first, last, ok := g.RowSpanOf(region.Region{Begin: 15, End: 42})
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, 4, last)

	first, last, ok = g.RowSpanOf(region.Region{Begin: 95, End: 500})
	require.True(t, ok)
	assert.Equal(t, 9, first)
	assert.Equal(t, 9, last)

	_, _, ok = g.RowSpanOf(region.Region{Begin: 200, End: 300})
	assert.False(t, ok)
}

func TestGrid_RowRegion(t *testing.T) {
	g := NewGrid(region.Region{Begin: 4, End: 28}, 10, false)

	r, ok := g.RowRegion(0)
	require.True(t, ok)
	assert.Equal(t, region.Region{Begin: 4, End: 13}, r)

	r, ok = g.RowRegion(2)
	require.True(t, ok)
	assert.Equal(t, region.Region{Begin: 24, End: 28}, r)

	_, ok = g.RowRegion(3)
	assert.False(t, ok)
}

func TestGrid_DisplayRowFlip(t *testing.T) {
	r := region.Region{Begin: 0, End: 49}
	plain := NewGrid(r, 10, false)
	flipped := NewGrid(r, 10, true)

	assert.Equal(t, 2, plain.DisplayRow(2))
	assert.Equal(t, 4, flipped.DisplayRow(0))
	assert.Equal(t, 0, flipped.DisplayRow(4))
	for i := 0; i < flipped.RowCount(); i++ {
		assert.Equal(t, i, flipped.DisplayRow(flipped.DisplayRow(i)))
	}

	// Flip never changes addressing.
	assert.Equal(t, plain.ByteOffsetOf(3, 7), flipped.ByteOffsetOf(3, 7))
}
