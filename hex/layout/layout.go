package layout

import (
	"slices"

	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/arena"
)

// Key is the stable handle of a Layout in a metadata document.
type Key = arena.Key[Layout]

// Layout is an ordered grid of views with a uniform margin.
type Layout struct {
	Name   string       `json:"name"`
	Grid   [][]view.Key `json:"view_grid"`
	Margin float64      `json:"margin"`
}

// AddRow appends a new row holding keys. An empty call is a no-op.
func (l *Layout) AddRow(keys ...view.Key) {
	if len(keys) == 0 {
		return
	}
	l.Grid = append(l.Grid, slices.Clone(keys))
}

// Add appends k to the given row, or to a new row when row is out of range.
func (l *Layout) Add(row int, k view.Key) {
	if row < 0 || row >= len(l.Grid) {
		l.AddRow(k)
		return
	}
	l.Grid[row] = append(l.Grid[row], k)
}

// Remove deletes every occurrence of k and drops rows left empty. It
// reports whether anything was removed.
func (l *Layout) Remove(k view.Key) bool {
	return len(l.Prune(func(v view.Key) bool { return v != k })) > 0
}

// Prune removes every key for which keep returns false, drops rows left
// empty, and returns the removed keys in declared order.
func (l *Layout) Prune(keep func(view.Key) bool) []view.Key {
	var removed []view.Key
	rows := l.Grid[:0]
	for _, row := range l.Grid {
		kept := row[:0]
		for _, k := range row {
			if keep(k) {
				kept = append(kept, k)
			} else {
				removed = append(removed, k)
			}
		}
		if len(kept) > 0 {
			rows = append(rows, kept)
		}
	}
	clear(l.Grid[len(rows):])
	l.Grid = rows
	return removed
}

// Contains reports whether k appears anywhere in the grid.
func (l *Layout) Contains(k view.Key) bool {
	for _, row := range l.Grid {
		if slices.Contains(row, k) {
			return true
		}
	}
	return false
}

// Keys returns every key in declared order, row by row.
func (l *Layout) Keys() []view.Key {
	var keys []view.Key
	for _, row := range l.Grid {
		keys = append(keys, row...)
	}
	return keys
}

// Empty reports whether the layout has no views.
func (l *Layout) Empty() bool { return len(l.Grid) == 0 }
