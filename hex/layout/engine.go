package layout

import "github.com/joshuapare/hexkit/hex/view"

// Views is the collaborator the engine reads sizes from and writes rects to.
type Views interface {
	// MaxNeeded returns the size that shows the whole perspective unclipped.
	// ok is false for a key that no longer resolves.
	MaxNeeded(k view.Key) (size view.Size, ok bool)

	// SetRect stores the rect assigned for this frame.
	SetRect(k view.Key, r view.Rect)
}

// Placement is the computed rect of one view.
type Placement struct {
	View view.Key
	Rect view.Rect
	Row  int // index among the non-empty rows
	Col  int // index within the row
}

// Result is the output of one layout pass.
type Result struct {
	// Placements in declared order.
	Placements []Placement

	// Missing lists keys whose size lookup failed; they were skipped.
	Missing []view.Key
}

type cell struct {
	key  view.Key
	need view.Size
	w, h float64
}

// Do computes l inside viewport and writes every rect back through views.
func Do(l *Layout, viewport view.Rect, views Views) Result {
	res := Compute(l, viewport, views.MaxNeeded)
	for _, p := range res.Placements {
		views.SetRect(p.View, p.Rect)
	}
	return res
}

// Compute runs the layout without side effects.
func Compute(l *Layout, viewport view.Rect, maxNeeded func(view.Key) (view.Size, bool)) Result {
	var res Result
	rows := make([][]cell, 0, len(l.Grid))
	for _, keys := range l.Grid {
		row := make([]cell, 0, len(keys))
		for _, k := range keys {
			need, ok := maxNeeded(k)
			if !ok {
				res.Missing = append(res.Missing, k)
				continue
			}
			need.W = max(need.W, 0)
			need.H = max(need.H, 0)
			row = append(row, cell{key: k, need: need})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return res
	}

	m := l.Margin
	nRows := float64(len(rows))
	availH := viewport.H - m*(nRows+1)
	maxH := availH / nRows

	// Phases A and B.
	rowH := make([]float64, len(rows))
	totalH := 0.0
	for r, row := range rows {
		nCols := float64(len(row))
		availW := viewport.W - m*(nCols+1)
		maxW := availW / nCols

		totalW := 0.0
		for i := range row {
			c := &row[i]
			c.w = clampSize(c.need.W, maxW)
			c.h = clampSize(c.need.H, maxH)
			totalW += c.w
			if i == 0 || c.h > rowH[r] {
				rowH[r] = c.h
			}
		}
		totalH += rowH[r]

		remaining := availW - totalW
		for i := range row {
			if remaining <= 0 {
				break
			}
			c := &row[i]
			gap := c.need.W - c.w
			if gap <= 0 {
				continue
			}
			inc := min(gap, remaining)
			c.w += inc
			remaining -= inc
		}
	}

	// Phase C.
	remaining := availH - totalH
	for r, row := range rows {
		if remaining <= 0 {
			break
		}
		growth := 0.0
		for _, c := range row {
			growth = max(growth, c.need.H-c.h)
		}
		if growth <= 0 {
			continue
		}
		inc := min(growth, remaining)
		for i := range row {
			c := &row[i]
			if gap := c.need.H - c.h; gap > 0 {
				c.h += min(inc, gap)
			}
			rowH[r] = max(rowH[r], c.h)
		}
		remaining -= inc
	}

	// Phase D.
	y := viewport.Y + m
	for r, row := range rows {
		x := viewport.X + m
		for i, c := range row {
			res.Placements = append(res.Placements, Placement{
				View: c.key,
				Rect: view.Rect{X: x, Y: y, W: c.w, H: c.h},
				Row:  r,
				Col:  i,
			})
			x += c.w + m
		}
		y += rowH[r] + m
	}
	return res
}

// clampSize caps need at the allowed share, never going below zero.
func clampSize(need, allowed float64) float64 {
	return max(min(need, allowed), 0)
}
