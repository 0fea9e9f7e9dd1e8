package view

import "fmt"

// Rect is a screen rectangle in pixels. Width and height may be zero or
// negative when the layout ran out of space; such rects draw nothing.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Empty reports whether the rect has no drawable area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.W, r.H, r.X, r.Y)
}

// Size is a width and height in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Metrics is the pixel size of one glyph cell, supplied by the front end.
// A terminal uses 1x1.
type Metrics struct {
	CellW float64 `json:"cell_w"`
	CellH float64 `json:"cell_h"`
}

// TerminalMetrics treats one terminal cell as one pixel.
var TerminalMetrics = Metrics{CellW: 1, CellH: 1}
