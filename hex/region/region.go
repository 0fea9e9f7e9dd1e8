// Package region defines inclusive byte ranges over the data buffer.
package region

import (
	"fmt"

	"github.com/joshuapare/hexkit/internal/arena"
	"github.com/joshuapare/hexkit/internal/buf"
)

// Region is an inclusive byte range [Begin, End].
//
// A region with End < Begin is degenerate and has length zero.
type Region struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// New returns the region spanning a and b in either order.
func New(a, b int) Region {
	if b < a {
		a, b = b, a
	}
	return Region{Begin: max(a, 0), End: max(b, 0)}
}

// Len returns (End+1)-Begin, saturating at zero.
func (r Region) Len() int {
	return buf.SatSub(buf.SatAdd(r.End, 1), r.Begin)
}

// IsEmpty reports whether the region covers no bytes.
func (r Region) IsEmpty() bool { return r.Len() == 0 }

// Contains reports whether off lies within [Begin, End].
func (r Region) Contains(off int) bool {
	return off >= r.Begin && off <= r.End
}

// ContainsRegion reports whether o lies entirely inside r.
func (r Region) ContainsRegion(o Region) bool {
	return !o.IsEmpty() && r.Contains(o.Begin) && r.Contains(o.End)
}

// Overlaps reports whether the two regions share at least one byte.
func (r Region) Overlaps(o Region) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Begin <= o.End && o.Begin <= r.End
}

// Union returns the smallest region bounding both r and o.
// An empty operand is ignored.
func (r Region) Union(o Region) Region {
	switch {
	case r.IsEmpty():
		return o
	case o.IsEmpty():
		return r
	}
	return Region{Begin: min(r.Begin, o.Begin), End: max(r.End, o.End)}
}

// Intersect returns the overlap of r and o, or false when they are disjoint.
func (r Region) Intersect(o Region) (Region, bool) {
	if !r.Overlaps(o) {
		return Region{}, false
	}
	return Region{Begin: max(r.Begin, o.Begin), End: min(r.End, o.End)}, true
}

// Clamp bounds the region to a buffer of length n. The result is empty when
// the buffer is empty or the region starts past its end.
func (r Region) Clamp(n int) Region {
	if n <= 0 || r.Begin >= n {
		return Region{Begin: 0, End: -1}
	}
	r.Begin = max(r.Begin, 0)
	r.End = min(r.End, n-1)
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x..=%#x]", r.Begin, r.End)
}

// Named is a region entry in the metadata document.
type Named struct {
	Region
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// Key is the stable handle of a Named region in a metadata document.
type Key = arena.Key[Named]
