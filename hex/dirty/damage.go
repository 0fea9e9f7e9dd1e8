package dirty

import (
	"fmt"

	"github.com/joshuapare/hexkit/hex/region"
)

// Damage is a span of bytes touched by an edit. Build one with Single,
// Range or RangeInclusive.
type Damage struct {
	begin int
	end   int // inclusive
}

// Single damages one byte.
func Single(off int) Damage {
	return Damage{begin: off, end: off}
}

// Range damages [begin, endExclusive). An empty range damages nothing.
func Range(begin, endExclusive int) Damage {
	if endExclusive <= begin {
		return Damage{begin: 0, end: -1}
	}
	return Damage{begin: begin, end: endExclusive - 1}
}

// RangeInclusive damages [begin, end].
func RangeInclusive(begin, end int) Damage {
	return Damage{begin: begin, end: end}
}

// Begin returns the first damaged offset.
func (d Damage) Begin() int { return d.begin }

// End returns the last damaged offset.
func (d Damage) End() int { return d.end }

// IsEmpty reports whether the damage covers no valid offset.
func (d Damage) IsEmpty() bool {
	return d.end < d.begin || d.end < 0
}

// Region returns the damage as a region with a non-negative start.
func (d Damage) Region() region.Region {
	return region.Region{Begin: max(d.begin, 0), End: d.end}
}

func (d Damage) String() string {
	return fmt.Sprintf("damage[%d..=%d]", d.begin, d.end)
}
