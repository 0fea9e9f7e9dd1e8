package dirty

import (
	"log/slog"

	"github.com/joshuapare/hexkit/hex/region"
)

// Sizer reports the current length of the tracked buffer.
type Sizer interface {
	Len() int
}

// Tracker accumulates the bounding dirty range of a buffer.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	buf     Sizer
	log     *slog.Logger
	dirty   region.Region
	isDirty bool
	origLen int
}

// NewTracker creates a clean tracker for buf. The buffer's current length
// becomes the original-length baseline. A nil logger discards diagnostics.
func NewTracker(buf Sizer, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		buf:     buf,
		log:     log,
		origLen: buf.Len(),
	}
}

// Widen grows the dirty region to the bounding box of itself and d.
func (t *Tracker) Widen(d Damage) {
	if d.IsEmpty() {
		t.log.Debug("dirty: ignoring empty damage", "damage", d.String())
		return
	}
	dr := d.Region()
	if !t.isDirty {
		t.dirty = dr
		t.isDirty = true
		return
	}

	next := t.dirty
	if dr.Begin < next.Begin {
		next.Begin = dr.Begin
	}
	if dr.End > next.End {
		next.End = dr.End
	}
	if next.Begin > next.End {
		// Unreachable with the min/max merge above.
		t.log.Error("dirty: logic error, merged region inverted; update skipped",
			"dirty", t.dirty.String(), "damage", d.String())
		return
	}
	t.dirty = next
}

// Current returns the dirty region, or false when the buffer is clean.
func (t *Tracker) Current() (region.Region, bool) {
	return t.dirty, t.isDirty
}

// IsDirty reports whether any damage was recorded since the last Undirty.
func (t *Tracker) IsDirty() bool { return t.isDirty }

// Undirty clears the dirty region and records the buffer's current length
// as the new original length.
func (t *Tracker) Undirty() {
	t.dirty = region.Region{}
	t.isDirty = false
	t.origLen = t.buf.Len()
}

// OriginalLen returns the buffer length at the last clean checkpoint.
func (t *Tracker) OriginalLen() int { return t.origLen }

// Truncated reports whether the buffer shrank below its original length.
func (t *Tracker) Truncated() bool { return t.buf.Len() < t.origLen }
