package dirty

import (
	"context"

	"github.com/joshuapare/hexkit/hex/region"
)

// standardPageSize is the typical OS page size (4KB).
const standardPageSize = 4096

// FlushMode controls durability guarantees for Flush.
type FlushMode int

const (
	// FlushAuto msyncs the dirty pages and then fdatasyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly only msyncs the dirty pages. The caller is responsible
	// for syncing the file descriptor later.
	FlushDataOnly

	// FlushFull is FlushAuto plus F_FULLFSYNC on macOS.
	FlushFull
)

// Mapping is a memory-mapped buffer that can be flushed.
type Mapping interface {
	Bytes() []byte
	FD() int
}

// PageSpan returns the dirty region rounded out to page boundaries and
// clipped to a buffer of length n.
func (t *Tracker) PageSpan(n int) (region.Region, bool) {
	if !t.isDirty || n <= 0 {
		return region.Region{}, false
	}
	begin := (t.dirty.Begin / standardPageSize) * standardPageSize
	end := (t.dirty.End/standardPageSize+1)*standardPageSize - 1
	r := region.Region{Begin: begin, End: end}.Clamp(n)
	return r, !r.IsEmpty()
}

// Flush writes the dirty pages of m back to its file. It does not clear the
// dirty region; call Undirty once the save as a whole succeeded.
//
// The context is checked before each system call. If cancelled after the
// msync but before the fdatasync, data may be written but not yet durable.
func (t *Tracker) Flush(ctx context.Context, m Mapping, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := m.Bytes()
	span, ok := t.PageSpan(len(data))
	if !ok {
		return nil
	}

	if err := msyncSpan(data, span.Begin, span.End+1); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if mode == FlushDataOnly {
		return nil
	}
	return fdatasync(m.FD(), mode == FlushFull)
}
