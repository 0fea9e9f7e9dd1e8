// Package dirty tracks the bounding byte range modified since the last
// clean checkpoint of a data buffer.
//
// # Overview
//
// The tracker keeps a single inclusive region, not an exact set: bytes inside
// it may be unchanged, but no changed byte lies outside it. Save logic writes
// only that span back to disk.
//
// # Tracker
//
//   - Widen(damage): grow the dirty region to bound the damage
//   - Current(): the dirty region, if any
//   - Undirty(): clear it and record the buffer length as the new baseline
//   - Flush(ctx, mapping, mode): msync the page-aligned dirty span
//
// # Usage
//
//	t := dirty.NewTracker(buf, logger)
//	t.Widen(dirty.Single(0x40))
//	t.Widen(dirty.Range(0x100, 0x110))
//	r, _ := t.Current() // [0x40..=0x10f]
//
//	if err := t.Flush(ctx, buf, dirty.FlushAuto); err != nil {
//	    return err
//	}
//	t.Undirty()
//
// # Monotonicity
//
// Widen never shrinks the region and repeated identical damage is a no-op.
// Only Undirty resets it.
//
// # Page Granularity
//
// Flushing rounds the dirty span out to 4KB page boundaries, matching what
// msync operates on.
//
// # Thread Safety
//
// Tracker instances are not thread-safe. All mutation happens on the single
// update goroutine.
package dirty
