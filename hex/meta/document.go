// Package meta owns the addressing metadata of one data buffer: named
// regions, the perspectives that grid them, the views that render
// perspectives, and the layouts that arrange views.
//
// Every entry lives in a generational arena and is referenced by a stable
// key. The Document keeps cross-references consistent:
//
//   - Removing a view removes it from every layout row; rows left empty are
//     dropped.
//   - Removing a perspective removes the views bound to it.
//   - Removing a region leaves its perspectives in place. Resolving such a
//     perspective through Grid fails with ErrStaleRegion.
//   - Every change to a region's bounds, a perspective's column count or its
//     region re-clamps Cols to [1, region length].
//
// A Document is not safe for concurrent use.
package meta

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/arena"
)

// Options configures a Document.
type Options struct {
	// Log receives diagnostics (dangling keys, pruned entries). Nil discards.
	Log *slog.Logger
}

// Document is the metadata of one buffer.
type Document struct {
	bufLen int

	regions      *arena.Arena[region.Named]
	perspectives *arena.Arena[perspective.Perspective]
	views        *arena.Arena[view.View]
	layouts      *arena.Arena[layout.Layout]

	log *slog.Logger
}

// New returns an empty document for a buffer of bufLen bytes.
func New(bufLen int, opts Options) *Document {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Document{
		bufLen:       max(bufLen, 0),
		regions:      arena.New[region.Named](),
		perspectives: arena.New[perspective.Perspective](),
		views:        arena.New[view.View](),
		layouts:      arena.New[layout.Layout](),
		log:          log,
	}
}

// BufLen returns the buffer length regions are clamped to.
func (d *Document) BufLen() int { return d.bufLen }

// SetBufLen records a new buffer length, clamping every region to it and
// re-clamping every perspective.
func (d *Document) SetBufLen(n int) {
	d.bufLen = max(n, 0)
	for k, r := range d.regions.All() {
		clamped := r.Region.Clamp(d.bufLen)
		switch {
		case clamped == r.Region:
			continue
		case clamped.IsEmpty() && !r.Region.IsEmpty():
			d.log.Warn("region collapsed by buffer resize", "region", k, "name", r.Name,
				"from", r.Region, "buf_len", d.bufLen)
		default:
			d.log.Debug("region clamped to buffer", "region", k, "from", r.Region, "to", clamped)
		}
		r.Region = clamped
	}
	d.reclampAll()
}

// AddRegion adds a named region spanning begin and end, inclusive, in either
// order. The region is clamped to the buffer; a region entirely past the end
// of a non-empty buffer is rejected.
func (d *Document) AddRegion(name string, begin, end int) (region.Key, error) {
	r, err := d.clampRegion(begin, end)
	if err != nil {
		return region.Key{}, err
	}
	return d.regions.Insert(region.Named{Region: r, Name: name}), nil
}

func (d *Document) clampRegion(begin, end int) (region.Region, error) {
	r := region.New(begin, end).Clamp(d.bufLen)
	if r.IsEmpty() && d.bufLen > 0 {
		return region.Region{}, fmt.Errorf("%w: %d..=%d with %d bytes", ErrOutOfRange, begin, end, d.bufLen)
	}
	return r, nil
}

// Region returns a copy of the region under k.
func (d *Document) Region(k region.Key) (region.Named, error) {
	r, err := d.regions.Lookup(k)
	if err != nil {
		return region.Named{}, fmt.Errorf("region: %w", err)
	}
	return *r, nil
}

// SetRegionBounds moves a region and re-clamps every perspective over it.
func (d *Document) SetRegionBounds(k region.Key, begin, end int) error {
	r, err := d.regions.Lookup(k)
	if err != nil {
		return fmt.Errorf("region: %w", err)
	}
	bounds, err := d.clampRegion(begin, end)
	if err != nil {
		return err
	}
	r.Region = bounds
	for _, p := range d.perspectives.All() {
		if p.Region == k {
			p.ClampCols(bounds)
		}
	}
	return nil
}

// DescribeRegion sets a region's name and description.
func (d *Document) DescribeRegion(k region.Key, name, desc string) error {
	r, err := d.regions.Lookup(k)
	if err != nil {
		return fmt.Errorf("region: %w", err)
	}
	r.Name, r.Desc = name, desc
	return nil
}

// RemoveRegion deletes a region. Perspectives over it become stale.
func (d *Document) RemoveRegion(k region.Key) error {
	if _, ok := d.regions.Remove(k); !ok {
		return fmt.Errorf("region %s: %w", k, ErrNotFound)
	}
	for pk, p := range d.perspectives.All() {
		if p.Region == k {
			d.log.Debug("perspective left without region", "perspective", pk, "region", k)
		}
	}
	return nil
}

// Regions iterates the regions in key order.
func (d *Document) Regions() iter.Seq2[region.Key, region.Named] {
	return values(d.regions)
}

// RegionCount returns the number of live regions.
func (d *Document) RegionCount() int { return d.regions.Len() }

func values[T any](a *arena.Arena[T]) iter.Seq2[arena.Key[T], T] {
	return func(yield func(arena.Key[T], T) bool) {
		for k, v := range a.All() {
			if !yield(k, *v) {
				return
			}
		}
	}
}
