package meta

import (
	"fmt"
	"iter"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/hex/view"
)

// AddPerspective adds a grid of cols columns over region rk.
func (d *Document) AddPerspective(name string, rk region.Key, cols int, flip bool) (perspective.Key, error) {
	r, err := d.regions.Lookup(rk)
	if err != nil {
		return perspective.Key{}, fmt.Errorf("perspective %q: region: %w", name, err)
	}
	p := perspective.Perspective{
		Region:       rk,
		Cols:         perspective.ClampCols(cols, r.Region),
		FlipRowOrder: flip,
		Name:         name,
	}
	return d.perspectives.Insert(p), nil
}

// Perspective returns a copy of the perspective under k.
func (d *Document) Perspective(k perspective.Key) (perspective.Perspective, error) {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return perspective.Perspective{}, fmt.Errorf("perspective: %w", err)
	}
	return *p, nil
}

// Grid resolves a perspective against its region.
func (d *Document) Grid(k perspective.Key) (perspective.Grid, error) {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return perspective.Grid{}, fmt.Errorf("perspective: %w", err)
	}
	r, ok := d.regions.Get(p.Region)
	if !ok {
		return perspective.Grid{}, fmt.Errorf("perspective %s (%q): %w", k, p.Name, ErrStaleRegion)
	}
	return p.Grid(r.Region), nil
}

// SetCols sets the column count, clamped to [1, region length]. A stale
// perspective stores cols unclamped until it is re-pointed.
func (d *Document) SetCols(k perspective.Key, cols int) error {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return fmt.Errorf("perspective: %w", err)
	}
	p.Cols = cols
	if r, ok := d.regions.Get(p.Region); ok {
		p.ClampCols(r.Region)
	} else {
		p.Cols = max(cols, 1)
	}
	return nil
}

// SetFlip sets the vertical draw order. Offsets are unaffected.
func (d *Document) SetFlip(k perspective.Key, flip bool) error {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return fmt.Errorf("perspective: %w", err)
	}
	p.FlipRowOrder = flip
	return nil
}

// RenamePerspective changes a perspective's display name.
func (d *Document) RenamePerspective(k perspective.Key, name string) error {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return fmt.Errorf("perspective: %w", err)
	}
	p.Name = name
	return nil
}

// Repoint moves a perspective onto another region and re-clamps its
// columns. Views bound to it follow.
func (d *Document) Repoint(k perspective.Key, rk region.Key) error {
	p, err := d.perspectives.Lookup(k)
	if err != nil {
		return fmt.Errorf("perspective: %w", err)
	}
	r, err := d.regions.Lookup(rk)
	if err != nil {
		return fmt.Errorf("repoint %s: region: %w", k, err)
	}
	p.Region = rk
	p.ClampCols(r.Region)
	return nil
}

// RemovePerspective deletes a perspective together with every view bound
// to it, and returns the removed view keys.
func (d *Document) RemovePerspective(k perspective.Key) ([]view.Key, error) {
	if _, ok := d.perspectives.Remove(k); !ok {
		return nil, fmt.Errorf("perspective %s: %w", k, ErrNotFound)
	}
	var bound []view.Key
	for vk, v := range d.views.All() {
		if v.Perspective == k {
			bound = append(bound, vk)
		}
	}
	for _, vk := range bound {
		d.removeView(vk)
	}
	if len(bound) > 0 {
		d.log.Debug("removed views with perspective", "perspective", k, "views", len(bound))
	}
	return bound, nil
}

// Perspectives iterates the perspectives in key order.
func (d *Document) Perspectives() iter.Seq2[perspective.Key, perspective.Perspective] {
	return values(d.perspectives)
}

// reclampAll re-clamps the columns of every perspective with a live region.
func (d *Document) reclampAll() {
	for _, p := range d.perspectives.All() {
		if r, ok := d.regions.Get(p.Region); ok {
			p.ClampCols(r.Region)
		}
	}
}
