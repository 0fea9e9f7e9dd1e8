package meta

import (
	"fmt"
	"iter"

	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/view"
)

// AddLayout adds a layout with the given rows. Every key must name a live
// view; empty rows are skipped.
func (d *Document) AddLayout(name string, margin float64, rows ...[]view.Key) (layout.Key, error) {
	l := layout.Layout{Name: name, Margin: margin}
	for _, row := range rows {
		for _, vk := range row {
			if !d.views.Contains(vk) {
				return layout.Key{}, fmt.Errorf("layout %q: view %s: %w", name, vk, ErrNotFound)
			}
		}
		l.AddRow(row...)
	}
	return d.layouts.Insert(l), nil
}

// Layout returns the layout under k. Callers may read it freely; use
// PlaceView and UnplaceView to change membership.
func (d *Document) Layout(k layout.Key) (*layout.Layout, error) {
	l, err := d.layouts.Lookup(k)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return l, nil
}

// LayoutByName returns the first layout with the given name.
func (d *Document) LayoutByName(name string) (layout.Key, bool) {
	for k, l := range d.layouts.All() {
		if l.Name == name {
			return k, true
		}
	}
	return layout.Key{}, false
}

// PlaceView appends a view to a layout row, or to a new row when row is out
// of range.
func (d *Document) PlaceView(lk layout.Key, row int, vk view.Key) error {
	l, err := d.Layout(lk)
	if err != nil {
		return err
	}
	if !d.views.Contains(vk) {
		return fmt.Errorf("place view %s: %w", vk, ErrNotFound)
	}
	l.Add(row, vk)
	return nil
}

// UnplaceView removes a view from one layout without deleting it.
func (d *Document) UnplaceView(lk layout.Key, vk view.Key) (bool, error) {
	l, err := d.Layout(lk)
	if err != nil {
		return false, err
	}
	return l.Remove(vk), nil
}

// RemoveLayout deletes a layout. Its views are kept.
func (d *Document) RemoveLayout(k layout.Key) error {
	if _, ok := d.layouts.Remove(k); !ok {
		return fmt.Errorf("layout %s: %w", k, ErrNotFound)
	}
	return nil
}

// Layouts iterates the layouts in key order.
func (d *Document) Layouts() iter.Seq2[layout.Key, layout.Layout] {
	return values(d.layouts)
}

// LayoutKeys returns the layout keys in key order.
func (d *Document) LayoutKeys() []layout.Key { return d.layouts.Keys() }

// Relayout arranges a layout's views inside viewport and fits each placed
// view to its new rect. Views that no longer resolve are skipped and listed
// in the result.
func (d *Document) Relayout(k layout.Key, viewport view.Rect, m view.Metrics) (layout.Result, error) {
	l, err := d.Layout(k)
	if err != nil {
		return layout.Result{}, err
	}
	res := layout.Do(l, viewport, &docViews{d: d, m: m})
	for _, vk := range res.Missing {
		d.log.Warn("layout references unresolvable view", "layout", k, "view", vk)
	}
	for _, p := range res.Placements {
		v, g, err := d.ViewGrid(p.View)
		if err != nil {
			continue
		}
		v.Fit(g, m)
	}
	return res, nil
}

// docViews adapts a Document to layout.Views.
type docViews struct {
	d *Document
	m view.Metrics
}

func (dv *docViews) MaxNeeded(k view.Key) (view.Size, bool) {
	v, g, err := dv.d.ViewGrid(k)
	if err != nil {
		return view.Size{}, false
	}
	return v.MaxNeededSize(g, dv.m), true
}

func (dv *docViews) SetRect(k view.Key, r view.Rect) {
	if v, err := dv.d.View(k); err == nil {
		v.Rect = r
	}
}
