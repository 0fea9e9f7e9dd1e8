package meta

import (
	"fmt"
	"iter"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
)

// AddView adds a view of the given kind over perspective pk.
func (d *Document) AddView(name string, pk perspective.Key, kind view.Kind) (view.Key, error) {
	if !d.perspectives.Contains(pk) {
		return view.Key{}, fmt.Errorf("view %q: perspective %s: %w", name, pk, ErrNotFound)
	}
	return d.views.Insert(view.View{Perspective: pk, Kind: kind, Name: name}), nil
}

// View returns the view under k for in-place use (scrolling, fitting).
// The pointer is invalidated by the next AddView.
func (d *Document) View(k view.Key) (*view.View, error) {
	v, err := d.views.Lookup(k)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	return v, nil
}

// ViewGrid resolves the grid a view draws.
func (d *Document) ViewGrid(k view.Key) (*view.View, perspective.Grid, error) {
	v, err := d.View(k)
	if err != nil {
		return nil, perspective.Grid{}, err
	}
	if !d.perspectives.Contains(v.Perspective) {
		return nil, perspective.Grid{}, fmt.Errorf("view %s (%q): %w", k, v.Name, ErrStalePerspective)
	}
	g, err := d.Grid(v.Perspective)
	if err != nil {
		return nil, perspective.Grid{}, err
	}
	return v, g, nil
}

// SetKind changes how a view draws its bytes.
func (d *Document) SetKind(k view.Key, kind view.Kind) error {
	v, err := d.View(k)
	if err != nil {
		return err
	}
	v.Kind = kind
	return nil
}

// RemoveView deletes a view and removes it from every layout.
func (d *Document) RemoveView(k view.Key) error {
	if !d.views.Contains(k) {
		return fmt.Errorf("view %s: %w", k, ErrNotFound)
	}
	d.removeView(k)
	return nil
}

func (d *Document) removeView(k view.Key) {
	d.views.Remove(k)
	for lk, l := range d.layouts.All() {
		if l.Remove(k) {
			d.log.Debug("view removed from layout", "view", k, "layout", lk)
		}
	}
}

// Views iterates the views in key order.
func (d *Document) Views() iter.Seq2[view.Key, view.View] {
	return values(d.views)
}
