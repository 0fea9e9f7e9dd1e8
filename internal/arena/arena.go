// Package arena provides a generational keyed collection.
//
// Entries are addressed by opaque Key values that stay valid while other
// entries are inserted or removed. Removing an entry bumps the generation of
// its slot, so any key still held for it resolves to "not found" instead of
// aliasing whatever is stored in the slot next.
//
// The zero Key is the null handle and never resolves.
//
// Arenas are not thread-safe.
package arena

import (
	"encoding/json"
	"fmt"
	"iter"
)

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// Arena owns values of type T behind stable keys.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	n     int

	// Keys skipped by the last UnmarshalJSON.
	rejected []Key[T]
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int { return a.n }

// Insert stores v and returns its key.
func (a *Arena[T]) Insert(v T) Key[T] {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		if s.gen == 0 {
			s.gen = 1
		}
		s.live = true
		s.val = v
		a.n++
		return Key[T]{idx: idx, gen: s.gen}
	}

	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{gen: 1, live: true, val: v})
	a.n++
	return Key[T]{idx: idx, gen: 1}
}

// InsertAt stores v under an exact key. It is used when rebuilding an arena
// from a persisted document so that handles survive a save/load cycle.
func (a *Arena[T]) InsertAt(k Key[T], v T) error {
	if k.IsNull() {
		return fmt.Errorf("arena: insert at null key")
	}
	for uint32(len(a.slots)) <= k.idx {
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[k.idx]
	if s.live {
		return fmt.Errorf("arena: slot %d already occupied: %w", k.idx, ErrOccupied)
	}
	s.gen = k.gen
	s.live = true
	s.val = v
	a.n++
	a.rebuildFree()
	return nil
}

func (a *Arena[T]) rebuildFree() {
	a.free = a.free[:0]
	// Highest index last so Insert reuses the lowest free slot first.
	for i := len(a.slots) - 1; i >= 0; i-- {
		if !a.slots[i].live {
			a.free = append(a.free, uint32(i))
		}
	}
}

func (a *Arena[T]) slot(k Key[T]) *slot[T] {
	if k.IsNull() || int(k.idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[k.idx]
	if !s.live || s.gen != k.gen {
		return nil
	}
	return s
}

// Contains reports whether k refers to a live entry.
func (a *Arena[T]) Contains(k Key[T]) bool {
	return a.slot(k) != nil
}

// Get returns a copy of the entry stored under k.
func (a *Arena[T]) Get(k Key[T]) (T, bool) {
	if s := a.slot(k); s != nil {
		return s.val, true
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer to the entry for in-place mutation. The pointer is
// invalidated by the next Insert.
func (a *Arena[T]) Ptr(k Key[T]) (*T, bool) {
	if s := a.slot(k); s != nil {
		return &s.val, true
	}
	return nil, false
}

// Lookup is Ptr with an error suitable for returning to callers.
func (a *Arena[T]) Lookup(k Key[T]) (*T, error) {
	if p, ok := a.Ptr(k); ok {
		return p, nil
	}
	return nil, fmt.Errorf("arena: key %s: %w", k, ErrNotFound)
}

// Remove deletes the entry under k and returns it.
func (a *Arena[T]) Remove(k Key[T]) (T, bool) {
	s := a.slot(k)
	if s == nil {
		var zero T
		return zero, false
	}
	v := s.val
	var zero T
	s.val = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, k.idx)
	a.n--
	return v, true
}

// Keys returns the live keys in slot order.
func (a *Arena[T]) Keys() []Key[T] {
	keys := make([]Key[T], 0, a.n)
	for i := range a.slots {
		if a.slots[i].live {
			keys = append(keys, Key[T]{idx: uint32(i), gen: a.slots[i].gen})
		}
	}
	return keys
}

// All iterates the live entries in slot order. Values are yielded as pointers
// and may be mutated; inserting during iteration is not allowed.
func (a *Arena[T]) All() iter.Seq2[Key[T], *T] {
	return func(yield func(Key[T], *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.live {
				continue
			}
			if !yield(Key[T]{idx: uint32(i), gen: s.gen}, &s.val) {
				return
			}
		}
	}
}

type entry[T any] struct {
	Key   Key[T] `json:"key"`
	Value T      `json:"value"`
}

// MarshalJSON encodes the live entries with their keys.
func (a *Arena[T]) MarshalJSON() ([]byte, error) {
	entries := make([]entry[T], 0, a.n)
	for k, v := range a.All() {
		entries = append(entries, entry[T]{Key: k, Value: *v})
	}
	return json.Marshal(entries)
}

// maxSparse bounds the slot index a decoded document may name. A saved
// arena never has more free slots than a small multiple of its entries.
func maxSparse(entries int) uint64 {
	return 2*uint64(entries) + 1024
}

// UnmarshalJSON replaces the arena's contents, restoring every key exactly.
// Entries with a null key or an index far beyond the number of entries are
// skipped and reported by Rejected.
func (a *Arena[T]) UnmarshalJSON(data []byte) error {
	var entries []entry[T]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*a = Arena[T]{}
	limit := maxSparse(len(entries))
	for _, e := range entries {
		if e.Key.IsNull() || uint64(e.Key.idx) >= limit {
			a.rejected = append(a.rejected, e.Key)
			continue
		}
		if err := a.InsertAt(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Rejected returns the keys the last UnmarshalJSON skipped.
func (a *Arena[T]) Rejected() []Key[T] {
	return a.rejected
}
