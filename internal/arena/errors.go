package arena

import "errors"

var (
	// ErrNotFound indicates a key that was never issued or whose entry was removed.
	ErrNotFound = errors.New("arena: not found")

	// ErrOccupied indicates an InsertAt into a live slot.
	ErrOccupied = errors.New("arena: slot occupied")
)
