package buffer

import "errors"

var (
	// ErrClosed indicates use of a buffer after Close.
	ErrClosed = errors.New("buffer: closed")

	// ErrOutOfRange indicates an offset or length outside the buffer.
	ErrOutOfRange = errors.New("buffer: offset out of range")

	// ErrReadOnly indicates a mutation of a buffer opened read-only.
	ErrReadOnly = errors.New("buffer: read-only")

	// ErrNoFile indicates Save or Reload on a buffer with no backing file.
	ErrNoFile = errors.New("buffer: no backing file")

	// errMmapUnsupported is returned by mapFile on platforms without mmap.
	errMmapUnsupported = errors.New("buffer: mmap not supported on this platform")
)
