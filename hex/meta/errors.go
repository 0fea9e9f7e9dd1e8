package meta

import (
	"errors"

	"github.com/joshuapare/hexkit/internal/arena"
)

var (
	// ErrNotFound indicates a key that does not resolve in the document.
	ErrNotFound = arena.ErrNotFound

	// ErrStaleRegion indicates a perspective whose region was removed.
	ErrStaleRegion = errors.New("meta: perspective refers to a removed region")

	// ErrStalePerspective indicates a view whose perspective was removed.
	ErrStalePerspective = errors.New("meta: view refers to a removed perspective")

	// ErrOutOfRange indicates a region that lies entirely past the buffer end.
	ErrOutOfRange = errors.New("meta: region outside buffer")

	// ErrVersion indicates a persisted document newer than this package understands.
	ErrVersion = errors.New("meta: unsupported document version")
)
