//go:build !linux && !freebsd && !darwin

package dirty

// Buffers are not memory-mapped on these platforms; saving writes through
// the file instead, so there is nothing to msync.
func msyncSpan(_ []byte, _, _ int) error { return nil }

func fdatasync(_ int, _ bool) error { return nil }
