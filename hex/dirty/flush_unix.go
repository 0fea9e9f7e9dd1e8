//go:build linux || freebsd

package dirty

import (
	"golang.org/x/sys/unix"
)

// msyncSpan flushes data[begin:end] to disk.
//
// On Linux and FreeBSD msync() handles page-aligned sub-slices correctly.
func msyncSpan(data []byte, begin, end int) error {
	return unix.Msync(data[begin:end], unix.MS_SYNC)
}

// fdatasync performs file descriptor sync.
// The fullfsync parameter is ignored on Linux/FreeBSD.
func fdatasync(fd int, _ bool) error {
	return unix.Fdatasync(fd)
}
