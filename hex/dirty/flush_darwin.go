//go:build darwin

package dirty

import (
	"golang.org/x/sys/unix"
)

// msyncSpan flushes the dirty pages to disk.
//
// On macOS msync() requires the address to match the original mmap() address,
// so the whole mapping is synced. The kernel only writes pages that are dirty.
func msyncSpan(data []byte, _, _ int) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync syncs the file descriptor, using F_FULLFSYNC when fullfsync is
// set so data reaches the physical disk and not just the drive cache.
func fdatasync(fd int, fullfsync bool) error {
	if fullfsync {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
