//go:build !linux && !darwin && !freebsd

package buffer

import "os"

func mapFile(_ *os.File, _ int, _ bool) ([]byte, error) {
	return nil, errMmapUnsupported
}

func unmapFile(_ []byte) error { return nil }
