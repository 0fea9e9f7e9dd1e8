package buf

import "encoding/binary"

// Integer decoders used by the byte inspector. Each returns ok = false when
// fewer than the required bytes are available at off.

// U16 reads a uint16 at off in the given byte order.
func U16(b []byte, off int, order binary.ByteOrder) (uint16, bool) {
	s, ok := Slice(b, off, 2)
	if !ok {
		return 0, false
	}
	return order.Uint16(s), true
}

// U32 reads a uint32 at off in the given byte order.
func U32(b []byte, off int, order binary.ByteOrder) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(s), true
}

// U64 reads a uint64 at off in the given byte order.
func U64(b []byte, off int, order binary.ByteOrder) (uint64, bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	return order.Uint64(s), true
}

// I32 reads a two's-complement int32 at off in the given byte order.
func I32(b []byte, off int, order binary.ByteOrder) (int32, bool) {
	v, ok := U32(b, off, order)
	return int32(v), ok
}
