package buf

import (
	"encoding/binary"
	"testing"
)

func TestDecoders(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0xFF}

	if v, ok := U16(data, 0, binary.LittleEndian); !ok || v != 0x0201 {
		t.Errorf("U16 LE = %#x,%v want 0x0201,true", v, ok)
	}
	if v, ok := U16(data, 0, binary.BigEndian); !ok || v != 0x0102 {
		t.Errorf("U16 BE = %#x,%v want 0x0102,true", v, ok)
	}
	if v, ok := U32(data, 1, binary.LittleEndian); !ok || v != 0x05040302 {
		t.Errorf("U32 LE = %#x,%v want 0x05040302,true", v, ok)
	}
	if v, ok := U64(data, 0, binary.LittleEndian); !ok || v != 0x0807060504030201 {
		t.Errorf("U64 LE = %#x,%v", v, ok)
	}
	if _, ok := U32(data, 6, binary.LittleEndian); ok {
		t.Errorf("U32 should fail with only 3 bytes left")
	}
	if v, ok := I32([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 0, binary.LittleEndian); !ok || v != -1 {
		t.Errorf("I32 = %d,%v want -1,true", v, ok)
	}
}
