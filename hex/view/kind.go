package view

import (
	"fmt"
	"strings"
)

// Kind selects the draw strategy used for a view's cells.
type Kind int

const (
	// KindHex draws each byte as two hex digits and a separator.
	KindHex Kind = iota
	// KindDec draws each byte as a three digit decimal number and a separator.
	KindDec
	// KindASCII draws printable ASCII and a placeholder for everything else.
	KindASCII
	// KindText decodes each byte through a single-byte code page.
	KindText
	// KindBlock draws one shade glyph per byte, darker for larger values.
	KindBlock
)

var kindNames = [...]string{
	KindHex:   "hex",
	KindDec:   "dec",
	KindASCII: "ascii",
	KindText:  "text",
	KindBlock: "block",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Glyphs returns how many glyph cells one byte occupies.
func (k Kind) Glyphs() int {
	switch k {
	case KindHex:
		return 3
	case KindDec:
		return 4
	default:
		return 1
	}
}

// ParseKind accepts the String form of a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("view: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("view: invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
