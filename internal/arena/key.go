package arena

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a stable handle into an Arena[T]. The type parameter only keeps keys
// of different collections from being mixed up.
type Key[T any] struct {
	idx uint32
	gen uint32
}

// IsNull reports whether k is the null handle.
func (k Key[T]) IsNull() bool { return k.gen == 0 }

// String renders the key as "<index>v<generation>".
func (k Key[T]) String() string {
	if k.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%dv%d", k.idx, k.gen)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key[T]) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key[T]) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == "null" {
		*k = Key[T]{}
		return nil
	}
	idxStr, genStr, ok := strings.Cut(s, "v")
	if !ok {
		return fmt.Errorf("arena: malformed key %q", s)
	}
	idx, err := strconv.ParseUint(idxStr, 10, 32)
	if err != nil {
		return fmt.Errorf("arena: malformed key index %q: %w", s, err)
	}
	gen, err := strconv.ParseUint(genStr, 10, 32)
	if err != nil {
		return fmt.Errorf("arena: malformed key generation %q: %w", s, err)
	}
	if gen == 0 {
		return fmt.Errorf("arena: key %q has zero generation", s)
	}
	*k = Key[T]{idx: uint32(idx), gen: uint32(gen)}
	return nil
}

// ParseKey parses the String form of a key.
func ParseKey[T any](s string) (Key[T], error) {
	var k Key[T]
	err := k.UnmarshalText([]byte(s))
	return k, err
}
