// Package config reads the environment overrides shared by the hexkit
// binaries.
package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// EnvCodePage names the code page used by text views.
	EnvCodePage = "HEXKIT_CODEPAGE"

	// EnvCols sets the column count of newly created perspectives.
	EnvCols = "HEXKIT_COLS"
)

// Env holds the parsed overrides. Zero values mean "not set".
type Env struct {
	CodePage string
	Cols     int
}

// FromEnv reads the overrides from the process environment. Malformed
// values are ignored.
func FromEnv() Env {
	return parse(os.Getenv)
}

func parse(getenv func(string) string) Env {
	var e Env
	e.CodePage = strings.TrimSpace(getenv(EnvCodePage))
	if s := strings.TrimSpace(getenv(EnvCols)); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			e.Cols = n
		}
	}
	return e
}

// ColsOr returns Cols, or def when unset.
func (e Env) ColsOr(def int) int {
	if e.Cols > 0 {
		return e.Cols
	}
	return def
}
