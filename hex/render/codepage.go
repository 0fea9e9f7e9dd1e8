package render

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var codePages = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"koi8-r":       charmap.KOI8R,
}

// CodePage looks up a single-byte code page for KindText by name.
// The empty name selects cp437.
func CodePage(name string) (*charmap.Charmap, error) {
	if name == "" {
		return charmap.CodePage437, nil
	}
	cp, ok := codePages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("render: unknown code page %q (known: %s)", name, strings.Join(CodePageNames(), ", "))
	}
	return cp, nil
}

// CodePageNames lists the accepted code page names, sorted.
func CodePageNames() []string {
	names := make([]string, 0, len(codePages))
	for n := range codePages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
