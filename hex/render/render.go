// Package render turns the visible part of a view into rows of glyph cells.
//
// There is one entry point, Draw, which switches over the view's Kind. It
// knows nothing about colours or fonts; front ends style the cells it
// returns.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
)

// Placeholder is drawn for bytes with no printable glyph.
const Placeholder = '.'

const hexDigits = "0123456789abcdef"

// Cell is one byte's glyphs. Cells past the end of the region or data are
// blank and have Valid unset.
type Cell struct {
	Text   string
	Offset int
	Valid  bool
}

// Options tunes Draw.
type Options struct {
	// CodePage decodes KindText bytes. Nil means code page 437.
	CodePage *charmap.Charmap
}

// Draw renders v's visible rows in display order. data is the whole buffer;
// offsets beyond it render blank.
func Draw(v *view.View, g perspective.Grid, data []byte, opts Options) [][]Cell {
	if v.Rows <= 0 || v.Cols <= 0 {
		return nil
	}
	cp := opts.CodePage
	if cp == nil {
		cp = charmap.CodePage437
	}
	blank := strings.Repeat(" ", v.Kind.Glyphs())

	rows := make([][]Cell, 0, v.Rows)
	for i := range v.Rows {
		gridRow := g.DisplayRow(v.Scroll.Row + i)
		row := make([]Cell, 0, v.Cols)
		for c := v.Scroll.Col; c < v.Scroll.Col+v.Cols; c++ {
			off := g.ByteOffsetOf(gridRow, c)
			if !g.InBounds(gridRow, c) || off >= len(data) {
				row = append(row, Cell{Text: blank, Offset: off})
				continue
			}
			row = append(row, Cell{Text: Glyph(v.Kind, data[off], cp), Offset: off, Valid: true})
		}
		rows = append(rows, row)
	}
	return rows
}

// Glyph renders one byte for the given kind. The result is always
// kind.Glyphs() cells wide.
func Glyph(kind view.Kind, b byte, cp *charmap.Charmap) string {
	switch kind {
	case view.KindHex:
		return string([]byte{hexDigits[b>>4], hexDigits[b&0x0f], ' '})
	case view.KindDec:
		return fmt.Sprintf("%3d ", b)
	case view.KindASCII:
		if b >= 0x20 && b < 0x7f {
			return string(rune(b))
		}
		return string(Placeholder)
	case view.KindText:
		if cp == nil {
			cp = charmap.CodePage437
		}
		r := cp.DecodeByte(b)
		if r == unicode.ReplacementChar || unicode.IsControl(r) || !unicode.IsPrint(r) {
			return string(Placeholder)
		}
		return string(r)
	case view.KindBlock:
		return string(shade(b))
	default:
		return strings.Repeat("?", kind.Glyphs())
	}
}

func shade(b byte) rune {
	switch {
	case b == 0:
		return ' '
	case b < 0x40:
		return '░'
	case b < 0x80:
		return '▒'
	case b < 0xc0:
		return '▓'
	default:
		return '█'
	}
}

// Line joins one row of cells into a string.
func Line(row []Cell) string {
	var sb strings.Builder
	for _, c := range row {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Lines renders every row with Line.
func Lines(rows [][]Cell) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = Line(row)
	}
	return out
}
