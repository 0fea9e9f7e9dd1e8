package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/hex/render"
	"github.com/joshuapare/hexkit/internal/buf"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	mainView := NewMainViewModel(&m)
	if m.showHelp {
		// Recreated each frame; stored models would hold a stale copy of m.
		return overlay.New(
			newHelpModel(m.keys, m.height),
			mainView,
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}
	return mainView.View()
}

func (m Model) renderHeader() string {
	name := "hexexplorer"
	if v, _, ok := m.activeView(); ok {
		name = fmt.Sprintf("hexexplorer │ %s │ %s (%s)", m.layoutName(), v.Name, v.Kind)
	}
	line := headerStyle.Render(name) + " " + pathStyle.Render(m.path)
	if d := m.buf.Dirty(); d.IsDirty() {
		line += " " + dirtyStyle.Render("[modified]")
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}

// renderContent draws every placed view onto a canvas the size of the
// layout area.
func (m Model) renderContent() string {
	area := m.contentRect()
	c := newCanvas(int(area.W), int(area.H))

	dirtySpan, isDirty := m.buf.Dirty().Current()
	for i, p := range m.placements {
		v, g, err := m.doc.ViewGrid(p.View)
		if err != nil {
			continue
		}
		x0 := int(math.Floor(v.Rect.X))
		y0 := int(math.Floor(v.Rect.Y))
		for dy, row := range render.Draw(v, g, m.buf.Bytes(), render.Options{CodePage: m.codePage}) {
			x := x0
			for _, cell := range row {
				style := cellStyle(cell, i == m.active, m.cursor, dirtySpan, isDirty)
				for _, r := range cell.Text {
					// The canvas holds one column per cell.
					if runewidth.RuneWidth(r) != 1 {
						r = render.Placeholder
					}
					c.put(x, y0+dy, style(string(r)))
					x++
				}
			}
		}
	}
	return c.String()
}

func cellStyle(cell render.Cell, active bool, cursor int, dirtySpan region.Region, isDirty bool) func(string) string {
	var st lipgloss.Style
	switch {
	case !cell.Valid:
		return plain
	case cell.Offset == cursor && active:
		st = cursorStyle
	case cell.Offset == cursor:
		st = shadowCursorStyle
	case isDirty && dirtySpan.Contains(cell.Offset):
		st = dirtyStyle
	default:
		return plain
	}
	return func(s string) string { return st.Render(s) }
}

func plain(s string) string { return s }

// renderInspector decodes the bytes under the cursor.
func (m Model) renderInspector() string {
	data := m.buf.Bytes()
	if len(data) == 0 {
		return inspectorStyle.Render("empty buffer")
	}
	b, _ := m.buf.Byte(m.cursor)
	parts := []string{
		fmt.Sprintf("u8 %d", b),
		fmt.Sprintf("i8 %d", int8(b)),
	}
	if v, ok := buf.U16(data, m.cursor, m.order); ok {
		parts = append(parts, fmt.Sprintf("u16 %d", v))
	}
	if v, ok := buf.U32(data, m.cursor, m.order); ok {
		parts = append(parts, fmt.Sprintf("u32 %d", v))
	}
	if v, ok := buf.I32(data, m.cursor, m.order); ok {
		parts = append(parts, fmt.Sprintf("i32 %d", v))
	}
	if v, ok := buf.U64(data, m.cursor, m.order); ok {
		parts = append(parts, fmt.Sprintf("u64 %#x", v))
	}
	return inspectorStyle.Render(m.endianName() + "  " + strings.Join(parts, "  "))
}

func (m Model) renderStatus() string {
	if m.statusMessage != "" {
		return statusStyle.Width(max(m.width, 1)).Render(m.statusMessage)
	}

	var s strings.Builder
	if m.editMode {
		s.WriteString(editModeStyle.Render("EDIT"))
		s.WriteString(" ")
	}
	s.WriteString(statusCountStyle.Render(offsetLabel(m.cursor)))
	fmt.Fprintf(&s, " / %s", offsetLabel(m.buf.Len()))
	if v, g, ok := m.activeView(); ok {
		row, col := g.RowColOf(m.cursor)
		fmt.Fprintf(&s, " │ row %d col %d │ %d cols", row, col, g.Cols)
		if g.Flip {
			s.WriteString(" flipped")
		}
		if vis, ok := v.VisibleRange(g); ok {
			fmt.Fprintf(&s, " │ showing %s", vis)
		}
	}
	if m.editMode {
		s.WriteString(" │ esc: done")
	} else {
		s.WriteString(" │ ?: help")
	}
	return statusStyle.Width(max(m.width, 1)).Render(s.String())
}

// canvas is a fixed grid of terminal cells, each holding one rendered
// (possibly styled) character.
type canvas struct {
	w, h  int
	cells [][]string
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	cells := make([][]string, h)
	for y := range cells {
		cells[y] = make([]string, w)
		for x := range cells[y] {
			cells[y][x] = " "
		}
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) put(x, y int, s string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = s
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
