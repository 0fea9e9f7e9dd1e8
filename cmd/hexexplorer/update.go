package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/cmd/hexexplorer/logger"
	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/buf"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		// If help is showing, only the keys that close it do anything
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.editMode {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRows(1)
	case key.Matches(msg, m.keys.Left):
		m.moveBytes(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveBytes(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveRows(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveRows(m.pageRows())
	case key.Matches(msg, m.keys.Home):
		if _, g, ok := m.activeView(); ok {
			m.setCursor(g.Region.Begin)
		}
	case key.Matches(msg, m.keys.End):
		if _, g, ok := m.activeView(); ok {
			m.setCursor(g.Region.End)
		}

	case key.Matches(msg, m.keys.NextView):
		m.cycleView(1)
	case key.Matches(msg, m.keys.PrevView):
		m.cycleView(-1)
	case key.Matches(msg, m.keys.NextLayout):
		if len(m.layouts) > 1 {
			m.layoutIdx = (m.layoutIdx + 1) % len(m.layouts)
			m.active = 0
			m.relayout()
			return m.status("Layout: " + m.layoutName())
		}
	case key.Matches(msg, m.keys.MoreCols):
		return m.adjustCols(1)
	case key.Matches(msg, m.keys.FewerCols):
		return m.adjustCols(-1)
	case key.Matches(msg, m.keys.Flip):
		return m.toggleFlip()

	case key.Matches(msg, m.keys.Edit):
		if _, _, ok := m.activeView(); ok && m.buf.Len() > 0 {
			m.editMode = true
			m.nibble = 0
		}
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Copy):
		label := offsetLabel(m.cursor)
		if err := clipboard.WriteAll(label); err != nil {
			logger.Warn("clipboard write failed", "error", err)
			return m.status("Failed to copy offset")
		}
		return m.status("Copied " + label)
	case key.Matches(msg, m.keys.Endian):
		if m.order == binary.LittleEndian {
			m.order = binary.BigEndian
		} else {
			m.order = binary.LittleEndian
		}
	case key.Matches(msg, m.keys.SaveMeta):
		if err := m.doc.SaveFile(m.metaPath); err != nil {
			logger.Error("saving metadata failed", "path", m.metaPath, "error", err)
			return m.status("Metadata not saved: " + err.Error())
		}
		return m.status("Metadata saved to " + m.metaPath)
	}
	return m, nil
}

// status sets a temporary status message.
func (m Model) status(s string) (tea.Model, tea.Cmd) {
	m.statusMessage = s
	return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Esc) {
		m.editMode = false
		m.nibble = 0
		return m, nil
	}
	if key.Matches(msg, m.keys.Save) {
		return m.save()
	}
	switch msg.Type {
	case tea.KeyLeft:
		m.nibble = 0
		m.moveBytes(-1)
		return m, nil
	case tea.KeyRight:
		m.nibble = 0
		m.moveBytes(1)
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}
	if len(msg.Runes) != 1 {
		return m, nil
	}
	v, _, ok := m.activeView()
	if !ok {
		return m, nil
	}
	r := msg.Runes[0]

	switch v.Kind {
	case view.KindASCII, view.KindText:
		b, ok := m.encodeRune(r, v.Kind)
		if !ok {
			return m, nil
		}
		if err := m.buf.SetByte(m.cursor, b); err != nil {
			return m.editFailed(err)
		}
		m.moveBytes(1)

	default:
		d, err := strconv.ParseUint(string(r), 16, 8)
		if err != nil {
			return m, nil
		}
		cur, _ := m.buf.Byte(m.cursor)
		var next byte
		if m.nibble == 0 {
			next = byte(d)<<4 | cur&0x0f
		} else {
			next = cur&0xf0 | byte(d)
		}
		if err := m.buf.SetByte(m.cursor, next); err != nil {
			return m.editFailed(err)
		}
		if m.nibble == 0 {
			m.nibble = 1
		} else {
			m.nibble = 0
			m.moveBytes(1)
		}
	}
	return m, nil
}

func (m Model) editFailed(err error) (tea.Model, tea.Cmd) {
	logger.Warn("edit failed", "offset", m.cursor, "error", err)
	m.editMode = false
	return m.status("Edit failed: " + err.Error())
}

func (m Model) encodeRune(r rune, kind view.Kind) (byte, bool) {
	if kind == view.KindASCII {
		if r < 0x20 || r > 0x7e {
			return 0, false
		}
		return byte(r), true
	}
	return m.codePage.EncodeRune(r)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	x := float64(msg.X)
	y := float64(msg.Y - headerHeight)

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		for i, p := range m.placements {
			v, g, err := m.doc.ViewGrid(p.View)
			if err != nil {
				continue
			}
			if off, ok := v.HitTest(x, y, g, view.TerminalMetrics); ok {
				m.active = i
				m.nibble = 0
				m.setCursor(off)
				return m, nil
			}
		}
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		for _, p := range m.placements {
			v, g, err := m.doc.ViewGrid(p.View)
			if err != nil || !v.Rect.Contains(x, y) {
				continue
			}
			v.ScrollBy(delta, 0, g)
		}
	}
	return m, nil
}

// setCursor moves the cursor and scrolls every view that shows it.
func (m *Model) setCursor(off int) {
	m.cursor = buf.Clamp(off, 0, max(m.buf.Len()-1, 0))
	m.follow()
}

// moveBytes steps the cursor within the active view's region.
func (m *Model) moveBytes(n int) {
	_, g, ok := m.activeView()
	if !ok {
		return
	}
	m.setCursor(buf.Clamp(buf.SatAdd(m.cursor, n), g.Region.Begin, g.Region.End))
}

// moveRows steps the cursor by display rows, so up is up on screen even
// when the perspective draws its rows bottom to top.
func (m *Model) moveRows(n int) {
	_, g, ok := m.activeView()
	if !ok || g.Region.IsEmpty() {
		return
	}
	m.setCursor(stepRows(g, buf.Clamp(m.cursor, g.Region.Begin, g.Region.End), n))
}

func stepRows(g perspective.Grid, off, n int) int {
	row, col := g.RowColOf(off)
	drow := buf.Clamp(g.DisplayRow(row)+n, 0, g.LastRow())
	row = g.DisplayRow(drow)
	if !g.InBounds(row, col) {
		return g.Region.End
	}
	return g.ByteOffsetOf(row, col)
}

func (m Model) pageRows() int {
	v, _, ok := m.activeView()
	if !ok {
		return 1
	}
	return max(v.Rows, 1)
}

func (m *Model) cycleView(step int) {
	n := len(m.placements)
	if n == 0 {
		return
	}
	m.active = ((m.active+step)%n + n) % n
	m.nibble = 0
	if _, g, ok := m.activeView(); ok && !g.Region.Contains(m.cursor) {
		m.setCursor(buf.Clamp(m.cursor, g.Region.Begin, g.Region.End))
	}
}

func (m Model) adjustCols(step int) (tea.Model, tea.Cmd) {
	v, g, ok := m.activeView()
	if !ok {
		return m, nil
	}
	if err := m.doc.SetCols(v.Perspective, g.Cols+step); err != nil {
		return m.status(err.Error())
	}
	m.relayout()
	_, g, _ = m.activeView()
	return m.status(fmt.Sprintf("%d columns", g.Cols))
}

func (m Model) toggleFlip() (tea.Model, tea.Cmd) {
	v, g, ok := m.activeView()
	if !ok {
		return m, nil
	}
	if err := m.doc.SetFlip(v.Perspective, !g.Flip); err != nil {
		return m.status(err.Error())
	}
	m.relayout()
	if g.Flip {
		return m.status("Rows top to bottom")
	}
	return m.status("Rows bottom to top")
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if err := m.buf.Save(context.Background()); err != nil {
		logger.Error("save failed", "path", m.path, "error", err)
		return m.status("Save failed: " + err.Error())
	}
	m.editMode = false
	logger.Info("saved", "path", m.path)
	return m.status("Saved " + m.path)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if err := m.buf.Reload(); err != nil {
		logger.Error("reload failed", "path", m.path, "error", err)
		return m.status("Reload failed: " + err.Error())
	}
	m.editMode = false
	m.doc.SetBufLen(m.buf.Len())
	m.cursor = buf.Clamp(m.cursor, 0, max(m.buf.Len()-1, 0))
	m.relayout()
	return m.status("Reloaded " + m.path)
}
