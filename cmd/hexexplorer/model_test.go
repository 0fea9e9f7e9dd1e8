package main

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/hex/view"
)

func TestModel_Startup(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	require.Len(t, m.placements, 2)
	hex, g := placedView(t, m, 0)
	ascii, _ := placedView(t, m, 1)

	assert.Equal(t, view.KindHex, hex.Kind)
	assert.Equal(t, view.KindASCII, ascii.Kind)
	assert.Equal(t, 16, g.Cols)
	// 20 lines minus header, inspector and status leave 17; margins take 2.
	assert.Equal(t, view.Rect{X: 1, Y: 1, W: 48, H: 15}, hex.Rect)
	assert.Equal(t, view.Rect{X: 50, Y: 1, W: 16, H: 15}, ascii.Rect)
	assert.Equal(t, 15, hex.Rows)

	out := m.View()
	assert.Contains(t, out, "10 11 12 13")
	assert.Contains(t, out, "LE")
}

func TestModel_Navigation(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	m = press(t, m, "j")
	assert.Equal(t, 16, m.cursor)
	m = press(t, m, "l", "l")
	assert.Equal(t, 18, m.cursor)
	m = press(t, m, "h", "k")
	assert.Equal(t, 1, m.cursor)

	// Left stops at the start of the region.
	m = press(t, m, "h", "h", "h")
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, "G")
	assert.Equal(t, 255, m.cursor)
	hex, _ := placedView(t, m, 0)
	assert.Equal(t, 1, hex.Scroll.Row, "end of data scrolled into view")

	m = press(t, m, "g")
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, hex.Scroll.Row)

	m = press(t, m, "pgdown")
	assert.Equal(t, 15*16, m.cursor)
}

func TestModel_FlipInvertsVerticalMovement(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	m = press(t, m, "f")
	_, g := placedView(t, m, 0)
	require.True(t, g.Flip)

	// Row 0 is drawn last, so moving up on screen reaches row 1.
	m = press(t, m, "k")
	assert.Equal(t, 16, m.cursor)
	m = press(t, m, "j", "j")
	assert.Equal(t, 0, m.cursor, "bottom display row is the limit")

	m = press(t, m, "f")
	_, g = placedView(t, m, 0)
	assert.False(t, g.Flip)
}

func TestModel_AdjustCols(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	m = press(t, m, "+")
	_, g := placedView(t, m, 0)
	assert.Equal(t, 17, g.Cols)

	m = press(t, m, "-", "-")
	_, g = placedView(t, m, 0)
	assert.Equal(t, 15, g.Cols)
	assert.NotEmpty(t, m.statusMessage)

	// Both default views share one perspective.
	_, g = placedView(t, m, 1)
	assert.Equal(t, 15, g.Cols)
}

func TestModel_CycleViews(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	m = press(t, m, "tab")
	assert.Equal(t, 1, m.active)
	m = press(t, m, "tab")
	assert.Equal(t, 0, m.active)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.active)

	// A single layout has nothing to cycle to.
	m = press(t, m, "L")
	assert.Equal(t, 0, m.layoutIdx)
}

func TestModel_HexEditAndSave(t *testing.T) {
	m, path := setupTestModel(t, 64, cliArgs{})

	m = press(t, m, "i")
	require.True(t, m.editMode)
	m = press(t, m, "4", "1", "f", "f")
	assert.Equal(t, 2, m.cursor)

	b, _ := m.buf.Byte(0)
	assert.Equal(t, byte(0x41), b)
	b, _ = m.buf.Byte(1)
	assert.Equal(t, byte(0xff), b)
	span, ok := m.buf.Dirty().Current()
	require.True(t, ok)
	assert.Equal(t, 0, span.Begin)
	assert.Equal(t, 1, span.End)

	// Non-hex input is ignored.
	m = press(t, m, "z")
	b, _ = m.buf.Byte(2)
	assert.Equal(t, byte(2), b)

	m = press(t, m, "ctrl+s")
	assert.False(t, m.buf.Dirty().IsDirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0xff, 2, 3}, data[:4])
}

func TestModel_TextEdit(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})

	m = press(t, m, "tab", "i", "Z", "!")
	b, _ := m.buf.Byte(0)
	assert.Equal(t, byte('Z'), b)
	b, _ = m.buf.Byte(1)
	assert.Equal(t, byte('!'), b)

	m = press(t, m, "esc")
	assert.False(t, m.editMode)
	// Out of edit mode the same keys are commands again.
	m = press(t, m, "e")
	assert.Contains(t, m.renderInspector(), "BE")
}

func TestModel_Reload(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})

	m = press(t, m, "i", "9", "9", "esc")
	b, _ := m.buf.Byte(0)
	require.Equal(t, byte(0x99), b)

	m = press(t, m, "ctrl+r")
	b, _ = m.buf.Byte(0)
	assert.Equal(t, byte(0), b)
	assert.False(t, m.buf.Dirty().IsDirty())
}

func TestModel_ReadOnlyEditFails(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{readOnly: true})

	m = press(t, m, "i", "4")
	assert.False(t, m.editMode)
	assert.Contains(t, m.statusMessage, "Edit failed")
}

func TestModel_Inspector(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})

	assert.Contains(t, m.renderInspector(), "u16 256")
	m = press(t, m, "e")
	assert.Contains(t, m.renderInspector(), "u16 1")

	// Past the end only the wider reads drop out.
	m = press(t, m, "G")
	out := m.renderInspector()
	assert.Contains(t, out, "u8 63")
	assert.NotContains(t, out, "u16")
}

func TestModel_Mouse(t *testing.T) {
	m, _ := setupTestModel(t, 256, cliArgs{})

	// Third row, fourth column of the ASCII view.
	m = send(t, m, tea.MouseMsg{
		X:      53,
		Y:      headerHeight + 1 + 2,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	assert.Equal(t, 1, m.active)
	assert.Equal(t, 2*16+3, m.cursor)

	m = send(t, m, tea.MouseMsg{
		X:      10,
		Y:      headerHeight + 3,
		Button: tea.MouseButtonWheelDown,
	})
	hex, _ := placedView(t, m, 0)
	assert.Equal(t, 1, hex.Scroll.Row)

	// Clicks on margins change nothing.
	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.active)
}

func TestModel_Help(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = press(t, m, "?")
	require.True(t, m.showHelp)
	out := m.View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "Other")
	assert.Contains(t, out, "toggle help")
	assert.Contains(t, out, "close this help")

	// Other keys are swallowed while help is up.
	m = press(t, m, "j")
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, "esc")
	assert.False(t, m.showHelp)
}

func TestHelpModel_ClipsToHeight(t *testing.T) {
	for _, height := range []int{24, 20, 12, 4} {
		out := newHelpModel(DefaultKeyMap(), height).View()
		assert.Contains(t, out, "Keyboard Shortcuts", "height %d", height)
		assert.LessOrEqual(t, lipgloss.Height(out), max(height, 6), "height %d", height)
		assert.LessOrEqual(t, lipgloss.Width(out), 80, "height %d", height)
	}

	full := newHelpModel(DefaultKeyMap(), 0).View()
	assert.LessOrEqual(t, lipgloss.Height(full), 24)
	assert.Contains(t, full, "quit")
}

func TestModel_SaveMeta(t *testing.T) {
	m, path := setupTestModel(t, 64, cliArgs{})

	m = press(t, m, "+", "w")
	assert.Contains(t, m.statusMessage, "Metadata saved")

	doc, rep, err := meta.LoadFile(path+".hexkit.json", 64, meta.Options{})
	require.NoError(t, err)
	assert.True(t, rep.Clean())
	for _, p := range doc.Perspectives() {
		assert.Equal(t, 17, p.Cols)
	}
}

func TestModel_ClearStatus(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})

	next, cmd := m.Update(keyMsg("w"))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.NotEmpty(t, m.statusMessage)

	m = send(t, m, clearStatusMsg{})
	assert.Empty(t, m.statusMessage)
}

func TestModel_Quit(t *testing.T) {
	m, _ := setupTestModel(t, 64, cliArgs{})

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestParseArgs(t *testing.T) {
	a, err := parseArgs([]string{"-d", "--mmap", "--meta", "x.json", "file.bin"})
	require.NoError(t, err)
	assert.True(t, a.debug)
	assert.True(t, a.mmap)
	assert.False(t, a.readOnly)
	assert.Equal(t, "x.json", a.metaPath)
	assert.Equal(t, []string{"file.bin"}, a.rest)

	_, err = parseArgs([]string{"file.bin", "--meta"})
	require.Error(t, err)
}

func TestOpenModel_UnknownCodePage(t *testing.T) {
	_, err := openModel("does-not-matter", cliArgs{}, configEnv("klingon"))
	require.Error(t, err)
}

func TestStepRows(t *testing.T) {
	m, _ := setupTestModel(t, 40, cliArgs{})
	_, g := placedView(t, m, 0)

	// 40 bytes in 16 columns: the last row holds 32..39.
	assert.Equal(t, 39, stepRows(g, 29, 1), "short last row clamps to the end")
	assert.Equal(t, 13, stepRows(g, 29, -1))
	assert.Equal(t, 13, stepRows(g, 13, -5))
}
