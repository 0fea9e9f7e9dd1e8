package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/config"
)

// setupTestModel writes an n-byte file holding 0, 1, 2, ... and opens it in
// a model sized to a 100x20 terminal.
func setupTestModel(t *testing.T, n int, a cliArgs) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := openModel(path, a, config.Env{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 20}), path
}

// send delivers msg and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update must return a Model")
	return updated
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func placedView(t *testing.T, m Model, i int) (*view.View, perspective.Grid) {
	t.Helper()
	require.Greater(t, len(m.placements), i)
	v, g, err := m.doc.ViewGrid(m.placements[i].View)
	require.NoError(t, err)
	return v, g
}

func configEnv(codePage string) config.Env {
	return config.Env{CodePage: codePage}
}
