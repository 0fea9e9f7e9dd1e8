package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_ReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.Commit([]byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "doc.json")}
	err := w.Commit([]byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create temp file")
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	var s Sink = &w
	require.NoError(t, s.Commit([]byte("abc")))
	require.NoError(t, s.Commit([]byte("d")))
	assert.Equal(t, "d", string(w.Buf))
	assert.Equal(t, 2, w.Commits)
}
