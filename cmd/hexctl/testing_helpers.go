package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/internal/config"
)

// setupTestFile writes a file of n bytes counting up from first and returns
// its path.
func setupTestFile(t *testing.T, n int, first byte) string {
	t.Helper()
	data := make([]byte, n)
	for i := range data {
		data[i] = first + byte(i)
	}
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, metaPath = false, false, false, ""
	env = config.Env{}
	initCols, initForce = 0, false
	regionsAdd, regionsRange, regionsDesc, regionsSet, regionsRemove = "", "", "", "", ""
	perspAdd, perspKey, perspRemove, perspRegion, perspRename = "", "", "", "", ""
	perspCols, perspFlip, perspUnflip = 0, false, false
	viewsAdd, viewsPerspective, viewsKind, viewsLayout, viewsRow, viewsRemove = "", "", "hex", "", -1, ""
	layoutName, layoutWidth, layoutHeight, layoutCellW, layoutCellH = meta.DefaultLayoutName, 80, 24, 1, 1
	addrPerspective = ""
	dumpAt, dumpCodePage = "", ""
	patchMmap, patchTruncate, patchDataOnly = false, -1, false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// decodeJSON unmarshals command output into v
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
