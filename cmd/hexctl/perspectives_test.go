package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectivesCommand(t *testing.T) {
	file := initTestDocument(t, 100)

	// Add a second region and grid it.
	regionsAdd, regionsRange = "table", "0x20:0x2b"
	_, err := captureOutput(t, func() error { return runRegions([]string{file}) })
	require.NoError(t, err)

	resetFlags()
	perspAdd, perspRegion, perspCols = "table", "1v1", 64
	output, err := captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"Added perspective 1v1", "(12 cols)"})

	resetFlags()
	perspKey, perspCols, perspFlip, perspRename = "1v1", 4, true, "table4"
	output, err = captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assertContains(t, output, []string{`"table4"`, "4 cols", "flip true"})

	resetFlags()
	perspKey, perspUnflip = "1v1", true
	output, err = captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assert.Contains(t, output, "flip false")

	resetFlags()
	output, err = captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"0v1", "16 cols x 7 rows", "1v1", "4 cols x 3 rows"})

	// Re-point the default perspective at the small region.
	resetFlags()
	perspKey, perspRegion = "0v1", "1v1"
	output, err = captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"region 1v1", "12 cols"})
}

func TestPerspectivesCommand_RemoveCascadesToViews(t *testing.T) {
	file := initTestDocument(t, 64)

	perspRemove = "0v1"
	output, err := captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assert.Contains(t, output, "and 2 view(s)")

	doc := loadTestDocument(t, file)
	n := 0
	for range doc.Views() {
		n++
	}
	assert.Zero(t, n)
	lk, ok := doc.LayoutByName("default")
	require.True(t, ok)
	l, err := doc.Layout(lk)
	require.NoError(t, err)
	assert.True(t, l.Empty())
}

func TestPerspectivesCommand_StaleAfterRegionRemoval(t *testing.T) {
	file := initTestDocument(t, 64)
	regionsRemove = "0v1"
	_, err := captureOutput(t, func() error { return runRegions([]string{file}) })
	require.NoError(t, err)

	// The saved document drops the stale perspective on load.
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.NoError(t, err)
	assert.Equal(t, "null\n", output)
}

func TestPerspectivesCommand_AddWithoutRegion(t *testing.T) {
	file := initTestDocument(t, 64)
	perspAdd = "p"
	_, err := captureOutput(t, func() error { return runPerspectives([]string{file}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--add requires --region")
}
