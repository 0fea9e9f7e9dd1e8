package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/internal/arena"
)

// metaPathFor returns where the metadata of file lives.
func metaPathFor(file string) string {
	if metaPath != "" {
		return metaPath
	}
	return file + ".hexkit.json"
}

// fileSize returns the size of file in bytes.
func fileSize(file string) (int, error) {
	st, err := os.Stat(file)
	if err != nil {
		return 0, err
	}
	if st.IsDir() {
		return 0, fmt.Errorf("%s is a directory", file)
	}
	return int(st.Size()), nil
}

// loadDocument loads the metadata of file, or builds the default document
// when none was saved. persisted reports which happened.
func loadDocument(file string) (doc *meta.Document, persisted bool, err error) {
	size, err := fileSize(file)
	if err != nil {
		return nil, false, err
	}
	path := metaPathFor(file)
	opts := meta.Options{Log: cliLogger()}

	doc, rep, err := meta.LoadFile(path, size, opts)
	if errors.Is(err, os.ErrNotExist) {
		printVerbose("No metadata at %s, using default layout\n", path)
		doc, _ = meta.NewDefault(size, env.ColsOr(meta.DefaultCols), opts)
		return doc, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load metadata: %w", err)
	}
	if !rep.Clean() {
		printVerbose("Repaired metadata: %d key(s) rejected, %d region(s) clamped, %d perspective(s), %d view(s), %d placement(s) dropped\n",
			len(rep.RejectedKeys), len(rep.ClampedRegions), len(rep.DroppedPerspectives), len(rep.DroppedViews), len(rep.DroppedPlacements))
	}
	return doc, true, nil
}

// saveDocument writes doc to the metadata path of file.
func saveDocument(file string, doc *meta.Document) error {
	path := metaPathFor(file)
	if err := doc.SaveFile(path); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	printVerbose("Saved metadata: %s\n", path)
	return nil
}

// parseKey parses a key printed by another command ("3v1").
func parseKey[T any](what, s string) (arena.Key[T], error) {
	k, err := arena.ParseKey[T](s)
	if err != nil {
		return k, fmt.Errorf("invalid %s key: %w", what, err)
	}
	if k.IsNull() {
		return k, fmt.Errorf("invalid %s key: null", what)
	}
	return k, nil
}
