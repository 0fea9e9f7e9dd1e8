package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/buffer"
	"github.com/joshuapare/hexkit/hex/dirty"
)

var (
	patchMmap     bool
	patchTruncate int
	patchDataOnly bool
)

func init() {
	cmd := newPatchCmd()
	cmd.Flags().BoolVar(&patchMmap, "mmap", false, "Edit through a shared memory mapping")
	cmd.Flags().IntVar(&patchTruncate, "truncate", -1, "Shrink the file to this many bytes after patching")
	cmd.Flags().BoolVar(&patchDataOnly, "data-only", false, "Skip the final fsync")
	rootCmd.AddCommand(cmd)
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file> <offset> [hex bytes]",
		Short: "Overwrite bytes in place and save only the changed span",
		Long: `The patch command writes bytes at an offset without growing the file, then
saves. Only the bounding span of all changes is written back (or msync'd
with --mmap). With --truncate the file is cut after patching; metadata
regions are clamped to the new length.

Example:
  hexctl patch firmware.bin 0x10 "de ad be ef"
  hexctl patch firmware.bin 0x200 --truncate 0x200
  hexctl patch firmware.bin 0 4d5a --mmap`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.Context(), args)
		},
	}
	return cmd
}

type patchReport struct {
	Offset    int    `json:"offset"`
	Written   int    `json:"written"`
	Span      string `json:"span,omitempty"`
	Len       int    `json:"len"`
	Truncated bool   `json:"truncated"`
}

func runPatch(ctx context.Context, args []string) error {
	file := args[0]
	off, err := parseOffset(args[1])
	if err != nil {
		return err
	}
	var data []byte
	if len(args) == 3 {
		data, err = hex.DecodeString(strings.Join(strings.Fields(args[2]), ""))
		if err != nil {
			return fmt.Errorf("invalid hex bytes: %w", err)
		}
	}
	if len(data) == 0 && patchTruncate < 0 {
		return fmt.Errorf("nothing to do: give hex bytes or --truncate")
	}

	mode := dirty.FlushAuto
	if patchDataOnly {
		mode = dirty.FlushDataOnly
	}
	buf, err := buffer.Open(file, buffer.Options{Mmap: patchMmap, FlushMode: mode, Log: cliLogger()})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer buf.Close()
	printVerbose("Opened %s (%d bytes, mapped %t)\n", file, buf.Len(), buf.Mapped())

	rep := patchReport{Offset: off}
	if len(data) > 0 {
		if rep.Written, err = buf.WriteAt(data, int64(off)); err != nil {
			return err
		}
	}
	if patchTruncate >= 0 {
		if err := buf.Truncate(patchTruncate); err != nil {
			return err
		}
	}
	if span, ok := buf.Dirty().Current(); ok {
		rep.Span = span.String()
	}
	rep.Truncated = buf.Dirty().Truncated()

	if err := buf.Save(ctx); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	rep.Len = buf.Len()

	if rep.Truncated {
		doc, persisted, err := loadDocument(file)
		if err != nil {
			return err
		}
		if persisted {
			doc.SetBufLen(rep.Len)
			if err := saveDocument(file, doc); err != nil {
				return err
			}
		}
	}

	if jsonOut {
		return printJSON(rep)
	}
	printInfo("Wrote %d byte(s) at %#x", rep.Written, rep.Offset)
	if rep.Span != "" {
		printInfo(", saved span %s", rep.Span)
	}
	if rep.Truncated {
		printInfo(", truncated to %d bytes", rep.Len)
	}
	printInfo("\n")
	return nil
}
