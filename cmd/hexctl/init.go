package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/meta"
)

var (
	initCols  int
	initForce bool
)

func init() {
	cmd := newInitCmd()
	cmd.Flags().IntVar(&initCols, "cols", 0, "Columns per row (default $HEXKIT_COLS or 16)")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing metadata")
	rootCmd.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Create default metadata for a file",
		Long: `The init command writes a metadata document with one region covering the
whole file, one perspective over it, and a "default" layout showing a hex
view and an ASCII view side by side.

Example:
  hexctl init firmware.bin
  hexctl init firmware.bin --cols 32 --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	return cmd
}

func runInit(args []string) error {
	file := args[0]
	size, err := fileSize(file)
	if err != nil {
		return err
	}

	path := metaPathFor(file)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("metadata already exists: %s (use --force to overwrite)", path)
	}

	cols := initCols
	if cols <= 0 {
		cols = env.ColsOr(meta.DefaultCols)
	}
	doc, _ := meta.NewDefault(size, cols, meta.Options{Log: cliLogger()})
	if err := saveDocument(file, doc); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"file": file, "meta": path, "size": size, "cols": cols})
	}
	printInfo("Created %s (%d bytes, %d columns)\n", path, size, cols)
	return nil
}
