package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/perspective"
)

var addrPerspective string

func init() {
	cmd := newAddrCmd()
	cmd.Flags().StringVar(&addrPerspective, "perspective", "", "Perspective key (default: the first one)")
	rootCmd.AddCommand(cmd)
}

func newAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr <file> <offset | row:col>",
		Short: "Translate between byte offsets and grid positions",
		Long: `The addr command converts an absolute byte offset into the row and column
of a perspective's grid, or a row:col pair into the byte offset it addresses.
Offsets accept decimal, 0x hex, 0o octal and 0b binary.

Example:
  hexctl addr firmware.bin 0x1234
  hexctl addr firmware.bin 12:7 --perspective 1v1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddr(args)
		},
	}
	return cmd
}

type addrReport struct {
	Perspective string `json:"perspective"`
	Offset      int    `json:"offset"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	DisplayRow  int    `json:"display_row"`
	InBounds    bool   `json:"in_bounds"`
}

func runAddr(args []string) error {
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	var pk perspective.Key
	if addrPerspective != "" {
		if pk, err = parseKey[perspective.Perspective]("perspective", addrPerspective); err != nil {
			return err
		}
	} else {
		for k := range doc.Perspectives() {
			pk = k
			break
		}
		if pk.IsNull() {
			return fmt.Errorf("no perspectives defined")
		}
	}
	g, err := doc.Grid(pk)
	if err != nil {
		return err
	}

	rep := addrReport{Perspective: pk.String()}
	if rowStr, colStr, ok := strings.Cut(args[1], ":"); ok {
		row, err := parseOffset(rowStr)
		if err != nil {
			return fmt.Errorf("row: %w", err)
		}
		col, err := parseOffset(colStr)
		if err != nil {
			return fmt.Errorf("col: %w", err)
		}
		rep.Row, rep.Col = row, col
		rep.Offset = g.ByteOffsetOf(row, col)
		rep.InBounds = g.InBounds(row, col)
	} else {
		off, err := parseOffset(args[1])
		if err != nil {
			return err
		}
		rep.Offset = off
		rep.Row, rep.Col = g.RowColOf(off)
		rep.InBounds = g.Region.Contains(off)
	}
	rep.DisplayRow = g.DisplayRow(rep.Row)

	if jsonOut {
		return printJSON(rep)
	}
	printInfo("offset %#x = row %d, col %d", rep.Offset, rep.Row, rep.Col)
	if g.Flip {
		printInfo(" (drawn at row %d)", rep.DisplayRow)
	}
	if !rep.InBounds {
		printInfo(" [outside region %s]", g.Region)
	}
	printInfo("\n")
	printVerbose("grid: %s, %d cols x %d rows\n", g.Region, g.Cols, g.RowCount())
	return nil
}
