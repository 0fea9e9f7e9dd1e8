package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/region"
)

var (
	perspAdd    string
	perspKey    string
	perspRemove string
	perspRegion string
	perspCols   int
	perspFlip   bool
	perspUnflip bool
	perspRename string
)

func init() {
	cmd := newPerspectivesCmd()
	cmd.Flags().StringVar(&perspAdd, "add", "", "Add a perspective with this name (requires --region)")
	cmd.Flags().StringVar(&perspKey, "key", "", "Modify the perspective with this key")
	cmd.Flags().StringVar(&perspRemove, "remove", "", "Remove the perspective with this key and its views")
	cmd.Flags().StringVar(&perspRegion, "region", "", "Region key to grid (re-points with --key)")
	cmd.Flags().IntVar(&perspCols, "cols", 0, "Columns per row")
	cmd.Flags().BoolVar(&perspFlip, "flip", false, "Draw rows bottom-up")
	cmd.Flags().BoolVar(&perspUnflip, "unflip", false, "Draw rows top-down (with --key)")
	cmd.Flags().StringVar(&perspRename, "rename", "", "New name for --key")
	cmd.MarkFlagsMutuallyExclusive("add", "key", "remove")
	cmd.MarkFlagsMutuallyExclusive("flip", "unflip")
	rootCmd.AddCommand(cmd)
}

func newPerspectivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perspectives <file>",
		Short: "List, add, modify or remove perspectives",
		Long: `The perspectives command manages the grids laid over regions. Column counts
are clamped to the region length. Removing a perspective also removes every
view bound to it.

Example:
  hexctl perspectives firmware.bin
  hexctl perspectives firmware.bin --add table --region 1v1 --cols 12
  hexctl perspectives firmware.bin --key 0v1 --cols 32 --flip
  hexctl perspectives firmware.bin --remove 1v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerspectives(args)
		},
	}
	return cmd
}

func runPerspectives(args []string) error {
	file := args[0]
	doc, _, err := loadDocument(file)
	if err != nil {
		return err
	}
	cols := perspCols
	if cols <= 0 {
		cols = env.ColsOr(meta.DefaultCols)
	}

	switch {
	case perspAdd != "":
		if perspRegion == "" {
			return errors.New("--add requires --region")
		}
		rk, err := parseKey[region.Named]("region", perspRegion)
		if err != nil {
			return err
		}
		k, err := doc.AddPerspective(perspAdd, rk, cols, perspFlip)
		if err != nil {
			return err
		}
		p, _ := doc.Perspective(k)
		printInfo("Added perspective %s %q (%d cols)\n", k, p.Name, p.Cols)
		return saveDocument(file, doc)

	case perspKey != "":
		k, err := parseKey[perspective.Perspective]("perspective", perspKey)
		if err != nil {
			return err
		}
		if perspRegion != "" {
			rk, err := parseKey[region.Named]("region", perspRegion)
			if err != nil {
				return err
			}
			if err := doc.Repoint(k, rk); err != nil {
				return err
			}
		}
		if perspCols != 0 {
			if err := doc.SetCols(k, perspCols); err != nil {
				return err
			}
		}
		if perspFlip || perspUnflip {
			if err := doc.SetFlip(k, perspFlip); err != nil {
				return err
			}
		}
		if perspRename != "" {
			if err := doc.RenamePerspective(k, perspRename); err != nil {
				return err
			}
		}
		p, err := doc.Perspective(k)
		if err != nil {
			return err
		}
		printInfo("Updated perspective %s %q: region %s, %d cols, flip %t\n", k, p.Name, p.Region, p.Cols, p.FlipRowOrder)
		return saveDocument(file, doc)

	case perspRemove != "":
		k, err := parseKey[perspective.Perspective]("perspective", perspRemove)
		if err != nil {
			return err
		}
		removed, err := doc.RemovePerspective(k)
		if err != nil {
			return err
		}
		printInfo("Removed perspective %s and %d view(s)\n", k, len(removed))
		return saveDocument(file, doc)
	}

	ps := collectInfo(file, doc, false).Perspectives
	if jsonOut {
		return printJSON(ps)
	}
	for _, p := range ps {
		if p.Stale {
			printInfo("%-6s %-20s region %s (removed)\n", p.Key, p.Name, p.Region)
			continue
		}
		printInfo("%-6s %-20s region %s, %d cols x %d rows, flip %t\n", p.Key, p.Name, p.Region, p.Cols, p.Rows, p.Flip)
	}
	return nil
}
