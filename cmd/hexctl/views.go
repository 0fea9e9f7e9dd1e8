package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
)

var (
	viewsAdd         string
	viewsPerspective string
	viewsKind        string
	viewsLayout      string
	viewsRow         int
	viewsRemove      string
)

func init() {
	cmd := newViewsCmd()
	cmd.Flags().StringVar(&viewsAdd, "add", "", "Add a view with this name (requires --perspective)")
	cmd.Flags().StringVar(&viewsPerspective, "perspective", "", "Perspective key the new view renders")
	cmd.Flags().StringVar(&viewsKind, "kind", "hex", "Draw kind: hex, dec, ascii, text or block")
	cmd.Flags().StringVar(&viewsLayout, "layout", "", "Also place the new view in this layout")
	cmd.Flags().IntVar(&viewsRow, "row", -1, "Layout row for --layout (-1 appends a row)")
	cmd.Flags().StringVar(&viewsRemove, "remove", "", "Remove the view with this key from the document and every layout")
	cmd.MarkFlagsMutuallyExclusive("add", "remove")
	rootCmd.AddCommand(cmd)
}

func newViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views <file>",
		Short: "List, add or remove views",
		Long: `The views command manages the renderings of perspectives. A new view can be
placed into a layout in the same step. Removing a view takes it out of every
layout; rows left empty disappear.

Example:
  hexctl views firmware.bin
  hexctl views firmware.bin --add bits --perspective 0v1 --kind block --layout default --row 1
  hexctl views firmware.bin --remove 2v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViews(args)
		},
	}
	return cmd
}

func runViews(args []string) error {
	file := args[0]
	doc, _, err := loadDocument(file)
	if err != nil {
		return err
	}

	switch {
	case viewsAdd != "":
		if viewsPerspective == "" {
			return errors.New("--add requires --perspective")
		}
		pk, err := parseKey[perspective.Perspective]("perspective", viewsPerspective)
		if err != nil {
			return err
		}
		kind, err := view.ParseKind(viewsKind)
		if err != nil {
			return err
		}
		vk, err := doc.AddView(viewsAdd, pk, kind)
		if err != nil {
			return err
		}
		printInfo("Added view %s %q (%s)\n", vk, viewsAdd, kind)
		if viewsLayout != "" {
			lk, ok := doc.LayoutByName(viewsLayout)
			if !ok {
				return fmt.Errorf("no layout named %q", viewsLayout)
			}
			if err := doc.PlaceView(lk, viewsRow, vk); err != nil {
				return err
			}
			printVerbose("Placed %s in layout %q\n", vk, viewsLayout)
		}
		return saveDocument(file, doc)

	case viewsRemove != "":
		vk, err := parseKey[view.View]("view", viewsRemove)
		if err != nil {
			return err
		}
		if err := doc.RemoveView(vk); err != nil {
			return err
		}
		printInfo("Removed view %s\n", vk)
		return saveDocument(file, doc)
	}

	vs := collectInfo(file, doc, false).Views
	if jsonOut {
		return printJSON(vs)
	}
	for _, v := range vs {
		printInfo("%-6s %-20s %-6s perspective %s\n", v.Key, v.Name, v.Kind, v.Perspective)
	}
	return nil
}
