package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/buffer"
	"github.com/joshuapare/hexkit/hex/render"
	"github.com/joshuapare/hexkit/hex/view"
)

var (
	dumpAt       string
	dumpCodePage string
)

func init() {
	cmd := newDumpCmd()
	addViewportFlags(cmd)
	cmd.Flags().StringVar(&dumpAt, "at", "", "Scroll every view so this offset is visible")
	cmd.Flags().StringVar(&dumpCodePage, "codepage", "", "Code page for text views (default $HEXKIT_CODEPAGE or cp437)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Render the views of a layout as text",
		Long: `The dump command arranges a layout in a terminal-sized viewport and prints
what each view would draw, one view after another, using one character cell
per pixel.

Example:
  hexctl dump firmware.bin
  hexctl dump firmware.bin --at 0x4000 --height 40
  hexctl dump firmware.bin --layout strings --codepage cp1252`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type dumpedView struct {
	View  string   `json:"view"`
	Name  string   `json:"name"`
	Kind  string   `json:"kind"`
	Lines []string `json:"lines"`
}

func runDump(args []string) error {
	file := args[0]
	cpName := dumpCodePage
	if cpName == "" {
		cpName = env.CodePage
	}
	cp, err := render.CodePage(cpName)
	if err != nil {
		return err
	}

	buf, err := buffer.Open(file, buffer.Options{ReadOnly: true, Log: cliLogger()})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer buf.Close()

	doc, _, err := loadDocument(file)
	if err != nil {
		return err
	}
	res, err := arrange(doc, view.TerminalMetrics)
	if err != nil {
		return err
	}

	var out []dumpedView
	for _, p := range res.Placements {
		v, g, err := doc.ViewGrid(p.View)
		if err != nil {
			return err
		}
		if dumpAt != "" {
			off, err := parseOffset(dumpAt)
			if err != nil {
				return err
			}
			v.ScrollTo(off, g)
		}
		rows := render.Draw(v, g, buf.Bytes(), render.Options{CodePage: cp})
		out = append(out, dumpedView{
			View: p.View.String(), Name: v.Name, Kind: v.Kind.String(), Lines: render.Lines(rows),
		})
	}

	if jsonOut {
		return printJSON(out)
	}
	for i, dv := range out {
		if i > 0 {
			printInfo("\n")
		}
		printInfo("== %s %s (%s) ==\n", dv.View, dv.Name, dv.Kind)
		for _, line := range dv.Lines {
			printInfo("%s\n", strings.TrimRight(line, " "))
		}
	}
	return nil
}
