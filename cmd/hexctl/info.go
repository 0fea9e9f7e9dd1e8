package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/meta"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a file's metadata",
		Long: `The info command lists every region, perspective, view and layout of a
file's metadata with their keys.

Example:
  hexctl info firmware.bin
  hexctl info firmware.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type regionInfo struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Desc  string `json:"desc,omitempty"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
	Len   int    `json:"len"`
}

type perspectiveInfo struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
	Flip   bool   `json:"flip"`
	Stale  bool   `json:"stale,omitempty"`
}

type viewInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Perspective string `json:"perspective"`
}

type layoutInfo struct {
	Key    string     `json:"key"`
	Name   string     `json:"name"`
	Margin float64    `json:"margin"`
	Rows   [][]string `json:"rows"`
}

type infoReport struct {
	File         string            `json:"file"`
	Size         int               `json:"size"`
	Meta         string            `json:"meta"`
	Persisted    bool              `json:"persisted"`
	Regions      []regionInfo      `json:"regions"`
	Perspectives []perspectiveInfo `json:"perspectives"`
	Views        []viewInfo        `json:"views"`
	Layouts      []layoutInfo      `json:"layouts"`
}

func collectInfo(file string, doc *meta.Document, persisted bool) infoReport {
	rep := infoReport{File: file, Size: doc.BufLen(), Meta: metaPathFor(file), Persisted: persisted}
	for k, r := range doc.Regions() {
		rep.Regions = append(rep.Regions, regionInfo{
			Key: k.String(), Name: r.Name, Desc: r.Desc, Begin: r.Begin, End: r.End, Len: r.Len(),
		})
	}
	for k, p := range doc.Perspectives() {
		pi := perspectiveInfo{Key: k.String(), Name: p.Name, Region: p.Region.String(), Cols: p.Cols, Flip: p.FlipRowOrder}
		if g, err := doc.Grid(k); err == nil {
			pi.Rows = g.RowCount()
		} else {
			pi.Stale = true
		}
		rep.Perspectives = append(rep.Perspectives, pi)
	}
	for k, v := range doc.Views() {
		rep.Views = append(rep.Views, viewInfo{
			Key: k.String(), Name: v.Name, Kind: v.Kind.String(), Perspective: v.Perspective.String(),
		})
	}
	for k, l := range doc.Layouts() {
		li := layoutInfo{Key: k.String(), Name: l.Name, Margin: l.Margin}
		for _, row := range l.Grid {
			keys := make([]string, len(row))
			for i, vk := range row {
				keys[i] = vk.String()
			}
			li.Rows = append(li.Rows, keys)
		}
		rep.Layouts = append(rep.Layouts, li)
	}
	return rep
}

func runInfo(args []string) error {
	file := args[0]
	printVerbose("Opening: %s\n", file)

	doc, persisted, err := loadDocument(file)
	if err != nil {
		return err
	}
	rep := collectInfo(file, doc, persisted)

	if jsonOut {
		return printJSON(rep)
	}

	printInfo("\nFile Information:\n")
	printInfo("  File: %s\n", rep.File)
	printInfo("  Size: %s\n", formatSize(rep.Size))
	if rep.Persisted {
		printInfo("  Metadata: %s\n", rep.Meta)
	} else {
		printInfo("  Metadata: none (default layout)\n")
	}

	printInfo("\nRegions (%d):\n", len(rep.Regions))
	for _, r := range rep.Regions {
		printInfo("  %-6s %-20s %#x..=%#x  %d bytes\n", r.Key, r.Name, r.Begin, r.End, r.Len)
	}
	printInfo("\nPerspectives (%d):\n", len(rep.Perspectives))
	for _, p := range rep.Perspectives {
		if p.Stale {
			printInfo("  %-6s %-20s region %s (removed)\n", p.Key, p.Name, p.Region)
			continue
		}
		flip := ""
		if p.Flip {
			flip = ", flipped"
		}
		printInfo("  %-6s %-20s region %s, %d cols x %d rows%s\n", p.Key, p.Name, p.Region, p.Cols, p.Rows, flip)
	}
	printInfo("\nViews (%d):\n", len(rep.Views))
	for _, v := range rep.Views {
		printInfo("  %-6s %-20s %-6s perspective %s\n", v.Key, v.Name, v.Kind, v.Perspective)
	}
	printInfo("\nLayouts (%d):\n", len(rep.Layouts))
	for _, l := range rep.Layouts {
		printInfo("  %-6s %s (margin %g)\n", l.Key, l.Name, l.Margin)
		for i, row := range l.Rows {
			printInfo("    row %d: %v\n", i, row)
		}
	}
	return nil
}

func formatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
