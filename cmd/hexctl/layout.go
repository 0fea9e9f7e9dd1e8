package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/hex/view"
)

var (
	layoutName   string
	layoutWidth  float64
	layoutHeight float64
	layoutCellW  float64
	layoutCellH  float64
)

func init() {
	cmd := newLayoutCmd()
	addViewportFlags(cmd)
	cmd.Flags().Float64Var(&layoutCellW, "cell-width", 1, "Width of one glyph cell")
	cmd.Flags().Float64Var(&layoutCellH, "cell-height", 1, "Height of one glyph cell")
	rootCmd.AddCommand(cmd)
}

// addViewportFlags registers the flags shared by layout and dump.
func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&layoutName, "layout", meta.DefaultLayoutName, "Layout to arrange")
	cmd.Flags().Float64Var(&layoutWidth, "width", 0, "Viewport width (default: terminal width, or 80)")
	cmd.Flags().Float64Var(&layoutHeight, "height", 0, "Viewport height (default: terminal height, or 24)")
}

// viewport returns the rectangle given by --width and --height. Unset
// dimensions come from the terminal on stdout, or 80x24 when stdout is not
// a terminal.
func viewport() view.Rect {
	w, h := layoutWidth, layoutHeight
	if w > 0 && h > 0 {
		return view.Rect{W: w, H: h}
	}
	tw, th := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if cw, ch, err := term.GetSize(fd); err == nil && cw > 0 && ch > 0 {
			tw, th = cw, ch
		}
	}
	if w <= 0 {
		w = float64(tw)
	}
	if h <= 0 {
		h = float64(th)
	}
	return view.Rect{W: w, H: h}
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Compute where a layout places its views",
		Long: `The layout command runs the layout engine for one viewport size and prints
the rectangle assigned to each view, how many grid rows and columns fit in
it, and the byte range each view shows.

Example:
  hexctl layout firmware.bin
  hexctl layout firmware.bin --layout default --width 120 --height 40
  hexctl layout firmware.bin --cell-width 8 --cell-height 16 --width 1280 --height 800`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

type placementInfo struct {
	View    string    `json:"view"`
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Rect    view.Rect `json:"rect"`
	Rows    int       `json:"visible_rows"`
	Cols    int       `json:"visible_cols"`
	Visible string    `json:"visible_range,omitempty"`
}

type layoutReport struct {
	Layout     string          `json:"layout"`
	Viewport   view.Rect       `json:"viewport"`
	Placements []placementInfo `json:"placements"`
	Missing    []string        `json:"missing,omitempty"`
}

// arrange resolves the named layout and runs it inside the viewport flags.
func arrange(doc *meta.Document, m view.Metrics) (layout.Result, error) {
	lk, ok := doc.LayoutByName(layoutName)
	if !ok {
		return layout.Result{}, fmt.Errorf("no layout named %q", layoutName)
	}
	vp := viewport()
	printVerbose("Arranging %q in %s\n", layoutName, vp)
	return doc.Relayout(lk, vp, m)
}

func runLayout(args []string) error {
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	res, err := arrange(doc, view.Metrics{CellW: layoutCellW, CellH: layoutCellH})
	if err != nil {
		return err
	}

	rep := layoutReport{Layout: layoutName, Viewport: viewport()}
	for _, p := range res.Placements {
		v, g, err := doc.ViewGrid(p.View)
		if err != nil {
			return err
		}
		pi := placementInfo{
			View: p.View.String(), Name: v.Name, Kind: v.Kind.String(),
			Row: p.Row, Col: p.Col, Rect: p.Rect, Rows: v.Rows, Cols: v.Cols,
		}
		if r, ok := v.VisibleRange(g); ok {
			pi.Visible = r.String()
		}
		rep.Placements = append(rep.Placements, pi)
	}
	for _, k := range res.Missing {
		rep.Missing = append(rep.Missing, k.String())
	}

	if jsonOut {
		return printJSON(rep)
	}
	printInfo("Layout %q in %gx%g:\n", rep.Layout, rep.Viewport.W, rep.Viewport.H)
	for _, p := range rep.Placements {
		visible := p.Visible
		if visible == "" {
			visible = "nothing"
		}
		printInfo("  [%d,%d] %-6s %-12s %-6s %s  %dx%d cells, shows %s\n",
			p.Row, p.Col, p.View, p.Name, p.Kind, p.Rect, p.Cols, p.Rows, visible)
	}
	for _, k := range rep.Missing {
		printInfo("  skipped %s (view no longer resolves)\n", k)
	}
	return nil
}
