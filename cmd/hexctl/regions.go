package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/hex/region"
)

var (
	regionsAdd    string
	regionsRange  string
	regionsDesc   string
	regionsSet    string
	regionsRemove string
)

func init() {
	cmd := newRegionsCmd()
	cmd.Flags().StringVar(&regionsAdd, "add", "", "Add a region with this name (requires --range)")
	cmd.Flags().StringVar(&regionsRange, "range", "", "Inclusive byte range BEGIN:END, e.g. 0x10:0x1f")
	cmd.Flags().StringVar(&regionsDesc, "desc", "", "Description for --add")
	cmd.Flags().StringVar(&regionsSet, "set", "", "Move the region with this key to --range")
	cmd.Flags().StringVar(&regionsRemove, "remove", "", "Remove the region with this key")
	cmd.MarkFlagsMutuallyExclusive("add", "set", "remove")
	rootCmd.AddCommand(cmd)
}

func newRegionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions <file>",
		Short: "List, add, move or remove named regions",
		Long: `The regions command manages the named byte ranges of a file. Without
flags it lists them. Ranges are inclusive; a reversed range is normalised and
a range running past the end of the file is clamped.

Removing a region keeps the perspectives over it; they are reported as
removed until re-pointed with "hexctl perspectives --key K --region R".

Example:
  hexctl regions firmware.bin
  hexctl regions firmware.bin --add header --range 0:0x3f --desc "boot header"
  hexctl regions firmware.bin --set 1v1 --range 0x40:0x7f
  hexctl regions firmware.bin --remove 1v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegions(args)
		},
	}
	return cmd
}

// parseRange parses "BEGIN:END".
func parseRange(s string) (begin, end int, err error) {
	b, e, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q: want BEGIN:END", s)
	}
	if begin, err = parseOffset(strings.TrimSpace(b)); err != nil {
		return 0, 0, err
	}
	if end, err = parseOffset(strings.TrimSpace(e)); err != nil {
		return 0, 0, err
	}
	return begin, end, nil
}

func runRegions(args []string) error {
	file := args[0]
	doc, _, err := loadDocument(file)
	if err != nil {
		return err
	}

	switch {
	case regionsAdd != "":
		if regionsRange == "" {
			return errors.New("--add requires --range")
		}
		begin, end, err := parseRange(regionsRange)
		if err != nil {
			return err
		}
		k, err := doc.AddRegion(regionsAdd, begin, end)
		if err != nil {
			return err
		}
		if regionsDesc != "" {
			if err := doc.DescribeRegion(k, regionsAdd, regionsDesc); err != nil {
				return err
			}
		}
		r, _ := doc.Region(k)
		printInfo("Added region %s %q %s\n", k, r.Name, r.Region)
		return saveDocument(file, doc)

	case regionsSet != "":
		k, err := parseKey[region.Named]("region", regionsSet)
		if err != nil {
			return err
		}
		if regionsRange == "" {
			return errors.New("--set requires --range")
		}
		begin, end, err := parseRange(regionsRange)
		if err != nil {
			return err
		}
		if err := doc.SetRegionBounds(k, begin, end); err != nil {
			return err
		}
		r, _ := doc.Region(k)
		printInfo("Moved region %s to %s\n", k, r.Region)
		return saveDocument(file, doc)

	case regionsRemove != "":
		k, err := parseKey[region.Named]("region", regionsRemove)
		if err != nil {
			return err
		}
		if err := doc.RemoveRegion(k); err != nil {
			return err
		}
		printInfo("Removed region %s\n", k)
		return saveDocument(file, doc)
	}

	regions := collectInfo(file, doc, false).Regions
	if jsonOut {
		return printJSON(regions)
	}
	for _, r := range regions {
		printInfo("%-6s %-20s %#x..=%#x  %d bytes", r.Key, r.Name, r.Begin, r.End, r.Len)
		if r.Desc != "" {
			printInfo("  # %s", r.Desc)
		}
		printInfo("\n")
	}
	return nil
}
