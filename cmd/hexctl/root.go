package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/internal/config"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	metaPath string
)

var rootCmd = &cobra.Command{
	Use:   "hexctl",
	Short: "Inspect and edit binary files through hexkit layouts",
	Long: `hexctl works on a data file together with its hexkit metadata: named
regions, the grid perspectives over them, the views that render those grids,
and the layouts that arrange views on screen.

Metadata is stored next to the file as <file>.hexkit.json unless --meta is
given. Commands that read metadata fall back to a default layout when none
has been saved.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&metaPath, "meta", "", "Metadata file (default <file>.hexkit.json)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// env is read once per process.
var env = config.FromEnv()

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// cliLogger routes library diagnostics to stderr at a level matching the
// global flags.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// parseOffset accepts decimal, 0x hex, 0o octal and 0b binary.
func parseOffset(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid offset %q: negative", s)
	}
	return int(n), nil
}
