package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/cmd/hexexplorer/logger"
	"github.com/joshuapare/hexkit/hex/buffer"
	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/hex/render"
	"github.com/joshuapare/hexkit/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliArgs is the result of parsing the command line.
type cliArgs struct {
	debug    bool
	mmap     bool
	readOnly bool
	metaPath string
	rest     []string
}

func parseArgs(args []string) (cliArgs, error) {
	var a cliArgs
	a.rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			a.debug = true
		case "--mmap":
			a.mmap = true
		case "--read-only", "-r":
			a.readOnly = true
		case "--meta":
			if i+1 >= len(args) {
				return a, errors.New("--meta needs a path")
			}
			i++
			a.metaPath = args[i]
		default:
			a.rest = append(a.rest, arg)
		}
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if len(a.rest) < 1 {
		printUsage()
		os.Exit(1)
	}

	if a.rest[0] == "--help" || a.rest[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if a.rest[0] == "--version" || a.rest[0] == "-v" {
		fmt.Printf("hexexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	path := a.rest[0]

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: a.debug,
		Level:   slog.LevelDebug,
		File:    path,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	defer logger.Close()

	logger.Info("starting hexexplorer", "path", path, "debug", a.debug, "mmap", a.mmap)

	m, err := openModel(path, a, config.FromEnv())
	if err != nil {
		logger.Error("failed to open file", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("hexexplorer exited normally")
}

// openModel opens the buffer at path and its metadata, falling back to the
// default layout when no metadata file exists.
func openModel(path string, a cliArgs, env config.Env) (Model, error) {
	cp, err := render.CodePage(env.CodePage)
	if err != nil {
		return Model{}, err
	}

	b, err := buffer.Open(path, buffer.Options{
		ReadOnly: a.readOnly,
		Mmap:     a.mmap,
		Log:      logger.L,
	})
	if err != nil {
		return Model{}, err
	}

	metaPath := a.metaPath
	if metaPath == "" {
		metaPath = path + ".hexkit.json"
	}
	opts := meta.Options{Log: logger.L}
	doc, rep, err := meta.LoadFile(metaPath, b.Len(), opts)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("no metadata, using default layout", "meta", metaPath)
		doc, _ = meta.NewDefault(b.Len(), env.ColsOr(meta.DefaultCols), opts)
	case err != nil:
		_ = b.Close()
		return Model{}, fmt.Errorf("failed to load metadata: %w", err)
	case !rep.Clean():
		logger.Warn("metadata repaired on load", "meta", metaPath,
			"rejected_keys", len(rep.RejectedKeys),
			"clamped_regions", len(rep.ClampedRegions),
			"dropped_perspectives", len(rep.DroppedPerspectives),
			"dropped_views", len(rep.DroppedViews),
			"dropped_placements", len(rep.DroppedPlacements))
	}

	return NewModel(Config{Path: path, MetaPath: metaPath, CodePage: cp}, b, doc), nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: hexexplorer [options] <file>\n")
	fmt.Fprintf(os.Stderr, "Try 'hexexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("hexexplorer - Interactive hex editor TUI")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  hexexplorer [options] <file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Shows a file through the views and layouts stored in its metadata")
	fmt.Println("  (<file>.hexkit.json, see 'hexctl init'). Without metadata a hex view")
	fmt.Println("  and an ASCII view of the whole file are shown side by side.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move one row")
	fmt.Println("    ←/h, →/l    Move one byte")
	fmt.Println("    Tab         Next view")
	fmt.Println("    L           Next layout")
	fmt.Println("    i           Edit bytes, Esc to stop")
	fmt.Println("    Ctrl+S      Save changes")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug      Enable debug logging to ~/.hexexplorer/logs/")
	fmt.Println("  -r, --read-only  Open the file without write access")
	fmt.Println("      --mmap       Memory-map the file instead of reading it")
	fmt.Println("      --meta PATH  Metadata file (default: <file>.hexkit.json)")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT:")
	fmt.Printf("  %s  Code page for text views (%v)\n", config.EnvCodePage, render.CodePageNames())
	fmt.Printf("  %s      Columns of the default perspective\n", config.EnvCols)
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'hexctl' command instead.")
}
