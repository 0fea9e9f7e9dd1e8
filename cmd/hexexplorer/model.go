package main

import (
	"encoding/binary"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/hexkit/cmd/hexexplorer/logger"
	"github.com/joshuapare/hexkit/hex/buffer"
	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/meta"
	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/view"
)

// Screen rows used outside the layout area.
const (
	headerHeight = 1
	footerHeight = 2 // inspector + status
)

// Model is the main application model
type Model struct {
	path     string
	metaPath string
	buf      *buffer.Buffer
	doc      *meta.Document
	keys     KeyMap
	codePage *charmap.Charmap

	layouts   []layout.Key
	layoutIdx int

	// Last layout pass, in declared order.
	placements []layout.Placement
	active     int // index into placements

	cursor int // absolute byte offset

	editMode bool
	nibble   int // 0: next hex digit is the high nibble
	order    binary.ByteOrder

	width  int
	height int

	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// Config carries what main resolved from flags and the environment.
type Config struct {
	Path     string
	MetaPath string
	CodePage *charmap.Charmap
}

// NewModel creates a new TUI model over an open buffer and its metadata.
func NewModel(cfg Config, buf *buffer.Buffer, doc *meta.Document) Model {
	m := Model{
		path:     cfg.Path,
		metaPath: cfg.MetaPath,
		buf:      buf,
		doc:      doc,
		keys:     DefaultKeyMap(),
		codePage: cfg.CodePage,
		layouts:  doc.LayoutKeys(),
		order:    binary.LittleEndian,
	}
	if m.codePage == nil {
		m.codePage = charmap.CodePage437
	}
	if k, ok := doc.LayoutByName(meta.DefaultLayoutName); ok {
		for i, lk := range m.layouts {
			if lk == k {
				m.layoutIdx = i
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the buffer.
func (m Model) Close() error {
	if m.buf == nil {
		return nil
	}
	return m.buf.Close()
}

// clearStatusMsg clears the status message
type clearStatusMsg struct{}

func (m Model) currentLayout() (layout.Key, bool) {
	if len(m.layouts) == 0 {
		return layout.Key{}, false
	}
	return m.layouts[m.layoutIdx%len(m.layouts)], true
}

func (m Model) contentRect() view.Rect {
	return view.Rect{
		W: float64(m.width),
		H: float64(max(m.height-headerHeight-footerHeight, 0)),
	}
}

// relayout recomputes placements for the current layout and keeps the
// cursor on screen in every view that shows it.
func (m *Model) relayout() {
	m.placements = nil
	lk, ok := m.currentLayout()
	if !ok {
		return
	}
	res, err := m.doc.Relayout(lk, m.contentRect(), view.TerminalMetrics)
	if err != nil {
		logger.Warn("relayout failed", "layout", lk, "error", err)
		return
	}
	m.placements = res.Placements
	if m.active >= len(m.placements) {
		m.active = 0
	}
	m.follow()
}

// follow scrolls every placed view whose grid contains the cursor so the
// cursor is visible.
func (m *Model) follow() {
	for _, p := range m.placements {
		v, g, err := m.doc.ViewGrid(p.View)
		if err != nil {
			continue
		}
		v.ScrollTo(m.cursor, g)
	}
}

// activeView returns the focused view and its grid.
func (m Model) activeView() (*view.View, perspective.Grid, bool) {
	if m.active < 0 || m.active >= len(m.placements) {
		return nil, perspective.Grid{}, false
	}
	v, g, err := m.doc.ViewGrid(m.placements[m.active].View)
	if err != nil {
		return nil, perspective.Grid{}, false
	}
	return v, g, true
}

func (m Model) layoutName() string {
	lk, ok := m.currentLayout()
	if !ok {
		return "none"
	}
	l, err := m.doc.Layout(lk)
	if err != nil {
		return lk.String()
	}
	return l.Name
}

func (m Model) endianName() string {
	if m.order == binary.BigEndian {
		return "BE"
	}
	return "LE"
}

func offsetLabel(off int) string {
	return fmt.Sprintf("%#08x", off)
}
