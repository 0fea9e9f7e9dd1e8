package meta

import (
	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/view"
)

// DefaultCols is the column count used when none is given.
const DefaultCols = 16

// DefaultLayoutName names the layout built by NewDefault.
const DefaultLayoutName = "default"

// NewDefault returns a document with one region over the whole buffer, one
// perspective of cols columns, and a layout showing a hex view and an ASCII
// view side by side.
func NewDefault(bufLen, cols int, opts Options) (*Document, layout.Key) {
	if cols <= 0 {
		cols = DefaultCols
	}
	d := New(bufLen, opts)

	// Neither call can fail: the region starts at 0 and the keys are fresh.
	rk, _ := d.AddRegion("file", 0, bufLen-1)
	pk, _ := d.AddPerspective("file", rk, cols, false)
	hex, _ := d.AddView("hex", pk, view.KindHex)
	ascii, _ := d.AddView("ascii", pk, view.KindASCII)
	lk, _ := d.AddLayout(DefaultLayoutName, 1, []view.Key{hex, ascii})
	return d, lk
}
