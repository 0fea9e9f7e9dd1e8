package meta

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/hexkit/hex/layout"
	"github.com/joshuapare/hexkit/hex/perspective"
	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/arena"
	"github.com/joshuapare/hexkit/internal/writer"
)

// Version is the persisted document format version.
const Version = 1

type document struct {
	Version      int                                   `json:"version"`
	BufLen       int                                   `json:"buf_len"`
	Regions      *arena.Arena[region.Named]            `json:"regions"`
	Perspectives *arena.Arena[perspective.Perspective] `json:"perspectives"`
	Views        *arena.Arena[view.View]               `json:"views"`
	Layouts      *arena.Arena[layout.Layout]           `json:"layouts"`
}

// LoadReport lists what Load changed to make a persisted document
// consistent with itself and the buffer.
type LoadReport struct {
	// RejectedKeys are entries whose key could not be restored, in
	// "section key" form.
	RejectedKeys        []string
	ClampedRegions      []region.Key
	DroppedPerspectives []perspective.Key
	DroppedViews        []view.Key
	// DroppedPlacements are layout entries naming views that do not exist.
	DroppedPlacements []view.Key
}

// Clean reports whether the document loaded unchanged.
func (r LoadReport) Clean() bool {
	return len(r.RejectedKeys) == 0 && len(r.ClampedRegions) == 0 && len(r.DroppedPerspectives) == 0 &&
		len(r.DroppedViews) == 0 && len(r.DroppedPlacements) == 0
}

// Save writes the document as indented JSON. Keys keep their index and
// generation.
func (d *Document) Save(w io.Writer) error {
	b, err := d.marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// SaveTo commits the serialized document to a sink.
func (d *Document) SaveTo(s writer.Sink) error {
	b, err := d.marshal()
	if err != nil {
		return err
	}
	return s.Commit(b)
}

// SaveFile replaces path atomically.
func (d *Document) SaveFile(path string) error {
	if err := d.SaveTo(&writer.FileWriter{Path: path}); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (d *Document) marshal() ([]byte, error) {
	b, err := json.MarshalIndent(document{
		Version:      Version,
		BufLen:       d.bufLen,
		Regions:      d.regions,
		Perspectives: d.perspectives,
		Views:        d.views,
		Layouts:      d.layouts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("meta: encode: %w", err)
	}
	return append(b, '\n'), nil
}

// Load decodes a document saved by Save and repairs it against a buffer
// of bufLen bytes. A negative bufLen keeps the persisted length.
//
// Regions are clamped to the buffer. Perspectives whose region is missing,
// views whose perspective is missing, and layout entries whose view is
// missing are dropped, each with a warning. Columns are re-clamped last.
func Load(r io.Reader, bufLen int, opts Options) (*Document, LoadReport, error) {
	var rep LoadReport
	raw := document{
		Regions:      arena.New[region.Named](),
		Perspectives: arena.New[perspective.Perspective](),
		Views:        arena.New[view.View](),
		Layouts:      arena.New[layout.Layout](),
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, rep, fmt.Errorf("meta: decode: %w", err)
	}
	if raw.Version > Version {
		return nil, rep, fmt.Errorf("%w: %d", ErrVersion, raw.Version)
	}
	if bufLen < 0 {
		bufLen = raw.BufLen
	}

	d := New(bufLen, opts)
	if raw.Regions != nil {
		d.regions = raw.Regions
	}
	if raw.Perspectives != nil {
		d.perspectives = raw.Perspectives
	}
	if raw.Views != nil {
		d.views = raw.Views
	}
	if raw.Layouts != nil {
		d.layouts = raw.Layouts
	}
	rejected(&rep, d, "regions", d.regions.Rejected())
	rejected(&rep, d, "perspectives", d.perspectives.Rejected())
	rejected(&rep, d, "views", d.views.Rejected())
	rejected(&rep, d, "layouts", d.layouts.Rejected())

	for k, reg := range d.regions.All() {
		clamped := reg.Region.Clamp(d.bufLen)
		if clamped != reg.Region {
			d.log.Warn("region clamped to buffer", "region", k, "from", reg.Region, "to", clamped)
			reg.Region = clamped
			rep.ClampedRegions = append(rep.ClampedRegions, k)
		}
	}

	for pk, p := range d.perspectives.All() {
		if !d.regions.Contains(p.Region) {
			rep.DroppedPerspectives = append(rep.DroppedPerspectives, pk)
		}
	}
	for _, pk := range rep.DroppedPerspectives {
		d.log.Warn("dropping perspective with missing region", "perspective", pk)
		d.perspectives.Remove(pk)
	}

	for vk, v := range d.views.All() {
		if !d.perspectives.Contains(v.Perspective) {
			rep.DroppedViews = append(rep.DroppedViews, vk)
		}
	}
	for _, vk := range rep.DroppedViews {
		d.log.Warn("dropping view with missing perspective", "view", vk)
		d.views.Remove(vk)
	}

	for lk, l := range d.layouts.All() {
		removed := l.Prune(d.views.Contains)
		for _, vk := range removed {
			d.log.Warn("dropping layout entry with missing view", "layout", lk, "view", vk)
		}
		rep.DroppedPlacements = append(rep.DroppedPlacements, removed...)
	}

	d.reclampAll()
	return d, rep, nil
}

func rejected[T any](rep *LoadReport, d *Document, section string, keys []arena.Key[T]) {
	for _, k := range keys {
		d.log.Warn("dropping entry with unusable key", "section", section, "key", k)
		rep.RejectedKeys = append(rep.RejectedKeys, section+" "+k.String())
	}
}

// LoadFile opens and decodes path.
func LoadFile(path string, bufLen int, opts Options) (*Document, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, err
	}
	defer f.Close()
	return Load(f, bufLen, opts)
}
