package meta

import (
	"bytes"
	"context"
	"io"
	"iter"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/hex/region"
	"github.com/joshuapare/hexkit/hex/view"
)

// setupTestDocument returns a default 256-byte document and a buffer that
// collects its log output.
func setupTestDocument(t *testing.T) (*Document, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	d, _ := NewDefault(256, 16, Options{Log: newTestLogger(&logs)})
	return d, &logs
}

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func onlyKey[K comparable, V any](t *testing.T, seq iter.Seq2[K, V]) K {
	t.Helper()
	var keys []K
	for k := range seq {
		keys = append(keys, k)
	}
	require.Len(t, keys, 1)
	return keys[0]
}

func TestNewDefault(t *testing.T) {
	d, lk := NewDefault(100, 0, Options{})

	require.Equal(t, 1, d.RegionCount())
	rk := onlyKey(t, d.Regions())
	r, err := d.Region(rk)
	require.NoError(t, err)
	assert.Equal(t, region.Region{Begin: 0, End: 99}, r.Region)

	pk := onlyKey(t, d.Perspectives())
	g, err := d.Grid(pk)
	require.NoError(t, err)
	assert.Equal(t, DefaultCols, g.Cols)
	assert.Equal(t, 7, g.RowCount())

	l, err := d.Layout(lk)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayoutName, l.Name)
	require.Len(t, l.Grid, 1)
	require.Len(t, l.Grid[0], 2)

	hex, err := d.View(l.Grid[0][0])
	require.NoError(t, err)
	assert.Equal(t, view.KindHex, hex.Kind)
	ascii, err := d.View(l.Grid[0][1])
	require.NoError(t, err)
	assert.Equal(t, view.KindASCII, ascii.Kind)

	found, ok := d.LayoutByName(DefaultLayoutName)
	assert.True(t, ok)
	assert.Equal(t, lk, found)
}

func TestNewDefault_EmptyBuffer(t *testing.T) {
	d, lk := NewDefault(0, 16, Options{})
	pk := onlyKey(t, d.Perspectives())
	g, err := d.Grid(pk)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Cols)
	assert.Equal(t, 0, g.RowCount())

	res, err := d.Relayout(lk, view.Rect{W: 80, H: 24}, view.TerminalMetrics)
	require.NoError(t, err)
	assert.Len(t, res.Placements, 2)
}

func TestAddRegion(t *testing.T) {
	d := New(64, Options{})

	tests := []struct {
		name       string
		begin, end int
		want       region.Region
		wantErr    error
	}{
		{"forward", 4, 9, region.Region{Begin: 4, End: 9}, nil},
		{"reversed selection", 9, 4, region.Region{Begin: 4, End: 9}, nil},
		{"single byte", 7, 7, region.Region{Begin: 7, End: 7}, nil},
		{"clamped end", 60, 100, region.Region{Begin: 60, End: 63}, nil},
		{"negative begin", -5, 3, region.Region{Begin: 0, End: 3}, nil},
		{"past end", 64, 70, region.Region{}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := d.AddRegion(tt.name, tt.begin, tt.end)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, k.IsNull())
				return
			}
			require.NoError(t, err)
			r, err := d.Region(k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Region)
			assert.Equal(t, tt.name, r.Name)
		})
	}
}

func TestSetRegionBounds_ReclampsCols(t *testing.T) {
	d := New(256, Options{})
	rk, err := d.AddRegion("r", 0, 255)
	require.NoError(t, err)
	wide, err := d.AddPerspective("wide", rk, 32, false)
	require.NoError(t, err)
	narrow, err := d.AddPerspective("narrow", rk, 4, false)
	require.NoError(t, err)

	require.NoError(t, d.SetRegionBounds(rk, 16, 23))

	p, err := d.Perspective(wide)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Cols)
	p, err = d.Perspective(narrow)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Cols)

	g, err := d.Grid(wide)
	require.NoError(t, err)
	assert.Equal(t, 16, g.ByteOffsetOf(0, 0))
	assert.Equal(t, 0, g.LastRow())

	require.ErrorIs(t, d.SetRegionBounds(rk, 300, 400), ErrOutOfRange)
}

func TestDescribeRegion(t *testing.T) {
	d, _ := setupTestDocument(t)
	rk := onlyKey(t, d.Regions())
	require.NoError(t, d.DescribeRegion(rk, "header", "file header"))
	r, err := d.Region(rk)
	require.NoError(t, err)
	assert.Equal(t, "header", r.Name)
	assert.Equal(t, "file header", r.Desc)
}

func TestRemoveRegion_LeavesStalePerspective(t *testing.T) {
	d, logs := setupTestDocument(t)
	rk := onlyKey(t, d.Regions())
	pk := onlyKey(t, d.Perspectives())

	require.NoError(t, d.RemoveRegion(rk))

	_, err := d.Perspective(pk)
	require.NoError(t, err, "perspective survives its region")
	_, err = d.Grid(pk)
	require.ErrorIs(t, err, ErrStaleRegion)
	assert.Contains(t, logs.String(), "perspective left without region")

	_, err = d.Region(rk)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, d.RemoveRegion(rk), ErrNotFound)
}

func TestRemovedKeyDoesNotAlias(t *testing.T) {
	d := New(64, Options{})
	a, err := d.AddRegion("a", 0, 7)
	require.NoError(t, err)
	require.NoError(t, d.RemoveRegion(a))

	b, err := d.AddRegion("b", 8, 15)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = d.Region(a)
	require.ErrorIs(t, err, ErrNotFound)
	r, err := d.Region(b)
	require.NoError(t, err)
	assert.Equal(t, "b", r.Name)
}

func TestSetBufLen(t *testing.T) {
	d, _ := setupTestDocument(t)
	rk := onlyKey(t, d.Regions())
	pk := onlyKey(t, d.Perspectives())

	d.SetBufLen(10)
	assert.Equal(t, 10, d.BufLen())
	r, err := d.Region(rk)
	require.NoError(t, err)
	assert.Equal(t, region.Region{Begin: 0, End: 9}, r.Region)
	p, err := d.Perspective(pk)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Cols)
}

func TestSetBufLen_WarnsOnCollapse(t *testing.T) {
	d, logs := setupTestDocument(t)
	tail, err := d.AddRegion("tail", 200, 255)
	require.NoError(t, err)

	d.SetBufLen(100)
	r, err := d.Region(tail)
	require.NoError(t, err)
	assert.True(t, r.Region.IsEmpty())
	assert.Contains(t, logs.String(), "region collapsed by buffer resize")
	assert.Contains(t, logs.String(), "name=tail")

	// Shrinking a region that keeps bytes is not a warning.
	logs.Reset()
	d.SetBufLen(50)
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestNew_NilLogDiscards(t *testing.T) {
	d := New(16, Options{})
	assert.False(t, d.log.Enabled(context.Background(), slog.LevelError))
}
