package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/hex/view"
	"github.com/joshuapare/hexkit/internal/arena"
)

// fakeViews is an in-memory Views backed by an arena so keys are real.
type fakeViews struct {
	keys  *arena.Arena[view.View]
	needs map[view.Key]view.Size
	rects map[view.Key]view.Rect
}

func newFakeViews() *fakeViews {
	return &fakeViews{
		keys:  arena.New[view.View](),
		needs: make(map[view.Key]view.Size),
		rects: make(map[view.Key]view.Rect),
	}
}

func (f *fakeViews) add(w, h float64) view.Key {
	k := f.keys.Insert(view.View{})
	f.needs[k] = view.Size{W: w, H: h}
	return k
}

func (f *fakeViews) MaxNeeded(k view.Key) (view.Size, bool) {
	s, ok := f.needs[k]
	return s, ok
}

func (f *fakeViews) SetRect(k view.Key, r view.Rect) { f.rects[k] = r }

func TestDo_TwoRowScenario(t *testing.T) {
	f := newFakeViews()
	a := f.add(100, 50)
	b := f.add(100, 50)
	c := f.add(300, 50)

	l := Layout{Margin: 10}
	l.AddRow(a, b)
	l.AddRow(c)

	res := Do(&l, view.Rect{W: 250, H: 150}, f)
	require.Empty(t, res.Missing)
	require.Len(t, res.Placements, 3)

	// Row 0: even share is (250-30)/2 = 110, both fit at 100.
	assert.Equal(t, view.Rect{X: 10, Y: 10, W: 100, H: 50}, f.rects[a])
	assert.Equal(t, view.Rect{X: 120, Y: 10, W: 100, H: 50}, f.rects[b])
	// Row 1: capped at 250 - 2*10.
	assert.Equal(t, view.Rect{X: 10, Y: 70, W: 230, H: 50}, f.rects[c])

	// Row height share is (150-30)/2 = 60.
	for _, k := range []view.Key{a, b, c} {
		assert.LessOrEqual(t, f.rects[k].H, 60.0)
	}
}

func TestCompute_SingleViewConservation(t *testing.T) {
	tests := []struct {
		name   string
		need   view.Size
		vp     view.Rect
		margin float64
	}{
		{"fits", view.Size{W: 50, H: 40}, view.Rect{W: 200, H: 100}, 5},
		{"too wide", view.Size{W: 500, H: 40}, view.Rect{W: 200, H: 100}, 5},
		{"too tall", view.Size{W: 50, H: 400}, view.Rect{W: 200, H: 100}, 5},
		{"both", view.Size{W: 5000, H: 4000}, view.Rect{W: 80, H: 24}, 1},
		{"no margin", view.Size{W: 5000, H: 4000}, view.Rect{W: 80, H: 24}, 0},
		{"margin eats all", view.Size{W: 5000, H: 4000}, view.Rect{W: 8, H: 6}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeViews()
			k := f.add(tt.need.W, tt.need.H)
			l := Layout{Margin: tt.margin}
			l.AddRow(k)

			res := Compute(&l, tt.vp, f.MaxNeeded)
			require.Len(t, res.Placements, 1)
			r := res.Placements[0].Rect

			assert.GreaterOrEqual(t, r.W, 0.0)
			assert.GreaterOrEqual(t, r.H, 0.0)
			assert.LessOrEqual(t, r.W, max(tt.vp.W-2*tt.margin, 0))
			assert.LessOrEqual(t, r.H, max(tt.vp.H-2*tt.margin, 0))
			assert.LessOrEqual(t, r.W, tt.need.W)
			assert.LessOrEqual(t, r.H, tt.need.H)
		})
	}
}

func TestCompute_LeftoverWidthGoesInDeclaredOrder(t *testing.T) {
	f := newFakeViews()
	small := f.add(10, 10)
	first := f.add(100, 10)
	second := f.add(100, 10)

	l := Layout{}
	l.AddRow(small, first, second)

	// Share is 50 each; small leaves 40 spare, all of it goes to first.
	res := Compute(&l, view.Rect{W: 150, H: 10}, f.MaxNeeded)
	require.Len(t, res.Placements, 3)
	assert.Equal(t, 10.0, res.Placements[0].Rect.W)
	assert.Equal(t, 90.0, res.Placements[1].Rect.W)
	assert.Equal(t, 50.0, res.Placements[2].Rect.W)

	// Swapping declared order swaps the winner.
	l = Layout{}
	l.AddRow(small, second, first)
	res = Compute(&l, view.Rect{W: 150, H: 10}, f.MaxNeeded)
	assert.Equal(t, second, res.Placements[1].View)
	assert.Equal(t, 90.0, res.Placements[1].Rect.W)
	assert.Equal(t, 50.0, res.Placements[2].Rect.W)
}

func TestCompute_LeftoverHeightChargedOncePerRow(t *testing.T) {
	f := newFakeViews()
	x := f.add(10, 80)
	y := f.add(10, 60)
	z := f.add(10, 10)

	l := Layout{}
	l.AddRow(x, y)
	l.AddRow(z)

	// Share is 50 per row. Row 0 grows by its largest gap (30): x reaches
	// 80, y only needs 10 of it. The budget is charged 30, not 40.
	res := Compute(&l, view.Rect{W: 100, H: 100}, f.MaxNeeded)
	require.Len(t, res.Placements, 3)
	assert.Equal(t, 80.0, res.Placements[0].Rect.H)
	assert.Equal(t, 60.0, res.Placements[1].Rect.H)
	assert.Equal(t, 10.0, res.Placements[2].Rect.H)
	assert.Equal(t, 80.0, res.Placements[2].Rect.Y, "row 1 starts below the tallest view of row 0")
}

func TestCompute_LeftoverHeightStopsWhenExhausted(t *testing.T) {
	f := newFakeViews()
	a := f.add(10, 100)
	b := f.add(10, 100)
	c := f.add(10, 5)

	l := Layout{}
	l.AddRow(a)
	l.AddRow(b)
	l.AddRow(c)

	// Share 30 each: a=30, b=30, c=5, spare 25 goes entirely to row 0.
	res := Compute(&l, view.Rect{W: 10, H: 90}, f.MaxNeeded)
	assert.Equal(t, 55.0, res.Placements[0].Rect.H)
	assert.Equal(t, 30.0, res.Placements[1].Rect.H)
	assert.Equal(t, 5.0, res.Placements[2].Rect.H)
}

func TestCompute_Placement(t *testing.T) {
	f := newFakeViews()
	a := f.add(20, 5)
	b := f.add(30, 8)
	c := f.add(40, 3)

	l := Layout{Margin: 2}
	l.AddRow(a, b)
	l.AddRow(c)

	res := Compute(&l, view.Rect{X: 100, Y: 50, W: 200, H: 100}, f.MaxNeeded)
	require.Len(t, res.Placements, 3)
	assert.Equal(t, view.Rect{X: 102, Y: 52, W: 20, H: 5}, res.Placements[0].Rect)
	assert.Equal(t, view.Rect{X: 124, Y: 52, W: 30, H: 8}, res.Placements[1].Rect)
	assert.Equal(t, view.Rect{X: 102, Y: 62, W: 40, H: 3}, res.Placements[2].Rect)
	assert.Equal(t, 1, res.Placements[2].Row)
	assert.Equal(t, 1, res.Placements[1].Col)
}

func TestCompute_Deterministic(t *testing.T) {
	f := newFakeViews()
	l := Layout{Margin: 3}
	l.AddRow(f.add(70, 20), f.add(90, 200), f.add(10, 10))
	l.AddRow(f.add(300, 30))

	vp := view.Rect{W: 160, H: 90}
	first := Compute(&l, vp, f.MaxNeeded)
	for range 10 {
		assert.Equal(t, first, Compute(&l, vp, f.MaxNeeded))
	}
}

func TestCompute_DegenerateViewport(t *testing.T) {
	f := newFakeViews()
	l := Layout{Margin: 10}
	l.AddRow(f.add(100, 100), f.add(100, 100), f.add(100, 100))
	l.AddRow(f.add(100, 100))

	for _, vp := range []view.Rect{{W: 0, H: 0}, {W: 15, H: 15}, {W: -50, H: -50}} {
		var res Result
		require.NotPanics(t, func() {
			res = Compute(&l, vp, f.MaxNeeded)
		})
		for _, p := range res.Placements {
			assert.True(t, p.Rect.Empty(), "viewport %v gave %v", vp, p.Rect)
		}
	}
}

func TestCompute_MissingKeysSkipped(t *testing.T) {
	f := newFakeViews()
	a := f.add(10, 10)
	gone := f.add(10, 10)
	delete(f.needs, gone)

	l := Layout{}
	l.AddRow(gone)
	l.AddRow(a, gone)

	res := Compute(&l, view.Rect{W: 100, H: 100}, f.MaxNeeded)
	assert.Equal(t, []view.Key{gone, gone}, res.Missing)
	require.Len(t, res.Placements, 1)
	assert.Equal(t, a, res.Placements[0].View)
	// The all-missing row does not take a share of the height.
	assert.Equal(t, 0, res.Placements[0].Row)
}

func TestCompute_EmptyLayout(t *testing.T) {
	res := Compute(&Layout{}, view.Rect{W: 10, H: 10}, func(view.Key) (view.Size, bool) {
		return view.Size{}, false
	})
	assert.Empty(t, res.Placements)
	assert.Empty(t, res.Missing)
}
