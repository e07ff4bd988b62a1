package render

import (
	"testing"

	"github.com/example/parkboard/internal/model"
	"github.com/example/parkboard/internal/theme"
)

func fresh() model.Freshness { return model.Freshness{AgeMinutes: 1} }

func to8(v float32) uint8 { return uint8(v*255 + 0.5) }

func TestRenderItemCarriesWaitColor(t *testing.T) {
	c := NewCards(80, 48, nil)
	f, err := c.RenderItem(model.RideItem(model.Ride{Name: "Space Mountain", Open: true, WaitTime: 45}), fresh())
	if err != nil {
		t.Fatal(err)
	}
	if f.W != 80 || f.H != 48 {
		t.Fatalf("frame %dx%d", f.W, f.H)
	}
	// The wait block sits centered in the bottom bar and must show the
	// moderate-wait yellow.
	want := theme.WaitColors[model.WaitModerate]
	got := f.At(40, 41)
	if to8(got.R) != want.R || to8(got.G) != want.G {
		t.Fatalf("wait block color = %+v, want %+v", got, want)
	}
}

func TestRenderItemClosedParkUsesErrorRed(t *testing.T) {
	c := NewCards(80, 48, nil)
	f, err := c.RenderItem(model.ClosedParkItem(model.ClosedPark{Name: "EPCOT"}), fresh())
	if err != nil {
		t.Fatal(err)
	}
	got := f.At(40, 41)
	if to8(got.R) != theme.StatusError.R {
		t.Fatalf("closed block = %+v", got)
	}
}

func TestBadgeAppearsWhenStale(t *testing.T) {
	c := NewCards(100, 60, nil)
	it := model.RideItem(model.Ride{Name: "x", Open: true, WaitTime: 5})

	clean, _ := c.RenderItem(it, model.Freshness{AgeMinutes: 1})
	warn, _ := c.RenderItem(it, model.Freshness{AgeMinutes: 12})
	errf, _ := c.RenderItem(it, model.Freshness{AgeMinutes: 12, ErrMsg: "boom"})

	// Top-right corner pixel inside the badge square.
	x, y := 95, 5
	if clean.At(x, y) == warn.At(x, y) {
		t.Fatal("warning badge not drawn for aging data")
	}
	w, e := warn.At(x, y), errf.At(x, y)
	if w == e {
		t.Fatal("error badge not distinguished from warning badge")
	}
}

func TestRenderEmptyAndError(t *testing.T) {
	c := NewCards(40, 24, nil)
	if f := c.RenderEmpty(fresh()); f == nil || f.W != 40 {
		t.Fatal("RenderEmpty frame invalid")
	}
	f := c.RenderError()
	mid := f.At(20, 12)
	if to8(mid.R) != theme.StatusError.R {
		t.Fatalf("error placeholder center = %+v", mid)
	}
}

func TestRenderItemInvalidDimensions(t *testing.T) {
	c := NewCards(0, 0, nil)
	if _, err := c.RenderItem(model.RideItem(model.Ride{Name: "x"}), fresh()); err == nil {
		t.Fatal("expected error for zero-size card")
	}
}
