package overlay

import (
	"testing"

	"github.com/example/parkboard/internal/render"
)

func TestParadeSpawnsElements(t *testing.T) {
	p := NewParade(100, 100, 1)
	elapsed := 0.0
	for i := 0; i < 60; i++ {
		elapsed += 1.0 / 60
		p.Update(1.0/60, elapsed)
	}
	// Spawn interval is at most 0.15s, so one second produces several.
	if p.Elements() < 4 {
		t.Fatalf("elements = %d after 1s", p.Elements())
	}
}

func TestParadeCullsOffscreenElements(t *testing.T) {
	p := NewParade(40, 40, 2)
	elapsed := 0.0
	// Run long enough that early confetti (falling 2-4 px per 60Hz frame)
	// crosses the 40px frame plus the 50px margin.
	for i := 0; i < 600; i++ {
		elapsed += 1.0 / 60
		p.Update(1.0/60, elapsed)
	}
	// Elements keep spawning, so the population must stay bounded rather
	// than grow without limit. Ten seconds at ~10 spawns/sec would exceed
	// 90 elements if nothing were culled.
	if p.Elements() > 90 {
		t.Fatalf("elements = %d, culling appears broken", p.Elements())
	}
}

func TestParadeReset(t *testing.T) {
	p := NewParade(100, 100, 3)
	p.Update(0.2, 0.2)
	if p.Elements() == 0 {
		t.Fatal("setup: expected at least one element")
	}
	p.Reset()
	if p.Elements() != 0 {
		t.Fatal("Reset left elements behind")
	}
}

func TestParadeRenderIsAdditive(t *testing.T) {
	p := NewParade(50, 50, 4)
	elapsed := 0.0
	for i := 0; i < 30; i++ {
		elapsed += 1.0 / 60
		p.Update(1.0/60, elapsed)
	}
	base := render.NewFrame(50, 50)
	base.Fill(render.Color{R: 0.1, G: 0.1, B: 0.1})
	p.Render(base)
	for i, px := range base.Pix {
		if px.R < 0.1-1e-6 || px.G < 0.1-1e-6 || px.B < 0.1-1e-6 {
			t.Fatalf("pixel %d darkened: %+v", i, px)
		}
	}
}

func TestParadeBannerIndependentOfElements(t *testing.T) {
	// The banner scrolls from elapsed time alone: two parades that never
	// spawned the same elements still place banner sparkles identically if
	// their element sets are empty.
	a := NewParade(80, 60, 5)
	b := NewParade(80, 60, 6)
	a.Update(0, 1.5) // dt 0: no spawn timer progress, banner still moves
	b.Update(0, 1.5)
	fa := render.NewFrame(80, 60)
	fb := render.NewFrame(80, 60)
	a.Render(fa)
	b.Render(fb)
	for i := range fa.Pix {
		if fa.Pix[i] != fb.Pix[i] {
			t.Fatal("banner depends on more than elapsed time")
		}
	}
}
