package overlay

import (
	"testing"

	"github.com/example/parkboard/internal/render"
)

func TestFireworksLaunchExplodeAndBurnOut(t *testing.T) {
	f := NewFireworks(100, 100, 1)

	// First update past the launch interval fires a rocket.
	f.Update(0.3, 0.35)
	if f.Rockets() != 1 {
		t.Fatalf("rockets = %d after first launch window", f.Rockets())
	}

	// Hold elapsed still so no more rockets launch, and step the sim until
	// the burst decays. Worst case decay is 0.01 per 60Hz frame, so 300
	// frames of 1/60s comfortably outlive every particle.
	for i := 0; i < 300; i++ {
		f.Update(1.0/60, 0.35)
	}
	if f.Rockets() != 0 {
		t.Fatalf("rockets = %d, want 0 after burn-out", f.Rockets())
	}
}

func TestFireworksKeepsLaunchingOverTime(t *testing.T) {
	f := NewFireworks(100, 100, 2)
	elapsed := 0.0
	for i := 0; i < 60; i++ {
		elapsed += 1.0 / 60
		f.Update(1.0/60, elapsed)
	}
	if f.Rockets() == 0 {
		t.Fatal("no rockets in flight after a second of show time")
	}
}

func TestFireworksRenderIsAdditive(t *testing.T) {
	f := NewFireworks(50, 50, 3)
	f.Update(0.3, 0.35)

	base := render.NewFrame(50, 50)
	base.Fill(render.Color{R: 0.1, G: 0.1, B: 0.1})
	f.Render(base)

	darker := 0
	for _, p := range base.Pix {
		if p.R < 0.1-1e-6 || p.G < 0.1-1e-6 || p.B < 0.1-1e-6 {
			darker++
		}
	}
	if darker != 0 {
		t.Fatalf("%d pixels darkened; overlay must only add light", darker)
	}
}

func TestFireworksReset(t *testing.T) {
	f := NewFireworks(100, 100, 4)
	f.Update(0.5, 0.5)
	if f.Rockets() == 0 {
		t.Fatal("setup: expected a rocket")
	}
	f.Reset()
	if f.Rockets() != 0 {
		t.Fatal("Reset left rockets behind")
	}
}

func TestFireworksDeterministicPerSeed(t *testing.T) {
	a := NewFireworks(64, 64, 7)
	b := NewFireworks(64, 64, 7)
	for i := 0; i < 30; i++ {
		a.Update(1.0/60, float64(i)/60)
		b.Update(1.0/60, float64(i)/60)
	}
	fa := render.NewFrame(64, 64)
	fb := render.NewFrame(64, 64)
	a.Render(fa)
	b.Render(fb)
	for i := range fa.Pix {
		if fa.Pix[i] != fb.Pix[i] {
			t.Fatal("same seed produced different frames")
		}
	}
}
