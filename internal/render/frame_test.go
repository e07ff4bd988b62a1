package render

import (
	"math"
	"testing"
)

func almost(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMixAlpha(t *testing.T) {
	a := NewFrame(4, 4)
	b := NewFrame(4, 4)
	a.Fill(Color{R: 1})
	b.Fill(Color{B: 1})
	dst := NewFrame(4, 4)

	Mix(dst, a, b, 0)
	if got := dst.At(0, 0); !almost(got.R, 1) || !almost(got.B, 0) {
		t.Fatalf("alpha 0: got %+v, want frame a", got)
	}

	Mix(dst, a, b, 1)
	if got := dst.At(0, 0); !almost(got.R, 0) || !almost(got.B, 1) {
		t.Fatalf("alpha 1: got %+v, want frame b", got)
	}

	Mix(dst, a, b, 0.25)
	got := dst.At(2, 2)
	if !almost(got.R, 0.75) || !almost(got.B, 0.25) {
		t.Fatalf("alpha 0.25: got %+v", got)
	}
}

func TestAddClampsAndClips(t *testing.T) {
	f := NewFrame(2, 2)
	f.Set(0, 0, Color{R: 0.9})
	f.Add(0, 0, Color{R: 1}, 1)
	if got := f.At(0, 0).R; !almost(got, 1) {
		t.Fatalf("additive overflow not clamped: %v", got)
	}
	// Out-of-bounds writes are silently dropped.
	f.Add(-1, 0, Color{R: 1}, 1)
	f.Add(0, 99, Color{R: 1}, 1)
	f.Set(5, 5, Color{G: 1})
}

func TestFillRectClips(t *testing.T) {
	f := NewFrame(4, 4)
	f.FillRect(-2, -2, 99, 2, Color{G: 1})
	if !almost(f.At(0, 0).G, 1) || !almost(f.At(3, 1).G, 1) {
		t.Fatal("rect interior not filled")
	}
	if !almost(f.At(0, 2).G, 0) {
		t.Fatal("fill leaked past y1")
	}
}

func TestRGBBytesPacking(t *testing.T) {
	f := NewFrame(2, 1)
	f.Set(0, 0, Color{R: 1, G: 0.5, B: 0})
	b := f.RGBBytes()
	if len(b) != 6 {
		t.Fatalf("len = %d", len(b))
	}
	if b[0] != 255 || b[2] != 0 {
		t.Fatalf("pixel 0 = %v", b[:3])
	}
	if b[1] < 126 || b[1] > 129 {
		t.Fatalf("green channel = %d", b[1])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := NewFrame(2, 2)
	f.Fill(Color{R: 1})
	c := f.Clone()
	c.Fill(Color{B: 1})
	if !almost(f.At(0, 0).R, 1) {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestSimDriver(t *testing.T) {
	s := NewSim()
	f := NewFrame(1, 1)
	if err := s.Write(f); err != nil {
		t.Fatal(err)
	}
	_ = s.Write(f)
	if s.Frames != 2 || s.Last != f {
		t.Fatalf("Frames=%d Last=%p", s.Frames, s.Last)
	}
}
