package overlay

import (
	"testing"

	"github.com/example/parkboard/internal/render"
)

func solidFrame(w, h int, c render.Color) *render.Frame {
	f := render.NewFrame(w, h)
	f.Fill(c)
	return f
}

func seq3() *FrameSeq {
	return NewFrameSeq([]*render.Frame{
		solidFrame(4, 4, render.Color{R: 1}),
		solidFrame(4, 4, render.Color{G: 1}),
		solidFrame(4, 4, render.Color{B: 1}),
	}, 10) // 10fps: one frame per 0.1s
}

func channelAt(v *Video) render.Color {
	dst := render.NewFrame(4, 4)
	v.Render(dst)
	return dst.At(0, 0)
}

func TestVideoAdvancesAtNativeRate(t *testing.T) {
	v := NewVideo(seq3())
	if c := channelAt(v); c.R != 1 {
		t.Fatalf("initial frame = %+v", c)
	}
	// Under the frame interval: no advance.
	v.Update(0.05, 0.05)
	if c := channelAt(v); c.R != 1 {
		t.Fatalf("advanced too early: %+v", c)
	}
	v.Update(0.05, 0.1)
	if c := channelAt(v); c.G != 1 {
		t.Fatalf("frame 2 = %+v", c)
	}
	v.Update(0.1, 0.2)
	if c := channelAt(v); c.B != 1 {
		t.Fatalf("frame 3 = %+v", c)
	}
}

func TestVideoLoopsForever(t *testing.T) {
	v := NewVideo(seq3())
	// Step well past the end of the three-frame clip.
	for i := 1; i <= 10; i++ {
		v.Update(0.1, float64(i)*0.1)
	}
	if c := channelAt(v); c.R != 1 && c.G != 1 && c.B != 1 {
		t.Fatalf("after looping: %+v", c)
	}
	// End-of-stream must never leave the driver frameless.
	dst := render.NewFrame(4, 4)
	v.Render(dst)
	if dst.At(0, 0) == (render.Color{}) {
		t.Fatal("video went black after looping")
	}
}

func TestVideoReset(t *testing.T) {
	v := NewVideo(seq3())
	v.Update(0.1, 0.1)
	v.Update(0.1, 0.2)
	v.Reset()
	if c := channelAt(v); c.R != 1 {
		t.Fatalf("after Reset: %+v, want first frame", c)
	}
}

func TestVideoEmptySourceRenders(t *testing.T) {
	v := NewVideo(NewFrameSeq(nil, 30))
	v.Update(0.1, 0.1)
	dst := render.NewFrame(2, 2)
	v.Render(dst) // must not panic
}
