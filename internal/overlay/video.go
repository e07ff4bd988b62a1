package overlay

import "github.com/example/parkboard/internal/render"

// Source is a frame-sequential video: decoded frames in order at a
// native frame rate. Next returns ok=false when exhausted; Rewind seeks
// back to the first frame.
type Source interface {
	FPS() float64
	Next() (*render.Frame, bool)
	Rewind()
}

// Video plays a Source as an event driver. It advances one frame per
// native frame interval and loops forever; end-of-stream is never an
// error.
type Video struct {
	src         Source
	frameEvery  float64
	lastFrameAt float64
	cur         *render.Frame
}

func NewVideo(src Source) *Video {
	fps := src.FPS()
	if fps <= 0 {
		fps = 30
	}
	v := &Video{src: src, frameEvery: 1.0 / fps}
	v.advance()
	return v
}

func (v *Video) advance() {
	f, ok := v.src.Next()
	if !ok {
		v.src.Rewind()
		f, ok = v.src.Next()
		if !ok {
			return // empty source; keep showing whatever we have
		}
	}
	v.cur = f
}

func (v *Video) Reset() {
	v.src.Rewind()
	v.lastFrameAt = 0
	v.advance()
}

func (v *Video) Update(dt, elapsed float64) {
	if elapsed-v.lastFrameAt >= v.frameEvery {
		v.advance()
		v.lastFrameAt = elapsed
	}
}

func (v *Video) Render(dst *render.Frame) {
	if v.cur == nil {
		return
	}
	n := len(dst.Pix)
	if len(v.cur.Pix) < n {
		n = len(v.cur.Pix)
	}
	copy(dst.Pix[:n], v.cur.Pix[:n])
}

// FrameSeq is an in-memory Source over pre-decoded frames.
type FrameSeq struct {
	frames []*render.Frame
	fps    float64
	pos    int
}

func NewFrameSeq(frames []*render.Frame, fps float64) *FrameSeq {
	return &FrameSeq{frames: frames, fps: fps}
}

func (s *FrameSeq) FPS() float64 { return s.fps }

func (s *FrameSeq) Next() (*render.Frame, bool) {
	if s.pos >= len(s.frames) {
		return nil, false
	}
	f := s.frames[s.pos]
	s.pos++
	return f, true
}

func (s *FrameSeq) Rewind() { s.pos = 0 }
