// Package render holds the software framebuffer the kiosk draws into and
// the card renderer that turns display items into frames.
package render

// Color is a linear RGB pixel, channels 0..1.
type Color struct{ R, G, B float32 }

// Frame is a W x H framebuffer in row-major order.
type Frame struct {
	W, H int
	Pix  []Color
}

func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]Color, w*h)}
}

func (f *Frame) At(x, y int) Color {
	return f.Pix[y*f.W+x]
}

func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.Pix[y*f.W+x] = c
}

// Add accumulates c onto the pixel, scaled by a. Overlays are additive;
// they never darken the base frame.
func (f *Frame) Add(x, y int, c Color, a float32) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	i := y*f.W + x
	f.Pix[i].R = clamp1(f.Pix[i].R + c.R*a)
	f.Pix[i].G = clamp1(f.Pix[i].G + c.G*a)
	f.Pix[i].B = clamp1(f.Pix[i].B + c.B*a)
}

func (f *Frame) Fill(c Color) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// FillRect fills the intersection of the rect with the frame.
func (f *Frame) FillRect(x0, y0, x1, y1 int, c Color) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > f.W {
		x1 = f.W
	}
	if y1 > f.H {
		y1 = f.H
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f.Pix[y*f.W+x] = c
		}
	}
}

func (f *Frame) Clone() *Frame {
	c := NewFrame(f.W, f.H)
	copy(c.Pix, f.Pix)
	return c
}

// Mix blends a and b into dst by alpha (0..1). Channels are linear.
func Mix(dst, a, b *Frame, alpha float64) {
	if alpha <= 0 {
		copy(dst.Pix, a.Pix)
		return
	}
	if alpha >= 1 {
		copy(dst.Pix, b.Pix)
		return
	}
	af := float32(1.0 - alpha)
	bf := float32(alpha)
	n := len(dst.Pix)
	for i := 0; i < n; i++ {
		dst.Pix[i].R = a.Pix[i].R*af + b.Pix[i].R*bf
		dst.Pix[i].G = a.Pix[i].G*af + b.Pix[i].G*bf
		dst.Pix[i].B = a.Pix[i].B*af + b.Pix[i].B*bf
	}
}

// RGBBytes packs the frame into 8-bit RGB for transport.
func (f *Frame) RGBBytes() []byte {
	out := make([]byte, len(f.Pix)*3)
	for i, p := range f.Pix {
		out[i*3+0] = byte(clamp1(p.R) * 255)
		out[i*3+1] = byte(clamp1(p.G) * 255)
		out[i*3+2] = byte(clamp1(p.B) * 255)
	}
	return out
}

func clamp1(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Driver abstracts the output surface the kiosk writes frames to.
type Driver interface {
	Write(*Frame) error
}

// Sim is a driver that keeps the last frame and counts writes. Used when
// no output surface is attached and in tests.
type Sim struct {
	Frames int
	Last   *Frame
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Write(f *Frame) error {
	s.Frames++
	s.Last = f
	return nil
}
