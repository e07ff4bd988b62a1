package render

import (
	"errors"
	"math"

	"github.com/example/parkboard/internal/model"
	"github.com/example/parkboard/internal/theme"
)

// Layout constants, sized for an 800x480 kiosk panel and scaled
// proportionally for other dimensions.
const (
	barFraction   = 0.28 // bottom info bar height as fraction of screen
	badgeFraction = 0.06 // freshness badge square, top-right
)

// Cards turns display items into rendered frames: a themed gradient
// backdrop, a bottom info bar carrying the wait color, and the freshness
// badge. Image decode is out of scope; the image cycle index varies the
// gradient phase so variants are visually distinct across laps.
type Cards struct {
	W, H   int
	Images *theme.ImageLibrary
}

func NewCards(w, h int, images *theme.ImageLibrary) *Cards {
	return &Cards{W: w, H: h, Images: images}
}

func rgb(c theme.RGB) Color {
	return Color{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255}
}

func lerp(a, b Color, t float32) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// gradient fills a vertical background-to-accent fade. phase shifts the
// blend so successive image-cycle variants differ.
func (c *Cards) gradient(f *Frame, s theme.Scheme, phase float64) {
	bg := rgb(s.Background)
	ac := rgb(s.Accent)
	for y := 0; y < f.H; y++ {
		t := float32(y) / float32(f.H)
		wave := float32(0.5 + 0.5*math.Sin(float64(t)*math.Pi+phase))
		row := lerp(bg, ac, t*0.3+wave*0.1)
		for x := 0; x < f.W; x++ {
			f.Pix[y*f.W+x] = row
		}
	}
}

func (c *Cards) badge(f *Frame, fresh model.Freshness) {
	if !fresh.ShowBadge() {
		return
	}
	col := theme.StatusWarning
	if fresh.IsError() {
		col = theme.StatusError
	}
	size := int(float64(f.W) * badgeFraction)
	margin := size / 2
	f.FillRect(f.W-margin-size, margin, f.W-margin, margin+size, rgb(col))
}

var errNilItem = errors.New("render: empty display item")

// RenderItem renders one queue entry. The caller isolates errors; a
// failed card never takes down the loop.
func (c *Cards) RenderItem(it model.Item, fresh model.Freshness) (*Frame, error) {
	if c.W <= 0 || c.H <= 0 {
		return nil, errNilItem
	}
	f := NewFrame(c.W, c.H)
	th := theme.ForItem(it)
	scheme := theme.SchemeFor(th)

	phase := 0.0
	if it.Kind == model.ItemRide && c.Images != nil {
		phase = float64(c.Images.CycleIndex(it.Ride.Name)) * math.Pi / 3
	}
	c.gradient(f, scheme, phase)

	// Bottom info bar.
	barTop := f.H - int(float64(f.H)*barFraction)
	f.FillRect(0, barTop, f.W, f.H, rgb(scheme.Background))
	// Accent line along the top of the bar.
	f.FillRect(0, barTop, f.W, barTop+2, rgb(scheme.Accent))

	// Wait color block (or closed red) centered in the bar stands in for
	// the wait-time text.
	var block Color
	if it.Kind == model.ItemClosedPark {
		block = rgb(theme.StatusError)
	} else {
		block = rgb(theme.WaitColors[it.Ride.Category()])
	}
	bw := f.W / 4
	bh := (f.H - barTop) / 2
	f.FillRect((f.W-bw)/2, barTop+bh/2, (f.W+bw)/2, barTop+bh/2+bh, block)

	c.badge(f, fresh)
	return f, nil
}

// RenderEmpty renders the "no rides reporting" placeholder.
func (c *Cards) RenderEmpty(fresh model.Freshness) *Frame {
	f := NewFrame(c.W, c.H)
	c.gradient(f, theme.SchemeFor(theme.DefaultTheme), 0)
	c.badge(f, fresh)
	return f
}

// RenderError renders the per-card failure placeholder.
func (c *Cards) RenderError() *Frame {
	f := NewFrame(c.W, c.H)
	f.Fill(Color{R: 0.12, G: 0, B: 0})
	bw := f.W / 3
	bh := f.H / 8
	f.FillRect((f.W-bw)/2, (f.H-bh)/2, (f.W+bw)/2, (f.H+bh)/2, rgb(theme.StatusError))
	return f
}
