package overlay

import (
	"math"
	"math/rand"

	"github.com/example/parkboard/internal/render"
)

// Velocities and decay are tuned per 60Hz frame, so integration scales
// by dt*60 to stay rate-independent.
const (
	fwGravity     = 0.15
	simFrameScale = 60.0
)

var fireworkColors = []render.Color{
	{R: 1.00, G: 0.84, B: 0.00}, // gold
	{R: 1.00, G: 0.41, B: 0.71}, // hot pink
	{R: 0.00, G: 1.00, B: 1.00}, // cyan
	{R: 1.00, G: 0.27, B: 0.00}, // red-orange
	{R: 0.20, G: 0.80, B: 0.20}, // lime
	{R: 1.00, G: 1.00, B: 1.00}, // white
	{R: 0.58, G: 0.44, B: 0.86}, // purple
	{R: 1.00, G: 0.65, B: 0.00}, // orange
}

type fwParticle struct {
	x, y, vx, vy float64
	life         float64 // 1 -> 0
	size         float64
	decay        float64
	color        render.Color
}

type rocket struct {
	x, y     float64
	targetY  float64
	vy       float64
	color    render.Color
	exploded bool
	parts    []fwParticle
}

// Fireworks simulates rockets that rise, explode into a radial particle
// burst and fade out.
type Fireworks struct {
	w, h        int
	rng         *rand.Rand
	rockets     []*rocket
	lastLaunch  float64
	launchEvery float64
}

func NewFireworks(w, h int, seed int64) *Fireworks {
	return &Fireworks{
		w: w, h: h,
		rng:         rand.New(rand.NewSource(seed)),
		launchEvery: 0.3,
	}
}

func (f *Fireworks) Reset() {
	f.rockets = nil
	f.lastLaunch = 0
	f.launchEvery = 0.3
}

func (f *Fireworks) Update(dt, elapsed float64) {
	if elapsed-f.lastLaunch > f.launchEvery {
		f.launch()
		f.lastLaunch = elapsed
		f.launchEvery = 0.2 + f.rng.Float64()*0.4
	}

	alive := f.rockets[:0]
	for _, r := range f.rockets {
		if !r.exploded {
			r.y += r.vy * dt * simFrameScale
			r.vy += fwGravity * 0.3
			// Burst at the apex band, or as soon as the rocket stops rising.
			if r.y <= r.targetY || r.vy >= 0 {
				f.explode(r)
			}
			alive = append(alive, r)
			continue
		}
		live := r.parts[:0]
		for i := range r.parts {
			p := &r.parts[i]
			p.x += p.vx * dt * simFrameScale
			p.y += p.vy * dt * simFrameScale
			p.vy += fwGravity
			p.life -= p.decay * dt * simFrameScale
			if p.life > 0 {
				live = append(live, *p)
			}
		}
		r.parts = live
		if len(r.parts) > 0 {
			alive = append(alive, r)
		}
	}
	f.rockets = alive
}

func (f *Fireworks) launch() {
	w := float64(f.w)
	h := float64(f.h)
	f.rockets = append(f.rockets, &rocket{
		x:       w*0.1 + f.rng.Float64()*w*0.8,
		y:       h + 10,
		targetY: h*0.15 + f.rng.Float64()*h*0.25,
		vy:      -(12 + f.rng.Float64()*4),
		color:   fireworkColors[f.rng.Intn(len(fireworkColors))],
	})
}

func (f *Fireworks) explode(r *rocket) {
	r.exploded = true
	n := 60 + f.rng.Intn(41)
	for i := 0; i < n; i++ {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := 2 + f.rng.Float64()*6
		jitter := func(c float32) float32 {
			v := c + float32(f.rng.Intn(61)-30)/255
			if v < 0 {
				return 0
			}
			if v > 1 {
				return 1
			}
			return v
		}
		r.parts = append(r.parts, fwParticle{
			x: r.x, y: r.y,
			vx:    math.Cos(angle) * speed,
			vy:    math.Sin(angle) * speed,
			life:  1.0,
			size:  2 + f.rng.Float64()*2,
			decay: 0.01 + f.rng.Float64()*0.015,
			color: render.Color{R: jitter(r.color.R), G: jitter(r.color.G), B: jitter(r.color.B)},
		})
	}
}

// Rockets reports how many rockets are in flight or still burning out.
func (f *Fireworks) Rockets() int { return len(f.rockets) }

func (f *Fireworks) Render(dst *render.Frame) {
	for _, r := range f.rockets {
		if !r.exploded {
			drawDot(dst, r.x, r.y, 3, r.color, 1)
			trail := render.Color{R: r.color.R / 2, G: r.color.G / 2, B: r.color.B / 2}
			drawDot(dst, r.x, r.y+5, 2, trail, 1)
			continue
		}
		for i := range r.parts {
			p := &r.parts[i]
			a := float32(p.life)
			size := p.size * p.life
			if size < 1 {
				size = 1
			}
			drawDot(dst, p.x, p.y, size, p.color, a)
		}
	}
}

// drawDot stamps a filled circle additively.
func drawDot(dst *render.Frame, cx, cy, radius float64, c render.Color, a float32) {
	r := int(math.Ceil(radius))
	x0, y0 := int(cx), int(cy)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				dst.Add(x0+dx, y0+dy, c, a)
			}
		}
	}
}
