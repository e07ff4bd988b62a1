package overlay

import (
	"math"
	"math/rand"

	"github.com/example/parkboard/internal/render"
)

type elementKind int

const (
	elemBalloon elementKind = iota
	elemConfetti
	elemStar
)

var paradeColors = []render.Color{
	{R: 1.00, G: 0.00, B: 0.00},
	{R: 1.00, G: 0.65, B: 0.00},
	{R: 1.00, G: 1.00, B: 0.00},
	{R: 0.00, G: 1.00, B: 0.00},
	{R: 0.00, G: 0.75, B: 1.00},
	{R: 0.54, G: 0.17, B: 0.89},
	{R: 1.00, G: 0.08, B: 0.58},
	{R: 1.00, G: 0.84, B: 0.00},
}

type element struct {
	kind          elementKind
	x, y, vx, vy  float64
	size          float64
	rotation      float64
	rotationSpeed float64
	color         render.Color
}

// Parade simulates rising balloons, falling confetti and twinkling
// stars, topped by a continuously scrolling banner.
type Parade struct {
	w, h         int
	rng          *rand.Rand
	elements     []element
	spawnTimer   float64
	spawnEvery   float64
	bannerOffset float64
	sparkleClock float64
}

func NewParade(w, h int, seed int64) *Parade {
	return &Parade{
		w: w, h: h,
		rng:        rand.New(rand.NewSource(seed)),
		spawnEvery: 0.1,
	}
}

func (p *Parade) Reset() {
	p.elements = nil
	p.spawnTimer = 0
	p.spawnEvery = 0.1
	p.bannerOffset = 0
}

func (p *Parade) Update(dt, elapsed float64) {
	// Banner scroll depends on elapsed time alone, not on dt or elements.
	p.bannerOffset = math.Mod(elapsed*50, float64(p.w))
	p.sparkleClock = elapsed

	p.spawnTimer += dt
	if p.spawnTimer > p.spawnEvery {
		p.spawn()
		p.spawnTimer = 0
		p.spawnEvery = 0.05 + p.rng.Float64()*0.1
	}

	live := p.elements[:0]
	for i := range p.elements {
		e := p.elements[i]
		e.x += e.vx * dt * simFrameScale
		e.y += e.vy * dt * simFrameScale
		e.rotation += e.rotationSpeed * dt * simFrameScale
		if e.kind == elemBalloon {
			e.x += math.Sin(elapsed*2+e.y*0.05) * 0.5
		}
		if e.x < -50 || e.x > float64(p.w)+50 || e.y < -50 || e.y > float64(p.h)+50 {
			continue
		}
		live = append(live, e)
	}
	p.elements = live
}

func (p *Parade) spawn() {
	roll := p.rng.Float64()
	color := paradeColors[p.rng.Intn(len(paradeColors))]
	switch {
	case roll < 0.3: // balloon rises from the bottom
		p.elements = append(p.elements, element{
			kind:  elemBalloon,
			x:     p.rng.Float64() * float64(p.w),
			y:     float64(p.h) + 20,
			vx:    -0.5 + p.rng.Float64(),
			vy:    -(1.5 + p.rng.Float64()*1.5),
			size:  15 + p.rng.Float64()*10,
			color: color,
		})
	case roll < 0.8: // confetti falls from the top
		p.elements = append(p.elements, element{
			kind:          elemConfetti,
			x:             p.rng.Float64() * float64(p.w),
			y:             -10,
			vx:            -1 + p.rng.Float64()*2,
			vy:            2 + p.rng.Float64()*2,
			size:          6 + p.rng.Float64()*6,
			rotationSpeed: -5 + p.rng.Float64()*10,
			color:         color,
		})
	default: // star twinkles in place
		p.elements = append(p.elements, element{
			kind:  elemStar,
			x:     p.rng.Float64() * float64(p.w),
			y:     p.rng.Float64() * float64(p.h) * 0.6,
			size:  3 + p.rng.Float64()*5,
			color: render.Color{R: 1, G: 1, B: 0.78},
		})
	}
}

// Elements reports the current element count.
func (p *Parade) Elements() int { return len(p.elements) }

func (p *Parade) Render(dst *render.Frame) {
	for i := range p.elements {
		e := &p.elements[i]
		switch e.kind {
		case elemBalloon:
			drawDot(dst, e.x, e.y-e.size/2, e.size/2, e.color, 1)
		case elemConfetti:
			p.drawConfetti(dst, e)
		case elemStar:
			p.drawStar(dst, e)
		}
	}
	p.drawBanner(dst)
}

func (p *Parade) drawConfetti(dst *render.Frame, e *element) {
	// A rotated rectangle approximated by dots along its long axis reads
	// as tumbling confetti at kiosk resolution.
	cos, sin := math.Cos(e.rotation), math.Sin(e.rotation)
	for t := -1.0; t <= 1.0; t += 0.25 {
		x := e.x + t*e.size*cos
		y := e.y + t*e.size*sin
		drawDot(dst, x, y, e.size/4, e.color, 1)
	}
}

func (p *Parade) drawStar(dst *render.Frame, e *element) {
	twinkle := (math.Sin(p.sparkleClock*8+e.x+e.y) + 1) / 2
	if twinkle < 0.3 {
		return // star is off this frame
	}
	a := float32(twinkle)
	for d := -e.size; d <= e.size; d++ {
		dst.Add(int(e.x+d), int(e.y), e.color, a)
		dst.Add(int(e.x), int(e.y+d), e.color, a)
	}
}

func (p *Parade) drawBanner(dst *render.Frame) {
	const sparkles = 20
	for i := 0; i < sparkles; i++ {
		x := math.Mod(float64(i)*float64(p.w)/sparkles+p.bannerOffset, float64(p.w))
		y := 20 + math.Sin(p.sparkleClock*4+float64(i))*10
		intensity := (math.Sin(p.sparkleClock*6+float64(i)*0.5) + 1) / 2
		if intensity <= 0.5 {
			continue
		}
		c := render.Color{
			R: float32(intensity),
			G: float32(0.84 * intensity),
			B: float32(0.2 * intensity),
		}
		drawDot(dst, x, y, 3+intensity*3, c, 1)
	}
}
