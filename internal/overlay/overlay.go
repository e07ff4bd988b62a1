// Package overlay contains the show animation drivers. All drivers share
// one contract and draw additively over whatever card is beneath them;
// they never touch ride or park data.
package overlay

import (
	"github.com/example/parkboard/internal/render"
	"github.com/example/parkboard/internal/schedule"
)

// Driver is a time-stepped animation. Update receives the frame delta
// and the elapsed time since the event started; Render draws the current
// element set onto dst.
type Driver interface {
	Reset()
	Update(dt, elapsed float64)
	Render(dst *render.Frame)
}

// Selector resolves which driver runs a given event. A video configured
// for the event's park+kind pair wins over the procedural driver; the
// check runs on every call so a video appearing or disappearing takes
// effect on the next tick.
type Selector struct {
	videos map[string]*Video
	procs  map[schedule.Kind]Driver
}

func NewSelector(w, h int, seed int64) *Selector {
	return &Selector{
		videos: map[string]*Video{},
		procs: map[schedule.Kind]Driver{
			schedule.Fireworks: NewFireworks(w, h, seed),
			schedule.Parade:    NewParade(w, h, seed+1),
		},
	}
}

// SetVideo registers a video source under "<park-slug>_<kind>".
func (s *Selector) SetVideo(key string, src Source) {
	s.videos[key] = NewVideo(src)
}

// RemoveVideo drops a registered video; the procedural driver becomes
// the fallback on the next tick.
func (s *Selector) RemoveVideo(key string) {
	delete(s.videos, key)
}

// For returns the driver that should run ev right now.
func (s *Selector) For(ev schedule.Event) Driver {
	if v, ok := s.videos[ev.VideoKey()]; ok {
		return v
	}
	return s.procs[ev.Kind]
}

// ResetFor puts every driver that could serve ev back to its initial
// state. Called on the event's rising edge.
func (s *Selector) ResetFor(ev schedule.Event) {
	if v, ok := s.videos[ev.VideoKey()]; ok {
		v.Reset()
	}
	if p, ok := s.procs[ev.Kind]; ok {
		p.Reset()
	}
}
