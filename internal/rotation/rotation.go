// Package rotation owns what is on screen: the card queue, dwell and
// transition timing, and the event override. It is written by the
// background refreshers and read by the render loop; all shared state
// sits behind one lock and snapshot replacement is a single swap.
package rotation

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/parkboard/internal/model"
	"github.com/example/parkboard/internal/overlay"
	"github.com/example/parkboard/internal/render"
	"github.com/example/parkboard/internal/schedule"
	"github.com/example/parkboard/internal/weather"
)

// State names the machine's four modes.
type State string

const (
	StateNormal        State = "normal_rotation"
	StateTransitioning State = "transitioning"
	StateEventActive   State = "event_active"
	StateEmpty         State = "empty"
)

// ViewKind tags the render projection variant.
type ViewKind int

const (
	ViewCard ViewKind = iota
	ViewTransition
	ViewEmpty
	ViewEvent
)

// View is a pure projection of machine state for the renderer. Reading
// it never mutates the machine.
type View struct {
	Kind ViewKind

	// ViewCard / ViewEmpty
	Card *render.Frame

	// ViewTransition
	Prev, Next *render.Frame
	Alpha      float64

	// ViewEvent
	Event   schedule.Event
	Elapsed time.Duration
	Frame   *render.Frame
}

// CardSource renders queue entries into frames. Implemented by
// render.Cards; faked in tests.
type CardSource interface {
	RenderItem(it model.Item, fresh model.Freshness) (*render.Frame, error)
	RenderEmpty(fresh model.Freshness) *render.Frame
	RenderError() *render.Frame
}

// CycleAdvancer advances per-ride image variants once per full lap.
type CycleAdvancer interface {
	AdvanceAll()
}

// Config carries the two rotation timings.
type Config struct {
	DisplayDuration    float64 // seconds a card dwells on screen
	TransitionDuration float64 // crossfade seconds
}

// Machine is the display orchestrator.
type Machine struct {
	mu sync.RWMutex

	cfg    Config
	cards  CardSource
	sched  *schedule.Scheduler
	sel    *overlay.Selector
	cycles CycleAdvancer

	queue []model.Item
	idx   int
	dwell float64

	transitioning bool
	progress      float64
	prev, next    *render.Frame

	lastFetch time.Time
	errMsg    string

	weather *weather.Observation

	eventActive bool
	event       schedule.Event
	eventStart  time.Time

	view View
}

func New(cfg Config, cards CardSource, sched *schedule.Scheduler, sel *overlay.Selector, cycles CycleAdvancer) *Machine {
	if cfg.DisplayDuration <= 0 {
		cfg.DisplayDuration = 8.0
	}
	if cfg.TransitionDuration <= 0 {
		cfg.TransitionDuration = 0.5
	}
	m := &Machine{cfg: cfg, cards: cards, sched: sched, sel: sel, cycles: cycles}
	m.view = View{Kind: ViewEmpty, Card: cards.RenderEmpty(model.Freshness{AgeMinutes: -1, Stale: true})}
	return m
}

// SetSnapshot replaces the display queue and freshness fields from a new
// fetch. Safe to call from a background goroutine while the render loop
// ticks; the queue swap is atomic under the machine lock. If the queue
// shrank past the current index, the index clamps to 0.
func (m *Machine) SetSnapshot(s *model.Snapshot, now time.Time) {
	items := s.DisplayItems()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = items
	if m.idx >= len(m.queue) {
		m.idx = 0
	}
	m.lastFetch = s.LastFetch
	if !s.FetchSuccess {
		m.errMsg = s.ErrorMessage
	} else {
		m.errMsg = ""
	}
	log.Info().Int("items", len(items)).Time("fetched", s.LastFetch).Msg("display queue updated")
}

// SetWeather replaces the side-channel weather value. Purely
// presentational; rotation state is untouched.
func (m *Machine) SetWeather(o *weather.Observation) {
	m.mu.Lock()
	m.weather = o
	m.mu.Unlock()
}

// Weather returns the last observation pushed, or nil.
func (m *Machine) Weather() *weather.Observation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.weather
}

// State reports the current mode.
func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.eventActive:
		return StateEventActive
	case len(m.queue) == 0:
		return StateEmpty
	case m.transitioning:
		return StateTransitioning
	default:
		return StateNormal
	}
}

// Index returns the rotation position, for the dashboard.
func (m *Machine) Index() (idx, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idx, len(m.queue)
}

// Tick advances the machine by dt seconds at wall-clock time now and
// rebuilds the view. Tick(0, now) never changes rotation state.
func (m *Machine) Tick(dt float64, now time.Time) {
	if dt < 0 {
		dt = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// Event override comes first, edge-triggered both ways.
	ev, active := m.sched.ActiveEvent(now)
	if active && (!m.eventActive || ev != m.event) {
		m.eventActive = true
		m.event = ev
		m.eventStart = now
		m.sel.ResetFor(ev)
		log.Info().Str("kind", string(ev.Kind)).Str("park", ev.ParkName).Msg("event started, rotation suspended")
	} else if !active && m.eventActive {
		m.eventActive = false
		log.Info().Str("kind", string(m.event.Kind)).Msg("event ended, rotation resumed")
	}

	if m.eventActive {
		// Dwell and transition timers stay frozen while the show runs.
		elapsed := now.Sub(m.eventStart)
		drv := m.sel.For(m.event) // video-vs-procedural re-checked every tick
		if dt > 0 {
			drv.Update(dt, elapsed.Seconds())
		}
		frame := m.renderCurrentLocked(now)
		drv.Render(frame)
		m.view = View{Kind: ViewEvent, Event: m.event, Elapsed: elapsed, Frame: frame}
		return
	}

	fresh := model.FreshnessAt(m.lastFetch, now, m.errMsg)
	if len(m.queue) == 0 {
		m.view = View{Kind: ViewEmpty, Card: m.cards.RenderEmpty(fresh)}
		return
	}

	if m.transitioning {
		if dt > 0 {
			m.progress += dt / m.cfg.TransitionDuration
		}
		if m.progress >= 1.0 {
			m.transitioning = false
			m.progress = 0
			m.prev, m.next = nil, nil
		}
	}

	if !m.transitioning {
		if dt > 0 {
			m.dwell += dt
		}
		if m.dwell >= m.cfg.DisplayDuration {
			m.dwell = 0
			if len(m.queue) > 1 {
				m.startTransitionLocked(now)
			}
		}
	}

	if m.transitioning {
		m.view = View{Kind: ViewTransition, Prev: m.prev, Next: m.next, Alpha: m.progress}
		return
	}
	m.view = View{Kind: ViewCard, Card: m.renderCurrentLocked(now)}
}

func (m *Machine) startTransitionLocked(now time.Time) {
	m.prev = m.renderCurrentLocked(now)
	m.idx = (m.idx + 1) % len(m.queue)
	if m.idx == 0 && m.cycles != nil {
		// Full lap completed: rotate every ride's image variant.
		m.cycles.AdvanceAll()
	}
	m.next = m.renderCurrentLocked(now)
	m.transitioning = true
	m.progress = 0
}

// renderCurrentLocked renders the card at the current index. A panic or
// error inside the card source is confined to this frame; the loop keeps
// its liveness and shows the error placeholder instead.
func (m *Machine) renderCurrentLocked(now time.Time) (frame *render.Frame) {
	fresh := model.FreshnessAt(m.lastFetch, now, m.errMsg)
	if len(m.queue) == 0 {
		return m.cards.RenderEmpty(fresh)
	}
	item := m.queue[m.idx]
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("item", item.Label()).Msg("card render panicked")
			frame = m.cards.RenderError()
		}
	}()
	f, err := m.cards.RenderItem(item, fresh)
	if err != nil {
		log.Error().Err(err).Str("item", item.Label()).Msg("card render failed")
		return m.cards.RenderError()
	}
	return f
}

// View returns the last projection built by Tick. Never mutates state.
func (m *Machine) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// Freshness derives the current badge state, for the dashboard.
func (m *Machine) Freshness(now time.Time) model.Freshness {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.FreshnessAt(m.lastFetch, now, m.errMsg)
}
