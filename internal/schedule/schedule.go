// Package schedule turns the declarative show configuration into event
// records and answers "what is active now" / "what is next" queries.
package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/parkboard/internal/config"
)

// Kind identifies the show type.
type Kind string

const (
	Fireworks Kind = "fireworks"
	Parade    Kind = "parade"
)

// Event is one daily show: a start time-of-day and a duration. Events
// recur every day. Immutable after parse.
type Event struct {
	Kind     Kind
	ParkName string
	ParkSlug string
	Hour     int
	Minute   int
	Second   int // always 0 for configured events; used by test injection
	Duration time.Duration
}

// StartOn anchors the event's time-of-day to day's calendar date.
func (e Event) StartOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), e.Hour, e.Minute, e.Second, 0, day.Location())
}

// ActiveAt reports start <= now < start+duration, evaluated within now's
// own calendar date. An event whose window crosses midnight goes inactive
// at 00:00. Show timing depends on this, so leave it alone.
func (e Event) ActiveAt(now time.Time) bool {
	start := e.StartOn(now)
	return !now.Before(start) && now.Before(start.Add(e.Duration))
}

// Elapsed returns time since the event's start today, or 0 when the
// event is not active.
func (e Event) Elapsed(now time.Time) time.Duration {
	if !e.ActiveAt(now) {
		return 0
	}
	return now.Sub(e.StartOn(now))
}

// Remaining returns time left in the active window, or 0 when inactive.
func (e Event) Remaining(now time.Time) time.Duration {
	if !e.ActiveAt(now) {
		return 0
	}
	return e.StartOn(now).Add(e.Duration).Sub(now)
}

// VideoKey is the lookup key for an optional video override of this
// event: "<park-slug>_<kind>".
func (e Event) VideoKey() string { return e.ParkSlug + "_" + string(e.Kind) }

// parkInfo maps config park keys to display names and slugs. Ordered so
// parsing is deterministic regardless of YAML map iteration.
var parkInfo = []struct {
	key, name, slug string
}{
	{"magic_kingdom", "Magic Kingdom", "magic-kingdom"},
	{"epcot", "EPCOT", "epcot"},
	{"hollywood_studios", "Hollywood Studios", "hollywood-studios"},
	{"animal_kingdom", "Animal Kingdom", "animal-kingdom"},
}

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// parseClock parses 24-hour "HH:MM". Returns ok=false for anything else.
func parseClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// Scheduler holds the parsed event set. Read-only after construction.
type Scheduler struct {
	events []Event
}

// New parses the events configuration. Malformed entries are dropped
// with a warning; parsing never fails outright.
func New(cfg config.EventsCfg) *Scheduler {
	s := &Scheduler{}
	s.parseKind(Fireworks, cfg.Fireworks, 240)
	s.parseKind(Parade, cfg.Parades, 120)
	return s
}

// NewWithEvents builds a scheduler around a fixed event set, bypassing
// configuration. Used by --test-event.
func NewWithEvents(events []Event) *Scheduler {
	return &Scheduler{events: events}
}

func (s *Scheduler) parseKind(kind Kind, cfg config.EventKindCfg, defaultDuration int) {
	if !cfg.Enabled {
		return
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = defaultDuration
	}
	known := map[string]bool{}
	for _, p := range parkInfo {
		known[p.key] = true
		times, ok := cfg.Schedule[p.key]
		if !ok {
			continue
		}
		for _, ts := range times {
			h, m, ok := parseClock(ts)
			if !ok {
				log.Warn().Str("kind", string(kind)).Str("time", ts).Msg("invalid schedule time, skipping")
				continue
			}
			s.events = append(s.events, Event{
				Kind:     kind,
				ParkName: p.name,
				ParkSlug: p.slug,
				Hour:     h,
				Minute:   m,
				Duration: time.Duration(duration) * time.Second,
			})
			log.Info().Str("kind", string(kind)).Str("park", p.name).Str("start", ts).
				Int("duration_s", duration).Msg("scheduled event")
		}
	}
	var unknown []string
	for key := range cfg.Schedule {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		log.Warn().Str("kind", string(kind)).Str("park", key).Msg("unknown park in schedule, skipping")
	}
}

// Events returns the parsed set in stable order.
func (s *Scheduler) Events() []Event { return s.events }

// ActiveEvent returns the first event whose window contains now. If two
// windows overlap (a configuration error), the first in parse order wins
// on every call; callers should not rely on that beyond its stability.
func (s *Scheduler) ActiveEvent(now time.Time) (Event, bool) {
	for _, e := range s.events {
		if e.ActiveAt(now) {
			return e, true
		}
	}
	return Event{}, false
}

// NextEvent returns the upcoming event with the smallest non-negative
// time until start. A start already past today counts as tomorrow.
func (s *Scheduler) NextEvent(now time.Time) (Event, time.Duration, bool) {
	var (
		best      Event
		bestUntil time.Duration
		found     bool
	)
	for _, e := range s.events {
		start := e.StartOn(now)
		if !start.After(now) {
			start = start.AddDate(0, 0, 1)
		}
		until := start.Sub(now)
		if !found || until < bestUntil {
			best, bestUntil, found = e, until, true
		}
	}
	return best, bestUntil, found
}

// TestEvent builds a synthetic always-active event starting one second
// in the past, for manual animation checks. Recognized names are
// "fireworks", "fireworks-epcot" and "parade".
func TestEvent(name string, now time.Time) (Event, bool) {
	start := now.Add(-time.Second)
	e := Event{Hour: start.Hour(), Minute: start.Minute(), Second: start.Second()}
	switch name {
	case "fireworks":
		e.Kind, e.ParkName, e.ParkSlug = Fireworks, "Magic Kingdom", "magic-kingdom"
		e.Duration = 240 * time.Second
	case "fireworks-epcot":
		e.Kind, e.ParkName, e.ParkSlug = Fireworks, "EPCOT", "epcot"
		e.Duration = 240 * time.Second
	case "parade":
		e.Kind, e.ParkName, e.ParkSlug = Parade, "Magic Kingdom", "magic-kingdom"
		e.Duration = 120 * time.Second
	default:
		return Event{}, false
	}
	return e, true
}
