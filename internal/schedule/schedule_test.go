package schedule

import (
	"testing"
	"time"

	"github.com/example/parkboard/internal/config"
)

func day(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 1, hour, min, sec, 0, time.UTC)
}

func TestNewParsesScheduleDeterministically(t *testing.T) {
	cfg := config.EventsCfg{
		Fireworks: config.EventKindCfg{
			Enabled:  true,
			Duration: 300,
			Schedule: map[string][]string{
				"epcot":         {"21:00"},
				"magic_kingdom": {"20:00", "22:00"},
			},
		},
		Parades: config.EventKindCfg{
			Enabled: true,
			Schedule: map[string][]string{
				"magic_kingdom": {"15:00"},
			},
		},
	}
	s := New(cfg)
	evs := s.Events()
	if len(evs) != 4 {
		t.Fatalf("events = %d, want 4", len(evs))
	}
	// Fireworks first in park order, then parades.
	if evs[0].ParkSlug != "magic-kingdom" || evs[0].Hour != 20 {
		t.Fatalf("evs[0] = %+v", evs[0])
	}
	if evs[1].ParkSlug != "magic-kingdom" || evs[1].Hour != 22 {
		t.Fatalf("evs[1] = %+v", evs[1])
	}
	if evs[2].ParkSlug != "epcot" || evs[2].Kind != Fireworks {
		t.Fatalf("evs[2] = %+v", evs[2])
	}
	if evs[3].Kind != Parade || evs[3].Hour != 15 {
		t.Fatalf("evs[3] = %+v", evs[3])
	}
	if evs[0].Duration != 300*time.Second {
		t.Fatalf("fireworks duration = %v", evs[0].Duration)
	}
	if evs[3].Duration != 120*time.Second {
		t.Fatalf("parade default duration = %v", evs[3].Duration)
	}
}

func TestNewDropsMalformedEntries(t *testing.T) {
	cfg := config.EventsCfg{
		Fireworks: config.EventKindCfg{
			Enabled: true,
			Schedule: map[string][]string{
				"magic_kingdom": {"25:00", "9:75", "banana", "21:00"},
				"atlantis":      {"20:00"}, // unknown park
			},
		},
	}
	s := New(cfg)
	evs := s.Events()
	if len(evs) != 1 {
		t.Fatalf("events = %d, want 1 (only the valid time)", len(evs))
	}
	if evs[0].Hour != 21 || evs[0].Minute != 0 {
		t.Fatalf("kept event = %+v", evs[0])
	}
}

func TestDisabledKindParsesNothing(t *testing.T) {
	cfg := config.EventsCfg{
		Fireworks: config.EventKindCfg{
			Enabled:  false,
			Schedule: map[string][]string{"epcot": {"21:00"}},
		},
	}
	if got := len(New(cfg).Events()); got != 0 {
		t.Fatalf("events = %d, want 0", got)
	}
}

func TestActiveWindow(t *testing.T) {
	e := Event{Kind: Fireworks, Hour: 21, Minute: 0, Duration: 240 * time.Second}

	if e.ActiveAt(day(20, 59, 59)) {
		t.Fatal("active one second before start")
	}
	if !e.ActiveAt(day(21, 0, 0)) {
		t.Fatal("inactive at start (window is start-inclusive)")
	}
	if !e.ActiveAt(day(21, 3, 59)) {
		t.Fatal("inactive one second before end")
	}
	if e.ActiveAt(day(21, 4, 0)) {
		t.Fatal("active at end (window is end-exclusive)")
	}
}

func TestElapsedAndRemaining(t *testing.T) {
	e := Event{Hour: 21, Minute: 0, Duration: 240 * time.Second}
	now := day(21, 1, 30)
	if got := e.Elapsed(now); got != 90*time.Second {
		t.Fatalf("Elapsed = %v", got)
	}
	if got := e.Remaining(now); got != 150*time.Second {
		t.Fatalf("Remaining = %v", got)
	}
	if got := e.Elapsed(day(23, 0, 0)); got != 0 {
		t.Fatalf("Elapsed outside window = %v", got)
	}
}

// A window crossing midnight goes inactive at 00:00 because activity is
// evaluated against the current calendar date. Pinned here so nobody
// "fixes" it into a behavior change.
func TestWindowStopsAtMidnight(t *testing.T) {
	e := Event{Hour: 23, Minute: 50, Duration: 3700 * time.Second}
	if !e.ActiveAt(day(23, 55, 0)) {
		t.Fatal("inactive before midnight")
	}
	next := time.Date(2026, 3, 2, 0, 5, 0, 0, time.UTC)
	if e.ActiveAt(next) {
		t.Fatal("active after midnight; window should reset with the date")
	}
}

func TestActiveEventOverlapIsStable(t *testing.T) {
	first := Event{Kind: Fireworks, ParkSlug: "magic-kingdom", Hour: 21, Duration: 600 * time.Second}
	second := Event{Kind: Fireworks, ParkSlug: "epcot", Hour: 21, Minute: 5, Duration: 600 * time.Second}
	s := NewWithEvents([]Event{first, second})

	now := day(21, 6, 0) // both windows contain now
	for i := 0; i < 10; i++ {
		ev, ok := s.ActiveEvent(now)
		if !ok || ev.ParkSlug != "magic-kingdom" {
			t.Fatalf("call %d: got %+v ok=%v, want first event every time", i, ev, ok)
		}
	}
}

func TestNextEventRollsOverToTomorrow(t *testing.T) {
	s := NewWithEvents([]Event{
		{Kind: Fireworks, ParkSlug: "epcot", Hour: 21, Duration: 240 * time.Second},
		{Kind: Parade, ParkSlug: "magic-kingdom", Hour: 15, Duration: 120 * time.Second},
	})

	// Before both: parade is nearest.
	ev, until, ok := s.NextEvent(day(10, 0, 0))
	if !ok || ev.Kind != Parade {
		t.Fatalf("next = %+v ok=%v", ev, ok)
	}
	if until != 5*time.Hour {
		t.Fatalf("until = %v, want 5h", until)
	}

	// After both: parade again, but tomorrow.
	ev, until, ok = s.NextEvent(day(22, 0, 0))
	if !ok || ev.Kind != Parade {
		t.Fatalf("next = %+v ok=%v", ev, ok)
	}
	if until != 17*time.Hour {
		t.Fatalf("until = %v, want 17h", until)
	}
}

func TestNextEventEmptySchedule(t *testing.T) {
	if _, _, ok := NewWithEvents(nil).NextEvent(day(12, 0, 0)); ok {
		t.Fatal("NextEvent reported an event for an empty schedule")
	}
}

func TestTestEventIsImmediatelyActive(t *testing.T) {
	now := day(13, 37, 42)
	cases := []struct {
		name string
		kind Kind
		slug string
	}{
		{"fireworks", Fireworks, "magic-kingdom"},
		{"fireworks-epcot", Fireworks, "epcot"},
		{"parade", Parade, "magic-kingdom"},
	}
	for _, c := range cases {
		ev, ok := TestEvent(c.name, now)
		if !ok {
			t.Fatalf("%s: not recognized", c.name)
		}
		if ev.Kind != c.kind || ev.ParkSlug != c.slug {
			t.Fatalf("%s: got %+v", c.name, ev)
		}
		if !ev.ActiveAt(now) {
			t.Fatalf("%s: not active at injection time", c.name)
		}
	}
	if _, ok := TestEvent("laser-show", now); ok {
		t.Fatal("unknown name accepted")
	}
}

func TestVideoKey(t *testing.T) {
	e := Event{Kind: Fireworks, ParkSlug: "epcot"}
	if got := e.VideoKey(); got != "epcot_fireworks" {
		t.Fatalf("VideoKey = %q", got)
	}
}
