// Package model holds the wait-time data types shared by the fetcher,
// the rotation machine and the dashboard.
package model

import (
	"fmt"
	"sort"
	"time"
)

// WaitCategory buckets a wait time for presentation color only; it plays
// no part in scheduling.
type WaitCategory string

const (
	WaitShort    WaitCategory = "short"     // 0-20 min
	WaitModerate WaitCategory = "moderate"  // 21-45 min
	WaitLong     WaitCategory = "long"      // 46-75 min
	WaitVeryLong WaitCategory = "very_long" // 76+ min
)

// CategoryFor maps minutes to a WaitCategory. Total over non-negative
// inputs, four contiguous ranges, no gaps.
func CategoryFor(minutes int) WaitCategory {
	switch {
	case minutes <= 20:
		return WaitShort
	case minutes <= 45:
		return WaitModerate
	case minutes <= 75:
		return WaitLong
	default:
		return WaitVeryLong
	}
}

// Ride is a single attraction as reported by the upstream API.
type Ride struct {
	ID          int
	Name        string
	WaitTime    int // minutes
	Open        bool
	ParkID      int
	ParkName    string
	LastUpdated time.Time
}

func (r Ride) Category() WaitCategory { return CategoryFor(r.WaitTime) }

// DisplayWait formats the wait for on-screen use.
func (r Ride) DisplayWait() string {
	if !r.Open {
		return "Closed"
	}
	if r.WaitTime == 0 {
		return "Walk On"
	}
	return fmt.Sprintf("%d min", r.WaitTime)
}

// Park is one theme park and its rides.
type Park struct {
	ID          int
	Name        string
	Slug        string
	Rides       []Ride
	LastUpdated time.Time
}

// OpenRides returns rides that are open and reporting a non-zero wait.
// Walk-on rides are excluded from rotation.
func (p Park) OpenRides() []Ride {
	var out []Ride
	for _, r := range p.Rides {
		if r.Open && r.WaitTime > 0 {
			out = append(out, r)
		}
	}
	return out
}

// ClosedPark is a synthesized placeholder card shown when a park has no
// open rides. Never persisted; rebuilt on every data update.
type ClosedPark struct {
	Name    string
	Slug    string
	OpensAt string
}

// DefaultOpensAt is used when no park-hours source is configured.
const DefaultOpensAt = "9:00 AM"

// Snapshot is one complete fetch of wait-time data across all parks.
type Snapshot struct {
	Parks        map[string]Park // keyed by slug
	LastFetch    time.Time
	FetchSuccess bool
	ErrorMessage string
}

// AllOpenRides returns every open ride sorted by park name, then wait
// time descending.
func (s *Snapshot) AllOpenRides() []Ride {
	var rides []Ride
	for _, p := range s.Parks {
		rides = append(rides, p.OpenRides()...)
	}
	sort.SliceStable(rides, func(i, j int) bool {
		if rides[i].ParkName != rides[j].ParkName {
			return rides[i].ParkName < rides[j].ParkName
		}
		return rides[i].WaitTime > rides[j].WaitTime
	})
	return rides
}

// ClosedParks returns a placeholder for every park with zero open rides,
// sorted by name.
func (s *Snapshot) ClosedParks() []ClosedPark {
	var out []ClosedPark
	for _, p := range s.Parks {
		if len(p.OpenRides()) == 0 {
			out = append(out, ClosedPark{Name: p.Name, Slug: p.Slug, OpensAt: DefaultOpensAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ItemKind tags the display-queue variant.
type ItemKind int

const (
	ItemRide ItemKind = iota
	ItemClosedPark
)

// Item is the tagged union rotated by the display: either a ride card or
// a closed-park placeholder.
type Item struct {
	Kind ItemKind
	Ride Ride
	Park ClosedPark
}

func RideItem(r Ride) Item       { return Item{Kind: ItemRide, Ride: r} }
func ClosedParkItem(p ClosedPark) Item { return Item{Kind: ItemClosedPark, Park: p} }

// Label is a short human-readable identity, used in logs.
func (it Item) Label() string {
	if it.Kind == ItemClosedPark {
		return it.Park.Name
	}
	return it.Ride.Name
}

// DisplayItems builds the rotation queue: open rides first (park name,
// then wait descending), followed by closed-park placeholders.
func (s *Snapshot) DisplayItems() []Item {
	rides := s.AllOpenRides()
	closed := s.ClosedParks()
	items := make([]Item, 0, len(rides)+len(closed))
	for _, r := range rides {
		items = append(items, RideItem(r))
	}
	for _, p := range closed {
		items = append(items, ClosedParkItem(p))
	}
	return items
}
