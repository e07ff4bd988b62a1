package model

import "time"

// StaleAfter is the age past which a snapshot is considered stale for
// caching decisions. WarnAfter is the (independent, earlier) age at which
// the on-screen badge lights up.
const (
	StaleAfter = 15 * time.Minute
	WarnAfter  = 10 * time.Minute
)

// AgeMinutes returns whole minutes since lastFetch, or -1 if no fetch has
// ever completed.
func AgeMinutes(lastFetch, now time.Time) int {
	if lastFetch.IsZero() {
		return -1
	}
	return int(now.Sub(lastFetch).Seconds() / 60)
}

// IsStale reports whether the snapshot is older than StaleAfter. A zero
// lastFetch is always stale.
func IsStale(lastFetch, now time.Time) bool {
	if lastFetch.IsZero() {
		return true
	}
	return now.Sub(lastFetch) > StaleAfter
}

// Freshness is the derived data-age state consumed by the renderer.
type Freshness struct {
	AgeMinutes int
	Stale      bool
	ErrMsg     string // last fetch error, empty when the last attempt succeeded
}

// FreshnessAt derives the badge state for a snapshot's fetch timestamp
// and error message.
func FreshnessAt(lastFetch, now time.Time, errMsg string) Freshness {
	return Freshness{
		AgeMinutes: AgeMinutes(lastFetch, now),
		Stale:      IsStale(lastFetch, now),
		ErrMsg:     errMsg,
	}
}

// ShowBadge reports whether the warning badge is visible: data older than
// WarnAfter, or the last fetch attempt failed outright.
func (f Freshness) ShowBadge() bool {
	return f.AgeMinutes > int(WarnAfter.Minutes()) || f.ErrMsg != ""
}

// IsError reports whether the badge should use the error color rather
// than the aging color.
func (f Freshness) IsError() bool { return f.ErrMsg != "" }
