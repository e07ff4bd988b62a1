// Package refresh runs the background polling loops. Pollers sleep for
// their full interval, push complete snapshots into the rotation
// machine, and never let a fetch failure escape as anything louder than
// a log line.
package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/parkboard/internal/queuetimes"
	"github.com/example/parkboard/internal/rotation"
	"github.com/example/parkboard/internal/store"
	"github.com/example/parkboard/internal/weather"
)

// After this many consecutive failures the log severity escalates from
// warn to error. The loop itself never stops.
const failureEscalation = 5

// Data polls the wait-time API and feeds the rotation machine and the
// history store.
type Data struct {
	Client   *queuetimes.Client
	Machine  *rotation.Machine
	Store    *store.Store // optional
	Interval time.Duration
}

// Run blocks until ctx is cancelled.
func (d *Data) Run(ctx context.Context) {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		log.Info().Msg("refreshing wait times")
		snap, err := d.Client.FetchAll(ctx)
		if err != nil {
			failures++
			ev := log.Warn()
			if failures >= failureEscalation {
				ev = log.Error()
			}
			ev.Err(err).Int("consecutive", failures).Msg("wait-time refresh failed")
			continue
		}
		failures = 0
		now := time.Now()
		d.Machine.SetSnapshot(snap, now)
		if d.Store != nil {
			if err := d.Store.StoreWaitTimes(snap.AllOpenRides(), now); err != nil {
				log.Warn().Err(err).Msg("history write failed")
			}
			if err := d.Store.Cleanup(now); err != nil {
				log.Warn().Err(err).Msg("history cleanup failed")
			}
		}
	}
}

// Weather polls the weather API on its own, slower cadence. Independent
// of the data poller; no ordering exists between the two streams.
type Weather struct {
	Client   *weather.Client
	Machine  *rotation.Machine
	Store    *store.Store // optional
	Interval time.Duration
}

// Run blocks until ctx is cancelled.
func (w *Weather) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		obs, err := w.Client.Fetch(ctx)
		if err != nil {
			failures++
			sev := zerolog.WarnLevel
			if failures >= failureEscalation {
				sev = zerolog.ErrorLevel
			}
			log.WithLevel(sev).Err(err).Int("consecutive", failures).Msg("weather refresh failed")
			// A cached observation still updates the display.
			if obs == nil {
				continue
			}
		} else {
			failures = 0
		}
		w.Machine.SetWeather(obs)
		if err == nil && w.Store != nil && obs != nil {
			if err := w.Store.StoreWeather(*obs, time.Now()); err != nil {
				log.Warn().Err(err).Msg("weather history write failed")
			}
		}
	}
}
