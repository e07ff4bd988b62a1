package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/parkboard/internal/config"
	"github.com/example/parkboard/internal/model"
	"github.com/example/parkboard/internal/overlay"
	"github.com/example/parkboard/internal/queuetimes"
	"github.com/example/parkboard/internal/refresh"
	"github.com/example/parkboard/internal/render"
	"github.com/example/parkboard/internal/rotation"
	"github.com/example/parkboard/internal/schedule"
	"github.com/example/parkboard/internal/store"
	"github.com/example/parkboard/internal/theme"
	"github.com/example/parkboard/internal/weather"
	"github.com/example/parkboard/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ---- Flags (config.yaml can override most) ----
	var (
		textOnly   = flag.Bool("text-only", false, "print a wait-time summary and exit, no display")
		fullscreen = flag.Bool("fullscreen", false, "run the kiosk panel fullscreen")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		addr       = flag.String("addr", "", "dashboard listen address (overrides config)")
		logLevel   = flag.String("log-level", "", "override log level (debug|info|warn|error)")
		testEvent  = flag.String("test-event", "", "inject a synthetic event: fireworks | fireworks-epcot | parade")
	)
	flag.Parse()

	// ---- Config ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return 1
	}
	if *fullscreen {
		cfg.Display.Fullscreen = true
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
		cfg.Web.Enabled = true
	}

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	if cfg.Logging.File != "" {
		if f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			out = zerolog.MultiLevelWriter(out, f)
		}
	}
	log.Logger = log.Output(out)
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if lv, err := zerolog.ParseLevel(level); err == nil && level != "" {
		zerolog.SetGlobalLevel(lv)
	}
	log.Info().Str("config", *configPath).Msg("parkboard starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Initial fetch; nothing meaningful to show without it ----
	client := queuetimes.New(time.Duration(cfg.API.TimeoutS) * time.Second)
	snap, err := client.FetchAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("initial wait-time fetch failed")
		if !*textOnly {
			fmt.Fprintln(os.Stderr, "error: could not fetch wait times; check network connection")
		}
		return 1
	}
	log.Info().Int("open_rides", len(snap.AllOpenRides())).Msg("initial data fetched")

	if *textOnly {
		printSummary(snap)
		return 0
	}

	// ---- History database ----
	var db *store.Store
	if cfg.Database.Path != "" {
		db, err = store.Open(cfg.Database.Path, cfg.Database.RetentionDays)
		if err != nil {
			log.Warn().Err(err).Msg("history database unavailable; continuing without it")
		} else {
			defer db.Close()
			if err := db.StoreWaitTimes(snap.AllOpenRides(), time.Now()); err != nil {
				log.Warn().Err(err).Msg("initial history write failed")
			}
		}
	}

	// ---- Event scheduler ----
	var sched *schedule.Scheduler
	if *testEvent != "" {
		ev, ok := schedule.TestEvent(*testEvent, time.Now())
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown test event %q\n", *testEvent)
			return 1
		}
		sched = schedule.NewWithEvents([]schedule.Event{ev})
		log.Info().Str("event", *testEvent).Msg("TEST MODE: synthetic event active")
	} else {
		sched = schedule.New(cfg.Events)
	}

	// ---- Display pipeline ----
	w, h := cfg.Display.Width, cfg.Display.Height
	images := theme.NewImageLibrary(cfg.Assets)
	cards := render.NewCards(w, h, images)
	sel := overlay.NewSelector(w, h, time.Now().UnixNano())
	for key, dir := range cfg.Videos {
		src, err := overlay.OpenDir(dir, w, h)
		if err != nil {
			log.Warn().Err(err).Str("event", key).Msg("event video unavailable")
			continue
		}
		sel.SetVideo(key, src)
		log.Info().Str("event", key).Str("dir", dir).Msg("event video loaded")
	}

	machine := rotation.New(rotation.Config{
		DisplayDuration:    cfg.Display.DisplayDuration,
		TransitionDuration: cfg.Display.TransitionDuration,
	}, cards, sched, sel, images)
	machine.SetSnapshot(snap, time.Now())

	// ---- Weather ----
	var weatherClient *weather.Client
	if cfg.Weather.Enabled && cfg.Weather.APIKey != "" {
		weatherClient = weather.New(cfg.Weather.APIKey, cfg.Weather.Latitude, cfg.Weather.Longitude)
		if obs, err := weatherClient.Fetch(ctx); err == nil {
			machine.SetWeather(obs)
		}
	} else {
		log.Info().Msg("weather display disabled (no API key configured)")
	}

	// ---- Dashboard ----
	hub := web.NewHub(w, h, cfg.Display.FPS)
	if cfg.Web.Enabled {
		srv := web.New(cfg.Web.Addr, db, machine, hub)
		go func() {
			log.Info().Str("addr", cfg.Web.Addr).Msg("dashboard starting")
			if err := srv.ListenAndServe(); err != nil {
				log.Error().Err(err).Msg("dashboard stopped")
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	// ---- Background refreshers ----
	go (&refresh.Data{
		Client:   client,
		Machine:  machine,
		Store:    db,
		Interval: time.Duration(cfg.API.RefreshInterval) * time.Second,
	}).Run(ctx)
	if weatherClient != nil {
		go (&refresh.Weather{
			Client:   weatherClient,
			Machine:  machine,
			Store:    db,
			Interval: time.Duration(cfg.Weather.RefreshInterval) * time.Second,
		}).Run(ctx)
	}

	// ---- Render loop ----
	log.Info().Int("w", w).Int("h", h).Int("fps", cfg.Display.FPS).
		Bool("fullscreen", cfg.Display.Fullscreen).Msg("entering render loop")
	runLoop(ctx, machine, hub, w, h, cfg.Display.FPS)

	log.Info().Msg("shutdown complete")
	return 0
}

// runLoop drives the machine at the target frame rate using the true
// measured delta, and fans composed frames out to the sim driver and
// websocket viewers. Returns when ctx is cancelled.
func runLoop(ctx context.Context, m *rotation.Machine, hub *web.Hub, w, h, fps int) {
	if fps <= 0 {
		fps = 30
	}
	drv := render.NewSim()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			m.Tick(dt, now)
			frame := compose(m.View(), w, h)
			_ = drv.Write(frame)
			hub.Publish(frame)
		}
	}
}

// compose flattens a rotation view into a single output frame.
func compose(v rotation.View, w, h int) *render.Frame {
	switch v.Kind {
	case rotation.ViewTransition:
		out := render.NewFrame(w, h)
		render.Mix(out, v.Prev, v.Next, v.Alpha)
		return out
	case rotation.ViewEvent:
		return v.Frame
	default:
		return v.Card
	}
}

// printSummary implements --text-only: open rides grouped by park,
// longest waits first, plus a total.
func printSummary(snap *model.Snapshot) {
	line := "============================================================"
	fmt.Println("\n" + line)
	fmt.Println("PARK WAIT TIMES")
	fmt.Println(line)

	slugs := make([]string, 0, len(snap.Parks))
	for slug := range snap.Parks {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool {
		return snap.Parks[slugs[i]].Name < snap.Parks[slugs[j]].Name
	})

	for _, slug := range slugs {
		park := snap.Parks[slug]
		fmt.Printf("\n%s\n----------------------------------------\n", park.Name)
		open := park.OpenRides()
		if len(open) == 0 {
			fmt.Println("  No rides currently reporting wait times")
			continue
		}
		sort.SliceStable(open, func(i, j int) bool { return open[i].WaitTime > open[j].WaitTime })
		for _, r := range open {
			fmt.Printf("  %s: %s\n", r.Name, r.DisplayWait())
		}
	}

	fmt.Println("\n" + line)
	fmt.Printf("Total open rides: %d\n", len(snap.AllOpenRides()))
	if !snap.LastFetch.IsZero() {
		fmt.Printf("Data fetched at: %s\n", snap.LastFetch.Format("3:04 PM"))
	}
	fmt.Println(line)
}
