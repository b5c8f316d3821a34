// Package schedule implements the scheduler (spec.md §4.1): resolving,
// for any wall-clock instant, which audio file should play next, taking
// into account the day/zone structure, intermediate-playlist bursts, and
// the main/fallback playlist chain. Grounded on the teacher's
// internal/playlist/scheduler.go poll-and-resolve design, generalized from
// a four-way time-tag lookup to the zone/day/week model of this spec.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arung-agamani/wavecast/internal/config"
	"github.com/arung-agamani/wavecast/internal/media"
	"github.com/arung-agamani/wavecast/internal/playlistcfg"
)

// Scheduler resolves the next audio file to play given the current config
// (spec.md §4.1).
type Scheduler struct {
	cfg         *config.Config
	engineStart time.Time
	strictScan  bool
}

// New creates a Scheduler bound to cfg. engineStart is the moment the
// engine started, reused for config reloads so every newly-built
// IntermediatePlaylist still seeds last_scheduled_time correctly (spec.md
// §4.1: "last_scheduled_time is initialized to the engine start time").
func New(cfg *config.Config, engineStart time.Time, strictScan bool) *Scheduler {
	return &Scheduler{cfg: cfg, engineStart: engineStart, strictScan: strictScan}
}

// NextFor implements next_for(now) -> (AudioFile, Option<FadeInfo>) or a
// "nothing available" failure (spec.md §4.1).
func (s *Scheduler) NextFor(ctx context.Context, now time.Time) (*media.AudioFile, error) {
	if err := s.cfg.ReloadIfChanged(s.engineStart); err != nil {
		slog.Warn("config reload failed, keeping previous schedule", "error", err)
	}

	day := s.cfg.DayFor(now)
	if len(day.Zones) == 0 {
		return nil, fmt.Errorf("scheduler: no zones configured for %s", now.Weekday())
	}

	zone := selectZone(day, now)

	if ipls, ok := selectIntermediate(zone, now); ok {
		af, err := s.serveFrom(ctx, ipls.Base, zone.Name)
		if err == nil {
			return af, nil
		}
		slog.Warn("intermediate playlist item failed to load, falling through to main", "zone", zone.Name, "error", err)
	}

	af, err := s.serveFrom(ctx, zone.Main, zone.Name)
	if err == nil {
		return af, nil
	}
	slog.Warn("main playlist exhausted or failed, trying fallback", "zone", zone.Name, "error", err)

	if zone.Fallback != nil {
		af, err := s.serveFrom(ctx, zone.Fallback, zone.Name)
		if err == nil {
			return af, nil
		}
		slog.Warn("fallback playlist also failed", "zone", zone.Name, "error", err)
	}

	return nil, fmt.Errorf("scheduler: nothing available for zone %q", zone.Name)
}

// selectZone implements spec.md §4.1 step 2: reverse scan for the latest
// zone whose start time is <= now; day.Zones[0] with a warning if none
// matches (now is before the first zone's start).
func selectZone(day *config.DaySchedule, now time.Time) *config.Zone {
	nowTOD := config.OfDay(now)
	for i := len(day.Zones) - 1; i >= 0; i-- {
		if day.Zones[i].Start.LessOrEqual(nowTOD) {
			return day.Zones[i]
		}
	}
	slog.Warn("time-of-day precedes every zone's start; using first zone", "time_of_day", nowTOD)
	return day.Zones[0]
}

// selectIntermediate implements spec.md §4.1 step 3: iterate zone.Others
// in declaration order, evaluating each list's burst state machine; the
// first one that decides to serve wins.
func selectIntermediate(zone *config.Zone, now time.Time) (*playlistcfg.IntermediatePlaylist, bool) {
	for _, ipls := range zone.Others {
		decision := ipls.Evaluate(now)
		if decision.ServeFromThis {
			return ipls, true
		}
	}
	return nil, false
}

// serveFrom implements get_next_item for a single playlist (spec.md §4.2):
// reload if changed, scan forward for the next readable path, load it. On
// loader failure the scan continues (non-fatal) up to the playlist's full
// length.
func (s *Scheduler) serveFrom(ctx context.Context, pl *playlistcfg.Playlist, zoneName string) (*media.AudioFile, error) {
	if pl == nil {
		return nil, fmt.Errorf("playlist not configured")
	}
	if err := pl.ReloadIfChanged(); err != nil {
		slog.Warn("playlist reload failed, keeping previous contents", "error", err)
	}

	attempts := pl.Len()
	if attempts == 0 {
		return nil, fmt.Errorf("playlist is empty")
	}

	for i := 0; i < attempts; i++ {
		path, ok := pl.NextReadablePath()
		if !ok {
			return nil, fmt.Errorf("no readable item remains in playlist")
		}
		af, err := media.Load(ctx, path, zoneName, pl.Fade, s.strictScan)
		if err != nil {
			slog.Warn("media load failed, skipping", "path", path, "error", err)
			continue
		}
		return af, nil
	}
	return nil, fmt.Errorf("exhausted playlist without a loadable item")
}
