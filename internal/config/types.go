// Package config parses and validates the XML weekly-schedule document
// (spec.md §3, §6) into the in-memory Config/WeekSchedule/DaySchedule/Zone
// model consumed by internal/schedule, and handles its mtime-based
// hot-reload (spec.md §4.1 step 1, §7 CONFIG_RELOAD_FAILED policy).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/arung-agamani/wavecast/internal/playlistcfg"
	"github.com/arung-agamani/wavecast/internal/reload"
)

// Zone is one scheduling window within a day (spec.md §3).
type Zone struct {
	Name        string
	Start       TimeOfDay
	Maintainer  string
	Description string
	Comment     string

	Main     *playlistcfg.Playlist
	Fallback *playlistcfg.Playlist
	Others   []*playlistcfg.IntermediatePlaylist
}

// DaySchedule is a strictly-ascending, non-overlapping sequence of Zones
// (spec.md §3).
type DaySchedule struct {
	Zones []*Zone
}

// WeekSchedule holds exactly seven DaySchedules, Sunday=0 .. Saturday=6
// (spec.md §3), matching time.Weekday's own numbering.
type WeekSchedule [7]DaySchedule

// Config is the loaded, hot-reloadable schedule document (spec.md §3).
type Config struct {
	mu sync.Mutex

	Path  string
	guard *reload.Guard
	Week  WeekSchedule
}

// Load reads, parses, and validates the XML schedule at path, building the
// playlists it references (spec.md §6: the document root is WeekSchedule
// with Mon..Sun Day children). engineStart seeds every IntermediatePlaylist's
// last_scheduled_time per spec.md §4.1.
func Load(path string, engineStart time.Time) (*Config, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config %q: %w", path, err)
	}

	week, err := parseAndBuild(path, engineStart)
	if err != nil {
		return nil, err
	}

	return &Config{Path: path, guard: reload.NewGuard(path, fi.ModTime()), Week: *week}, nil
}

// ReloadIfChanged re-parses the config file if its mtime has advanced.
// Per spec.md §7, CONFIG_RELOAD_FAILED is non-fatal: the previous schedule
// remains in effect and the error is returned purely for the caller to log.
func (c *Config) ReloadIfChanged(engineStart time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.guard.IfChanged(func() error {
		week, err := parseAndBuild(c.Path, engineStart)
		if err != nil {
			return err
		}
		c.Week = *week
		slog.Info("config reloaded", "path", c.Path)
		return nil
	})
}

// DayFor returns the DaySchedule for now's weekday, looked up under c.mu.
func (c *Config) DayFor(now time.Time) *DaySchedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &c.Week[int(now.Weekday())]
}
