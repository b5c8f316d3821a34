package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/arung-agamani/wavecast/internal/playlistcfg"
)

// parseAndBuild reads, unmarshals, validates, and converts the XML document
// at path into a WeekSchedule, resolving every Playlist/IntermediatePlaylist
// it references along the way (spec.md §6).
func parseAndBuild(path string, engineStart time.Time) (*WeekSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var doc xmlWeekSchedule
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	days := [7]xmlDay{doc.Sun, doc.Mon, doc.Tue, doc.Wed, doc.Thu, doc.Fri, doc.Sat}

	var week WeekSchedule
	for i, xd := range days {
		day, err := buildDay(xd, engineStart)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i, err)
		}
		week[i] = *day
	}
	return &week, nil
}

func buildDay(xd xmlDay, engineStart time.Time) (*DaySchedule, error) {
	if len(xd.Zones) == 0 {
		return nil, fmt.Errorf("day has no Zone elements")
	}

	zones := make([]*Zone, 0, len(xd.Zones))
	for _, xz := range xd.Zones {
		z, err := buildZone(xz, engineStart)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", xz.Name, err)
		}
		zones = append(zones, z)
	}
	if err := validateZoneOrdering(zones); err != nil {
		return nil, err
	}
	return &DaySchedule{Zones: zones}, nil
}

func buildZone(xz xmlZone, engineStart time.Time) (*Zone, error) {
	start, err := ParseTimeOfDay(xz.Start)
	if err != nil {
		return nil, err
	}
	if xz.Name == "" {
		return nil, fmt.Errorf("zone is missing a Name attribute")
	}

	main, err := buildPlaylist(xz.Main)
	if err != nil {
		return nil, fmt.Errorf("Main playlist: %w", err)
	}

	var fallback *playlistcfg.Playlist
	if xz.Fallback != nil {
		fallback, err = buildPlaylist(*xz.Fallback)
		if err != nil {
			return nil, fmt.Errorf("Fallback playlist: %w", err)
		}
	}

	if len(xz.Intermediate) > 4 {
		return nil, fmt.Errorf("at most 4 Intermediate playlists permitted, got %d", len(xz.Intermediate))
	}

	others := make([]*playlistcfg.IntermediatePlaylist, 0, len(xz.Intermediate))
	for _, xip := range xz.Intermediate {
		ip, err := buildIntermediate(xip, engineStart)
		if err != nil {
			return nil, fmt.Errorf("Intermediate playlist %q: %w", xip.Name, err)
		}
		others = append(others, ip)
	}

	return &Zone{
		Name:        xz.Name,
		Start:       start,
		Maintainer:  xz.Maintainer,
		Description: xz.Description,
		Comment:     xz.Comment,
		Main:        main,
		Fallback:    fallback,
		Others:      others,
	}, nil
}

func buildPlaylist(xp xmlPlaylist) (*playlistcfg.Playlist, error) {
	fade, err := buildFade(xp.Fader)
	if err != nil {
		return nil, err
	}
	if xp.Path == "" {
		return nil, fmt.Errorf("Playlist is missing a Path attribute")
	}
	return playlistcfg.Load(xp.Path, xp.Shuffle, fade)
}

func buildIntermediate(xip xmlIntermediatePlaylist, engineStart time.Time) (*playlistcfg.IntermediatePlaylist, error) {
	if xip.Name == "" {
		return nil, fmt.Errorf("missing Name attribute")
	}
	if xip.SchedIntervalMins <= 0 {
		return nil, fmt.Errorf("SchedIntervalMins must be positive, got %d", xip.SchedIntervalMins)
	}
	if xip.NumSchedItems <= 0 {
		return nil, fmt.Errorf("NumSchedItems must be positive, got %d", xip.NumSchedItems)
	}

	base, err := buildPlaylist(xip.xmlPlaylist)
	if err != nil {
		return nil, err
	}

	return playlistcfg.NewIntermediatePlaylist(base, xip.Name, xip.SchedIntervalMins, xip.NumSchedItems, engineStart), nil
}

func buildFade(xf *xmlFader) (*playlistcfg.FadeInfo, error) {
	if xf == nil {
		return nil, nil
	}
	fade := &playlistcfg.FadeInfo{
		FadeInSecs:  xf.FadeInDurationSecs,
		FadeOutSecs: xf.FadeOutDurationSecs,
		MinLevel:    xf.MinLevel,
		MaxLevel:    xf.MaxLevel,
	}
	if err := fade.Validate(); err != nil {
		return nil, err
	}
	return fade, nil
}
