package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// rawLookup case-insensitively finds the first of candidates present in
// raw, trying each key as-is. dhowden/tag's Metadata.Raw() exposes
// container-specific tag keys verbatim (ID3 TXXX frames, Vorbis comments,
// etc.), so ReplayGain and MusicBrainz fields can show up under several
// differently-cased spellings depending on the tagging tool that wrote
// them (spec.md §4.3).
func rawLookup(raw map[string]interface{}, candidates ...string) (string, bool) {
	lowered := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		lowered[strings.ToLower(k)] = v
	}
	for _, c := range candidates {
		if v, ok := lowered[strings.ToLower(c)]; ok {
			if s, ok := stringify(v); ok {
				return s, true
			}
		}
	}
	return "", false
}

func stringify(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case []string:
		if len(t) > 0 {
			return strings.TrimSpace(t[0]), true
		}
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// parseGainDB parses a ReplayGain *_GAIN tag value, which is conventionally
// formatted like "-3.25 dB" (spec.md §4.3: "parsed as a float decibel
// value").
func parseGainDB(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(s, "dB")), "DB")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parsePeak parses a ReplayGain *_PEAK tag value: linear, 0..1 (spec.md
// §4.3).
func parsePeak(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// extractReplayGainAndTags pulls ReplayGain and MusicBrainz fields out of m,
// tolerating the handful of alternative key spellings different taggers
// use.
func extractReplayGainAndTags(m tag.Metadata) (trackGainDB, trackPeak, albumGainDB, albumPeak float64, albumID, releaseTrackID string) {
	raw := m.Raw()

	if v, ok := rawLookup(raw, "REPLAYGAIN_TRACK_GAIN", "replaygain_track_gain"); ok {
		if f, ok := parseGainDB(v); ok {
			trackGainDB = f
		}
	}
	if v, ok := rawLookup(raw, "REPLAYGAIN_TRACK_PEAK", "replaygain_track_peak"); ok {
		if f, ok := parsePeak(v); ok {
			trackPeak = f
		}
	}
	if v, ok := rawLookup(raw, "REPLAYGAIN_ALBUM_GAIN", "replaygain_album_gain"); ok {
		if f, ok := parseGainDB(v); ok {
			albumGainDB = f
		}
	}
	if v, ok := rawLookup(raw, "REPLAYGAIN_ALBUM_PEAK", "replaygain_album_peak"); ok {
		if f, ok := parsePeak(v); ok {
			albumPeak = f
		}
	}

	if v, ok := rawLookup(raw, "MUSICBRAINZ_ALBUMID", "MusicBrainz Album Id"); ok {
		albumID = v
	}
	if v, ok := rawLookup(raw, "MUSICBRAINZ_RELEASETRACKID", "MusicBrainz Release Track Id"); ok {
		releaseTrackID = v
	}

	return
}
