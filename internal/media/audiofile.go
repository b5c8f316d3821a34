// Package media implements the media loader (spec.md §4.3): given a file
// path, it extracts tags (via dhowden/tag), ReplayGain and MusicBrainz
// fields, and a duration — either trusting the demuxer's reported value or,
// in strict mode, fully decoding the file via ffmpeg to count frames.
package media

import "github.com/arung-agamani/wavecast/internal/playlistcfg"

// AudioFile is the immutable-after-load descriptor produced by the media
// loader (spec.md §3).
type AudioFile struct {
	Path           string
	Artist         string
	Album          string
	Title          string
	AlbumID        string
	ReleaseTrackID string

	AlbumGainDB float64
	AlbumPeak   float64
	TrackGainDB float64
	TrackPeak   float64

	DurationSeconds uint64
	ZoneName        string
	Fade            *playlistcfg.FadeInfo
}

// ReplayGainLinear computes the linear gain and its cap per spec.md §3:
// "min(10^(track_gain_db/20), 1/track_peak) when both present; otherwise
// missing components default to 1.0."
func (a *AudioFile) ReplayGainLinear() (gain, gainCap float64) {
	return replayGainLinear(a.TrackGainDB, a.TrackPeak)
}
