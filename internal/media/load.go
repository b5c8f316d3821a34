package media

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arung-agamani/wavecast/internal/playlistcfg"
)

// OutputSampleRate is the engine's fixed output rate (spec.md §6: "stereo,
// 48 kHz, 32-bit float, interleaved").
const OutputSampleRate = 48000

// Load implements the media loader contract of spec.md §4.3:
// `load(path, zone_name, fade, strict) -> AudioFile or failure`.
func Load(ctx context.Context, path, zoneName string, fade *playlistcfg.FadeInfo, strict bool) (*AudioFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	ct, err := readTagsCached(abs)
	if err != nil {
		return nil, fmt.Errorf("media loader: read tags %q: %w", abs, err)
	}

	title := ct.title
	if title == "" {
		title = filepath.Base(abs)
	}

	af := &AudioFile{
		Path:           abs,
		Artist:         ct.artist,
		Album:          ct.album,
		Title:          title,
		AlbumID:        ct.albumID,
		ReleaseTrackID: ct.releaseTrackID,
		AlbumGainDB:    ct.albumGainDB,
		AlbumPeak:      ct.albumPeak,
		TrackGainDB:    ct.trackGainDB,
		TrackPeak:      ct.trackPeak,
		ZoneName:       zoneName,
		Fade:           fade,
	}

	reported, haveReported := demuxerDuration(ctx, abs)

	if !strict && haveReported {
		af.DurationSeconds = reported
		return af, nil
	}

	strictSeconds, err := strictDuration(ctx, abs, OutputSampleRate)
	if err != nil {
		return nil, fmt.Errorf("media loader: %w", err)
	}
	if haveReported {
		compareDurations(strictSeconds, reported, abs)
	}
	af.DurationSeconds = strictSeconds
	return af, nil
}
