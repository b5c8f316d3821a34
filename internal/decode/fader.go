package decode

import "github.com/arung-agamani/wavecast/internal/playlistcfg"

// Period is the decode worker's per-iteration frame count (spec.md §4.4:
// "a period of 2048 frames (stereo)").
const Period = 2048

// faderSlopes derives the linear fade-in/fade-out ramp slopes from a
// playlist's FadeInfo and the track's frame count, per spec.md §3:
// "fadein_slope = 1 / (SR * fadein_secs) if 0 < fadein_secs < duration;
// similarly fadeout_slope; zero disables that ramp."
type faderSlopes struct {
	fadeInSlope   float64
	fadeOutSlope  float64
	fadeInFrames  uint64
	fadeOutFrames uint64
	minLevel      float64
	maxLevel      float64
}

func newFaderSlopes(fade *playlistcfg.FadeInfo, sampleRate int, totalFrames uint64) faderSlopes {
	fs := faderSlopes{minLevel: 0, maxLevel: 1}
	if fade == nil {
		return fs
	}
	fs.minLevel = fade.MinLevel
	fs.maxLevel = fade.MaxLevel

	durationSecs := float64(totalFrames) / float64(sampleRate)

	if fade.FadeInSecs > 0 && fade.FadeInSecs < durationSecs {
		fs.fadeInSlope = 1.0 / (float64(sampleRate) * fade.FadeInSecs)
		fs.fadeInFrames = uint64(fade.FadeInSecs * float64(sampleRate))
	}
	if fade.FadeOutSecs > 0 && fade.FadeOutSecs < durationSecs {
		fs.fadeOutSlope = 1.0 / (float64(sampleRate) * fade.FadeOutSecs)
		fs.fadeOutFrames = uint64(fade.FadeOutSecs * float64(sampleRate))
	}
	return fs
}

// gainAt computes fader_gain for framesPlayed out of totalFrames, per
// spec.md §4.4 step 4. Clamped to [minLevel, maxLevel] per spec.md §7's
// STATE_FADE_VIOLATION policy ("clamp to [0,1]").
func (fs faderSlopes) gainAt(framesPlayed, totalFrames uint64) float64 {
	gain := 1.0

	if fs.fadeInSlope > 0 && framesPlayed < fs.fadeInFrames {
		gain = fs.fadeInSlope * float64(framesPlayed)
	} else if fs.fadeOutSlope > 0 && totalFrames-framesPlayed < fs.fadeOutFrames {
		remaining := uint64(0)
		if totalFrames > framesPlayed {
			remaining = totalFrames - framesPlayed
		}
		gain = fs.fadeOutSlope * float64(remaining)
	}

	if gain < fs.minLevel {
		gain = fs.minLevel
	}
	if gain > fs.maxLevel {
		gain = fs.maxLevel
	}
	return gain
}
