package media

import "math"

// replayGainLinear converts a ReplayGain track_gain_db/track_peak pair into
// the linear gain actually applied by the decode worker, per spec.md §3:
// "Replay gain in linear scale is min(10^(track_gain_db/20), 1/track_peak)
// when both are present; otherwise missing components default to 1.0."
// A zero value for either field means "absent" (spec.md §3 AudioFile note).
func replayGainLinear(gainDB, peak float64) (gain, gainCap float64) {
	gain = 1.0
	gainCap = 1.0
	if gainDB != 0 {
		gain = math.Pow(10, gainDB/20)
	}
	if peak > 0 {
		gainCap = 1 / peak
	}
	if gain > gainCap {
		gain = gainCap
	}
	return gain, gainCap
}
