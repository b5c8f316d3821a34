package media

import (
	"math"
	"testing"
)

func TestReplayGainLinearBothPresent(t *testing.T) {
	gain, gainCap := replayGainLinear(-6.0, 0.9)
	wantCap := 1 / 0.9
	if math.Abs(gainCap-wantCap) > 1e-9 {
		t.Fatalf("gainCap = %v, want %v", gainCap, wantCap)
	}
	if gain > gainCap+1e-9 {
		t.Fatalf("applied gain %v exceeds cap %v", gain, gainCap)
	}
}

func TestReplayGainLinearAbsentDefaultsToOne(t *testing.T) {
	gain, gainCap := replayGainLinear(0, 0)
	if gain != 1.0 || gainCap != 1.0 {
		t.Fatalf("gain=%v gainCap=%v, want 1.0/1.0 when both absent", gain, gainCap)
	}
}

func TestReplayGainLinearNeverExceedsCapForAnyPositivePeak(t *testing.T) {
	for _, gainDB := range []float64{-20, -6, 0, 3, 12, 24} {
		for _, peak := range []float64{0.01, 0.5, 0.99, 1.0, 1.5} {
			gain, _ := replayGainLinear(gainDB, peak)
			cap := 1 / peak
			if gain > cap+1e-9 {
				t.Fatalf("gainDB=%v peak=%v: gain %v exceeds 1/peak %v", gainDB, peak, gain, cap)
			}
		}
	}
}

func TestRawLookupCaseInsensitive(t *testing.T) {
	raw := map[string]interface{}{
		"REPLAYGAIN_TRACK_GAIN": "-3.25 dB",
	}
	v, ok := rawLookup(raw, "replaygain_track_gain")
	if !ok || v != "-3.25 dB" {
		t.Fatalf("rawLookup case-insensitive failed: v=%q ok=%v", v, ok)
	}
}

func TestParseGainDBStripsUnit(t *testing.T) {
	f, ok := parseGainDB("-3.25 dB")
	if !ok || math.Abs(f-(-3.25)) > 1e-9 {
		t.Fatalf("parseGainDB = %v, %v, want -3.25, true", f, ok)
	}
}

func TestParsePeak(t *testing.T) {
	f, ok := parsePeak("0.987654")
	if !ok || math.Abs(f-0.987654) > 1e-9 {
		t.Fatalf("parsePeak = %v, %v, want 0.987654, true", f, ok)
	}
}
