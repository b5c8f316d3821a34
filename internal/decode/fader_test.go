package decode

import (
	"math"
	"testing"

	"github.com/arung-agamani/wavecast/internal/playlistcfg"
)

func TestFadeInZeroSecsYieldsFullGainFromSampleZero(t *testing.T) {
	fade := &playlistcfg.FadeInfo{FadeInSecs: 0, MinLevel: 0, MaxLevel: 1}
	fs := newFaderSlopes(fade, 48000, 48000*10)
	if g := fs.gainAt(0, 48000*10); g != 1.0 {
		t.Fatalf("gain at frame 0 with fadein=0 = %v, want 1.0", g)
	}
}

func TestFadeInAtOrBeyondDurationIsIgnored(t *testing.T) {
	total := uint64(48000 * 5) // 5 second track
	fade := &playlistcfg.FadeInfo{FadeInSecs: 5, MinLevel: 0, MaxLevel: 1}
	fs := newFaderSlopes(fade, 48000, total)
	if fs.fadeInSlope != 0 {
		t.Fatalf("fadeInSlope = %v, want 0 when fadein_secs >= duration", fs.fadeInSlope)
	}
}

func TestFadeOutRampsToZeroAtTrackEnd(t *testing.T) {
	total := uint64(48000 * 10)
	fade := &playlistcfg.FadeInfo{FadeOutSecs: 2, MinLevel: 0, MaxLevel: 1}
	fs := newFaderSlopes(fade, 48000, total)

	g := fs.gainAt(total-1, total)
	if g < 0 || g > 1 {
		t.Fatalf("gain near track end = %v, want in [0,1]", g)
	}
	// At the very last frame the ramp should have fallen close to zero.
	lastGain := fs.gainAt(total-1, total)
	if lastGain > 0.01 {
		t.Fatalf("gain at final frame = %v, want near zero", lastGain)
	}
}

func TestFadeGainClampedToMinMax(t *testing.T) {
	fade := &playlistcfg.FadeInfo{FadeInSecs: 2, MinLevel: 0.1, MaxLevel: 0.9}
	fs := newFaderSlopes(fade, 48000, 48000*10)
	g := fs.gainAt(0, 48000*10)
	if g < 0.1 {
		t.Fatalf("gain %v below MinLevel 0.1", g)
	}
	gFull := fs.gainAt(48000*9, 48000*10) // well past fade-in
	if gFull > 0.9 {
		t.Fatalf("gain %v above MaxLevel 0.9", gFull)
	}
}

func TestApplyFrameGainScalesBothChannels(t *testing.T) {
	frame := make([]byte, 8)
	writeF32(frame[0:4], 1.0)
	writeF32(frame[4:8], -0.5)

	applyFrameGain(frame, 0.5)

	l := readF32(frame[0:4])
	r := readF32(frame[4:8])
	if math.Abs(float64(l)-0.5) > 1e-6 {
		t.Fatalf("left channel = %v, want 0.5", l)
	}
	if math.Abs(float64(r)-(-0.25)) > 1e-6 {
		t.Fatalf("right channel = %v, want -0.25", r)
	}
}

func writeF32(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func readF32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
