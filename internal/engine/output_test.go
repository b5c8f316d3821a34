package engine

import (
	"testing"

	"github.com/arung-agamani/wavecast/internal/ring"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := &Engine{
		ring:           ring.New(48000 * ring.BytesPerFrame),
		sampleRate:     48000,
		decoderGo:      make(chan struct{}, 1),
		schedulerGo:    make(chan struct{}, 1),
		spaceAvailable: make(chan struct{}, 1),
		stop:           make(chan struct{}),
	}
	e.state.store(Stopped)
	return e
}

func TestOutputCallbackStoppedFillsSilence(t *testing.T) {
	e := newTestEngine(t)
	buf := make([]byte, 10*ring.BytesPerFrame)
	for i := range buf {
		buf[i] = 0xFF
	}
	n := e.OutputCallback(buf, 10)
	if n != 10 {
		t.Fatalf("framesWritten = %d, want 10", n)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0 (silence while stopped)", i, b)
		}
	}
}

func TestOutputCallbackStoppingReturnsZero(t *testing.T) {
	e := newTestEngine(t)
	e.state.store(Stopping)
	buf := make([]byte, 10*ring.BytesPerFrame)
	n := e.OutputCallback(buf, 10)
	if n != 0 {
		t.Fatalf("framesWritten = %d, want 0 while STOPPING", n)
	}
}

func TestOutputCallbackUnderrunFillsSilenceWhenPlaying(t *testing.T) {
	e := newTestEngine(t)
	e.state.store(Playing)
	buf := make([]byte, 10*ring.BytesPerFrame)
	for i := range buf {
		buf[i] = 0xAB
	}
	n := e.OutputCallback(buf, 10)
	if n != 10 {
		t.Fatalf("framesWritten = %d, want 10", n)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0 (silence on underrun)", i, b)
		}
	}
}

func TestOutputCallbackReadsAvailableDataAndSignalsSpace(t *testing.T) {
	e := newTestEngine(t)
	e.state.store(Playing)

	payload := make([]byte, 10*ring.BytesPerFrame)
	for i := range payload {
		payload[i] = byte(i + 1)
	}
	e.ring.Write(payload)

	buf := make([]byte, 10*ring.BytesPerFrame)
	n := e.OutputCallback(buf, 10)
	if n != 10 {
		t.Fatalf("framesWritten = %d, want 10", n)
	}
	for i := range buf {
		if buf[i] != payload[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], payload[i])
		}
	}

	select {
	case <-e.spaceAvailable:
	default:
		t.Fatalf("expected space_available to be signaled after a successful read")
	}
}

func TestStateFadeCompletesAndTransitions(t *testing.T) {
	e := newTestEngine(t)
	e.state.store(Resuming)
	e.sampleRate = 100 // shrink the 2s ramp to 200 frames for a fast test
	e.beginStateFade(Playing)

	payload := make([]byte, 300*ring.BytesPerFrame)
	for i := 0; i < len(payload); i += 4 {
		// encode 1.0 as f32le in every channel slot
		payload[i], payload[i+1], payload[i+2], payload[i+3] = 0, 0, 0x80, 0x3F
	}
	e.ring.Write(payload)

	buf := make([]byte, 300*ring.BytesPerFrame)
	e.OutputCallback(buf, 300)

	if e.state.load() != Playing {
		t.Fatalf("state = %s, want PLAYING after the ramp's frame budget is exhausted", e.state.load())
	}
}
