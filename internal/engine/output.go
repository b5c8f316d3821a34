package engine

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/arung-agamani/wavecast/internal/ring"
)

// beginStateFade starts a 2-second linear state-fade toward target
// (spec.md §4.7 step 3 / §4.8). target is Playing when ramping up out of
// RESUMING, Paused when ramping down out of PAUSING.
func (e *Engine) beginStateFade(target State) {
	frames := int(stateFadeSeconds * float64(e.sampleRate))
	gain, slope := 0.0, 1.0/(stateFadeSeconds*float64(e.sampleRate))
	if target == Paused {
		gain, slope = 1.0, -slope
	}
	e.stateFade = stateFade{
		active:      true,
		target:      target,
		gain:        gain,
		slope:       slope,
		sampleRate:  e.sampleRate,
		framesTotal: frames,
	}
}

// OutputCallback implements spec.md §4.7: invoked by the audio server's
// real-time thread with a writable buffer and a requested frame count; it
// never blocks, never allocates beyond what the caller already provided,
// and never holds a long-lived lock.
func (e *Engine) OutputCallback(out []byte, framesRequested int) (framesWritten int) {
	state := e.state.load()

	if state == Stopping {
		return 0
	}

	needed := framesRequested * ring.BytesPerFrame
	if state == Paused || state == Stopped {
		clear(out[:needed])
		return framesRequested
	}

	if (state == Pausing || state == Resuming) && !e.stateFade.active {
		target := Playing
		if state == Pausing {
			target = Paused
		}
		e.beginStateFade(target)
	}

	if e.ring.Readable() < needed {
		if state == Playing {
			slog.Warn("ring underrun", "needed", needed, "available", e.ring.Readable())
		}
		clear(out[:needed])
		return framesRequested
	}

	n := e.ring.Read(out[:needed])
	post(e.spaceAvailable)
	if n < needed {
		clear(out[n:needed])
	}

	if e.stateFade.active {
		e.applyStateFade(out[:needed])
	}

	return framesRequested
}

// applyStateFade multiplies each frame in buf by the current state-fade
// gain, advancing the ramp and completing the PAUSING->PAUSED or
// RESUMING->PLAYING transition once its sample budget is exhausted
// (spec.md §4.7 step 6, §4.8).
func (e *Engine) applyStateFade(buf []byte) {
	sf := &e.stateFade
	frames := len(buf) / ring.BytesPerFrame

	for i := 0; i < frames; i++ {
		g := sf.gain
		if g < 0 {
			g = 0
		}
		if g > 1 {
			g = 1
		}
		off := i * ring.BytesPerFrame
		for ch := 0; ch < 2; ch++ {
			o := off + ch*4
			bits := binary.LittleEndian.Uint32(buf[o : o+4])
			v := math.Float32frombits(bits)
			v = float32(float64(v) * g)
			binary.LittleEndian.PutUint32(buf[o:o+4], math.Float32bits(v))
		}

		sf.gain += sf.slope
		sf.framesDone++
		if sf.framesDone >= sf.framesTotal {
			sf.active = false
			switch sf.target {
			case Paused:
				e.state.store(Paused)
			case Playing:
				e.state.store(Playing)
			}
			break
		}
	}
}
