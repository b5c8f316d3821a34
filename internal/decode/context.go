// Package decode implements the per-track half of the decode worker
// (spec.md §4.4): the AudioFileContext lifecycle, the
// ffmpeg-subprocess-backed pcmSource that stands in for
// demuxer+codec+resampler, and fade/ReplayGain gain application. The
// current/next swap worker loop lives in internal/engine (decodeworker.go).
package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/arung-agamani/wavecast/internal/media"
	"github.com/arung-agamani/wavecast/internal/ring"
)

// State is an AudioFileContext's lifecycle stage (spec.md §3 Lifecycles).
type State int

const (
	Empty State = iota
	Loaded
	Active
)

func (s State) String() string {
	switch s {
	case Empty:
		return "EMPTY"
	case Loaded:
		return "LOADED"
	case Active:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Context is a per-slot decoder instance: one for "current", one for
// "next" (spec.md §3 AudioFileContext).
type Context struct {
	mu sync.Mutex

	info  *media.AudioFile
	state State

	source pcmSource

	consumedFrames uint64
	totalFrames    uint64
	eofReached     bool

	replayGainLinear float64
	gainCap          float64
	fade             faderSlopes

	sampleRate int
}

// NewContext builds an empty context for af, deriving ReplayGain and fade
// slopes once up front (spec.md §3: "derived once from track_gain_db and
// track_peak"/"derived from FadeInfo and OUTPUT_SAMPLE_RATE").
func NewContext(af *media.AudioFile, sampleRate int) *Context {
	totalFrames := af.DurationSeconds * uint64(sampleRate)
	gain, gainCap := af.ReplayGainLinear()
	return &Context{
		info:             af,
		state:            Empty,
		totalFrames:      totalFrames,
		replayGainLinear: gain,
		gainCap:          gainCap,
		fade:             newFaderSlopes(af.Fade, sampleRate, totalFrames),
		sampleRate:       sampleRate,
	}
}

// Info returns the AudioFile this context wraps.
func (c *Context) Info() *media.AudioFile {
	return c.info
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts the underlying decoder, transitioning EMPTY -> LOADED.
func (c *Context) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Empty {
		return fmt.Errorf("decode: Open called in state %s", c.state)
	}
	src, err := openFfmpegSource(ctx, c.info.Path, c.sampleRate)
	if err != nil {
		return err
	}
	c.source = src
	c.state = Loaded
	return nil
}

// Activate transitions LOADED -> ACTIVE, marking that the decode worker
// has begun pulling samples from this slot.
func (c *Context) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Loaded {
		c.state = Active
	}
}

// Close tears down the decoder. A non-nil error from an in-progress decode
// that was deliberately aborted (track skip, engine shutdown) is expected
// and not logged as a failure by the caller.
func (c *Context) Close() error {
	c.mu.Lock()
	src := c.source
	c.source = nil
	c.state = Empty
	c.mu.Unlock()
	if src == nil {
		return nil
	}
	return src.close()
}

// EOFReached reports whether the underlying decoder has been exhausted.
func (c *Context) EOFReached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eofReached
}

// Drift returns samples_played - total_samples for the drift-logging
// invariant of spec.md §3. Ported as a plain value subtraction (spec.md
// §9 Open Question: the original's pointer-arithmetic form carried no
// semantic content beyond this).
func (c *Context) Drift() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(c.consumedFrames) - int64(c.totalFrames)
}

// FillPeriod implements extract_frames(ctx, out, frames_needed) ->
// frames_produced (spec.md §4.4). out must be at least
// framesNeeded*ring.BytesPerFrame bytes. The demuxer/codec/resampler
// pipeline steps of spec.md §4.4 steps 1-3 are delegated whole to the
// pcmSource (ffmpeg performs them out-of-process); this loop's job is
// pulling frames from it and applying per-frame gain (step 4) until
// framesNeeded is met or the source is exhausted.
func (c *Context) FillPeriod(out []byte, framesNeeded int) (framesProduced int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source == nil || c.eofReached {
		return 0, nil
	}

	raw := make([]byte, framesNeeded*ring.BytesPerFrame)
	n, readErr := c.source.readFrames(raw)
	if readErr != nil {
		if !errors.Is(readErr, io.EOF) {
			slog.Warn("decode error mid-playback", "path", c.info.Path, "error", readErr)
		}
		c.eofReached = true
	}

	for i := 0; i < n; i++ {
		gain := c.fade.gainAt(c.consumedFrames, c.totalFrames) * c.replayGainLinear
		applyFrameGain(raw[i*ring.BytesPerFrame:(i+1)*ring.BytesPerFrame], gain)
		c.consumedFrames++
	}

	copy(out, raw[:n*ring.BytesPerFrame])
	return n, nil
}
