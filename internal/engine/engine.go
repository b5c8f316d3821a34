// Package engine wires the decode worker, schedule worker, audio ring, and
// output callback into the engine state machine of spec.md §4.8. Grounded
// on the teacher's internal/radio/stream.go Broadcaster loop, generalized
// from a single continuous ffmpeg stream into the current/next
// AudioFileContext swap model this spec requires.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arung-agamani/wavecast/internal/decode"
	"github.com/arung-agamani/wavecast/internal/media"
	"github.com/arung-agamani/wavecast/internal/ring"
	"github.com/arung-agamani/wavecast/internal/schedule"
)

// stateFadeSeconds is the pause/resume ramp duration (spec.md §4.7/§4.8:
// "a 2-second linear ramp").
const stateFadeSeconds = 2.0

// Snapshot is the immutable now-playing/next-up view read by the status
// endpoint. Per spec.md §9 DESIGN NOTES ("status snapshot copied under a
// mutex -> prefer an atomic swap of an immutable snapshot"), the engine
// publishes a new *Snapshot via atomic.Pointer on every track swap instead
// of letting the status endpoint lock engine-internal state.
type Snapshot struct {
	Current          *TrackInfo
	Next             *TrackInfo
	CurrentStartedAt time.Time
	GeneratedAt      time.Time
}

// TrackInfo is the subset of media.AudioFile the status endpoint exposes
// (spec.md §6).
type TrackInfo struct {
	Artist         string
	Album          string
	Title          string
	Path           string
	Zone           string
	DurationSecs   uint64
	AlbumID        string
	ReleaseTrackID string
}

func trackInfoFrom(af *media.AudioFile) *TrackInfo {
	if af == nil {
		return nil
	}
	return &TrackInfo{
		Artist:         af.Artist,
		Album:          af.Album,
		Title:          af.Title,
		Path:           af.Path,
		Zone:           af.ZoneName,
		DurationSecs:   af.DurationSeconds,
		AlbumID:        af.AlbumID,
		ReleaseTrackID: af.ReleaseTrackID,
	}
}

// Engine owns the decode/schedule worker pair, the output ring, and the
// state machine (spec.md §4.4-§4.8).
type Engine struct {
	scheduler  *schedule.Scheduler
	ring       *ring.Ring
	sampleRate int

	state stateWord

	fileMu           sync.Mutex
	current          *decode.Context
	next             *decode.Context
	currentStartedAt time.Time

	decoderGo      chan struct{}
	schedulerGo    chan struct{}
	spaceAvailable chan struct{}
	stop           chan struct{}
	stopOnce       sync.Once

	snapshot atomic.Pointer[Snapshot]

	stateFade stateFade

	wg sync.WaitGroup
}

// stateFade tracks an in-progress pause/resume ramp, owned exclusively by
// the output callback (spec.md §4.7 step 3/6).
type stateFade struct {
	active      bool
	target      State // Paused or Playing, whichever completing the ramp lands on
	gain        float64
	slope       float64 // positive when ramping up, negative when ramping down
	sampleRate  int
	framesTotal int
	framesDone  int
}

// New creates an Engine. ringSeconds sizes the audio ring (spec.md §4.6
// default: 4 seconds).
func New(sched *schedule.Scheduler, sampleRate, ringSeconds int) *Engine {
	capacity := ringSeconds * sampleRate * ring.BytesPerFrame
	r := ring.New(capacity)
	if err := r.LockMemory(); err != nil {
		slog.Warn("failed to page-lock ring memory", "error", err)
	}

	e := &Engine{
		scheduler:      sched,
		ring:           r,
		sampleRate:     sampleRate,
		decoderGo:      make(chan struct{}, 1),
		schedulerGo:    make(chan struct{}, 1),
		spaceAvailable: make(chan struct{}, 1),
		stop:           make(chan struct{}),
	}
	e.state.store(Stopped)
	e.snapshot.Store(&Snapshot{GeneratedAt: time.Now()})
	return e
}

func post(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	return e.state.load()
}

// Snapshot returns the most recently published now/next status snapshot.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Start transitions STOPPED -> RESUMING and launches the decode and
// schedule worker goroutines (spec.md §4.8: "STOPPED -> RESUMING on
// start()").
func (e *Engine) Start(ctx context.Context) {
	e.state.store(Resuming)
	e.beginStateFade(Playing)

	e.wg.Add(2)
	go e.scheduleWorker(ctx)
	go e.decodeWorker(ctx)
}

// Stop drives the engine to STOPPING and waits for both workers to join
// (spec.md §4.8: "Any state -> STOPPING on stop signal; STOPPING ->
// STOPPED once both worker threads have joined").
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.state.store(Stopping)
		close(e.stop)
		post(e.decoderGo)
		post(e.schedulerGo)
		post(e.spaceAvailable)
	})
	e.wg.Wait()
	e.state.store(Stopped)
}

// Pause requests a PLAYING -> PAUSING transition (spec.md §4.8).
func (e *Engine) Pause() {
	if e.state.load() == Playing {
		e.state.store(Pausing)
	}
}

// Resume requests a PAUSED -> RESUMING transition (spec.md §4.8).
func (e *Engine) Resume() {
	if e.state.load() == Paused {
		e.state.store(Resuming)
	}
}

func (e *Engine) publishSnapshot() {
	e.fileMu.Lock()
	var cur, nxt *media.AudioFile
	if e.current != nil {
		cur = e.current.Info()
	}
	if e.next != nil {
		nxt = e.next.Info()
	}
	startedAt := e.currentStartedAt
	e.fileMu.Unlock()

	e.snapshot.Store(&Snapshot{
		Current:          trackInfoFrom(cur),
		Next:             trackInfoFrom(nxt),
		CurrentStartedAt: startedAt,
		GeneratedAt:      time.Now(),
	})
}
