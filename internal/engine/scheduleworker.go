package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/arung-agamani/wavecast/internal/decode"
)

// scheduleWorker implements spec.md §4.5: one-track-ahead pre-loading so
// the transition into the next track never stalls on a decode/strict-scan.
func (e *Engine) scheduleWorker(ctx context.Context) {
	defer e.wg.Done()

	schedTime := time.Now()

	first, err := e.loadContext(ctx, schedTime)
	if err != nil {
		slog.Error("scheduler: initial load failed, engine entering error state", "error", err)
		e.state.store(Error)
		return
	}
	first.Activate()

	e.fileMu.Lock()
	e.current = first
	e.currentStartedAt = time.Now()
	e.fileMu.Unlock()

	schedTime = schedTime.Add(time.Duration(first.Info().DurationSeconds) * time.Second)
	second, err := e.loadContext(ctx, schedTime)
	if err != nil {
		slog.Error("scheduler: second load failed, engine entering error state", "error", err)
		e.state.store(Error)
		return
	}

	e.fileMu.Lock()
	e.next = second
	e.fileMu.Unlock()
	e.publishSnapshot()

	post(e.decoderGo)

	for {
		e.fileMu.Lock()
		pendingNext := e.next
		e.fileMu.Unlock()
		var pendingDuration time.Duration
		if pendingNext != nil {
			pendingDuration = time.Duration(pendingNext.Info().DurationSeconds) * time.Second
		}

		select {
		case <-e.stop:
			return
		case <-ctx.Done():
			return
		case <-e.schedulerGo:
		}
		if e.state.load() == Stopping {
			return
		}

		schedTime = time.Now().Add(pendingDuration)
		fresh, err := e.loadContext(ctx, schedTime)
		if err != nil {
			slog.Error("scheduler: load failed, engine entering error state", "error", err)
			e.state.store(Error)
			return
		}

		e.fileMu.Lock()
		e.next = fresh
		e.fileMu.Unlock()
		e.publishSnapshot()

		post(e.decoderGo)
	}
}

// loadContext resolves the next AudioFile via the scheduler and opens a
// decoder for it.
func (e *Engine) loadContext(ctx context.Context, at time.Time) (*decode.Context, error) {
	af, err := e.scheduler.NextFor(ctx, at)
	if err != nil {
		return nil, err
	}
	dc := decode.NewContext(af, e.sampleRate)
	if err := dc.Open(ctx); err != nil {
		return nil, err
	}
	return dc, nil
}
