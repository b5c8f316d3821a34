package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/arung-agamani/wavecast/internal/decode"
	"github.com/arung-agamani/wavecast/internal/ring"
)

const periodBytes = decode.Period * ring.BytesPerFrame

// decodeWorker implements spec.md §4.4's worker loop.
func (e *Engine) decodeWorker(ctx context.Context) {
	defer e.wg.Done()

	select {
	case <-e.decoderGo:
	case <-e.stop:
		return
	case <-ctx.Done():
		return
	}

	periodBuf := make([]byte, periodBytes)

	for e.state.load() != Stopping {
		if e.ring.Writable() < periodBytes {
			select {
			case <-e.spaceAvailable:
			case <-e.stop:
				return
			case <-ctx.Done():
				return
			}
			continue
		}

		e.fileMu.Lock()
		produced := e.extractWithSwap(periodBuf)
		e.fileMu.Unlock()

		if produced > 0 {
			n := e.ring.Write(periodBuf[:produced*ring.BytesPerFrame])
			if n < produced*ring.BytesPerFrame {
				slog.Warn("ring overrun: wrote fewer bytes than produced", "wrote", n, "expected", produced*ring.BytesPerFrame)
			}
		}

		if produced == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// extractWithSwap runs extract_frames against current, swapping in next
// when current runs dry mid-period (spec.md §4.4 steps: "If the result is
// less than a full period and next is LOADED... destroy current, move
// next into current, signal the schedule worker, finish the period").
// Caller holds e.fileMu.
func (e *Engine) extractWithSwap(periodBuf []byte) int {
	if e.current == nil {
		return 0
	}

	produced, err := e.current.FillPeriod(periodBuf, decode.Period)
	if err != nil {
		slog.Error("decode error", "error", err)
	}

	if produced < decode.Period && e.next != nil {
		if drift := e.current.Drift(); drift > 100 || drift < -100 {
			slog.Warn("track ended with excessive sample drift", "drift", drift)
		}

		finished := e.current
		e.current = e.next
		e.next = nil
		e.currentStartedAt = time.Now()
		e.current.Activate()
		go func() {
			if err := finished.Close(); err != nil {
				slog.Debug("decoder teardown", "error", err)
			}
		}()

		post(e.schedulerGo)

		more, err := e.current.FillPeriod(periodBuf[produced*ring.BytesPerFrame:], decode.Period-produced)
		if err != nil {
			slog.Error("decode error", "error", err)
		}
		produced += more
	}

	return produced
}
