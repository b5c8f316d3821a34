package engine

import "sync/atomic"

// State is one of the engine's lifecycle states (spec.md §4.8).
type State int32

const (
	Stopped State = iota
	Playing
	Pausing
	Paused
	Resuming
	Stopping
	Error
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "STOPPED"
	case Playing:
		return "PLAYING"
	case Pausing:
		return "PAUSING"
	case Paused:
		return "PAUSED"
	case Resuming:
		return "RESUMING"
	case Stopping:
		return "STOPPING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// stateWord is a single atomic word holding the engine's state, read on
// the real-time output thread (spec.md §4.7: "never acquires long-held
// locks") and written from the signal/control path. Grounded on the
// teacher's atomic.Value usage for its hot-path currentTrack field.
type stateWord struct {
	v atomic.Int32
}

func (w *stateWord) load() State {
	return State(w.v.Load())
}

func (w *stateWord) store(s State) {
	w.v.Store(int32(s))
}
