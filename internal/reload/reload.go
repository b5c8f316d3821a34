// Package reload implements the shared "reparse if the backing file's mtime
// has advanced, otherwise no-op; on parse failure keep the previous value
// and return the error for the caller to log" policy spec.md §7 requires
// independently for both the config document (§4.1 step 1,
// CONFIG_RELOAD_FAILED) and playlist files (§4.2 step 1,
// PLAYLIST_RELOAD_FAILED).
package reload

import (
	"os"
	"time"
)

// Guard tracks the last-seen mtime of a single file. It is not safe for
// concurrent use on its own; callers hold their own lock around IfChanged
// the same way they already do around the rest of their reloadable state.
type Guard struct {
	path      string
	lastMtime time.Time
}

// NewGuard creates a Guard starting from an already-known mtime (the one
// observed at initial load).
func NewGuard(path string, lastMtime time.Time) *Guard {
	return &Guard{path: path, lastMtime: lastMtime}
}

// IfChanged stats the guarded path. If its mtime has not advanced since the
// last successful reparse, it returns nil without calling reparse. Otherwise
// it calls reparse; on success the new mtime is committed, on failure the
// guard's mtime is left untouched so the next check retries the reload.
func (g *Guard) IfChanged(reparse func() error) error {
	fi, err := os.Stat(g.path)
	if err != nil {
		return err
	}
	if !fi.ModTime().After(g.lastMtime) {
		return nil
	}
	if err := reparse(); err != nil {
		return err
	}
	g.lastMtime = fi.ModTime()
	return nil
}
