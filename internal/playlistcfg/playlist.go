package playlistcfg

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/arung-agamani/wavecast/internal/reload"
)

// Playlist is a per-playlist ordered list of absolute file paths with a
// rotating cursor and optional shuffle (spec.md §3). It reloads its source
// file when the file's mtime changes (spec.md §4.2 step 1).
//
// spec.md §9 DESIGN NOTES calls out "anonymous struct sharing
// (IntermediatePlaylist extends Playlist)" for replacement by explicit
// composition; IntermediatePlaylist below holds a *Playlist field rather
// than embedding one, and callers pass that field to the functions here.
type Playlist struct {
	mu sync.Mutex

	SourcePath string
	Items      []string
	Shuffle    bool
	Fade       *FadeInfo

	cursor int
	guard  *reload.Guard
}

// NewPlaylist creates a Playlist directly from an in-memory item list,
// without an on-disk source. Such a playlist is never reloaded. The config
// loader does not use it (every configured playlist comes from Load); the
// tests do.
func NewPlaylist(items []string, shuffle bool, fade *FadeInfo) *Playlist {
	p := &Playlist{Items: append([]string(nil), items...), Shuffle: shuffle, Fade: fade}
	if shuffle {
		p.shuffleLocked()
	}
	return p
}

// Load parses sourcePath (m3u or pls, by extension) and returns a ready
// Playlist. An empty resulting item list is a failure (spec.md §6).
func Load(sourcePath string, shuffle bool, fade *FadeInfo) (*Playlist, error) {
	items, mtime, err := parseAndStat(sourcePath)
	if err != nil {
		return nil, err
	}
	p := &Playlist{
		SourcePath: sourcePath,
		Items:      items,
		Shuffle:    shuffle,
		Fade:       fade,
		guard:      reload.NewGuard(sourcePath, mtime),
	}
	if shuffle {
		p.shuffleLocked()
	}
	return p, nil
}

// ReloadIfChanged re-parses the playlist file if its mtime changed since the
// last load. Failure is non-fatal: the previous item list remains in use and
// the error is returned for the caller to log (spec.md §7
// PLAYLIST_RELOAD_FAILED policy).
func (p *Playlist) ReloadIfChanged() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SourcePath == "" {
		return nil
	}

	return p.guard.IfChanged(func() error {
		items, _, err := parseAndStat(p.SourcePath)
		if err != nil {
			return err
		}
		p.Items = items
		p.cursor = 0
		if p.Shuffle {
			p.shuffleLocked()
		}
		return nil
	})
}

// shuffleLocked applies a Durstenfeld/Fisher-Yates shuffle to Items. Caller
// must hold p.mu. No-op for len <= 1 (spec.md §4.2).
func (p *Playlist) shuffleLocked() {
	if len(p.Items) <= 1 {
		return
	}
	rand.Shuffle(len(p.Items), func(i, j int) {
		p.Items[i], p.Items[j] = p.Items[j], p.Items[i]
	})
}

// NextReadablePath scans forward from the cursor for the first path that
// passes a readability check, advances the cursor past it, and returns it.
// Wraps and (if Shuffle) re-shuffles when the cursor reaches the end, per
// spec.md §4.2 steps 2-3. Returns false if no item in the remaining list is
// readable.
func (p *Playlist) NextReadablePath() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.Items) == 0 {
		return "", false
	}

	start := p.cursor
	for i := 0; i < len(p.Items); i++ {
		idx := (start + i) % len(p.Items)
		path := p.Items[idx]
		if !pathIsReadableRegularFile(path) {
			slog.Warn("skipping unreadable playlist entry", "path", path)
			continue
		}
		p.advanceCursorLocked(idx)
		return path, true
	}
	return "", false
}

// advanceCursorLocked sets the cursor to just past servedIdx, wrapping to 0
// and re-shuffling if enabled when the list is exhausted. Caller holds p.mu.
func (p *Playlist) advanceCursorLocked(servedIdx int) {
	next := servedIdx + 1
	if next >= len(p.Items) {
		next = 0
		if p.Shuffle {
			p.shuffleLocked()
		}
	}
	p.cursor = next
}

// Len returns the number of items currently in the playlist.
func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Items)
}
