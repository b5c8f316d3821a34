// Package playlistcfg models playlists, intermediate ("burst") playlists and
// their fade parameters (spec.md §3), plus the m3u/pls playlist file readers
// and the shuffle/cursor/mtime-reload behavior of spec.md §4.2.
package playlistcfg

import "fmt"

// maxFadeSeconds is the schema-validation cap on fade durations (spec.md §3:
// "Schema validation caps durations to 10 s").
const maxFadeSeconds = 10.0

// FadeInfo carries the per-playlist fade-in/fade-out parameters applied by
// the decode worker (spec.md §3, §4.4).
type FadeInfo struct {
	FadeInSecs  float64
	FadeOutSecs float64
	MinLevel    float64
	MaxLevel    float64
}

// Validate enforces the schema constraints from spec.md §6: durations in
// 0..10s, levels in 0.0..1.0. Per the newer-branch semantics noted in
// spec.md §9 (the cfg_validate_against_schema open question), a validation
// failure returns a non-nil error; nothing is silently clamped here except
// what spec.md itself asks to clamp (state fades, §4.7 — not this).
func (f FadeInfo) Validate() error {
	if f.FadeInSecs < 0 || f.FadeInSecs > maxFadeSeconds {
		return fmt.Errorf("fadein duration %.2fs out of range [0,%g]", f.FadeInSecs, maxFadeSeconds)
	}
	if f.FadeOutSecs < 0 || f.FadeOutSecs > maxFadeSeconds {
		return fmt.Errorf("fadeout duration %.2fs out of range [0,%g]", f.FadeOutSecs, maxFadeSeconds)
	}
	if f.MinLevel < 0 || f.MinLevel > 1 {
		return fmt.Errorf("min level %.3f out of range [0,1]", f.MinLevel)
	}
	if f.MaxLevel < 0 || f.MaxLevel > 1 {
		return fmt.Errorf("max level %.3f out of range [0,1]", f.MaxLevel)
	}
	return nil
}
