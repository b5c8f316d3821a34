package playlistcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestParseM3USkipsCommentsAndBlankLines(t *testing.T) {
	path := writeTemp(t, "list.m3u", "#EXTM3U\n\n/music/a.flac\n# a comment\n/music/b.flac\n")
	items, _, err := parseAndStat(path)
	if err != nil {
		t.Fatalf("parseAndStat: %v", err)
	}
	want := []string{"/music/a.flac", "/music/b.flac"}
	if len(items) != len(want) {
		t.Fatalf("items = %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestParsePLSRequiresHeader(t *testing.T) {
	path := writeTemp(t, "list.pls", "File1=/music/a.flac\n")
	if _, _, err := parseAndStat(path); err == nil {
		t.Fatalf("expected error for pls file missing [playlist] header")
	}
}

func TestParsePLSRejectsLineWithoutEquals(t *testing.T) {
	path := writeTemp(t, "list.pls", "[playlist]\nFile1=/music/a.flac\nFile2\nFile3=/music/b.flac\n")
	items, _, err := parseAndStat(path)
	if err != nil {
		t.Fatalf("parseAndStat: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %v, want 2 entries (malformed line skipped)", items)
	}
}

func TestParseEmptyResultIsFailure(t *testing.T) {
	path := writeTemp(t, "list.m3u", "# just a comment\n\n")
	if _, _, err := parseAndStat(path); err == nil {
		t.Fatalf("expected error for playlist with no usable items")
	}
}

func TestParseUnrecognizedExtension(t *testing.T) {
	path := writeTemp(t, "list.txt", "/music/a.flac\n")
	if _, _, err := parseAndStat(path); err == nil {
		t.Fatalf("expected error for unrecognized playlist extension")
	}
}

func TestLoadAndReloadIfChanged(t *testing.T) {
	path := writeTemp(t, "list.m3u", "/music/a.flac\n/music/b.flac\n")
	p, err := Load(path, false, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	// No changes: ReloadIfChanged should be a no-op.
	if err := p.ReloadIfChanged(); err != nil {
		t.Fatalf("ReloadIfChanged (unchanged): %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() after no-op reload = %d, want 2", p.Len())
	}
}

func TestNextReadablePathSkipsMissingFiles(t *testing.T) {
	existing := writeTemp(t, "real.flac", "x")
	p := NewPlaylist([]string{"/does/not/exist.flac", existing}, false, nil)

	path, ok := p.NextReadablePath()
	if !ok {
		t.Fatalf("expected a readable path to be found")
	}
	if path != existing {
		t.Fatalf("path = %q, want %q (missing file should have been skipped)", path, existing)
	}
}

func TestNextReadablePathNoneReadable(t *testing.T) {
	p := NewPlaylist([]string{"/does/not/exist-a", "/does/not/exist-b"}, false, nil)
	if _, ok := p.NextReadablePath(); ok {
		t.Fatalf("expected no readable path to be found")
	}
}
