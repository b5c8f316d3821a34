package playlistcfg

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// parseAndStat reads and parses the playlist file at path (m3u or pls,
// selected by extension per spec.md §6), returning the ordered item list and
// the file's mtime at the time it was read. An empty resulting list is a
// failure.
func parseAndStat(path string) ([]string, time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat playlist %q: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("open playlist %q: %w", path, err)
	}
	defer f.Close()

	var items []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pls":
		items, err = parsePLS(f)
	case ".m3u", ".m3u8":
		items, err = parseM3U(f)
	default:
		return nil, time.Time{}, fmt.Errorf("unrecognized playlist extension: %q", path)
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(items) == 0 {
		return nil, time.Time{}, fmt.Errorf("playlist %q produced no usable items", path)
	}
	return items, fi.ModTime(), nil
}

// parsePLS reads a .pls playlist. The first non-empty line must be
// "[playlist]"; subsequent "File=" lines each contribute one path.
func parsePLS(f *os.File) ([]string, error) {
	scanner := bufio.NewScanner(f)

	sawHeader := false
	var items []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sawHeader {
			if !strings.EqualFold(line, "[playlist]") {
				return nil, fmt.Errorf("pls file missing [playlist] header")
			}
			sawHeader = true
			continue
		}
		if !strings.HasPrefix(line, "File") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			slog.Warn("rejecting pls line without '='", "line", line)
			continue
		}
		path := strings.TrimSpace(line[idx+1:])
		if path != "" {
			items = append(items, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// parseM3U reads a .m3u/.m3u8 playlist: lines starting with '#' are ignored,
// all other non-empty lines are paths.
func parseM3U(f *os.File) ([]string, error) {
	scanner := bufio.NewScanner(f)

	var items []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
