package playlistcfg

import "os"

// pathIsReadableRegularFile reports whether path exists, is a regular file,
// and is readable. spec.md §9 flags that the legacy branch of the original
// isRegularFile helper always returned true; the newer branch returns the
// actual result. This ports the newer (correct) semantics.
func pathIsReadableRegularFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
