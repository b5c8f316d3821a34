package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/arung-agamani/wavecast/internal/ring"
)

// ffprobeFormat is the subset of `ffprobe -show_format -print_format json`
// output this loader needs.
type ffprobeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// demuxerDuration asks ffprobe for the container-reported duration, used in
// non-strict mode (spec.md §4.3: "return the demuxer's reported duration if
// present; otherwise fall back to strict").
func demuxerDuration(ctx context.Context, path string) (uint64, bool) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	var probe ffprobeFormat
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, false
	}
	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil || seconds <= 0 {
		return 0, false
	}
	return uint64(seconds + 0.5), true
}

// strictDuration fully decodes path to raw interleaved f32le PCM at the
// engine's output rate and counts frames, per spec.md §4.3: "open
// demuxer+decoder, decode all audio packets to count output frames...
// If the file produces any decode error or zero frames, fail." This also
// serves as the page-cache warmer spec.md §4.3 calls out. The frame count is
// rounded to the nearest second, per spec.md §4.3's "rounded Σ nb_samples ×
// time_base", matching demuxerDuration's rounding above.
func strictDuration(ctx context.Context, path string, sampleRate int) (uint64, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-i", path,
		"-f", "f32le",
		"-ac", "2",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-vn",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("strict scan %q: stdout pipe: %w", path, err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("strict scan %q: start ffmpeg: %w", path, err)
	}

	n, copyErr := io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if waitErr != nil {
		return 0, fmt.Errorf("strict scan %q: ffmpeg: %w (stderr: %s)", path, waitErr, stderr.String())
	}
	if copyErr != nil {
		return 0, fmt.Errorf("strict scan %q: read pcm: %w", path, copyErr)
	}

	frames := uint64(n) / uint64(ring.BytesPerFrame)
	if frames == 0 {
		return 0, fmt.Errorf("strict scan %q: decoded zero frames", path)
	}
	return (frames + uint64(sampleRate)/2) / uint64(sampleRate), nil
}

// compareDurations warns when the strict scan and the demuxer-reported
// duration disagree by more than 1 second (spec.md §4.3).
func compareDurations(strict, reported uint64, path string) {
	diff := int64(strict) - int64(reported)
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		slog.Warn("strict decode duration disagrees with demuxer metadata",
			"path", path, "strict_seconds", strict, "reported_seconds", reported)
	}
}
