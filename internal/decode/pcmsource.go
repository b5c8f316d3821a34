package decode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/arung-agamani/wavecast/internal/ring"
)

// pcmSource is the decode worker's view of "demuxer + codec + resampler"
// collapsed into one opaque handle (spec.md §9 DESIGN NOTES sanctions
// wrapping native libs behind such a handle; here the handle is an ffmpeg
// subprocess rather than a linked codec library, matching the teacher's
// own internal/ffmpeg.Encoder.Stream pattern). Reading from it yields
// already-resampled interleaved f32le frames at the engine's output rate.
type pcmSource interface {
	// readFrames reads up to len(buf)/BytesPerFrame whole frames into buf,
	// returning the number of frames read. Returns io.EOF once the
	// underlying stream is exhausted.
	readFrames(buf []byte) (framesRead int, err error)
	close() error
}

// ffmpegSource is the production pcmSource: an ffmpeg subprocess that
// demuxes, decodes, and resamples path to stereo/sampleRate/f32le on its
// stdout.
type ffmpegSource struct {
	cancel context.CancelFunc
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
}

func openFfmpegSource(ctx context.Context, path string, sampleRate int) (*ffmpegSource, error) {
	cctx, cancel := context.WithCancel(ctx)

	cmd := exec.CommandContext(cctx, "ffmpeg",
		"-v", "error",
		"-i", path,
		"-f", "f32le",
		"-ac", "2",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-vn",
		"pipe:1",
	)

	s := &ffmpegSource{cancel: cancel, cmd: cmd}
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("decode %q: stdout pipe: %w", path, err)
	}
	s.stdout = stdout

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("decode %q: start ffmpeg: %w", path, err)
	}
	return s, nil
}

func (s *ffmpegSource) readFrames(buf []byte) (int, error) {
	usable := (len(buf) / ring.BytesPerFrame) * ring.BytesPerFrame
	n, err := io.ReadFull(s.stdout, buf[:usable])

	// io.ReadFull on a short final read returns ErrUnexpectedEOF; round
	// down to whole frames and treat that as a normal EOF rather than an
	// error (the tail of a file need not land on our buffer boundary).
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	frames := n / ring.BytesPerFrame
	if err == io.EOF && frames == 0 {
		return 0, io.EOF
	}
	if err != nil && err != io.EOF {
		return frames, fmt.Errorf("decode: read pcm: %w", err)
	}
	return frames, err
}

func (s *ffmpegSource) close() error {
	s.cancel()
	err := s.cmd.Wait()
	if s.stderr.Len() > 0 {
		slog.Debug("ffmpeg decode stderr", "output", s.stderr.String())
	}
	return err
}
