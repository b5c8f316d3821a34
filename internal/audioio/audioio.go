// Package audioio binds the engine's real-time output callback (spec.md
// §4.7/§6) to a real sound device via PortAudio. Grounded on
// doismellburning-samoyed's go.mod, which carries gordonklaus/portaudio as a
// declared but unused dependency; this package is the first thing in the
// retrieval pack to actually call it.
package audioio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const (
	// channels is fixed per spec.md §6: "stereo, 48 kHz, 32-bit float,
	// interleaved, channel order L,R".
	channels = 2
)

// Callback is the shape of Engine.OutputCallback: fill out with up to
// framesRequested frames of interleaved float32 samples and report how many
// frames were actually written.
type Callback func(out []byte, framesRequested int) (framesWritten int)

// Stream owns the PortAudio output stream and converts its float32 callback
// interface into the byte-buffer contract the engine's OutputCallback uses.
type Stream struct {
	stream     *portaudio.Stream
	sampleRate int
	fill       Callback
	byteBuf    []byte
}

// Open negotiates a stereo/48kHz/f32 output stream (spec.md §6: "negotiated
// at stream connect") and registers fill as the pull callback.
// framesPerBuffer matches the engine's decode period (internal/decode.Period)
// so the ring never has to serve a partial period under callback pressure.
// deviceName selects a PortAudio output device by name (internal/hostconfig's
// WAVECAST_OUTPUT_DEVICE); an empty deviceName opens the host's default
// output device.
func Open(sampleRate, framesPerBuffer int, deviceName string, fill Callback) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audioio: portaudio init: %w", err)
	}

	s := &Stream{
		sampleRate: sampleRate,
		fill:       fill,
		byteBuf:    make([]byte, framesPerBuffer*channels*4),
	}

	var stream *portaudio.Stream
	var err error
	if deviceName == "" {
		stream, err = portaudio.OpenDefaultStream(0, channels, float64(sampleRate), framesPerBuffer, s.paCallback)
	} else {
		stream, err = openNamedDeviceStream(deviceName, sampleRate, framesPerBuffer, s.paCallback)
	}
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audioio: open stream: %w", err)
	}
	s.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audioio: start stream: %w", err)
	}
	return s, nil
}

// openNamedDeviceStream looks up an output device by exact name and opens a
// stream against it, matching the format OpenDefaultStream negotiates.
func openNamedDeviceStream(deviceName string, sampleRate, framesPerBuffer int, callback func([]float32)) (*portaudio.Stream, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	var dev *portaudio.DeviceInfo
	for _, d := range devices {
		if d.Name == deviceName && d.MaxOutputChannels >= channels {
			dev = d
			break
		}
	}
	if dev == nil {
		return nil, fmt.Errorf("output device %q not found", deviceName)
	}

	params := portaudio.HighLatencyParameters(nil, dev)
	params.Output.Channels = channels
	params.SampleRate = float64(sampleRate)
	params.FramesPerBuffer = framesPerBuffer
	return portaudio.OpenStream(params, callback)
}

// paCallback is invoked on PortAudio's own real-time thread. It does not
// block: the injected fill (Engine.OutputCallback) reads the lock-free ring
// without waiting and fills silence when too little data is buffered.
func (s *Stream) paCallback(out []float32) {
	framesRequested := len(out) / channels
	needed := framesRequested * channels * 4
	if cap(s.byteBuf) < needed {
		s.byteBuf = make([]byte, needed)
	}
	buf := s.byteBuf[:needed]

	written := s.fill(buf, framesRequested)

	for i := 0; i < written*channels; i++ {
		out[i] = bytesToFloat32(buf[i*4 : i*4+4])
	}
	for i := written * channels; i < len(out); i++ {
		out[i] = 0
	}
}

// Close stops and tears down the stream (spec.md §4.8: "the output thread
// observes STOPPING on its next invocation and tears down the stream").
func (s *Stream) Close() error {
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audioio: close stream: %w", err)
	}
	return portaudio.Terminate()
}
