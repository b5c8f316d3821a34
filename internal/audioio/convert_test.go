package audioio

import (
	"encoding/binary"
	"math"
	"testing"
)

func f32Bytes(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func TestBytesToFloat32RoundTrips(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 0.5, -0.333} {
		got := bytesToFloat32(f32Bytes(v))
		if got != v {
			t.Fatalf("bytesToFloat32 round trip: got %v, want %v", got, v)
		}
	}
}

func TestPaCallbackFillsRequestedFramesAndZerosRest(t *testing.T) {
	const framesPerBuffer = 4
	s := &Stream{
		fill: func(buf []byte, framesRequested int) int {
			for i := 0; i < framesRequested*channels; i++ {
				copy(buf[i*4:i*4+4], f32Bytes(1))
			}
			return framesRequested - 1 // simulate an underrun of one frame
		},
		byteBuf: make([]byte, framesPerBuffer*channels*4),
	}

	out := make([]float32, framesPerBuffer*channels)
	s.paCallback(out)

	for i := 0; i < (framesPerBuffer-1)*channels; i++ {
		if out[i] != 1 {
			t.Fatalf("out[%d] = %v, want 1", i, out[i])
		}
	}
	for i := (framesPerBuffer - 1) * channels; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %v, want 0 (short-fill should be zeroed)", i, out[i])
		}
	}
}
