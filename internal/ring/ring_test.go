package ring

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(16 * BytesPerFrame)

	frame := make([]byte, 4*BytesPerFrame)
	for i := range frame {
		frame[i] = byte(i)
	}

	if n := r.Write(frame); n != len(frame) {
		t.Fatalf("Write() = %d, want %d", n, len(frame))
	}
	if got := r.Readable(); got != len(frame) {
		t.Fatalf("Readable() = %d, want %d", got, len(frame))
	}

	out := make([]byte, len(frame))
	if n := r.Read(out); n != len(frame) {
		t.Fatalf("Read() = %d, want %d", n, len(frame))
	}
	if !bytes.Equal(out, frame) {
		t.Fatalf("round trip mismatch: got %v, want %v", out, frame)
	}
	if r.Readable() != 0 {
		t.Fatalf("Readable() after full read = %d, want 0", r.Readable())
	}
}

func TestWriteStopsAtCapacity(t *testing.T) {
	r := New(4 * BytesPerFrame)

	big := make([]byte, 8*BytesPerFrame)
	n := r.Write(big)
	if n != 4*BytesPerFrame {
		t.Fatalf("Write() = %d, want %d (capacity-limited)", n, 4*BytesPerFrame)
	}
	if r.Writable() != 0 {
		t.Fatalf("Writable() = %d, want 0", r.Writable())
	}
}

func TestReadUnderrunReturnsShort(t *testing.T) {
	r := New(8 * BytesPerFrame)
	r.Write(make([]byte, 2*BytesPerFrame))

	out := make([]byte, 5*BytesPerFrame)
	n := r.Read(out)
	if n != 2*BytesPerFrame {
		t.Fatalf("Read() = %d, want %d (frame-aligned short read)", n, 2*BytesPerFrame)
	}
}

func TestWrapAround(t *testing.T) {
	r := New(4 * BytesPerFrame)

	// Fill, drain, refill repeatedly to exercise the wrap.
	for i := 0; i < 10; i++ {
		chunk := bytes.Repeat([]byte{byte(i)}, 3*BytesPerFrame)
		if n := r.Write(chunk); n != len(chunk) {
			t.Fatalf("iteration %d: Write() = %d, want %d", i, n, len(chunk))
		}
		out := make([]byte, len(chunk))
		if n := r.Read(out); n != len(chunk) {
			t.Fatalf("iteration %d: Read() = %d, want %d", i, n, len(chunk))
		}
		if !bytes.Equal(out, chunk) {
			t.Fatalf("iteration %d: data corrupted across wrap", i)
		}
	}
}

func TestCapacityRoundedToFrames(t *testing.T) {
	r := New(10)
	if r.Cap()%BytesPerFrame != 0 {
		t.Fatalf("Cap() = %d, not frame-aligned", r.Cap())
	}
}
