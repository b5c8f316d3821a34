package decode

import (
	"encoding/binary"
	"math"
)

// applyFrameGain scales an interleaved stereo f32le frame (8 bytes: L, R)
// in place by gain. Pure byte-level arithmetic so the gain stage never
// needs to reinterpret the ring's backing array as a []float32 (which
// would require an unsafe cast) — matches the teacher's preference for
// explicit byte-oriented I/O throughout internal/ffmpeg.
func applyFrameGain(frame []byte, gain float64) {
	for ch := 0; ch < 2; ch++ {
		off := ch * 4
		bits := binary.LittleEndian.Uint32(frame[off : off+4])
		v := math.Float32frombits(bits)
		v = float32(float64(v) * gain)
		binary.LittleEndian.PutUint32(frame[off:off+4], math.Float32bits(v))
	}
}
