package audioio

import (
	"encoding/binary"
	"math"
)

// bytesToFloat32 decodes one little-endian f32 sample, matching the layout
// internal/decode produces (spec.md §6: "interleaved 32-bit floats").
func bytesToFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
