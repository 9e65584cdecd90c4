package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeFrames interprets a generated buffer as float32-LE stereo
// frames and returns the left-channel samples.
func decodeFrames(t *testing.T, buf []byte) []float64 {
	t.Helper()
	require.Zero(t, len(buf)%8, "buffers hold whole stereo float32 frames")
	out := make([]float64, 0, len(buf)/8)
	for i := 0; i+8 <= len(buf); i += 8 {
		bits := binary.LittleEndian.Uint32(buf[i:])
		out = append(out, float64(math.Float32frombits(bits)))
	}
	return out
}

func TestGenerators(t *testing.T) {
	tests := []struct {
		name string
		gen  func() []byte
	}{
		{name: "rotate", gen: genRotate},
		{name: "lock", gen: genLock},
		{name: "line clear", gen: genLineClear},
		{name: "game over", gen: genGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := decodeFrames(t, tt.gen())
			require.NotEmpty(t, samples)

			peak := 0.0
			for _, s := range samples {
				require.LessOrEqual(t, math.Abs(s), 1.0, "saturation keeps samples in range")
				if math.Abs(s) > peak {
					peak = math.Abs(s)
				}
			}
			assert.Greater(t, peak, 0.01, "the cue is audible")
		})
	}
}

func TestAdsr(t *testing.T) {
	assert.Zero(t, adsr(0, 0.1, 0.2, 0.5, 0.2))
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9, "attack peaks at full level")
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-9, "sustain plateau")
	assert.InDelta(t, 0.0, adsr(1.0, 0.1, 0.2, 0.5, 0.2), 1e-9, "release fades to silence")
}

func TestSoftSat(t *testing.T) {
	assert.LessOrEqual(t, softSat(5), 1.0)
	assert.GreaterOrEqual(t, softSat(-5), -1.0)
	assert.InDelta(t, 0.0, softSat(0), 1e-12)
}

func TestNilSystemIsSilent(t *testing.T) {
	var s *System
	assert.NotPanics(t, func() {
		s.Rotate()
		s.Lock()
		s.LineClear()
		s.GameOver()
	})
}
