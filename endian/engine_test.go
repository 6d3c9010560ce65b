package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
	require.True(t, IsLittleEndian(GetLittleEndianEngine()))
	require.False(t, IsLittleEndian(GetBigEndianEngine()))
}

func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{0, -1.5, 255, math.Pi, -math.MaxFloat64, math.SmallestNonzeroFloat64}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		for _, v := range values {
			b := make([]byte, 8)
			PutFloat64(engine, b, v)
			require.Equal(t, v, Float64(engine, b))
		}
	}
}

func TestFloat64ByteOrder(t *testing.T) {
	le := make([]byte, 8)
	be := make([]byte, 8)
	PutFloat64(GetLittleEndianEngine(), le, 1.0)
	PutFloat64(GetBigEndianEngine(), be, 1.0)

	// 1.0 is 0x3FF0000000000000
	require.Equal(t, byte(0x3F), be[0])
	require.Equal(t, byte(0x3F), le[7])
}
