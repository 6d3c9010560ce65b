package section

import (
	"testing"

	"github.com/arloliu/vola/endian"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/stretchr/testify/require"
)

func sampleHeader() *Header {
	h := NewHeader(8)
	h.PayloadWidth = 3
	h.Min = [3]float64{-1.5, 0, 2}
	h.Max = [3]float64{10, 20.25, 30}
	h.OccupiedCount = 12345
	h.BodyLength = 4096
	h.Checksum = 0xDEADBEEFCAFEF00D
	h.Flag.SetDensity(format.DensityDense)
	h.Flag.SetAttributeKind(format.AttributeBits)
	h.Flag.SetCompressionType(format.CompressionZstd)

	return h
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(5)

	require.Equal(t, uint8(5), h.Depth)
	require.Equal(t, uint64(32), h.CellsPerAxis())
	require.True(t, h.Flag.IsLittleEndian())
	require.Equal(t, format.DensitySparse, h.Flag.Density())
	require.Equal(t, format.CompressionNone, h.Flag.CompressionType())
	require.NoError(t, h.Validate())
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		name := "little endian"
		if big {
			name = "big endian"
		}
		t.Run(name, func(t *testing.T) {
			original := sampleHeader()
			require.NoError(t, original.SetCRS("EPSG:4326"))
			if big {
				original.Flag.WithBigEndian()
			}

			data := original.Bytes()
			require.Len(t, data, HeaderSize)

			parsed, err := ParseHeader(data)
			require.NoError(t, err)
			require.Equal(t, *original, parsed)
		})
	}
}

func TestHeader_OptionsAlwaysLittleEndian(t *testing.T) {
	h := sampleHeader()
	h.Flag.WithBigEndian()
	data := h.Bytes()

	require.Equal(t, byte(h.Flag.Options), data[0])
	require.Equal(t, byte(h.Flag.Options>>8), data[1])
	// payload width is written with the selected engine
	require.Equal(t, []byte{0x00, 0x03}, data[PayloadWidthOffset:ReservedOffset])
}

func TestHeader_FieldOffsets(t *testing.T) {
	h := sampleHeader()
	data := h.Bytes()
	engine := endian.GetLittleEndianEngine()

	require.Equal(t, byte(8), data[DepthOffset])
	require.Equal(t, byte(format.CompressionZstd), data[CompressionOffset])
	require.InDelta(t, -1.5, endian.Float64(engine, data[BoxMinOffset:]), 0)
	require.InDelta(t, 30.0, endian.Float64(engine, data[BoxMaxOffset+16:]), 0)
	require.Equal(t, uint64(12345), engine.Uint64(data[OccupiedOffset:]))
	require.Equal(t, uint64(0xDEADBEEFCAFEF00D), engine.Uint64(data[ChecksumOffset:]))
}

func TestHeader_Parse_Errors(t *testing.T) {
	t.Run("short input", func(t *testing.T) {
		_, err := ParseHeader([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		h := &Header{}
		require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[1] = 0x00
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("reserved bit", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[0] |= ReservedBitsMask
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("unknown compression", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[CompressionOffset] = 0x09
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("dense depth too large", func(t *testing.T) {
		h := sampleHeader()
		h.Depth = MaxDenseDepth + 1
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidDepth)

		h.Flag.SetDensity(format.DensitySparse)
		_, err = ParseHeader(h.Bytes())
		require.NoError(t, err)
	})

	t.Run("zero depth", func(t *testing.T) {
		h := sampleHeader()
		h.Depth = 0
		require.ErrorIs(t, h.Validate(), errs.ErrInvalidDepth)
	})

	t.Run("inverted box", func(t *testing.T) {
		h := sampleHeader()
		h.Min[1] = 100
		require.ErrorIs(t, h.Validate(), errs.ErrInvalidBoundingBox)
	})
}

func TestHeader_SetCRS(t *testing.T) {
	h := NewHeader(1)
	require.NoError(t, h.SetCRS(""))
	require.NoError(t, h.SetCRS("0123456789abcdef"))
	require.ErrorIs(t, h.SetCRS("0123456789abcdefX"), errs.ErrCRSTooLong)
	require.ErrorIs(t, h.SetCRS("a\x00b"), errs.ErrCRSTooLong)
	require.Equal(t, "0123456789abcdef", h.CRS)
}

func TestFlag(t *testing.T) {
	f := NewFlag()
	require.Equal(t, uint16(MagicVolaV1), f.GetMagicNumber())
	require.NoError(t, f.Validate())

	f.SetDensity(format.DensityDense)
	require.Equal(t, format.DensityDense, f.Density())
	f.SetDensity(format.DensitySparse)
	require.Equal(t, format.DensitySparse, f.Density())

	f.SetAttributeKind(format.AttributeBits)
	require.Equal(t, format.AttributeBits, f.AttributeKind())
	f.SetAttributeKind(format.AttributeBytes)
	require.Equal(t, format.AttributeBytes, f.AttributeKind())

	f.WithBigEndian()
	require.False(t, f.IsLittleEndian())
	require.Equal(t, endian.GetBigEndianEngine(), f.GetEndianEngine())
	f.WithLittleEndian()
	require.Equal(t, endian.GetLittleEndianEngine(), f.GetEndianEngine())
}
