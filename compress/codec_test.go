package compress

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"sync"
	"testing"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// denseBody mimics a dense occupancy grid: mostly zero bytes, a few set bits.
func denseBody(size int) []byte {
	body := make([]byte, size)
	for i := 0; i < size; i += 97 {
		body[i] = 0x80 >> (i % 8)
	}

	return body
}

func TestCreateCodec(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7), "body")
	require.Error(t, err)
	require.Contains(t, err.Error(), "body")
}

func TestGetCodec(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"single mask":  {0x81},
		"sparse tree":  bytes.Repeat([]byte{0x81, 0x01, 0x80}, 50),
		"dense grid":   denseBody(64 * 1024),
		"random-ish":   []byte("the quick brown fox jumps over the lazy dog 0123456789"),
		"larger grids": denseBody(1 << 20),
	}

	for _, typ := range allTypes {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)

		for name, in := range inputs {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				stored, err := codec.Compress(in)
				require.NoError(t, err)

				out, err := codec.Decompress(stored)
				require.NoError(t, err)
				require.Equal(t, in, out)
			})
		}
	}
}

func TestAllCodecs_LargeIncompressibleBody(t *testing.T) {
	body := make([]byte, 40<<20)
	rand.New(rand.NewSource(5)).Read(body)

	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ, "body")
			require.NoError(t, err)

			stored, err := codec.Compress(body)
			require.NoError(t, err)
			require.Greater(t, len(stored), len(body)/2)

			out, err := codec.Decompress(stored)
			require.NoError(t, err)
			require.True(t, bytes.Equal(body, out))
		})
	}
}

func TestDecompress_RejectsOversizeBody(t *testing.T) {
	forged := binary.AppendUvarint(nil, MaxBodySize+1)
	forged = append(forged, 0x00, 0x01, 0x02, 0x03)

	for _, typ := range []format.CompressionType{format.CompressionS2, format.CompressionLZ4} {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)

		_, err = codec.Decompress(forged)
		require.ErrorIs(t, err, errs.ErrBodyTooLarge, typ.String())
	}
}

func TestLZ4_SizePrefix(t *testing.T) {
	body := denseBody(4096)
	stored, err := NewLZ4Compressor().Compress(body)
	require.NoError(t, err)

	size, n := binary.Uvarint(stored)
	require.Positive(t, n)
	require.Equal(t, uint64(len(body)), size)

	_, err = NewLZ4Compressor().Decompress([]byte{0x80})
	require.ErrorIs(t, err, errs.ErrTruncatedBody)

	_, err = NewLZ4Compressor().Decompress(stored[:len(stored)/2])
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestCompressingCodecs_ShrinkDenseGrids(t *testing.T) {
	body := denseBody(256 * 1024)
	for _, typ := range allTypes[1:] {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)

		stored, err := codec.Compress(body)
		require.NoError(t, err)
		require.Less(t, len(stored), len(body)/4, typ.String())
	}
}

func TestCompressingCodecs_InvalidData(t *testing.T) {
	garbage := []byte("this is not compressed data")
	for _, typ := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := CreateCodec(typ, "body")
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, typ.String())
	}
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	in := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(in)
	require.NoError(t, err)
	require.Same(t, &in[0], &out[0])
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	body := denseBody(8 * 1024)
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errCh := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stored, err := codec.Compress(body)
				if err != nil {
					errCh <- err
					return
				}
				out, err := codec.Decompress(stored)
				if err != nil {
					errCh <- err
					return
				}
				if !bytes.Equal(body, out) {
					errCh <- bytes.ErrTooLarge
				}
			}()
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}
	}
}

func TestStats(t *testing.T) {
	s := Stats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	require.Zero(t, Stats{}.Ratio())
}
