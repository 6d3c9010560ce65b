package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDensity(t *testing.T) {
	d, err := ParseDensity("Dense")
	require.NoError(t, err)
	require.Equal(t, DensityDense, d)
	require.Equal(t, "dvol", d.Extension())

	d, err = ParseDensity("")
	require.NoError(t, err)
	require.Equal(t, DensitySparse, d)
	require.Equal(t, "vol", d.Extension())

	_, err = ParseDensity("medium")
	require.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	tests := map[string]CompressionType{
		"none": CompressionNone,
		"ZSTD": CompressionZstd,
		"s2":   CompressionS2,
		"lz4":  CompressionLZ4,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseCompression(in)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}

	_, err := ParseCompression("gzip")
	require.Error(t, err)
}

func TestParseRangePolicyAndKind(t *testing.T) {
	p, err := ParseRangePolicy("clamp")
	require.NoError(t, err)
	require.Equal(t, RangeClamp, p)
	require.Equal(t, "clamp", p.String())

	k, err := ParseAttributeKind("bytes")
	require.NoError(t, err)
	require.Equal(t, AttributeBytes, k)

	_, err = ParseAttributeKind("nibbles")
	require.Error(t, err)
}
