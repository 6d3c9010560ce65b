package format

import (
	"fmt"
	"strings"
)

type (
	Density         uint8
	CompressionType uint8
	RangePolicy     uint8
	AttributeKind   uint8
)

const (
	DensitySparse Density = 0x0 // DensitySparse is the pruned pre-order tree layout.
	DensityDense  Density = 0x1 // DensityDense is the full bit-grid layout.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	RangeReject RangePolicy = 0x0 // RangeReject fails on points outside the bounding box.
	RangeClamp  RangePolicy = 0x1 // RangeClamp clamps points into the grid.

	AttributeBits  AttributeKind = 0x0 // AttributeBits packs one bit per attribute field.
	AttributeBytes AttributeKind = 0x1 // AttributeBytes stores one byte per attribute field.
)

func (d Density) String() string {
	switch d {
	case DensitySparse:
		return "sparse"
	case DensityDense:
		return "dense"
	default:
		return "unknown"
	}
}

// Extension returns the output file suffix for the density mode.
func (d Density) Extension() string {
	if d == DensityDense {
		return "dvol"
	}

	return "vol"
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (p RangePolicy) String() string {
	switch p {
	case RangeReject:
		return "reject"
	case RangeClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

func (k AttributeKind) String() string {
	switch k {
	case AttributeBits:
		return "bits"
	case AttributeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// ParseDensity parses "sparse" or "dense".
func ParseDensity(s string) (Density, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sparse":
		return DensitySparse, nil
	case "dense":
		return DensityDense, nil
	default:
		return 0, fmt.Errorf("invalid density %q", s)
	}
}

// ParseCompression parses a compression name such as "zstd" or "none".
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("invalid compression %q", s)
	}
}

// ParseRangePolicy parses "reject" or "clamp".
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RangeReject, nil
	case "clamp":
		return RangeClamp, nil
	default:
		return 0, fmt.Errorf("invalid range policy %q", s)
	}
}

// ParseAttributeKind parses "bits" or "bytes".
func ParseAttributeKind(s string) (AttributeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bits":
		return AttributeBits, nil
	case "bytes":
		return AttributeBytes, nil
	default:
		return 0, fmt.Errorf("invalid attribute kind %q", s)
	}
}
