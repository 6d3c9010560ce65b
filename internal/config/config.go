// Package config handles vola configuration loading and validation.
package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/section"
)

// Config holds all converter settings.
type Config struct {
	Encode  EncodeConfig  `yaml:"encode"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// EncodeConfig holds the per-file encoding settings.
type EncodeConfig struct {
	Depth           int    `yaml:"depth"`
	CRS             string `yaml:"crs"`
	Density         string `yaml:"density"`          // sparse or dense
	AttributeLength int    `yaml:"attribute_length"` // attribute fields per point, 0 for none
	AttributeKind   string `yaml:"attribute_kind"`   // bits or bytes
	Compression     string `yaml:"compression"`      // none, zstd, s2 or lz4
	RangePolicy     string `yaml:"range_policy"`     // reject or clamp
	ByteOrder       string `yaml:"byte_order"`       // little or big
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Jobs int `yaml:"jobs"` // files converted in parallel
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Encode: EncodeConfig{
			Depth:           8,
			CRS:             "",
			Density:         "sparse",
			AttributeLength: 0,
			AttributeKind:   "bits",
			Compression:     "none",
			RangePolicy:     "reject",
			ByteOrder:       "little",
		},
		Batch: BatchConfig{
			Jobs: 1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Settings are the parsed encode settings.
type Settings struct {
	Depth           int
	CRS             string
	Density         format.Density
	AttributeLength int
	AttributeKind   format.AttributeKind
	Compression     format.CompressionType
	RangePolicy     format.RangePolicy
	BigEndian       bool
}

// Settings parses and validates the encode section, reporting every invalid
// field at once.
func (c EncodeConfig) Settings() (Settings, error) {
	s := Settings{
		Depth:           c.Depth,
		CRS:             c.CRS,
		AttributeLength: c.AttributeLength,
	}

	var err, e error
	s.Density, e = format.ParseDensity(c.Density)
	err = multierr.Append(err, e)
	s.AttributeKind, e = format.ParseAttributeKind(c.AttributeKind)
	err = multierr.Append(err, e)
	s.Compression, e = format.ParseCompression(c.Compression)
	err = multierr.Append(err, e)
	s.RangePolicy, e = format.ParseRangePolicy(c.RangePolicy)
	err = multierr.Append(err, e)

	switch strings.ToLower(c.ByteOrder) {
	case "", "little":
	case "big":
		s.BigEndian = true
	default:
		err = multierr.Append(err, fmt.Errorf("invalid byte order %q", c.ByteOrder))
	}

	maxDepth := section.MaxDepth
	if s.Density == format.DensityDense {
		maxDepth = section.MaxDenseDepth
	}
	if c.Depth < 1 || c.Depth > maxDepth {
		err = multierr.Append(err, fmt.Errorf("depth %d not in [1, %d]", c.Depth, maxDepth))
	}
	if len(c.CRS) > section.CRSSize {
		err = multierr.Append(err, fmt.Errorf("crs %q longer than %d bytes", c.CRS, section.CRSSize))
	}
	if c.AttributeLength < 0 {
		err = multierr.Append(err, fmt.Errorf("attribute length %d is negative", c.AttributeLength))
	}

	return s, err
}

// Validate checks every section of the config.
func (c *Config) Validate() error {
	_, err := c.Encode.Settings()
	if c.Batch.Jobs < 1 {
		err = multierr.Append(err, fmt.Errorf("jobs %d must be at least 1", c.Batch.Jobs))
	}

	return err
}
