package volume

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/vola/compress"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian writes multi-byte header fields little-endian.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithLittleEndian()
	})
}

// WithBigEndian writes multi-byte header fields big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithBigEndian()
	})
}

// WithCompression sets the body compression. The default is no compression.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		codec, err := compress.CreateCodec(comp, "body")
		if err != nil {
			return err
		}
		e.flag.SetCompressionType(comp)
		e.codec = codec

		return nil
	})
}

// WithLogger sets the logger for non-fatal diagnostics.
func WithLogger(logger *zap.Logger) EncoderOption {
	return options.NoError(func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	})
}

// WithFileMode sets the permission bits of files created by WriteFile.
func WithFileMode(mode uint32) EncoderOption {
	return options.New(func(e *Encoder) error {
		if mode&^0o777 != 0 {
			return fmt.Errorf("invalid file mode %o", mode)
		}
		e.fileMode = mode

		return nil
	})
}

// WithMaxBodySize lowers the uncompressed body limit below
// compress.MaxBodySize. Encode fails with errs.ErrBodyTooLarge beyond it.
func WithMaxBodySize(n int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if n <= 0 || n > compress.MaxBodySize {
			return fmt.Errorf("invalid max body size %d", n)
		}
		e.maxBody = n

		return nil
	})
}
