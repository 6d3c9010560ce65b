package volume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/vola/compress"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/internal/hash"
	"github.com/arloliu/vola/internal/options"
	"github.com/arloliu/vola/internal/pool"
	"github.com/arloliu/vola/octree"
	"github.com/arloliu/vola/section"
)

const defaultFileMode = 0o644

// Encoder serializes octree documents. An Encoder may be reused for many
// documents but is not safe for concurrent use.
type Encoder struct {
	flag     section.Flag
	codec    compress.Codec
	logger   *zap.Logger
	fileMode uint32
	maxBody  int

	lastStats compress.Stats
}

// NewEncoder creates an Encoder. By default it writes little-endian headers
// and uncompressed bodies.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		flag:     section.NewFlag(),
		codec:    compress.NewNoOpCompressor(),
		logger:   zap.NewNop(),
		fileMode: defaultFileMode,
		maxBody:  compress.MaxBodySize,
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Compression returns the configured body compression.
func (e *Encoder) Compression() format.CompressionType {
	return e.flag.CompressionType()
}

// LastStats returns the body compression statistics of the last successful
// Encode.
func (e *Encoder) LastStats() compress.Stats {
	return e.lastStats
}

// Encode serializes doc into a header followed by its body.
func (e *Encoder) Encode(doc *octree.Document) ([]byte, error) {
	if doc == nil {
		return nil, errs.ErrEmptyInput
	}

	header, err := e.header(doc)
	if err != nil {
		return nil, err
	}

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	switch doc.Density() {
	case format.DensitySparse:
		err = writeSparse(body, doc)
	case format.DensityDense:
		e.checkLevels(doc)
		err = writeDense(body, doc)
	default:
		err = fmt.Errorf("%w: %d", errs.ErrInvalidDensity, doc.Density())
	}
	if err != nil {
		return nil, err
	}

	raw := body.Bytes()
	if len(raw) > e.maxBody {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrBodyTooLarge, len(raw), e.maxBody)
	}
	header.Checksum = hash.Checksum(raw)

	stored, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress body: %w", err)
	}
	header.BodyLength = uint64(len(stored))

	if err := header.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, section.HeaderSize+len(stored))
	out = append(out, header.Bytes()...)
	out = append(out, stored...)

	e.lastStats = compress.Stats{
		Algorithm:      e.flag.CompressionType(),
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(stored)),
	}

	return out, nil
}

// WriteFile encodes doc and writes it to a new file at path. It never
// overwrites: an existing path fails with errs.ErrOutputExists. Other
// failures to create or write the file wrap errs.ErrIOFailure, and leave no
// file behind.
func (e *Encoder) WriteFile(doc *octree.Document, path string) (int64, error) {
	data, err := e.Encode(doc)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fs.FileMode(e.fileMode))
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %s", errs.ErrOutputExists, path)
		}

		return 0, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	return int64(n), nil
}

func (e *Encoder) header(doc *octree.Document) (*section.Header, error) {
	depth := doc.Depth()
	if depth < 1 || depth > section.MaxDepth {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidDepth, depth)
	}
	if doc.PayloadWidth() > section.MaxPayloadWidth {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPayloadWidth, doc.PayloadWidth())
	}

	h := section.NewHeader(uint8(depth))
	h.Flag = e.flag
	h.Flag.SetDensity(doc.Density())
	h.Flag.SetAttributeKind(doc.AttributeKind())
	h.PayloadWidth = uint16(doc.PayloadWidth())
	h.Min, h.Max = doc.Box().Corners()
	h.OccupiedCount = uint64(doc.OccupiedCount())
	if err := h.SetCRS(doc.CRS()); err != nil {
		return nil, err
	}

	return h, nil
}

// checkLevels runs the level statistics pass before a dense write. Failures
// are logged and never stop serialization.
func (e *Encoder) checkLevels(doc *octree.Document) {
	stats, err := doc.Stats()
	if err != nil {
		e.logger.Warn("level statistics failed", zap.Error(err))
		return
	}

	e.logger.Debug("level statistics",
		zap.Int("depth", doc.Depth()),
		zap.Int("internal", stats.Internal()),
		zap.Int("leaves", stats.Leaves()))
}
