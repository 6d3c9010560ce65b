package convert

import (
	"context"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/internal/config"
	"github.com/arloliu/vola/octree"
	"github.com/arloliu/vola/source"
	"github.com/arloliu/vola/volume"
)

// Converter converts files with fixed settings. It is safe for concurrent
// use; every file gets its own builder and encoder.
type Converter struct {
	settings config.Settings
	logger   *zap.Logger
}

// New creates a Converter. A nil logger discards all output.
func New(settings config.Settings, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{settings: settings, logger: logger}
}

// OutputPath replaces the extension of input with the one for density.
// "scan.PLY" becomes "scan.vol" or "scan.dvol".
func OutputPath(input string, density format.Density) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + density.Extension()
}

// ConvertAll converts paths with at most jobs files in flight. It returns
// one Result per path in input order, and the combined failures. A canceled
// ctx marks the files not yet started as failed.
func (c *Converter) ConvertAll(ctx context.Context, paths []string, jobs int) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Input: path, Output: OutputPath(path, c.settings.Density), Status: StatusFailed, Err: err}
				return nil
			}
			results[i] = c.ConvertFile(path)

			return nil
		})
	}
	_ = g.Wait()

	return results, Failures(results)
}

// ConvertFile converts one file.
func (c *Converter) ConvertFile(input string) Result {
	start := time.Now()
	res := Result{Input: input, Output: OutputPath(input, c.settings.Density)}
	log := c.logger.With(zap.String("input", input), zap.String("output", res.Output))

	err := c.convert(input, &res, log)
	res.Elapsed = time.Since(start)

	switch {
	case err == nil:
		res.Status = StatusConverted
		log.Info("converted",
			zap.Int("points", res.Points),
			zap.Int("cells", res.Cells),
			zap.Int64("bytes", res.OutputSize),
			zap.Float64("ratio", res.Ratio()),
			zap.Duration("elapsed", res.Elapsed))
	case skip(err):
		res.Status = StatusSkipped
		res.Err = err
		log.Warn("skipped", zap.Error(err))
	default:
		res.Status = StatusFailed
		res.Err = err
		log.Error("conversion failed", zap.Error(err))
	}

	return res
}

func (c *Converter) convert(input string, res *Result, log *zap.Logger) error {
	if _, err := os.Stat(res.Output); err == nil {
		return fmt.Errorf("%w: %s", errs.ErrOutputExists, res.Output)
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}
	res.InputSize = info.Size()

	ps, err := source.ReadFile(input)
	if err != nil {
		return err
	}
	res.Points = ps.Len()
	if ps.Len() == 0 {
		return fmt.Errorf("%w: %s", errs.ErrEmptyInput, input)
	}

	doc, err := c.build(ps, log)
	if err != nil {
		return err
	}
	res.Cells = doc.OccupiedCount()

	enc, err := c.encoder(log)
	if err != nil {
		return err
	}
	n, err := enc.WriteFile(doc, res.Output)
	if err != nil {
		return err
	}
	res.OutputSize = n
	res.Body = enc.LastStats()

	return nil
}

func (c *Converter) build(ps *source.PointSet, log *zap.Logger) (*octree.Document, error) {
	depth := c.settings.Depth
	if ps.Indexed {
		fixed := bits.Len(uint(ps.CellsPerAxis)) - 1
		if depth != fixed {
			log.Warn("occupancy grids use a fixed depth", zap.Int("depth", fixed), zap.Int("configured", depth))
			depth = fixed
		}
	}

	space, err := grid.NewSpace(ps.Box, depth)
	if err != nil {
		return nil, err
	}
	space = space.WithRangePolicy(c.settings.RangePolicy)

	opts := []octree.BuilderOption{
		octree.WithCRS(c.settings.CRS),
		octree.WithDensity(c.settings.Density),
		octree.WithSizeHint(ps.Len()),
		octree.WithLogger(log),
	}
	length := c.settings.AttributeLength
	switch {
	case length > 0 && ps.AttributeCount() == 0:
		log.Info("source has no attributes, writing occupancy only")
		length = 0
	case length > 0:
		opts = append(opts, octree.WithAttributes(length, c.settings.AttributeKind))
	}

	b, err := octree.NewBuilder(space, opts...)
	if err != nil {
		return nil, err
	}

	for i, p := range ps.Points {
		var values []float64
		if length > 0 {
			values = ps.Attributes[i][:min(length, len(ps.Attributes[i]))]
		}

		if ps.Indexed {
			err = b.InsertIndex(int(p.X), int(p.Y), int(p.Z), values)
		} else {
			err = b.InsertPoint(p, values)
		}
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}

	return b.Build()
}

func (c *Converter) encoder(log *zap.Logger) (*volume.Encoder, error) {
	opts := []volume.EncoderOption{
		volume.WithCompression(c.settings.Compression),
		volume.WithLogger(log),
	}
	if c.settings.BigEndian {
		opts = append(opts, volume.WithBigEndian())
	}

	return volume.NewEncoder(opts...)
}
