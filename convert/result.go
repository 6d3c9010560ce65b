package convert

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"

	"github.com/arloliu/vola/compress"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
)

// Status is the outcome of one file conversion.
type Status uint8

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result describes the conversion of one input file.
type Result struct {
	Input  string
	Output string
	Status Status
	// Err is the reason for a skip or failure.
	Err error

	Points     int // points read
	Cells      int // distinct occupied cells
	InputSize  int64
	OutputSize int64
	Body       compress.Stats
	Elapsed    time.Duration
}

// Ratio returns output size / input size, or 0 when nothing was written.
func (r Result) Ratio() float64 {
	if r.InputSize == 0 || r.OutputSize == 0 {
		return 0
	}

	return float64(r.OutputSize) / float64(r.InputSize)
}

func (r Result) String() string {
	switch r.Status {
	case StatusConverted:
		line := fmt.Sprintf("%s -> %s: %s points, %s cells, %s -> %s (%.2f%%) in %s",
			r.Input, r.Output, humanize.Comma(int64(r.Points)), humanize.Comma(int64(r.Cells)),
			humanize.Bytes(uint64(r.InputSize)), humanize.Bytes(uint64(r.OutputSize)),
			r.Ratio()*100, r.Elapsed.Round(time.Millisecond))
		if r.Body.Algorithm != format.CompressionNone && r.Body.OriginalSize > 0 {
			line += fmt.Sprintf(", %s body saved %.1f%%", r.Body.Algorithm, r.Body.SpaceSavings())
		}

		return line
	default:
		return fmt.Sprintf("%s: %s: %v", r.Input, r.Status, r.Err)
	}
}

// skip classifies err as a skip when it is a policy outcome rather than a
// failure.
func skip(err error) bool {
	return errors.Is(err, errs.ErrEmptyInput) || errors.Is(err, errs.ErrOutputExists)
}

// Summary aggregates a batch.
type Summary struct {
	Converted  int
	Skipped    int
	Failed     int
	InputSize  int64
	OutputSize int64
}

// Summarize counts results by status and totals the converted sizes.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusConverted:
			s.Converted++
			s.InputSize += r.InputSize
			s.OutputSize += r.OutputSize
		case StatusSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d converted, %d skipped, %d failed, %s -> %s",
		s.Converted, s.Skipped, s.Failed, humanize.Bytes(uint64(s.InputSize)), humanize.Bytes(uint64(s.OutputSize)))
}

// Failures combines the errors of failed results.
func Failures(results []Result) error {
	var err error
	for _, r := range results {
		if r.Status == StatusFailed {
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.Input, r.Err))
		}
	}

	return err
}
