package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/grid"
)

// Kind identifies a source file format.
type Kind uint8

const (
	KindNPY Kind = iota + 1
	KindPLY
)

func (k Kind) String() string {
	switch k {
	case KindNPY:
		return "npy"
	case KindPLY:
		return "ply"
	default:
		return "unknown"
	}
}

// Extension returns the file suffix of the format, without the dot.
func (k Kind) Extension() string {
	return k.String()
}

// ParseKind parses "npy" or "ply".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "npy":
		return KindNPY, nil
	case "ply":
		return KindPLY, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedSource, s)
	}
}

// KindOf returns the format of path from its extension.
func KindOf(path string) (Kind, error) {
	return ParseKind(filepath.Ext(path))
}

// PointSet is the content of one source file.
type PointSet struct {
	// Box is the natural extent of the source. It is the zero value for an
	// empty mesh.
	Box grid.BoundingBox
	// Points holds vertex positions, or grid indices when Indexed is set.
	Points []r3.Vector
	// Attributes is nil or parallel to Points.
	Attributes [][]float64
	// AttributeNames names the attribute fields in order.
	AttributeNames []string
	// Indexed marks integer grid indices that map by offset rather than by
	// rescaling.
	Indexed bool
	// CellsPerAxis is the fixed grid size of an indexed source.
	CellsPerAxis int
}

// Len returns the number of points.
func (p *PointSet) Len() int {
	return len(p.Points)
}

// AttributeCount returns the number of attribute fields per point.
func (p *PointSet) AttributeCount() int {
	return len(p.AttributeNames)
}

// ReadFile reads path with the reader matching its extension.
func ReadFile(path string) (*PointSet, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}
	defer f.Close()

	if kind == KindNPY {
		return ReadNPY(f)
	}

	return ReadPLY(f)
}
