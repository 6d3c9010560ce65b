package octree

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/arloliu/vola/attr"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/internal/collision"
	"github.com/arloliu/vola/internal/options"
	"github.com/arloliu/vola/section"
)

const defaultSizeHint = 1024

// Builder inserts cells into an octree. A Builder is single use: after Build
// every further call fails with errs.ErrBuilderSealed.
type Builder struct {
	space    grid.Space
	packer   *attr.Packer
	crs      string
	density  format.Density
	sizeHint int
	logger   *zap.Logger

	nodes   []Node
	tracker *collision.Tracker
	sealed  bool
}

// NewBuilder creates a Builder over space.
func NewBuilder(space grid.Space, opts ...BuilderOption) (*Builder, error) {
	if space.Depth() < 1 {
		return nil, fmt.Errorf("%w: uninitialized space", errs.ErrInvalidDepth)
	}

	noAttrs, err := attr.NewPacker(0, attr.Bits)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		space:    space,
		packer:   noAttrs,
		density:  format.DensitySparse,
		sizeHint: defaultSizeHint,
		logger:   zap.NewNop(),
	}
	if err := options.ApplyAll(b, opts...); err != nil {
		return nil, err
	}

	if b.density == format.DensityDense && space.Depth() > section.MaxDenseDepth {
		return nil, fmt.Errorf("%w: dense depth %d exceeds %d", errs.ErrInvalidDepth, space.Depth(), section.MaxDenseDepth)
	}

	b.tracker = collision.NewTracker(b.sizeHint)
	b.nodes = make([]Node, 1, b.sizeHint)
	b.nodes[RootHandle] = Node{kind: KindInternal}

	return b, nil
}

// Space returns the grid space cells are inserted into.
func (b *Builder) Space() grid.Space {
	return b.space
}

// PayloadWidth returns the per-cell payload width in bytes.
func (b *Builder) PayloadWidth() int {
	return b.packer.Width()
}

// Insert marks cell occupied and attaches attrs, replacing any payload the
// cell already had. attrs may be nil.
func (b *Builder) Insert(cell grid.Cell, attrs []float64) error {
	if b.sealed {
		return errs.ErrBuilderSealed
	}
	if !b.space.Contains(cell) {
		return fmt.Errorf("%w: cell %v outside %d cells per axis", errs.ErrPointOutOfRange, cell, b.space.CellsPerAxis())
	}

	payload, err := b.packer.Pack(attrs)
	if err != nil {
		return err
	}

	if b.tracker.Track(cell.Morton(), payload) {
		b.descend(cell)
	}

	return nil
}

// InsertPoint maps p through the space and inserts the resulting cell.
func (b *Builder) InsertPoint(p r3.Vector, attrs []float64) error {
	cell, err := b.space.MapPoint(p)
	if err != nil {
		return err
	}

	return b.Insert(cell, attrs)
}

// InsertIndex maps integer grid coordinates through the space and inserts
// the resulting cell.
func (b *Builder) InsertIndex(x, y, z int, attrs []float64) error {
	cell, err := b.space.MapIndex(x, y, z)
	if err != nil {
		return err
	}

	return b.Insert(cell, attrs)
}

// InsertPoints inserts points in order. attrs is either nil or parallel to
// points. Insertion stops at the first failing point.
func (b *Builder) InsertPoints(points []r3.Vector, attrs [][]float64) error {
	if attrs != nil && len(attrs) != len(points) {
		return fmt.Errorf("%w: %d attribute vectors for %d points", errs.ErrMissingAttributes, len(attrs), len(points))
	}

	for i, p := range points {
		var values []float64
		if attrs != nil {
			values = attrs[i]
		}
		if err := b.InsertPoint(p, values); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}

	return nil
}

// descend creates the missing nodes on the path from the root to cell.
func (b *Builder) descend(cell grid.Cell) {
	depth := b.space.Depth()
	h := RootHandle
	for level := 0; level < depth; level++ {
		octant := cell.Octant(level, depth)
		child, ok := b.nodes[h].Child(octant)
		if !ok {
			child = b.newNode(level+1, cell)
			b.nodes[h].setChild(octant, child)
		}
		h = child
	}
}

func (b *Builder) newNode(level int, cell grid.Cell) Handle {
	n := Node{kind: KindInternal, level: uint8(level)}
	if level == b.space.Depth() {
		n.kind = KindLeaf
		n.cell = cell
	}

	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, n)

	return h
}

// Build seals the builder and returns the finished document. It fails with
// errs.ErrEmptyInput when no cell was inserted.
func (b *Builder) Build() (*Document, error) {
	if b.sealed {
		return nil, errs.ErrBuilderSealed
	}
	b.sealed = true

	if b.tracker.Count() == 0 {
		return nil, errs.ErrEmptyInput
	}

	if b.tracker.HasCollision() {
		b.logger.Debug("points shared cells",
			zap.Int("points", b.tracker.Hits()),
			zap.Int("cells", b.tracker.Count()),
			zap.Int("collisions", b.tracker.Collisions()),
			zap.Int("overwrites", b.tracker.Overwrites()))
	}

	return &Document{
		space:     b.space,
		crs:       b.crs,
		density:   b.density,
		attrKind:  b.packer.Kind(),
		attrLen:   b.packer.Length(),
		width:     b.packer.Width(),
		nodes:     b.nodes,
		payloads:  b.tracker,
		pointHits: b.tracker.Hits(),
	}, nil
}
