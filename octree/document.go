package octree

import (
	"fmt"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/internal/collision"
)

// Document is a finished, immutable octree ready for serialization.
type Document struct {
	space     grid.Space
	crs       string
	density   format.Density
	attrKind  format.AttributeKind
	attrLen   int
	width     int
	nodes     []Node
	payloads  *collision.Tracker
	pointHits int
}

func (d *Document) Space() grid.Space                   { return d.space }
func (d *Document) Depth() int                          { return d.space.Depth() }
func (d *Document) Box() grid.BoundingBox               { return d.space.Box() }
func (d *Document) CRS() string                         { return d.crs }
func (d *Document) Density() format.Density             { return d.density }
func (d *Document) AttributeKind() format.AttributeKind { return d.attrKind }
func (d *Document) AttributeLength() int                { return d.attrLen }

// PayloadWidth returns the payload width in bytes, zero without attributes.
func (d *Document) PayloadWidth() int {
	return d.width
}

// OccupiedCount returns the number of distinct occupied cells.
func (d *Document) OccupiedCount() int {
	return d.payloads.Count()
}

// PointCount returns the number of points inserted, repeats included.
func (d *Document) PointCount() int {
	return d.pointHits
}

// Overwrites returns how many inserts replaced a different payload.
func (d *Document) Overwrites() int {
	return d.payloads.Overwrites()
}

// NodeCount returns the arena size.
func (d *Document) NodeCount() int {
	return len(d.nodes)
}

// Node returns the node behind h.
func (d *Document) Node(h Handle) (*Node, error) {
	if int(h) >= len(d.nodes) {
		return nil, fmt.Errorf("%w: handle %d beyond arena of %d nodes", errs.ErrCorruptTree, h, len(d.nodes))
	}

	return &d.nodes[h], nil
}

// Payload returns the payload of an occupied cell, or a zero payload of
// PayloadWidth bytes when the cell carries none.
func (d *Document) Payload(cell grid.Cell) []byte {
	if d.width == 0 {
		return nil
	}
	if p, ok := d.payloads.Payload(cell.Morton()); ok && len(p) == d.width {
		return p
	}

	return make([]byte, d.width)
}

// Walk visits every node in pre-order, children in octant order. Leaves are
// therefore visited in Morton order. Walk stops at the first error fn returns.
func (d *Document) Walk(fn func(h Handle, n *Node) error) error {
	return d.walk(RootHandle, fn)
}

func (d *Document) walk(h Handle, fn func(Handle, *Node) error) error {
	n, err := d.Node(h)
	if err != nil {
		return err
	}
	if err := fn(h, n); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := d.walk(child, fn); err != nil {
			return err
		}
	}

	return nil
}

// Leaves returns the occupied cells in Morton order.
func (d *Document) Leaves() ([]grid.Cell, error) {
	cells := make([]grid.Cell, 0, d.OccupiedCount())
	err := d.Walk(func(_ Handle, n *Node) error {
		if n.IsLeaf() {
			cells = append(cells, n.cell)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cells, nil
}
