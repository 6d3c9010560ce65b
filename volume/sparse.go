package volume

import (
	"fmt"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/internal/pool"
	"github.com/arloliu/vola/octree"
)

// writeSparse appends the pre-order mask stream of doc to body.
func writeSparse(body *pool.ByteBuffer, doc *octree.Document) error {
	body.Grow(doc.NodeCount() + doc.OccupiedCount()*doc.PayloadWidth())

	width := doc.PayloadWidth()

	return doc.Walk(func(_ octree.Handle, n *octree.Node) error {
		if !n.IsLeaf() {
			return body.WriteByte(n.Mask())
		}
		if width > 0 {
			_, _ = body.Write(doc.Payload(n.Cell()))
		}

		return nil
	})
}

// sparseReader rebuilds occupancy from a pre-order mask stream.
type sparseReader struct {
	body     []byte
	pos      int
	depth    int
	width    int
	cells    []grid.Cell
	payloads []byte
}

func readSparse(body []byte, depth, width int, sizeHint uint64) ([]grid.Cell, []byte, error) {
	hint := int(min(sizeHint, uint64(len(body))))
	r := &sparseReader{
		body:     body,
		depth:    depth,
		width:    width,
		cells:    make([]grid.Cell, 0, hint),
		payloads: make([]byte, 0, hint*width),
	}
	if err := r.node(0, 0); err != nil {
		return nil, nil, err
	}
	if r.pos != len(body) {
		return nil, nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, len(body)-r.pos)
	}

	return r.cells, r.payloads, nil
}

// node reads the subtree at level whose path from the root is prefix.
func (r *sparseReader) node(level int, prefix uint64) error {
	if level == r.depth {
		if r.pos+r.width > len(r.body) {
			return fmt.Errorf("%w: payload of cell %d", errs.ErrTruncatedBody, prefix)
		}
		r.cells = append(r.cells, grid.CellFromMorton(prefix))
		r.payloads = append(r.payloads, r.body[r.pos:r.pos+r.width]...)
		r.pos += r.width

		return nil
	}

	if r.pos >= len(r.body) {
		return fmt.Errorf("%w: mask at level %d", errs.ErrTruncatedBody, level)
	}
	mask := r.body[r.pos]
	r.pos++
	if mask == 0 {
		return fmt.Errorf("%w: empty mask at level %d", errs.ErrCorruptTree, level)
	}

	for octant := range uint64(8) {
		if mask&(1<<octant) == 0 {
			continue
		}
		if err := r.node(level+1, prefix<<3|octant); err != nil {
			return err
		}
	}

	return nil
}
