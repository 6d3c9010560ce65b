package volume

import (
	"github.com/arloliu/vola/attr"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/section"
)

// Volume is a decoded VOLA file.
type Volume struct {
	header   section.Header
	cells    []grid.Cell    // Morton order
	payloads []byte         // len(cells) * PayloadWidth
	index    map[uint64]int // Morton code → position in cells
}

func (v *Volume) buildIndex() {
	v.index = make(map[uint64]int, len(v.cells))
	for i, c := range v.cells {
		v.index[c.Morton()] = i
	}
}

func (v *Volume) Header() section.Header              { return v.header }
func (v *Volume) Depth() int                          { return int(v.header.Depth) }
func (v *Volume) CRS() string                         { return v.header.CRS }
func (v *Volume) Density() format.Density             { return v.header.Flag.Density() }
func (v *Volume) AttributeKind() format.AttributeKind { return v.header.Flag.AttributeKind() }
func (v *Volume) PayloadWidth() int                   { return int(v.header.PayloadWidth) }

// Box returns the bounding box stored in the header.
func (v *Volume) Box() grid.BoundingBox {
	return grid.BoxFromCorners(v.header.Min, v.header.Max)
}

// Space rebuilds the grid space the volume was encoded over.
func (v *Volume) Space() (grid.Space, error) {
	return grid.NewSpace(v.Box(), v.Depth())
}

// Len returns the number of occupied cells.
func (v *Volume) Len() int {
	return len(v.cells)
}

// Cells returns the occupied cells in Morton order. The slice must not be
// modified.
func (v *Volume) Cells() []grid.Cell {
	return v.cells
}

// Occupied reports whether cell is occupied.
func (v *Volume) Occupied(cell grid.Cell) bool {
	_, ok := v.index[cell.Morton()]
	return ok
}

// Payload returns the payload of an occupied cell.
func (v *Volume) Payload(cell grid.Cell) ([]byte, bool) {
	i, ok := v.index[cell.Morton()]
	if !ok {
		return nil, false
	}
	w := v.PayloadWidth()

	return v.payloads[i*w : (i+1)*w], true
}

// Attributes unpacks the payload of an occupied cell into one value per
// stored bit (bit packing) or byte (byte packing).
func (v *Volume) Attributes(cell grid.Cell) ([]float64, bool, error) {
	payload, ok := v.Payload(cell)
	if !ok {
		return nil, false, nil
	}

	kind := v.AttributeKind()
	length := len(payload)
	if kind == attr.Bits {
		length *= 8
	}
	values, err := attr.Unpack(payload, length, kind)

	return values, true, err
}

// Levels returns the number of tree nodes on every level 0..depth, derived
// from the occupied cells. The last entry equals Len.
func (v *Volume) Levels() []int {
	depth := v.Depth()
	counts := make([]int, depth+1)
	for level := 0; level <= depth; level++ {
		shift := 3 * uint(depth-level)
		var prev uint64
		for i, c := range v.cells {
			prefix := c.Morton() >> shift
			if i == 0 || prefix != prev {
				counts[level]++
			}
			prev = prefix
		}
	}

	return counts
}
