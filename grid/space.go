package grid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/section"
)

// Space is a bounding box subdivided into 2^depth cells per axis.
//
// Space is a small value type; copies are independent.
type Space struct {
	box    BoundingBox
	depth  int
	cells  uint32
	side   float64
	policy format.RangePolicy
}

// NewSpace creates a Space over box with the given depth. Out-of-range points
// are rejected; use WithRangePolicy to clamp instead.
func NewSpace(box BoundingBox, depth int) (Space, error) {
	if err := box.Validate(); err != nil {
		return Space{}, err
	}
	if depth < 1 || depth > section.MaxDepth {
		return Space{}, fmt.Errorf("%w: depth %d not in [1, %d]", errs.ErrInvalidDepth, depth, section.MaxDepth)
	}

	return Space{
		box:    box,
		depth:  depth,
		cells:  1 << uint(depth),
		side:   box.Extent(),
		policy: format.RangeReject,
	}, nil
}

// WithRangePolicy returns a copy of s using policy for out-of-range points.
func (s Space) WithRangePolicy(policy format.RangePolicy) Space {
	s.policy = policy
	return s
}

func (s Space) Box() BoundingBox                { return s.box }
func (s Space) Depth() int                      { return s.depth }
func (s Space) RangePolicy() format.RangePolicy { return s.policy }

// CellsPerAxis returns 2^depth.
func (s Space) CellsPerAxis() uint32 {
	return s.cells
}

// MapPoint maps a continuous coordinate to its cell.
func (s Space) MapPoint(p r3.Vector) (Cell, error) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return Cell{}, fmt.Errorf("%w: %v is not a number", errs.ErrPointOutOfRange, p)
	}
	if !s.box.Contains(p) {
		if s.policy != format.RangeClamp {
			return Cell{}, fmt.Errorf("%w: %v outside %v", errs.ErrPointOutOfRange, p, s.box)
		}
		p = r3.Vector{
			X: clampFloat(p.X, s.box.Min.X, s.box.Max.X),
			Y: clampFloat(p.Y, s.box.Min.Y, s.box.Max.Y),
			Z: clampFloat(p.Z, s.box.Min.Z, s.box.Max.Z),
		}
	}

	return Cell{
		X: s.scale(p.X - s.box.Min.X),
		Y: s.scale(p.Y - s.box.Min.Y),
		Z: s.scale(p.Z - s.box.Min.Z),
	}, nil
}

// scale maps an offset in [0, side] to a cell index; the top boundary falls
// into the last cell.
func (s Space) scale(offset float64) uint32 {
	idx := math.Floor(offset / s.side * float64(s.cells))
	if idx >= float64(s.cells) {
		return s.cells - 1
	}
	if idx < 0 {
		return 0
	}

	return uint32(idx)
}

// MapIndex maps integer grid coordinates to a cell by offset from the box's
// min corner. Coordinates must lie inside the box and the first 2^depth
// indices of each axis.
func (s Space) MapIndex(x, y, z int) (Cell, error) {
	var c Cell
	for axis, v := range [3]int{x, y, z} {
		lo := int(math.Ceil(axisOf(s.box.Min, axis)))
		hi := min(int(math.Floor(axisOf(s.box.Max, axis))), lo+int(s.cells)-1)
		if v < lo || v > hi {
			if s.policy != format.RangeClamp {
				return Cell{}, fmt.Errorf("%w: index (%d, %d, %d) outside %v at depth %d",
					errs.ErrPointOutOfRange, x, y, z, s.box, s.depth)
			}
			v = max(lo, min(v, hi))
		}
		idx := uint32(v - lo)
		switch axis {
		case 0:
			c.X = idx
		case 1:
			c.Y = idx
		default:
			c.Z = idx
		}
	}

	return c, nil
}

// CellMin returns the min corner of c in box coordinates.
func (s Space) CellMin(c Cell) r3.Vector {
	step := s.side / float64(s.cells)
	return s.box.Min.Add(r3.Vector{X: float64(c.X) * step, Y: float64(c.Y) * step, Z: float64(c.Z) * step})
}

// CellCenter returns the center of c in box coordinates.
func (s Space) CellCenter(c Cell) r3.Vector {
	half := s.side / float64(s.cells) / 2
	return s.CellMin(c).Add(r3.Vector{X: half, Y: half, Z: half})
}

// Contains reports whether c is a valid cell of s.
func (s Space) Contains(c Cell) bool {
	return c.X < s.cells && c.Y < s.cells && c.Z < s.cells
}

func axisOf(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
