package source

import (
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"gorgonia.org/tensor"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/grid"
)

// NPYGridSize is the number of cells per axis of an occupancy array.
const NPYGridSize = 256

// NPYBox is the fixed bounding box of occupancy arrays.
var NPYBox = grid.BoundingBox{
	Max: r3.Vector{X: NPYGridSize - 1, Y: NPYGridSize - 1, Z: NPYGridSize - 1},
}

// ReadNPY reads a 3-D occupancy array. Elements equal to 1 become grid
// indices (i, j, k) in row-major order.
func ReadNPY(r io.Reader) (*PointSet, error) {
	t := new(tensor.Dense)
	if err := t.ReadNpy(r); err != nil {
		return nil, fmt.Errorf("%w: npy: %w", errs.ErrUnsupportedSource, err)
	}

	shape := t.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: npy array has %d dimensions, want 3", errs.ErrUnsupportedSource, len(shape))
	}

	occupied, err := occupancyOf(t.Data())
	if err != nil {
		return nil, err
	}

	ps := &PointSet{Box: NPYBox, Indexed: true, CellsPerAxis: NPYGridSize}
	plane := shape[1] * shape[2]
	for i, set := range occupied {
		if !set {
			continue
		}
		ps.Points = append(ps.Points, r3.Vector{
			X: float64(i / plane),
			Y: float64(i % plane / shape[2]),
			Z: float64(i % shape[2]),
		})
	}

	return ps, nil
}

func occupancyOf(data any) ([]bool, error) {
	switch v := data.(type) {
	case []bool:
		return v, nil
	case []float64:
		return equalsOne(v), nil
	case []float32:
		return equalsOne(v), nil
	case []int:
		return equalsOne(v), nil
	case []int64:
		return equalsOne(v), nil
	case []int32:
		return equalsOne(v), nil
	case []int16:
		return equalsOne(v), nil
	case []int8:
		return equalsOne(v), nil
	case []uint8:
		return equalsOne(v), nil
	case []uint16:
		return equalsOne(v), nil
	case []uint32:
		return equalsOne(v), nil
	case []uint64:
		return equalsOne(v), nil
	default:
		return nil, fmt.Errorf("%w: npy element type %T", errs.ErrUnsupportedSource, data)
	}
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func equalsOne[T number](values []T) []bool {
	out := make([]bool, len(values))
	for i, v := range values {
		out[i] = v == 1
	}

	return out
}
