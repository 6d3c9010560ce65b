package grid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/arloliu/vola/errs"
)

// BoundingBox is an axis-aligned box in some coordinate reference.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// NewBoundingBox creates a validated box.
func NewBoundingBox(minCorner, maxCorner r3.Vector) (BoundingBox, error) {
	b := BoundingBox{Min: minCorner, Max: maxCorner}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}

	return b, nil
}

// Validate rejects inverted, non-finite and zero-extent boxes.
func (b BoundingBox) Validate() error {
	for _, v := range [...]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite corner in %v", errs.ErrInvalidBoundingBox, b)
		}
	}
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
		return fmt.Errorf("%w: inverted box %v", errs.ErrInvalidBoundingBox, b)
	}
	if b.Extent() == 0 {
		return fmt.Errorf("%w: degenerate box %v", errs.ErrInvalidBoundingBox, b)
	}

	return nil
}

// Size returns the per-axis extent.
func (b BoundingBox) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Extent returns the largest per-axis extent, the side of the root cube.
func (b BoundingBox) Extent() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// Contains reports whether p lies inside the box, boundaries included.
func (b BoundingBox) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns min and max as arrays, the order used by the file header.
func (b BoundingBox) Corners() (minCorner, maxCorner [3]float64) {
	return [3]float64{b.Min.X, b.Min.Y, b.Min.Z}, [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
}

// BoxFromCorners is the inverse of Corners. The result is not validated.
func BoxFromCorners(minCorner, maxCorner [3]float64) BoundingBox {
	return BoundingBox{
		Min: r3.Vector{X: minCorner[0], Y: minCorner[1], Z: minCorner[2]},
		Max: r3.Vector{X: maxCorner[0], Y: maxCorner[1], Z: maxCorner[2]},
	}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g %g %g]-[%g %g %g]", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

// BoundsOf computes the per-axis min/max of points.
func BoundsOf(points []r3.Vector) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, errs.ErrEmptyInput
	}

	b := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}

	return b, nil
}
