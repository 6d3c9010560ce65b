package grid

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
)

func unitBox(t *testing.T) BoundingBox {
	t.Helper()
	b, err := NewBoundingBox(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)

	return b
}

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name string
		min  r3.Vector
		max  r3.Vector
	}{
		{"degenerate", r3.Vector{X: 2, Y: 2, Z: 2}, r3.Vector{X: 2, Y: 2, Z: 2}},
		{"inverted", r3.Vector{X: 1}, r3.Vector{X: 0, Y: 1, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoundingBox(tt.min, tt.max)
			require.ErrorIs(t, err, errs.ErrInvalidBoundingBox)
		})
	}

	// flat along two axes is still a usable cube
	b, err := NewBoundingBox(r3.Vector{}, r3.Vector{X: 4})
	require.NoError(t, err)
	require.Equal(t, 4.0, b.Extent())
}

func TestBoundsOf(t *testing.T) {
	_, err := BoundsOf(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	b, err := BoundsOf([]r3.Vector{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 5, Z: 0}, {X: 0, Y: 0, Z: 9}})
	require.NoError(t, err)
	require.Equal(t, r3.Vector{X: -1, Y: -2, Z: 0}, b.Min)
	require.Equal(t, r3.Vector{X: 1, Y: 5, Z: 9}, b.Max)
	require.Equal(t, 9.0, b.Extent())

	lo, hi := b.Corners()
	require.Equal(t, b, BoxFromCorners(lo, hi))
}

func TestNewSpaceDepth(t *testing.T) {
	box := unitBox(t)
	for _, depth := range []int{0, -1, 22} {
		_, err := NewSpace(box, depth)
		require.ErrorIs(t, err, errs.ErrInvalidDepth)
	}

	s, err := NewSpace(box, 21)
	require.NoError(t, err)
	require.Equal(t, uint32(1<<21), s.CellsPerAxis())
}

func TestMapPoint(t *testing.T) {
	s, err := NewSpace(unitBox(t), 1)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    r3.Vector
		want Cell
	}{
		{"origin", r3.Vector{}, Cell{}},
		{"max corner", r3.Vector{X: 1, Y: 1, Z: 1}, Cell{X: 1, Y: 1, Z: 1}},
		{"just below half", r3.Vector{X: 0.49, Y: 0.2, Z: 0.1}, Cell{}},
		{"half is upper cell", r3.Vector{X: 0.5, Y: 0, Z: 0.75}, Cell{X: 1, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := s.MapPoint(tt.p)
			require.NoError(t, err)
			require.Equal(t, tt.want, c)
		})
	}
}

func TestMapPointNonCubicBox(t *testing.T) {
	box, err := NewBoundingBox(r3.Vector{}, r3.Vector{X: 8, Y: 2, Z: 1})
	require.NoError(t, err)
	s, err := NewSpace(box, 3)
	require.NoError(t, err)

	// side is 8, so each cell is one unit wide on every axis
	c, err := s.MapPoint(r3.Vector{X: 8, Y: 2, Z: 1})
	require.NoError(t, err)
	require.Equal(t, Cell{X: 7, Y: 2, Z: 1}, c)
	require.Equal(t, r3.Vector{X: 7.5, Y: 2.5, Z: 1.5}, s.CellCenter(c))
}

func TestMapPointOutOfRange(t *testing.T) {
	s, err := NewSpace(unitBox(t), 2)
	require.NoError(t, err)
	outside := r3.Vector{X: 1.5, Y: -0.5, Z: 0.3}

	_, err = s.MapPoint(outside)
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)

	clamped := s.WithRangePolicy(format.RangeClamp)
	require.Equal(t, format.RangeReject, s.RangePolicy())
	c, err := clamped.MapPoint(outside)
	require.NoError(t, err)
	require.Equal(t, Cell{X: 3, Y: 0, Z: 1}, c)

	_, err = clamped.MapPoint(r3.Vector{X: math.NaN()})
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)
}

func TestMapIndex(t *testing.T) {
	box, err := NewBoundingBox(r3.Vector{}, r3.Vector{X: 255, Y: 255, Z: 255})
	require.NoError(t, err)
	s, err := NewSpace(box, 8)
	require.NoError(t, err)

	c, err := s.MapIndex(0, 17, 255)
	require.NoError(t, err)
	require.Equal(t, Cell{X: 0, Y: 17, Z: 255}, c)

	_, err = s.MapIndex(256, 0, 0)
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)
	_, err = s.MapIndex(0, -1, 0)
	require.ErrorIs(t, err, errs.ErrPointOutOfRange)

	c, err = s.WithRangePolicy(format.RangeClamp).MapIndex(300, -4, 12)
	require.NoError(t, err)
	require.Equal(t, Cell{X: 255, Y: 0, Z: 12}, c)
}

func TestMapIndexOffsetBox(t *testing.T) {
	box, err := NewBoundingBox(r3.Vector{X: 10, Y: 10, Z: 10}, r3.Vector{X: 13, Y: 13, Z: 13})
	require.NoError(t, err)
	s, err := NewSpace(box, 2)
	require.NoError(t, err)

	c, err := s.MapIndex(10, 12, 13)
	require.NoError(t, err)
	require.Equal(t, Cell{X: 0, Y: 2, Z: 3}, c)
}

func TestMortonRoundTrip(t *testing.T) {
	cells := []Cell{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 0x1fffff, Y: 0x1fffff, Z: 0x1fffff},
		{X: 12345, Y: 678, Z: 90210},
	}
	for _, c := range cells {
		require.Equal(t, c, CellFromMorton(c.Morton()))
	}

	require.Equal(t, uint64(1), Cell{X: 1}.Morton())
	require.Equal(t, uint64(2), Cell{Y: 1}.Morton())
	require.Equal(t, uint64(4), Cell{Z: 1}.Morton())
	require.Equal(t, uint64(7), Cell{X: 1, Y: 1, Z: 1}.Morton())
	require.Equal(t, uint64(1<<63-1), Cell{X: 0x1fffff, Y: 0x1fffff, Z: 0x1fffff}.Morton())
}

func TestOctantMatchesMorton(t *testing.T) {
	const depth = 4
	c := Cell{X: 0b1010, Y: 0b0110, Z: 0b1111}

	var code uint64
	for level := 0; level < depth; level++ {
		code = code<<3 | uint64(c.Octant(level, depth))
	}
	require.Equal(t, c.Morton(), code)
	require.Equal(t, uint8(0b101), c.Octant(0, depth))
}
