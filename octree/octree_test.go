package octree

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
)

func gridSpace(t *testing.T, size float64, depth int) grid.Space {
	t.Helper()
	box, err := grid.NewBoundingBox(r3.Vector{}, r3.Vector{X: size, Y: size, Z: size})
	require.NoError(t, err)
	s, err := grid.NewSpace(box, depth)
	require.NoError(t, err)

	return s
}

// shape flattens a document into (level, mask) pairs in pre-order.
func shape(t *testing.T, doc *Document) [][2]int {
	t.Helper()
	var out [][2]int
	err := doc.Walk(func(_ Handle, n *Node) error {
		out = append(out, [2]int{n.Level(), int(n.Mask())})
		return nil
	})
	require.NoError(t, err)

	return out
}

func TestOppositeCorners(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 255, 8))
	require.NoError(t, err)
	require.NoError(t, b.InsertIndex(0, 0, 0, nil))
	require.NoError(t, b.InsertIndex(255, 255, 255, nil))

	doc, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, doc.OccupiedCount())
	require.Zero(t, doc.PayloadWidth())

	root, err := doc.Node(RootHandle)
	require.NoError(t, err)
	require.Equal(t, uint8(0x81), root.Mask())
	require.Len(t, root.Children(), 2)

	leaves, err := doc.Leaves()
	require.NoError(t, err)
	require.Equal(t, []grid.Cell{{}, {X: 255, Y: 255, Z: 255}}, leaves)

	// one path of 8 internal nodes per corner, sharing the root
	require.Equal(t, 1+2*8, doc.NodeCount())
}

func TestLastWriteWins(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 1, 2), WithAttributes(3, format.AttributeBytes))
	require.NoError(t, err)

	require.NoError(t, b.InsertPoint(r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}, []float64{1, 2, 3}))
	require.NoError(t, b.InsertPoint(r3.Vector{X: 0.2, Y: 0.2, Z: 0.2}, []float64{7, 8, 9}))

	doc, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, doc.OccupiedCount())
	require.Equal(t, 2, doc.PointCount())
	require.Equal(t, 1, doc.Overwrites())
	require.Equal(t, []byte{7, 8, 9}, doc.Payload(grid.Cell{}))
}

func TestOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := make([]r3.Vector, 500)
	for i := range points {
		points[i] = r3.Vector{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
	}

	build := func(pts []r3.Vector) *Document {
		b, err := NewBuilder(gridSpace(t, 10, 6))
		require.NoError(t, err)
		require.NoError(t, b.InsertPoints(pts, nil))
		doc, err := b.Build()
		require.NoError(t, err)

		return doc
	}

	shuffled := append([]r3.Vector(nil), points...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	a, b := build(points), build(shuffled)
	require.Equal(t, shape(t, a), shape(t, b))

	leavesA, err := a.Leaves()
	require.NoError(t, err)
	leavesB, err := b.Leaves()
	require.NoError(t, err)
	require.Equal(t, leavesA, leavesB)
}

func TestLeavesInMortonOrder(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 15, 4))
	require.NoError(t, err)
	for _, idx := range [][3]int{{15, 0, 3}, {1, 1, 1}, {0, 9, 0}, {8, 8, 8}, {2, 3, 4}} {
		require.NoError(t, b.InsertIndex(idx[0], idx[1], idx[2], nil))
	}
	doc, err := b.Build()
	require.NoError(t, err)

	leaves, err := doc.Leaves()
	require.NoError(t, err)
	require.Len(t, leaves, 5)
	for i := 1; i < len(leaves); i++ {
		require.Less(t, leaves[i-1].Morton(), leaves[i].Morton())
	}
}

func TestStats(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 3, 2))
	require.NoError(t, err)
	require.NoError(t, b.InsertIndex(0, 0, 0, nil))
	require.NoError(t, b.InsertIndex(1, 0, 0, nil))
	require.NoError(t, b.InsertIndex(3, 3, 3, nil))
	doc, err := b.Build()
	require.NoError(t, err)

	stats, err := doc.Stats()
	require.NoError(t, err)
	require.Equal(t, []LevelStats{
		{Level: 0, Internal: 1},
		{Level: 1, Internal: 2},
		{Level: 2, Leaves: 3},
	}, stats.Levels)
	require.Equal(t, 3, stats.Internal())
	require.Equal(t, 3, stats.Leaves())
}

func TestStatsDetectsCorruption(t *testing.T) {
	newDoc := func() *Document {
		b, err := NewBuilder(gridSpace(t, 3, 2))
		require.NoError(t, err)
		require.NoError(t, b.InsertIndex(0, 0, 0, nil))
		require.NoError(t, b.InsertIndex(3, 3, 3, nil))
		doc, err := b.Build()
		require.NoError(t, err)

		return doc
	}

	tests := map[string]func(d *Document){
		"dangling handle": func(d *Document) { d.nodes[0].children[0] = 99 },
		"shared child":    func(d *Document) { d.nodes[0].children[1] = d.nodes[0].children[0] },
		"mask mismatch":   func(d *Document) { d.nodes[0].mask |= 0x02 },
		"wrong level":     func(d *Document) { d.nodes[d.nodes[0].children[0]].level = 5 },
	}
	for name, corrupt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := newDoc()
			corrupt(doc)
			_, err := doc.Stats()
			require.ErrorIs(t, err, errs.ErrCorruptTree)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 1, 3))
	require.NoError(t, err)
	_, err = b.Build()
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = b.Build()
	require.ErrorIs(t, err, errs.ErrBuilderSealed)
	require.ErrorIs(t, b.Insert(grid.Cell{}, nil), errs.ErrBuilderSealed)
}

func TestInsertErrors(t *testing.T) {
	b, err := NewBuilder(gridSpace(t, 1, 2), WithAttributes(8, format.AttributeBits))
	require.NoError(t, err)

	require.ErrorIs(t, b.Insert(grid.Cell{X: 4}, nil), errs.ErrPointOutOfRange)
	require.ErrorIs(t, b.InsertPoint(r3.Vector{X: 2}, nil), errs.ErrPointOutOfRange)
	require.ErrorIs(t, b.Insert(grid.Cell{}, make([]float64, 9)), errs.ErrAttributeOverflow)

	err = b.InsertPoints([]r3.Vector{{}, {}}, [][]float64{{1}})
	require.ErrorIs(t, err, errs.ErrMissingAttributes)
}

func TestBuilderOptions(t *testing.T) {
	space := gridSpace(t, 1, 11)

	_, err := NewBuilder(space, WithDensity(format.DensityDense))
	require.ErrorIs(t, err, errs.ErrInvalidDepth)

	_, err = NewBuilder(space, WithCRS("a-very-long-crs-identifier"))
	require.ErrorIs(t, err, errs.ErrCRSTooLong)

	b, err := NewBuilder(space, WithCRS("EPSG:4326"), WithAttributes(12, format.AttributeBits), WithSizeHint(4))
	require.NoError(t, err)
	require.Equal(t, 2, b.PayloadWidth())
	require.NoError(t, b.Insert(grid.Cell{X: 5}, []float64{1}))

	doc, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, "EPSG:4326", doc.CRS())
	require.Equal(t, format.DensitySparse, doc.Density())
	require.Equal(t, []byte{0x80, 0}, doc.Payload(grid.Cell{X: 5}))
	require.Equal(t, []byte{0, 0}, doc.Payload(grid.Cell{X: 6}))
}
