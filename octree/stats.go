package octree

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/vola/errs"
)

// LevelStats counts the nodes on one tree level.
type LevelStats struct {
	Level    int
	Internal int
	Leaves   int
}

// Stats holds per-level node counts for levels 0..depth.
type Stats struct {
	Levels []LevelStats
}

// Internal returns the total number of internal nodes.
func (s Stats) Internal() int {
	total := 0
	for _, l := range s.Levels {
		total += l.Internal
	}

	return total
}

// Leaves returns the total number of occupied leaves.
func (s Stats) Leaves() int {
	total := 0
	for _, l := range s.Levels {
		total += l.Leaves
	}

	return total
}

// Stats walks the tree and counts nodes per level. It also checks the arena
// invariants and returns errs.ErrCorruptTree when one does not hold.
func (d *Document) Stats() (Stats, error) {
	depth := d.Depth()
	stats := Stats{Levels: make([]LevelStats, depth+1)}
	for i := range stats.Levels {
		stats.Levels[i].Level = i
	}

	seen := make([]bool, len(d.nodes))
	var visit func(h Handle, level int) error
	visit = func(h Handle, level int) error {
		n, err := d.Node(h)
		if err != nil {
			return err
		}
		if seen[h] {
			return fmt.Errorf("%w: node %d reached twice", errs.ErrCorruptTree, h)
		}
		seen[h] = true

		if n.Level() != level {
			return fmt.Errorf("%w: node %d at level %d claims level %d", errs.ErrCorruptTree, h, level, n.Level())
		}
		if n.IsLeaf() != (level == depth) {
			return fmt.Errorf("%w: %s node %d at level %d of %d", errs.ErrCorruptTree, n.Kind(), h, level, depth)
		}
		if n.IsLeaf() {
			stats.Levels[level].Leaves++
			return nil
		}

		if bits.OnesCount8(n.mask) != len(n.children) || (len(n.children) == 0 && h != RootHandle) {
			return fmt.Errorf("%w: node %d mask %08b with %d children", errs.ErrCorruptTree, h, n.mask, len(n.children))
		}
		stats.Levels[level].Internal++
		for _, child := range n.children {
			if err := visit(child, level+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := visit(RootHandle, 0); err != nil {
		return Stats{}, err
	}
	if got := stats.Levels[depth].Leaves; got != d.OccupiedCount() {
		return Stats{}, fmt.Errorf("%w: %d leaves for %d occupied cells", errs.ErrCorruptTree, got, d.OccupiedCount())
	}

	return stats, nil
}
