package octree

import (
	"math/bits"

	"github.com/arloliu/vola/grid"
)

// Handle indexes a node in a Document's arena.
type Handle uint32

// RootHandle is the handle of the root node of every tree.
const RootHandle Handle = 0

// Kind tags a node as internal or leaf.
type Kind uint8

const (
	KindInternal Kind = iota
	KindLeaf
)

func (k Kind) String() string {
	if k == KindLeaf {
		return "leaf"
	}

	return "internal"
}

// Node is one arena entry.
type Node struct {
	kind     Kind
	level    uint8
	mask     uint8
	children []Handle  // internal only, ordered by octant
	cell     grid.Cell // leaf only
}

func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) Level() int   { return int(n.level) }
func (n *Node) IsLeaf() bool { return n.kind == KindLeaf }

// Mask returns the child mask; bit i is set iff octant i has a child.
func (n *Node) Mask() uint8 {
	return n.mask
}

// Children returns the child handles in octant order. The slice must not be
// modified.
func (n *Node) Children() []Handle {
	return n.children
}

// Cell returns the cell of a leaf.
func (n *Node) Cell() grid.Cell {
	return n.cell
}

// Child returns the child in octant, if present.
func (n *Node) Child(octant uint8) (Handle, bool) {
	bit := uint8(1) << octant
	if n.mask&bit == 0 {
		return 0, false
	}

	return n.children[slot(n.mask, octant)], true
}

// setChild records h as the child in octant. The octant must be empty.
func (n *Node) setChild(octant uint8, h Handle) {
	i := slot(n.mask, octant)
	n.children = append(n.children, 0)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = h
	n.mask |= 1 << octant
}

// slot returns the position of octant in the compact child slice.
func slot(mask, octant uint8) int {
	return bits.OnesCount8(mask & (1<<octant - 1))
}
