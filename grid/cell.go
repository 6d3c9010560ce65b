package grid

// Cell is an integer cell index in [0, 2^depth-1]^3.
type Cell struct {
	X, Y, Z uint32
}

// Octant returns the child octant (0-7) the cell falls in when descending
// from level to level+1 of a depth-level tree. Bit 0 is the x half, bit 1 the
// y half and bit 2 the z half.
func (c Cell) Octant(level, depth int) uint8 {
	shift := uint(depth - 1 - level)
	return uint8((c.X>>shift)&1 | ((c.Y>>shift)&1)<<1 | ((c.Z>>shift)&1)<<2)
}

// Morton returns the Z-order code of the cell. For a depth-level tree the code
// is the root-to-leaf sequence of octants, three bits per level, so sorting by
// Morton code yields pre-order leaf order.
func (c Cell) Morton() uint64 {
	return part1By2(uint64(c.X)) | part1By2(uint64(c.Y))<<1 | part1By2(uint64(c.Z))<<2
}

// CellFromMorton decodes a Z-order code.
func CellFromMorton(code uint64) Cell {
	return Cell{
		X: uint32(compact1By2(code)),
		Y: uint32(compact1By2(code >> 1)),
		Z: uint32(compact1By2(code >> 2)),
	}
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249

	return x
}

func compact1By2(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x ^ (x >> 2)) & 0x10c30c30c30c30c3
	x = (x ^ (x >> 4)) & 0x100f00f00f00f00f
	x = (x ^ (x >> 8)) & 0x1f0000ff0000ff
	x = (x ^ (x >> 16)) & 0x1f00000000ffff
	x = (x ^ (x >> 32)) & 0x1fffff

	return x
}
