package volume

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/internal/bitio"
	"github.com/arloliu/vola/internal/pool"
	"github.com/arloliu/vola/octree"
	"github.com/arloliu/vola/section"
)

// denseGridBytes returns the size of the occupancy bit array for depth.
func denseGridBytes(depth int) int {
	return bitio.ByteLen(1 << (3 * uint(depth)))
}

// writeDense appends the occupancy bit array of doc, then the payloads of the
// occupied cells, both in Morton order.
func writeDense(body *pool.ByteBuffer, doc *octree.Document) error {
	depth := doc.Depth()
	if depth > section.MaxDenseDepth {
		return fmt.Errorf("%w: dense depth %d exceeds %d", errs.ErrInvalidDepth, depth, section.MaxDenseDepth)
	}

	leaves, err := doc.Leaves()
	if err != nil {
		return err
	}

	width := doc.PayloadWidth()
	body.Grow(denseGridBytes(depth) + len(leaves)*width)

	occupancy := body.ExtendZero(denseGridBytes(depth))
	for _, cell := range leaves {
		bitio.Set(occupancy, int(cell.Morton()))
	}

	if width > 0 {
		for _, cell := range leaves {
			_, _ = body.Write(doc.Payload(cell))
		}
	}

	return nil
}

func readDense(body []byte, depth, width int, occupied uint64) ([]grid.Cell, []byte, error) {
	gridBytes := denseGridBytes(depth)
	if len(body) < gridBytes {
		return nil, nil, fmt.Errorf("%w: %d bytes for a %d byte grid", errs.ErrTruncatedBody, len(body), gridBytes)
	}

	occupancy := body[:gridBytes]
	count := 0
	for _, b := range occupancy {
		count += bits.OnesCount8(b)
	}
	if uint64(count) != occupied {
		return nil, nil, fmt.Errorf("%w: %d set bits for %d occupied cells", errs.ErrCorruptTree, count, occupied)
	}

	payloads := body[gridBytes:]
	if want := count * width; len(payloads) != want {
		if len(payloads) < want {
			return nil, nil, fmt.Errorf("%w: %d payload bytes, want %d", errs.ErrTruncatedBody, len(payloads), want)
		}

		return nil, nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, len(payloads)-want)
	}

	cells := make([]grid.Cell, 0, count)
	for i, b := range occupancy {
		for b != 0 {
			lead := bits.LeadingZeros8(b)
			cells = append(cells, grid.CellFromMorton(uint64(i*8+lead)))
			b &^= 0x80 >> lead
		}
	}

	return cells, append([]byte(nil), payloads...), nil
}
