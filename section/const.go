package section

const (
	// Option bit masks, bits 0-3.
	EndiannessMask   = 0x0001 // 0=little-endian, 1=big-endian
	DensityMask      = 0x0002 // 0=sparse, 1=dense
	BitPayloadMask   = 0x0004 // 0=byte attributes, 1=bit-packed attributes
	ReservedBitsMask = 0x0008 // must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicVolaV1 identifies version 1 of the VOLA layout.
	MagicVolaV1 = 0xB010
)

// Header field offsets and sizes.
const (
	HeaderSize = 96 // fixed header size in bytes

	OptionsOffset      = 0
	DepthOffset        = 2
	CompressionOffset  = 3
	PayloadWidthOffset = 4
	ReservedOffset     = 6
	BoxMinOffset       = 8
	BoxMaxOffset       = 32
	CRSOffset          = 56
	OccupiedOffset     = 72
	BodyLengthOffset   = 80
	ChecksumOffset     = 88

	CRSSize = 16 // zero padded ASCII

	// MaxDepth bounds sparse trees; Morton codes of depth-21 cells fit 63 bits.
	MaxDepth = 21
	// MaxDenseDepth bounds dense grids to 2^30 cells (128MiB of bits).
	MaxDenseDepth = 10
	// MaxPayloadWidth is the largest per-cell payload in bytes.
	MaxPayloadWidth = 0xFFFF
)
