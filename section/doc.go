// Package section defines the fixed binary header of the VOLA format.
//
// # File Structure
//
//	┌───────────────────────────────────────────────────────┐
//	│ Header (96 bytes, fixed)                              │
//	│  0  options   uint16, always little-endian            │
//	│  2  depth     uint8                                   │
//	│  3  compress  uint8                                   │
//	│  4  payload   uint16 bytes per occupied cell          │
//	│  6  reserved  uint16                                  │
//	│  8  bbox min  3 × float64                             │
//	│ 32  bbox max  3 × float64                             │
//	│ 56  crs       16 bytes ASCII, zero padded             │
//	│ 72  occupied  uint64                                  │
//	│ 80  body len  uint64 stored length                    │
//	│ 88  checksum  uint64 xxHash64 of uncompressed body    │
//	├───────────────────────────────────────────────────────┤
//	│ Body (compressed as one block when compress != None)  │
//	│  sparse: pre-order mask bytes, payload after leaves   │
//	│  dense:  (2^depth)^3 occupancy bits in Morton order,  │
//	│          then occupied × payload bytes                │
//	└───────────────────────────────────────────────────────┘
//
// # Options Word
//
//	bit 0     byte order (0=little, 1=big) for every other field
//	bit 1     density (0=sparse, 1=dense)
//	bit 2     attribute packing (0=bytes, 1=bits)
//	bit 3     reserved, must be 0
//	bits 4-15 magic number, 0xB01 for version 1
package section
