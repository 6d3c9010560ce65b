// Package volume serializes octree documents into VOLA files and reads them
// back.
//
// A file is a 96-byte section.Header followed by a body in one of two
// layouts:
//
//   - Sparse: a pre-order walk of the tree. Every internal node writes its
//     8-bit child mask, every leaf writes its payload. Size grows with the
//     number of occupied cells.
//   - Dense: one bit per cell for all (2^depth)^3 cells in Morton order, MSB
//     first, followed by the payloads of the occupied cells in the same order.
//     Occupancy of any cell is a bit lookup.
//
// The body may be compressed as a whole; the header checksum always covers
// the uncompressed body.
//
// Basic usage:
//
//	enc, _ := volume.NewEncoder(volume.WithCompression(format.CompressionZstd))
//	n, err := enc.WriteFile(doc, "scan.vol")
//
//	data, _ := os.ReadFile("scan.vol")
//	dec, _ := volume.NewDecoder(data)
//	vol, err := dec.Decode()
package volume
