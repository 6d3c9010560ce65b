// Package endian provides the byte order engines used by the VOLA header.
//
// The header stores its own byte order in the options field, which is always
// little-endian; every other multi-byte field (payload width, bounding box,
// counts, checksum) uses the engine selected by that bit.
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint64(buf[72:], count)
//	endian.PutFloat64(engine, buf[8:], box.Min.X)
//
// All functions are safe for concurrent use. Engines are stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes least significant bytes first.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

// PutFloat64 stores v into b[0:8] as IEEE 754 bits.
func PutFloat64(engine EndianEngine, b []byte, v float64) {
	engine.PutUint64(b, math.Float64bits(v))
}

// Float64 reads an IEEE 754 float64 from b[0:8].
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
