// Package bitio addresses single bits of a byte slice, most significant bit first.
//
// Bit i of a stream lives in byte i/8 at position 7-(i%8). Attribute payloads
// and the dense occupancy grid both use this order.
package bitio

// Set sets bit i of buf.
func Set(buf []byte, i int) {
	buf[i>>3] |= 0x80 >> (i & 7)
}

// Get returns bit i of buf.
func Get(buf []byte, i int) uint8 {
	return (buf[i>>3] >> (7 - (i & 7))) & 1
}

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}
