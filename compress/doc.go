// Package compress provides the codecs applied to encoded VOLA bodies.
//
// The header is never compressed; the body (mask stream or bit grid plus
// payload bytes) is compressed as one block after encoding, and the header
// records the algorithm and the stored length. The xxHash64 checksum in the
// header always covers the uncompressed body.
//
// Supported algorithms:
//   - format.CompressionNone: pass-through
//   - format.CompressionZstd: klauspost/compress/zstd, or valyala/gozstd with
//     the gozstd build tag
//   - format.CompressionS2: klauspost/compress/s2
//   - format.CompressionLZ4: pierrec/lz4/v4 block format, prefixed with the
//     decoded length as a uvarint
//
// Uncompressed bodies are limited to MaxBodySize in both directions.
//
// Example:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "body")
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(body)
package compress
