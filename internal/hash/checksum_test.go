package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty body", nil, 0xef46db3751d8e999},
		{"short body", []byte("test"), 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Checksum(tt.data))
			assert.True(t, Verify(tt.data, tt.sum))
			assert.False(t, Verify(tt.data, tt.sum+1))
		})
	}
}

func TestChecksumDetectsSingleBitFlip(t *testing.T) {
	body := []byte{0x81, 0x01, 0x80, 0x00}
	sum := Checksum(body)

	body[2] ^= 0x01
	assert.NotEqual(t, sum, Checksum(body))
}
