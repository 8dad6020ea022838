// Package xxhash fingerprints section text so cached analyses can be
// matched to the exact text they were generated from.
package xxhash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the xxHash64 of s as 16 hex characters.
func Hash(s string) string {
	h := xxhash.Sum64String(s)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}
