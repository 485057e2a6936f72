package feed

import (
	"crypto/sha256"
	"encoding/hex"
)

const idLength = 16

// MakeID derives a stable article id from its URL, or its title when the
// URL is empty. Collisions within 64 bits are not guarded against.
func MakeID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:idLength]
}
