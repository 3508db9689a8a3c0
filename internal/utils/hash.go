package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex-encoded SHA-256 digest of the given content.
// Seller-submitted transfer evidence is hashed at confirmation time so later
// tampering with the stored evidence is detectable.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
