package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 digest of the text's UTF-8 bytes as lowercase hex.
// It is the sole deduplication key for stored documents, so collision resistance is a
// correctness requirement rather than an optimization.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
