package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the content-addressed identity of a string.
// Format: lowercase hex of SHA256(utf8 bytes of value)
//
// No normalization and no domain prefix are applied: the result is published
// verbatim as properties.sha256_hash, so clients can recompute it with any
// SHA-256 tool. Two values share a fingerprint only if they are byte-equal.
func Fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
