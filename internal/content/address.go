// Package content implements content addressing for sticker images.
// An image's identity is the SHA-256 hex digest of its exact bytes, so
// identical content always maps to the same identifier regardless of
// upload order, file name, or who submitted it.
package content

import (
	"crypto/sha256"
	"encoding/hex"
)

// PrefixLen is the number of leading hex characters used as the shard
// directory for local storage keys.
const PrefixLen = 5

// Address returns the content address for data: the lowercase hex
// SHA-256 digest of the bytes. Deterministic; re-hashing identical
// bytes always yields the same address.
func Address(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Prefix returns the shard prefix for an address, the first PrefixLen
// characters. Addresses shorter than PrefixLen are returned whole.
func Prefix(addr string) string {
	if len(addr) < PrefixLen {
		return addr
	}
	return addr[:PrefixLen]
}
