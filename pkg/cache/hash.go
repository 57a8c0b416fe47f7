package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key from the given components, in the
// form prefix:hash(parts...). Layout keys hash the word-list fingerprint
// plus the layout-relevant options; artifact keys hash the layout plus the
// render options.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) so distinct inputs cannot collide in
	// practice.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the full 64-character hex SHA-256 of data. The pipeline uses
// it to fingerprint word lists and layouts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
