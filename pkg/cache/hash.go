package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashKey returns prefix:sha256(parts). Parts are length-prefixed so
// ("ab", "c") and ("a", "bc") hash differently.
func hashKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
