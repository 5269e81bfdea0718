package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString is [Hash] for text inputs such as SVG documents.
func HashString(s string) string {
	return Hash([]byte(s))
}

// hashKey builds "<op>:<digest>", the digest covering the JSON encoding of
// parts. Values JSON cannot encode (NaN, Inf) fall back to their %v form.
func hashKey(op string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", parts))
	}
	return op + ":" + Hash(data)
}
