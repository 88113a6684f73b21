package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// KeyPrefixMetadata is the prefix for cached page metadata keys
	KeyPrefixMetadata = "syl:metadata:"
)

// MetadataKey returns the Redis key for the cached metadata of a URL.
// URLs are hashed so arbitrary lengths and characters stay valid keys.
func MetadataKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return KeyPrefixMetadata + hex.EncodeToString(sum[:])
}
