package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOwnerKey returns a path-safe identifier for an owner ID so raw
// profile ids never appear in storage keys.
func HashOwnerKey(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}
