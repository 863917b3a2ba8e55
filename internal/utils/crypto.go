package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateTokenKey returns a 40-character hex string suitable for use
// as an opaque bearer token.
func GenerateTokenKey() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails if the system entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
