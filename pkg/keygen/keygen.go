package keygen

import (
	"crypto/rand"
	"fmt"
)

const (
	// Prefix is prepended to every generated key.
	Prefix = "sk-"
	// RandomLength is the number of alphabet characters after the prefix.
	RandomLength = 40

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var randomRead = rand.Read

// Generate produces a new opaque API key: "sk-" followed by 40 characters
// drawn from the base62 alphabet. Bytes are mapped with modulo reduction;
// keys already issued were generated this way, so the mapping is part of the
// key format and must not change.
func Generate() (string, error) {
	buf := make([]byte, RandomLength)
	if _, err := randomRead(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	out := make([]byte, RandomLength)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return Prefix + string(out), nil
}
