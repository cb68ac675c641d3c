package request

import (
	"crypto/rand"
	"fmt"
)

// publicIDAlphabet is the 64-character URL-safe alphabet. With 64 symbols
// each random byte maps onto the alphabet without modulo bias.
const publicIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// publicIDLength gives ~60 bits of entropy, enough that collisions are
// theoretical but still handled by a retry on insert.
const publicIDLength = 10

// NewPublicID generates a fresh shareable request id
func NewPublicID() (string, error) {
	b := make([]byte, publicIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate public id: %w", err)
	}

	for i, v := range b {
		b[i] = publicIDAlphabet[v&63]
	}

	return string(b), nil
}
