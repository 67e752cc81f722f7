package auth

import (
	"crypto/sha256"
)

// CheckPassword compares the submitted password with the expected one.
// Both operands are hashed to fixed-size digests first, then compared by
// XORing every byte pair into an OR-accumulator, so execution never
// short-circuits on the first differing byte. Fails closed when either
// operand is empty.
func CheckPassword(input, expected string) bool {
	if input == "" || expected == "" {
		return false
	}

	a := sha256.Sum256([]byte(input))
	b := sha256.Sum256([]byte(expected))

	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}

	return diff == 0
}
