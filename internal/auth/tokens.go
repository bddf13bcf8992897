package auth

import (
	"crypto/rand"
	"fmt"
)

// SessionTokenLength is the length of every issued session token.
const SessionTokenLength = 40

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSessionToken returns a random alphanumeric token of
// SessionTokenLength characters.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
