// Package id generates random public identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet for opaque ids.
	Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// TrackingAlphabet keeps codes readable over the phone: digits and
	// uppercase letters only.
	TrackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	DefaultLength = 12
)

// Generate returns a cryptographically random base62 string.
func Generate(length int) (string, error) {
	return GenerateFrom(Base62Alphabet, length)
}

// GenerateFrom draws length characters uniformly from alphabet.
func GenerateFrom(alphabet string, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if alphabet == "" {
		return "", fmt.Errorf("alphabet must not be empty")
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// NewTrackingCode returns a 12 character uppercase alphanumeric code.
func NewTrackingCode() (string, error) {
	return GenerateFrom(TrackingAlphabet, DefaultLength)
}

// IsTrackingCode validates the shape of a tracking code without touching
// the store.
func IsTrackingCode(s string) bool {
	if len(s) != DefaultLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
