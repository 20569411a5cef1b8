// Package token generates the 24-character identifiers that name records
// inside a project descriptor. Tokens carry 96 bits of randomness rendered
// as uppercase hex; uniqueness is statistical, not tracked.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Length is the fixed width of a descriptor identifier.
const Length = 24

// New returns a fresh 24-character uppercase hex identifier.
func New() string {
	var buf [Length / 2]byte
	// The crypto source does not fail on supported platforms.
	if _, err := rand.Read(buf[:]); err != nil {
		panic("token: entropy source unavailable: " + err.Error())
	}
	return strings.ToUpper(hex.EncodeToString(buf[:]))
}

// IsValid reports whether s has the shape of a descriptor identifier.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
