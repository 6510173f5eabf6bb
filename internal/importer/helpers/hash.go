// Package helpers contains hashing helpers for the importer.
package helpers

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Sha256String calculates the SHA256 hash of a given string and returns its string representation.
func Sha256String(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// Key returns the SHA256 hash of the parts joined by "|".
func Key(parts ...string) string {
	return Sha256String(strings.Join(parts, "|"))
}
