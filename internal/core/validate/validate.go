// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

const (
	// MaxSize caps the length of a single identifier accepted from users.
	MaxSize = 4096
	// MaxCount caps how many identifiers a single command may print.
	MaxCount = 1_000_000
)

// Size validates an identifier length. Zero is allowed and yields empty ids.
func Size(n int) error {
	if n < 0 || n > MaxSize {
		return fmt.Errorf("size must be between 0 and %d, got %d", MaxSize, n)
	}
	return nil
}

// Count validates the number of identifiers to generate.
func Count(n int) error {
	if n < 1 || n > MaxCount {
		return fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, n)
	}
	return nil
}

// AlphabetName validates the name used to register a custom alphabet.
func AlphabetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("name %q must not contain whitespace", name)
	}
	return nil
}
