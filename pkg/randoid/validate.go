package randoid

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidID is returned by Validate for identifiers the generator could not
// have produced.
var ErrInvalidID = errors.New("invalid id")

// Validate reports whether id has the generator's size and consists only of
// symbols from its alphabet. Length and positions count characters, not bytes.
// The returned error wraps ErrInvalidID and names the first problem found.
func (g *Generator) Validate(id string) error {
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidID)
	}
	if n := utf8.RuneCountInString(id); n != g.size {
		return fmt.Errorf("%w: expected length %d, got %d", ErrInvalidID, g.size, n)
	}
	pos := 0
	for _, r := range id {
		if !g.alphabet.Contains(r) {
			return fmt.Errorf("%w: character %q at position %d not in alphabet", ErrInvalidID, r, pos)
		}
		pos++
	}
	return nil
}
