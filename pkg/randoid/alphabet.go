package randoid

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"unicode"
	"unicode/utf8"
)

// MaxAlphabetSize is the largest supported alphabet. Every symbol is selected by
// a single random byte, so no more than 256 indices can be addressed.
const MaxAlphabetSize = 256

var (
	ErrEmptyAlphabet    = errors.New("alphabet is empty")
	ErrAlphabetTooLarge = errors.New("alphabet is too large")
	ErrNotPowerOfTwo    = errors.New("alphabet size is not a power of two")
	ErrInvalidSymbol    = errors.New("alphabet symbol is not a printable character")
)

// Alphabet is an immutable, ordered set of symbols whose size is a power of
// two. Symbols are Unicode characters; an alphabet made only of ASCII symbols
// produces one byte per symbol. The index mask and bit width are derived once
// at construction so generation never has to branch on the alphabet size.
//
// Symbols are expected to be distinct. Duplicates are accepted but bias the
// output towards the repeated symbol; see HasDuplicates.
//
// An Alphabet is safe for concurrent use and may be shared by any number of
// generators.
type Alphabet struct {
	symbols []rune
	text    string
	mask    byte
	bits    int

	// ascii holds the symbols as bytes when all of them are ASCII, else nil.
	ascii []byte
	// width is the longest UTF-8 encoding of any symbol.
	width int
}

// NewAlphabet validates symbols and returns the alphabet they describe. Each
// symbol must be a printable, non-space character; symbols is counted in
// characters, not bytes.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("%w: invalid UTF-8 %q", ErrInvalidSymbol, symbols)
	}

	runes := []rune(symbols)
	n := len(runes)
	switch {
	case n == 0:
		return nil, ErrEmptyAlphabet
	case n > MaxAlphabetSize:
		return nil, fmt.Errorf("%w: %d symbols, maximum is %d", ErrAlphabetTooLarge, n, MaxAlphabetSize)
	case n&(n-1) != 0:
		return nil, fmt.Errorf("%w: %d symbols", ErrNotPowerOfTwo, n)
	}

	width := 1
	for i, r := range runes {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) || r == utf8.RuneError {
			return nil, fmt.Errorf("%w: %q at index %d", ErrInvalidSymbol, r, i)
		}
		width = max(width, utf8.RuneLen(r))
	}

	a := &Alphabet{
		symbols: runes,
		text:    symbols,
		mask:    byte(n - 1),
		bits:    bits.TrailingZeros(uint(n)),
		width:   width,
	}
	if width == 1 {
		a.ascii = []byte(symbols)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics if symbols is not a valid
// alphabet. It is intended for package level variables, where an invalid
// literal then fails at program initialisation.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic("randoid: " + err.Error())
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Bits returns the number of random bits consumed per symbol, log2(Len()).
func (a *Alphabet) Bits() int {
	return a.bits
}

// IsASCII reports whether every symbol is a single byte. Only such alphabets
// can be used with Generator.Fill.
func (a *Alphabet) IsASCII() bool {
	return a.ascii != nil
}

// Symbol returns the symbol at index i.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	return slices.Contains(a.symbols, r)
}

// HasDuplicates reports whether any symbol appears more than once.
func (a *Alphabet) HasDuplicates() bool {
	seen := make(map[rune]struct{}, len(a.symbols))
	for _, r := range a.symbols {
		if _, ok := seen[r]; ok {
			return true
		}
		seen[r] = struct{}{}
	}
	return false
}

// String returns the symbols in order.
func (a *Alphabet) String() string {
	return a.text
}

// index maps a raw random byte to a symbol. The mask keeps the result in
// range because the alphabet size is a power of two.
func (a *Alphabet) index(b byte) rune {
	return a.symbols[b&a.mask]
}
