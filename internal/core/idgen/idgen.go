// Package idgen builds identifier generators from user facing settings: the
// config file defaults and command line overrides.
package idgen

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/randoid/pkg/randoid"
)

// Source kinds accepted in config and flags.
const (
	SourceCrypto  = "crypto"
	SourcePCG     = "pcg"
	SourceChaCha8 = "chacha8"
)

// SourceKinds returns every supported source kind.
func SourceKinds() []string {
	return []string{SourceCrypto, SourcePCG, SourceChaCha8}
}

// IsSeeded reports whether kind produces reproducible output.
func IsSeeded(kind string) bool {
	return kind == SourcePCG || kind == SourceChaCha8
}

// Options describe a generator.
type Options struct {
	Size int
	// Alphabet names a built-in or custom alphabet. Ignored when Chars is set.
	Alphabet string
	// Chars is a literal alphabet given on the command line.
	Chars  string
	Source string
	Seed   uint64
}

// New returns a generator for opts. Custom maps alphabet names to symbols and
// takes part in name resolution after the built-ins.
func New(opts Options, custom map[string]string) (*randoid.Generator, error) {
	if opts.Size < 0 {
		return nil, fmt.Errorf("size must not be negative, got %d", opts.Size)
	}

	var (
		alphabet *randoid.Alphabet
		err      error
	)
	if opts.Chars != "" {
		alphabet, err = randoid.NewAlphabet(opts.Chars)
		if err != nil {
			return nil, fmt.Errorf("chars: %w", err)
		}
	} else {
		alphabet, err = ResolveAlphabet(opts.Alphabet, custom)
		if err != nil {
			return nil, err
		}
	}

	src, err := NewSource(opts.Source, opts.Seed)
	if err != nil {
		return nil, err
	}

	return randoid.NewGenerator(opts.Size, alphabet, src), nil
}

// ResolveAlphabet returns the alphabet registered under name. An empty name
// resolves to the default URL alphabet.
func ResolveAlphabet(name string, custom map[string]string) (*randoid.Alphabet, error) {
	if strings.TrimSpace(name) == "" {
		return randoid.URL, nil
	}
	if a, ok := randoid.Lookup(name); ok {
		return a, nil
	}
	if symbols, ok := custom[name]; ok {
		a, err := randoid.NewAlphabet(symbols)
		if err != nil {
			return nil, fmt.Errorf("alphabet %q: %w", name, err)
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown alphabet %q", name)
}

// NewSource returns the random source for kind. Seed is ignored by the crypto
// source. An empty kind selects crypto.
func NewSource(kind string, seed uint64) (io.Reader, error) {
	switch kind {
	case "", SourceCrypto:
		return randoid.CryptoSource(), nil
	case SourcePCG:
		return randoid.NewPCG(seed, 0), nil
	case SourceChaCha8:
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:8], seed)
		return randoid.NewChaCha8(key), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want one of %s)", kind, strings.Join(SourceKinds(), ", "))
	}
}
