// Package randoid generates short, URL-safe random identifiers.
//
// Identifiers are built by drawing one random byte per symbol and masking it
// down to an index into an Alphabet. Because alphabet sizes are powers of two
// the mask yields a perfectly uniform index, with no modulo bias and no
// rejected draws.
//
// The zero-allocation path is Generator.Fill, which writes directly into a
// caller-owned buffer for ASCII alphabets; FillRunes does the same for any
// alphabet. Generate, Append, WriteTo and GenerateCompact are thin wrappers
// around the same core and produce identical symbols for identical source
// state.
package randoid

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultSize is the length of identifiers produced by Default.
const DefaultSize = 21

// chunkSize bounds how many random bytes are requested from the source at once.
// It is a multiple of eight so that Uint64 backed sources are consumed the same
// way however the output is sunk.
const chunkSize = 64

// maxEmptyReads is the number of consecutive (0, nil) reads tolerated from a
// source before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

var (
	// ErrBufferTooSmall is returned by Fill when the buffer cannot hold Size symbols.
	ErrBufferTooSmall = errors.New("randoid: buffer too small")
	// ErrMultiByteAlphabet is returned by Fill for alphabets with non-ASCII
	// symbols, whose identifiers have no fixed byte length.
	ErrMultiByteAlphabet = errors.New("randoid: alphabet has multi-byte symbols")
)

// Generator produces identifiers of a fixed size from an alphabet and a random
// source.
//
// A Generator is as safe for concurrent use as its source: the default crypto
// source may be shared freely, seeded sources must not be shared without
// wrapping them with Locked.
type Generator struct {
	alphabet *Alphabet
	src      io.Reader
	size     int
}

// NewGenerator returns a generator producing identifiers of size symbols from
// alphabet, drawing randomness from src. A nil alphabet selects URL and a nil
// src selects CryptoSource. NewGenerator panics if size is negative.
func NewGenerator(size int, alphabet *Alphabet, src io.Reader) *Generator {
	if size < 0 {
		panic(fmt.Sprintf("randoid: negative size %d", size))
	}
	if alphabet == nil {
		alphabet = URL
	}
	if src == nil {
		src = CryptoSource()
	}
	return &Generator{
		alphabet: alphabet,
		src:      src,
		size:     size,
	}
}

// Default returns a generator using the URL alphabet, DefaultSize and the
// crypto source.
func Default() *Generator {
	return NewGenerator(DefaultSize, URL, nil)
}

// WithSize returns a default generator producing identifiers of size symbols.
func WithSize(size int) *Generator {
	return NewGenerator(size, URL, nil)
}

// WithAlphabet returns a default generator drawing symbols from alphabet.
func WithAlphabet(alphabet *Alphabet) *Generator {
	return NewGenerator(DefaultSize, alphabet, nil)
}

// WithSource returns a default generator reading randomness from src.
func WithSource(src io.Reader) *Generator {
	return NewGenerator(DefaultSize, URL, src)
}

// Sized returns a copy of g producing identifiers of size symbols. The copy
// shares g's source.
func (g *Generator) Sized(size int) *Generator {
	return NewGenerator(size, g.alphabet, g.src)
}

// Using returns a copy of g drawing symbols from alphabet. The copy shares g's
// source.
func (g *Generator) Using(alphabet *Alphabet) *Generator {
	return NewGenerator(g.size, alphabet, g.src)
}

// Size returns the number of symbols per identifier.
func (g *Generator) Size() int {
	return g.size
}

// Alphabet returns the alphabet symbols are drawn from.
func (g *Generator) Alphabet() *Alphabet {
	return g.alphabet
}

// Fill writes one identifier into buf[:g.Size()] without allocating. Bytes
// beyond Size are left untouched. If buf is shorter than Size, Fill returns
// ErrBufferTooSmall, and if the alphabet has non-ASCII symbols it returns
// ErrMultiByteAlphabet, both before reading any randomness. Errors from the
// source are returned unchanged and leave buf partially written.
func (g *Generator) Fill(buf []byte) error {
	if !g.alphabet.IsASCII() {
		return ErrMultiByteAlphabet
	}
	if len(buf) < g.size {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, g.size, len(buf))
	}
	return g.fill(buf[:g.size])
}

// FillRunes writes one identifier into buf[:g.Size()], one symbol per rune.
// It works with every alphabet and otherwise behaves like Fill.
func (g *Generator) FillRunes(buf []rune) error {
	if len(buf) < g.size {
		return fmt.Errorf("%w: need %d runes, have %d", ErrBufferTooSmall, g.size, len(buf))
	}

	var chunk [chunkSize]byte
	for dst := buf[:g.size]; len(dst) > 0; {
		n := min(len(dst), chunkSize)
		if err := g.draw(chunk[:n]); err != nil {
			return err
		}
		for i, b := range chunk[:n] {
			dst[i] = g.alphabet.index(b)
		}
		dst = dst[n:]
	}
	return nil
}

// WriteTo writes one identifier to w. It implements io.WriterTo.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	var (
		chunk   [chunkSize]byte
		enc     [chunkSize * utf8.UTFMax]byte
		written int64
	)
	for rem := g.size; rem > 0; {
		n := min(rem, chunkSize)
		out, err := g.appendSymbols(enc[:0], chunk[:n])
		if err != nil {
			return written, err
		}
		m, err := w.Write(out)
		written += int64(m)
		if err != nil {
			return written, err
		}
		if m != len(out) {
			return written, io.ErrShortWrite
		}
		rem -= n
	}
	return written, nil
}

// Append appends one identifier to dst and returns the extended slice.
func (g *Generator) Append(dst []byte) ([]byte, error) {
	start := len(dst)

	if g.alphabet.IsASCII() {
		dst = slices.Grow(dst, g.size)
		dst = dst[:start+g.size]
		if err := g.fill(dst[start:]); err != nil {
			return dst[:start], err
		}
		return dst, nil
	}

	var chunk [chunkSize]byte
	dst = slices.Grow(dst, g.size*g.alphabet.width)
	for rem := g.size; rem > 0; {
		n := min(rem, chunkSize)
		var err error
		if dst, err = g.appendSymbols(dst, chunk[:n]); err != nil {
			return dst[:start], err
		}
		rem -= n
	}
	return dst, nil
}

// Generate returns a new identifier. For ASCII alphabets the returned string
// is allocated with exactly Size bytes.
func (g *Generator) Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(g.size * g.alphabet.width)
	if _, err := g.WriteTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustGenerate is like Generate but panics if the source fails.
func (g *Generator) MustGenerate() string {
	id, err := g.Generate()
	if err != nil {
		panic("randoid: " + err.Error())
	}
	return id
}

// draw reads len(dst) random bytes from the source in chunks. Every output
// form goes through draw, so the source is consumed the same way whatever the
// sink.
func (g *Generator) draw(dst []byte) error {
	for len(dst) > 0 {
		n := min(len(dst), chunkSize)
		if err := readFull(g.src, dst[:n]); err != nil {
			return err
		}
		dst = dst[n:]
	}
	return nil
}

// fill draws len(dst) random bytes and maps each, in place, to a symbol of an
// ASCII alphabet.
func (g *Generator) fill(dst []byte) error {
	if err := g.draw(dst); err != nil {
		return err
	}
	sym, mask := g.alphabet.ascii, g.alphabet.mask
	for i, b := range dst {
		dst[i] = sym[b&mask]
	}
	return nil
}

// appendSymbols draws len(chunk) random bytes into chunk and appends the
// UTF-8 encoding of the matching symbols to dst.
func (g *Generator) appendSymbols(dst, chunk []byte) ([]byte, error) {
	if err := g.draw(chunk); err != nil {
		return dst, err
	}
	if sym := g.alphabet.ascii; sym != nil {
		mask := g.alphabet.mask
		for _, b := range chunk {
			dst = append(dst, sym[b&mask])
		}
		return dst, nil
	}
	for _, b := range chunk {
		dst = utf8.AppendRune(dst, g.alphabet.index(b))
	}
	return dst, nil
}

// readFull reads exactly len(p) bytes from r. Unlike io.ReadFull it returns the
// source's error unchanged, so callers can match it directly.
func readFull(r io.Reader, p []byte) error {
	empty := 0
	for len(p) > 0 {
		n, err := r.Read(p)
		p = p[n:]
		if err != nil {
			if len(p) == 0 && errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return io.ErrNoProgress
		}
	}
	return nil
}
