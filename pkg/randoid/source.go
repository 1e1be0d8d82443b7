package randoid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	mrand "math/rand/v2"
	"sync"
)

// CryptoSource returns the operating system's secure random source. It is the
// default source for every generator and is safe for concurrent use.
func CryptoSource() io.Reader {
	return rand.Reader
}

// NewPCG returns a deterministic source backed by a PCG generator seeded with
// seed1 and seed2. The same seeds always produce the same identifiers, which
// makes it suitable for tests and reproducible fixtures. It is not secure and
// not safe for concurrent use.
func NewPCG(seed1, seed2 uint64) io.Reader {
	return FromRand(mrand.NewPCG(seed1, seed2))
}

// NewChaCha8 returns a deterministic, cryptographically strong source seeded
// with seed. It is not safe for concurrent use.
func NewChaCha8(seed [32]byte) io.Reader {
	return mrand.NewChaCha8(seed)
}

// FromRand adapts a math/rand/v2 source to an io.Reader. Every eight bytes are
// one little-endian Uint64; a trailing group shorter than eight bytes consumes
// one further value and discards its unused high bytes.
func FromRand(src mrand.Source) io.Reader {
	return &randReader{src: src}
}

type randReader struct {
	src mrand.Source
}

func (r *randReader) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.src.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		v := r.src.Uint64()
		for i := range p {
			p[i] = byte(v)
			v >>= 8
		}
	}
	return n, nil
}

// FillFunc adapts a function that fills a buffer with random bytes to an
// io.Reader. The function must fill the whole buffer.
type FillFunc func(p []byte)

func (f FillFunc) Read(p []byte) (int, error) {
	f(p)
	return len(p), nil
}

// Locked wraps src so that it can be shared between goroutines. Generators
// never lock on their own; use this, or give each goroutine its own source.
func Locked(src io.Reader) io.Reader {
	return &lockedReader{src: src}
}

type lockedReader struct {
	mu  sync.Mutex
	src io.Reader
}

func (r *lockedReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Read(p)
}
