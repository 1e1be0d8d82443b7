package randoid

// New returns an identifier of DefaultSize symbols from the URL alphabet using
// the crypto source.
//
// New panics if the operating system's random source fails, which on
// supported platforms does not happen.
func New() string {
	return Default().MustGenerate()
}

// NewSize is like New but returns an identifier of size symbols.
func NewSize(size int) string {
	return WithSize(size).MustGenerate()
}
