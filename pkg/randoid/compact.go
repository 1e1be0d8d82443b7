package randoid

// CompactInline is the largest identifier, in bytes, that a Compact stores
// inside the struct itself. DefaultSize identifiers from ASCII alphabets always
// fit.
const CompactInline = 23

// Compact is an identifier held by value. Identifiers of up to CompactInline
// bytes live inside the struct itself; longer ones fall back to a string. The
// zero value is the empty identifier.
type Compact struct {
	heap   string
	n      uint8
	inline [CompactInline]byte
}

// GenerateCompact returns a new identifier as a Compact. It draws exactly the
// same symbols Generate would for the same source state.
func (g *Generator) GenerateCompact() (Compact, error) {
	var c Compact
	if g.size*g.alphabet.width > CompactInline {
		s, err := g.Generate()
		if err != nil {
			return Compact{}, err
		}
		c.heap = s
		return c, nil
	}

	out, err := g.Append(c.inline[:0])
	if err != nil {
		return Compact{}, err
	}
	c.n = uint8(len(out))
	return c, nil
}

// Len returns the identifier length in bytes.
func (c Compact) Len() int {
	if c.heap != "" {
		return len(c.heap)
	}
	return int(c.n)
}

// Inline reports whether the identifier is stored inside the struct.
func (c Compact) Inline() bool {
	return c.heap == ""
}

// String returns the identifier.
func (c Compact) String() string {
	if c.heap != "" {
		return c.heap
	}
	return string(c.inline[:c.n])
}

// AppendTo appends the identifier to dst.
func (c Compact) AppendTo(dst []byte) []byte {
	if c.heap != "" {
		return append(dst, c.heap...)
	}
	return append(dst, c.inline[:c.n]...)
}

// MarshalText implements encoding.TextMarshaler.
func (c Compact) MarshalText() ([]byte, error) {
	return c.AppendTo(nil), nil
}
