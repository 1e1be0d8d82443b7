// Package compare samples other identifier schemes next to randoid output so
// users can weigh length against collision resistance.
package compare

import (
	"crypto/rand"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/nrednav/cuid2"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"

	"github.com/hay-kot/randoid/pkg/randoid"
)

// Scheme is an identifier format that can produce and recognize ids.
type Scheme interface {
	Name() string
	Generate() (string, error)
	Validate(id string) error
	// RandomBits is the number of random bits carried by one id.
	RandomBits() float64
	// Sortable reports whether ids sort by creation time.
	Sortable() bool
}

// Row is one line of a comparison.
type Row struct {
	Name       string  `json:"name"`
	Sample     string  `json:"sample"`
	Length     int     `json:"length"`
	RandomBits float64 `json:"random_bits"`
	// BitsPerChar shows how densely the format packs randomness.
	BitsPerChar float64 `json:"bits_per_char"`
	Sortable    bool    `json:"sortable"`
}

// Schemes returns the built-in schemes with g listed first.
func Schemes(g *randoid.Generator) ([]Scheme, error) {
	c, err := NewCUID2(DefaultCUID2Length)
	if err != nil {
		return nil, err
	}
	return []Scheme{
		NewRandoid(g),
		UUIDv4{},
		UUIDv7{},
		ULID{},
		KSUID{},
		NanoID{},
		c,
	}, nil
}

// Run samples one id from every scheme.
func Run(schemes []Scheme) ([]Row, error) {
	rows := make([]Row, 0, len(schemes))
	for _, s := range schemes {
		id, err := s.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		row := Row{
			Name:       s.Name(),
			Sample:     id,
			Length:     utf8.RuneCountInString(id),
			RandomBits: s.RandomBits(),
			Sortable:   s.Sortable(),
		}
		if row.Length > 0 {
			row.BitsPerChar = math.Round(row.RandomBits/float64(row.Length)*100) / 100
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Identify returns the names of the schemes that accept id.
func Identify(schemes []Scheme, id string) []string {
	var names []string
	for _, s := range schemes {
		if s.Validate(id) == nil {
			names = append(names, s.Name())
		}
	}
	return names
}

// Randoid wraps a generator as a Scheme.
type Randoid struct {
	g *randoid.Generator
}

// NewRandoid returns a Scheme backed by g.
func NewRandoid(g *randoid.Generator) Randoid { return Randoid{g: g} }

func (r Randoid) Name() string {
	return fmt.Sprintf("randoid (%d x %d bit)", r.g.Size(), r.g.Alphabet().Bits())
}
func (r Randoid) Generate() (string, error) { return r.g.Generate() }
func (r Randoid) Validate(id string) error  { return r.g.Validate(id) }
func (r Randoid) RandomBits() float64       { return r.g.EntropyBits() }
func (r Randoid) Sortable() bool            { return false }

// UUIDv4 is a random RFC 9562 UUID.
type UUIDv4 struct{}

func (UUIDv4) Name() string { return "uuid v4" }

func (UUIDv4) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (UUIDv4) Validate(id string) error { return validateUUID(id, 4) }
func (UUIDv4) RandomBits() float64      { return 122 }
func (UUIDv4) Sortable() bool           { return false }

// UUIDv7 is a time ordered RFC 9562 UUID.
type UUIDv7 struct{}

func (UUIDv7) Name() string { return "uuid v7" }

func (UUIDv7) Generate() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (UUIDv7) Validate(id string) error { return validateUUID(id, 7) }
func (UUIDv7) RandomBits() float64      { return 74 }
func (UUIDv7) Sortable() bool           { return true }

func validateUUID(id string, version uuid.Version) error {
	if len(id) != 36 {
		return fmt.Errorf("expected length 36, got %d", len(id))
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid UUID format: %w", err)
	}
	if parsed.Version() != version {
		return fmt.Errorf("expected UUID v%d, got v%d", version, parsed.Version())
	}
	return nil
}

// ULID is a lexicographically sortable identifier.
type ULID struct{}

func (ULID) Name() string { return "ulid" }

func (ULID) Generate() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

func (ULID) Validate(id string) error {
	if len(id) != ulid.EncodedSize {
		return fmt.Errorf("expected length %d, got %d", ulid.EncodedSize, len(id))
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("invalid ULID format: %w", err)
	}
	return nil
}

func (ULID) RandomBits() float64 { return 80 }
func (ULID) Sortable() bool      { return true }

// KSUID is a K-sortable identifier with a 128 bit payload.
type KSUID struct{}

func (KSUID) Name() string { return "ksuid" }

func (KSUID) Generate() (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate KSUID: %w", err)
	}
	return id.String(), nil
}

func (KSUID) Validate(id string) error {
	if len(id) != 27 {
		return fmt.Errorf("expected length 27, got %d", len(id))
	}
	if _, err := ksuid.Parse(id); err != nil {
		return fmt.Errorf("invalid KSUID format: %w", err)
	}
	return nil
}

func (KSUID) RandomBits() float64 { return 128 }
func (KSUID) Sortable() bool      { return true }

// NanoID uses the reference nanoid generator with its default settings.
type NanoID struct{}

func (NanoID) Name() string { return "nanoid" }

func (NanoID) Generate() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate NanoID: %w", err)
	}
	return id, nil
}

// Validate accepts the same shape as a default randoid id.
func (NanoID) Validate(id string) error { return randoid.Default().Validate(id) }
func (NanoID) RandomBits() float64      { return 126 }
func (NanoID) Sortable() bool           { return false }

// DefaultCUID2Length matches the cuid2 reference length.
const DefaultCUID2Length = 24

// CUID2 hashes entropy, a counter and a fingerprint into a base36 id.
type CUID2 struct {
	length   int
	generate func() string
}

// NewCUID2 returns a CUID2 scheme producing ids of the given length, which
// must be between 2 and 32.
func NewCUID2(length int) (*CUID2, error) {
	if length < 2 || length > 32 {
		return nil, fmt.Errorf("cuid2 length must be between 2 and 32, got %d", length)
	}
	gen, err := cuid2.Init(cuid2.WithLength(length))
	if err != nil {
		return nil, fmt.Errorf("failed to init CUID2 generator: %w", err)
	}
	return &CUID2{length: length, generate: gen}, nil
}

func (c *CUID2) Name() string { return "cuid2" }

func (c *CUID2) Generate() (string, error) { return c.generate(), nil }

func (c *CUID2) Validate(id string) error {
	if len(id) != c.length {
		return fmt.Errorf("expected length %d, got %d", c.length, len(id))
	}
	if !cuid2.IsCuid(id) {
		return fmt.Errorf("invalid CUID2 format")
	}
	return nil
}

// RandomBits counts the base36 body; the first character is always a letter.
func (c *CUID2) RandomBits() float64 {
	return math.Round(float64(c.length-1)*math.Log2(36)*10) / 10
}

func (c *CUID2) Sortable() bool { return false }
