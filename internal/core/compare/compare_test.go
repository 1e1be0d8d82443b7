package compare

import (
	"testing"

	"github.com/hay-kot/randoid/pkg/randoid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	schemes, err := Schemes(randoid.Default())
	require.NoError(t, err)

	rows, err := Run(schemes)
	require.NoError(t, err)
	require.Len(t, rows, len(schemes))

	wantLen := map[string]int{
		"randoid (21 x 6 bit)": 21,
		"uuid v4":              36,
		"uuid v7":              36,
		"ulid":                 26,
		"ksuid":                27,
		"nanoid":               21,
		"cuid2":                DefaultCUID2Length,
	}

	for i, row := range rows {
		t.Run(row.Name, func(t *testing.T) {
			want, ok := wantLen[row.Name]
			require.True(t, ok, "unexpected scheme %q", row.Name)
			assert.Equal(t, want, row.Length)
			assert.Len(t, row.Sample, row.Length)
			assert.Positive(t, row.RandomBits)
			assert.NoError(t, schemes[i].Validate(row.Sample), "scheme must accept its own sample")
		})
	}

	assert.InDelta(t, 126, rows[0].RandomBits, 0)
	assert.InDelta(t, 6, rows[0].BitsPerChar, 0)
}

func TestNewRandoid_MultiByte(t *testing.T) {
	g := randoid.NewGenerator(10, randoid.MustAlphabet("αβγδ"), randoid.NewPCG(3, 4))
	s := NewRandoid(g)

	assert.Equal(t, "randoid (10 x 2 bit)", s.Name())

	rows, err := Run([]Scheme{s})
	require.NoError(t, err)
	assert.Equal(t, "γβαδδαββδβ", rows[0].Sample)
	assert.Equal(t, 10, rows[0].Length, "length counts symbols, not bytes")
	assert.InDelta(t, 2, rows[0].BitsPerChar, 0)
	assert.NoError(t, s.Validate(rows[0].Sample))
	assert.Error(t, s.Validate("abcdabcdab"))
}

func TestIdentify(t *testing.T) {
	schemes, err := Schemes(randoid.Default())
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{
			name: "uuid v4",
			id:   "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			want: []string{"uuid v4"},
		},
		{
			name: "ulid",
			id:   "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			want: []string{"ulid"},
		},
		{
			name: "ksuid",
			id:   "0ujtsYcgvSTl8PAuAdqWYSMnLOv",
			want: []string{"ksuid"},
		},
		{
			name: "default randoid and nanoid share a shape",
			id:   "V1StGXR8_Z5jdHi6B-myT",
			want: []string{"randoid (21 x 6 bit)", "nanoid"},
		},
		{
			name: "nothing",
			id:   "!",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identify(schemes, tt.id))
		})
	}
}

func TestNewCUID2(t *testing.T) {
	_, err := NewCUID2(1)
	assert.Error(t, err)
	_, err = NewCUID2(33)
	assert.Error(t, err)

	c, err := NewCUID2(10)
	require.NoError(t, err)

	id, err := c.Generate()
	require.NoError(t, err)
	assert.Len(t, id, 10)
	assert.NoError(t, c.Validate(id))
	assert.Error(t, c.Validate(id+"x"))
	assert.InDelta(t, 46.5, c.RandomBits(), 0.01)
}

func TestUUIDVersionMismatch(t *testing.T) {
	v7, err := UUIDv7{}.Generate()
	require.NoError(t, err)

	assert.NoError(t, UUIDv7{}.Validate(v7))
	assert.ErrorContains(t, UUIDv4{}.Validate(v7), "expected UUID v4, got v7")
}
