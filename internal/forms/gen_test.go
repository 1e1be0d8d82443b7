package forms

import (
	"testing"

	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{name: "size ok", fn: ValidateSize, input: "21"},
		{name: "size zero", fn: ValidateSize, input: "0"},
		{name: "size padded", fn: ValidateSize, input: " 8 "},
		{name: "size negative", fn: ValidateSize, input: "-1", wantErr: true},
		{name: "size text", fn: ValidateSize, input: "big", wantErr: true},
		{name: "count ok", fn: ValidateCount, input: "5"},
		{name: "count zero", fn: ValidateCount, input: "0", wantErr: true},
		{name: "seed empty", fn: ValidateSeed, input: ""},
		{name: "seed ok", fn: ValidateSeed, input: "18446744073709551615"},
		{name: "seed negative", fn: ValidateSeed, input: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenForm_ResultFromPrefill(t *testing.T) {
	opts := idgen.Options{Size: 12, Alphabet: "hex", Source: idgen.SourcePCG, Seed: 7}

	res, err := NewGenForm(opts, 3, []string{"hex", "url"}).Result()
	require.NoError(t, err)

	assert.Equal(t, opts, res.Options)
	assert.Equal(t, 3, res.Count)
}

func TestGenForm_ChangedAlphabetDropsChars(t *testing.T) {
	opts := idgen.Options{Size: 4, Chars: "xy", Alphabet: "url"}
	f := NewGenForm(opts, 1, []string{"hex", "url"})
	f.alphabet = "hex"
	f.size = "6"

	res, err := f.Result()
	require.NoError(t, err)

	assert.Equal(t, "hex", res.Options.Alphabet)
	assert.Empty(t, res.Options.Chars)
	assert.Equal(t, 6, res.Options.Size)
	assert.Equal(t, idgen.SourceCrypto, res.Options.Source)
}

func TestGenForm_InvalidInput(t *testing.T) {
	f := NewGenForm(idgen.Options{Size: 4}, 1, []string{"url"})
	f.count = "lots"

	_, err := f.Result()
	assert.Error(t, err)
}
