package randoid

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cyrillic is the 64 letters from U+0410 to U+044F.
const cyrillic = "АБВГДЕЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯабвгдежзийклмнопрстуфхцчшщъыьэюя"

// wide128 is 128 distinct symbols, more than printable ASCII can supply.
var wide128 = URL.String() + cyrillic

func TestNewAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		symbols  string
		wantErr  error
		wantBits int
	}{
		{name: "single symbol", symbols: "a", wantBits: 0},
		{name: "two symbols", symbols: "01", wantBits: 1},
		{name: "four symbols", symbols: "abcd", wantBits: 2},
		{name: "sixty four symbols", symbols: URL.String(), wantBits: 6},
		{name: "full byte range", symbols: strings.Repeat("ab", 128), wantBits: 8},
		{name: "empty", symbols: "", wantErr: ErrEmptyAlphabet},
		{name: "three symbols", symbols: "abc", wantErr: ErrNotPowerOfTwo},
		{name: "sixty two symbols", symbols: URL.String()[2:], wantErr: ErrNotPowerOfTwo},
		{name: "too large", symbols: strings.Repeat("ab", 256), wantErr: ErrAlphabetTooLarge},
		{name: "tab symbol", symbols: "a\tbc", wantErr: ErrInvalidSymbol},
		{name: "newline symbol", symbols: "a\nbc", wantErr: ErrInvalidSymbol},
		{name: "space symbol", symbols: "a bc", wantErr: ErrInvalidSymbol},
		{name: "invalid utf8", symbols: "ab\xff\xfe", wantErr: ErrInvalidSymbol},
		{name: "replacement character", symbols: "ab\ufffdc", wantErr: ErrInvalidSymbol},
		{name: "non breaking space", symbols: "ab\u00a0c", wantErr: ErrInvalidSymbol},
		{name: "greek", symbols: "αβγδ", wantBits: 2},
		{name: "mixed width", symbols: "aé€😀", wantBits: 2},
		{name: "accented is three symbols", symbols: "abé", wantErr: ErrNotPowerOfTwo},
		{name: "one twenty eight symbols", symbols: wide128, wantBits: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlphabet(tt.symbols)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, utf8.RuneCountInString(tt.symbols), a.Len())
			assert.Equal(t, tt.wantBits, a.Bits())
			assert.Equal(t, tt.symbols, a.String())
		})
	}
}

func TestMustAlphabet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustAlphabet("abc") })
	assert.NotPanics(t, func() { MustAlphabet("abcd") })
}

func TestAlphabet_Lookups(t *testing.T) {
	a := MustAlphabet("wxyz")

	assert.Equal(t, 'w', a.Symbol(0))
	assert.Equal(t, 'z', a.Symbol(3))
	assert.True(t, a.Contains('x'))
	assert.False(t, a.Contains('a'))
	assert.True(t, a.IsASCII())

	g := MustAlphabet("αβγδ")
	assert.Equal(t, 'δ', g.Symbol(3))
	assert.True(t, g.Contains('β'))
	assert.False(t, g.Contains('b'))
	assert.False(t, g.IsASCII())
}

func TestAlphabet_IndexMasksHighBits(t *testing.T) {
	a := MustAlphabet("abcd")

	for b := 0; b < 256; b++ {
		assert.Equal(t, a.Symbol(b%4), a.index(byte(b)))
	}
}

func TestAlphabet_HasDuplicates(t *testing.T) {
	assert.False(t, URL.HasDuplicates())
	assert.False(t, MustAlphabet("abcd").HasDuplicates())
	assert.True(t, MustAlphabet("abca").HasDuplicates())
	assert.False(t, MustAlphabet(wide128).HasDuplicates())
	assert.True(t, MustAlphabet("αβγα").HasDuplicates())
}

func TestBuiltinAlphabets(t *testing.T) {
	tests := []struct {
		name string
		a    *Alphabet
		size int
	}{
		{"url", URL, 64},
		{"hex", Hex, 16},
		{"hex-upper", HexUpper, 16},
		{"base32", Base32, 32},
		{"crockford32", Crockford32, 32},
		{"octal", Octal, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.a.Len())
			assert.False(t, tt.a.HasDuplicates())

			got, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Same(t, tt.a, got)
		})
	}
}

func TestURLAlphabet_Symbols(t *testing.T) {
	for i := 0; i < URL.Len(); i++ {
		c := URL.Symbol(i)
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
		assert.True(t, ok, "unexpected symbol %q", c)
	}
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("default")
	require.True(t, ok)
	assert.Same(t, URL, a)

	a, ok = Lookup("  HEX ")
	require.True(t, ok)
	assert.Same(t, Hex, a)

	_, ok = Lookup("base62")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"base32", "crockford32", "hex", "hex-upper", "octal", "url"}, Names())
	assert.True(t, IsBuiltin("default"))
	assert.False(t, IsBuiltin("custom"))
}
