package randoid

import (
	"slices"
	"strings"
)

// Built-in alphabets.
var (
	// URL is the default alphabet: 64 symbols that are safe to use in URLs and
	// file names without escaping.
	URL = MustAlphabet("_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

	// Hex is the lowercase hexadecimal alphabet.
	Hex = MustAlphabet("0123456789abcdef")

	// HexUpper is the uppercase hexadecimal alphabet.
	HexUpper = MustAlphabet("0123456789ABCDEF")

	// Base32 is the RFC 4648 base32 alphabet.
	Base32 = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567")

	// Crockford32 is Douglas Crockford's base32 alphabet, which leaves out
	// I, L, O and U to avoid misreads.
	Crockford32 = MustAlphabet("0123456789ABCDEFGHJKMNPQRSTVWXYZ")

	// Octal is the digits 0 through 7.
	Octal = MustAlphabet("01234567")
)

var registry = map[string]*Alphabet{
	"url":         URL,
	"hex":         Hex,
	"hex-upper":   HexUpper,
	"base32":      Base32,
	"crockford32": Crockford32,
	"octal":       Octal,
}

// aliases resolve to a registry name but are not listed by Names.
var aliases = map[string]string{
	"default": "url",
}

// Lookup returns the built-in alphabet registered under name. Names are case
// insensitive.
func Lookup(name string) (*Alphabet, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	a, ok := registry[name]
	return a, ok
}

// Names returns the names of all built-in alphabets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name refers to a built-in alphabet or alias.
func IsBuiltin(name string) bool {
	_, ok := Lookup(name)
	return ok
}
