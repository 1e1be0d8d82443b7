// Package forms holds the interactive prompts used by the CLI.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/internal/core/validate"
	"github.com/hay-kot/randoid/internal/styles"
)

// GenResult holds the values collected by the gen form.
type GenResult struct {
	Options idgen.Options
	Count   int
}

// GenForm asks for the generator settings, prefilled from the current ones.
type GenForm struct {
	form *huh.Form

	base     idgen.Options
	alphabet string
	source   string
	size     string
	count    string
	seed     string
}

// NewGenForm builds the form. Alphabets lists the names offered in the
// alphabet select, built-ins and custom alike.
func NewGenForm(opts idgen.Options, count int, alphabets []string) *GenForm {
	f := &GenForm{
		base:     opts,
		alphabet: opts.Alphabet,
		source:   opts.Source,
		size:     strconv.Itoa(opts.Size),
		count:    strconv.Itoa(count),
		seed:     strconv.FormatUint(opts.Seed, 10),
	}
	if f.source == "" {
		f.source = idgen.SourceCrypto
	}

	alphabetOpts := make([]huh.Option[string], len(alphabets))
	for i, name := range alphabets {
		alphabetOpts[i] = huh.NewOption(name, name)
	}

	sources := idgen.SourceKinds()
	sourceOpts := make([]huh.Option[string], len(sources))
	for i, kind := range sources {
		sourceOpts[i] = huh.NewOption(kind, kind)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Alphabet").
				Options(alphabetOpts...).
				Value(&f.alphabet).
				Filtering(true),
			huh.NewInput().
				Title("Size").
				Description("symbols per id").
				Value(&f.size).
				Validate(ValidateSize),
			huh.NewInput().
				Title("Count").
				Value(&f.count).
				Validate(ValidateCount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source").
				Description("pcg and chacha8 are seeded and repeatable").
				Options(sourceOpts...).
				Value(&f.source),
			huh.NewInput().
				Title("Seed").
				Value(&f.seed).
				Validate(ValidateSeed),
		),
	).WithTheme(styles.FormTheme())

	return f
}

// Run shows the form and returns the collected values.
func (f *GenForm) Run() (GenResult, error) {
	if err := f.form.Run(); err != nil {
		return GenResult{}, err
	}
	return f.Result()
}

// Result converts the bound field values.
func (f *GenForm) Result() (GenResult, error) {
	size, err := parseSize(f.size)
	if err != nil {
		return GenResult{}, err
	}
	count, err := parseCount(f.count)
	if err != nil {
		return GenResult{}, err
	}
	seed, err := parseSeed(f.seed)
	if err != nil {
		return GenResult{}, err
	}

	opts := f.base
	opts.Size = size
	opts.Alphabet = f.alphabet
	opts.Source = f.source
	opts.Seed = seed
	if f.alphabet != f.base.Alphabet {
		// A picked alphabet replaces literal chars from the command line.
		opts.Chars = ""
	}

	return GenResult{Options: opts, Count: count}, nil
}

// ValidateSize checks the size input.
func ValidateSize(s string) error {
	_, err := parseSize(s)
	return err
}

// ValidateCount checks the count input.
func ValidateCount(s string) error {
	_, err := parseCount(s)
	return err
}

// ValidateSeed checks the seed input.
func ValidateSeed(s string) error {
	_, err := parseSeed(s)
	return err
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("size must be a number")
	}
	return n, validate.Size(n)
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("count must be a number")
	}
	return n, validate.Count(n)
}

func parseSeed(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed must be a non-negative integer")
	}
	return n, nil
}
