package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/randoid/internal/core/config"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/internal/core/validate"
	"github.com/hay-kot/randoid/pkg/randoid"
)

// generatorFlags are the flags shared by every command that builds a
// generator. Unset flags fall back to the config defaults.
type generatorFlags struct {
	size     int
	alphabet string
	chars    string
	source   string
	seed     uint64
}

func (g *generatorFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "size",
			Aliases:     []string{"n"},
			Usage:       "number of symbols per id",
			Destination: &g.size,
		},
		&cli.StringFlag{
			Name:        "alphabet",
			Aliases:     []string{"a"},
			Usage:       "built-in or configured alphabet name (see 'randoid alphabets')",
			Destination: &g.alphabet,
		},
		&cli.StringFlag{
			Name:        "chars",
			Usage:       "literal alphabet; length must be a power of two",
			Destination: &g.chars,
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "random source (crypto, pcg, chacha8)",
			Destination: &g.source,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "seed for pcg and chacha8 sources",
			Destination: &g.seed,
		},
	}
}

// options merges the flags that were set on c over the config defaults.
func (g *generatorFlags) options(c *cli.Command, cfg *config.Config) (idgen.Options, error) {
	opts := cfg.Options()

	if c.IsSet("size") {
		if err := validate.Size(g.size); err != nil {
			return idgen.Options{}, err
		}
		opts.Size = g.size
	}
	if c.IsSet("alphabet") {
		opts.Alphabet = g.alphabet
	}
	if c.IsSet("chars") {
		opts.Chars = g.chars
	}
	if c.IsSet("source") {
		opts.Source = g.source
	}
	if c.IsSet("seed") {
		if !c.IsSet("source") && !idgen.IsSeeded(opts.Source) {
			opts.Source = idgen.SourcePCG
		}
		if !idgen.IsSeeded(opts.Source) {
			return idgen.Options{}, fmt.Errorf("--seed has no effect with the %s source", opts.Source)
		}
		opts.Seed = g.seed
	}

	return opts, nil
}

// generator builds the generator described by the flags and config.
func (g *generatorFlags) generator(c *cli.Command, cfg *config.Config) (*randoid.Generator, idgen.Options, error) {
	opts, err := g.options(c, cfg)
	if err != nil {
		return nil, idgen.Options{}, err
	}

	gen, err := idgen.New(opts, cfg.Alphabets)
	if err != nil {
		return nil, idgen.Options{}, err
	}

	log.Debug().
		Str("component", "generator").
		Int("size", gen.Size()).
		Str("alphabet", alphabetLabel(opts)).
		Str("source", opts.Source).
		Msg("generator ready")

	return gen, opts, nil
}

// alphabetLabel names the alphabet for display.
func alphabetLabel(opts idgen.Options) string {
	if opts.Chars != "" {
		return "chars"
	}
	if opts.Alphabet == "" {
		return "url"
	}
	return opts.Alphabet
}
