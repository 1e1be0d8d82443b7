package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/randoid/internal/core/config"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/internal/core/validate"
	"github.com/hay-kot/randoid/internal/forms"
	"github.com/hay-kot/randoid/pkg/randoid"
	"github.com/hay-kot/randoid/pkg/tmpl"
)

type GenCmd struct {
	flags *Flags
	gen   generatorFlags

	count       int
	format      string
	json        bool
	compact     bool
	interactive bool
}

// NewGenCmd creates a new gen command.
func NewGenCmd(flags *Flags) *GenCmd {
	return &GenCmd{flags: flags}
}

// Register adds the gen command to the application.
func (cmd *GenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "gen",
		Aliases:   []string{"g"},
		Usage:     "Generate random ids",
		UsageText: "randoid gen [options]",
		Description: `Generates random ids from a power-of-two alphabet.

Defaults come from the config file; flags override them for one run.

Examples:
  randoid gen                      # one 21 symbol url-safe id
  randoid gen -n 32 -a hex -c 5    # five 32 digit hex ids
  randoid gen --chars 01 -n 64     # a 64 bit binary string
  randoid gen --source pcg --seed 42 --count 3
  randoid gen --format 'user_{{ .ID }}'`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Flags returns the gen flags.
func (cmd *GenCmd) Flags() []cli.Flag {
	return append(cmd.gen.flags(),
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "number of ids to generate",
			Destination: &cmd.count,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output template, e.g. 'user_{{ .ID }}' (fields: ID, Index, Size, Alphabet)",
			Destination: &cmd.format,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON",
			Destination: &cmd.json,
		},
		&cli.BoolFlag{
			Name:        "compact",
			Usage:       "build ids in place without a heap buffer (ids up to 23 symbols)",
			Destination: &cmd.compact,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "choose settings in a form before generating",
			Destination: &cmd.interactive,
		},
	)
}

// RootFlags returns Flags marked local for the root command, where a bare
// 'randoid' generates ids. Subcommands do not inherit them.
func (cmd *GenCmd) RootFlags() []cli.Flag {
	flags := cmd.Flags()
	for _, f := range flags {
		switch f := f.(type) {
		case *cli.IntFlag:
			f.Local = true
		case *cli.Uint64Flag:
			f.Local = true
		case *cli.StringFlag:
			f.Local = true
		case *cli.BoolFlag:
			f.Local = true
		}
	}
	return flags
}

type genOutput struct {
	Alphabet    string   `json:"alphabet"`
	Size        int      `json:"size"`
	EntropyBits float64  `json:"entropy_bits"`
	IDs         []string `json:"ids"`
}

// Run generates ids according to the flags and config.
func (cmd *GenCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.cfg()

	opts, err := cmd.gen.options(c, cfg)
	if err != nil {
		return err
	}

	count := cfg.Defaults.Count
	if c.IsSet("count") {
		count = cmd.count
	}
	if err := validate.Count(count); err != nil {
		return err
	}

	if cmd.interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--interactive requires a terminal")
		}
		names := append(randoid.Names(), cfg.AlphabetNames()...)
		res, err := forms.NewGenForm(opts, count, names).Run()
		if err != nil {
			return err
		}
		opts, count = res.Options, res.Count
	}

	g, err := idgen.New(opts, cfg.Alphabets)
	if err != nil {
		return err
	}

	format := cfg.Format
	if c.IsSet("format") {
		format = cmd.format
	}

	log.Debug().
		Str("component", "gen").
		Int("count", count).
		Bool("compact", cmd.compact).
		Msg("generating ids")

	next := g.Generate
	if cmd.compact {
		next = func() (string, error) {
			id, err := g.GenerateCompact()
			return id.String(), err
		}
	}

	if cmd.json {
		out := genOutput{
			Alphabet:    alphabetLabel(opts),
			Size:        g.Size(),
			EntropyBits: g.EntropyBits(),
			IDs:         make([]string, 0, count),
		}
		for range count {
			id, err := next()
			if err != nil {
				return fmt.Errorf("generate id: %w", err)
			}
			out.IDs = append(out.IDs, id)
		}

		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := bufio.NewWriter(c.Root().Writer)
	defer func() { _ = w.Flush() }()

	if format == config.DefaultFormat && !cmd.compact {
		return streamIDs(w, g, count)
	}

	t, err := tmpl.Parse(format)
	if err != nil {
		return err
	}
	return writeFormatted(w, t, next, count, config.FormatData{
		Size:     g.Size(),
		Alphabet: alphabetLabel(opts),
	})
}

// streamIDs writes ids straight from the generator into w.
func streamIDs(w *bufio.Writer, g *randoid.Generator, count int) error {
	for range count {
		if _, err := g.WriteTo(w); err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeFormatted(w *bufio.Writer, t *template.Template, next func() (string, error), count int, data config.FormatData) error {
	for i := range count {
		id, err := next()
		if err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		data.ID = id
		data.Index = i

		line, err := tmpl.Execute(t, data)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
