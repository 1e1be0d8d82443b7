package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hay-kot/randoid/internal/printer"
	"github.com/hay-kot/randoid/pkg/randoid"
)

type EntropyCmd struct {
	flags       *Flags
	gen         generatorFlags
	probability float64
	rate        float64
	json        bool
}

// NewEntropyCmd creates a new entropy command.
func NewEntropyCmd(flags *Flags) *EntropyCmd {
	return &EntropyCmd{flags: flags}
}

// Register adds the entropy command to the application.
func (cmd *EntropyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "entropy",
		Usage:     "Estimate entropy and collision odds",
		UsageText: "randoid entropy [options]",
		Description: `Reports the entropy of one id and how many ids can be drawn before the
chance of any collision reaches --probability. With --rate, that count is
turned into a duration.

Examples:
  randoid entropy                          # default 21 symbol url ids
  randoid entropy -n 10 -a hex --rate 1000 # 10 hex digits at 1000 ids/hour`,
		Flags: append(cmd.gen.flags(),
			&cli.Float64Flag{
				Name:        "probability",
				Aliases:     []string{"p"},
				Usage:       "collision probability to solve for",
				Value:       1e-6,
				Destination: &cmd.probability,
			},
			&cli.Float64Flag{
				Name:        "rate",
				Usage:       "ids generated per hour",
				Destination: &cmd.rate,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		),
		Action: cmd.run,
	})
	return app
}

// EntropyReport is the result of an entropy estimate.
type EntropyReport struct {
	Alphabet    string  `json:"alphabet"`
	Symbols     int     `json:"symbols"`
	Size        int     `json:"size"`
	EntropyBits float64 `json:"entropy_bits"`
	Probability float64 `json:"probability"`
	IDs         float64 `json:"ids"`
	// Hours is only set when a generation rate was given.
	Hours float64 `json:"hours,omitempty"`
}

// NewEntropyReport estimates collision odds for g.
func NewEntropyReport(g *randoid.Generator, alphabet string, p, ratePerHour float64) (EntropyReport, error) {
	if p <= 0 || p >= 1 {
		return EntropyReport{}, fmt.Errorf("probability must be between 0 and 1 exclusive, got %g", p)
	}
	if ratePerHour < 0 {
		return EntropyReport{}, fmt.Errorf("rate must not be negative, got %g", ratePerHour)
	}

	r := EntropyReport{
		Alphabet:    alphabet,
		Symbols:     g.Alphabet().Len(),
		Size:        g.Size(),
		EntropyBits: g.EntropyBits(),
		Probability: p,
		IDs:         math.Floor(randoid.CollisionCount(g.EntropyBits(), p)),
	}
	if ratePerHour > 0 {
		r.Hours = r.IDs / ratePerHour
	}
	return r, nil
}

func (cmd *EntropyCmd) run(_ context.Context, c *cli.Command) error {
	g, opts, err := cmd.gen.generator(c, cmd.flags.cfg())
	if err != nil {
		return err
	}

	report, err := NewEntropyReport(g, alphabetLabel(opts), cmd.probability, cmd.rate)
	if err != nil {
		return err
	}

	if cmd.json {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	mp := message.NewPrinter(language.English)
	p := printer.New(c.Root().Writer)

	p.Section("Entropy")
	p.KeyValue("alphabet", fmt.Sprintf("%s (%d symbols, %d bits each)", report.Alphabet, report.Symbols, g.Alphabet().Bits()))
	p.KeyValue("size", report.Size)
	p.KeyValue("entropy", fmt.Sprintf("%.0f bits", report.EntropyBits))
	p.KeyValue("ids", fmt.Sprintf("~%s before a %g chance of collision", formatCount(mp, report.IDs), report.Probability))
	if report.Hours > 0 {
		p.KeyValue("time", fmt.Sprintf("~%s at %s ids/hour", formatHours(report.Hours), mp.Sprintf("%.0f", cmd.rate)))
	}

	return nil
}

// formatCount prints exact counts with separators and huge ones in
// scientific notation.
func formatCount(mp *message.Printer, n float64) string {
	if n < 1e15 {
		return mp.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%.3g", n)
}

// formatHours renders a duration given in hours at a readable scale.
func formatHours(h float64) string {
	const (
		day  = 24.0
		year = 365.25 * day
	)
	switch {
	case h < 1:
		return fmt.Sprintf("%.0f minutes", h*60)
	case h < 2*day:
		return fmt.Sprintf("%.0f hours", h)
	case h < 2*year:
		return fmt.Sprintf("%.0f days", h/day)
	case h < 1e6*year:
		return fmt.Sprintf("%.0f years", h/year)
	default:
		return fmt.Sprintf("%.3g years", h/year)
	}
}
