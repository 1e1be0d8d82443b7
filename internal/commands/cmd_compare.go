package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/randoid/internal/core/compare"
)

type CompareCmd struct {
	flags *Flags
	gen   generatorFlags
	json  bool
}

// NewCompareCmd creates a new compare command.
func NewCompareCmd(flags *Flags) *CompareCmd {
	return &CompareCmd{flags: flags}
}

// Register adds the compare command to the application.
func (cmd *CompareCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "compare",
		Usage:     "Compare randoid ids with other id formats",
		UsageText: "randoid compare [options]",
		Description: `Samples one id from randoid and from common formats (uuid v4 and v7, ulid,
ksuid, nanoid, cuid2) and shows their length and random bits.`,
		Flags: append(cmd.gen.flags(),
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

func (cmd *CompareCmd) run(_ context.Context, c *cli.Command) error {
	g, _, err := cmd.gen.generator(c, cmd.flags.cfg())
	if err != nil {
		return err
	}

	schemes, err := compare.Schemes(g)
	if err != nil {
		return err
	}

	rows, err := compare.Run(schemes)
	if err != nil {
		return err
	}

	if cmd.json {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	t := newTable("FORMAT", "SAMPLE", "LEN", "RANDOM BITS", "BITS/CHAR", "SORTABLE")

	for _, r := range rows {
		sortable := "no"
		if r.Sortable {
			sortable = "yes"
		}
		t.Row(r.Name, r.Sample, fmt.Sprint(r.Length), fmt.Sprintf("%.1f", r.RandomBits), fmt.Sprintf("%.2f", r.BitsPerChar), sortable)
	}

	_, err = fmt.Fprintln(c.Root().Writer, t.Render())
	return err
}
