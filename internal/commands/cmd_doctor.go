package commands

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/randoid/internal/commands/doctor"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
	fix    bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your randoid setup",
		UsageText:   "randoid doctor [options]",
		Description: "Checks the config file, the system random source and the uniformity of the configured generator.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "fix",
				Usage:       "apply fixes where possible (writes a default config file)",
				Destination: &cmd.fix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.flags.cfg()

	checks := []doctor.Check{
		doctor.NewConfigFileCheck(cmd.flags.ConfigPath),
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewSourceCheck(nil),
	}

	// The uniformity check needs a generator, which an invalid config may
	// not describe; the config check already reports why.
	if g, err := idgen.New(cfg.Options(), cfg.Alphabets); err == nil {
		checks = append(checks, doctor.NewUniformityCheck(g, 0))
	}

	return checks
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks(), cmd.fix)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(ctx, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	totals := doctor.Summarize(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Totals   `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: totals.Healthy(),
		Summary: totals,
		Checks:  results,
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !totals.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(ctx context.Context, results []doctor.Result) error {
	p := printer.Ctx(ctx)

	for _, result := range results {
		name := result.Name
		if result.Fixed {
			name += " (fixed)"
		}
		p.Section(name)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}

		p.Printf("")
	}

	totals := doctor.Summarize(results)
	p.Printf("Summary: %d passed, %d warnings, %d failed", totals.Passed, totals.Warned, totals.Failed)

	if totals.Fixed > 0 {
		p.Successf("Fixed %d check(s)", totals.Fixed)
	}
	if totals.Fixable > 0 && !cmd.fix {
		p.Infof("%d issue(s) can be fixed with 'randoid doctor --fix'", totals.Fixable)
	}

	if !totals.Healthy() {
		return cli.Exit("", 1)
	}

	return nil
}
