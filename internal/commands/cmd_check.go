package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/randoid/internal/core/compare"
	"github.com/hay-kot/randoid/internal/printer"
)

type CheckCmd struct {
	flags *Flags
	gen   generatorFlags
	json  bool
}

// NewCheckCmd creates a new check command.
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags}
}

// Register adds the check command to the application.
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Check that ids match a generator's size and alphabet",
		UsageText: "randoid check [options] <id>...",
		Description: `Checks each id against the configured generator, or the one described by
the flags. With no arguments, ids are read from stdin one per line.

Ids that fail are matched against other common formats (uuid, ulid, ksuid,
cuid2) to hint at where they came from.`,
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

type checkResult struct {
	ID        string   `json:"id"`
	Valid     bool     `json:"valid"`
	Error     string   `json:"error,omitempty"`
	LooksLike []string `json:"looks_like,omitempty"`
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	g, _, err := cmd.gen.generator(c, cmd.flags.cfg())
	if err != nil {
		return err
	}

	ids := c.Args().Slice()
	if len(ids) == 0 {
		ids, err = readLines(c)
		if err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no ids to check")
	}

	// The configured generator is left out so only foreign formats are hinted.
	schemes, err := compare.Schemes(g)
	if err != nil {
		return err
	}
	schemes = schemes[1:]

	results := make([]checkResult, 0, len(ids))
	invalid := 0
	for _, id := range ids {
		res := checkResult{ID: id, Valid: true}
		if err := g.Validate(id); err != nil {
			invalid++
			res.Valid = false
			res.Error = err.Error()
			res.LooksLike = compare.Identify(schemes, id)
		}
		results = append(results, res)
	}

	if cmd.json {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		p := printer.New(c.Root().Writer)
		for _, res := range results {
			if res.Valid {
				p.CheckItem(res.ID, "")
				continue
			}
			detail := res.Error
			if len(res.LooksLike) > 0 {
				detail += " (looks like " + strings.Join(res.LooksLike, ", ") + ")"
			}
			p.FailItem(res.ID, detail)
		}
	}

	if invalid > 0 {
		printer.Ctx(ctx).Errorf("%d of %d id(s) invalid", invalid, len(results))
		return cli.Exit("", 1)
	}
	return nil
}

// readLines reads non-empty, trimmed lines from the command's reader.
func readLines(c *cli.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(c.Root().Reader)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
