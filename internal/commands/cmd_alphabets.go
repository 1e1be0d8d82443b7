package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/randoid/internal/core/config"
	"github.com/hay-kot/randoid/internal/printer"
	"github.com/hay-kot/randoid/pkg/randoid"
)

type AlphabetsCmd struct {
	flags  *Flags
	filter string
	json   bool
}

// NewAlphabetsCmd creates a new alphabets command.
func NewAlphabetsCmd(flags *Flags) *AlphabetsCmd {
	return &AlphabetsCmd{flags: flags}
}

// Register adds the alphabets command to the application.
func (cmd *AlphabetsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "alphabets",
		Aliases:   []string{"ls"},
		Usage:     "List built-in and configured alphabets",
		UsageText: "randoid alphabets [--filter glob] [--json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "only show names matching a glob, e.g. 'hex*'",
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})
	return app
}

// AlphabetInfo describes one listed alphabet.
type AlphabetInfo struct {
	Name       string `json:"name"`
	Symbols    string `json:"symbols"`
	Size       int    `json:"size"`
	Bits       int    `json:"bits_per_symbol"`
	Builtin    bool   `json:"builtin"`
	Duplicates bool   `json:"duplicates,omitempty"`
}

func (cmd *AlphabetsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.filter != "" && !doublestar.ValidatePattern(cmd.filter) {
		return fmt.Errorf("invalid filter pattern %q", cmd.filter)
	}

	infos, err := listAlphabets(cmd.flags.cfg(), cmd.filter)
	if err != nil {
		return err
	}

	if cmd.json {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		printer.Ctx(ctx).Infof("No alphabets match %q", cmd.filter)
		return nil
	}

	_, err = fmt.Fprintln(c.Root().Writer, alphabetTable(infos))
	return err
}

// listAlphabets returns built-ins then custom alphabets, keeping only names
// that match the glob filter when one is given.
func listAlphabets(cfg *config.Config, filter string) ([]AlphabetInfo, error) {
	var infos []AlphabetInfo

	keep := func(name string) (bool, error) {
		if filter == "" {
			return true, nil
		}
		return doublestar.Match(filter, name)
	}

	for _, name := range randoid.Names() {
		ok, err := keep(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		a, _ := randoid.Lookup(name)
		infos = append(infos, describe(name, a, true))
	}

	for _, name := range cfg.AlphabetNames() {
		ok, err := keep(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		a, err := randoid.NewAlphabet(cfg.Alphabets[name])
		if err != nil {
			return nil, fmt.Errorf("alphabet %q: %w", name, err)
		}
		infos = append(infos, describe(name, a, false))
	}

	return infos, nil
}

func describe(name string, a *randoid.Alphabet, builtin bool) AlphabetInfo {
	return AlphabetInfo{
		Name:       name,
		Symbols:    a.String(),
		Size:       a.Len(),
		Bits:       a.Bits(),
		Builtin:    builtin,
		Duplicates: a.HasDuplicates(),
	}
}

func alphabetTable(infos []AlphabetInfo) string {
	t := newTable("NAME", "SIZE", "BITS", "KIND", "SYMBOLS")

	for _, info := range infos {
		kind := "built-in"
		if !info.Builtin {
			kind = "custom"
		}
		t.Row(info.Name, fmt.Sprint(info.Size), fmt.Sprint(info.Bits), kind, info.Symbols)
	}

	return t.Render()
}
