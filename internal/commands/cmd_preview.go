package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/randoid/internal/core/config"
	"github.com/hay-kot/randoid/internal/tui"
	"github.com/hay-kot/randoid/pkg/randoid"
)

type PreviewCmd struct {
	flags *Flags
	gen   generatorFlags
}

// NewPreviewCmd creates a new preview command.
func NewPreviewCmd(flags *Flags) *PreviewCmd {
	return &PreviewCmd{flags: flags}
}

// Register adds the preview command to the application.
func (cmd *PreviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "preview",
		Aliases:   []string{"ui"},
		Usage:     "Explore sizes and alphabets interactively",
		UsageText: "randoid preview [options]",
		Description: `Opens a terminal UI showing a live id with its entropy and collision
odds. Change the size with +/- and cycle alphabets with 'a'.`,
		Flags:  cmd.gen.flags(),
		Action: cmd.run,
	})
	return app
}

func (cmd *PreviewCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("preview requires a terminal")
	}

	cfg := cmd.flags.cfg()
	g, _, err := cmd.gen.generator(c, cfg)
	if err != nil {
		return err
	}

	m := tui.New(g, previewAlphabets(cfg))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}

	return nil
}

// previewAlphabets lists built-ins then valid custom alphabets.
func previewAlphabets(cfg *config.Config) []tui.NamedAlphabet {
	var out []tui.NamedAlphabet
	for _, name := range randoid.Names() {
		a, _ := randoid.Lookup(name)
		out = append(out, tui.NamedAlphabet{Name: name, Alphabet: a})
	}
	for _, name := range cfg.AlphabetNames() {
		a, err := randoid.NewAlphabet(cfg.Alphabets[name])
		if err != nil {
			continue
		}
		out = append(out, tui.NamedAlphabet{Name: name, Alphabet: a})
	}
	return out
}
