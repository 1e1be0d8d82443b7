package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/randoid/pkg/randoid"
)

type DocCmd struct {
	flags *Flags
	plain bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Guides on using randoid and choosing id sizes",
		Description: `Prints markdown guides. On a terminal they are rendered; pipe the output
or pass --plain for raw markdown.

Use 'randoid doc usage' for the command and library overview.
Use 'randoid doc collisions' to pick a size for your workload.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print raw markdown",
				Destination: &cmd.plain,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "usage",
				Usage: "Show the usage guide",
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.render(c.Root().Writer, usageGuide)
				},
			},
			{
				Name:  "collisions",
				Usage: "Show collision odds for common sizes",
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.render(c.Root().Writer, collisionGuide())
				},
			},
		},
	})
	return app
}

// render writes md to w, styled with glamour when stdout is a terminal.
func (cmd *DocCmd) render(w io.Writer, md string) error {
	fd := int(os.Stdout.Fd())
	if cmd.plain || !term.IsTerminal(fd) {
		_, err := fmt.Fprintln(w, md)
		return err
	}

	width := 100
	if tw, _, err := term.GetSize(fd); err == nil && tw > 0 && tw < width {
		width = tw
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

const usageGuide = `# randoid

Random ids from a power-of-two alphabet. Every symbol costs one random byte,
masked down to the alphabet, so there is no modulo bias and no rejection loop.

## Generating

` + "```bash" + `
randoid                          # one 21 symbol url-safe id
randoid gen -n 32 -a hex -c 5    # five 32 digit hex ids
randoid gen --chars ACGT -n 12   # a literal alphabet
randoid gen --format 'user_{{ .ID }}'
randoid gen --json -c 3
` + "```" + `

Seeded sources repeat their output and must not be used for secrets:

` + "```bash" + `
randoid gen --source pcg --seed 42
randoid gen --source chacha8 --seed 42
` + "```" + `

## Checking

` + "```bash" + `
randoid check V1StGXR8_Z5jdHi6B-myT
cat ids.txt | randoid check -a hex -n 32
` + "```" + `

## Alphabets

| Name | Symbols | Bits |
|------|---------|------|
| url | ` + "`_-0-9a-zA-Z`" + ` | 6 |
| base32 | ` + "`A-Z2-7`" + ` | 5 |
| crockford32 | ` + "`0-9A-Z` without I L O U" + ` | 5 |
| hex, hex-upper | ` + "`0-9a-f`" + ` | 4 |
| octal | ` + "`0-7`" + ` | 3 |

Custom alphabets go in the config file:

` + "```yaml" + `
alphabets:
  dna: ACGT
defaults:
  alphabet: dna
` + "```" + `

## Library

` + "```go" + `
id := randoid.New()

g := randoid.NewGenerator(32, randoid.Hex, nil)
id, err := g.Generate()

buf := make([]byte, g.Size())
err = g.Fill(buf) // no allocation, single-byte alphabets only

greek := g.Using(randoid.MustAlphabet("αβγδ"))
syms := make([]rune, greek.Size())
err = greek.FillRunes(syms)
` + "```" + `
`

// collisionSizes are the url alphabet sizes listed in the collision guide.
var collisionSizes = []int{8, 10, 12, 16, 21, 24, 32}

func collisionGuide() string {
	var b strings.Builder
	b.WriteString(`# Collision odds

After drawing n random ids of b bits each, the chance that any two match is
about n²/2^(b+1). The table lists how many url alphabet ids (6 bits per
symbol) can be drawn before that chance reaches one in a million.

| Size | Bits | Ids for 1e-6 | Ids for 50% |
|------|------|--------------|-------------|
`)
	for _, size := range collisionSizes {
		bits := randoid.URL.Bits() * size
		fmt.Fprintf(&b, "| %d | %d | %.3g | %.3g |\n",
			size, bits,
			randoid.CollisionCount(float64(bits), 1e-6),
			randoid.CollisionCount(float64(bits), 0.5),
		)
	}
	b.WriteString(`
Use ` + "`randoid entropy --rate N`" + ` to turn these counts into time at your
generation rate.
`)
	return b.String()
}
