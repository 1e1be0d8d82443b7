package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/randoid/internal/core/validate"
	"github.com/hay-kot/randoid/internal/styles"
	"github.com/hay-kot/randoid/pkg/randoid"
)

// historySize is how many previous ids stay on screen.
const historySize = 8

// NamedAlphabet pairs an alphabet with the name shown in the preview.
type NamedAlphabet struct {
	Name     string
	Alphabet *randoid.Alphabet
}

// Model is the Bubble Tea model for the preview.
type Model struct {
	gen       *randoid.Generator
	alphabets []NamedAlphabet
	alphaIdx  int

	current string
	history []string
	err     error

	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

// New returns a preview starting from g. Alphabets is the cycle order for the
// alphabet key; if g's alphabet is in it, cycling starts there.
func New(g *randoid.Generator, alphabets []NamedAlphabet) Model {
	if len(alphabets) == 0 {
		alphabets = []NamedAlphabet{{Name: "current", Alphabet: g.Alphabet()}}
	}

	idx := -1
	for i, a := range alphabets {
		if a.Alphabet.String() == g.Alphabet().String() {
			idx = i
			break
		}
	}
	if idx < 0 {
		alphabets = append([]NamedAlphabet{{Name: "custom", Alphabet: g.Alphabet()}}, alphabets...)
		idx = 0
	}

	h := help.New()
	helpStyle := lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle
	h.Styles.FullKey = helpStyle
	h.Styles.FullDesc = helpStyle
	h.Styles.FullSeparator = helpStyle

	m := Model{
		gen:       g,
		alphabets: alphabets,
		alphaIdx:  idx,
		keys:      defaultKeyMap(),
		help:      h,
	}
	return m.regenerate()
}

// Current returns the id on screen.
func (m Model) Current() string { return m.current }

// History returns previous ids, newest first.
func (m Model) History() []string { return m.history }

// Generator returns the generator as currently configured.
func (m Model) Generator() *randoid.Generator { return m.gen }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Regenerate):
		return m.regenerate(), nil
	case key.Matches(msg, m.keys.Grow):
		return m.resize(m.gen.Size() + 1), nil
	case key.Matches(msg, m.keys.Shrink):
		return m.resize(m.gen.Size() - 1), nil
	case key.Matches(msg, m.keys.Alphabet):
		m.alphaIdx = (m.alphaIdx + 1) % len(m.alphabets)
		m.gen = m.gen.Using(m.alphabets[m.alphaIdx].Alphabet)
		log.Debug().
			Str("component", "preview").
			Str("alphabet", m.alphabets[m.alphaIdx].Name).
			Msg("alphabet changed")
		return m.regenerate(), nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m Model) resize(n int) Model {
	// The preview never shrinks below one symbol.
	if n < 1 || validate.Size(n) != nil {
		return m
	}
	m.gen = m.gen.Sized(n)
	return m.regenerate()
}

func (m Model) regenerate() Model {
	id, err := m.gen.Generate()
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil

	if m.current != "" {
		m.history = append([]string{m.current}, m.history...)
		if len(m.history) > historySize {
			m.history = m.history[:historySize]
		}
	}
	m.current = id
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Preview"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(styles.IDStyle.Render(m.current))
	}
	b.WriteString("\n\n")

	b.WriteString(m.stat("alphabet", fmt.Sprintf("%s (%d symbols)", m.alphabets[m.alphaIdx].Name, m.gen.Alphabet().Len())))
	b.WriteString(m.stat("size", fmt.Sprintf("%d", m.gen.Size())))
	b.WriteString(m.stat("entropy", fmt.Sprintf("%.0f bits", m.gen.EntropyBits())))
	b.WriteString(m.stat("50% collision", fmt.Sprintf("%.3g ids", randoid.CollisionCount(m.gen.EntropyBits(), 0.5))))

	panel := styles.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))

	var hist strings.Builder
	for _, id := range m.history {
		hist.WriteString(historyStyle.Render(id))
		hist.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(styles.Banner),
		panel,
		"",
		hist.String(),
		m.help.View(m.keys),
	)
}

func (m Model) stat(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value) + "\n"
}
