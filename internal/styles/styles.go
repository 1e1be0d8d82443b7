// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorRed    = lipgloss.Color("#f7768e")
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorPurple = lipgloss.Color("#bb9af7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the header.
const Banner = `
 ╦═╗╔═╗╔╗╔╔╦╗╔═╗╦╔╦╗
 ╠╦╝╠═╣║║║ ║║║ ║║ ║║
 ╩╚═╩ ╩╝╚╝═╩╝╚═╝╩═╩╝`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// Text styles shared by the printer and the commands.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// IDStyle highlights a generated identifier.
	IDStyle = lipgloss.NewStyle().
		Foreground(ColorPurple).
		Bold(true)
)

// Table styles.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// PanelStyle frames the preview output.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue).
	Padding(1, 2)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by interactive prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPurple)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorGreen)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPurple)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorBlue)
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
