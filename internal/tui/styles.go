// Package tui implements the Bubble Tea preview for randoid.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/randoid/internal/styles"
)

var (
	// Title style for the panel header.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue)

	// Label style for the stats under the id.
	labelStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	valueStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite)

	// Older ids fade out below the current one.
	historyStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed)

	bannerStyle = styles.BannerStyle.
			PaddingLeft(1).
			PaddingBottom(1)
)
