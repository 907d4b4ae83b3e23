package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			MarginBottom(1)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true)
)

// Layout styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1)
)

// Text styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(palette.Text)

	LockedStyle = lipgloss.NewStyle().
			Foreground(palette.Locked).
			Bold(true)

	SignerStyle = lipgloss.NewStyle().
			Foreground(palette.Signer)

	HelpStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning)
)
