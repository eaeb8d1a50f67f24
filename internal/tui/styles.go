package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorWarn      = lipgloss.Color("9")   // bright red

	// Title line
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Table
	styleHeader = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleTime = lipgloss.NewStyle().
			Foreground(colorSecondary)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Edit panel
	styleLabel = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(6)

	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleDisabled = lipgloss.NewStyle().
			Foreground(colorDim).
			Faint(true)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleDirty = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)
)
