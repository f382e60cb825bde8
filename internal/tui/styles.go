package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // cyan accent
	colorAccent      = lipgloss.Color("#FFD700") // gold
	colorDanger      = lipgloss.Color("#FF5252") // errors
	colorMuted       = lipgloss.Color("#636363")
	colorMutedLight  = lipgloss.Color("#8C8C8C")
	colorWhite       = lipgloss.Color("#EEEEEE") // primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF")
	colorSurface     = lipgloss.Color("#1E1E2E") // status bar
	colorSurfaceDim  = lipgloss.Color("#181825") // footer
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusHover = lipgloss.NewStyle().
				Foreground(colorAccent)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Bold(true)
)

// Overlay styles for the context menu and the editor.
var (
	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	styleOverlayTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleItemSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Background(colorPrimary).
				Bold(true).
				Padding(0, 1)

	styleItemNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)
)
