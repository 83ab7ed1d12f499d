package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorGold      = lipgloss.Color("#fcc419")
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// Logo style for the app name in the header.
var Logo = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// ResultCount style for "Found N results".
var ResultCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// BoxStyle frames the left and right panels.
var BoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// BoxFocused is BoxStyle for the panel holding focus.
var BoxFocused = BoxStyle.
	BorderForeground(colorPrimary)

// BoxTitle style for a panel's title line.
var BoxTitle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// BoxToggleKey style for the key hint next to a panel title.
var BoxToggleKey = lipgloss.NewStyle().
	Foreground(colorMuted)

// SelectedItem style for the currently highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// NormalItem style for other rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// MetaItem style for secondary row text like years and runtimes.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DetailTitle style for the selected movie's title.
var DetailTitle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

// Rated style for rating figures.
var Rated = lipgloss.NewStyle().
	Foreground(colorGold)

// Notice style for informational messages in the panels.
var Notice = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// SummaryStyle for the watched list summary block.
var SummaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// HelpStyle for hints shown in empty panels.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// DebugPanel style for the F12 overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorHighlight).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)
