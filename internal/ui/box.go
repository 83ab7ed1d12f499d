package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box is a collapsible panel. Each box owns its open state, so toggling one
// never affects another.
type Box struct {
	title     string
	toggleKey string
	open      bool
}

// NewBox creates an open box.
func NewBox(title, toggleKey string) Box {
	return Box{title: title, toggleKey: toggleKey, open: true}
}

// Toggle opens a closed box and closes an open one.
func (b *Box) Toggle() {
	b.open = !b.open
}

// Open reports whether the box shows its content.
func (b Box) Open() bool {
	return b.open
}

// SetTitle replaces the title line text.
func (b *Box) SetTitle(title string) {
	b.title = title
}

// boxChromeLines is the number of lines a box adds above its content:
// the top border and the title line.
const boxChromeLines = 2

// Render frames content in a box width cells wide and height lines tall.
// A closed box renders only its title line. Content taller than the box is
// clipped.
func (b Box) Render(content string, width, height int, focused bool) string {
	style := BoxStyle
	if focused {
		style = BoxFocused
	}
	if width < 6 {
		width = 6
	}
	style = style.Width(width - 2)

	arrow := "▾"
	if !b.open {
		arrow = "▸"
	}
	title := BoxTitle.Render(arrow+" "+b.title) + "  " + BoxToggleKey.Render("["+b.toggleKey+"]")
	if !b.open {
		return style.Render(title)
	}

	inner := height - 2 // borders
	if inner < 1 {
		inner = 1
	}
	lines := strings.Split(content, "\n")
	if limit := inner - 1; len(lines) > limit {
		lines = lines[:limit]
	}
	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
	return style.Height(inner).MaxHeight(height).Render(body)
}
