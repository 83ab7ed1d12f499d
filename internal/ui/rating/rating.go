// Package rating is a star rating widget for the detail panel.
//
// The widget keeps two values: the committed rating, set by a click or a key,
// and a transient hover preview. The preview wins while it is set, so moving
// the pointer across the stars shows what a click would commit without
// changing anything.
package rating

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxRating is the scale used when Options.MaxRating is unset.
const DefaultMaxRating = 10

// DefaultColor is the filled-star color used when Options.Color is unset.
const DefaultColor = "#fcc419"

// starWidth is the number of cells each star occupies, glyph plus gap.
const starWidth = 2

const (
	filledStar = "★"
	emptyStar  = "☆"
)

// Options configures a widget.
type Options struct {
	MaxRating     int
	DefaultRating int
	Labels        []string  // one per position; shown only when len == MaxRating
	OnRate        func(int) // called once per commit
	Color         string
}

// Model is the widget state.
type Model struct {
	max    int
	labels []string
	onRate func(int)

	committed int
	hover     int

	// Screen position of the first star, set by the owner for hit-testing.
	originX, originY int

	filled lipgloss.Style
	empty  lipgloss.Style
	label  lipgloss.Style
}

// New creates a widget. A default outside 0..MaxRating is treated as 0.
func New(opts Options) Model {
	if opts.MaxRating <= 0 {
		opts.MaxRating = DefaultMaxRating
	}
	if opts.Color == "" {
		opts.Color = DefaultColor
	}
	if opts.DefaultRating < 0 || opts.DefaultRating > opts.MaxRating {
		opts.DefaultRating = 0
	}

	color := lipgloss.Color(opts.Color)
	return Model{
		max:       opts.MaxRating,
		labels:    opts.Labels,
		onRate:    opts.OnRate,
		committed: opts.DefaultRating,
		filled:    lipgloss.NewStyle().Foreground(color),
		empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		label:     lipgloss.NewStyle().Foreground(color).Bold(true),
	}
}

// HoverIn previews position i.
func (m *Model) HoverIn(i int) {
	if !m.valid(i) {
		return
	}
	m.hover = i
}

// HoverOut clears the preview.
func (m *Model) HoverOut() {
	m.hover = 0
}

// Rate commits position i and notifies OnRate. The preview is left alone.
func (m *Model) Rate(i int) {
	if !m.valid(i) {
		return
	}
	m.committed = i
	if m.onRate != nil {
		m.onRate(i)
	}
}

// SetOrigin records where the first star is drawn.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Display is the position currently shown: the preview if set, else the
// committed rating.
func (m Model) Display() int {
	if m.hover != 0 {
		return m.hover
	}
	return m.committed
}

// Committed returns the committed rating, 0 if none.
func (m Model) Committed() int { return m.committed }

// Hover returns the preview position, 0 if none.
func (m Model) Hover() int { return m.hover }

// Max returns the scale size.
func (m Model) Max() int { return m.max }

// Label describes the displayed position. It uses the configured labels when
// there is one per star and falls back to the number; 0 has no label.
func (m Model) Label() string {
	d := m.Display()
	if d == 0 {
		return ""
	}
	if len(m.labels) == m.max {
		return m.labels[d-1]
	}
	return strconv.Itoa(d)
}

func (m Model) valid(i int) bool {
	return i >= 1 && i <= m.max
}

// starAt maps a screen cell to a star position, or 0 when off the row.
func (m Model) starAt(x, y int) int {
	if y != m.originY || x < m.originX {
		return 0
	}
	i := (x-m.originX)/starWidth + 1
	if !m.valid(i) {
		return 0
	}
	return i
}

// Update handles mouse hover and clicks over the star row and rating keys.
// The owner decides whether keys reach the widget.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		i := m.starAt(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionMotion:
			if i == 0 {
				m.HoverOut()
			} else {
				m.HoverIn(i)
			}
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft && i != 0 {
				m.Rate(i)
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if d := m.Display(); d > 1 {
				m.hover = d - 1
			} else {
				m.hover = 1
			}
		case "right", "l":
			if d := m.Display(); d < m.max {
				m.hover = d + 1
			} else {
				m.hover = m.max
			}
		case "enter", " ":
			if m.hover != 0 {
				m.Rate(m.hover)
				m.HoverOut()
			}
		default:
			if i, ok := digitRating(msg.String()); ok {
				m.Rate(i)
				m.HoverOut()
			}
		}
	}
	return m, nil
}

// digitRating maps "1".."9" to 1..9 and "0" to 10.
func digitRating(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 10, true
	}
	return int(s[0] - '0'), true
}

// View renders the star row followed by the label.
func (m Model) View() string {
	d := m.Display()

	var b strings.Builder
	for i := 1; i <= m.max; i++ {
		if i <= d {
			b.WriteString(m.filled.Render(filledStar))
		} else {
			b.WriteString(m.empty.Render(emptyStar))
		}
		b.WriteString(strings.Repeat(" ", starWidth-1))
	}
	if l := m.Label(); l != "" {
		b.WriteString(" ")
		b.WriteString(m.label.Render(l))
	}
	return b.String()
}
