package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/popcorn/internal/model"
)

// renderResults renders the search result list with the cursor row
// highlighted when the list has focus.
func renderResults(movies []model.Movie, cursor int, focused bool, width, height int) string {
	if height < 1 {
		height = 1
	}
	offset := calcScrollOffset(cursor, len(movies), height)

	var b strings.Builder
	for i := offset; i < len(movies) && i < offset+height; i++ {
		if i > offset {
			b.WriteString("\n")
		}
		b.WriteString(renderResultLine(movies[i], focused && i == cursor, width))
	}
	return b.String()
}

// calcScrollOffset returns the first visible row such that cursor is on
// screen.
func calcScrollOffset(cursor, count, height int) int {
	if count == 0 || cursor < 0 {
		return 0
	}
	if cursor >= count {
		cursor = count - 1
	}
	if cursor >= height {
		return cursor - height + 1
	}
	return 0
}

func renderResultLine(m model.Movie, selected bool, width int) string {
	year := ""
	if m.Year != "" {
		year = " " + m.Year
	}
	titleWidth := width - utf8.RuneCountInString(year) - 1
	if titleWidth < 8 {
		titleWidth = 8
	}
	title := truncateRunes(m.Title, titleWidth)

	if selected {
		pad := width - utf8.RuneCountInString(title) - utf8.RuneCountInString(year)
		if pad < 0 {
			pad = 0
		}
		return SelectedItem.Render(title + year + strings.Repeat(" ", pad))
	}
	return NormalItem.Render(title) + MetaItem.Render(year)
}

// renderResultsPane picks what the left box shows: a spinner while loading,
// the error, a hint, or the results.
func renderResultsPane(a *App, width, height int) string {
	switch {
	case a.search.Loading():
		return a.spinner.View() + " Searching…"
	case a.search.Err() != "":
		return ErrorStyle.Render("⛔ " + a.search.Err())
	case len(a.search.Results()) == 0:
		return HelpStyle.Render(fmt.Sprintf("Type at least %d characters to search.", a.search.MinQueryLength()))
	}
	return renderResults(a.search.Results(), a.cursor, a.focus == focusResults, width, height)
}

// truncateRunes shortens s to at most n runes, marking the cut with "…".
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
