package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/popcorn/internal/model"
)

// renderDetailHead renders everything in the detail panel above the rating
// row. App also measures it to place the rating widget for mouse input.
func renderDetailHead(d model.MovieDetail, width int) string {
	title := d.Title
	if d.Year != "" {
		title += " (" + d.Year + ")"
	}

	lines := []string{
		DetailTitle.Width(width).Render(title),
		MetaItem.Render(releasedText(d)),
		metaLine(d),
	}
	if d.Plot != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(d.Plot))
	}
	return strings.Join(lines, "\n")
}

func releasedText(d model.MovieDetail) string {
	switch {
	case !d.Released.IsZero():
		return fmt.Sprintf("Released %s · %s", d.Released.Format("02 Jan 2006"), humanize.Time(d.Released))
	case d.ReleasedRaw != "":
		return "Released " + d.ReleasedRaw
	default:
		return "Release date unknown"
	}
}

func metaLine(d model.MovieDetail) string {
	var parts []string
	if d.ExternalRating > 0 {
		parts = append(parts, Rated.Render(fmt.Sprintf("★ %.1f", d.ExternalRating))+MetaItem.Render(" IMDb rating"))
	}
	if d.RuntimeMinutes > 0 {
		parts = append(parts, MetaItem.Render(fmt.Sprintf("%d min", d.RuntimeMinutes)))
	}
	if len(parts) == 0 {
		return MetaItem.Render("No rating or runtime")
	}
	return strings.Join(parts, MetaItem.Render(" · "))
}

// renderDetail renders the full detail panel. head is renderDetailHead's
// output; the rating row follows it after one blank line.
func renderDetail(a *App, head string) string {
	d, _ := a.detail.Current()

	lines := []string{head, ""}
	if r, ok := a.watchedRating(d.ID); ok {
		lines = append(lines, Notice.Render(fmt.Sprintf("You rated this movie %d ★", r)))
	} else {
		lines = append(lines, a.rating.View())
		if a.rating.Committed() > 0 {
			lines = append(lines, "", StatusBarKey.Render("a")+StatusBarText.Render(" add to list"))
		} else {
			lines = append(lines, "", HelpStyle.Render("Hover or use ←/→ and enter to rate"))
		}
	}
	if err := a.detail.Err(); err != nil {
		lines = append(lines, "", ErrorStyle.Render("Could not load movie: "+err.Error()))
	}
	return strings.Join(lines, "\n")
}

// renderWatched renders the summary block and the watched list.
func renderWatched(a *App, width, height int) string {
	s := a.summary
	summary := SummaryStyle.Width(width).Render(fmt.Sprintf(
		"MOVIES YOU WATCHED\n%d movies  %s  %s  %s",
		s.Count,
		Rated.Render(fmt.Sprintf("★ %.2f", s.AvgExternalRating)),
		Rated.Render(fmt.Sprintf("☆ %.2f", s.AvgUserRating)),
		fmt.Sprintf("⏳ %.0f min", s.AvgRuntimeMinutes),
	))

	if len(a.entries) == 0 {
		return summary + "\n\n" + HelpStyle.Render("Nothing here yet. Open a movie, rate it and press a.")
	}

	listHeight := height - lipgloss.Height(summary) - 1
	if listHeight < 1 {
		listHeight = 1
	}
	offset := calcScrollOffset(a.watchedCursor, len(a.entries), listHeight)

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n")
	for i := offset; i < len(a.entries) && i < offset+listHeight; i++ {
		b.WriteString("\n")
		b.WriteString(renderWatchedLine(a.entries[i], a.focus == focusPanel && i == a.watchedCursor, width))
	}
	return b.String()
}

func renderWatchedLine(e model.WatchedEntry, selected bool, width int) string {
	meta := fmt.Sprintf(" ★ %.1f  ☆ %d  %d min", e.ExternalRating, e.UserRating, e.RuntimeMinutes)
	title := truncateRunes(e.Title, width-lipgloss.Width(meta)-1)
	if selected {
		pad := width - lipgloss.Width(title) - lipgloss.Width(meta)
		if pad < 0 {
			pad = 0
		}
		return SelectedItem.Render(title + strings.Repeat(" ", pad) + meta)
	}
	return NormalItem.Render(title) + MetaItem.Render(meta)
}
