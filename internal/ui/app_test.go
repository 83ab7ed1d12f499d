package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/popcorn/internal/controller"
	"github.com/abelbrown/popcorn/internal/model"
	"github.com/abelbrown/popcorn/internal/store"
)

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string) ([]model.Movie, error) {
	return []model.Movie{
		{ID: "tt1", Title: "Result One", Year: "2001"},
		{ID: "tt2", Title: "Result Two", Year: "2002"},
	}, nil
}

type fakeFetcher struct{}

func (fakeFetcher) Detail(ctx context.Context, id string) (model.MovieDetail, error) {
	return model.MovieDetail{
		Movie:          model.Movie{ID: id, Title: "Movie " + id, Year: "1999"},
		Plot:           "Something happens.",
		ExternalRating: 7.5,
		RuntimeMinutes: 120,
	}, nil
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	app := NewApp(Deps{
		Search:  controller.NewSearchController(context.Background(), fakeSearcher{}, 3, nil),
		Detail:  controller.NewDetailController(context.Background(), fakeFetcher{}, nil),
		Watched: st,
	})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), st
}

func update(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	return m.(App), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// openDetail selects id and delivers its loaded detail.
func openDetail(t *testing.T, app App, id string) (App, tea.Cmd) {
	t.Helper()
	cmd := app.detail.Select(id)
	if cmd == nil {
		t.Fatalf("Select(%q) returned nil", id)
	}
	return update(t, app, cmd())
}

// collect runs cmd and any batched commands, returning every message.
// Only call it on commands that do not sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestAppStartsInBrowse(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Mode() != ModeBrowse {
		t.Errorf("Mode() = %v, want browse", app.Mode())
	}
	if app.detailScope.Attached() {
		t.Error("detail scope should start detached")
	}
	if app.focus != focusSearch {
		t.Errorf("focus = %v, want search", app.focus)
	}
}

func TestEscapeReturnsToBrowse(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")

	if app.Mode() != ModeDetail {
		t.Fatalf("Mode() = %v, want detail", app.Mode())
	}
	if !app.detailScope.Attached() {
		t.Fatal("entering detail should attach the detail scope")
	}

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Mode() != ModeBrowse {
		t.Errorf("Mode() after esc = %v, want browse", app.Mode())
	}
	if app.detailScope.Attached() {
		t.Error("leaving detail should detach the detail scope")
	}
}

func TestOtherKeysInDetailDoNothing(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")

	for _, msg := range []tea.KeyMsg{runes("z"), runes("b"), {Type: tea.KeyF5}, {Type: tea.KeyBackspace}} {
		app, _ = update(t, app, msg)
		if app.Mode() != ModeDetail {
			t.Fatalf("%q left detail mode", msg.String())
		}
	}
	if app.rating.Committed() != 0 {
		t.Errorf("stray keys committed a rating: %d", app.rating.Committed())
	}
}

func TestEscapeInBrowseDoesNothing(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Mode() != ModeBrowse || app.detailScope.Attached() {
		t.Error("esc in browse mode should be a no-op")
	}
}

func TestWindowTitleFollowsMode(t *testing.T) {
	app, _ := newTestApp(t)

	app, cmd := openDetail(t, app, "tt1")
	if got := titles(collect(cmd)); len(got) != 1 || got[0] != "Popcorn | Movie tt1" {
		t.Errorf("titles on enter = %v", got)
	}

	// Reloading the same movie must not touch the title again.
	_, cmd = openDetail(t, app, "tt1")
	if got := titles(collect(cmd)); len(got) != 0 {
		t.Errorf("titles on reload = %v, want none", got)
	}

	_, cmd = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if got := titles(collect(cmd)); len(got) != 1 || got[0] != "Popcorn" {
		t.Errorf("titles on leave = %v", got)
	}
}

// titles extracts window-title messages, which print as their title.
func titles(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if s := fmt.Sprint(m); strings.HasPrefix(s, "Popcorn") {
			out = append(out, s)
		}
	}
	return out
}

func TestSwitchingMoviesResetsRating(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")
	app, _ = update(t, app, runes("8"))
	if app.rating.Committed() != 8 {
		t.Fatalf("Committed() = %d, want 8", app.rating.Committed())
	}

	app, _ = openDetail(t, app, "tt2")
	if app.rating.Committed() != 0 {
		t.Errorf("new movie should start unrated, got %d", app.rating.Committed())
	}
	if !app.detailScope.Attached() {
		t.Error("scope should stay attached across movies")
	}
}

func TestBoxTogglesAreIndependent(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyF1})
	if app.left.Open() || !app.right.Open() {
		t.Errorf("after F1: left=%v right=%v", app.left.Open(), app.right.Open())
	}
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyF2})
	if app.left.Open() || app.right.Open() {
		t.Errorf("after F2: left=%v right=%v", app.left.Open(), app.right.Open())
	}
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyF1})
	if !app.left.Open() || app.right.Open() {
		t.Errorf("after second F1: left=%v right=%v", app.left.Open(), app.right.Open())
	}
}

func TestTypingStartsSearch(t *testing.T) {
	app, _ := newTestApp(t)

	var cmd tea.Cmd
	for _, r := range "dune" {
		app, cmd = update(t, app, runes(string(r)))
	}
	if app.input.Value() != "dune" {
		t.Fatalf("input = %q, want dune", app.input.Value())
	}
	if app.search.Query() != "dune" || !app.search.Loading() {
		t.Errorf("query=%q loading=%v", app.search.Query(), app.search.Loading())
	}
	if cmd == nil {
		t.Error("typing a qualifying query should return a command")
	}
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t)

	// q types into the focused search input.
	app, _ = update(t, app, runes("q"))
	if app.input.Value() != "q" {
		t.Errorf("input = %q, want q", app.input.Value())
	}

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.focus != focusResults {
		t.Fatalf("focus = %v, want results", app.focus)
	}
	_, cmd := update(t, app, runes("q"))
	if !hasQuit(collect(cmd)) {
		t.Error("q outside the input should quit")
	}

	_, cmd = update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !hasQuit(collect(cmd)) {
		t.Error("ctrl+c should quit")
	}
}

func hasQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestFocusCycle(t *testing.T) {
	app, _ := newTestApp(t)
	want := []focus{focusResults, focusPanel, focusSearch}
	for _, f := range want {
		app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
		if app.focus != f {
			t.Fatalf("focus = %v, want %v", app.focus, f)
		}
		if app.input.Focused() != (f == focusSearch) {
			t.Errorf("input focused = %v with focus %v", app.input.Focused(), f)
		}
	}
}

func TestSelectResultOpensDetail(t *testing.T) {
	app, _ := newTestApp(t)
	cmd := app.search.SetQuery("result")
	app, _ = update(t, app, cmd())
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyDown})

	app, cmd = update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a result should fetch its detail")
	}
	for _, msg := range collect(cmd) {
		app, _ = update(t, app, msg)
	}

	d, ok := app.detail.Current()
	if !ok || d.ID != "tt2" {
		t.Errorf("Current() = %+v, want tt2", d)
	}
	if app.focus != focusPanel {
		t.Errorf("focus = %v, want panel after opening a movie", app.focus)
	}
}

func TestAddToWatchedList(t *testing.T) {
	app, st := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")

	app, _ = update(t, app, runes("9"))
	app, cmd := update(t, app, runes("a"))
	if app.Mode() != ModeBrowse {
		t.Errorf("adding should return to browse, got %v", app.Mode())
	}
	for _, msg := range collect(cmd) {
		app, _ = update(t, app, msg)
	}

	if len(app.entries) != 1 || app.entries[0].UserRating != 9 {
		t.Fatalf("entries = %+v", app.entries)
	}
	if app.summary.Count != 1 || app.summary.AvgRuntimeMinutes != 120 {
		t.Errorf("summary = %+v", app.summary)
	}
	if n, _ := st.Len(); n != 1 {
		t.Errorf("store has %d entries, want 1", n)
	}
}

func TestAddRequiresRating(t *testing.T) {
	app, st := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")

	app, _ = update(t, app, runes("a"))
	if app.Mode() != ModeDetail {
		t.Error("unrated add should stay in detail")
	}
	if app.status == "" {
		t.Error("unrated add should explain itself in the status bar")
	}
	if n, _ := st.Len(); n != 0 {
		t.Errorf("store has %d entries, want 0", n)
	}
}

func TestAlreadyWatchedShowsNotice(t *testing.T) {
	app, st := newTestApp(t)
	if err := st.Add(model.WatchedEntry{ID: "tt1", Title: "Movie tt1", UserRating: 6}); err != nil {
		t.Fatal(err)
	}
	app, _ = update(t, app, readWatched(st))
	app, _ = openDetail(t, app, "tt1")

	view := app.View()
	if !strings.Contains(view, "You rated this movie 6") {
		t.Errorf("view should show the existing rating, got:\n%s", view)
	}

	app, _ = update(t, app, runes("3"))
	app, cmd := update(t, app, runes("a"))
	if cmd != nil {
		for _, msg := range collect(cmd) {
			app, _ = update(t, app, msg)
		}
	}
	if n, _ := st.Len(); n != 1 {
		t.Errorf("store has %d entries, want 1", n)
	}
}

func TestRemoveFromWatchedList(t *testing.T) {
	app, st := newTestApp(t)
	for _, id := range []string{"tt1", "tt2"} {
		if err := st.Add(model.WatchedEntry{ID: id, Title: id, UserRating: 5}); err != nil {
			t.Fatal(err)
		}
	}
	app, _ = update(t, app, readWatched(st))

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.focus != focusPanel {
		t.Fatalf("focus = %v, want panel", app.focus)
	}
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyDown})
	app, cmd := update(t, app, runes("x"))
	for _, msg := range collect(cmd) {
		app, _ = update(t, app, msg)
	}

	if len(app.entries) != 1 || app.entries[0].ID != "tt1" {
		t.Errorf("entries = %+v, want only tt1", app.entries)
	}
	if app.watchedCursor != 0 {
		t.Errorf("watchedCursor = %d, want clamped to 0", app.watchedCursor)
	}
}

func TestRatingMouse(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = openDetail(t, app, "tt1")

	x, y := app.ratingOrigin()
	app, _ = update(t, app, tea.MouseMsg{X: x + 6, Y: y, Action: tea.MouseActionMotion})
	if app.rating.Hover() != 4 {
		t.Errorf("Hover() = %d, want 4", app.rating.Hover())
	}
	app, _ = update(t, app, tea.MouseMsg{X: x + 8, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if app.rating.Committed() != 5 {
		t.Errorf("Committed() = %d, want 5", app.rating.Committed())
	}
	app, _ = update(t, app, tea.MouseMsg{X: x, Y: y + 1, Action: tea.MouseActionMotion})
	if app.rating.Hover() != 0 {
		t.Errorf("Hover() off the row = %d, want 0", app.rating.Hover())
	}

	// The star row in the rendered view sits where ratingOrigin says.
	lines := strings.Split(app.View(), "\n")
	if y >= len(lines) || !strings.Contains(lines[y], "★") {
		t.Errorf("line %d should hold the stars, got %q", y, lines[min(y, len(lines)-1)])
	}
}

func TestViewBrowse(t *testing.T) {
	app, _ := newTestApp(t)
	view := app.View()
	for _, want := range []string{"popcorn", "Found 0 results", "Watched", "MOVIES YOU WATCHED"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewNotReady(t *testing.T) {
	app := NewApp(Deps{
		Search: controller.NewSearchController(context.Background(), fakeSearcher{}, 3, nil),
		Detail: controller.NewDetailController(context.Background(), fakeFetcher{}, nil),
	})
	if app.View() != "Loading..." {
		t.Errorf("View() before sizing = %q", app.View())
	}
}

func TestScope(t *testing.T) {
	s := NewScope("test")
	ran := 0
	s.Bind(keys.Back, func() tea.Cmd { ran++; return nil })

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	if _, ok := s.Handle(esc); ok || ran != 0 {
		t.Error("detached scope handled a key")
	}

	s.Attach()
	if _, ok := s.Handle(esc); !ok || ran != 1 {
		t.Errorf("attached scope: ok=%v ran=%d", ok, ran)
	}
	if _, ok := s.Handle(runes("z")); ok || ran != 1 {
		t.Error("unbound key should not be handled")
	}

	s.Detach()
	if _, ok := s.Handle(esc); ok || ran != 1 {
		t.Error("detached scope handled a key")
	}
}

func TestBoxRender(t *testing.T) {
	b := NewBox("Results", "F1")
	open := b.Render("line one\nline two", 30, 8, false)
	if !strings.Contains(open, "line two") || !strings.Contains(open, "[F1]") {
		t.Errorf("open box = %q", open)
	}

	b.Toggle()
	closed := b.Render("line one\nline two", 30, 8, false)
	if strings.Contains(closed, "line one") {
		t.Errorf("closed box should hide content, got %q", closed)
	}

	b.Toggle()
	clipped := b.Render("1\n2\n3\n4\n5\n6\n7\n8\n9", 30, 6, false)
	if strings.Contains(clipped, "9") {
		t.Errorf("content taller than the box should be clipped, got %q", clipped)
	}
}
