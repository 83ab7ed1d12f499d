package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/popcorn/internal/controller"
	"github.com/abelbrown/popcorn/internal/logging"
	"github.com/abelbrown/popcorn/internal/model"
	"github.com/abelbrown/popcorn/internal/otel"
	"github.com/abelbrown/popcorn/internal/ui/rating"
)

const appTitle = "Popcorn"

// headerHeight is the number of lines above the boxes.
const headerHeight = 1

// Mode is what the right box shows.
type Mode int

const (
	ModeBrowse Mode = iota // watched list
	ModeDetail             // selected movie
)

type focus int

const (
	focusSearch focus = iota
	focusResults
	focusPanel
	focusCount
)

// WatchedList is the watched-movie store. *store.Store implements it.
type WatchedList interface {
	Add(e model.WatchedEntry) error
	Remove(id string) (int, error)
	Entries() ([]model.WatchedEntry, error)
	Contains(id string) (bool, error)
	Summary() (model.Summary, error)
}

// Deps is everything App needs from main.
type Deps struct {
	Search  *controller.SearchController
	Detail  *controller.DetailController
	Watched WatchedList
	Events  *otel.Logger     // optional
	Ring    *otel.RingBuffer // optional, feeds the debug overlay
	Rating  rating.Options
}

// App is the root Bubble Tea model.
// App does not read the store directly; watched-list changes arrive as
// WatchedLoaded messages.
type App struct {
	search  *controller.SearchController
	detail  *controller.DetailController
	watched WatchedList
	events  *otel.Logger
	ring    *otel.RingBuffer

	input      textinput.Model
	spinner    spinner.Model
	help       help.Model
	rating     rating.Model
	ratingOpts rating.Options

	left, right Box
	detailScope *Scope
	shownID     string // detail currently reflected in scope, title and rating

	focus         focus
	cursor        int
	watchedCursor int
	entries       []model.WatchedEntry
	summary       model.Summary
	status        string
	err           error

	showDebug bool
	width     int
	height    int
	ready     bool
}

// NewApp creates the root model.
func NewApp(d Deps) App {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "/ "
	input.CharLimit = 120
	input.Width = 32
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	opts := d.Rating
	if opts.OnRate == nil {
		opts.OnRate = func(r int) { logging.Debug("rating committed", "rating", r) }
	}

	a := App{
		search:      d.Search,
		detail:      d.Detail,
		watched:     d.Watched,
		events:      d.Events,
		ring:        d.Ring,
		input:       input,
		spinner:     s,
		help:        help.New(),
		rating:      rating.New(opts),
		ratingOpts:  opts,
		left:        NewBox("Results", "F1"),
		right:       NewBox("Watched", "F2"),
		detailScope: NewScope("detail"),
	}

	detail := d.Detail
	a.detailScope.Bind(keys.Back, func() tea.Cmd {
		detail.Clear()
		return nil
	})
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		tea.SetWindowTitle(appTitle),
		a.loadWatched(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true

	case tea.KeyMsg:
		a.status = ""
		cmds = append(cmds, a.handleKey(msg))

	case tea.MouseMsg:
		if a.ratingVisible() && !a.showDebug {
			a.rating.SetOrigin(a.ratingOrigin())
			a.rating, _ = a.rating.Update(msg)
		}

	case controller.SearchSettled:
		if a.search.Handle(msg) {
			a.cursor = 0
		}

	case controller.DetailLoaded:
		if a.detail.Handle(msg) && msg.Err != nil {
			a.status = "Could not load movie"
		}

	case WatchedLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			break
		}
		a.err = nil
		a.entries = msg.Entries
		a.summary = msg.Summary
		if a.watchedCursor >= len(a.entries) {
			a.watchedCursor = max(len(a.entries)-1, 0)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, a.syncMode())
	return a, tea.Batch(cmds...)
}

// handleKey routes a key press. Global keys first, then the detail scope,
// then whatever has focus.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return tea.Quit
	}
	if key.Matches(msg, keys.Debug) {
		a.showDebug = !a.showDebug
		return nil
	}
	if a.showDebug {
		return nil
	}
	if cmd, ok := a.detailScope.Handle(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, keys.ToggleLeft):
		a.left.Toggle()
		return nil
	case key.Matches(msg, keys.ToggleRight):
		a.right.Toggle()
		return nil
	case key.Matches(msg, keys.NextFocus):
		a.setFocus((a.focus + 1) % focusCount)
		return nil
	case key.Matches(msg, keys.PrevFocus):
		a.setFocus((a.focus + focusCount - 1) % focusCount)
		return nil
	}

	switch a.focus {
	case focusSearch:
		return a.handleSearchKey(msg)
	case focusResults:
		return a.handleResultsKey(msg)
	default:
		return a.handlePanelKey(msg)
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
		if len(a.search.Results()) > 0 {
			a.setFocus(focusResults)
		}
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return tea.Batch(cmd, a.search.SetQuery(a.input.Value()))
}

func (a *App) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	results := a.search.Results()

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		} else {
			a.setFocus(focusSearch)
		}
	case key.Matches(msg, keys.Down):
		if a.cursor < len(results)-1 {
			a.cursor++
		}
	case key.Matches(msg, keys.Select):
		if a.cursor < len(results) {
			return a.detail.Select(results[a.cursor].ID)
		}
	}
	return nil
}

func (a *App) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	}
	if a.Mode() == ModeDetail {
		return a.handleDetailKey(msg)
	}
	return a.handleWatchedKey(msg)
}

func (a *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	d, _ := a.detail.Current()
	if _, ok := a.watchedRating(d.ID); ok {
		return nil
	}

	if key.Matches(msg, keys.Add) {
		r := a.rating.Committed()
		if r == 0 {
			a.status = "Rate the movie before adding it"
			return nil
		}
		a.detail.Clear()
		a.status = "Added " + d.Title
		return a.addWatched(model.NewWatchedEntry(d, r))
	}

	a.rating, _ = a.rating.Update(msg)
	return nil
}

func (a *App) handleWatchedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if a.watchedCursor > 0 {
			a.watchedCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.watchedCursor < len(a.entries)-1 {
			a.watchedCursor++
		}
	case key.Matches(msg, keys.Remove):
		if a.watchedCursor < len(a.entries) {
			return a.removeWatched(a.entries[a.watchedCursor].ID)
		}
	}
	return nil
}

func (a *App) setFocus(f focus) {
	a.focus = f
	if f == focusSearch {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}

// syncMode reconciles the detail scope, the rating widget and the window
// title with the detail controller after every update.
func (a *App) syncMode() tea.Cmd {
	d, ok := a.detail.Current()
	id := ""
	if ok {
		id = d.ID
	}
	if id == a.shownID {
		return nil
	}
	a.shownID = id

	if !ok {
		a.detailScope.Detach()
		return tea.SetWindowTitle(appTitle)
	}

	a.rating = rating.New(a.ratingOpts)
	a.detailScope.Attach()
	a.setFocus(focusPanel)
	return tea.SetWindowTitle(appTitle + " | " + d.Title)
}

// Mode reports browse or detail, derived from whether a movie is selected.
func (a App) Mode() Mode {
	if a.detail.Selected() {
		return ModeDetail
	}
	return ModeBrowse
}

// watchedRating returns the user's rating for id if it is on the list.
func (a *App) watchedRating(id string) (int, bool) {
	for _, e := range a.entries {
		if e.ID == id {
			return e.UserRating, true
		}
	}
	return 0, false
}

func (a *App) ratingVisible() bool {
	d, ok := a.detail.Current()
	if !ok || !a.right.Open() {
		return false
	}
	_, watched := a.watchedRating(d.ID)
	return !watched
}

// columnWidths splits the terminal between the two boxes.
func (a *App) columnWidths() (left, right int) {
	left = a.width * 2 / 5
	if left < 24 {
		left = min(24, a.width)
	}
	return left, a.width - left
}

// ratingOrigin is the screen cell of the first star. It mirrors the layout
// in View: header, box border, box title, detail head, blank line.
func (a *App) ratingOrigin() (x, y int) {
	d, ok := a.detail.Current()
	if !ok {
		return -1, -1
	}
	left, right := a.columnWidths()
	head := renderDetailHead(d, right-4)
	return left + 2, headerHeight + boxChromeLines + lipgloss.Height(head) + 1
}

func (a *App) loadWatched() tea.Cmd {
	w := a.watched
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		return readWatched(w)
	}
}

func (a *App) addWatched(e model.WatchedEntry) tea.Cmd {
	w, events := a.watched, a.events
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		dup, err := w.Contains(e.ID)
		if err == nil && !dup {
			err = w.Add(e)
		}
		if err != nil {
			logging.Error("add to watched list failed", "id", e.ID, "error", err)
			events.Error(otel.KindStoreError, "watched", err)
			return WatchedLoaded{Err: fmt.Errorf("add %s: %w", e.ID, err)}
		}
		if !dup {
			events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindWatchedAdd, Comp: "watched", MovieID: e.ID, Msg: e.Title})
		}
		return readWatched(w)
	}
}

func (a *App) removeWatched(id string) tea.Cmd {
	w, events := a.watched, a.events
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := w.Remove(id)
		if err != nil {
			logging.Error("remove from watched list failed", "id", id, "error", err)
			events.Error(otel.KindStoreError, "watched", err)
			return WatchedLoaded{Err: fmt.Errorf("remove %s: %w", id, err)}
		}
		events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindWatchedRemove, Comp: "watched", MovieID: id, Count: n})
		return readWatched(w)
	}
}

func readWatched(w WatchedList) WatchedLoaded {
	entries, err := w.Entries()
	if err != nil {
		return WatchedLoaded{Err: fmt.Errorf("load watched list: %w", err)}
	}
	summary, err := w.Summary()
	if err != nil {
		return WatchedLoaded{Err: fmt.Errorf("summarize watched list: %w", err)}
	}
	return WatchedLoaded{Entries: entries, Summary: summary}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.renderHeader()
	if a.showDebug {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			debugOverlay(a.ring, a.width, a.height-2),
			debugStatusBar(a.width),
		)
	}

	status := a.renderStatusBar()
	bodyHeight := a.height - headerHeight - lipgloss.Height(status)
	leftWidth, rightWidth := a.columnWidths()

	// Inner sizes exclude border and padding (4 columns) and border plus
	// title line (3 rows).
	left := a.left.Render(
		renderResultsPane(&a, leftWidth-4, bodyHeight-3),
		leftWidth, bodyHeight, a.focus == focusResults,
	)

	right := a.right
	var content string
	if d, ok := a.detail.Current(); ok {
		right.SetTitle("Movie")
		content = renderDetail(&a, renderDetailHead(d, rightWidth-4))
	} else {
		right.SetTitle("Watched")
		content = renderWatched(&a, rightWidth-4, bodyHeight-3)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		right.Render(content, rightWidth, bodyHeight, a.focus == focusPanel),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a App) renderHeader() string {
	count := ResultCount.Render(fmt.Sprintf("Found %d results", len(a.search.Results())))
	line := Logo.Render("🍿 popcorn") + "  " + a.input.View() + "  " + count
	return Header.Width(a.width).MaxHeight(headerHeight).Render(line)
}

func (a App) renderStatusBar() string {
	text := a.help.View(keys)
	switch {
	case a.err != nil:
		text = ErrorStyle.Render("Watched list: "+a.err.Error()) + "  " + text
	case a.status != "":
		text = Notice.Render(a.status) + "  " + text
	}
	return StatusBar.Width(a.width).Render(text)
}
