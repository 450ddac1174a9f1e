// Package search provides the question search view for the TUI.
//
// The view owns two debounced fields over one input: a quick search
// that shows a handful of results, and a full search reached with Enter
// or the "View more results" row.
package search

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/components/input"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/components/list"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/components/status"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/keymap"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// HistoryHints is how many recent searches are offered on an empty query.
const HistoryHints = 5

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model

	quick   driving.IncrementalSearch
	full    driving.IncrementalSearch
	history driving.HistoryService
	ctx     context.Context

	quickLimit int
	expanded   bool // true once the full search replaced the quick one
	spinning   bool
	width      int
	height     int
	ready      bool
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view. quick may be nil, in which case
// typing drives the full search directly.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	quick driving.IncrementalSearch,
	full driving.IncrementalSearch,
	history driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Title),
	)

	query := input.NewQueryInput(s, "Search", "Ask anything, or filter with [tag]")
	query.ShowTagChips(true)

	return &View{
		styles:     s,
		keymap:     km,
		input:      query,
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
		quick:      quick,
		full:       full,
		history:    history,
		ctx:        context.Background(),
		quickLimit: domain.QuickSearchLimit,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithQuickLimit sets how many results make the quick search offer more.
func (v *View) WithQuickLimit(limit int) *View {
	if limit > 0 {
		v.quickLimit = limit
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadHistory())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchUpdated:
		if msg.Field == messages.FieldTags {
			return v, nil
		}
		v.refresh()
		return v, v.startSpinner()

	case messages.HistoryLoaded:
		v.applyHistory(msg)
		return v, nil

	case spinner.TickMsg:
		if !v.busy() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		if v.input.Blank() {
			return v, nil
		}
		v.expand()
		return v, v.startSpinner()

	case tea.KeyDown:
		if !v.list.IsEmpty() {
			v.focusResults()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Changed() {
		v.queryChanged(v.input.Value())
		return v, tea.Batch(cmd, v.startSpinner())
	}
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.list.AtTop() {
			v.focusQuery()
			return v, nil
		}
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusQuery()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Select):
		return v.selectRow()
	}
	return v, nil
}

func (v *View) selectRow() (*View, tea.Cmd) {
	if v.list.MoreSelected() {
		v.expand()
		return v, v.startSpinner()
	}
	if hint, ok := v.list.SelectedHint(); ok {
		v.input.SetValue(hint)
		v.focusQuery()
		v.expand()
		return v, v.startSpinner()
	}
	if r := v.list.SelectedResult(); r != nil && r.Kind == domain.ResultKindQuestion {
		sel := messages.QuestionSelected{UserID: r.UserID, QuestionID: r.ID}
		return v, func() tea.Msg { return sel }
	}
	return v, nil
}

// queryChanged feeds typed text to the active field. An empty query
// drops back to the quick search.
func (v *View) queryChanged(raw string) {
	if domain.NormalizeQuery(raw) == "" {
		v.expanded = false
		if v.quick != nil {
			v.quick.OnQueryChange(raw)
		}
		v.full.OnQueryChange(raw)
		v.refresh()
		return
	}
	v.active().OnQueryChange(raw)
	v.refresh()
}

// expand switches to the full search for the current input.
func (v *View) expand() {
	v.expanded = true
	v.full.SearchNow(v.input.Value())
	v.refresh()
}

// Search runs a full search for query, replacing the input.
func (v *View) Search(query string) tea.Cmd {
	v.input.SetValue(query)
	v.focusQuery()
	if domain.NormalizeQuery(query) == "" {
		v.queryChanged(query)
		return nil
	}
	v.expand()
	return v.startSpinner()
}

func (v *View) active() driving.IncrementalSearch {
	if v.expanded || v.quick == nil {
		return v.full
	}
	return v.quick
}

// State returns the state of the field currently shown.
func (v *View) State() domain.SearchState {
	return v.active().State()
}

func (v *View) busy() bool {
	st := v.State()
	return st.Phase == domain.SearchPhasePendingDebounce || st.Phase == domain.SearchPhaseLoading
}

func (v *View) startSpinner() tea.Cmd {
	if v.spinning || !v.busy() {
		return nil
	}
	v.spinning = true
	return v.spinner.Tick
}

// refresh copies the active field's state into the list and status bar.
func (v *View) refresh() {
	st := v.State()
	more := false
	switch {
	case st.Phase == domain.SearchPhaseIdle:
		v.list.SetResults(nil)
		v.list.SetMore(false)
	case v.busy():
	case st.Err != nil:
		v.list.SetResults(nil)
	default:
		more = !v.expanded && v.quick != nil && st.HasMore(v.quickLimit)
		v.list.SetResults(st.Results)
		v.list.SetMore(more)
	}
	v.statusbar.ShowSearch(st, more)
	if v.list.IsEmpty() && !v.focusInput {
		v.focusQuery()
	}
}

func (v *View) loadHistory() tea.Cmd {
	if v.history == nil {
		return nil
	}
	ctx, history := v.ctx, v.history
	return func() tea.Msg {
		entries, err := history.Recent(ctx, HistoryHints)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (v *View) applyHistory(msg messages.HistoryLoaded) {
	if msg.Err != nil {
		return
	}
	hints := make([]string, 0, len(msg.Entries))
	for _, e := range msg.Entries {
		hints = append(hints, e.Query)
	}
	v.list.SetHints(hints)
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) focusQuery() {
	v.focusInput = true
	v.input.Focus()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Rocket Fuel"), "", v.input.View(), "")
	sections = append(sections, v.renderBody(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderBody() string {
	st := v.State()
	switch {
	case st.Phase == domain.SearchPhaseIdle:
		if len(v.list.Hints()) > 0 {
			return v.list.View()
		}
		return v.styles.Muted.Render("Type something!")
	case v.busy():
		return v.spinner.View() + " " + v.styles.Muted.Render("Searching...")
	case st.Err != nil:
		return v.styles.Error.Render("Error: " + st.Err.Error())
	case len(st.Results) == 0:
		return v.styles.Muted.Render("No questions found.")
	}
	return v.list.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// SetUser shows the signed-in user in the status bar.
func (v *View) SetUser(user string) {
	v.statusbar.SetUser(user)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// Expanded reports whether the full search is shown.
func (v *View) Expanded() bool {
	return v.expanded
}

// Results returns the results on screen.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Hints returns the recent searches on offer.
func (v *View) Hints() []string {
	return v.list.Hints()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the query and returns to the quick search.
func (v *View) Reset() {
	v.input.Reset()
	v.focusQuery()
	v.queryChanged("")
}
