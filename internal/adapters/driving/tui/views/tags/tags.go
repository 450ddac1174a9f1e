// Package tags provides the tag browser view for the TUI.
package tags

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

// View lists popular tags and searches tags as you type.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model

	field   driving.IncrementalSearch
	tagSvc  driving.TagService
	ctx     context.Context
	popular []domain.SearchResult
	err     error

	spinning   bool
	width      int
	height     int
	ready      bool
	focusInput bool
}

// NewView creates a new tag view. tagSvc may be nil, in which case no
// popular tags are shown.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	field driving.IncrementalSearch,
	tagSvc driving.TagService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s, "Tags", "Filter tags"),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Title)),
		field:      field,
		tagSvc:     tagSvc,
		ctx:        context.Background(),
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

// Init initialises the view and loads popular tags.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadPopular())
}

func (v *View) loadPopular() tea.Cmd {
	if v.tagSvc == nil {
		return nil
	}
	ctx, svc := v.ctx, v.tagSvc
	return func() tea.Msg {
		tags, err := svc.Popular(ctx)
		return messages.PopularTagsLoaded{Tags: tags, Err: err}
	}
}

// Update handles messages for the tag view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PopularTagsLoaded:
		v.err = msg.Err
		popular := make([]domain.SearchResult, 0, len(msg.Tags))
		for _, t := range msg.Tags {
			popular = append(popular, domain.TagResult(t))
		}
		v.popular = popular
		v.refresh()
		return v, nil

	case messages.SearchUpdated:
		if msg.Field != messages.FieldTags {
			return v, nil
		}
		v.refresh()
		return v, v.startSpinner()

	case spinner.TickMsg:
		if !v.busy() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
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
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEnter:
			v.field.SearchNow(v.input.Value())
			v.refresh()
			return v, v.startSpinner()
		case tea.KeyDown:
			if !v.list.IsEmpty() {
				v.focusInput = false
				v.input.Blur()
			}
			return v, nil
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if v.input.Changed() {
			v.field.OnQueryChange(v.input.Value())
			v.refresh()
			return v, tea.Batch(cmd, v.startSpinner())
		}
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.list.AtTop() {
			v.focusInput = true
			v.input.Focus()
			return v, nil
		}
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Select):
		if r := v.list.SelectedResult(); r != nil {
			sel := messages.TagSelected{Label: r.Title}
			return v, func() tea.Msg { return sel }
		}
	}
	return v, nil
}

func (v *View) busy() bool {
	st := v.field.State()
	return st.Phase == domain.SearchPhasePendingDebounce || st.Phase == domain.SearchPhaseLoading
}

func (v *View) startSpinner() tea.Cmd {
	if v.spinning || !v.busy() {
		return nil
	}
	v.spinning = true
	return v.spinner.Tick
}

// refresh shows popular tags while the query is empty, otherwise the field's results.
func (v *View) refresh() {
	st := v.field.State()
	switch {
	case st.Phase == domain.SearchPhaseIdle:
		v.list.SetResults(v.popular)
	case v.busy():
	case st.Err != nil:
		v.list.SetResults(nil)
	default:
		v.list.SetResults(st.Results)
	}
	v.statusbar.ShowSearch(st, false)
	if v.list.IsEmpty() && !v.focusInput {
		v.focusInput = true
		v.input.Focus()
	}
}

// View renders the tag view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Rocket Fuel · Tags"), "",
		v.input.View(), "",
		v.renderBody(), "",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderBody() string {
	st := v.field.State()
	switch {
	case st.Phase == domain.SearchPhaseIdle:
		if v.err != nil {
			return v.styles.Error.Render("Error: " + v.err.Error())
		}
		if len(v.popular) == 0 {
			return v.styles.Muted.Render("Type something!")
		}
		return v.styles.Subtitle.Render("Popular tags") + "\n\n" + v.list.View()
	case v.busy():
		return v.spinner.View() + " " + v.styles.Muted.Render("Searching...")
	case st.Err != nil:
		return v.styles.Error.Render("Error: " + st.Err.Error())
	case len(st.Results) == 0:
		return v.styles.Muted.Render("No tags found.")
	}
	return v.list.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// SetUser shows the signed-in user in the status bar.
func (v *View) SetUser(user string) {
	v.statusbar.SetUser(user)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Popular returns the loaded popular tags.
func (v *View) Popular() []domain.SearchResult {
	return v.popular
}

// Results returns the rows on screen.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// Err returns the error from loading popular tags.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the filter.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.focusInput = true
	v.field.OnQueryChange("")
	v.refresh()
}
