package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/keymap"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/views/menu"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/views/search"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/views/tags"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/views/thread"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Each search field, the session and the settings watcher have exactly
// one outstanding wait command. The App re-arms it after every delivery.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// watchCtx ends the wait commands when the app closes.
	watchCtx  context.Context
	stopWatch context.CancelFunc

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView   *menu.View
	searchView *search.View
	tagsView   *tags.View
	threadView *thread.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// initialQuery is searched on start when set.
	initialQuery string

	sessionCh   chan domain.Session
	unsubscribe func()
	settingsCh  <-chan domain.AppSettings

	// user is the display name of the signed-in user.
	user string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		searchView:  search.NewView(s, km, ports.QuickSearch, ports.QuestionSearch, ports.History),
		tagsView:    tags.NewView(s, km, ports.TagSearch, ports.Tags),
		threadView:  thread.NewView(s, km, ports.Questions, ports.Answers),
		currentView: messages.ViewMenu, // Start with menu
	}
	a.watchCtx, a.stopWatch = context.WithCancel(context.Background())
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			a.searchView.WithQuickLimit(settings.Search.QuickLimit)
		}
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.tagsView.WithContext(ctx)
	a.threadView.WithContext(ctx)
	return a
}

// WithInitialQuery opens the search view and searches query on start.
func (a *App) WithInitialQuery(query string) *App {
	if domain.NormalizeQuery(query) == "" {
		return a
	}
	a.initialQuery = query
	a.currentView = messages.ViewSearch
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	a.stopWatch()
	a.watchCtx, a.stopWatch = context.WithCancel(a.ctx)

	cmds := []tea.Cmd{
		tea.SetWindowTitle("rocketfuel"),
		a.waitForChange(messages.FieldQuick),
		a.waitForChange(messages.FieldQuestions),
		a.waitForChange(messages.FieldTags),
	}
	cmds = append(cmds, a.subscribeSession(), a.watchSettings())

	if a.initialQuery != "" {
		cmds = append(cmds, a.searchView.Init(), a.searchView.Search(a.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Close stops the wait commands and the session subscription.
func (a *App) Close() {
	a.stopWatch()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *App) field(f messages.Field) driving.IncrementalSearch {
	switch f {
	case messages.FieldQuick:
		return a.ports.QuickSearch
	case messages.FieldTags:
		return a.ports.TagSearch
	default:
		return a.ports.QuestionSearch
	}
}

// waitForChange blocks until the field reports a change.
func (a *App) waitForChange(f messages.Field) tea.Cmd {
	ch, ctx := a.field(f).Changed(), a.watchCtx
	return func() tea.Msg {
		select {
		case <-ch:
			return messages.SearchUpdated{Field: f}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) subscribeSession() tea.Cmd {
	if a.ports.Session == nil {
		return nil
	}
	if a.unsubscribe == nil {
		ch := make(chan domain.Session, 1)
		a.sessionCh = ch
		a.unsubscribe = a.ports.Session.Subscribe(func(s domain.Session) {
			// Latest wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		})
	}
	a.setUser(a.ports.Session.Current())
	return a.waitForSession()
}

func (a *App) waitForSession() tea.Cmd {
	if a.sessionCh == nil {
		return nil
	}
	ch, ctx := a.sessionCh, a.watchCtx
	return func() tea.Msg {
		select {
		case s := <-ch:
			return messages.SessionChanged{Session: s}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) watchSettings() tea.Cmd {
	if a.ports.Settings == nil {
		return nil
	}
	ch, err := a.ports.Settings.Watch(a.watchCtx)
	if err != nil {
		logger.Debug("tui: settings watch unavailable: %v", err)
		return nil
	}
	a.settingsCh = ch
	return a.waitForSettings()
}

func (a *App) waitForSettings() tea.Cmd {
	if a.settingsCh == nil {
		return nil
	}
	ch := a.settingsCh
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return messages.SettingsReloaded{Settings: s}
	}
}

func (a *App) setUser(s domain.Session) {
	a.user = ""
	if s.IsSignedIn() {
		a.user = s.User.Name
		if a.user == "" {
			a.user = s.User.Email
		}
		if a.user == "" {
			a.user = "signed in"
		}
	}
	a.menuView.SetUser(a.user)
	a.searchView.SetUser(a.user)
	a.tagsView.SetUser(a.user)
	a.threadView.SetUser(a.user)
}

func (a *App) applySettings(s domain.AppSettings) {
	logger.Debug("tui: settings reloaded, debounce %s", s.Search.Debounce)
	a.ports.QuickSearch.SetDelay(s.Search.Debounce)
	a.ports.QuestionSearch.SetDelay(s.Search.Debounce)
	a.ports.TagSearch.SetDelay(s.Search.Debounce)
	a.searchView.WithQuickLimit(s.Search.QuickLimit)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.SearchUpdated:
		if msg.Field == messages.FieldTags {
			a.tagsView, cmd = a.tagsView.Update(msg)
		} else {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, tea.Batch(cmd, a.waitForChange(msg.Field))

	case spinner.TickMsg:
		// Both views may own a running spinner; ids keep them apart.
		var tagsCmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		a.tagsView, tagsCmd = a.tagsView.Update(msg)
		return a, tea.Batch(cmd, tagsCmd)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.QuestionSelected:
		a.currentView = messages.ViewThread
		return a, a.threadView.Load(msg.UserID, msg.QuestionID)

	case messages.TagSelected:
		a.currentView = messages.ViewSearch
		return a, a.searchView.Search("[" + msg.Label + "]")

	case messages.ThreadLoaded, messages.ActionCompleted:
		a.threadView, cmd = a.threadView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.PopularTagsLoaded:
		a.tagsView, cmd = a.tagsView.Update(msg)
		return a, cmd

	case messages.SessionChanged:
		a.setUser(msg.Session)
		return a, a.waitForSession()

	case messages.SettingsReloaded:
		a.applySettings(msg.Settings)
		return a, a.waitForSettings()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTags:
		a.tagsView, cmd = a.tagsView.Update(msg)
	case messages.ViewThread:
		a.threadView, cmd = a.threadView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTags:
		a.tagsView, cmd = a.tagsView.Update(msg)
	case messages.ViewThread:
		a.threadView, cmd = a.threadView.Update(msg)
	case messages.ViewHelp:
		// Esc from help goes to menu
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// switchTo activates a view. Coming back from a thread keeps the search as it was.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewSearch:
		if from == messages.ViewThread {
			return nil
		}
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewTags:
		a.tagsView.Reset()
		return a.tagsView.Init()
	case messages.ViewMenu, messages.ViewThread, messages.ViewHelp:
		// Other views don't need special initialisation
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewTags:
		return a.tagsView.View()
	case messages.ViewThread:
		return a.threadView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  s, t        Jump to search or tags
  ?           This help
  q           Quit

Search:
  (type)      Search as you type
  enter       Show all results
  ↓           Move to results
  [tag]       Filter by tag, e.g. [golang] channels

Results:
  j/k, ↑/↓    Navigate results
  enter       Open question
  /, n        New search

Thread:
  j/k, ↑/↓    Select question or answer
  +, -        Vote
  a           Accept answer
  r           Reply (ctrl+s sends, esc cancels)
  ctrl+r      Reload

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// User returns the displayed signed-in user.
func (a *App) User() string {
	return a.user
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SearchView returns the question search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// ThreadView returns the thread view.
func (a *App) ThreadView() *thread.View {
	return a.threadView
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.tagsView.SetDimensions(width, height)
	a.threadView.SetDimensions(width, height)
}
