package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/components/list"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// MockSearchField records what the view feeds it and reports a settable state.
type MockSearchField struct {
	mu       sync.Mutex
	state    domain.SearchState
	changed  chan struct{}
	queries  []string
	searched []string
	delay    time.Duration
}

func newMockSearchField() *MockSearchField {
	return &MockSearchField{
		state:   domain.SearchState{Phase: domain.SearchPhaseIdle},
		changed: make(chan struct{}, 1),
	}
}

func (m *MockSearchField) OnQueryChange(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, raw)
	m.state = domain.SearchState{QueryText: raw, NormalizedQuery: domain.NormalizeQuery(raw), Phase: domain.SearchPhaseIdle}
	if m.state.NormalizedQuery != "" {
		m.state.Phase = domain.SearchPhasePendingDebounce
	}
}

func (m *MockSearchField) SearchNow(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searched = append(m.searched, raw)
	m.state = domain.SearchState{
		QueryText:       raw,
		NormalizedQuery: domain.NormalizeQuery(raw),
		Phase:           domain.SearchPhaseLoading,
		IsLoading:       true,
	}
}

func (m *MockSearchField) Flush() {}

func (m *MockSearchField) State() domain.SearchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockSearchField) Changed() <-chan struct{} { return m.changed }

func (m *MockSearchField) SetDelay(d time.Duration) { m.delay = d }

func (m *MockSearchField) Close() {}

func (m *MockSearchField) setReady(results []domain.SearchResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Phase = domain.SearchPhaseReady
	m.state.IsLoading = false
	m.state.HasSearched = true
	m.state.Results = results
	m.state.Err = err
}

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	RecentFunc func(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error)
}

func (m *MockHistoryService) Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockHistoryService) Clear(_ context.Context) error { return nil }

func questions(n int) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.SearchResult{
			Kind:   domain.ResultKindQuestion,
			ID:     int64(i),
			UserID: 7,
			Title:  "Question " + string(rune('A'+i-1)),
		})
	}
	return out
}

func newTestView() (*View, *MockSearchField, *MockSearchField) {
	quick, full := newMockSearchField(), newMockSearchField()
	v := NewView(styles.DefaultStyles(), nil, quick, full, &MockHistoryService{})
	v.SetDimensions(100, 40)
	return v, quick, full
}

func typeText(v *View, text string) *View {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return v
}

func press(v *View, t tea.KeyType) (*View, tea.Cmd) {
	return v.Update(tea.KeyMsg{Type: t})
}

func TestNewView(t *testing.T) {
	quick, full := newMockSearchField(), newMockSearchField()
	view := NewView(styles.DefaultStyles(), nil, quick, full, nil)

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.False(t, view.Expanded())
	assert.False(t, view.Ready())
	assert.Equal(t, domain.QuickSearchLimit, view.quickLimit)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, newMockSearchField(), newMockSearchField(), nil)
	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view, _, _ := newTestView()
	ctx := context.WithValue(context.Background(), struct{}{}, "v")

	assert.Same(t, view, view.WithContext(ctx))
	assert.Equal(t, ctx, view.ctx)
}

func TestView_WithQuickLimit(t *testing.T) {
	view, _, _ := newTestView()

	view.WithQuickLimit(5)
	assert.Equal(t, 5, view.quickLimit)

	view.WithQuickLimit(0)
	assert.Equal(t, 5, view.quickLimit)
}

func TestView_Init(t *testing.T) {
	view, _, _ := newTestView()
	assert.NotNil(t, view.Init())
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil, newMockSearchField(), newMockSearchField(), nil)

	view, cmd := view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 120, view.Width())
	assert.Equal(t, 50, view.Height())
}

func TestView_NotReady(t *testing.T) {
	view := NewView(nil, nil, newMockSearchField(), newMockSearchField(), nil)
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_IdleShowsPrompt(t *testing.T) {
	view, _, _ := newTestView()
	assert.Contains(t, view.View(), "Type something!")
}

func TestView_TypingFeedsQuickSearch(t *testing.T) {
	view, quick, full := newTestView()

	view = typeText(view, "go")

	assert.Equal(t, "go", view.Query())
	assert.Equal(t, []string{"go"}, quick.queries)
	assert.Empty(t, full.queries)
	assert.Contains(t, view.View(), "Searching...")
}

func TestView_TypingStartsSpinner(t *testing.T) {
	view, _, _ := newTestView()

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})

	assert.NotNil(t, cmd)
	assert.True(t, view.spinning)
}

func TestView_EnterRunsFullSearch(t *testing.T) {
	view, _, full := newTestView()
	view = typeText(view, "channels")

	view, _ = press(view, tea.KeyEnter)

	assert.True(t, view.Expanded())
	assert.Equal(t, []string{"channels"}, full.searched)
}

func TestView_EnterOnEmptyQueryDoesNothing(t *testing.T) {
	view, _, full := newTestView()

	view, cmd := press(view, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.False(t, view.Expanded())
	assert.Empty(t, full.searched)
}

func TestView_ClearingQueryResetsBothFields(t *testing.T) {
	view, quick, full := newTestView()
	view = typeText(view, "g")
	view, _ = press(view, tea.KeyEnter)
	require.True(t, view.Expanded())

	view, _ = press(view, tea.KeyBackspace)

	assert.Equal(t, "", view.Query())
	assert.False(t, view.Expanded())
	assert.Equal(t, "", quick.queries[len(quick.queries)-1])
	assert.Equal(t, "", full.queries[len(full.queries)-1])
}

func TestView_TypingWhileExpandedFeedsFullSearch(t *testing.T) {
	view, quick, full := newTestView()
	view = typeText(view, "go")
	view, _ = press(view, tea.KeyEnter)

	view = typeText(view, "x")

	assert.Equal(t, []string{"go"}, quick.queries)
	assert.Equal(t, []string{"gox"}, full.queries)
}

func TestView_ReadyWithResults(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(2), nil)

	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	out := view.View()
	assert.Contains(t, out, "Question A")
	assert.Contains(t, out, "Question B")
	assert.NotContains(t, out, list.MoreLabel)
	assert.Len(t, view.Results(), 2)
}

func TestView_ReadyEmpty(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "nothing")
	quick.setReady(nil, nil)

	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	assert.Contains(t, view.View(), "No questions found.")
}

func TestView_ReadyWithError(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(nil, errors.New("server down"))

	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	assert.Contains(t, view.View(), "server down")
}

func TestView_QuickSearchOffersMore(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(domain.QuickSearchLimit), nil)

	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	assert.Contains(t, view.View(), list.MoreLabel)
}

func TestView_MoreRowExpands(t *testing.T) {
	view, quick, full := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(3), nil)
	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	view, _ = press(view, tea.KeyDown) // into results
	require.False(t, view.InputFocused())
	for i := 0; i < 3; i++ {
		view, _ = press(view, tea.KeyDown)
	}
	view, _ = press(view, tea.KeyEnter)

	assert.True(t, view.Expanded())
	assert.Equal(t, []string{"go"}, full.searched)
}

func TestView_SelectQuestion(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(2), nil)
	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})

	view, _ = press(view, tea.KeyDown)
	view, _ = press(view, tea.KeyDown)
	_, cmd := press(view, tea.KeyEnter)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.QuestionSelected{UserID: 7, QuestionID: 2}, cmd())
}

func TestView_UpAtTopReturnsToInput(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(2), nil)
	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})
	view, _ = press(view, tea.KeyDown)
	require.False(t, view.InputFocused())

	view, _ = press(view, tea.KeyUp)

	assert.True(t, view.InputFocused())
}

func TestView_NewSearchKeyFocusesInput(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(1), nil)
	view, _ = view.Update(messages.SearchUpdated{Field: messages.FieldQuick})
	view, _ = press(view, tea.KeyDown)

	view = typeText(view, "/")

	assert.True(t, view.InputFocused())
	assert.Equal(t, "go", view.Query())
}

func TestView_DownWithoutResultsStaysInInput(t *testing.T) {
	view, _, _ := newTestView()

	view, _ = press(view, tea.KeyDown)

	assert.True(t, view.InputFocused())
}

func TestView_HistoryHints(t *testing.T) {
	view, _, full := newTestView()

	view, _ = view.Update(messages.HistoryLoaded{Entries: []domain.SearchHistoryEntry{
		{Query: "golang"},
		{Query: "[docker] compose"},
	}})

	out := view.View()
	assert.Contains(t, out, "Recent searches")
	assert.Contains(t, out, "golang")
	assert.Equal(t, []string{"golang", "[docker] compose"}, view.Hints())

	view, _ = press(view, tea.KeyDown)
	view, _ = press(view, tea.KeyEnter)

	assert.Equal(t, "golang", view.Query())
	assert.Equal(t, []string{"golang"}, full.searched)
	assert.True(t, view.Expanded())
}

func TestView_HistoryErrorIgnored(t *testing.T) {
	view, _, _ := newTestView()

	view, _ = view.Update(messages.HistoryLoaded{Err: errors.New("locked")})

	assert.Empty(t, view.Hints())
	assert.Contains(t, view.View(), "Type something!")
}

func TestView_InitLoadsHistory(t *testing.T) {
	var gotLimit int
	history := &MockHistoryService{
		RecentFunc: func(_ context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
			gotLimit = limit
			return []domain.SearchHistoryEntry{{Query: "grpc"}}, nil
		},
	}
	view := NewView(nil, nil, newMockSearchField(), newMockSearchField(), history)

	msg := view.loadHistory()()

	assert.Equal(t, HistoryHints, gotLimit)
	assert.Equal(t, messages.HistoryLoaded{Entries: []domain.SearchHistoryEntry{{Query: "grpc"}}}, msg)
}

func TestView_IgnoresTagUpdates(t *testing.T) {
	view, quick, _ := newTestView()
	view = typeText(view, "go")
	quick.setReady(questions(1), nil)

	view, cmd := view.Update(messages.SearchUpdated{Field: messages.FieldTags})

	assert.Nil(t, cmd)
	assert.Empty(t, view.Results())
}

func TestView_Search(t *testing.T) {
	view, _, full := newTestView()

	cmd := view.Search("[golang]")

	assert.NotNil(t, cmd)
	assert.Equal(t, "[golang]", view.Query())
	assert.True(t, view.Expanded())
	assert.Equal(t, []string{"[golang]"}, full.searched)
}

func TestView_EscGoesToMenu(t *testing.T) {
	view, _, _ := newTestView()

	_, cmd := press(view, tea.KeyEsc)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view, _, _ := newTestView()
	view = typeText(view, "go")
	view, _ = press(view, tea.KeyEnter)

	view.Reset()

	assert.Equal(t, "", view.Query())
	assert.False(t, view.Expanded())
	assert.True(t, view.InputFocused())
}

func TestView_SetUser(t *testing.T) {
	view, _, _ := newTestView()

	view.SetUser("Ada Lovelace")

	assert.Contains(t, view.View(), "Ada Lovelace")
}
