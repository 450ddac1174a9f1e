package thread

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// MockQuestionService implements driving.QuestionService for testing.
type MockQuestionService struct {
	ThreadFunc func(ctx context.Context, userID, questionID int64) (*domain.Thread, error)
	VoteFunc   func(ctx context.Context, questionID int64, dir domain.VoteDirection) error
}

func (m *MockQuestionService) Search(_ context.Context, _ string, _ int) ([]domain.Question, error) {
	return nil, nil
}

func (m *MockQuestionService) Get(_ context.Context, _, _ int64) (*domain.Question, error) {
	return nil, domain.ErrNotFound
}

func (m *MockQuestionService) Mine(_ context.Context, _ int64) (*domain.Question, error) {
	return nil, domain.ErrNotFound
}

func (m *MockQuestionService) Thread(ctx context.Context, userID, questionID int64) (*domain.Thread, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(ctx, userID, questionID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockQuestionService) ByUser(_ context.Context, _ int64) ([]domain.Question, error) {
	return nil, nil
}

func (m *MockQuestionService) Create(_ context.Context, _ domain.QuestionDraft) error { return nil }

func (m *MockQuestionService) Update(_ context.Context, _ int64, _ domain.QuestionDraft) (*domain.Question, error) {
	return nil, nil
}

func (m *MockQuestionService) Delete(_ context.Context, _ int64) error { return nil }

func (m *MockQuestionService) Vote(ctx context.Context, questionID int64, dir domain.VoteDirection) error {
	if m.VoteFunc != nil {
		return m.VoteFunc(ctx, questionID, dir)
	}
	return nil
}

// MockAnswerService implements driving.AnswerService for testing.
type MockAnswerService struct {
	CreateFunc func(ctx context.Context, questionID int64, draft domain.AnswerDraft) error
	AcceptFunc func(ctx context.Context, answerID int64) error
	VoteFunc   func(ctx context.Context, answerID int64, dir domain.VoteDirection) error
}

func (m *MockAnswerService) List(_ context.Context, _ int64) ([]domain.Answer, error) {
	return nil, nil
}

func (m *MockAnswerService) Create(ctx context.Context, questionID int64, draft domain.AnswerDraft) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, questionID, draft)
	}
	return nil
}

func (m *MockAnswerService) Update(_ context.Context, _ int64, _ domain.AnswerDraft) error { return nil }

func (m *MockAnswerService) Delete(_ context.Context, _ int64) error { return nil }

func (m *MockAnswerService) Accept(ctx context.Context, answerID int64) error {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx, answerID)
	}
	return nil
}

func (m *MockAnswerService) Vote(ctx context.Context, answerID int64, dir domain.VoteDirection) error {
	if m.VoteFunc != nil {
		return m.VoteFunc(ctx, answerID, dir)
	}
	return nil
}

func sampleThread() *domain.Thread {
	return &domain.Thread{
		Question: domain.Question{
			Post:     domain.Post{ID: 10, UserID: 7, CreatedBy: "ada", Votes: 3},
			Title:    "How do I cancel a context?",
			Question: "I have a long running call.",
			Bounty:   50,
			Tags:     []domain.Tag{{ID: 1, Label: "golang"}},
		},
		Answers: []domain.Answer{
			{Post: domain.Post{ID: 100, CreatedBy: "grace", Votes: 1}, Answer: "Call cancel()."},
			{Post: domain.Post{ID: 101, CreatedBy: "linus"}, Answer: "Use a deadline.", Accepted: true},
		},
	}
}

func newLoadedView(q *MockQuestionService, a *MockAnswerService) *View {
	v := NewView(nil, nil, q, a)
	v.SetDimensions(100, 40)
	v.Load(7, 10)
	v, _ = v.Update(messages.ThreadLoaded{Thread: sampleThread()})
	return v
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockQuestionService{}, &MockAnswerService{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Init())
	assert.Nil(t, view.Thread())
}

func TestView_LoadFetchesThread(t *testing.T) {
	var gotUser, gotQuestion int64
	q := &MockQuestionService{
		ThreadFunc: func(_ context.Context, userID, questionID int64) (*domain.Thread, error) {
			gotUser, gotQuestion = userID, questionID
			return sampleThread(), nil
		},
	}
	view := NewView(nil, nil, q, &MockAnswerService{})
	view.SetDimensions(100, 40)

	cmd := view.Load(7, 10)
	require.NotNil(t, cmd)
	assert.True(t, view.Loading())
	assert.Contains(t, view.View(), "Loading...")

	msg := cmd()
	assert.Equal(t, int64(7), gotUser)
	assert.Equal(t, int64(10), gotQuestion)

	view, _ = view.Update(msg)
	assert.False(t, view.Loading())
	require.NotNil(t, view.Thread())
	assert.Equal(t, "How do I cancel a context?", view.Thread().Question.Title)
}

func TestView_RendersThread(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	out := view.View()
	assert.Contains(t, out, "How do I cancel a context?")
	assert.Contains(t, out, "[golang]")
	assert.Contains(t, out, "50 coins")
	assert.Contains(t, out, "2 answer(s)")
	assert.Contains(t, out, "Call cancel().")
	assert.Contains(t, out, "accepted")
}

func TestView_NoAnswers(t *testing.T) {
	view := NewView(nil, nil, &MockQuestionService{}, &MockAnswerService{})
	view.SetDimensions(100, 40)
	th := sampleThread()
	th.Answers = nil

	view, _ = view.Update(messages.ThreadLoaded{Thread: th})

	assert.Contains(t, view.View(), "No answers yet.")
}

func TestView_LoadError(t *testing.T) {
	view := NewView(nil, nil, &MockQuestionService{}, &MockAnswerService{})
	view.SetDimensions(100, 40)

	view, _ = view.Update(messages.ThreadLoaded{Err: domain.ErrNotFound})

	assert.ErrorIs(t, view.Err(), domain.ErrNotFound)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_Navigation(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	view, _ = view.Update(key("j"))
	assert.Equal(t, 1, view.Selected())
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, view.Selected())
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, view.Selected())
	view, _ = view.Update(key("k"))
	assert.Equal(t, 1, view.Selected())
}

func TestView_VoteQuestion(t *testing.T) {
	var gotID int64
	var gotDir domain.VoteDirection
	q := &MockQuestionService{
		VoteFunc: func(_ context.Context, id int64, dir domain.VoteDirection) error {
			gotID, gotDir = id, dir
			return nil
		},
	}
	view := newLoadedView(q, &MockAnswerService{})

	_, cmd := view.Update(key("+"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ActionCompleted{Action: ActionUpVote}, cmd())
	assert.Equal(t, int64(10), gotID)
	assert.Equal(t, domain.VoteUp, gotDir)
}

func TestView_VoteAnswer(t *testing.T) {
	var gotID int64
	var gotDir domain.VoteDirection
	a := &MockAnswerService{
		VoteFunc: func(_ context.Context, id int64, dir domain.VoteDirection) error {
			gotID, gotDir = id, dir
			return nil
		},
	}
	view := newLoadedView(&MockQuestionService{}, a)
	view, _ = view.Update(key("j"))

	_, cmd := view.Update(key("-"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ActionCompleted{Action: ActionDownVote}, cmd())
	assert.Equal(t, int64(100), gotID)
	assert.Equal(t, domain.VoteDown, gotDir)
}

func TestView_AcceptRequiresAnswer(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	view, cmd := view.Update(key("a"))

	assert.Nil(t, cmd)
	assert.Equal(t, "Select an answer to accept.", view.Status())
}

func TestView_AcceptAnswer(t *testing.T) {
	var gotID int64
	a := &MockAnswerService{
		AcceptFunc: func(_ context.Context, id int64) error {
			gotID = id
			return nil
		},
	}
	view := newLoadedView(&MockQuestionService{}, a)
	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("j"))

	_, cmd := view.Update(key("a"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ActionCompleted{Action: ActionAccept}, cmd())
	assert.Equal(t, int64(101), gotID)
}

func TestView_Reply(t *testing.T) {
	var gotQuestion int64
	var gotDraft domain.AnswerDraft
	a := &MockAnswerService{
		CreateFunc: func(_ context.Context, questionID int64, draft domain.AnswerDraft) error {
			gotQuestion, gotDraft = questionID, draft
			return nil
		},
	}
	view := newLoadedView(&MockQuestionService{}, a)

	view, _ = view.Update(key("r"))
	require.True(t, view.Replying())
	view, _ = view.Update(key("Use select."))
	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.NotNil(t, cmd)
	assert.False(t, view.Replying())
	assert.Equal(t, messages.ActionCompleted{Action: ActionReply}, cmd())
	assert.Equal(t, int64(10), gotQuestion)
	assert.Equal(t, "Use select.", gotDraft.Answer)
}

func TestView_ReplyEmpty(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})
	view, _ = view.Update(key("r"))

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.True(t, view.Replying())
	assert.Equal(t, "The answer is empty.", view.Status())
}

func TestView_ReplyCancel(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})
	view, _ = view.Update(key("r"))

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, view.Replying())
}

func TestView_ActionCompletedReloads(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	view, cmd := view.Update(messages.ActionCompleted{Action: ActionReply})

	assert.NotNil(t, cmd)
	assert.Equal(t, "Answer posted.", view.Status())
}

func TestView_ActionFailed(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	view, cmd := view.Update(messages.ActionCompleted{Action: ActionUpVote, Err: errors.New("boom")})
	assert.Nil(t, cmd)
	assert.Equal(t, "Could not upvote: boom", view.Status())

	view, _ = view.Update(messages.ActionCompleted{Action: ActionAccept, Err: domain.ErrAuthRequired})
	assert.Equal(t, "Sign in with 'rocketfuel login' first.", view.Status())
}

func TestView_EscGoesToSearch(t *testing.T) {
	view := newLoadedView(&MockQuestionService{}, &MockAnswerService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_KeysIgnoredWithoutThread(t *testing.T) {
	view := NewView(nil, nil, &MockQuestionService{}, &MockAnswerService{})

	view, cmd := view.Update(key("+"))

	assert.Nil(t, cmd)
	assert.False(t, view.Replying())
}
