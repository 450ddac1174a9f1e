package mcp

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// mockQuestionService is a mock implementation of driving.QuestionService.
type mockQuestionService struct {
	questions []domain.Question
	thread    *domain.Thread
	err       error

	lastQuery string
	lastLimit int
}

func (m *mockQuestionService) Search(_ context.Context, query string, limit int) ([]domain.Question, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.questions, m.err
}

func (m *mockQuestionService) Get(_ context.Context, _, _ int64) (*domain.Question, error) {
	if m.thread == nil {
		return nil, m.err
	}
	return &m.thread.Question, m.err
}

func (m *mockQuestionService) Mine(ctx context.Context, id int64) (*domain.Question, error) {
	return m.Get(ctx, 0, id)
}

func (m *mockQuestionService) Thread(_ context.Context, _, _ int64) (*domain.Thread, error) {
	return m.thread, m.err
}

func (m *mockQuestionService) ByUser(_ context.Context, _ int64) ([]domain.Question, error) {
	return m.questions, m.err
}

func (m *mockQuestionService) Create(_ context.Context, _ domain.QuestionDraft) error {
	return m.err
}

func (m *mockQuestionService) Update(_ context.Context, _ int64, _ domain.QuestionDraft) (*domain.Question, error) {
	return nil, m.err
}

func (m *mockQuestionService) Delete(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockQuestionService) Vote(_ context.Context, _ int64, _ domain.VoteDirection) error {
	return m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answers []domain.Answer
	err     error
}

func (m *mockAnswerService) List(_ context.Context, _ int64) ([]domain.Answer, error) {
	return m.answers, m.err
}

func (m *mockAnswerService) Create(_ context.Context, _ int64, _ domain.AnswerDraft) error {
	return m.err
}

func (m *mockAnswerService) Update(_ context.Context, _ int64, _ domain.AnswerDraft) error {
	return m.err
}

func (m *mockAnswerService) Delete(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockAnswerService) Accept(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockAnswerService) Vote(_ context.Context, _ int64, _ domain.VoteDirection) error {
	return m.err
}

// mockTagService is a mock implementation of driving.TagService.
type mockTagService struct {
	tags    []domain.Tag
	popular []domain.Tag
	err     error
}

func (m *mockTagService) Search(_ context.Context, _ string) ([]domain.Tag, error) {
	return m.tags, m.err
}

func (m *mockTagService) Popular(_ context.Context) ([]domain.Tag, error) {
	return m.popular, m.err
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session domain.Session
}

func (m *mockSessionService) Current() domain.Session { return m.session }

func (m *mockSessionService) Token() string { return m.session.Token }

func (m *mockSessionService) Restore(_ context.Context) error { return nil }

func (m *mockSessionService) SignIn(_ context.Context) (*domain.Session, error) {
	return &m.session, nil
}

func (m *mockSessionService) SignOut(_ context.Context) error {
	m.session = domain.Session{}
	return nil
}

func (m *mockSessionService) Reauthenticate(_ context.Context) error { return nil }

func (m *mockSessionService) Subscribe(_ func(domain.Session)) func() { return func() {} }

func sampleThread() *domain.Thread {
	return &domain.Thread{
		Question: domain.Question{
			Post:     domain.Post{ID: 7, UserID: 3, CreatedBy: "Ada", Votes: 4},
			Title:    "How do I cancel a goroutine?",
			Question: "I start a worker and need to stop it.",
			Bounty:   50,
			Tags:     []domain.Tag{{ID: 1, Label: "golang"}},
		},
		Answers: []domain.Answer{
			{Post: domain.Post{ID: 11, CreatedBy: "Grace", Votes: 2}, Answer: "Use a context.", Accepted: true},
			{Post: domain.Post{ID: 12, CreatedBy: "Linus", Votes: -1}, Answer: "Kill the process."},
		},
	}
}
