package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockUserAPI implements driven.UserAPI for testing.
type mockUserAPI struct {
	mu         sync.Mutex
	authCalls  []string
	tokens     []string
	authErr    error
	users      map[string]*domain.User
	byEmailErr error
	byIDErr    error
	byIDCalls  []int64
	emailCalls []string
}

func (m *mockUserAPI) Authenticate(_ context.Context, idToken string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCalls = append(m.authCalls, idToken)
	if m.authErr != nil {
		return "", m.authErr
	}
	if len(m.tokens) == 0 {
		return "app-" + idToken, nil
	}
	token := m.tokens[0]
	m.tokens = m.tokens[1:]
	return token, nil
}

func (m *mockUserAPI) ByID(_ context.Context, userID int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDCalls = append(m.byIDCalls, userID)
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	for _, u := range m.users {
		if u.ID == userID {
			user := *u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserAPI) ByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailCalls = append(m.emailCalls, email)
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := *u
	return &user, nil
}

// mockIdentityProvider implements driven.IdentityProvider for testing.
type mockIdentityProvider struct {
	signInToken  string
	signInErr    error
	refreshToken string
	refreshErr   error
	signOutErr   error
	claims       *domain.IdentityClaims
	claimsErr    error

	signIns  int
	refreshs int
	signOuts int
}

func (m *mockIdentityProvider) SignIn(_ context.Context) (string, error) {
	m.signIns++
	return m.signInToken, m.signInErr
}

func (m *mockIdentityProvider) Refresh(_ context.Context) (string, error) {
	m.refreshs++
	return m.refreshToken, m.refreshErr
}

func (m *mockIdentityProvider) SignOut(_ context.Context) error {
	m.signOuts++
	return m.signOutErr
}

func (m *mockIdentityProvider) Claims(_ context.Context, _ string) (*domain.IdentityClaims, error) {
	if m.claimsErr != nil {
		return nil, m.claimsErr
	}
	if m.claims == nil {
		return &domain.IdentityClaims{}, nil
	}
	return m.claims, nil
}

// mockQuestionAPI implements driven.QuestionAPI for testing.
type mockQuestionAPI struct {
	mu        sync.Mutex
	results   []domain.Question
	searchErr error
	queries   []string
	question  *domain.Question
	getErr    error
	created   []domain.Question
	updated   map[int64]domain.Question
	deleted   []int64
	votes     []domain.VoteDirection
}

func (m *mockQuestionAPI) Search(_ context.Context, query string) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockQuestionAPI) Get(_ context.Context, _, _ int64) (*domain.Question, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.question, nil
}

func (m *mockQuestionAPI) Mine(_ context.Context, _ int64) (*domain.Question, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.question, nil
}

func (m *mockQuestionAPI) ByUser(_ context.Context, _ int64) ([]domain.Question, error) {
	return m.results, m.searchErr
}

func (m *mockQuestionAPI) Create(_ context.Context, q domain.Question) error {
	m.created = append(m.created, q)
	return nil
}

func (m *mockQuestionAPI) Update(_ context.Context, id int64, q domain.Question) (*domain.Question, error) {
	if m.updated == nil {
		m.updated = make(map[int64]domain.Question)
	}
	m.updated[id] = q
	q.ID = id
	return &q, nil
}

func (m *mockQuestionAPI) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockQuestionAPI) Vote(_ context.Context, _ int64, dir domain.VoteDirection) error {
	m.votes = append(m.votes, dir)
	return nil
}

// mockAnswerAPI implements driven.AnswerAPI for testing.
type mockAnswerAPI struct {
	answers  []domain.Answer
	listErr  error
	created  []domain.Answer
	updated  []domain.Answer
	deleted  []int64
	accepted []int64
	votes    []domain.VoteDirection
}

func (m *mockAnswerAPI) List(_ context.Context, _ int64) ([]domain.Answer, error) {
	return m.answers, m.listErr
}

func (m *mockAnswerAPI) Create(_ context.Context, _ int64, a domain.Answer) error {
	m.created = append(m.created, a)
	return nil
}

func (m *mockAnswerAPI) Update(_ context.Context, _ int64, a domain.Answer) error {
	m.updated = append(m.updated, a)
	return nil
}

func (m *mockAnswerAPI) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockAnswerAPI) Accept(_ context.Context, id int64) error {
	m.accepted = append(m.accepted, id)
	return nil
}

func (m *mockAnswerAPI) Vote(_ context.Context, _ int64, dir domain.VoteDirection) error {
	m.votes = append(m.votes, dir)
	return nil
}

// mockTagAPI implements driven.TagAPI for testing.
type mockTagAPI struct {
	tags    []domain.Tag
	err     error
	queries []string
}

func (m *mockTagAPI) Search(_ context.Context, query string) ([]domain.Tag, error) {
	m.queries = append(m.queries, query)
	return m.tags, m.err
}

func (m *mockTagAPI) Popular(_ context.Context) ([]domain.Tag, error) {
	return m.tags, m.err
}

// signedIn returns a session service that is already signed in.
func signedIn(t *testing.T) *SessionService {
	t.Helper()
	s := NewSessionService(&mockUserAPI{}, nil)
	s.replace(domain.Session{User: domain.User{ID: 1, Email: "ada@example.com"}, Token: "app-token"})
	return s
}
