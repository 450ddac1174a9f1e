package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// Ensure QuestionService implements the interface.
var _ driving.QuestionService = (*QuestionService)(nil)

// QuestionService provides question lookups, search and authoring.
type QuestionService struct {
	questions driven.QuestionAPI
	answers   driven.AnswerAPI
	history   driven.SearchHistoryStore
	session   driving.SessionService
	clock     Clock
}

// NewQuestionService creates a question service.
func NewQuestionService(questions driven.QuestionAPI, answers driven.AnswerAPI) *QuestionService {
	return &QuestionService{
		questions: questions,
		answers:   answers,
		clock:     RealClock(),
	}
}

// SetHistoryStore enables recording of completed searches.
func (s *QuestionService) SetHistoryStore(store driven.SearchHistoryStore) {
	s.history = store
}

// SetSession makes write operations require a signed-in session.
func (s *QuestionService) SetSession(session driving.SessionService) {
	s.session = session
}

// Search returns up to limit questions matching query. Only searches whose
// context carries domain.WithExplicitSearch are recorded in history.
func (s *QuestionService) Search(ctx context.Context, query string, limit int) ([]domain.Question, error) {
	logger.Section("Question Search")
	logger.Debug("Query: %q, limit: %d", query, limit)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.Question{}, nil
	}

	results, err := s.questions.Search(ctx, query)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	if results == nil {
		results = []domain.Question{}
	}
	logger.Debug("Server returned %d questions", len(results))

	if domain.IsExplicitSearch(ctx) {
		s.record(ctx, query, len(results))
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *QuestionService) record(ctx context.Context, query string, count int) {
	if s.history == nil {
		return
	}
	entry := domain.SearchHistoryEntry{Query: query, ResultCount: count, SearchedAt: s.clock.Now()}
	if err := s.history.Add(ctx, entry); err != nil {
		logger.Warn("record search history: %v", err)
	}
}

// Get returns one of a user's questions.
func (s *QuestionService) Get(ctx context.Context, userID, questionID int64) (*domain.Question, error) {
	return s.questions.Get(ctx, userID, questionID)
}

// Mine returns one of the signed-in user's questions.
func (s *QuestionService) Mine(ctx context.Context, questionID int64) (*domain.Question, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.questions.Mine(ctx, questionID)
}

// Thread fetches a question and its answers concurrently.
func (s *QuestionService) Thread(ctx context.Context, userID, questionID int64) (*domain.Thread, error) {
	var (
		question *domain.Question
		answers  []domain.Answer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := s.questions.Get(gctx, userID, questionID)
		question = q
		return err
	})
	g.Go(func() error {
		a, err := s.answers.List(gctx, questionID)
		answers = a
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("thread %d: %w", questionID, err)
	}
	if answers == nil {
		answers = []domain.Answer{}
	}
	return &domain.Thread{Question: *question, Answers: answers}, nil
}

// ByUser lists a user's questions.
func (s *QuestionService) ByUser(ctx context.Context, userID int64) ([]domain.Question, error) {
	return s.questions.ByUser(ctx, userID)
}

// Create posts a new question.
func (s *QuestionService) Create(ctx context.Context, draft domain.QuestionDraft) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	draft = normalizeDraft(draft)
	if err := validateDraft(draft); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return s.questions.Create(ctx, questionFromDraft(draft))
}

// Update edits one of the signed-in user's questions.
func (s *QuestionService) Update(
	ctx context.Context, questionID int64, draft domain.QuestionDraft,
) (*domain.Question, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	draft = normalizeDraft(draft)
	if err := validateDraft(draft); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return s.questions.Update(ctx, questionID, questionFromDraft(draft))
}

// Delete removes one of the signed-in user's questions.
func (s *QuestionService) Delete(ctx context.Context, questionID int64) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.questions.Delete(ctx, questionID)
}

// Vote casts a vote on a question.
func (s *QuestionService) Vote(ctx context.Context, questionID int64, dir domain.VoteDirection) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.questions.Vote(ctx, questionID, dir)
}

func (s *QuestionService) requireSession() error {
	return requireSignedIn(s.session)
}

func requireSignedIn(session driving.SessionService) error {
	if session != nil && !session.Current().IsSignedIn() {
		return fmt.Errorf("%w: run 'rocketfuel login' first", domain.ErrAuthRequired)
	}
	return nil
}

func normalizeDraft(d domain.QuestionDraft) domain.QuestionDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Question = strings.TrimSpace(d.Question)
	tags := make([]string, 0, len(d.Tags))
	seen := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		t = domain.NormalizeTagLabel(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	d.Tags = tags
	return d
}

func questionFromDraft(d domain.QuestionDraft) domain.Question {
	tags := make([]domain.Tag, 0, len(d.Tags))
	for _, label := range d.Tags {
		tags = append(tags, domain.Tag{Label: label})
	}
	return domain.Question{
		Title:    d.Title,
		Question: d.Question,
		Bounty:   d.Bounty,
		Tags:     tags,
	}
}
