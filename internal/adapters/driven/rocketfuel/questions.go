package rocketfuel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// Ensure QuestionAPI implements the interface.
var _ driven.QuestionAPI = (*QuestionAPI)(nil)

// QuestionAPI wraps the question endpoints.
type QuestionAPI struct {
	client Requester
}

// NewQuestionAPI creates a question API over client.
func NewQuestionAPI(client Requester) *QuestionAPI {
	return &QuestionAPI{client: client}
}

// Search returns questions matching query.
func (a *QuestionAPI) Search(ctx context.Context, query string) ([]domain.Question, error) {
	var out []domain.Question
	opts := apiclient.RequestOptions{
		URL: withQuery(path("api", "questions"), url.Values{"search": {query}}),
	}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return out, nil
}

// Get returns one of a user's questions.
func (a *QuestionAPI) Get(ctx context.Context, userID, questionID int64) (*domain.Question, error) {
	var out domain.Question
	opts := apiclient.RequestOptions{URL: path("api", "users", id(userID), "questions", id(questionID))}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("get question %d: %w", questionID, err)
	}
	return &out, nil
}

// Mine returns one of the signed-in user's questions.
func (a *QuestionAPI) Mine(ctx context.Context, questionID int64) (*domain.Question, error) {
	var out domain.Question
	opts := apiclient.RequestOptions{URL: path("api", "users", "me", "questions", id(questionID))}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("get question %d: %w", questionID, err)
	}
	return &out, nil
}

// ByUser lists a user's questions.
func (a *QuestionAPI) ByUser(ctx context.Context, userID int64) ([]domain.Question, error) {
	var out []domain.Question
	opts := apiclient.RequestOptions{URL: path("api", "users", id(userID), "questions")}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("list questions of user %d: %w", userID, err)
	}
	return out, nil
}

// Create posts a new question.
func (a *QuestionAPI) Create(ctx context.Context, q domain.Question) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "questions"),
		Method: http.MethodPost,
		Body:   q,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// Update replaces one of the signed-in user's questions.
func (a *QuestionAPI) Update(ctx context.Context, questionID int64, q domain.Question) (*domain.Question, error) {
	var out domain.Question
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "questions", id(questionID)),
		Method: http.MethodPut,
		Body:   q,
	}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("update question %d: %w", questionID, err)
	}
	return &out, nil
}

// Delete removes one of the signed-in user's questions.
func (a *QuestionAPI) Delete(ctx context.Context, questionID int64) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "questions", id(questionID)),
		Method: http.MethodDelete,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("delete question %d: %w", questionID, err)
	}
	return nil
}

// Vote casts a vote on a question.
func (a *QuestionAPI) Vote(ctx context.Context, questionID int64, dir domain.VoteDirection) error {
	if !dir.IsValid() {
		return fmt.Errorf("%w: vote direction %q", domain.ErrInvalidInput, dir)
	}
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "questions", id(questionID), string(dir)),
		Method: http.MethodPost,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("%s question %d: %w", dir, questionID, err)
	}
	return nil
}
