package rocketfuel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// Ensure AnswerAPI implements the interface.
var _ driven.AnswerAPI = (*AnswerAPI)(nil)

// AnswerAPI wraps the answer endpoints.
type AnswerAPI struct {
	client Requester
}

// NewAnswerAPI creates an answer API over client.
func NewAnswerAPI(client Requester) *AnswerAPI {
	return &AnswerAPI{client: client}
}

// List returns the answers to a question.
func (a *AnswerAPI) List(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	var out []domain.Answer
	opts := apiclient.RequestOptions{URL: path("api", "answers", "question", id(questionID))}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("list answers of question %d: %w", questionID, err)
	}
	return out, nil
}

// Create posts an answer to a question.
func (a *AnswerAPI) Create(ctx context.Context, questionID int64, ans domain.Answer) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "answers", "question", id(questionID)),
		Method: http.MethodPost,
		Body:   ans,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("answer question %d: %w", questionID, err)
	}
	return nil
}

// Update replaces one of the signed-in user's answers.
func (a *AnswerAPI) Update(ctx context.Context, answerID int64, ans domain.Answer) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "answers", id(answerID)),
		Method: http.MethodPut,
		Body:   ans,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("update answer %d: %w", answerID, err)
	}
	return nil
}

// Delete removes one of the signed-in user's answers.
func (a *AnswerAPI) Delete(ctx context.Context, answerID int64) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "answers", id(answerID)),
		Method: http.MethodDelete,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("delete answer %d: %w", answerID, err)
	}
	return nil
}

// Accept marks an answer as accepted.
func (a *AnswerAPI) Accept(ctx context.Context, answerID int64) error {
	opts := apiclient.RequestOptions{
		URL:    path("api", "answers", "accept", id(answerID)),
		Method: http.MethodPatch,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("accept answer %d: %w", answerID, err)
	}
	return nil
}

// Vote casts a vote on an answer.
func (a *AnswerAPI) Vote(ctx context.Context, answerID int64, dir domain.VoteDirection) error {
	if !dir.IsValid() {
		return fmt.Errorf("%w: vote direction %q", domain.ErrInvalidInput, dir)
	}
	opts := apiclient.RequestOptions{
		URL:    path("api", "users", "me", "answers", id(answerID), string(dir)),
		Method: http.MethodPost,
	}
	if err := a.client.Do(ctx, opts, nil); err != nil {
		return fmt.Errorf("%s answer %d: %w", dir, answerID, err)
	}
	return nil
}
