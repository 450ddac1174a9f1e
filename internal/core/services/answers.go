package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService provides answer operations.
type AnswerService struct {
	answers driven.AnswerAPI
	session driving.SessionService
}

// NewAnswerService creates an answer service.
func NewAnswerService(answers driven.AnswerAPI) *AnswerService {
	return &AnswerService{answers: answers}
}

// SetSession makes write operations require a signed-in session.
func (s *AnswerService) SetSession(session driving.SessionService) {
	s.session = session
}

// List returns the answers to a question.
func (s *AnswerService) List(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	answers, err := s.answers.List(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []domain.Answer{}
	}
	return answers, nil
}

// Create posts an answer to a question.
func (s *AnswerService) Create(ctx context.Context, questionID int64, draft domain.AnswerDraft) error {
	if err := requireSignedIn(s.session); err != nil {
		return err
	}
	draft.Answer = strings.TrimSpace(draft.Answer)
	if err := validateDraft(draft); err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	return s.answers.Create(ctx, questionID, domain.Answer{Answer: draft.Answer, QuestionID: questionID})
}

// Update edits one of the signed-in user's answers.
func (s *AnswerService) Update(ctx context.Context, answerID int64, draft domain.AnswerDraft) error {
	if err := requireSignedIn(s.session); err != nil {
		return err
	}
	draft.Answer = strings.TrimSpace(draft.Answer)
	if err := validateDraft(draft); err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	return s.answers.Update(ctx, answerID, domain.Answer{Answer: draft.Answer})
}

// Delete removes one of the signed-in user's answers.
func (s *AnswerService) Delete(ctx context.Context, answerID int64) error {
	if err := requireSignedIn(s.session); err != nil {
		return err
	}
	return s.answers.Delete(ctx, answerID)
}

// Accept marks an answer as accepted.
func (s *AnswerService) Accept(ctx context.Context, answerID int64) error {
	if err := requireSignedIn(s.session); err != nil {
		return err
	}
	return s.answers.Accept(ctx, answerID)
}

// Vote casts a vote on an answer.
func (s *AnswerService) Vote(ctx context.Context, answerID int64, dir domain.VoteDirection) error {
	if err := requireSignedIn(s.session); err != nil {
		return err
	}
	return s.answers.Vote(ctx, answerID, dir)
}
