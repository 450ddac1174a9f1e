package driving

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// QuestionService provides question operations to external actors.
type QuestionService interface {
	// Search returns up to limit questions matching query. A limit of 0 means no limit.
	Search(ctx context.Context, query string, limit int) ([]domain.Question, error)

	// Get returns one of a user's questions.
	Get(ctx context.Context, userID, questionID int64) (*domain.Question, error)

	// Mine returns one of the signed-in user's questions.
	Mine(ctx context.Context, questionID int64) (*domain.Question, error)

	// Thread returns a question and its answers.
	Thread(ctx context.Context, userID, questionID int64) (*domain.Thread, error)

	// ByUser lists a user's questions.
	ByUser(ctx context.Context, userID int64) ([]domain.Question, error)

	// Create posts a new question.
	Create(ctx context.Context, draft domain.QuestionDraft) error

	// Update edits one of the signed-in user's questions.
	Update(ctx context.Context, questionID int64, draft domain.QuestionDraft) (*domain.Question, error)

	// Delete removes one of the signed-in user's questions.
	Delete(ctx context.Context, questionID int64) error

	// Vote casts a vote on a question.
	Vote(ctx context.Context, questionID int64, dir domain.VoteDirection) error
}

// AnswerService provides answer operations to external actors.
type AnswerService interface {
	// List returns the answers to a question.
	List(ctx context.Context, questionID int64) ([]domain.Answer, error)

	// Create posts an answer to a question.
	Create(ctx context.Context, questionID int64, draft domain.AnswerDraft) error

	// Update edits one of the signed-in user's answers.
	Update(ctx context.Context, answerID int64, draft domain.AnswerDraft) error

	// Delete removes one of the signed-in user's answers.
	Delete(ctx context.Context, answerID int64) error

	// Accept marks an answer as accepted.
	Accept(ctx context.Context, answerID int64) error

	// Vote casts a vote on an answer.
	Vote(ctx context.Context, answerID int64, dir domain.VoteDirection) error
}

// TagService provides tag lookups.
type TagService interface {
	// Search returns tags matching query.
	Search(ctx context.Context, query string) ([]domain.Tag, error)

	// Popular returns the most used tags.
	Popular(ctx context.Context) ([]domain.Tag, error)
}

// UserService provides user lookups.
type UserService interface {
	// Get returns a user by ID.
	Get(ctx context.Context, userID int64) (*domain.User, error)

	// ByEmail returns a user by email.
	ByEmail(ctx context.Context, email string) (*domain.User, error)

	// Me returns the signed-in user.
	Me(ctx context.Context) (*domain.User, error)
}

// HistoryService exposes recorded searches.
type HistoryService interface {
	// Recent returns up to limit distinct recent queries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error)

	// Clear removes all history.
	Clear(ctx context.Context) error
}
