package driven

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// QuestionAPI is the server's question resource.
type QuestionAPI interface {
	// Search returns questions matching a search string.
	// The server interprets [label] tokens as tag filters.
	Search(ctx context.Context, query string) ([]domain.Question, error)

	// Get returns one of a user's questions.
	Get(ctx context.Context, userID, questionID int64) (*domain.Question, error)

	// Mine returns one of the signed-in user's questions.
	Mine(ctx context.Context, questionID int64) (*domain.Question, error)

	// ByUser lists a user's questions.
	ByUser(ctx context.Context, userID int64) ([]domain.Question, error)

	// Create posts a new question as the signed-in user.
	Create(ctx context.Context, q domain.Question) error

	// Update replaces a question owned by the signed-in user.
	Update(ctx context.Context, questionID int64, q domain.Question) (*domain.Question, error)

	// Delete removes a question owned by the signed-in user.
	Delete(ctx context.Context, questionID int64) error

	// Vote casts a vote on a question.
	Vote(ctx context.Context, questionID int64, dir domain.VoteDirection) error
}

// AnswerAPI is the server's answer resource.
type AnswerAPI interface {
	// List returns the answers to a question.
	List(ctx context.Context, questionID int64) ([]domain.Answer, error)

	// Create posts an answer to a question.
	Create(ctx context.Context, questionID int64, a domain.Answer) error

	// Update replaces an answer owned by the signed-in user.
	Update(ctx context.Context, answerID int64, a domain.Answer) error

	// Delete removes an answer owned by the signed-in user.
	Delete(ctx context.Context, answerID int64) error

	// Accept marks an answer as the accepted one.
	Accept(ctx context.Context, answerID int64) error

	// Vote casts a vote on an answer.
	Vote(ctx context.Context, answerID int64, dir domain.VoteDirection) error
}

// UserAPI is the server's user resource.
type UserAPI interface {
	// Authenticate exchanges an identity-provider token for an application token.
	// It never triggers re-authentication itself.
	Authenticate(ctx context.Context, idToken string) (string, error)

	// ByID returns a user by ID.
	ByID(ctx context.Context, userID int64) (*domain.User, error)

	// ByEmail returns a user by email address.
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TagAPI is the server's tag resource.
type TagAPI interface {
	// Search returns tags whose label matches the search string.
	Search(ctx context.Context, query string) ([]domain.Tag, error)

	// Popular returns the most used tags.
	Popular(ctx context.Context) ([]domain.Tag, error)
}
