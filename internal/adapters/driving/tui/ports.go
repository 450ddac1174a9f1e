// Package tui provides an interactive terminal user interface for rocketfuel.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session provides the signed-in user. Optional.
	Session driving.SessionService

	// Questions loads threads and votes on questions.
	Questions driving.QuestionService

	// Answers posts, accepts and votes on answers.
	Answers driving.AnswerService

	// Tags lists popular tags. Optional.
	Tags driving.TagService

	// History offers recent searches. Optional.
	History driving.HistoryService

	// Settings reloads search settings when the config file changes. Optional.
	Settings driving.SettingsService

	// QuickSearch is the short search-as-you-type field.
	QuickSearch driving.IncrementalSearch

	// QuestionSearch is the full question search field.
	QuestionSearch driving.IncrementalSearch

	// TagSearch is the tag search field.
	TagSearch driving.IncrementalSearch
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Questions == nil {
		return ErrMissingQuestionService
	}
	if p.Answers == nil {
		return ErrMissingAnswerService
	}
	if p.QuickSearch == nil || p.QuestionSearch == nil || p.TagSearch == nil {
		return ErrMissingSearchField
	}
	return nil
}
