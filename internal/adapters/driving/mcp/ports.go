package mcp

import (
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ports is what the server needs from the core. Only Questions is required.
// The answer and tag tools are registered only when their port is set, and
// the session resource reads as signed out without Session.
type Ports struct {
	Questions driving.QuestionService
	Answers   driving.AnswerService
	Tags      driving.TagService
	Session   driving.SessionService
}

// Validate reports ErrMissingQuestionService when Questions is nil.
func (p *Ports) Validate() error {
	if p.Questions == nil {
		return ErrMissingQuestionService
	}
	return nil
}
