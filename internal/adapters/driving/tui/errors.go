package tui

import "errors"

// Ports validation errors.
var (
	ErrInvalidPorts           = errors.New("tui: invalid ports configuration")
	ErrMissingQuestionService = errors.New("tui: question service is required")
	ErrMissingAnswerService   = errors.New("tui: answer service is required")

	// ErrMissingSearchField covers the quick, question and tag fields alike.
	ErrMissingSearchField = errors.New("tui: quick, question and tag search fields are required")
)
