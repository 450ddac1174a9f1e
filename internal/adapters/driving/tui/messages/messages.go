// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// Field identifies one of the incremental search fields.
type Field int

const (
	// FieldQuick is the three-result quick search.
	FieldQuick Field = iota
	// FieldQuestions is the full question search.
	FieldQuestions
	// FieldTags is the tag search.
	FieldTags
)

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldQuick:
		return "quick"
	case FieldQuestions:
		return "questions"
	case FieldTags:
		return "tags"
	default:
		return "unknown"
	}
}

// SearchUpdated is sent after a search field's state changed.
// The receiver reads the new state from the field itself.
type SearchUpdated struct {
	Field Field
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the question search view.
	ViewSearch
	// ViewTags is the tag browser.
	ViewTags
	// ViewThread shows a question and its answers.
	ViewThread
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewTags:
		return "tags"
	case ViewThread:
		return "thread"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// QuestionSelected opens a question thread.
type QuestionSelected struct {
	UserID     int64
	QuestionID int64
}

// TagSelected searches questions carrying a tag.
type TagSelected struct {
	Label string
}

// ThreadLoaded carries a question and its answers.
type ThreadLoaded struct {
	Thread *domain.Thread
	Err    error
}

// ActionCompleted reports the outcome of a vote, accept or reply.
type ActionCompleted struct {
	Action string
	Err    error
}

// HistoryLoaded carries recent searches.
type HistoryLoaded struct {
	Entries []domain.SearchHistoryEntry
	Err     error
}

// PopularTagsLoaded carries the most used tags.
type PopularTagsLoaded struct {
	Tags []domain.Tag
	Err  error
}

// SessionChanged is sent when the user signs in or out, or the session is lost.
type SessionChanged struct {
	Session domain.Session
}

// SettingsReloaded is sent after the config file was edited.
type SettingsReloaded struct {
	Settings domain.AppSettings
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
