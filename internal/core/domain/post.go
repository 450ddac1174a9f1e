package domain

import (
	"regexp"
	"strings"
)

// Post holds the fields shared by questions and answers.
type Post struct {
	ID        int64  `json:"id" yaml:"id"`
	CreatedBy string `json:"createdBy" yaml:"created_by"`
	UserID    int64  `json:"userId" yaml:"user_id"`
	Picture   string `json:"picture,omitempty" yaml:"picture,omitempty"`
	CreatedAt string `json:"createdAt" yaml:"created_at"`
	Votes     int    `json:"votes" yaml:"votes"`
	SlackID   string `json:"slackId,omitempty" yaml:"slack_id,omitempty"`
}

// Question is a post asking for help, optionally carrying a coin bounty.
type Question struct {
	Post           `yaml:",inline"`
	Title          string `json:"title" yaml:"title"`
	Question       string `json:"question" yaml:"question"`
	Bounty         int    `json:"bounty" yaml:"bounty"`
	AnswerAccepted bool   `json:"answerAccepted" yaml:"answer_accepted"`
	SlackThreadID  string `json:"slackThreadId,omitempty" yaml:"slack_thread_id,omitempty"`
	Tags           []Tag  `json:"tags" yaml:"tags"`
}

// TagLabels returns the labels of the question's tags in order.
func (q Question) TagLabels() []string {
	labels := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		labels = append(labels, t.Label)
	}
	return labels
}

// Answer is a reply to a question.
type Answer struct {
	Post       `yaml:",inline"`
	Answer     string `json:"answer" yaml:"answer"`
	AcceptedAt string `json:"acceptedAt,omitempty" yaml:"accepted_at,omitempty"`
	QuestionID int64  `json:"questionId" yaml:"question_id"`
	Accepted   bool   `json:"accepted" yaml:"accepted"`
}

// Thread is a question together with its answers.
type Thread struct {
	Question Question `json:"question" yaml:"question"`
	Answers  []Answer `json:"answers" yaml:"answers"`
}

// QuestionDraft is the user-editable part of a question.
type QuestionDraft struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Question string   `json:"question" validate:"required"`
	Bounty   int      `json:"bounty" validate:"gte=0"`
	Tags     []string `json:"-" validate:"max=10,dive,taglabel"`
}

// AnswerDraft is the user-editable part of an answer.
type AnswerDraft struct {
	Answer string `json:"answer" validate:"required"`
}

// Tag labels a question.
type Tag struct {
	ID    int64  `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

var tagLabelPattern = regexp.MustCompile(`^[a-z0-9_\-]+$`)

// ValidTagLabel reports whether label is a well-formed tag label.
func ValidTagLabel(label string) bool {
	return tagLabelPattern.MatchString(label)
}

// NormalizeTagLabel lowercases and trims a tag label.
func NormalizeTagLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// VoteDirection is an up or down vote.
type VoteDirection string

// Vote directions.
const (
	VoteUp   VoteDirection = "upvote"
	VoteDown VoteDirection = "downvote"
)

// IsValid returns true if the direction is recognised.
func (d VoteDirection) IsValid() bool {
	return d == VoteUp || d == VoteDown
}
