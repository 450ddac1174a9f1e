package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   any
		wantErr string
	}{
		{"valid question", domain.QuestionDraft{Title: "t", Question: "q", Tags: []string{"go"}}, ""},
		{"valid answer", domain.AnswerDraft{Answer: "a"}, ""},
		{"title required", domain.QuestionDraft{Question: "q"}, "title is required"},
		{"title too long", domain.QuestionDraft{Title: strings.Repeat("x", 256), Question: "q"}, "title must be at most 255"},
		{"negative bounty", domain.QuestionDraft{Title: "t", Question: "q", Bounty: -3}, "bounty must be at least 0"},
		{"bad tag", domain.QuestionDraft{Title: "t", Question: "q", Tags: []string{"C#"}}, `tag "C#"`},
		{"too many tags", domain.QuestionDraft{
			Title: "t", Question: "q",
			Tags: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
		}, "tags must be at most 10"},
		{"answer required", domain.AnswerDraft{}, "answer is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDraft(tt.draft)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
