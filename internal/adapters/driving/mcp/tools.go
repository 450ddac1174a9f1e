package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// SearchQuestionsInput is the input schema for search_questions.
type SearchQuestionsInput struct {
	Query string `json:"query" jsonschema:"free text, optionally with [tag] filters such as [golang] channels"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// QuestionSummary is one question in search output.
type QuestionSummary struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	Title     string   `json:"title"`
	CreatedBy string   `json:"created_by,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Votes     int      `json:"votes"`
	Bounty    int      `json:"bounty,omitempty"`
	Answered  bool     `json:"answered"`
	Tags      []string `json:"tags,omitempty"`
}

// SearchQuestionsOutput is the output schema for search_questions.
type SearchQuestionsOutput struct {
	Results []QuestionSummary `json:"results"`
	Count   int               `json:"count"`
}

// GetQuestionInput is the input schema for get_question.
type GetQuestionInput struct {
	UserID     int64 `json:"user_id" jsonschema:"id of the user who asked the question"`
	QuestionID int64 `json:"question_id" jsonschema:"id of the question"`
}

// AnswerOutput is one answer.
type AnswerOutput struct {
	ID        int64  `json:"id"`
	Answer    string `json:"answer"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Votes     int    `json:"votes"`
	Accepted  bool   `json:"accepted"`
}

// GetQuestionOutput is the output schema for get_question.
type GetQuestionOutput struct {
	QuestionSummary
	Question string         `json:"question"`
	Answers  []AnswerOutput `json:"answers"`
}

// ListAnswersInput is the input schema for list_answers.
type ListAnswersInput struct {
	QuestionID int64 `json:"question_id" jsonschema:"id of the question"`
}

// ListAnswersOutput is the output schema for list_answers.
type ListAnswersOutput struct {
	Answers []AnswerOutput `json:"answers"`
	Count   int            `json:"count"`
}

// SearchTagsInput is the input schema for search_tags.
type SearchTagsInput struct {
	Query string `json:"query" jsonschema:"tag label prefix"`
}

// PopularTagsInput is the input schema for popular_tags.
type PopularTagsInput struct{}

// TagOutput is one tag.
type TagOutput struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// TagsOutput is the output schema for the tag tools.
type TagsOutput struct {
	Tags  []TagOutput `json:"tags"`
	Count int         `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
// Tools whose port is missing are left out.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_questions",
		Description: "Search Rocket Fuel questions by text and [tag] filters",
	}, s.handleSearchQuestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_question",
		Description: "Get a question together with its answers",
	}, s.handleGetQuestion)

	if s.ports.Answers != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_answers",
			Description: "List the answers to a question",
		}, s.handleListAnswers)
	}

	if s.ports.Tags != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_tags",
			Description: "Search tags by label",
		}, s.handleSearchTags)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "popular_tags",
			Description: "List the most used tags",
		}, s.handlePopularTags)
	}
}

func (s *Server) handleSearchQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchQuestionsInput,
) (*mcp.CallToolResult, SearchQuestionsOutput, error) {
	if domain.NormalizeQuery(input.Query) == "" {
		return nil, SearchQuestionsOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	questions, err := s.ports.Questions.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchQuestionsOutput{}, err
	}

	output := SearchQuestionsOutput{
		Results: make([]QuestionSummary, len(questions)),
		Count:   len(questions),
	}
	for i := range questions {
		output.Results[i] = summarize(questions[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetQuestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetQuestionInput,
) (*mcp.CallToolResult, GetQuestionOutput, error) {
	if input.UserID <= 0 || input.QuestionID <= 0 {
		return nil, GetQuestionOutput{}, fmt.Errorf("%w: user_id and question_id are required", domain.ErrInvalidInput)
	}

	thread, err := s.ports.Questions.Thread(ctx, input.UserID, input.QuestionID)
	if err != nil {
		return nil, GetQuestionOutput{}, err
	}

	return nil, GetQuestionOutput{
		QuestionSummary: summarize(thread.Question),
		Question:        thread.Question.Question,
		Answers:         answersOutput(thread.Answers),
	}, nil
}

func (s *Server) handleListAnswers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListAnswersInput,
) (*mcp.CallToolResult, ListAnswersOutput, error) {
	if s.ports.Answers == nil {
		return nil, ListAnswersOutput{}, ErrServiceUnavailable
	}
	if input.QuestionID <= 0 {
		return nil, ListAnswersOutput{}, fmt.Errorf("%w: question_id is required", domain.ErrInvalidInput)
	}

	answers, err := s.ports.Answers.List(ctx, input.QuestionID)
	if err != nil {
		return nil, ListAnswersOutput{}, err
	}
	return nil, ListAnswersOutput{Answers: answersOutput(answers), Count: len(answers)}, nil
}

func (s *Server) handleSearchTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchTagsInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	if s.ports.Tags == nil {
		return nil, TagsOutput{}, ErrServiceUnavailable
	}
	tags, err := s.ports.Tags.Search(ctx, input.Query)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, tagsOutput(tags), nil
}

func (s *Server) handlePopularTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ PopularTagsInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	if s.ports.Tags == nil {
		return nil, TagsOutput{}, ErrServiceUnavailable
	}
	tags, err := s.ports.Tags.Popular(ctx)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, tagsOutput(tags), nil
}

func summarize(q domain.Question) QuestionSummary {
	return QuestionSummary{
		ID:        q.ID,
		UserID:    q.UserID,
		Title:     q.Title,
		CreatedBy: q.CreatedBy,
		CreatedAt: q.CreatedAt,
		Votes:     q.Votes,
		Bounty:    q.Bounty,
		Answered:  q.AnswerAccepted,
		Tags:      q.TagLabels(),
	}
}

func answersOutput(answers []domain.Answer) []AnswerOutput {
	out := make([]AnswerOutput, len(answers))
	for i, a := range answers {
		out[i] = AnswerOutput{
			ID:        a.ID,
			Answer:    a.Answer,
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
			Votes:     a.Votes,
			Accepted:  a.Accepted,
		}
	}
	return out
}

func tagsOutput(tags []domain.Tag) TagsOutput {
	out := TagsOutput{Tags: make([]TagOutput, len(tags)), Count: len(tags)}
	for i, t := range tags {
		out.Tags[i] = TagOutput{ID: t.ID, Label: t.Label}
	}
	return out
}
