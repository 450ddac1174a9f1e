package domain

import (
	"context"
	"strings"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a search is issued.
const DefaultDebounce = 700 * time.Millisecond

// QuickSearchLimit is how many results the quick search shows before offering more.
const QuickSearchLimit = 3

type explicitSearchKey struct{}

// WithExplicitSearch marks ctx as carrying a search the user asked for
// outright, with Enter or a CLI command. Searches fired by a pause in typing
// run without the mark and are not kept in history.
func WithExplicitSearch(ctx context.Context) context.Context {
	return context.WithValue(ctx, explicitSearchKey{}, true)
}

// IsExplicitSearch reports whether ctx came from WithExplicitSearch.
func IsExplicitSearch(ctx context.Context) bool {
	explicit, _ := ctx.Value(explicitSearchKey{}).(bool)
	return explicit
}

// NormalizeQuery trims and case-folds raw search input.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SearchPhase is the state of an incremental search field.
type SearchPhase string

// Search phases.
const (
	// SearchPhaseIdle means the query is empty and nothing is pending.
	SearchPhaseIdle SearchPhase = "idle"

	// SearchPhasePendingDebounce means a timer is armed for the current query.
	SearchPhasePendingDebounce SearchPhase = "pending"

	// SearchPhaseLoading means a request for the current query is in flight.
	SearchPhaseLoading SearchPhase = "loading"

	// SearchPhaseReady means the latest request has completed.
	SearchPhaseReady SearchPhase = "ready"
)

// String returns the string representation.
func (p SearchPhase) String() string {
	return string(p)
}

// SearchState is a snapshot of an incremental search field.
type SearchState struct {
	// QueryText is the raw input as typed.
	QueryText string

	// NormalizedQuery is QueryText trimmed and case-folded.
	NormalizedQuery string

	Phase SearchPhase

	// IsLoading is true only while a request for NormalizedQuery is in flight.
	IsLoading bool

	// Results come from the latest completed request for NormalizedQuery.
	Results []SearchResult

	// HasSearched is true once a request for NormalizedQuery has completed.
	HasSearched bool

	// Err is the failure of the latest completed request, if any.
	Err error

	// Seq is the tag of the most recently issued request.
	Seq uint64
}

// HasMore reports whether the results filled the given page limit.
func (s SearchState) HasMore(limit int) bool {
	return limit > 0 && len(s.Results) >= limit
}

// ResultKind identifies what a search result points at.
type ResultKind string

// Result kinds.
const (
	ResultKindQuestion ResultKind = "question"
	ResultKindTag      ResultKind = "tag"
	ResultKindAnswer   ResultKind = "answer"
)

// SearchResult is a single row of an incremental search.
type SearchResult struct {
	Kind      ResultKind `json:"kind" yaml:"kind"`
	ID        int64      `json:"id" yaml:"id"`
	UserID    int64      `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Title     string     `json:"title" yaml:"title"`
	CreatedBy string     `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	Votes     int        `json:"votes" yaml:"votes"`
	Bounty    int        `json:"bounty,omitempty" yaml:"bounty,omitempty"`
	Answered  bool       `json:"answered" yaml:"answered"`
	Tags      []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// QuestionResult converts a question into a search result.
func QuestionResult(q Question) SearchResult {
	return SearchResult{
		Kind:      ResultKindQuestion,
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

// TagResult converts a tag into a search result.
func TagResult(t Tag) SearchResult {
	return SearchResult{
		Kind:  ResultKindTag,
		ID:    t.ID,
		Title: t.Label,
	}
}

// SearchQuery is a parsed search string.
type SearchQuery struct {
	// Content is the free text with tag tokens removed.
	Content string

	// Tags are the labels written as [label].
	Tags []string
}

// ParseSearchQuery splits raw input into free text and [label] tag filters.
// Malformed bracket tokens are kept as text.
func ParseSearchQuery(raw string) SearchQuery {
	var (
		content []string
		tags    []string
	)
	for _, field := range strings.Fields(raw) {
		if len(field) > 2 && strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]") {
			label := field[1 : len(field)-1]
			if ValidTagLabel(label) {
				tags = append(tags, label)
				continue
			}
		}
		content = append(content, field)
	}
	return SearchQuery{Content: strings.Join(content, " "), Tags: tags}
}

// String renders the query back to input form, tags first.
func (q SearchQuery) String() string {
	parts := make([]string, 0, len(q.Tags)+1)
	for _, t := range q.Tags {
		parts = append(parts, "["+t+"]")
	}
	if q.Content != "" {
		parts = append(parts, q.Content)
	}
	return strings.Join(parts, " ")
}

// MaxSearchHistory is how many history entries a store keeps. Older
// entries are dropped as new ones are added.
const MaxSearchHistory = 500

// SearchHistoryEntry records a completed question search.
type SearchHistoryEntry struct {
	ID          int64     `json:"id" yaml:"id"`
	Query       string    `json:"query" yaml:"query"`
	ResultCount int       `json:"resultCount" yaml:"result_count"`
	SearchedAt  time.Time `json:"searchedAt" yaml:"searched_at"`
}
