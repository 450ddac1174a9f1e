package services

import (
	"context"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// QuestionSearcher feeds question search results to a SearchController.
// A limit of 0 returns everything the server returns. A nil service fails
// every search with domain.ErrSearchUnavailable.
func QuestionSearcher(questions driving.QuestionService, limit int) Searcher {
	return SearcherFunc(func(ctx context.Context, query string) ([]domain.SearchResult, error) {
		if questions == nil {
			return nil, domain.ErrSearchUnavailable
		}
		found, err := questions.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		results := make([]domain.SearchResult, 0, len(found))
		for _, q := range found {
			results = append(results, domain.QuestionResult(q))
		}
		return results, nil
	})
}

// QuickSearcher is the header quick search: a handful of questions.
// A limit of 0 or less uses domain.QuickSearchLimit.
func QuickSearcher(questions driving.QuestionService, limit int) Searcher {
	if limit <= 0 {
		limit = domain.QuickSearchLimit
	}
	return QuestionSearcher(questions, limit)
}

// TagSearcher feeds tag search results to a SearchController.
func TagSearcher(tags driving.TagService) Searcher {
	return SearcherFunc(func(ctx context.Context, query string) ([]domain.SearchResult, error) {
		if tags == nil {
			return nil, domain.ErrSearchUnavailable
		}
		found, err := tags.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		results := make([]domain.SearchResult, 0, len(found))
		for _, t := range found {
			results = append(results, domain.TagResult(t))
		}
		return results, nil
	})
}
