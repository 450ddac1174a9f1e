package rocketfuel

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
)

// Ensure TagAPI implements the interface.
var _ driven.TagAPI = (*TagAPI)(nil)

// TagAPI wraps the tag endpoints.
type TagAPI struct {
	client Requester
}

// NewTagAPI creates a tag API over client.
func NewTagAPI(client Requester) *TagAPI {
	return &TagAPI{client: client}
}

// Search returns tags matching query.
func (a *TagAPI) Search(ctx context.Context, query string) ([]domain.Tag, error) {
	var out []domain.Tag
	opts := apiclient.RequestOptions{URL: withQuery(path("api", "tags"), url.Values{"search": {query}})}
	if err := a.client.Do(ctx, opts, &out); err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	return out, nil
}

// Popular returns the most used tags.
func (a *TagAPI) Popular(ctx context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	if err := a.client.Do(ctx, apiclient.RequestOptions{URL: path("api", "tags", "popular")}, &out); err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}
	return out, nil
}
