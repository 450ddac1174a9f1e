package rocketfuel

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/apiclient"
)

// Requester performs an API call. *apiclient.Client implements it.
type Requester interface {
	Do(ctx context.Context, opts apiclient.RequestOptions, out any) error
}

var _ Requester = (*apiclient.Client)(nil)

// path joins escaped segments into an API path.
func path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func withQuery(p string, params url.Values) string {
	if len(params) == 0 {
		return p
	}
	return p + "?" + params.Encode()
}
