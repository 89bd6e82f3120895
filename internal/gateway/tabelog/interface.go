package tabelog

import (
	"context"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

// Page is the parsed result of one search-results page: the listings the
// markup yielded plus the pagination metadata the page advertised.
type Page struct {
	Listings []domain.Listing
	Meta     domain.ResponseMeta
}

// API describes the upstream operations the engine and CLI consume.
type API interface {
	// SearchPage fetches and parses a single results page for the query.
	// Markup drift inside individual records never fails the call; only
	// transport-level faults return an error.
	SearchPage(ctx context.Context, query domain.Query) (*Page, error)
	// Suggest queries the site's autocomplete endpoint. An empty or
	// malformed body yields an empty slice, not an error.
	Suggest(ctx context.Context, mode domain.SuggestMode, text string) ([]domain.Suggestion, error)
}
