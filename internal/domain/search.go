package domain

// SearchStatus tags the overall outcome of one multi-page search.
type SearchStatus string

const (
	StatusSuccess   SearchStatus = "success"
	StatusNoResults SearchStatus = "no_results"
	StatusError     SearchStatus = "error"
)

// ResponseMeta carries the pagination metadata advertised by the site.
// TotalCount comes from the page header and is best effort; the site
// sometimes omits or lies about it, so derived fields treat zero as unknown.
type ResponseMeta struct {
	TotalCount     int  `json:"total_count" yaml:"total_count"`
	CurrentPage    int  `json:"current_page" yaml:"current_page"`
	ResultsPerPage int  `json:"results_per_page" yaml:"results_per_page"`
	TotalPages     int  `json:"total_pages" yaml:"total_pages"`
	HasNextPage    bool `json:"has_next_page" yaml:"has_next_page"`
	HasPrevPage    bool `json:"has_prev_page" yaml:"has_prev_page"`
	PagesFetched   int  `json:"pages_fetched" yaml:"pages_fetched"`
}

// Response is the aggregated outcome of one search invocation. It is built
// once by the orchestrator and never mutated after return. Listings are in
// ascending page order regardless of fetch order.
type Response struct {
	Status       SearchStatus  `json:"status" yaml:"status"`
	Listings     []Listing     `json:"listings" yaml:"listings"`
	Meta         *ResponseMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Suggestion is one candidate from the site's autocomplete endpoint.
type Suggestion struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// SuggestMode selects which autocomplete index the suggest endpoint queries.
type SuggestMode string

const (
	SuggestArea    SuggestMode = "area"
	SuggestKeyword SuggestMode = "keyword"
)
