package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mekedron/tabelog-cli/internal/domain"
	"github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
)

const defaultMaxPages = 1

// PageFetcher is the slice of the gateway the orchestrator needs.
type PageFetcher interface {
	SearchPage(ctx context.Context, query domain.Query) (*tabelog.Page, error)
}

// Request is one multi-page search. MaxPages caps how many consecutive
// result pages get fetched starting at the query's page; zero means one.
type Request struct {
	Query       domain.Query
	MaxPages    int
	IncludeMeta bool
}

// Orchestrator walks search result pages and aggregates them into a single
// response envelope. Faults never escape as errors: a failure before any
// records were collected yields an error response, a failure after that
// truncates the result set at the last good page.
type Orchestrator struct {
	fetcher PageFetcher
}

func NewOrchestrator(fetcher PageFetcher) *Orchestrator {
	return &Orchestrator{fetcher: fetcher}
}

// Do fetches pages one at a time, stopping at the page cap, at the first
// short or empty page, or when the advertised page count runs out. An
// unknown total keeps the walk going until a page comes back empty.
func (o *Orchestrator) Do(ctx context.Context, req Request) domain.Response {
	query, maxPages, errResponse := o.prepare(req)
	if errResponse != nil {
		return *errResponse
	}

	var listings []domain.Listing
	var meta *domain.ResponseMeta
	pagesFetched := 0

	for offset := 0; offset < maxPages; offset++ {
		pageQuery, err := query.WithPage(query.Page + offset)
		if err != nil {
			return errorResponse(err)
		}

		page, err := o.fetcher.SearchPage(ctx, pageQuery)
		if err != nil {
			if pagesFetched == 0 {
				return errorResponse(err)
			}
			break
		}

		if offset == 0 {
			pageMeta := page.Meta
			meta = &pageMeta
			if len(page.Listings) == 0 {
				return finalize(req, domain.StatusNoResults, nil, meta, 1)
			}
		} else if len(page.Listings) == 0 {
			break
		}

		listings = append(listings, page.Listings...)
		pagesFetched++

		if !hasMorePages(page.Meta, pageQuery.Page) {
			break
		}
	}

	return finalize(req, domain.StatusSuccess, listings, meta, pagesFetched)
}

// DoConcurrent behaves like Do but fetches the pages after the first one
// with a bounded worker pool. Results stay in ascending page order, and a
// failed or empty page discards everything after it so the aggregate never
// has gaps.
func (o *Orchestrator) DoConcurrent(ctx context.Context, req Request, workers int) domain.Response {
	if workers <= 1 || req.MaxPages <= 1 {
		return o.Do(ctx, req)
	}
	query, maxPages, errResponse := o.prepare(req)
	if errResponse != nil {
		return *errResponse
	}

	firstQuery, err := query.WithPage(query.Page)
	if err != nil {
		return errorResponse(err)
	}
	first, err := o.fetcher.SearchPage(ctx, firstQuery)
	if err != nil {
		return errorResponse(err)
	}
	firstMeta := first.Meta
	meta := &firstMeta
	if len(first.Listings) == 0 {
		return finalize(req, domain.StatusNoResults, nil, meta, 1)
	}

	remaining := maxPages - 1
	if firstMeta.TotalPages > 0 {
		if available := firstMeta.TotalPages - firstQuery.Page; available < remaining {
			remaining = available
		}
	}
	if remaining <= 0 {
		return finalize(req, domain.StatusSuccess, first.Listings, meta, 1)
	}

	type pageResult struct {
		listings []domain.Listing
		err      error
	}
	results := make([]pageResult, remaining)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < remaining; i++ {
		i := i
		group.Go(func() error {
			pageQuery, err := query.WithPage(firstQuery.Page + 1 + i)
			if err != nil {
				results[i] = pageResult{err: err}
				return nil
			}
			page, err := o.fetcher.SearchPage(groupCtx, pageQuery)
			if err != nil {
				results[i] = pageResult{err: err}
				return nil
			}
			results[i] = pageResult{listings: page.Listings}
			return nil
		})
	}
	_ = group.Wait()

	listings := first.Listings
	pagesFetched := 1
	for _, result := range results {
		if result.err != nil || len(result.listings) == 0 {
			break
		}
		listings = append(listings, result.listings...)
		pagesFetched++
	}

	return finalize(req, domain.StatusSuccess, listings, meta, pagesFetched)
}

func (o *Orchestrator) prepare(req Request) (domain.Query, int, *domain.Response) {
	query, err := domain.NewQuery(req.Query)
	if err != nil {
		response := errorResponse(err)
		return domain.Query{}, 0, &response
	}
	maxPages := req.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return query, maxPages, nil
}

func hasMorePages(meta domain.ResponseMeta, page int) bool {
	if meta.TotalPages == 0 {
		// Unknown total, keep walking until a page comes back empty.
		return true
	}
	return page < meta.TotalPages
}

func errorResponse(err error) domain.Response {
	return domain.Response{
		Status:       domain.StatusError,
		Listings:     []domain.Listing{},
		ErrorMessage: err.Error(),
	}
}

func finalize(req Request, status domain.SearchStatus, listings []domain.Listing, meta *domain.ResponseMeta, pagesFetched int) domain.Response {
	if listings == nil {
		listings = []domain.Listing{}
	}
	response := domain.Response{Status: status, Listings: listings}
	if req.IncludeMeta && meta != nil {
		finalMeta := *meta
		finalMeta.PagesFetched = pagesFetched
		response.Meta = &finalMeta
	}
	return response
}
