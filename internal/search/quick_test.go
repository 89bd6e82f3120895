package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mekedron/tabelog-cli/internal/domain"
	"github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
)

func TestQuickMemoizesNormalizedQueries(t *testing.T) {
	fetcher := &fakeFetcher{
		searchPage: func(_ context.Context, query domain.Query) (*tabelog.Page, error) {
			return resultPage(query.Page, 20), nil
		},
	}
	orchestrator := NewOrchestrator(fetcher)
	cache := NewCache()

	first := orchestrator.Quick(context.Background(), cache, domain.Query{Area: "Shibuya", Keyword: "yakiniku"})
	second := orchestrator.Quick(context.Background(), cache, domain.Query{Area: "  Shibuya ", Keyword: "yakiniku  "})

	if first.Status != domain.StatusSuccess || second.Status != domain.StatusSuccess {
		t.Fatalf("expected success responses, got %s and %s", first.Status, second.Status)
	}
	if fetcher.calls() != 1 {
		t.Fatalf("expected whitespace variants to share one fetch, got %d", fetcher.calls())
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", cache.Len())
	}
}

func TestQuickDistinguishesDifferingParameters(t *testing.T) {
	fetcher := &fakeFetcher{
		searchPage: func(_ context.Context, query domain.Query) (*tabelog.Page, error) {
			return resultPage(query.Page, 20), nil
		},
	}
	orchestrator := NewOrchestrator(fetcher)
	cache := NewCache()

	orchestrator.Quick(context.Background(), cache, domain.Query{Keyword: "sushi", PartySize: 2})
	orchestrator.Quick(context.Background(), cache, domain.Query{Keyword: "sushi", PartySize: 4})

	if fetcher.calls() != 2 {
		t.Fatalf("expected differing party sizes to fetch separately, got %d calls", fetcher.calls())
	}
	if cache.Len() != 2 {
		t.Fatalf("expected two cache entries, got %d", cache.Len())
	}
}

func TestQuickSharesOneFetchAcrossConcurrentCallers(t *testing.T) {
	fetcher := &fakeFetcher{
		searchPage: func(_ context.Context, query domain.Query) (*tabelog.Page, error) {
			time.Sleep(30 * time.Millisecond)
			return resultPage(query.Page, 20), nil
		},
	}
	orchestrator := NewOrchestrator(fetcher)
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response := orchestrator.Quick(context.Background(), cache, domain.Query{Keyword: "ramen"})
			if response.Status != domain.StatusSuccess {
				t.Errorf("expected success, got %s", response.Status)
			}
		}()
	}
	wg.Wait()

	if fetcher.calls() != 1 {
		t.Fatalf("expected concurrent callers to share one fetch, got %d", fetcher.calls())
	}
}

func TestQuickDoesNotCacheErrorResponses(t *testing.T) {
	failing := true
	fetcher := &fakeFetcher{
		searchPage: func(_ context.Context, query domain.Query) (*tabelog.Page, error) {
			if failing {
				return nil, errors.New("boom")
			}
			return resultPage(query.Page, 20), nil
		},
	}
	orchestrator := NewOrchestrator(fetcher)
	cache := NewCache()

	first := orchestrator.Quick(context.Background(), cache, domain.Query{Keyword: "ramen"})
	if first.Status != domain.StatusError {
		t.Fatalf("expected error status, got %s", first.Status)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected error response to stay uncached, got %d entries", cache.Len())
	}

	failing = false
	second := orchestrator.Quick(context.Background(), cache, domain.Query{Keyword: "ramen"})
	if second.Status != domain.StatusSuccess {
		t.Fatalf("expected recovery on retry, got %s", second.Status)
	}
	if fetcher.calls() != 2 {
		t.Fatalf("expected a fresh fetch after the failure, got %d calls", fetcher.calls())
	}
}

func TestQuickRejectsInvalidQuery(t *testing.T) {
	fetcher := &fakeFetcher{
		searchPage: func(_ context.Context, _ domain.Query) (*tabelog.Page, error) {
			return nil, errors.New("should not be called")
		},
	}
	orchestrator := NewOrchestrator(fetcher)
	cache := NewCache()

	response := orchestrator.Quick(context.Background(), cache, domain.Query{Page: -1})

	if response.Status != domain.StatusError {
		t.Fatalf("expected error status, got %s", response.Status)
	}
	if fetcher.calls() != 0 {
		t.Fatalf("expected no upstream calls, got %d", fetcher.calls())
	}
}
