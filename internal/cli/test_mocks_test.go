package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
	tabeloggateway "github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
)

type testTabelogAPI struct {
	mu           sync.Mutex
	searchCalls  int
	searchPageFn func(context.Context, domain.Query) (*tabeloggateway.Page, error)
	suggestFn    func(context.Context, domain.SuggestMode, string) ([]domain.Suggestion, error)
}

func (m *testTabelogAPI) SearchPage(ctx context.Context, query domain.Query) (*tabeloggateway.Page, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()
	if m.searchPageFn != nil {
		return m.searchPageFn(ctx, query)
	}
	return &tabeloggateway.Page{Listings: []domain.Listing{}}, nil
}

func (m *testTabelogAPI) Suggest(ctx context.Context, mode domain.SuggestMode, text string) ([]domain.Suggestion, error) {
	if m.suggestFn != nil {
		return m.suggestFn(ctx, mode, text)
	}
	return []domain.Suggestion{}, nil
}

func (m *testTabelogAPI) searchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

type testConfigManager struct {
	cfg     domain.Config
	loadErr error
	saved   *domain.Config
}

func (m *testConfigManager) Path() string {
	return "/tmp/test-tabelog-config.json"
}

func (m *testConfigManager) Load(context.Context) (domain.Config, error) {
	if m.loadErr != nil {
		return domain.Config{}, m.loadErr
	}
	return m.cfg, nil
}

func (m *testConfigManager) Save(_ context.Context, cfg domain.Config) error {
	m.saved = &cfg
	return nil
}

// fullPage builds one complete results page for orchestrator-backed tests.
func fullPage(page, totalCount int) *tabeloggateway.Page {
	totalPages := (totalCount + 19) / 20
	count := totalCount - (page-1)*20
	if count > 20 {
		count = 20
	}
	if count < 0 {
		count = 0
	}
	listings := make([]domain.Listing, 0, count)
	for i := 0; i < count; i++ {
		listings = append(listings, domain.Listing{
			Name: "テスト食堂",
			URL:  "https://tabelog.com/tokyo/A1303/A130301/13001234/",
		})
	}
	return &tabeloggateway.Page{
		Listings: listings,
		Meta: domain.ResponseMeta{
			TotalCount:     totalCount,
			CurrentPage:    page,
			ResultsPerPage: 20,
			TotalPages:     totalPages,
			HasNextPage:    page < totalPages,
			HasPrevPage:    page > 1,
		},
	}
}

func findCommand(root *cobra.Command, path ...string) (*cobra.Command, bool) {
	current := root
	for _, name := range path {
		var next *cobra.Command
		for _, cmd := range current.Commands() {
			if cmd.Name() == name {
				next = cmd
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}
