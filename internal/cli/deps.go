package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/mekedron/tabelog-cli/internal/domain"
	tabeloggateway "github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
	"github.com/mekedron/tabelog-cli/internal/search"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// Searcher aggregates result pages into response envelopes.
type Searcher interface {
	Do(ctx context.Context, req search.Request) domain.Response
	DoConcurrent(ctx context.Context, req search.Request, workers int) domain.Response
	Quick(ctx context.Context, cache *search.Cache, query domain.Query) domain.Response
}

// ConfigManager stores profile config payloads.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (domain.Config, error)
	Save(ctx context.Context, cfg domain.Config) error
}

// Dependencies wires runtime services.
type Dependencies struct {
	Tabelog  tabeloggateway.API
	Searcher Searcher
	Cache    *search.Cache
	Config   ConfigManager
	Version  string
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
