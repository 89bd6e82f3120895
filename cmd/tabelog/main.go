package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mekedron/tabelog-cli/internal/cli"
	"github.com/mekedron/tabelog-cli/internal/config"
	tabeloggateway "github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
	"github.com/mekedron/tabelog-cli/internal/search"
)

var version = "dev"

const (
	defaultHTTPMinInterval = 500 * time.Millisecond
	httpMinIntervalEnv     = "TABELOG_HTTP_MIN_INTERVAL_MS"
	userAgentEnv           = "TABELOG_USER_AGENT"
)

func main() {
	_ = godotenv.Load()

	store, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	gateway := tabeloggateway.NewClient(
		tabeloggateway.WithRequestMinInterval(resolveRequestMinInterval()),
		tabeloggateway.WithUserAgent(os.Getenv(userAgentEnv)),
	)

	deps := cli.Dependencies{
		Tabelog:  gateway,
		Searcher: search.NewOrchestrator(gateway),
		Cache:    search.NewCache(),
		Config:   store,
		Version:  version,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

func resolveRequestMinInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv(httpMinIntervalEnv))
	if raw == "" {
		return defaultHTTPMinInterval
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return defaultHTTPMinInterval
	}
	return time.Duration(ms) * time.Millisecond
}
