package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

func TestSuggestCommandRendersTable(t *testing.T) {
	var capturedMode domain.SuggestMode
	var capturedText string
	api := &testTabelogAPI{
		suggestFn: func(_ context.Context, mode domain.SuggestMode, text string) ([]domain.Suggestion, error) {
			capturedMode = mode
			capturedText = text
			return []domain.Suggestion{{ID: "tokyo", Name: "東京"}}, nil
		},
	}

	code, stdout, _ := runCLI(t, newTestDependencies(api), "suggest", "東", "--mode", "area")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if capturedMode != domain.SuggestArea || capturedText != "東" {
		t.Fatalf("unexpected call: mode=%s text=%q", capturedMode, capturedText)
	}
	if !strings.Contains(stdout, "東京") {
		t.Fatalf("expected suggestion in output, got:\n%s", stdout)
	}
}

func TestSuggestCommandRequiresText(t *testing.T) {
	code, _, stderr := runCLI(t, newTestDependencies(&testTabelogAPI{}), "suggest")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "required") {
		t.Fatalf("expected required-argument message, got:\n%s", stderr)
	}
}

func TestSuggestCommandRejectsUnknownMode(t *testing.T) {
	code, _, stderr := runCLI(t, newTestDependencies(&testTabelogAPI{}), "suggest", "x", "--mode", "venue")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "unsupported suggest mode") {
		t.Fatalf("expected mode error, got:\n%s", stderr)
	}
}

func TestSuggestCommandReportsEmptyResult(t *testing.T) {
	code, stdout, _ := runCLI(t, newTestDependencies(&testTabelogAPI{}), "suggest", "zzz")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout, "No suggestions.") {
		t.Fatalf("expected empty-result message, got:\n%s", stdout)
	}
}

func TestSuggestCommandReportsUpstreamFailure(t *testing.T) {
	api := &testTabelogAPI{
		suggestFn: func(context.Context, domain.SuggestMode, string) ([]domain.Suggestion, error) {
			return nil, errors.New("boom")
		},
	}

	code, stdout, _ := runCLI(t, newTestDependencies(api), "suggest", "x")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stdout, "tabelog.com") {
		t.Fatalf("expected upstream error message, got:\n%s", stdout)
	}
}
