package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

func TestConfigureCreatesConfig(t *testing.T) {
	store := &testConfigManager{loadErr: errors.New("no config")}
	deps := newTestDependencies(&testTabelogAPI{})
	deps.Config = store

	code, stdout, _ := runCLI(t, deps,
		"configure", "--profile-name", "tokyo", "--area", "Shibuya", "--sort", "ranking", "--max-pages", "3")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout, "created successfully") {
		t.Fatalf("expected creation confirmation, got:\n%s", stdout)
	}
	if store.saved == nil || len(store.saved.Profiles) != 1 {
		t.Fatalf("expected one saved profile, got %+v", store.saved)
	}
	profile := store.saved.Profiles[0]
	if profile.Name != "tokyo" || !profile.IsDefault {
		t.Fatalf("unexpected profile identity: %+v", profile)
	}
	if profile.Area != "Shibuya" || profile.Sort != "ranking" || profile.MaxPages != 3 {
		t.Fatalf("unexpected saved defaults: %+v", profile)
	}
}

func TestConfigureUpdatesExistingProfile(t *testing.T) {
	store := &testConfigManager{cfg: domain.Config{
		Profiles: []domain.Profile{
			{Name: "Default", IsDefault: true, Area: "Shibuya", MaxPages: 2},
		},
	}}
	deps := newTestDependencies(&testTabelogAPI{})
	deps.Config = store

	code, stdout, _ := runCLI(t, deps, "configure", "--area", "Umeda")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout, "updated successfully") {
		t.Fatalf("expected update confirmation, got:\n%s", stdout)
	}
	if store.saved == nil {
		t.Fatal("expected config to be saved")
	}
	profile := store.saved.Profiles[0]
	if profile.Area != "Umeda" {
		t.Fatalf("expected area to be updated, got %q", profile.Area)
	}
	if profile.MaxPages != 2 {
		t.Fatalf("expected untouched fields to survive, got %+v", profile)
	}
}

func TestConfigureRejectsInvalidSort(t *testing.T) {
	deps := newTestDependencies(&testTabelogAPI{})

	code, _, stderr := runCLI(t, deps, "configure", "--sort", "alphabetical")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "unsupported sort") {
		t.Fatalf("expected sort error, got:\n%s", stderr)
	}
}

func TestConfigureRejectsUnknownProfileWithoutOverwrite(t *testing.T) {
	store := &testConfigManager{cfg: domain.Config{
		Profiles: []domain.Profile{
			{Name: "north", IsDefault: false},
			{Name: "south", IsDefault: false},
		},
	}}
	deps := newTestDependencies(&testTabelogAPI{})
	deps.Config = store

	code, _, stderr := runCLI(t, deps, "configure", "--profile-name", "west", "--area", "Umeda")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "not found") {
		t.Fatalf("expected missing-profile error, got:\n%s", stderr)
	}
	if store.saved != nil {
		t.Fatal("expected config to stay untouched")
	}
}
