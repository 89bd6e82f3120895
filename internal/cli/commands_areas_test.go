package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAreasCommandListsKnownSlugs(t *testing.T) {
	code, stdout, _ := runCLI(t, newTestDependencies(&testTabelogAPI{}), "areas")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, expected := range []string{"Tokyo", "tokyo", "Shibuya", "shibuya", "Osaka"} {
		if !strings.Contains(stdout, expected) {
			t.Fatalf("expected %q in areas output, got:\n%s", expected, stdout)
		}
	}
}

func TestAreasCommandEmitsJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, newTestDependencies(&testTabelogAPI{}), "areas", "--format", "json")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var env struct {
		Data struct {
			Areas []struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			} `json:"areas"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v\n%s", err, stdout)
	}
	if len(env.Data.Areas) == 0 {
		t.Fatal("expected at least one area")
	}
	found := false
	for _, area := range env.Data.Areas {
		if area.Slug == "shibuya" && area.Name == "Shibuya" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected shibuya entry, got %+v", env.Data.Areas)
	}
}
