package tabelog

import (
	"testing"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

func mustQuery(t *testing.T, q domain.Query) domain.Query {
	t.Helper()
	validated, err := domain.NewQuery(q)
	if err != nil {
		t.Fatalf("query validation returned error: %v", err)
	}
	return validated
}

func TestBuildSearchTargetUsesPathScopedURLForKnownArea(t *testing.T) {
	query := mustQuery(t, domain.Query{Area: "Shibuya", Keyword: "yakiniku", PartySize: 4})

	path, params := BuildSearchTarget(query)

	if path != "/shibuya/listings/" {
		t.Fatalf("expected path-scoped listings URL, got %q", path)
	}
	if params.Has("sa") {
		t.Fatalf("expected no area parameter on path-scoped URL, got sa=%q", params.Get("sa"))
	}
	if got := params.Get("sk"); got != "yakiniku" {
		t.Fatalf("expected keyword parameter yakiniku, got %q", got)
	}
	if got := params.Get("svps"); got != "4" {
		t.Fatalf("expected party size parameter 4, got %q", got)
	}
}

func TestBuildSearchTargetKeepsGenericPathForUnknownArea(t *testing.T) {
	query := mustQuery(t, domain.Query{Area: "Atlantis"})

	path, params := BuildSearchTarget(query)

	if path != "/search" {
		t.Fatalf("expected generic search path, got %q", path)
	}
	if got := params.Get("sa"); got != "Atlantis" {
		t.Fatalf("expected area parameter to pass through, got %q", got)
	}
}

func TestBuildSearchTargetOmitsUnsetParameters(t *testing.T) {
	query := mustQuery(t, domain.Query{Keyword: "ramen"})

	_, params := BuildSearchTarget(query)

	for _, key := range []string{
		"sa", "svd", "svt", "svps", "LstCos",
		"ChkOnlineBooking", "ChkSeatOnly", "ChkNewOpen",
		"ChkRoom", "ChkParking", "LstSmoking", "ChkCard",
	} {
		if params.Has(key) {
			t.Fatalf("expected parameter %s to be omitted, got %q", key, params.Get(key))
		}
	}
	if got := params.Get("SrtT"); got != string(domain.SortStandard) {
		t.Fatalf("expected default sort parameter, got %q", got)
	}
	if got := params.Get("PG"); got != "1" {
		t.Fatalf("expected page parameter 1, got %q", got)
	}
}

func TestBuildSearchTargetEmitsAllFilterParameters(t *testing.T) {
	query := mustQuery(t, domain.Query{
		Area:              "nowhere special",
		Keyword:           "sushi",
		ReservationDate:   "20260901",
		ReservationTime:   "1900",
		PartySize:         2,
		Sort:              domain.SortRanking,
		PriceRange:        domain.PriceDinner3000To4000,
		OnlineBookingOnly: true,
		SeatOnly:          true,
		NewOpen:           true,
		HasPrivateRoom:    true,
		HasParking:        true,
		SmokingAllowed:    true,
		CardAccepted:      true,
		Page:              3,
	})

	path, params := BuildSearchTarget(query)

	if path != "/search" {
		t.Fatalf("expected generic search path, got %q", path)
	}
	expected := map[string]string{
		"sa":               "nowhere special",
		"sk":               "sushi",
		"svd":              "20260901",
		"svt":              "1900",
		"svps":             "2",
		"SrtT":             "rt",
		"PG":               "3",
		"LstCos":           string(domain.PriceDinner3000To4000),
		"ChkOnlineBooking": "1",
		"ChkSeatOnly":      "1",
		"ChkNewOpen":       "1",
		"ChkRoom":          "1",
		"ChkParking":       "1",
		"LstSmoking":       "1",
		"ChkCard":          "1",
	}
	for key, want := range expected {
		if got := params.Get(key); got != want {
			t.Fatalf("expected parameter %s=%q, got %q", key, want, got)
		}
	}
}
