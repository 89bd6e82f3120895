package domain

import (
	"errors"
	"testing"
)

func TestNewQueryAppliesDefaults(t *testing.T) {
	query, err := NewQuery(Query{Area: "  Shibuya ", Keyword: " ramen "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Area != "Shibuya" || query.Keyword != "ramen" {
		t.Fatalf("expected trimmed fields, got %q %q", query.Area, query.Keyword)
	}
	if query.Sort != SortStandard {
		t.Fatalf("expected default sort, got %q", query.Sort)
	}
	if query.Page != 1 {
		t.Fatalf("expected default page 1, got %d", query.Page)
	}
}

func TestNewQueryValidation(t *testing.T) {
	cases := []struct {
		name  string
		query Query
	}{
		{"negative page", Query{Page: -1}},
		{"negative party size", Query{PartySize: -2}},
		{"bad date", Query{ReservationDate: "2026-09-01"}},
		{"short date", Query{ReservationDate: "2026"}},
		{"bad time", Query{ReservationTime: "7pm"}},
		{"bad sort", Query{Sort: "alphabetical"}},
		{"bad price range", Query{PriceRange: "D001"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewQuery(tc.query)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestNewQueryAcceptsReservationFields(t *testing.T) {
	query, err := NewQuery(Query{
		ReservationDate: "20260901",
		ReservationTime: "1930",
		PartySize:       4,
		Sort:            SortRanking,
		PriceRange:      PriceDinner5000To6000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.ReservationDate != "20260901" || query.ReservationTime != "1930" {
		t.Fatalf("unexpected reservation fields: %+v", query)
	}
}

func TestWithPage(t *testing.T) {
	base, err := NewQuery(Query{Keyword: "ramen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := base.WithPage(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Page != 4 {
		t.Fatalf("expected page 4, got %d", next.Page)
	}
	if base.Page != 1 {
		t.Fatalf("expected original query to stay untouched, got page %d", base.Page)
	}
	if _, err := base.WithPage(0); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for page 0, got %v", err)
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{
		"":        SortStandard,
		"ranking": SortRanking,
		"reviews": SortReviewCount,
		"new":     SortNewOpen,
		"rt":      SortRanking,
	}
	for input, expected := range cases {
		got, err := ParseSortOrder(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != expected {
			t.Fatalf("expected %q for %q, got %q", expected, input, got)
		}
	}
	if _, err := ParseSortOrder("cheapest"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestParsePriceRange(t *testing.T) {
	code, err := ParsePriceRange("c010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != PriceDinner15kTo20k {
		t.Fatalf("expected C010, got %q", code)
	}
	if code, err := ParsePriceRange(""); err != nil || code != "" {
		t.Fatalf("expected empty value to pass through, got %q %v", code, err)
	}
	for _, invalid := range []string{"A001", "B000", "C013", "B1"} {
		if _, err := ParsePriceRange(invalid); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery for %q, got %v", invalid, err)
		}
	}
}

func TestFieldStates(t *testing.T) {
	present := PresentField(3.5)
	if value, ok := present.Value(); !ok || value != 3.5 {
		t.Fatalf("expected present value 3.5, got %v %v", value, ok)
	}
	if present.Ptr() == nil {
		t.Fatal("expected non-nil pointer for present field")
	}

	absent := AbsentField[int]()
	if absent.Status() != FieldAbsent {
		t.Fatalf("expected absent status, got %v", absent.Status())
	}
	if absent.Ptr() != nil {
		t.Fatal("expected nil pointer for absent field")
	}

	malformed := MalformedField[int]()
	if malformed.Status() != FieldMalformed {
		t.Fatalf("expected malformed status, got %v", malformed.Status())
	}
	if _, ok := malformed.Value(); ok {
		t.Fatal("expected malformed field to report unusable value")
	}
}
