package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidQuery is returned for malformed search parameters. Validation
// happens at construction; nothing past NewQuery performs a network call
// with bad input.
var ErrInvalidQuery = errors.New("invalid search query")

var (
	reservationDatePattern = regexp.MustCompile(`^\d{8}$`)
	reservationTimePattern = regexp.MustCompile(`^\d{4}$`)
)

// SortOrder selects the result ordering. Values are the codes the search
// endpoint accepts verbatim.
type SortOrder string

const (
	SortStandard    SortOrder = "trend" // site default, promoted venues first
	SortRanking     SortOrder = "rt"
	SortReviewCount SortOrder = "rvcn"
	SortNewOpen     SortOrder = "nod"
)

// ParseSortOrder maps user-facing sort names onto endpoint codes.
func ParseSortOrder(v string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "standard", "trend":
		return SortStandard, nil
	case "ranking", "rating", "rt":
		return SortRanking, nil
	case "reviews", "review_count", "rvcn":
		return SortReviewCount, nil
	case "new", "new_open", "nod":
		return SortNewOpen, nil
	default:
		return "", fmt.Errorf("%w: unsupported sort %q", ErrInvalidQuery, v)
	}
}

// PriceRange selects one of the site's fixed lunch/dinner budget bands.
// Codes B001-B012 cover lunch, C001-C012 dinner.
type PriceRange string

const (
	PriceLunchUnder1000  PriceRange = "B001" // up to 999 yen
	PriceLunch1000To2000 PriceRange = "B002"
	PriceLunch2000To3000 PriceRange = "B003"
	PriceLunch3000To4000 PriceRange = "B004"
	PriceLunch4000To5000 PriceRange = "B005"
	PriceLunch5000To6000 PriceRange = "B006"
	PriceLunch6000To8000 PriceRange = "B007"
	PriceLunch8000To10k  PriceRange = "B008"
	PriceLunch10kTo15k   PriceRange = "B009"
	PriceLunch15kTo20k   PriceRange = "B010"
	PriceLunch20kTo30k   PriceRange = "B011"
	PriceLunchOver30k    PriceRange = "B012"

	PriceDinnerUnder1000  PriceRange = "C001" // up to 999 yen
	PriceDinner1000To2000 PriceRange = "C002"
	PriceDinner2000To3000 PriceRange = "C003"
	PriceDinner3000To4000 PriceRange = "C004"
	PriceDinner4000To5000 PriceRange = "C005"
	PriceDinner5000To6000 PriceRange = "C006"
	PriceDinner6000To8000 PriceRange = "C007"
	PriceDinner8000To10k  PriceRange = "C008"
	PriceDinner10kTo15k   PriceRange = "C009"
	PriceDinner15kTo20k   PriceRange = "C010"
	PriceDinner20kTo30k   PriceRange = "C011"
	PriceDinnerOver30k    PriceRange = "C012"
)

var priceRangePattern = regexp.MustCompile(`^[BC]0(0[1-9]|1[0-2])$`)

// Valid reports whether the value is one of the fixed band codes.
func (p PriceRange) Valid() bool {
	return priceRangePattern.MatchString(string(p))
}

// ParsePriceRange accepts a band code like "B003" or "c010" (case-insensitive).
func ParsePriceRange(v string) (PriceRange, error) {
	code := PriceRange(strings.ToUpper(strings.TrimSpace(v)))
	if code == "" {
		return "", nil
	}
	if !code.Valid() {
		return "", fmt.Errorf("%w: unsupported price range %q", ErrInvalidQuery, v)
	}
	return code, nil
}

// Query carries one search request's parameters. Build queries through
// NewQuery so trimming and format validation have run; a zero Query is not
// valid on its own.
type Query struct {
	Area    string `json:"area,omitempty" yaml:"area,omitempty"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`

	ReservationDate string `json:"reservation_date,omitempty" yaml:"reservation_date,omitempty"` // YYYYMMDD
	ReservationTime string `json:"reservation_time,omitempty" yaml:"reservation_time,omitempty"` // HHMM
	PartySize       int    `json:"party_size,omitempty" yaml:"party_size,omitempty"`             // 0 = unspecified

	Sort       SortOrder  `json:"sort,omitempty" yaml:"sort,omitempty"`
	PriceRange PriceRange `json:"price_range,omitempty" yaml:"price_range,omitempty"`

	OnlineBookingOnly bool `json:"online_booking_only,omitempty" yaml:"online_booking_only,omitempty"`
	SeatOnly          bool `json:"seat_only,omitempty" yaml:"seat_only,omitempty"`
	NewOpen           bool `json:"new_open,omitempty" yaml:"new_open,omitempty"`
	HasPrivateRoom    bool `json:"has_private_room,omitempty" yaml:"has_private_room,omitempty"`
	HasParking        bool `json:"has_parking,omitempty" yaml:"has_parking,omitempty"`
	SmokingAllowed    bool `json:"smoking_allowed,omitempty" yaml:"smoking_allowed,omitempty"`
	CardAccepted      bool `json:"card_accepted,omitempty" yaml:"card_accepted,omitempty"`

	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}

// NewQuery trims free-text fields, fills defaults, and validates the
// fixed-width date/time formats. All failures wrap ErrInvalidQuery.
func NewQuery(q Query) (Query, error) {
	q.Area = strings.TrimSpace(q.Area)
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Sort == "" {
		q.Sort = SortStandard
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return Query{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, q.Page)
	}
	if q.PartySize < 0 {
		return Query{}, fmt.Errorf("%w: party size must be >= 0, got %d", ErrInvalidQuery, q.PartySize)
	}
	if q.ReservationDate != "" && !reservationDatePattern.MatchString(q.ReservationDate) {
		return Query{}, fmt.Errorf("%w: reservation date must be YYYYMMDD, got %q", ErrInvalidQuery, q.ReservationDate)
	}
	if q.ReservationTime != "" && !reservationTimePattern.MatchString(q.ReservationTime) {
		return Query{}, fmt.Errorf("%w: reservation time must be HHMM, got %q", ErrInvalidQuery, q.ReservationTime)
	}
	switch q.Sort {
	case SortStandard, SortRanking, SortReviewCount, SortNewOpen:
	default:
		return Query{}, fmt.Errorf("%w: unsupported sort %q", ErrInvalidQuery, q.Sort)
	}
	if q.PriceRange != "" && !q.PriceRange.Valid() {
		return Query{}, fmt.Errorf("%w: unsupported price range %q", ErrInvalidQuery, q.PriceRange)
	}
	return q, nil
}

// WithPage returns a copy of the query targeting another page. The receiver
// must already be validated; page numbers below 1 are rejected.
func (q Query) WithPage(page int) (Query, error) {
	if page < 1 {
		return Query{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, page)
	}
	q.Page = page
	return q, nil
}
