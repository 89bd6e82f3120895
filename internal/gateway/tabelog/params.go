package tabelog

import (
	"net/url"
	"strconv"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

const (
	genericSearchPath = "/search"
	suggestPath       = "/internal-api/suggest"
)

// BuildSearchTarget turns a validated query into the request path and query
// parameters the search endpoint accepts.
//
// The generic endpoint accepts an "sa" area parameter but does not filter by
// it: it returns nationwide results regardless. That is a confirmed quirk of
// the remote site, not of this client. When the area resolves to a known path
// slug we emit the path-scoped listings URL instead and drop the area
// parameter entirely, so filtering happens server-side by path. Unknown areas
// keep the generic form, which means callers get unfiltered results.
func BuildSearchTarget(q domain.Query) (string, url.Values) {
	params := url.Values{}
	path := genericSearchPath

	if slug, ok := domain.ResolveAreaSlug(q.Area); ok {
		path = "/" + slug + "/listings/"
	} else if q.Area != "" {
		params.Set("sa", q.Area)
	}

	if q.Keyword != "" {
		params.Set("sk", q.Keyword)
	}
	if q.ReservationDate != "" {
		params.Set("svd", q.ReservationDate)
	}
	if q.ReservationTime != "" {
		params.Set("svt", q.ReservationTime)
	}
	if q.PartySize > 0 {
		params.Set("svps", strconv.Itoa(q.PartySize))
	}

	params.Set("SrtT", string(q.Sort))
	params.Set("PG", strconv.Itoa(q.Page))

	if q.PriceRange != "" {
		params.Set("LstCos", string(q.PriceRange))
	}
	if q.OnlineBookingOnly {
		params.Set("ChkOnlineBooking", "1")
	}
	if q.SeatOnly {
		params.Set("ChkSeatOnly", "1")
	}
	if q.NewOpen {
		params.Set("ChkNewOpen", "1")
	}
	if q.HasPrivateRoom {
		params.Set("ChkRoom", "1")
	}
	if q.HasParking {
		params.Set("ChkParking", "1")
	}
	if q.SmokingAllowed {
		params.Set("LstSmoking", "1")
	}
	if q.CardAccepted {
		params.Set("ChkCard", "1")
	}

	return path, params
}
