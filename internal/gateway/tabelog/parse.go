package tabelog

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

const defaultResultsPerPage = 20

// Container selectors for the result list, newest layout first. The first
// selector that matches at least one node decides the shape for the whole
// page; a page matching none of them parses as zero results.
var listingContainerSelectors = []string{
	"div.list-rst",
	"li.list-rst",
}

// ParsePage extracts listings and pagination metadata from a results page.
// It never fails: unrecognizable markup yields an empty page, and a broken
// field inside a record drops only that field.
func ParsePage(body string, page int) Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Page{Listings: []domain.Listing{}, Meta: buildMeta(0, page, 0)}
	}

	containers := findListingContainers(doc)
	// Like the container chain, the area/genre shape is decided once per
	// page: the split-span layout applies only when no record on the page
	// carries the combined span.
	combinedAreaGenre := doc.Find("span.list-rst__area-genre").Length() > 0
	listings := make([]domain.Listing, 0, containers.Length())
	containers.Each(func(_ int, sel *goquery.Selection) {
		if listing, ok := parseListing(sel, combinedAreaGenre); ok {
			listings = append(listings, listing)
		}
	})

	return Page{
		Listings: listings,
		Meta:     buildMeta(parseTotalCount(doc), page, containers.Length()),
	}
}

func findListingContainers(doc *goquery.Document) *goquery.Selection {
	for _, selector := range listingContainerSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find(listingContainerSelectors[0])
}

// parseListing extracts one record. Name and URL are mandatory; a container
// without a usable title anchor is skipped entirely. Every other field fails
// in isolation.
func parseListing(sel *goquery.Selection, combinedAreaGenre bool) (domain.Listing, bool) {
	anchor := sel.Find("a.list-rst__rst-name-target").First()
	if anchor.Length() == 0 {
		anchor = sel.Find("a[href]").First()
	}
	name := strings.TrimSpace(anchor.Text())
	href, _ := anchor.Attr("href")
	href = resolveURL(href)
	if name == "" || href == "" {
		return domain.Listing{}, false
	}

	listing := domain.Listing{Name: name, URL: href}
	listing.Rating = parseRating(sel).Ptr()
	listing.ReviewCount = parseCount(sel, "em.list-rst__rvw-count-num").Ptr()
	listing.SaveCount = parseCount(sel, "em.list-rst__save-count-num").Ptr()
	listing.Area, listing.Station, listing.Distance, listing.Genres = parseAreaGenre(sel, combinedAreaGenre)
	listing.Description = strings.TrimSpace(sel.Find("div.list-rst__catch").First().Text())
	listing.LunchPrice, listing.DinnerPrice = parseBudgets(sel)
	listing.HasVPoint = sel.Find("span.c-badge-tpoint").Length() > 0
	listing.AcceptsReservation = sel.Find("div.list-rst__booking-btn").Length() > 0
	listing.ImageURLs = parseImageURLs(sel)
	return listing, true
}

func parseRating(sel *goquery.Selection) domain.Field[float64] {
	node := sel.Find("span.c-rating__val").First()
	if node.Length() == 0 {
		return domain.AbsentField[float64]()
	}
	raw := strings.TrimSpace(node.Text())
	if raw == "" || raw == "-" {
		return domain.AbsentField[float64]()
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.MalformedField[float64]()
	}
	return domain.PresentField(value)
}

func parseCount(sel *goquery.Selection, selector string) domain.Field[int] {
	node := sel.Find(selector).First()
	if node.Length() == 0 {
		return domain.AbsentField[int]()
	}
	raw := normalizeNumber(node.Text())
	if raw == "" || raw == "-" {
		return domain.AbsentField[int]()
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return domain.MalformedField[int]()
	}
	return domain.PresentField(value)
}

// normalizeNumber strips thousands separators and folds full-width digits so
// counts render the same regardless of the page's locale formatting.
func normalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == ',' || r == '，':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAreaGenre splits the combined "station distance / genre、genre" label.
// Older layouts carry separate area and genre spans instead; which layout
// applies was decided for the whole page, so on a combined-shape page a
// record without the span simply has no area and genres.
func parseAreaGenre(sel *goquery.Selection, combinedShape bool) (area, station, distance string, genres []string) {
	if !combinedShape {
		area = strings.TrimSpace(sel.Find("span.list-rst__area").First().Text())
		genres = splitGenres(sel.Find("span.list-rst__genre").First().Text())
		return area, "", "", genres
	}

	combined := strings.TrimSpace(sel.Find("span.list-rst__area-genre").First().Text())
	if combined == "" {
		return "", "", "", nil
	}

	locality := combined
	if before, after, found := strings.Cut(combined, "/"); found {
		locality = strings.TrimSpace(before)
		genres = splitGenres(after)
	} else {
		// No separator means the label only names genres.
		return "", "", "", splitGenres(combined)
	}

	if strings.Contains(locality, "駅") {
		station = locality
		if fields := strings.Fields(locality); len(fields) > 1 {
			station = fields[0]
			distance = strings.Join(fields[1:], " ")
		}
	} else {
		area = locality
	}
	return area, station, distance, genres
}

func splitGenres(raw string) []string {
	var genres []string
	for _, piece := range strings.Split(raw, "、") {
		if piece = strings.TrimSpace(piece); piece != "" {
			genres = append(genres, piece)
		}
	}
	return genres
}

// parseBudgets assigns the per-meal budget labels. Each budget value sits
// inside an item whose text names the meal; when the marker is missing the
// site's ordering applies, dinner first then lunch.
func parseBudgets(sel *goquery.Selection) (lunch, dinner string) {
	sel.Find("span.list-rst__budget-val").Each(func(i int, node *goquery.Selection) {
		value := strings.TrimSpace(node.Text())
		if value == "" || value == "-" {
			return
		}
		context := node.Parent().Text()
		switch {
		case strings.Contains(context, "ランチ") || strings.Contains(context, "昼"):
			lunch = value
		case strings.Contains(context, "ディナー") || strings.Contains(context, "夜"):
			dinner = value
		case i == 0:
			dinner = value
		default:
			if lunch == "" {
				lunch = value
			}
		}
	})
	return lunch, dinner
}

func parseImageURLs(sel *goquery.Selection) []string {
	var urls []string
	sel.Find("img.list-rst__photo-img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			src, _ = img.Attr("data-src")
		}
		if src = resolveURL(strings.TrimSpace(src)); src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}

// resolveURL turns site-relative hrefs into absolute ones.
func resolveURL(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return defaultBaseURL + href
	default:
		return defaultBaseURL + "/" + href
	}
}

// parseTotalCount reads the advertised result total from the page header.
// Zero means the header is missing or unreadable.
func parseTotalCount(doc *goquery.Document) int {
	raw := normalizeNumber(doc.Find("span.c-page-count__num").Last().Text())
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		return 0
	}
	return total
}

// buildMeta derives pagination metadata. The per-page size observed on the
// current page is preferred over the site default, but a short final page
// must not shrink the divisor, so the default acts as a floor.
func buildMeta(totalCount, page, pageRecordCount int) domain.ResponseMeta {
	perPage := defaultResultsPerPage
	if pageRecordCount > perPage {
		perPage = pageRecordCount
	}

	meta := domain.ResponseMeta{
		TotalCount:     totalCount,
		CurrentPage:    page,
		ResultsPerPage: perPage,
		HasPrevPage:    page > 1,
	}
	if totalCount > 0 {
		meta.TotalPages = (totalCount + perPage - 1) / perPage
		meta.HasNextPage = page < meta.TotalPages
	}
	return meta
}
