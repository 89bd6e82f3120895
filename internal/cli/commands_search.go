package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
	"github.com/mekedron/tabelog-cli/internal/search"
	"github.com/mekedron/tabelog-cli/internal/service/output"
)

type searchFlags struct {
	Area            string
	Keyword         string
	ReservationDate string
	ReservationTime string
	PartySize       int
	Sort            string
	PriceRange      string

	OnlineBookingOnly bool
	SeatOnly          bool
	NewOpen           bool
	HasPrivateRoom    bool
	HasParking        bool
	SmokingAllowed    bool
	CardAccepted      bool

	Page int
}

func registerSearchFlags(cmd *cobra.Command, flags *searchFlags) {
	cmd.Flags().StringVar(&flags.Area, "area", "", "Area to search in, for example Shibuya or Osaka.")
	cmd.Flags().StringVar(&flags.Keyword, "keyword", "", "Free-text keyword, for example yakiniku.")
	cmd.Flags().StringVar(&flags.ReservationDate, "date", "", "Reservation date as YYYYMMDD.")
	cmd.Flags().StringVar(&flags.ReservationTime, "time", "", "Reservation time as HHMM.")
	cmd.Flags().IntVar(&flags.PartySize, "party-size", 0, "Number of guests for the reservation filter.")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "Sort order: standard, ranking, reviews, or new.")
	cmd.Flags().StringVar(&flags.PriceRange, "price-range", "", "Budget band code, B001-B012 for lunch or C001-C012 for dinner.")
	cmd.Flags().BoolVar(&flags.OnlineBookingOnly, "online-booking", false, "Only venues that take online reservations.")
	cmd.Flags().BoolVar(&flags.SeatOnly, "seat-only", false, "Include seat-only reservations.")
	cmd.Flags().BoolVar(&flags.NewOpen, "new-open", false, "Only recently opened venues.")
	cmd.Flags().BoolVar(&flags.HasPrivateRoom, "private-room", false, "Only venues with private rooms.")
	cmd.Flags().BoolVar(&flags.HasParking, "parking", false, "Only venues with parking.")
	cmd.Flags().BoolVar(&flags.SmokingAllowed, "smoking", false, "Only venues that allow smoking.")
	cmd.Flags().BoolVar(&flags.CardAccepted, "card", false, "Only venues that accept cards.")
	cmd.Flags().IntVar(&flags.Page, "page", 1, "1-based results page to start from.")
}

// buildQuery folds profile defaults under explicit flag values and validates
// the result. Flags the user set always win over the profile.
func buildQuery(cmd *cobra.Command, flags searchFlags, profile domain.Profile) (domain.Query, error) {
	if flags.Area == "" && !cmd.Flags().Changed("area") {
		flags.Area = profile.Area
	}
	if flags.Sort == "" && !cmd.Flags().Changed("sort") {
		flags.Sort = profile.Sort
	}
	if flags.PriceRange == "" && !cmd.Flags().Changed("price-range") {
		flags.PriceRange = profile.PriceRange
	}
	if flags.PartySize == 0 && !cmd.Flags().Changed("party-size") {
		flags.PartySize = profile.PartySize
	}

	sortOrder, err := domain.ParseSortOrder(flags.Sort)
	if err != nil {
		return domain.Query{}, err
	}
	priceRange, err := domain.ParsePriceRange(flags.PriceRange)
	if err != nil {
		return domain.Query{}, err
	}

	return domain.NewQuery(domain.Query{
		Area:              flags.Area,
		Keyword:           flags.Keyword,
		ReservationDate:   flags.ReservationDate,
		ReservationTime:   flags.ReservationTime,
		PartySize:         flags.PartySize,
		Sort:              sortOrder,
		PriceRange:        priceRange,
		OnlineBookingOnly: flags.OnlineBookingOnly,
		SeatOnly:          flags.SeatOnly,
		NewOpen:           flags.NewOpen,
		HasPrivateRoom:    flags.HasPrivateRoom,
		HasParking:        flags.HasParking,
		SmokingAllowed:    flags.SmokingAllowed,
		CardAccepted:      flags.CardAccepted,
		Page:              flags.Page,
	})
}

func newSearchCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var query searchFlags
	var maxPages int
	var concurrency int
	var includeMeta bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search restaurant listings with filters and pagination.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			profile, err := loadProfile(cmd.Context(), deps, flags.Profile)
			if err != nil {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, "TABELOG_PROFILE_ERROR", err.Error())
			}
			profileLabel := fallbackString(profile.Name, resolveProfileLabel(flags.Profile))

			if maxPages == 0 && !cmd.Flags().Changed("max-pages") && profile.MaxPages > 0 {
				maxPages = profile.MaxPages
			}
			if concurrency == 0 && !cmd.Flags().Changed("concurrency") && profile.Concurrency > 0 {
				concurrency = profile.Concurrency
			}

			validated, err := buildQuery(cmd, query, profile)
			if err != nil {
				return emitError(cmd, format, profileLabel, flags.Output, "TABELOG_INVALID_ARGUMENT", err.Error())
			}

			request := search.Request{Query: validated, MaxPages: maxPages, IncludeMeta: includeMeta}
			var response domain.Response
			if concurrency > 1 {
				response = deps.Searcher.DoConcurrent(cmd.Context(), request, concurrency)
			} else {
				response = deps.Searcher.Do(cmd.Context(), request)
			}

			return renderSearchResponse(cmd, format, profileLabel, flags, response)
		},
	}

	registerSearchFlags(cmd, &query)
	cmd.Flags().IntVar(&maxPages, "max-pages", 1, "Maximum number of result pages to fetch.")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of pages to fetch in parallel (1 = sequential).")
	cmd.Flags().BoolVar(&includeMeta, "meta", false, "Include pagination metadata in the output.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newQuickCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var query searchFlags

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Run a single-page search memoized for repeated identical queries.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			profile, err := loadProfile(cmd.Context(), deps, flags.Profile)
			if err != nil {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, "TABELOG_PROFILE_ERROR", err.Error())
			}
			profileLabel := fallbackString(profile.Name, resolveProfileLabel(flags.Profile))

			validated, err := buildQuery(cmd, query, profile)
			if err != nil {
				return emitError(cmd, format, profileLabel, flags.Output, "TABELOG_INVALID_ARGUMENT", err.Error())
			}

			response := deps.Searcher.Quick(cmd.Context(), deps.Cache, validated)
			return renderSearchResponse(cmd, format, profileLabel, flags, response)
		},
	}

	registerSearchFlags(cmd, &query)
	addGlobalFlags(cmd, &flags)
	return cmd
}

func renderSearchResponse(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	flags globalFlags,
	response domain.Response,
) error {
	if response.Status == domain.StatusError {
		return emitError(cmd, format, profile, flags.Output, "TABELOG_UPSTREAM_ERROR", upstreamFailureMessage(response, flags.Verbose))
	}

	if format == output.FormatTable {
		if response.Status == domain.StatusNoResults {
			return writeTable(cmd, "No results found.", flags.Output)
		}
		return writeTable(cmd, buildListingTable(response), flags.Output)
	}

	env := output.BuildEnvelope(profile, response, []string{}, nil)
	return writeMachinePayload(cmd, env, format, flags.Output)
}

func upstreamFailureMessage(response domain.Response, verbose bool) string {
	if verbose || strings.TrimSpace(response.ErrorMessage) == "" {
		return fallbackString(response.ErrorMessage, "search failed")
	}
	if idx := strings.Index(response.ErrorMessage, ";"); idx > 0 {
		return response.ErrorMessage[:idx] + " (use --verbose for details)"
	}
	return response.ErrorMessage
}

func buildListingTable(response domain.Response) string {
	headers := []string{"Name", "Rating", "Reviews", "Area/Station", "Genres", "Dinner", "Lunch", "Booking"}
	rows := make([][]string, 0, len(response.Listings))
	for _, listing := range response.Listings {
		rows = append(rows, []string{
			listing.Name,
			formatRating(listing.Rating),
			formatCount(listing.ReviewCount),
			fallbackString(listing.Station, fallbackString(listing.Area, "-")),
			fallbackString(strings.Join(listing.Genres, ", "), "-"),
			fallbackString(listing.DinnerPrice, "-"),
			fallbackString(listing.LunchPrice, "-"),
			boolToYesNo(listing.AcceptsReservation),
		})
	}

	title := fmt.Sprintf("Listings (%d)", len(response.Listings))
	if response.Meta != nil && response.Meta.TotalCount > 0 {
		title = fmt.Sprintf("Listings (%d of %d, %d page(s) fetched)", len(response.Listings), response.Meta.TotalCount, response.Meta.PagesFetched)
	}
	return output.RenderTable(title, headers, rows)
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*rating, 'f', 2, 64)
}

func formatCount(count *int) string {
	if count == nil {
		return "-"
	}
	return strconv.Itoa(*count)
}

func boolToYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
