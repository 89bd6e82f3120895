package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var profileName string
	var area string
	var sortValue string
	var priceRange string
	var partySize int
	var maxPages int
	var concurrency int
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create and manage local profiles with saved search defaults.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := domain.ParseSortOrder(sortValue); err != nil {
				return err
			}
			if _, err := domain.ParsePriceRange(priceRange); err != nil {
				return err
			}
			if partySize < 0 {
				return fmt.Errorf("--party-size must be >= 0")
			}
			if maxPages < 0 {
				return fmt.Errorf("--max-pages must be >= 0")
			}
			if concurrency < 0 {
				return fmt.Errorf("--concurrency must be >= 0")
			}

			existingCfg, loadErr := deps.Config.Load(cmd.Context())
			hasExisting := loadErr == nil
			if hasExisting && !overwrite {
				index := findProfileIndex(existingCfg, profileName)
				if index < 0 {
					return fmt.Errorf("profile %q not found in existing config; pass --overwrite to start fresh", profileName)
				}
				applyProfileFlags(cmd, &existingCfg.Profiles[index], area, sortValue, priceRange, partySize, maxPages, concurrency)
				if err := deps.Config.Save(cmd.Context(), existingCfg); err != nil {
					return err
				}
				return writeTable(cmd, "🏁 Profile updated successfully!", "")
			}

			profile := domain.Profile{
				Name:      profileName,
				IsDefault: true,
			}
			applyProfileFlags(cmd, &profile, area, sortValue, priceRange, partySize, maxPages, concurrency)
			cfg := domain.Config{Profiles: []domain.Profile{profile}}
			if err := deps.Config.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			return writeTable(cmd, "🏁 Config was created successfully!", "")
		},
	}

	cmd.Flags().StringVar(&profileName, "profile-name", "Default", "Profile name")
	cmd.Flags().StringVar(&area, "area", "", "Default area applied when search commands omit --area.")
	cmd.Flags().StringVar(&sortValue, "sort", "", "Default sort order: standard, ranking, reviews, or new.")
	cmd.Flags().StringVar(&priceRange, "price-range", "", "Default budget band code, for example C004.")
	cmd.Flags().IntVar(&partySize, "party-size", 0, "Default party size for the reservation filter.")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Default maximum number of result pages to fetch.")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Default number of pages fetched in parallel.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing config")
	return cmd
}

func applyProfileFlags(
	cmd *cobra.Command,
	profile *domain.Profile,
	area, sortValue, priceRange string,
	partySize, maxPages, concurrency int,
) {
	if cmd.Flags().Changed("area") {
		profile.Area = strings.TrimSpace(area)
	}
	if cmd.Flags().Changed("sort") {
		profile.Sort = strings.TrimSpace(sortValue)
	}
	if cmd.Flags().Changed("price-range") {
		profile.PriceRange = strings.ToUpper(strings.TrimSpace(priceRange))
	}
	if cmd.Flags().Changed("party-size") {
		profile.PartySize = partySize
	}
	if cmd.Flags().Changed("max-pages") {
		profile.MaxPages = maxPages
	}
	if cmd.Flags().Changed("concurrency") {
		profile.Concurrency = concurrency
	}
}

func findProfileIndex(cfg domain.Config, profileName string) int {
	trimmed := strings.TrimSpace(profileName)
	if trimmed != "" {
		for i, profile := range cfg.Profiles {
			if strings.EqualFold(strings.TrimSpace(profile.Name), trimmed) {
				return i
			}
		}
	}
	for i, profile := range cfg.Profiles {
		if profile.IsDefault {
			return i
		}
	}
	if len(cfg.Profiles) == 1 {
		return 0
	}
	return -1
}
