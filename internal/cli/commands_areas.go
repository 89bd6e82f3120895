package cli

import (
	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
	"github.com/mekedron/tabelog-cli/internal/service/output"
)

func newAreasCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "areas",
		Short: "List areas that map to path-scoped listing URLs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			profileLabel := resolveProfileLabel(flags.Profile)

			names := domain.AreaNames()
			type areaRow struct {
				Name string `json:"name" yaml:"name"`
				Slug string `json:"slug" yaml:"slug"`
			}
			areas := make([]areaRow, 0, len(names))
			for _, name := range names {
				slug, ok := domain.ResolveAreaSlug(name)
				if !ok {
					continue
				}
				areas = append(areas, areaRow{Name: name, Slug: slug})
			}

			if format == output.FormatTable {
				rows := make([][]string, 0, len(areas))
				for _, area := range areas {
					rows = append(rows, []string{area.Name, area.Slug})
				}
				return writeTable(cmd, output.RenderTable("Known areas", []string{"Area", "Slug"}, rows), flags.Output)
			}
			env := output.BuildEnvelope(profileLabel, map[string]any{"areas": areas}, []string{}, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}
