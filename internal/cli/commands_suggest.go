package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
	"github.com/mekedron/tabelog-cli/internal/service/output"
)

func newSuggestCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var mode string

	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Query the autocomplete endpoint for area or keyword candidates.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			text := ""
			if len(args) > 0 {
				text = strings.TrimSpace(args[0])
			}
			if text == "" {
				return fmt.Errorf("%s", requiredArg("text argument"))
			}
			suggestMode, err := parseSuggestMode(mode)
			if err != nil {
				return err
			}
			profileLabel := resolveProfileLabel(flags.Profile)

			suggestions, err := deps.Tabelog.Suggest(cmd.Context(), suggestMode, text)
			if err != nil {
				return emitUpstreamError(cmd, format, profileLabel, flags.Output, flags.Verbose, err)
			}

			if format == output.FormatTable {
				if len(suggestions) == 0 {
					return writeTable(cmd, "No suggestions.", flags.Output)
				}
				return writeTable(cmd, buildSuggestionTable(text, suggestions), flags.Output)
			}
			env := output.BuildEnvelope(profileLabel, map[string]any{
				"mode":        string(suggestMode),
				"text":        text,
				"suggestions": suggestions,
			}, []string{}, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.SuggestArea), "Suggestion mode: area or keyword.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func parseSuggestMode(mode string) (domain.SuggestMode, error) {
	switch domain.SuggestMode(strings.ToLower(strings.TrimSpace(mode))) {
	case "", domain.SuggestArea:
		return domain.SuggestArea, nil
	case domain.SuggestKeyword:
		return domain.SuggestKeyword, nil
	default:
		return "", fmt.Errorf("unsupported suggest mode %q", mode)
	}
}

func buildSuggestionTable(text string, suggestions []domain.Suggestion) string {
	headers := []string{"ID", "Name"}
	rows := make([][]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		rows = append(rows, []string{
			fallbackString(suggestion.ID, "-"),
			suggestion.Name,
		})
	}
	return output.RenderTable("Suggestions for "+text, headers, rows)
}
