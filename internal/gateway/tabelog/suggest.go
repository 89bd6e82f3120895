package tabelog

import (
	"encoding/json"
	"strings"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

// rawSuggestion tolerates the id being delivered as either a string or a
// number, both of which the autocomplete endpoint has been seen returning.
type rawSuggestion struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

func (r rawSuggestion) toDomain() (domain.Suggestion, bool) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return domain.Suggestion{}, false
	}
	return domain.Suggestion{ID: decodeSuggestionID(r.ID), Name: name}, true
}

func decodeSuggestionID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}
	return ""
}

// parseSuggestions decodes the autocomplete payload. The endpoint answers
// either a wrapped object or a bare array; anything else counts as no
// suggestions rather than a failure.
func parseSuggestions(body string) []domain.Suggestion {
	raw := []byte(strings.TrimSpace(body))
	if len(raw) == 0 {
		return []domain.Suggestion{}
	}

	var candidates []rawSuggestion
	var wrapped struct {
		Suggestions []rawSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Suggestions != nil {
		candidates = wrapped.Suggestions
	} else {
		var bare []rawSuggestion
		if err := json.Unmarshal(raw, &bare); err != nil {
			return []domain.Suggestion{}
		}
		candidates = bare
	}

	suggestions := make([]domain.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		if suggestion, ok := candidate.toDomain(); ok {
			suggestions = append(suggestions, suggestion)
		}
	}
	return suggestions
}
