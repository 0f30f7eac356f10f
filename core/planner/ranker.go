package planner

import (
	"sort"

	"github.com/kennelops/kennelplan/core/model"
)

// maxSuggestions caps how many ranked suggestions one request returns.
const maxSuggestions = 5

// rankSuggestions orders suggestions ascending by score, ties preserving
// assembly order, and truncates to the cap.
func rankSuggestions(suggestions []model.TeamSuggestion) []model.TeamSuggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score < suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
