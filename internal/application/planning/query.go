package planning

import (
	"fmt"
	"strings"

	"github.com/mealsmith/planner/internal/domain/household"
)

const (
	// FallbackQuery is returned when nothing else contributes a fragment
	FallbackQuery = "family-friendly recipes"

	// maxFreeTextChars caps how much of the free-text context feeds the
	// retrieval query
	maxFreeTextChars = 150

	// maxQueryGroceries caps how many pantry names feed the retrieval
	// query
	maxQueryGroceries = 10
)

// ComposeQuery turns household state, pantry contents and free-text
// context into the natural-language query handed to similarity search.
// Fragments are gathered in a fixed order (user intent first, then
// pantry, then cooking preferences) and joined with single spaces. Pure.
func ComposeQuery(profile *household.Profile, groceries []household.GroceryItem, freeText string) string {
	var fragments []string

	if text := strings.TrimSpace(freeText); text != "" {
		fragments = append(fragments, truncateChars(text, maxFreeTextChars))
	}

	if len(groceries) > 0 {
		names := make([]string, 0, maxQueryGroceries)
		for _, g := range groceries {
			if len(names) == maxQueryGroceries {
				break
			}
			names = append(names, g.Name)
		}
		fragments = append(fragments, fmt.Sprintf("recipes using %s", strings.Join(names, ", ")))
	}

	if profile != nil {
		fragments = append(fragments, profile.CookingMethods()...)
		if phrase := profile.WeeknightPriority(); phrase != "" {
			fragments = append(fragments, phrase)
		}
	}

	if len(fragments) == 0 {
		return FallbackQuery
	}
	return strings.Join(fragments, " ")
}

// truncateChars shortens a string to at most n characters, counting
// runes rather than bytes
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
