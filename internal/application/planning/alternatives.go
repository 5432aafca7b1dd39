package planning

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
)

// SuggestAlternatives composes constraint checking, meal-type filtering
// and swap scoring into ranked replacement suggestions for one meal
// slot. Two documented relaxations keep the caller from ever being left
// empty-handed: an empty meal-type filter falls back to the whole
// library, and an exclusion that empties the pool falls back to
// everything minus the exclusions. Unsafe recipes are dropped outright;
// safe ones carry their dislike warnings. Stable sort, descending by
// score, capped at limit. Pure.
func SuggestAlternatives(
	library []*recipe.Recipe,
	mealType recipe.MealType,
	excludeIDs []uuid.UUID,
	profile *household.Profile,
	ratings outbound.RatingSnapshot,
	limit int,
) []plan.AlternativeSuggestion {
	filtered := make([]*recipe.Recipe, 0, len(library))
	for _, r := range library {
		if r.CoversMealType(mealType) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		filtered = library
	}

	excluded := make(map[uuid.UUID]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	remaining := withoutExcluded(filtered, excluded)
	if len(remaining) == 0 {
		remaining = withoutExcluded(library, excluded)
	}

	suggestions := make([]plan.AlternativeSuggestion, 0, len(remaining))
	for _, r := range remaining {
		safe, warnings := CheckConstraints(r, profile)
		if !safe {
			continue
		}
		suggestions = append(suggestions, plan.AlternativeSuggestion{
			Recipe:   r,
			Score:    ScoreSwap(r, ratings.ForRecipe(r.ID()), profile),
			Warnings: warnings,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// withoutExcluded filters a recipe list by an exclusion set, keeping
// order
func withoutExcluded(recipes []*recipe.Recipe, excluded map[uuid.UUID]bool) []*recipe.Recipe {
	out := make([]*recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !excluded[r.ID()] {
			out = append(out, r)
		}
	}
	return out
}
