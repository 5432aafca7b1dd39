package plan

import "github.com/mealsmith/planner/internal/domain/recipe"

// AlternativeSuggestion is one ranked swap suggestion: a safe recipe,
// its preference score, and any dislike warnings the caller should show.
// Produced per request, never persisted.
type AlternativeSuggestion struct {
	Recipe   *recipe.Recipe
	Score    float64
	Warnings []string
}
