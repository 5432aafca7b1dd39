package planning

import (
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

const (
	// swapBaseScore is the neutral score of an unrated recipe
	swapBaseScore = 0.5

	// swapRatingWeight is how much one member's rating moves the score
	swapRatingWeight = 0.3
)

// ScoreSwap rates how desirable a recipe is as a replacement, from the
// household's recorded likes and dislikes. Starts neutral, moves by
// swapRatingWeight per member rating, and clamps into [0, 1]. Members
// without a rating leave the score untouched. When the ratings snapshot
// carries nothing for this recipe, the recipe's own embedded ratings
// are used instead. Pure and deterministic.
func ScoreSwap(r *recipe.Recipe, ratings map[string]recipe.Preference, profile *household.Profile) float64 {
	if ratings == nil && r != nil {
		ratings = r.Ratings()
	}

	score := swapBaseScore
	if profile != nil {
		for _, member := range profile.Members() {
			switch ratings[member.Name] {
			case recipe.PreferenceLike:
				score += swapRatingWeight
			case recipe.PreferenceDislike:
				score -= swapRatingWeight
			}
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
