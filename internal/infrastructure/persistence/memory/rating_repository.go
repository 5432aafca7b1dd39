package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
)

// RatingRepository implements like/dislike persistence in memory
type RatingRepository struct {
	mutex   sync.RWMutex
	ratings map[uuid.UUID]outbound.RatingSnapshot
}

// NewRatingRepository creates a new in-memory rating repository
func NewRatingRepository() outbound.RatingRepository {
	return &RatingRepository{
		ratings: make(map[uuid.UUID]outbound.RatingSnapshot),
	}
}

// SaveRating records one member's preference for a recipe, replacing any
// earlier rating by the same member
func (r *RatingRepository) SaveRating(ctx context.Context, workspaceID, recipeID uuid.UUID, member string, preference recipe.Preference) error {
	if !preference.IsValid() {
		return recipe.ErrInvalidPreference
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	snapshot := r.ratings[workspaceID]
	if snapshot == nil {
		snapshot = make(outbound.RatingSnapshot)
		r.ratings[workspaceID] = snapshot
	}
	if snapshot[recipeID] == nil {
		snapshot[recipeID] = make(map[string]recipe.Preference)
	}
	snapshot[recipeID][member] = preference
	return nil
}

// RatingsFor returns a copy of the workspace rating snapshot
func (r *RatingRepository) RatingsFor(ctx context.Context, workspaceID uuid.UUID) (outbound.RatingSnapshot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot := r.ratings[workspaceID]
	out := make(outbound.RatingSnapshot, len(snapshot))
	for recipeID, byMember := range snapshot {
		copied := make(map[string]recipe.Preference, len(byMember))
		for member, preference := range byMember {
			copied[member] = preference
		}
		out[recipeID] = copied
	}
	return out, nil
}
