package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository implements like/dislike persistence using GORM
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) outbound.RatingRepository {
	return &RatingRepository{db: db}
}

// SaveRating records one member's preference, replacing any earlier
// rating of the same recipe by the same member
func (r *RatingRepository) SaveRating(ctx context.Context, workspaceID, recipeID uuid.UUID, member string, preference recipe.Preference) error {
	if !preference.IsValid() {
		return recipe.ErrInvalidPreference
	}

	model := RecipeRatingModel{
		WorkspaceID: workspaceID,
		RecipeID:    recipeID,
		Member:      member,
		Preference:  string(preference),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "member"}},
			DoUpdates: clause.AssignmentColumns([]string{"preference", "updated_at"}),
		}).
		Create(&model).Error
}

// RatingsFor returns the full rating snapshot of a workspace
func (r *RatingRepository) RatingsFor(ctx context.Context, workspaceID uuid.UUID) (outbound.RatingSnapshot, error) {
	var models []RecipeRatingModel

	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshot := make(outbound.RatingSnapshot)
	for _, m := range models {
		if snapshot[m.RecipeID] == nil {
			snapshot[m.RecipeID] = make(map[string]recipe.Preference)
		}
		snapshot[m.RecipeID][m.Member] = recipe.Preference(m.Preference)
	}

	return snapshot, nil
}
