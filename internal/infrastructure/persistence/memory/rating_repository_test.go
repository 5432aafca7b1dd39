package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsmith/planner/internal/domain/recipe"
)

func TestRatingRepository_SaveAndSnapshot(t *testing.T) {
	repo := NewRatingRepository()
	ctx := context.Background()

	t.Run("SavedRatings_ShouldAppearInSnapshot", func(t *testing.T) {
		// Arrange
		workspaceID := uuid.New()
		recipeID := uuid.New()

		// Act
		require.NoError(t, repo.SaveRating(ctx, workspaceID, recipeID, "Dana", recipe.PreferenceLike))
		require.NoError(t, repo.SaveRating(ctx, workspaceID, recipeID, "Riley", recipe.PreferenceDislike))

		// Assert
		snapshot, err := repo.RatingsFor(ctx, workspaceID)
		require.NoError(t, err)
		assert.Equal(t, map[string]recipe.Preference{
			"Dana":  recipe.PreferenceLike,
			"Riley": recipe.PreferenceDislike,
		}, snapshot.ForRecipe(recipeID))
	})

	t.Run("SameMember_ShouldOverwriteEarlierRating", func(t *testing.T) {
		// Arrange
		workspaceID := uuid.New()
		recipeID := uuid.New()
		require.NoError(t, repo.SaveRating(ctx, workspaceID, recipeID, "Dana", recipe.PreferenceLike))

		// Act
		require.NoError(t, repo.SaveRating(ctx, workspaceID, recipeID, "Dana", recipe.PreferenceDislike))

		// Assert
		snapshot, err := repo.RatingsFor(ctx, workspaceID)
		require.NoError(t, err)
		assert.Equal(t, recipe.PreferenceDislike, snapshot.ForRecipe(recipeID)["Dana"])
	})

	t.Run("InvalidPreference_ShouldBeRejected", func(t *testing.T) {
		err := repo.SaveRating(ctx, uuid.New(), uuid.New(), "Dana", recipe.Preference("meh"))

		assert.ErrorIs(t, err, recipe.ErrInvalidPreference)
	})

	t.Run("EmptyWorkspace_ShouldReturnEmptySnapshot", func(t *testing.T) {
		snapshot, err := repo.RatingsFor(ctx, uuid.New())

		require.NoError(t, err)
		assert.NotNil(t, snapshot)
		assert.Empty(t, snapshot)
	})

	t.Run("Snapshot_ShouldBeACopy", func(t *testing.T) {
		// Arrange
		workspaceID := uuid.New()
		recipeID := uuid.New()
		require.NoError(t, repo.SaveRating(ctx, workspaceID, recipeID, "Dana", recipe.PreferenceLike))

		// Act: mutate the returned snapshot
		snapshot, err := repo.RatingsFor(ctx, workspaceID)
		require.NoError(t, err)
		snapshot.ForRecipe(recipeID)["Dana"] = recipe.PreferenceDislike

		// Assert: the stored rating is untouched
		again, err := repo.RatingsFor(ctx, workspaceID)
		require.NoError(t, err)
		assert.Equal(t, recipe.PreferenceLike, again.ForRecipe(recipeID)["Dana"])
	})
}
