package planning

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/test/testutils"
)

func TestComposeQuery(t *testing.T) {
	t.Run("AllSources_ShouldJoinInFixedOrder", func(t *testing.T) {
		// Arrange
		profile := testutils.NewProfileBuilder().
			WithCookingMethods("oven", "slow cooker").
			WithWeeknightPriority("quick cleanup").
			MustBuild()
		groceries := []household.GroceryItem{
			testutils.UndatedGrocery("spinach"),
			testutils.UndatedGrocery("eggs"),
		}

		// Act
		query := ComposeQuery(profile, groceries, "use up the spinach")

		// Assert: intent, then pantry, then cooking preferences
		assert.Equal(t,
			"use up the spinach recipes using spinach, eggs oven slow cooker quick cleanup",
			query,
		)
	})

	t.Run("NoInputs_ShouldFallBack", func(t *testing.T) {
		query := ComposeQuery(nil, nil, "")

		assert.Equal(t, FallbackQuery, query)
	})

	t.Run("BlankFreeText_ShouldBeSkipped", func(t *testing.T) {
		query := ComposeQuery(nil, []household.GroceryItem{testutils.UndatedGrocery("rice")}, "   ")

		assert.Equal(t, "recipes using rice", query)
	})

	t.Run("LongFreeText_ShouldTruncateTo150Chars", func(t *testing.T) {
		// Arrange
		freeText := strings.Repeat("meal ideas ", 30)

		// Act
		query := ComposeQuery(nil, nil, freeText)

		// Assert
		assert.Len(t, []rune(query), 150)
		assert.True(t, strings.HasPrefix(query, "meal ideas"))
	})

	t.Run("MultibyteFreeText_ShouldTruncateByRunes", func(t *testing.T) {
		freeText := strings.Repeat("味", 200)

		query := ComposeQuery(nil, nil, freeText)

		assert.Equal(t, 150, len([]rune(query)))
	})

	t.Run("ManyGroceries_ShouldCapAtTen", func(t *testing.T) {
		// Arrange
		groceries := make([]household.GroceryItem, 15)
		for i := range groceries {
			groceries[i] = testutils.UndatedGrocery(fmt.Sprintf("item%d", i))
		}

		// Act
		query := ComposeQuery(nil, groceries, "")

		// Assert: first ten in pantry order, the rest dropped
		assert.Contains(t, query, "item0")
		assert.Contains(t, query, "item9")
		assert.NotContains(t, query, "item10")
	})

	t.Run("ProfileWithoutPreferences_ShouldAddNothing", func(t *testing.T) {
		profile := testutils.NewProfileBuilder().MustBuild()

		query := ComposeQuery(profile, nil, "comfort food")

		assert.Equal(t, "comfort food", query)
	})

	t.Run("OnlyCookingMethods_ShouldStillCompose", func(t *testing.T) {
		profile := testutils.NewProfileBuilder().
			WithCookingMethods("air fryer").
			MustBuild()

		query := ComposeQuery(profile, nil, "")

		assert.Equal(t, "air fryer", query)
	})
}
