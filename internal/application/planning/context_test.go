package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"github.com/mealsmith/planner/test/testutils"
)

func TestBuildGenerationContext(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	t.Run("FullInputs_ShouldAssembleContext", func(t *testing.T) {
		// Arrange
		workspaceID := uuid.New()
		profile := testutils.NewProfileBuilder().
			WithWorkspace(workspaceID).
			WithMembers(
				household.FamilyMember{
					Name:        "Dana",
					AgeGroup:    household.AgeGroupAdult,
					Allergies:   []string{"peanut"},
					Preferences: []string{"spicy food"},
				},
				household.FamilyMember{
					Name:     "Riley",
					AgeGroup: household.AgeGroupChild,
					Dislikes: []string{"mushrooms"},
				},
			).
			WithCookingMethods("oven", "slow cooker").
			WithTimeCeiling(household.PeriodWeekday, 30*time.Minute).
			WithTimeCeiling(household.PeriodWeekend, 90*time.Minute).
			WithWeeknightPriority("quick cleanup").
			MustBuild()
		candidate := typedRecipe(t, "Evening Roast", recipe.MealTypeDinner)

		// Act
		genCtx, mode := BuildGenerationContext(ContextInputs{
			WorkspaceID: workspaceID,
			WeekStart:   weekStart,
			Profile:     profile,
			Groceries: []household.GroceryItem{
				testutils.FreshGrocery("rice", now),
				testutils.ExpiringGrocery("spinach", now),
			},
			Candidates: plan.CandidateSet{
				Recipes: []*recipe.Recipe{candidate},
				Coverage: map[recipe.MealType]int{
					recipe.MealTypeBreakfast: 1,
					recipe.MealTypeLunch:     1,
					recipe.MealTypeDinner:    1,
				},
			},
			FreeText:          "  use up the spinach  ",
			ExpiryWindowDays:  2,
			CoverageThreshold: 1,
			Now:               now,
		})

		// Assert
		assert.Equal(t, plan.CoverageModeGood, mode)
		assert.Equal(t, workspaceID, genCtx.WorkspaceID)
		assert.Equal(t, weekStart, genCtx.WeekStart)
		assert.Equal(t, "use up the spinach", genCtx.FreeText)
		assert.Equal(t, string(plan.CoverageModeGood), genCtx.CoverageMode)

		require.Len(t, genCtx.Household.Members, 2)
		assert.Equal(t, "Dana", genCtx.Household.Members[0].Name)
		assert.Equal(t, "adult", genCtx.Household.Members[0].AgeGroup)
		assert.Equal(t, []string{"peanut"}, genCtx.Household.Members[0].Allergies)
		assert.Equal(t, []string{"spicy food"}, genCtx.Household.Members[0].Preferences)
		assert.Equal(t, []string{"mushrooms"}, genCtx.Household.Members[1].Dislikes)
		assert.Equal(t, []string{"oven", "slow cooker"}, genCtx.Household.CookingMethods)
		assert.Equal(t, map[string]int{"weekday": 30, "weekend": 90}, genCtx.Household.TimeCeilings)
		assert.Equal(t, "quick cleanup", genCtx.Household.WeeknightPriority)

		require.Len(t, genCtx.Groceries, 2)
		assert.Equal(t, "spinach", genCtx.Groceries[0].Name)
		assert.True(t, genCtx.Groceries[0].ExpiringSoon)
		assert.Equal(t, "rice", genCtx.Groceries[1].Name)
		assert.False(t, genCtx.Groceries[1].ExpiringSoon)

		require.Len(t, genCtx.Candidates, 1)
		assert.Equal(t, candidate.ID(), genCtx.Candidates[0].ID)
		assert.Equal(t, "Evening Roast", genCtx.Candidates[0].Title)
	})

	t.Run("NilProfile_ShouldYieldEmptyHousehold", func(t *testing.T) {
		// Act
		genCtx, _ := BuildGenerationContext(ContextInputs{
			WorkspaceID: uuid.New(),
			WeekStart:   weekStart,
			Now:         now,
		})

		// Assert
		assert.Empty(t, genCtx.Household.Members)
		assert.Nil(t, genCtx.Household.TimeCeilings)
		assert.Empty(t, genCtx.Household.WeeknightPriority)
	})

	t.Run("ExpiringGroceries_ShouldComeFirstKeepingOrder", func(t *testing.T) {
		// Arrange: flags alternate; relative order within each group
		// must survive the reshuffle
		groceries := []household.GroceryItem{
			testutils.FreshGrocery("rice", now),
			testutils.ExpiringGrocery("spinach", now),
			testutils.UndatedGrocery("salt"),
			testutils.ExpiringGrocery("yogurt", now),
		}

		// Act
		genCtx, _ := BuildGenerationContext(ContextInputs{
			Groceries:        groceries,
			ExpiryWindowDays: 2,
			Now:              now,
		})

		// Assert
		names := make([]string, len(genCtx.Groceries))
		for i, g := range genCtx.Groceries {
			names[i] = g.Name
		}
		assert.Equal(t, []string{"spinach", "yogurt", "rice", "salt"}, names)
	})

	t.Run("NoGroceries_ShouldYieldNilSlice", func(t *testing.T) {
		genCtx, _ := BuildGenerationContext(ContextInputs{Now: now})

		assert.Nil(t, genCtx.Groceries)
	})

	t.Run("SnapshotRating_ShouldWinOverEmbedded", func(t *testing.T) {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Evening Roast").
			WithMealTypes(recipe.MealTypeDinner).
			WithRating("Alex", recipe.PreferenceLike).
			MustBuild()

		// Act
		genCtx, _ := BuildGenerationContext(ContextInputs{
			Candidates: plan.CandidateSet{Recipes: []*recipe.Recipe{r}},
			Ratings: outbound.RatingSnapshot{
				r.ID(): {"Alex": recipe.PreferenceDislike},
			},
			Now: now,
		})

		// Assert
		require.Len(t, genCtx.Candidates, 1)
		assert.Equal(t, map[string]string{"Alex": "dislike"}, genCtx.Candidates[0].Ratings)
	})

	t.Run("MissingSnapshotEntry_ShouldFallBackToEmbeddedRatings", func(t *testing.T) {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Evening Roast").
			WithMealTypes(recipe.MealTypeDinner).
			WithRating("Alex", recipe.PreferenceLike).
			MustBuild()

		// Act: snapshot knows about a different recipe only
		genCtx, _ := BuildGenerationContext(ContextInputs{
			Candidates: plan.CandidateSet{Recipes: []*recipe.Recipe{r}},
			Ratings: outbound.RatingSnapshot{
				uuid.New(): {"Alex": recipe.PreferenceDislike},
			},
			Now: now,
		})

		// Assert
		require.Len(t, genCtx.Candidates, 1)
		assert.Equal(t, map[string]string{"Alex": "like"}, genCtx.Candidates[0].Ratings)
	})

	t.Run("NoRatingsAnywhere_ShouldLeaveRatingsNil", func(t *testing.T) {
		// Arrange
		r := typedRecipe(t, "Evening Roast", recipe.MealTypeDinner)

		// Act
		genCtx, _ := BuildGenerationContext(ContextInputs{
			Candidates: plan.CandidateSet{Recipes: []*recipe.Recipe{r}},
			Now:        now,
		})

		// Assert
		require.Len(t, genCtx.Candidates, 1)
		assert.Nil(t, genCtx.Candidates[0].Ratings)
	})

	t.Run("CandidateDetails_ShouldCarryDeclaredMealTypes", func(t *testing.T) {
		// Arrange: a side dish serves lunch and dinner, but the
		// generator sees the declared type only
		r := testutils.NewRecipeBuilder().
			WithTitle("Cheesy Garlic Bread").
			WithMealTypes(recipe.MealTypeSideDish).
			WithIngredientNames("bread", "cheese", "garlic").
			WithTimings(10*time.Minute, 15*time.Minute).
			WithServings(6).
			MustBuild()

		// Act
		genCtx, _ := BuildGenerationContext(ContextInputs{
			Candidates: plan.CandidateSet{Recipes: []*recipe.Recipe{r}},
			Now:        now,
		})

		// Assert
		require.Len(t, genCtx.Candidates, 1)
		rc := genCtx.Candidates[0]
		assert.Equal(t, []string{"side_dish"}, rc.MealTypes)
		assert.Equal(t, []string{"bread", "cheese", "garlic"}, rc.Ingredients)
		assert.Equal(t, 10, rc.PrepMinutes)
		assert.Equal(t, 15, rc.CookMinutes)
		assert.Equal(t, 6, rc.Servings)
	})

	t.Run("EmptyCandidates_ShouldReportNoLibraryMode", func(t *testing.T) {
		// Act
		genCtx, mode := BuildGenerationContext(ContextInputs{
			CoverageThreshold: 2,
			Now:               now,
		})

		// Assert
		assert.Equal(t, plan.CoverageModeNoLibrary, mode)
		assert.Equal(t, string(plan.CoverageModeNoLibrary), genCtx.CoverageMode)
		assert.Nil(t, genCtx.Candidates)
	})

	t.Run("UnderThresholdCoverage_ShouldReportGapsMode", func(t *testing.T) {
		// Arrange
		r := typedRecipe(t, "Evening Roast", recipe.MealTypeDinner)

		// Act
		_, mode := BuildGenerationContext(ContextInputs{
			Candidates: plan.CandidateSet{
				Recipes: []*recipe.Recipe{r},
				Coverage: map[recipe.MealType]int{
					recipe.MealTypeBreakfast: 0,
					recipe.MealTypeLunch:     2,
					recipe.MealTypeDinner:    2,
				},
			},
			CoverageThreshold: 2,
			Now:               now,
		})

		// Assert
		assert.Equal(t, plan.CoverageModeGaps, mode)
	})
}

func TestGenerationInstruction(t *testing.T) {
	header := "Create a 7-day weekly meal plan for this household.\n"
	footer := "Plan breakfast, lunch and dinner for every day.\n" +
		"Use groceries flagged as expiring soon early in the week.\n" +
		"Respect every allergy strictly. Avoid disliked ingredients where reasonable."

	t.Run("GoodCoverage_ShouldReferenceCandidatesByID", func(t *testing.T) {
		instruction := GenerationInstruction(plan.CoverageModeGood)

		expected := header +
			"Build the plan from the candidate recipes; they cover every core meal slot well. Reference candidates by id and prefer the ones household members like.\n" +
			footer
		assert.Equal(t, expected, instruction)
	})

	t.Run("Gaps_ShouldAllowInventedFillMeals", func(t *testing.T) {
		instruction := GenerationInstruction(plan.CoverageModeGaps)

		expected := header +
			"Use the candidate recipes where they fit. Some meal slots have few or no candidates; fill those with simple new meals in the same spirit as the library.\n" +
			footer
		assert.Equal(t, expected, instruction)
	})

	t.Run("NoLibrary_ShouldInventTheWholeWeek", func(t *testing.T) {
		instruction := GenerationInstruction(plan.CoverageModeNoLibrary)

		expected := header +
			"There are no candidate recipes. Invent a complete week of simple meals suited to this household.\n" +
			footer
		assert.Equal(t, expected, instruction)
	})
}
