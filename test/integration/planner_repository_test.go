// Package integration exercises the planner adapters against a real
// Postgres instance via testcontainers.
//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
	gormrepo "github.com/mealsmith/planner/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"github.com/mealsmith/planner/test/testutils"
)

// PlannerRepositoryIntegrationTestSuite runs the GORM repositories
// against the versioned Postgres schema instead of sqlite AutoMigrate
type PlannerRepositoryIntegrationTestSuite struct {
	suite.Suite
	testDB     *testutils.TestDatabase
	recipes    outbound.RecipeRepository
	ratings    outbound.RatingRepository
	households outbound.HouseholdRepository
	ctx        context.Context
}

func (suite *PlannerRepositoryIntegrationTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	suite.testDB = testutils.SetupTestDatabase(suite.T())

	err := suite.testDB.RunMigrations()
	require.NoError(suite.T(), err, "Failed to run database migrations")

	suite.recipes = gormrepo.NewRecipeRepository(suite.testDB.GormDB)
	suite.ratings = gormrepo.NewRatingRepository(suite.testDB.GormDB)
	suite.households = gormrepo.NewHouseholdRepository(suite.testDB.GormDB)
}

func (suite *PlannerRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.testDB.TruncateAllTables()
	require.NoError(suite.T(), err, "Failed to clean database")
}

// TestRecipeRoundTrip proves the json columns of the versioned schema
// carry the full recipe shape
func (suite *PlannerRepositoryIntegrationTestSuite) TestRecipeRoundTrip() {
	// Arrange
	workspaceID := uuid.New()
	original := testutils.NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle("Berry Oatmeal Bowl").
		WithIngredientNames("rolled oats", "blueberries", "almond milk").
		WithTags("quick", "vegetarian").
		WithMealTypes(recipe.MealTypeBreakfast, recipe.MealTypeSnack).
		WithTimings(10*time.Minute, 5*time.Minute).
		WithServings(2).
		WithAppliances(recipe.ApplianceStovetop).
		WithRating("Dana", recipe.PreferenceLike).
		MustBuild()

	// Act
	err := suite.recipes.Create(suite.ctx, original)
	require.NoError(suite.T(), err)

	found, err := suite.recipes.FindByID(suite.ctx, workspaceID, original.ID())

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Berry Oatmeal Bowl", found.Title())
	assert.Equal(suite.T(), []string{"quick", "vegetarian"}, found.Tags())
	assert.Equal(suite.T(), recipe.MealTypes{recipe.MealTypeBreakfast, recipe.MealTypeSnack}, found.MealTypes())
	assert.True(suite.T(), found.MealTypesExplicit())
	assert.Equal(suite.T(), []recipe.ApplianceType{recipe.ApplianceStovetop}, found.Appliances())
	assert.Equal(suite.T(), 2, found.Servings())
	assert.Equal(suite.T(), 10*time.Minute, found.PrepTime())
	assert.Equal(suite.T(), 5*time.Minute, found.CookTime())

	names := make([]string, 0, len(found.Ingredients()))
	for _, ingredient := range found.Ingredients() {
		names = append(names, ingredient.Name)
	}
	assert.Equal(suite.T(), []string{"rolled oats", "blueberries", "almond milk"}, names)
	assert.Equal(suite.T(), recipe.PreferenceLike, found.Ratings()["Dana"])
}

func (suite *PlannerRepositoryIntegrationTestSuite) TestRecipeUpdatePersists() {
	// Arrange
	workspaceID := uuid.New()
	original := testutils.NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle("Lentil Curry").
		WithIngredientNames("red lentils", "coconut milk").
		MustBuild()
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, original))

	// Act
	require.NoError(suite.T(), original.UpdateTitle("Lentil Curry Deluxe"))
	require.NoError(suite.T(), original.SetServings(6))
	err := suite.recipes.Update(suite.ctx, original)

	// Assert
	require.NoError(suite.T(), err)
	found, err := suite.recipes.FindByID(suite.ctx, workspaceID, original.ID())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Lentil Curry Deluxe", found.Title())
	assert.Equal(suite.T(), 6, found.Servings())
}

func (suite *PlannerRepositoryIntegrationTestSuite) TestRecipeSoftDeleteKeepsRow() {
	// Arrange
	workspaceID := uuid.New()
	keep := testutils.NewRecipeBuilder().WithWorkspace(workspaceID).WithTitle("Keeper Stew").MustBuild()
	drop := testutils.NewRecipeBuilder().WithWorkspace(workspaceID).WithTitle("Dropped Stew").MustBuild()
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, keep))
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, drop))

	// Act
	err := suite.recipes.Delete(suite.ctx, workspaceID, drop.ID())

	// Assert
	require.NoError(suite.T(), err)

	listed, err := suite.recipes.ListAll(suite.ctx, workspaceID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)
	assert.Equal(suite.T(), "Keeper Stew", listed[0].Title())

	_, err = suite.recipes.FindByID(suite.ctx, workspaceID, drop.ID())
	assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)

	// The row survives soft deletion.
	var total int
	err = suite.testDB.DB.QueryRow("SELECT COUNT(*) FROM recipes WHERE workspace_id = $1", workspaceID.String()).Scan(&total)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, total)
}

// TestRatingUpsert proves ON CONFLICT lands on the unique
// (recipe_id, member) index of the versioned schema
func (suite *PlannerRepositoryIntegrationTestSuite) TestRatingUpsert() {
	// Arrange
	workspaceID := uuid.New()
	dish := testutils.NewRecipeBuilder().WithWorkspace(workspaceID).WithTitle("Taco Night").MustBuild()
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, dish))

	// Act
	require.NoError(suite.T(), suite.ratings.SaveRating(suite.ctx, workspaceID, dish.ID(), "Dana", recipe.PreferenceLike))
	require.NoError(suite.T(), suite.ratings.SaveRating(suite.ctx, workspaceID, dish.ID(), "Dana", recipe.PreferenceDislike))
	require.NoError(suite.T(), suite.ratings.SaveRating(suite.ctx, workspaceID, dish.ID(), "Riley", recipe.PreferenceLike))

	// Assert
	snapshot, err := suite.ratings.RatingsFor(suite.ctx, workspaceID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]recipe.Preference{
		"Dana":  recipe.PreferenceDislike,
		"Riley": recipe.PreferenceLike,
	}, snapshot.ForRecipe(dish.ID()))

	var rows int
	err = suite.testDB.DB.QueryRow("SELECT COUNT(*) FROM recipe_ratings WHERE recipe_id = $1", dish.ID().String()).Scan(&rows)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, rows)
}

func (suite *PlannerRepositoryIntegrationTestSuite) TestHouseholdProfileRoundTrip() {
	// Arrange
	workspaceID := uuid.New()
	profile := testutils.NewProfileBuilder().
		WithWorkspace(workspaceID).
		WithMembers(
			household.FamilyMember{Name: "Dana", AgeGroup: household.AgeGroupAdult, Allergies: []string{"peanut"}},
			household.FamilyMember{Name: "Riley", AgeGroup: household.AgeGroupChild, Dislikes: []string{"mushrooms"}},
		).
		WithCookingMethods("oven", "slow cooker").
		WithTimeCeiling(household.PeriodWeekday, 30*time.Minute).
		WithWeeknightPriority("quick vegetarian dinners").
		MustBuild()

	// Act
	require.NoError(suite.T(), suite.households.Save(suite.ctx, profile))

	found, err := suite.households.FindByWorkspace(suite.ctx, workspaceID)

	// Assert
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Dana", "Riley"}, found.MemberNames())
	assert.Equal(suite.T(), []string{"oven", "slow cooker"}, found.CookingMethods())
	ceiling, ok := found.TimeCeiling(household.PeriodWeekday)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), 30*time.Minute, ceiling)
	assert.Equal(suite.T(), "quick vegetarian dinners", found.WeeknightPriority())

	// A second save of the loaded profile updates in place; the
	// workspace unique index would reject a duplicate row.
	found.SetWeeknightPriority("one-pot meals")
	require.NoError(suite.T(), suite.households.Save(suite.ctx, found))

	var rows int
	err = suite.testDB.DB.QueryRow("SELECT COUNT(*) FROM household_profiles WHERE workspace_id = $1", workspaceID.String()).Scan(&rows)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, rows)

	reloaded, err := suite.households.FindByWorkspace(suite.ctx, workspaceID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "one-pot meals", reloaded.WeeknightPriority())
}

func (suite *PlannerRepositoryIntegrationTestSuite) TestGroceriesReplaceAndKeepOrder() {
	// Arrange
	workspaceID := uuid.New()
	now := time.Now().UTC()

	first := []household.GroceryItem{
		testutils.FreshGrocery("rice", now),
		testutils.ExpiringGrocery("spinach", now),
	}
	require.NoError(suite.T(), suite.households.SaveGroceries(suite.ctx, workspaceID, first))

	// Act
	second := []household.GroceryItem{
		testutils.ExpiringGrocery("yogurt", now),
		testutils.UndatedGrocery("salt"),
		testutils.FreshGrocery("lemons", now),
	}
	require.NoError(suite.T(), suite.households.SaveGroceries(suite.ctx, workspaceID, second))

	// Assert
	items, err := suite.households.GroceriesFor(suite.ctx, workspaceID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 3)
	assert.Equal(suite.T(), "yogurt", items[0].Name)
	assert.Equal(suite.T(), "salt", items[1].Name)
	assert.Equal(suite.T(), "lemons", items[2].Name)

	require.NotNil(suite.T(), items[0].ExpiresAt)
	assert.WithinDuration(suite.T(), *second[0].ExpiresAt, *items[0].ExpiresAt, time.Second)
	assert.Nil(suite.T(), items[1].PurchasedAt)
	assert.Nil(suite.T(), items[1].ExpiresAt)
}

func (suite *PlannerRepositoryIntegrationTestSuite) TestWorkspaceIsolation() {
	// Arrange
	mineID := uuid.New()
	otherID := uuid.New()
	mine := testutils.NewRecipeBuilder().WithWorkspace(mineID).WithTitle("My Stir Fry").MustBuild()
	other := testutils.NewRecipeBuilder().WithWorkspace(otherID).WithTitle("Their Stir Fry").MustBuild()
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, mine))
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, other))

	// Act
	listed, err := suite.recipes.ListAll(suite.ctx, mineID)

	// Assert
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)
	assert.Equal(suite.T(), "My Stir Fry", listed[0].Title())

	_, err = suite.recipes.FindByID(suite.ctx, mineID, other.ID())
	assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)
}

func TestPlannerRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PlannerRepositoryIntegrationTestSuite))
}
