package recipe

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
	workspaceID uuid.UUID
}

// SetupTest resets the workspace for each test
func (suite *RecipeTestSuite) SetupTest() {
	suite.workspaceID = uuid.New()
}

// TestRecipeCreation tests recipe creation scenarios
func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidTitle_ShouldCreateSuccessfully", func() {
		// Arrange
		title := "Sheet Pan Salmon"

		// Act
		r, err := NewRecipe(suite.workspaceID, title)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), r)

		assert.Equal(suite.T(), title, r.Title())
		assert.Equal(suite.T(), suite.workspaceID, r.WorkspaceID())
		assert.NotEqual(suite.T(), uuid.Nil, r.ID())
		assert.NotZero(suite.T(), r.createdAt)
		assert.NotZero(suite.T(), r.updatedAt)

		// Check domain events
		events := r.Events()
		assert.Len(suite.T(), events, 1)

		createdEvent, ok := events[0].(RecipeCreatedEvent)
		assert.True(suite.T(), ok, "Should emit RecipeCreatedEvent")
		assert.Equal(suite.T(), r.ID(), createdEvent.RecipeID)
		assert.Equal(suite.T(), suite.workspaceID, createdEvent.WorkspaceID)
	})

	suite.Run("NewRecipe_ShouldInferMealTypesFromTitle", func() {
		// Act
		r, err := NewRecipe(suite.workspaceID, "Berry Oatmeal with Honey")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeBreakfast}, r.MealTypes())
		assert.False(suite.T(), r.MealTypesExplicit())
	})

	suite.Run("ShortTitle_ShouldReturnError", func() {
		// Act
		r, err := NewRecipe(suite.workspaceID, "ab")

		// Assert
		assert.ErrorIs(suite.T(), err, ErrTitleTooShort)
		assert.Nil(suite.T(), r)
	})

	suite.Run("LongTitle_ShouldReturnError", func() {
		// Arrange
		title := strings.Repeat("x", 201)

		// Act
		r, err := NewRecipe(suite.workspaceID, title)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrTitleTooLong)
		assert.Nil(suite.T(), r)
	})
}

// TestMealTypeDeclaration tests explicit meal-type handling
func (suite *RecipeTestSuite) TestMealTypeDeclaration() {
	suite.Run("ExplicitSet_ShouldOverrideInference", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Chicken Caesar Wrap")
		require.NoError(suite.T(), err)
		r.Events()

		// Act
		err = r.SetMealTypes(MealTypes{MealTypeDinner})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeDinner}, r.MealTypes())
		assert.True(suite.T(), r.MealTypesExplicit())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		setEvent, ok := events[0].(RecipeMealTypesSetEvent)
		assert.True(suite.T(), ok, "Should emit RecipeMealTypesSetEvent")
		assert.Equal(suite.T(), MealTypes{MealTypeDinner}, setEvent.MealTypes)
	})

	suite.Run("UnknownToken_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garlic Butter Pasta")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetMealTypes(MealTypes{MealType("brunch")})

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidMealType)
		assert.False(suite.T(), r.MealTypesExplicit())
	})

	suite.Run("Duplicates_ShouldBeDeduped", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garlic Butter Pasta")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetMealTypes(MealTypes{MealTypeLunch, MealTypeDinner, MealTypeLunch})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeLunch, MealTypeDinner}, r.MealTypes())
	})

	suite.Run("EmptySet_ShouldRevertToInference", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garden Veggie Omelet")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), r.SetMealTypes(MealTypes{MealTypeSnack}))
		require.True(suite.T(), r.MealTypesExplicit())

		// Act
		err = r.SetMealTypes(nil)

		// Assert
		require.NoError(suite.T(), err)
		assert.False(suite.T(), r.MealTypesExplicit())
		assert.ElementsMatch(suite.T(), MealTypes{MealTypeBreakfast, MealTypeLunch}, r.MealTypes())
	})

	suite.Run("SideDish_ShouldServeLunchAndDinner", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Cheesy Garlic Bread")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetMealTypes(MealTypes{MealTypeSideDish})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeSideDish}, r.MealTypes())
		assert.True(suite.T(), r.CoversMealType(MealTypeLunch))
		assert.True(suite.T(), r.CoversMealType(MealTypeDinner))
		assert.True(suite.T(), r.CoversMealType(MealTypeSideDish))
		assert.False(suite.T(), r.CoversMealType(MealTypeBreakfast))
	})
}

// TestTitleAndTagUpdates tests reclassification on update
func (suite *RecipeTestSuite) TestTitleAndTagUpdates() {
	suite.Run("UpdateTitle_InferredTypes_ShouldReclassify", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Blueberry Pancakes")
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), MealTypes{MealTypeBreakfast}, r.MealTypes())

		// Act
		err = r.UpdateTitle("Beef Stew")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeDinner}, r.MealTypes())
	})

	suite.Run("UpdateTitle_ExplicitTypes_ShouldKeepDeclaredSet", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Blueberry Pancakes")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), r.SetMealTypes(MealTypes{MealTypeSnack}))

		// Act
		err = r.UpdateTitle("Beef Stew")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeSnack}, r.MealTypes())
		assert.True(suite.T(), r.MealTypesExplicit())
	})

	suite.Run("SetTags_InferredTypes_ShouldReclassify", func() {
		// Arrange: nothing in this title matches a keyword
		r, err := NewRecipe(suite.workspaceID, "Sunday Special")
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), MealTypes{MealTypeDinner}, r.MealTypes())

		// Act
		r.SetTags([]string{"breakfast"})

		// Assert: meal-type tags are authoritative
		assert.Equal(suite.T(), MealTypes{MealTypeBreakfast}, r.MealTypes())
	})
}

// TestIngredients tests ingredient handling
func (suite *RecipeTestSuite) TestIngredients() {
	suite.Run("ValidIngredients_ShouldAppendInOrder", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garlic Butter Pasta")
		require.NoError(suite.T(), err)

		// Act
		require.NoError(suite.T(), r.AddIngredient(Ingredient{Name: "spaghetti", Amount: 1, Unit: MeasurementUnitPound}))
		require.NoError(suite.T(), r.AddIngredient(Ingredient{Name: "butter", Amount: 4, Unit: MeasurementUnitTablespoon}))
		require.NoError(suite.T(), r.AddIngredient(Ingredient{Name: "garlic", Amount: 3, Unit: MeasurementUnitPiece}))

		// Assert
		ingredients := r.Ingredients()
		require.Len(suite.T(), ingredients, 3)
		assert.Equal(suite.T(), "spaghetti", ingredients[0].Name)
		assert.Equal(suite.T(), "butter", ingredients[1].Name)
		assert.Equal(suite.T(), "garlic", ingredients[2].Name)
	})

	suite.Run("EmptyName_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garlic Butter Pasta")
		require.NoError(suite.T(), err)

		// Act
		err = r.AddIngredient(Ingredient{Amount: 1, Unit: MeasurementUnitCup})

		// Assert
		assert.Error(suite.T(), err)
		assert.Empty(suite.T(), r.Ingredients())
	})

	suite.Run("NegativeAmount_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Garlic Butter Pasta")
		require.NoError(suite.T(), err)

		// Act
		err = r.AddIngredient(Ingredient{Name: "butter", Amount: -1, Unit: MeasurementUnitCup})

		// Assert
		assert.Error(suite.T(), err)
	})
}

// TestTimingAndServings tests timing and serving validation
func (suite *RecipeTestSuite) TestTimingAndServings() {
	suite.Run("ValidTiming_ShouldRecord", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Slow Cooker Beef Stew")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetTiming(20*time.Minute, 8*time.Hour)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 20*time.Minute, r.PrepTime())
		assert.Equal(suite.T(), 8*time.Hour, r.CookTime())
	})

	suite.Run("NegativeTiming_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Slow Cooker Beef Stew")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetTiming(-time.Minute, time.Hour)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrNegativeTiming)
	})

	suite.Run("ZeroServings_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Slow Cooker Beef Stew")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetServings(0)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidServings)
	})
}

// TestAppliances tests required-appliance handling
func (suite *RecipeTestSuite) TestAppliances() {
	suite.Run("KnownAppliances_ShouldReplace", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Slow Cooker Beef Stew")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetAppliances([]ApplianceType{ApplianceSlowCooker, ApplianceStovetop})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []ApplianceType{ApplianceSlowCooker, ApplianceStovetop}, r.Appliances())
	})

	suite.Run("UnknownAppliance_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Slow Cooker Beef Stew")
		require.NoError(suite.T(), err)

		// Act
		err = r.SetAppliances([]ApplianceType{ApplianceType("campfire")})

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidAppliance)
		assert.Empty(suite.T(), r.Appliances())
	})
}

// TestRatings tests the embedded preference snapshot
func (suite *RecipeTestSuite) TestRatings() {
	suite.Run("ValidRating_ShouldRecordAndEmitEvent", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Sheet Pan Salmon")
		require.NoError(suite.T(), err)
		r.Events()

		// Act
		err = r.RateBy("Dana", PreferenceLike)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), PreferenceLike, r.Ratings()["Dana"])

		events := r.Events()
		require.Len(suite.T(), events, 1)
		ratedEvent, ok := events[0].(RecipeRatedEvent)
		assert.True(suite.T(), ok, "Should emit RecipeRatedEvent")
		assert.Equal(suite.T(), "Dana", ratedEvent.Member)
		assert.Equal(suite.T(), PreferenceLike, ratedEvent.Preference)
	})

	suite.Run("SecondRating_ShouldOverwrite", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Sheet Pan Salmon")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), r.RateBy("Dana", PreferenceLike))

		// Act
		err = r.RateBy("Dana", PreferenceDislike)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), PreferenceDislike, r.Ratings()["Dana"])
		assert.Len(suite.T(), r.Ratings(), 1)
	})

	suite.Run("EmptyMember_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Sheet Pan Salmon")
		require.NoError(suite.T(), err)

		// Act
		err = r.RateBy("", PreferenceLike)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrEmptyMemberName)
	})

	suite.Run("UnknownPreference_ShouldReturnError", func() {
		// Arrange
		r, err := NewRecipe(suite.workspaceID, "Sheet Pan Salmon")
		require.NoError(suite.T(), err)

		// Act
		err = r.RateBy("Dana", Preference("meh"))

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidPreference)
	})
}

// TestReconstruction tests rebuilding recipes from persisted state
func (suite *RecipeTestSuite) TestReconstruction() {
	suite.Run("StoredMealTypes_ShouldStayExplicit", func() {
		// Arrange
		id := uuid.New()
		created := time.Now().Add(-48 * time.Hour)

		// Act
		r, err := ReconstructRecipe(
			id, suite.workspaceID, "Creamy Tomato Soup",
			[]Ingredient{{Name: "tomatoes", Amount: 6, Unit: MeasurementUnitPiece}},
			"Simmer and blend.",
			[]string{"comfort food"},
			MealTypes{MealTypeLunch, MealTypeDinner},
			10*time.Minute, 30*time.Minute, 4,
			nil, nil,
			created, created,
		)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), id, r.ID())
		assert.Equal(suite.T(), MealTypes{MealTypeLunch, MealTypeDinner}, r.MealTypes())
		assert.True(suite.T(), r.MealTypesExplicit())
		assert.Empty(suite.T(), r.Events(), "Reconstruction should not raise events")
	})

	suite.Run("EmptyMealTypes_ShouldClassifyFromTitleAndTags", func() {
		// Act
		r, err := ReconstructRecipe(
			uuid.New(), suite.workspaceID, "Creamy Tomato Soup",
			nil, "", nil, nil,
			0, 0, 0, nil, nil,
			time.Now(), time.Now(),
		)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), MealTypes{MealTypeLunch}, r.MealTypes())
		assert.False(suite.T(), r.MealTypesExplicit())
	})

	suite.Run("UnknownStoredMealType_ShouldReturnError", func() {
		// Act
		r, err := ReconstructRecipe(
			uuid.New(), suite.workspaceID, "Creamy Tomato Soup",
			nil, "", nil,
			MealTypes{MealType("brunch")},
			0, 0, 0, nil, nil,
			time.Now(), time.Now(),
		)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidMealType)
		assert.Nil(suite.T(), r)
	})
}

// BenchmarkNewRecipe benchmarks recipe creation with classification
func BenchmarkNewRecipe(b *testing.B) {
	workspaceID := uuid.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := NewRecipe(workspaceID, "Sheet Pan Salmon with Asparagus")
		if err != nil {
			b.Fatal(err)
		}
		_ = r
	}
}

// TestRecipeTestSuite runs the recipe test suite
func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
