package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/test/testutils"
)

func TestKeywordSearch(t *testing.T) {
	t.Run("TitleMatch_ShouldOutrankTagAndIngredientMatches", func(t *testing.T) {
		// Arrange: one token, three recipes matching in different fields
		titleHit := testutils.NewRecipeBuilder().
			WithTitle("Spinach Lasagna").MustBuild()
		tagHit := testutils.NewRecipeBuilder().
			WithTitle("Green Curry").WithTags("spinach", "weeknight").MustBuild()
		ingredientHit := testutils.NewRecipeBuilder().
			WithTitle("Morning Smoothie").WithIngredientNames("spinach", "banana").MustBuild()

		library := []*recipe.Recipe{ingredientHit, tagHit, titleHit}

		// Act
		results := KeywordSearch(library, "spinach", 10)

		// Assert: title weight 10, tag 5, ingredient 1
		require.Len(t, results, 3)
		assert.Equal(t, titleHit.ID(), results[0].ID())
		assert.Equal(t, tagHit.ID(), results[1].ID())
		assert.Equal(t, ingredientHit.ID(), results[2].ID())
	})

	t.Run("MultipleTokens_ShouldAccumulate", func(t *testing.T) {
		both := testutils.NewRecipeBuilder().
			WithTitle("Chicken Rice Bowl").MustBuild()
		one := testutils.NewRecipeBuilder().
			WithTitle("Chicken Salad").MustBuild()

		library := []*recipe.Recipe{one, both}

		results := KeywordSearch(library, "chicken rice", 10)

		require.Len(t, results, 2)
		assert.Equal(t, both.ID(), results[0].ID())
	})

	t.Run("Stopwords_ShouldNotInfluenceRanking", func(t *testing.T) {
		// "recipes", "with", "the" are all stopwords
		match := testutils.NewRecipeBuilder().WithTitle("Salmon Bake").MustBuild()
		noise := testutils.NewRecipeBuilder().WithTitle("The Recipes Collection Stew").MustBuild()

		library := []*recipe.Recipe{noise, match}

		results := KeywordSearch(library, "recipes with the salmon", 1)

		require.Len(t, results, 1)
		assert.Equal(t, match.ID(), results[0].ID())
	})

	t.Run("ShortTokens_ShouldBeDropped", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithTitle("Pho Bowl").MustBuild()

		// "go" is two characters; only "bowl" should count
		results := KeywordSearch([]*recipe.Recipe{r}, "go bowl", 5)

		require.Len(t, results, 1)
	})

	t.Run("Punctuation_ShouldBeStripped", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithTitle("Shepherd Pie Supper").MustBuild()

		results := KeywordSearch([]*recipe.Recipe{r}, "shepherd's pie!", 5)

		require.Len(t, results, 1)
		assert.Equal(t, r.ID(), results[0].ID())
	})

	t.Run("NoMatches_ShouldFallBackToMostRecentlyUpdated", func(t *testing.T) {
		// Arrange: stagger update times via title updates
		older := testutils.NewRecipeBuilder().WithTitle("Garden Stir Fry").MustBuild()
		time.Sleep(2 * time.Millisecond)
		newer := testutils.NewRecipeBuilder().WithTitle("Evening Roast").MustBuild()
		time.Sleep(2 * time.Millisecond)
		newest := testutils.NewRecipeBuilder().WithTitle("Morning Bowl").MustBuild()

		library := []*recipe.Recipe{older, newest, newer}

		// Act: nothing matches "xylophone"
		results := KeywordSearch(library, "xylophone", 2)

		// Assert: newest first, capped at limit
		require.Len(t, results, 2)
		assert.Equal(t, newest.ID(), results[0].ID())
		assert.Equal(t, newer.ID(), results[1].ID())
	})

	t.Run("EmptyQuery_ShouldFallBackToRecency", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithTitle("Evening Roast").MustBuild()

		results := KeywordSearch([]*recipe.Recipe{r}, "", 5)

		require.Len(t, results, 1)
	})

	t.Run("Limit_ShouldCapResults", func(t *testing.T) {
		library := make([]*recipe.Recipe, 5)
		for i := range library {
			library[i] = testutils.NewRecipeBuilder().WithTitle("Salmon Dish").MustBuild()
		}

		results := KeywordSearch(library, "salmon", 3)

		assert.Len(t, results, 3)
	})

	t.Run("ZeroLimit_ShouldReturnNothing", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithTitle("Salmon Dish").MustBuild()

		assert.Nil(t, KeywordSearch([]*recipe.Recipe{r}, "salmon", 0))
	})

	t.Run("EmptyLibrary_ShouldReturnNothing", func(t *testing.T) {
		assert.Nil(t, KeywordSearch(nil, "salmon", 5))
	})

	t.Run("EqualScores_ShouldKeepLibraryOrder", func(t *testing.T) {
		first := testutils.NewRecipeBuilder().WithTitle("Salmon One").MustBuild()
		second := testutils.NewRecipeBuilder().WithTitle("Salmon Two").MustBuild()

		results := KeywordSearch([]*recipe.Recipe{first, second}, "salmon", 5)

		require.Len(t, results, 2)
		assert.Equal(t, first.ID(), results[0].ID())
		assert.Equal(t, second.ID(), results[1].ID())
	})
}

func TestTokenizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"PlainWords_ShouldLowercase", "Salmon BOWL", []string{"salmon", "bowl"}},
		{"Stopwords_ShouldBeDropped", "recipes for the family with rice", []string{"family", "rice"}},
		{"ShortWords_ShouldBeDropped", "an ox in a pot", []string{"pot"}},
		{"Punctuation_ShouldSplitWords", "quick,easy dinners!", []string{"quick", "easy", "dinners"}},
		{"Empty_ShouldReturnNothing", "", nil},
		{"OnlyStopwords_ShouldReturnNothing", "the and or", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeQuery(tt.query))
		})
	}
}

func BenchmarkKeywordSearch(b *testing.B) {
	workspaceID := uuid.New()
	factory := testutils.NewRecipeFactory(42)
	library := make([]*recipe.Recipe, 100)
	for i := range library {
		r, err := factory.CreateSimpleRecipe(workspaceID)
		if err != nil {
			b.Fatal(err)
		}
		library[i] = r
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		KeywordSearch(library, "quick chicken dinner with rice", 15)
	}
}
