// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecipeAssertions provides recipe-specific assertion methods
type RecipeAssertions struct {
	t *testing.T
}

// NewRecipeAssertions creates a new recipe assertions helper
func NewRecipeAssertions(t *testing.T) *RecipeAssertions {
	return &RecipeAssertions{t: t}
}

// ValidRecipe asserts the invariants every planner-visible recipe holds
func (ra *RecipeAssertions) ValidRecipe(r *recipe.Recipe, msgAndArgs ...interface{}) {
	require.NotNil(ra.t, r, "Recipe should not be nil")
	assert.NotEqual(ra.t, uuid.Nil, r.ID(), "Recipe should have a valid ID")
	assert.NotEmpty(ra.t, r.Title(), "Recipe should have a title")
	assert.NotEmpty(ra.t, r.MealTypes(), "Recipe meal types should never be empty")
	assert.NotEmpty(ra.t, r.EffectiveMealTypes(), "Effective meal types should never be empty")
}

// CoversMealType asserts that the recipe fills the given meal slot
func (ra *RecipeAssertions) CoversMealType(r *recipe.Recipe, mt recipe.MealType, msgAndArgs ...interface{}) {
	require.NotNil(ra.t, r, "Recipe should not be nil")
	assert.True(ra.t, r.CoversMealType(mt),
		"Recipe %q should cover meal type %s, has %v", r.Title(), mt, r.EffectiveMealTypes())
}

// MealTypesEqual asserts the declared meal-type set, order included
func (ra *RecipeAssertions) MealTypesEqual(r *recipe.Recipe, expected recipe.MealTypes, msgAndArgs ...interface{}) {
	require.NotNil(ra.t, r, "Recipe should not be nil")
	assert.Equal(ra.t, expected, r.MealTypes(), msgAndArgs...)
}

// PlanAssertions provides weekly-plan assertion methods
type PlanAssertions struct {
	t *testing.T
}

// NewPlanAssertions creates a new plan assertions helper
func NewPlanAssertions(t *testing.T) *PlanAssertions {
	return &PlanAssertions{t: t}
}

// ValidWeekPlan asserts the weekly-plan shape: seven days, every day
// labeled and non-empty, every meal type known
func (pa *PlanAssertions) ValidWeekPlan(week *plan.WeekPlan, msgAndArgs ...interface{}) {
	require.NotNil(pa.t, week, "Week plan should not be nil")
	require.NoError(pa.t, week.Validate(), msgAndArgs...)
	assert.Len(pa.t, week.Days, plan.DaysPerWeek, "Week plan should span seven days")
	for i, day := range week.Days {
		assert.NotEmpty(pa.t, day.Label, "Day %d should have a label", i+1)
	}
}

// CoversCoreMeals asserts every day plans breakfast, lunch and dinner
func (pa *PlanAssertions) CoversCoreMeals(week *plan.WeekPlan, msgAndArgs ...interface{}) {
	require.NotNil(pa.t, week, "Week plan should not be nil")
	for i, day := range week.Days {
		for _, mt := range recipe.CoreMealTypes() {
			found := false
			for _, meal := range day.Meals {
				if meal.MealType == mt {
					found = true
					break
				}
			}
			assert.True(pa.t, found, "Day %d should plan a %s", i+1, mt)
		}
	}
}

// CandidateAssertions provides candidate-set assertion methods
type CandidateAssertions struct {
	t *testing.T
}

// NewCandidateAssertions creates a new candidate assertions helper
func NewCandidateAssertions(t *testing.T) *CandidateAssertions {
	return &CandidateAssertions{t: t}
}

// NoDuplicates asserts no recipe appears twice in the set
func (ca *CandidateAssertions) NoDuplicates(set plan.CandidateSet, msgAndArgs ...interface{}) {
	seen := make(map[uuid.UUID]bool, set.Len())
	for _, r := range set.Recipes {
		assert.False(ca.t, seen[r.ID()], "Recipe %q selected twice", r.Title())
		seen[r.ID()] = true
	}
}

// CoverageAtLeast asserts every core meal type meets the minimum
func (ca *CandidateAssertions) CoverageAtLeast(set plan.CandidateSet, minimum int, msgAndArgs ...interface{}) {
	for _, mt := range recipe.CoreMealTypes() {
		assert.GreaterOrEqual(ca.t, set.Coverage[mt], minimum,
			"Coverage for %s should be at least %d", mt, minimum)
	}
}

// CoverageMatchesRecipes asserts the coverage counts agree with the
// selected recipes
func (ca *CandidateAssertions) CoverageMatchesRecipes(set plan.CandidateSet, msgAndArgs ...interface{}) {
	for _, mt := range recipe.CoreMealTypes() {
		count := 0
		for _, r := range set.Recipes {
			if r.CoversMealType(mt) {
				count++
			}
		}
		assert.Equal(ca.t, count, set.Coverage[mt], "Coverage count for %s out of sync", mt)
	}
}
