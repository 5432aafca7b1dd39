// Package plan contains the transient planning artifacts: generated
// weekly plans, candidate sets, and swap suggestions. Nothing here is
// an aggregate; these values live for one request.
package plan

import (
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// DaysPerWeek is the fixed length of a valid weekly plan
const DaysPerWeek = 7

// WeekPlan is a validated weekly meal plan returned by generation
type WeekPlan struct {
	WeekStart    time.Time
	Days         []DayPlan
	ShoppingList []string
}

// DayPlan is one day of a weekly plan
type DayPlan struct {
	Label string
	Date  time.Time
	Meals []PlannedMeal
}

// PlannedMeal is one meal slot filled by the generator. RecipeID is set
// when the generator reused a library recipe.
type PlannedMeal struct {
	MealType    recipe.MealType
	RecipeID    *uuid.UUID
	Title       string
	PrepMinutes int
	Servings    int
	Note        string
}

// Validate enforces the weekly-plan shape: exactly seven day entries,
// each holding at least one meal with a known meal type.
func (p WeekPlan) Validate() error {
	if len(p.Days) != DaysPerWeek {
		return ErrWrongDayCount
	}

	for _, day := range p.Days {
		if len(day.Meals) == 0 {
			return ErrEmptyDay
		}
		for _, meal := range day.Meals {
			if !meal.MealType.IsValid() {
				return ErrUnknownMealType
			}
		}
	}

	return nil
}

// MealsFor returns the meals of the given type across the whole week,
// in day order
func (p WeekPlan) MealsFor(mt recipe.MealType) []PlannedMeal {
	var out []PlannedMeal
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			if meal.MealType == mt {
				out = append(out, meal)
			}
		}
	}
	return out
}
