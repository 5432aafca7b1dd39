package plan

import (
	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// CandidateSet is the ordered, de-duplicated recipe selection offered to
// the generator, together with how many recipes cover each core meal
// type. It is a per-request result and is never persisted.
type CandidateSet struct {
	Recipes  []*recipe.Recipe
	Coverage map[recipe.MealType]int
}

// Len returns the number of candidates
func (c CandidateSet) Len() int {
	return len(c.Recipes)
}

// IDs returns the candidate ids in selection order
func (c CandidateSet) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Recipes))
	for i, r := range c.Recipes {
		ids[i] = r.ID()
	}
	return ids
}

// Contains reports whether a recipe id is in the set
func (c CandidateSet) Contains(id uuid.UUID) bool {
	for _, r := range c.Recipes {
		if r.ID() == id {
			return true
		}
	}
	return false
}

// Shortfall returns, per core meal type, how far coverage fell below
// the requested minimum. Empty when every minimum was met.
func (c CandidateSet) Shortfall(minPerType int) map[recipe.MealType]int {
	shortfall := make(map[recipe.MealType]int)
	for _, mt := range recipe.CoreMealTypes() {
		if have := c.Coverage[mt]; have < minPerType {
			shortfall[mt] = minPerType - have
		}
	}
	return shortfall
}
