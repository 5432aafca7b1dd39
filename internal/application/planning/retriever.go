package planning

import (
	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// DefaultMinPerCoreType is the coverage minimum retrieval aims for per
// core meal type
const DefaultMinPerCoreType = 2

// RetrieveCandidates builds a bounded candidate set from the full
// library and a relevance-ordered ranking of recipe ids. The selection
// is deterministic and order-sensitive:
//
//  1. a library that already fits the budget is returned whole;
//  2. a coverage-first pass walks the ranking and admits recipes that
//     help a core meal type still under minPerCoreType;
//  3. a gap-fill pass tops up under-covered types in library order;
//  4. a fill pass walks the ranking again to spend the remaining budget.
//
// Ranking entries that are not in the library are ignored, and no id is
// admitted twice. When targetCount caps the result before every core
// minimum is met, the shortfall is observable via the returned coverage
// counts; it is accepted, not an error. Pure.
func RetrieveCandidates(library []*recipe.Recipe, ranking []uuid.UUID, targetCount, minPerCoreType int) plan.CandidateSet {
	if targetCount < 0 {
		targetCount = 0
	}
	if minPerCoreType < 0 {
		minPerCoreType = 0
	}

	if len(library) <= targetCount {
		return plan.CandidateSet{
			Recipes:  library,
			Coverage: coverageCounts(library),
		}
	}

	byID := make(map[uuid.UUID]*recipe.Recipe, len(library))
	for _, r := range library {
		byID[r.ID()] = r
	}

	// Core-type index in library order, side dishes already expanded
	// into lunch and dinner by the domain model.
	index := make(map[recipe.MealType][]*recipe.Recipe)
	for _, r := range library {
		for _, mt := range recipe.CoreMealTypes() {
			if r.CoversMealType(mt) {
				index[mt] = append(index[mt], r)
			}
		}
	}

	added := make(map[uuid.UUID]bool, targetCount)
	counts := make(map[recipe.MealType]int, len(recipe.CoreMealTypes()))
	for _, mt := range recipe.CoreMealTypes() {
		counts[mt] = 0
	}
	result := make([]*recipe.Recipe, 0, targetCount)

	admit := func(r *recipe.Recipe) {
		added[r.ID()] = true
		result = append(result, r)
		for _, mt := range recipe.CoreMealTypes() {
			if r.CoversMealType(mt) {
				counts[mt]++
			}
		}
	}

	helpsCoverage := func(r *recipe.Recipe) bool {
		for _, mt := range recipe.CoreMealTypes() {
			if r.CoversMealType(mt) && counts[mt] < minPerCoreType {
				return true
			}
		}
		return false
	}

	// Coverage-first pass over the semantic ranking.
	for _, id := range ranking {
		if len(result) >= targetCount {
			break
		}
		r, ok := byID[id]
		if !ok || added[id] {
			continue
		}
		if helpsCoverage(r) {
			admit(r)
		}
	}

	// Gap-fill pass: top up each core type from the library-order index.
	for _, mt := range recipe.CoreMealTypes() {
		for _, r := range index[mt] {
			if counts[mt] >= minPerCoreType || len(result) >= targetCount {
				break
			}
			if !added[r.ID()] {
				admit(r)
			}
		}
	}

	// Fill pass: spend the remaining budget in ranking order.
	for _, id := range ranking {
		if len(result) >= targetCount {
			break
		}
		r, ok := byID[id]
		if !ok || added[id] {
			continue
		}
		admit(r)
	}

	return plan.CandidateSet{Recipes: result, Coverage: counts}
}

// coverageCounts tallies core-type coverage over a recipe list. The
// service also runs it over the whole library to tell capped shortfalls
// apart from thin libraries.
func coverageCounts(recipes []*recipe.Recipe) map[recipe.MealType]int {
	counts := make(map[recipe.MealType]int, len(recipe.CoreMealTypes()))
	for _, mt := range recipe.CoreMealTypes() {
		counts[mt] = 0
	}
	for _, r := range recipes {
		for _, mt := range recipe.CoreMealTypes() {
			if r.CoversMealType(mt) {
				counts[mt]++
			}
		}
	}
	return counts
}
