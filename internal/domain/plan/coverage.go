package plan

import "github.com/mealsmith/planner/internal/domain/recipe"

// CoverageMode describes how well a candidate set covers the core meal
// types. Context building picks its generation instruction from this,
// decoupled from any particular instruction wording.
type CoverageMode string

const (
	// CoverageModeNoLibrary means there were no candidates at all; the
	// generator has to invent the whole week.
	CoverageModeNoLibrary CoverageMode = "no_library"

	// CoverageModeGood means every core meal type met the threshold.
	CoverageModeGood CoverageMode = "good_coverage"

	// CoverageModeGaps means candidates exist but at least one core
	// meal type is under the threshold.
	CoverageModeGaps CoverageMode = "gaps"
)

// ClassifyCoverage reduces per-type candidate counts to a CoverageMode.
// Pure and deterministic.
func ClassifyCoverage(counts map[recipe.MealType]int, threshold int) CoverageMode {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return CoverageModeNoLibrary
	}

	for _, mt := range recipe.CoreMealTypes() {
		if counts[mt] < threshold {
			return CoverageModeGaps
		}
	}
	return CoverageModeGood
}
