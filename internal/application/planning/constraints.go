// Package planning implements the candidate-selection and
// constraint-scoring use cases: deciding which library recipes are
// worth offering, how safe each one is for the household, and how to
// assemble the context a weekly plan is generated from.
package planning

import (
	"fmt"
	"strings"

	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// allergenExpansions maps umbrella constraint terms to the constituent
// foods they cover. Built once; never mutated.
var allergenExpansions = map[string][]string{
	"shellfish": {"shrimp", "crab", "lobster", "clam", "mussel", "oyster", "scallop"},
	"tree nuts": {"almond", "walnut", "cashew", "pecan", "pistachio", "hazelnut"},
	"dairy":     {"milk", "cheese", "cream", "butter", "yogurt"},
	"gluten":    {"wheat", "flour", "bread", "pasta"},
}

// CheckConstraints decides whether a recipe is allergy-safe for the
// household and collects human-readable warnings. Any allergy hit marks
// the recipe unsafe; dislike hits only warn. Warnings are ordered by
// member, then by each member's declared constraint order. Pure.
func CheckConstraints(r *recipe.Recipe, profile *household.Profile) (bool, []string) {
	if r == nil || profile == nil {
		return true, nil
	}

	haystack := ingredientText(r)
	safe := true
	var warnings []string

	for _, member := range profile.Members() {
		for _, allergy := range member.Allergies {
			if ingredientsContain(haystack, allergy) {
				safe = false
				warnings = append(warnings, fmt.Sprintf("Contains %s (allergy for %s)", allergy, member.Name))
			}
		}
		for _, dislike := range member.Dislikes {
			if ingredientsContain(haystack, dislike) {
				warnings = append(warnings, fmt.Sprintf("Contains %s (%s dislikes)", dislike, member.Name))
			}
		}
	}

	return safe, warnings
}

// ingredientText lowercases and concatenates the recipe's ingredient
// names for substring matching
func ingredientText(r *recipe.Recipe) string {
	var b strings.Builder
	for i, ing := range r.Ingredients() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToLower(ing.Name))
	}
	return b.String()
}

// ingredientsContain runs the three-step match for one constraint term:
// direct substring, singular/plural variant, then umbrella expansion.
func ingredientsContain(haystack, term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" || haystack == "" {
		return false
	}

	if strings.Contains(haystack, t) {
		return true
	}

	if variant, ok := pluralVariant(t); ok && strings.Contains(haystack, variant) {
		return true
	}

	for _, constituent := range expansionsFor(t) {
		if strings.Contains(haystack, constituent) {
			return true
		}
	}

	return false
}

// pluralVariant strips or appends a trailing "s"
func pluralVariant(term string) (string, bool) {
	if strings.HasSuffix(term, "s") {
		return strings.TrimSuffix(term, "s"), true
	}
	return term + "s", true
}

// expansionsFor looks up the umbrella table for the term or its
// singular/plural variant
func expansionsFor(term string) []string {
	if foods, ok := allergenExpansions[term]; ok {
		return foods
	}
	if variant, ok := pluralVariant(term); ok {
		if foods, ok := allergenExpansions[variant]; ok {
			return foods
		}
	}
	return nil
}
