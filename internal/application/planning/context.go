package planning

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/ports/outbound"
)

// ContextInputs bundles everything generation-context building needs
type ContextInputs struct {
	WorkspaceID       uuid.UUID
	WeekStart         time.Time
	Profile           *household.Profile
	Groceries         []household.GroceryItem
	Candidates        plan.CandidateSet
	Ratings           outbound.RatingSnapshot
	FreeText          string
	ExpiryWindowDays  int
	CoverageThreshold int
	Now               time.Time
}

// BuildGenerationContext assembles the structured payload handed to the
// generator: household constraints, the pantry with expiring-soon flags,
// candidate recipes annotated with their rating maps, and the free-text
// context. Groceries flagged as expiring are listed first so the
// generator sees them early. Also returns the coverage mode the
// instruction is selected from. Pure.
func BuildGenerationContext(in ContextInputs) (outbound.GenerationContext, plan.CoverageMode) {
	mode := plan.ClassifyCoverage(in.Candidates.Coverage, in.CoverageThreshold)

	genCtx := outbound.GenerationContext{
		WorkspaceID:  in.WorkspaceID,
		WeekStart:    in.WeekStart,
		Household:    householdContext(in.Profile),
		Groceries:    groceryContexts(in.Groceries, in.Now, in.ExpiryWindowDays),
		Candidates:   candidateContexts(in.Candidates, in.Ratings),
		FreeText:     strings.TrimSpace(in.FreeText),
		CoverageMode: string(mode),
	}

	return genCtx, mode
}

// GenerationInstruction picks the free-text instruction for a coverage
// mode. The wording is the only thing that varies; selection stays a
// pure mode mapping.
func GenerationInstruction(mode plan.CoverageMode) string {
	var b strings.Builder
	b.WriteString("Create a 7-day weekly meal plan for this household.\n")

	switch mode {
	case plan.CoverageModeGood:
		b.WriteString("Build the plan from the candidate recipes; they cover every core meal slot well. Reference candidates by id and prefer the ones household members like.\n")
	case plan.CoverageModeGaps:
		b.WriteString("Use the candidate recipes where they fit. Some meal slots have few or no candidates; fill those with simple new meals in the same spirit as the library.\n")
	case plan.CoverageModeNoLibrary:
		b.WriteString("There are no candidate recipes. Invent a complete week of simple meals suited to this household.\n")
	}

	b.WriteString("Plan breakfast, lunch and dinner for every day.\n")
	b.WriteString("Use groceries flagged as expiring soon early in the week.\n")
	b.WriteString("Respect every allergy strictly. Avoid disliked ingredients where reasonable.")
	return b.String()
}

// householdContext flattens the profile for the generator
func householdContext(profile *household.Profile) outbound.HouseholdContext {
	if profile == nil {
		return outbound.HouseholdContext{}
	}

	members := make([]outbound.MemberContext, len(profile.Members()))
	for i, m := range profile.Members() {
		members[i] = outbound.MemberContext{
			Name:        m.Name,
			AgeGroup:    string(m.AgeGroup),
			Allergies:   m.Allergies,
			Dislikes:    m.Dislikes,
			Preferences: m.Preferences,
		}
	}

	var ceilings map[string]int
	if len(profile.TimeCeilings()) > 0 {
		ceilings = make(map[string]int, len(profile.TimeCeilings()))
		for period, d := range profile.TimeCeilings() {
			ceilings[string(period)] = int(d.Minutes())
		}
	}

	return outbound.HouseholdContext{
		Members:           members,
		CookingMethods:    profile.CookingMethods(),
		TimeCeilings:      ceilings,
		WeeknightPriority: profile.WeeknightPriority(),
	}
}

// groceryContexts flags expiring items and moves them to the front,
// keeping relative order within each group
func groceryContexts(groceries []household.GroceryItem, now time.Time, windowDays int) []outbound.GroceryContext {
	if len(groceries) == 0 {
		return nil
	}

	expiring := make([]outbound.GroceryContext, 0, len(groceries))
	rest := make([]outbound.GroceryContext, 0, len(groceries))
	for _, g := range groceries {
		gc := outbound.GroceryContext{
			Name:         g.Name,
			ExpiringSoon: g.ExpiringSoon(now, windowDays),
		}
		if gc.ExpiringSoon {
			expiring = append(expiring, gc)
		} else {
			rest = append(rest, gc)
		}
	}
	return append(expiring, rest...)
}

// candidateContexts annotates each candidate with its rating map. The
// stored snapshot wins; a recipe's embedded ratings fill in when the
// snapshot has nothing for it.
func candidateContexts(candidates plan.CandidateSet, ratings outbound.RatingSnapshot) []outbound.RecipeContext {
	if candidates.Len() == 0 {
		return nil
	}

	out := make([]outbound.RecipeContext, candidates.Len())
	for i, r := range candidates.Recipes {
		memberRatings := ratings.ForRecipe(r.ID())
		if memberRatings == nil {
			memberRatings = r.Ratings()
		}
		var ratingStrings map[string]string
		if len(memberRatings) > 0 {
			ratingStrings = make(map[string]string, len(memberRatings))
			for member, pref := range memberRatings {
				ratingStrings[member] = string(pref)
			}
		}

		ingredients := make([]string, len(r.Ingredients()))
		for j, ing := range r.Ingredients() {
			ingredients[j] = ing.Name
		}

		out[i] = outbound.RecipeContext{
			ID:          r.ID(),
			Title:       r.Title(),
			Ingredients: ingredients,
			MealTypes:   r.MealTypes().Strings(),
			Tags:        r.Tags(),
			PrepMinutes: int(r.PrepTime().Minutes()),
			CookMinutes: int(r.CookTime().Minutes()),
			Servings:    r.Servings(),
			Ratings:     ratingStrings,
		}
	}
	return out
}
