// Package main provides the meal planner demo entry point
// This demonstrates clean architecture with proper dependency injection
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/infrastructure/container"
	"github.com/mealsmith/planner/internal/ports/inbound"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"go.uber.org/fx"
)

func main() {
	fmt.Println(`
███╗   ███╗███████╗ █████╗ ██╗     ███████╗███╗   ███╗██╗████████╗██╗  ██╗
████╗ ████║██╔════╝██╔══██╗██║     ██╔════╝████╗ ████║██║╚══██╔══╝██║  ██║
██╔████╔██║█████╗  ███████║██║     ███████╗██╔████╔██║██║   ██║   ███████║
██║╚██╔╝██║██╔══╝  ██╔══██║██║     ╚════██║██║╚██╔╝██║██║   ██║   ██╔══██║
██║ ╚═╝ ██║███████╗██║  ██║███████╗███████║██║ ╚═╝ ██║██║   ██║   ██║  ██║
╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝     ╚═╝╚═╝   ╚═╝   ╚═╝  ╚═╝
                              Weekly Meal Planner
	`)

	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's
		container.Module,
		fx.Invoke(runDemo),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	if err := app.Stop(ctx); err != nil {
		log.Fatalf("Failed to stop application gracefully: %v", err)
	}
}

// runDemo seeds a workspace and walks through every planner operation
func runDemo(
	planner inbound.PlanningService,
	recipes outbound.RecipeRepository,
	households outbound.HouseholdRepository,
	ratings outbound.RatingRepository,
) error {
	ctx := context.Background()
	workspaceID := uuid.New()

	seeded, err := seedWorkspace(ctx, workspaceID, recipes, households, ratings)
	if err != nil {
		return fmt.Errorf("failed to seed demo workspace: %w", err)
	}
	fmt.Printf("Seeded workspace %s with %d recipes\n\n", workspaceID, len(seeded))

	candidates, err := planner.RetrieveCandidates(ctx, inbound.RetrieveCandidatesQuery{
		WorkspaceID: workspaceID,
		Query:       "use up the spinach before it goes bad",
	})
	if err != nil {
		return fmt.Errorf("candidate retrieval failed: %w", err)
	}
	fmt.Printf("Retrieved %d candidates (breakfast %d, lunch %d, dinner %d)\n",
		candidates.Len(),
		candidates.Coverage[recipe.MealTypeBreakfast],
		candidates.Coverage[recipe.MealTypeLunch],
		candidates.Coverage[recipe.MealTypeDinner],
	)

	report, err := planner.CheckConstraints(ctx, inbound.CheckConstraintsQuery{
		WorkspaceID: workspaceID,
		RecipeID:    seeded[0],
	})
	if err != nil {
		return fmt.Errorf("constraint check failed: %w", err)
	}
	fmt.Printf("Constraint check on first recipe: safe=%v warnings=%v\n", report.IsSafe, report.Warnings)

	suggestions, err := planner.SuggestAlternatives(ctx, inbound.SuggestAlternativesQuery{
		WorkspaceID: workspaceID,
		MealType:    "dinner",
		Limit:       3,
	})
	if err != nil {
		return fmt.Errorf("alternative suggestion failed: %w", err)
	}
	fmt.Println("Dinner alternatives:")
	for _, s := range suggestions {
		fmt.Printf("  %-35s score=%.1f\n", s.Recipe.Title(), s.Score)
	}

	week, err := planner.GeneratePlan(ctx, inbound.GeneratePlanCommand{
		WorkspaceID:     workspaceID,
		WeekStart:       nextMonday(),
		FreeTextContext: "shorter dinners on weekdays please",
	})
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}
	printWeek(week)

	return nil
}

// seedWorkspace writes a small household through the repositories and
// returns the recipe ids in creation order
func seedWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	recipes outbound.RecipeRepository,
	households outbound.HouseholdRepository,
	ratings outbound.RatingRepository,
) ([]uuid.UUID, error) {
	profile, err := household.NewProfile(workspaceID, []household.FamilyMember{
		{
			Name:        "Dana",
			AgeGroup:    household.AgeGroupAdult,
			Allergies:   []string{"peanuts"},
			Dislikes:    []string{"mushrooms"},
			Preferences: []string{"mediterranean"},
		},
		{
			Name:     "Riley",
			AgeGroup: household.AgeGroupChild,
			Dislikes: []string{"spicy food"},
		},
	})
	if err != nil {
		return nil, err
	}
	profile.SetCookingMethods([]string{"oven", "stovetop", "slow_cooker"})
	if err := profile.SetTimeCeiling(household.PeriodWeekday, 30*time.Minute); err != nil {
		return nil, err
	}
	if err := profile.SetTimeCeiling(household.PeriodWeekend, 90*time.Minute); err != nil {
		return nil, err
	}
	profile.SetWeeknightPriority("quick cleanup")
	if err := households.Save(ctx, profile); err != nil {
		return nil, err
	}

	purchased := time.Now().AddDate(0, 0, -3)
	expiring := time.Now().AddDate(0, 0, 2)
	groceries := []household.GroceryItem{
		{Name: "spinach", PurchasedAt: &purchased, ExpiresAt: &expiring},
		{Name: "eggs", PurchasedAt: &purchased},
		{Name: "rice"},
	}
	if err := households.SaveGroceries(ctx, workspaceID, groceries); err != nil {
		return nil, err
	}

	type seedRecipe struct {
		title       string
		tags        []string
		ingredients []recipe.Ingredient
		prep        time.Duration
		cook        time.Duration
		servings    int
	}
	seeds := []seedRecipe{
		{
			title: "Berry Oatmeal with Honey",
			tags:  []string{"vegetarian", "quick"},
			ingredients: []recipe.Ingredient{
				{Name: "rolled oats", Amount: 2, Unit: recipe.MeasurementUnitCup},
				{Name: "mixed berries", Amount: 1, Unit: recipe.MeasurementUnitCup},
			},
			prep: 5 * time.Minute, cook: 10 * time.Minute, servings: 2,
		},
		{
			title: "Garden Veggie Omelet",
			tags:  []string{"vegetarian"},
			ingredients: []recipe.Ingredient{
				{Name: "eggs", Amount: 4, Unit: recipe.MeasurementUnitPiece},
				{Name: "spinach", Amount: 1, Unit: recipe.MeasurementUnitCup},
			},
			prep: 10 * time.Minute, cook: 10 * time.Minute, servings: 2,
		},
		{
			title: "Chicken Caesar Wrap",
			tags:  []string{"quick"},
			ingredients: []recipe.Ingredient{
				{Name: "chicken breast", Amount: 2, Unit: recipe.MeasurementUnitPiece},
				{Name: "romaine lettuce", Amount: 1, Unit: recipe.MeasurementUnitPiece},
			},
			prep: 15 * time.Minute, cook: 10 * time.Minute, servings: 4,
		},
		{
			title: "Creamy Spinach Soup",
			tags:  []string{"vegetarian"},
			ingredients: []recipe.Ingredient{
				{Name: "spinach", Amount: 4, Unit: recipe.MeasurementUnitCup},
				{Name: "vegetable stock", Amount: 3, Unit: recipe.MeasurementUnitCup},
			},
			prep: 10 * time.Minute, cook: 20 * time.Minute, servings: 4,
		},
		{
			title: "Sheet Pan Salmon with Asparagus",
			tags:  []string{"mediterranean"},
			ingredients: []recipe.Ingredient{
				{Name: "salmon fillet", Amount: 4, Unit: recipe.MeasurementUnitPiece},
				{Name: "asparagus", Amount: 1, Unit: recipe.MeasurementUnitPiece},
			},
			prep: 10 * time.Minute, cook: 18 * time.Minute, servings: 4,
		},
		{
			title: "Garlic Butter Pasta",
			tags:  []string{"vegetarian", "quick"},
			ingredients: []recipe.Ingredient{
				{Name: "spaghetti", Amount: 1, Unit: recipe.MeasurementUnitPound},
				{Name: "butter", Amount: 4, Unit: recipe.MeasurementUnitTablespoon},
			},
			prep: 5 * time.Minute, cook: 15 * time.Minute, servings: 4,
		},
	}

	ids := make([]uuid.UUID, 0, len(seeds))
	for _, seed := range seeds {
		r, err := recipe.NewRecipe(workspaceID, seed.title)
		if err != nil {
			return nil, err
		}
		r.SetTags(seed.tags)
		for _, ing := range seed.ingredients {
			if err := r.AddIngredient(ing); err != nil {
				return nil, err
			}
		}
		if err := r.SetTiming(seed.prep, seed.cook); err != nil {
			return nil, err
		}
		if err := r.SetServings(seed.servings); err != nil {
			return nil, err
		}
		if err := recipes.Create(ctx, r); err != nil {
			return nil, err
		}
		ids = append(ids, r.ID())
	}

	if err := ratings.SaveRating(ctx, workspaceID, ids[4], "Dana", recipe.PreferenceLike); err != nil {
		return nil, err
	}
	if err := ratings.SaveRating(ctx, workspaceID, ids[5], "Riley", recipe.PreferenceLike); err != nil {
		return nil, err
	}

	return ids, nil
}

// printWeek renders the generated plan to stdout
func printWeek(week *plan.WeekPlan) {
	fmt.Printf("\nWeek of %s\n", week.WeekStart.Format("Mon Jan 2 2006"))
	for _, day := range week.Days {
		fmt.Printf("\n%s (%s)\n", day.Label, day.Date.Format("Jan 2"))
		for _, meal := range day.Meals {
			marker := " "
			if meal.RecipeID != nil {
				marker = "*"
			}
			fmt.Printf("  %s %-10s %s (%d min)\n", marker, meal.MealType, meal.Title, meal.PrepMinutes)
		}
	}
	if len(week.ShoppingList) > 0 {
		fmt.Println("\nShopping list:")
		for _, item := range week.ShoppingList {
			fmt.Printf("  - %s\n", item)
		}
	}
	fmt.Println("\n* = from your recipe library")
}

// nextMonday returns the upcoming Monday at midnight local time
func nextMonday() time.Time {
	now := time.Now()
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, daysAhead)
}
