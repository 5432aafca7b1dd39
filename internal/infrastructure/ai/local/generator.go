// Package local provides a deterministic plan generator that needs no
// network. It fills the week from the candidate list alone, so demos
// and tests produce the same plan for the same input every time.
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/infrastructure/monitoring"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"go.uber.org/zap"
)

const daysPerWeek = 7

// Generator builds weekly plans by cycling through the candidates
type Generator struct {
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewGenerator creates a new local plan generator
func NewGenerator(metrics *monitoring.MetricsCollector, logger *zap.Logger) *Generator {
	return &Generator{
		metrics: metrics,
		logger:  logger.Named("local-generator"),
	}
}

var _ outbound.PlanGeneratorService = (*Generator)(nil)

// fallbackMeal is the meal invented for a slot no candidate covers
type fallbackMeal struct {
	title       string
	prepMinutes int
	groceries   []string
}

var fallbackMeals = map[recipe.MealType]fallbackMeal{
	recipe.MealTypeBreakfast: {
		title:       "Oatmeal with fruit",
		prepMinutes: 10,
		groceries:   []string{"rolled oats", "bananas"},
	},
	recipe.MealTypeLunch: {
		title:       "Mixed salad bowl",
		prepMinutes: 15,
		groceries:   []string{"salad greens", "cherry tomatoes"},
	},
	recipe.MealTypeDinner: {
		title:       "Vegetable stir fry with rice",
		prepMinutes: 25,
		groceries:   []string{"stir fry vegetables", "rice"},
	},
}

// Generate builds a full week from the candidates in the context. Each
// core slot cycles through the candidates whose effective meal types
// cover it; slots with no candidate get a simple staple meal instead.
func (g *Generator) Generate(ctx context.Context, genCtx outbound.GenerationContext, instruction string) (*outbound.GeneratedPlan, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buckets := bucketCandidates(genCtx.Candidates)
	cursors := make(map[recipe.MealType]int, len(buckets))
	shopping := newShoppingList(genCtx.Groceries)

	days := make([]outbound.GeneratedDay, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		date := genCtx.WeekStart.AddDate(0, 0, i)
		day := outbound.GeneratedDay{Label: date.Weekday().String()}

		for _, mealType := range recipe.CoreMealTypes() {
			bucket := buckets[mealType]
			if len(bucket) == 0 {
				day.Meals = append(day.Meals, g.inventMeal(mealType, shopping))
				continue
			}
			candidate := bucket[cursors[mealType]%len(bucket)]
			cursors[mealType]++
			day.Meals = append(day.Meals, outbound.GeneratedMeal{
				MealType:    string(mealType),
				RecipeID:    candidate.ID.String(),
				Title:       candidate.Title,
				PrepMinutes: candidate.PrepMinutes,
				Servings:    candidate.Servings,
			})
		}
		days = append(days, day)
	}

	g.metrics.GeneratorRequest("local", "ok", time.Since(start))
	g.logger.Debug("Generated deterministic plan",
		zap.Int("candidates", len(genCtx.Candidates)),
		zap.String("coverage_mode", genCtx.CoverageMode),
	)

	return &outbound.GeneratedPlan{
		Days:         days,
		ShoppingList: shopping.items(),
	}, nil
}

// inventMeal fills a slot no candidate covers and records what the
// household needs to buy for it
func (g *Generator) inventMeal(mealType recipe.MealType, shopping *shoppingList) outbound.GeneratedMeal {
	fallback, ok := fallbackMeals[mealType]
	if !ok {
		fallback = fallbackMeal{title: fmt.Sprintf("Simple %s", mealType), prepMinutes: 20}
	}
	shopping.add(fallback.groceries)
	return outbound.GeneratedMeal{
		MealType:    string(mealType),
		Title:       fallback.title,
		PrepMinutes: fallback.prepMinutes,
		Servings:    2,
		Note:        "pantry staple suggestion",
	}
}

// bucketCandidates groups candidates by the core slots their effective
// meal types cover. A candidate tagged only side_dish lands in both
// lunch and dinner through the expansion.
func bucketCandidates(candidates []outbound.RecipeContext) map[recipe.MealType][]outbound.RecipeContext {
	buckets := make(map[recipe.MealType][]outbound.RecipeContext)
	for _, candidate := range candidates {
		declared := make(recipe.MealTypes, 0, len(candidate.MealTypes))
		for _, raw := range candidate.MealTypes {
			if mt, ok := recipe.ParseMealType(raw); ok {
				declared = append(declared, mt)
			}
		}
		effective := declared.Effective()
		for _, mealType := range recipe.CoreMealTypes() {
			if effective.Contains(mealType) {
				buckets[mealType] = append(buckets[mealType], candidate)
			}
		}
	}
	return buckets
}

// shoppingList collects staples to buy, skipping pantry items the
// household already has. Order of first mention is preserved.
type shoppingList struct {
	onHand map[string]bool
	seen   map[string]bool
	order  []string
}

func newShoppingList(groceries []outbound.GroceryContext) *shoppingList {
	onHand := make(map[string]bool, len(groceries))
	for _, item := range groceries {
		onHand[item.Name] = true
	}
	return &shoppingList{
		onHand: onHand,
		seen:   make(map[string]bool),
	}
}

func (l *shoppingList) add(items []string) {
	for _, item := range items {
		if l.onHand[item] || l.seen[item] {
			continue
		}
		l.seen[item] = true
		l.order = append(l.order, item)
	}
}

func (l *shoppingList) items() []string {
	return l.order
}
