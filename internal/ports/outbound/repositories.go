// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// ErrCacheMiss is returned by CacheRepository.Get when a key is absent
// or expired, whichever backend serves it
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines the interface for recipe library persistence.
// This follows the Repository pattern for data access abstraction.
// ListAll makes no ordering promise; callers impose their own order.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*recipe.Recipe, error)
	ListAll(ctx context.Context, workspaceID uuid.UUID) ([]*recipe.Recipe, error)
}

// HouseholdRepository defines the interface for household persistence.
// A workspace has at most one profile; FindByWorkspace returns
// household.ErrProfileNotFound when none exists.
type HouseholdRepository interface {
	Save(ctx context.Context, profile *household.Profile) error
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*household.Profile, error)
	GroceriesFor(ctx context.Context, workspaceID uuid.UUID) ([]household.GroceryItem, error)
	SaveGroceries(ctx context.Context, workspaceID uuid.UUID, items []household.GroceryItem) error
}

// RatingSnapshot maps recipe ids to each member's recorded preference
type RatingSnapshot map[uuid.UUID]map[string]recipe.Preference

// ForRecipe returns the per-member ratings of one recipe, nil when the
// recipe has none
func (s RatingSnapshot) ForRecipe(id uuid.UUID) map[string]recipe.Preference {
	return s[id]
}

// RatingRepository defines the interface for like/dislike persistence
type RatingRepository interface {
	SaveRating(ctx context.Context, workspaceID, recipeID uuid.UUID, member string, preference recipe.Preference) error
	RatingsFor(ctx context.Context, workspaceID uuid.UUID) (RatingSnapshot, error)
}

// SimilaritySearchService ranks library recipes by relevance to a
// natural-language query. The result is ordered by decreasing relevance
// and may be empty; the planner falls back to keyword search then.
type SimilaritySearchService interface {
	Rank(ctx context.Context, query string, workspaceID uuid.UUID, maxResults int) ([]uuid.UUID, error)
}

// PlanGeneratorService is the opaque weekly-plan generator. The raw
// result is untrusted; the caller validates it into a domain plan.
type PlanGeneratorService interface {
	Generate(ctx context.Context, genCtx GenerationContext, instruction string) (*GeneratedPlan, error)
}

// GenerationContext is the structured payload handed to the generator
type GenerationContext struct {
	WorkspaceID  uuid.UUID         `json:"workspace_id"`
	WeekStart    time.Time         `json:"week_start"`
	Household    HouseholdContext  `json:"household"`
	Groceries    []GroceryContext  `json:"groceries,omitempty"`
	Candidates   []RecipeContext   `json:"candidates,omitempty"`
	FreeText     string            `json:"free_text,omitempty"`
	CoverageMode string            `json:"coverage_mode"`
}

// HouseholdContext summarizes the household for the generator
type HouseholdContext struct {
	Members           []MemberContext `json:"members"`
	CookingMethods    []string        `json:"cooking_methods,omitempty"`
	TimeCeilings      map[string]int  `json:"time_ceilings,omitempty"`
	WeeknightPriority string          `json:"weeknight_priority,omitempty"`
}

// MemberContext summarizes one member for the generator
type MemberContext struct {
	Name        string   `json:"name"`
	AgeGroup    string   `json:"age_group,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// GroceryContext is one pantry item with its use-it-up flag
type GroceryContext struct {
	Name         string `json:"name"`
	ExpiringSoon bool   `json:"expiring_soon"`
}

// RecipeContext is one candidate recipe annotated with its ratings
type RecipeContext struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Ingredients []string          `json:"ingredients"`
	MealTypes   []string          `json:"meal_types"`
	Tags        []string          `json:"tags,omitempty"`
	PrepMinutes int               `json:"prep_minutes"`
	CookMinutes int               `json:"cook_minutes"`
	Servings    int               `json:"servings"`
	Ratings     map[string]string `json:"ratings,omitempty"`
}

// GeneratedPlan is the generator's raw weekly plan before validation
type GeneratedPlan struct {
	Days         []GeneratedDay `json:"days"`
	ShoppingList []string       `json:"shopping_list,omitempty"`
}

// GeneratedDay is one raw day entry
type GeneratedDay struct {
	Label string          `json:"label"`
	Meals []GeneratedMeal `json:"meals"`
}

// GeneratedMeal is one raw meal entry. RecipeID is set when the
// generator reused a library candidate.
type GeneratedMeal struct {
	MealType    string `json:"meal_type"`
	RecipeID    string `json:"recipe_id,omitempty"`
	Title       string `json:"title"`
	PrepMinutes int    `json:"prep_minutes,omitempty"`
	Servings    int    `json:"servings,omitempty"`
	Note        string `json:"note,omitempty"`
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
