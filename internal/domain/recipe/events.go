package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the recipe domain

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID    uuid.UUID
	WorkspaceID uuid.UUID
	Title       string
	CreatedAt   time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeTitleUpdatedEvent is raised when a recipe title is updated
type RecipeTitleUpdatedEvent struct {
	RecipeID  uuid.UUID
	OldTitle  string
	NewTitle  string
	UpdatedAt time.Time
}

func (e RecipeTitleUpdatedEvent) EventName() string {
	return "recipe.title.updated"
}

func (e RecipeTitleUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// RecipeMealTypesSetEvent is raised when an explicit meal-type set is
// declared for a recipe
type RecipeMealTypesSetEvent struct {
	RecipeID  uuid.UUID
	MealTypes MealTypes
	SetAt     time.Time
}

func (e RecipeMealTypesSetEvent) EventName() string {
	return "recipe.mealtypes.set"
}

func (e RecipeMealTypesSetEvent) OccurredAt() time.Time {
	return e.SetAt
}

// RecipeRatedEvent is raised when a member rates a recipe
type RecipeRatedEvent struct {
	RecipeID   uuid.UUID
	Member     string
	Preference Preference
	RatedAt    time.Time
}

func (e RecipeRatedEvent) EventName() string {
	return "recipe.rated"
}

func (e RecipeRatedEvent) OccurredAt() time.Time {
	return e.RatedAt
}
