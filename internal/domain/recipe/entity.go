// Package recipe contains the core domain logic for the recipe library.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/shared"
)

// Recipe represents a library recipe and the facts the planner needs
// about it: what goes into it, which meal slots it can fill, and how
// household members have rated it.
type Recipe struct {
	// Aggregate root identifier
	id          uuid.UUID
	workspaceID uuid.UUID

	// Basic attributes
	title        string
	ingredients  []Ingredient
	instructions string
	tags         []string

	// Meal slot membership. effectiveMeals carries the side-dish
	// expansion (side_dish serves lunch and dinner) computed once here
	// so algorithms never re-derive it.
	mealTypes         MealTypes
	effectiveMeals    MealTypes
	mealTypesExplicit bool

	// Timing and sizing
	prepTime time.Duration
	cookTime time.Duration
	servings int

	// Required appliances
	appliances []ApplianceType

	// Optional per-member preference snapshot (member name -> like/dislike)
	ratings map[string]Preference

	// Metadata
	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation. Meal types start out
// inferred from the title and stay inferred until SetMealTypes is called
// with an explicit set.
func NewRecipe(workspaceID uuid.UUID, title string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		id:          uuid.New(),
		workspaceID: workspaceID,
		title:       title,
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}
	r.classifyMealTypes()

	r.addEvent(RecipeCreatedEvent{
		RecipeID:    r.id,
		WorkspaceID: workspaceID,
		Title:       title,
		CreatedAt:   now,
	})

	return r, nil
}

// ReconstructRecipe rebuilds a Recipe from persisted state without raising
// events. An empty meal-type set triggers classification from title and
// tags; this is the single place stored recipes cross the data-model
// boundary, so the non-empty invariant holds for every recipe the
// planner sees.
func ReconstructRecipe(
	id uuid.UUID,
	workspaceID uuid.UUID,
	title string,
	ingredients []Ingredient,
	instructions string,
	tags []string,
	mealTypes MealTypes,
	prepTime time.Duration,
	cookTime time.Duration,
	servings int,
	appliances []ApplianceType,
	ratings map[string]Preference,
	createdAt time.Time,
	updatedAt time.Time,
) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	r := &Recipe{
		id:           id,
		workspaceID:  workspaceID,
		title:        title,
		ingredients:  ingredients,
		instructions: instructions,
		tags:         tags,
		prepTime:     prepTime,
		cookTime:     cookTime,
		servings:     servings,
		appliances:   appliances,
		ratings:      ratings,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		events:       []shared.DomainEvent{},
	}

	if len(mealTypes) > 0 {
		for _, mt := range mealTypes {
			if !mt.IsValid() {
				return nil, ErrInvalidMealType
			}
		}
		r.mealTypes = mealTypes.Dedupe()
		r.effectiveMeals = r.mealTypes.Effective()
		r.mealTypesExplicit = true
	} else {
		r.classifyMealTypes()
	}

	return r, nil
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// WorkspaceID returns the owning workspace identifier
func (r *Recipe) WorkspaceID() uuid.UUID {
	return r.workspaceID
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Ingredients returns the recipe's ordered ingredient list
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// Instructions returns the recipe's instructions text
func (r *Recipe) Instructions() string {
	return r.instructions
}

// Tags returns the recipe's tags
func (r *Recipe) Tags() []string {
	return r.tags
}

// MealTypes returns the declared meal-type set
func (r *Recipe) MealTypes() MealTypes {
	return r.mealTypes
}

// EffectiveMealTypes returns the meal-type set with the side-dish
// expansion applied
func (r *Recipe) EffectiveMealTypes() MealTypes {
	return r.effectiveMeals
}

// MealTypesExplicit reports whether the meal types were set by a user
// rather than inferred from title and tags. Persistence keeps this so a
// reloaded recipe re-infers only when the user never tagged it.
func (r *Recipe) MealTypesExplicit() bool {
	return r.mealTypesExplicit
}

// CoversMealType reports whether the recipe can fill the given meal slot
func (r *Recipe) CoversMealType(mt MealType) bool {
	return r.effectiveMeals.Contains(mt)
}

// PrepTime returns the preparation time
func (r *Recipe) PrepTime() time.Duration {
	return r.prepTime
}

// CookTime returns the active cooking time
func (r *Recipe) CookTime() time.Duration {
	return r.cookTime
}

// Servings returns the number of servings
func (r *Recipe) Servings() int {
	return r.servings
}

// Appliances returns the required appliances
func (r *Recipe) Appliances() []ApplianceType {
	return r.appliances
}

// Ratings returns the per-member preference snapshot
func (r *Recipe) Ratings() map[string]Preference {
	return r.ratings
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// UpdateTitle updates the recipe title with validation
func (r *Recipe) UpdateTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	oldTitle := r.title
	r.title = title
	r.updatedAt = time.Now()
	if !r.mealTypesExplicit {
		r.classifyMealTypes()
	}

	r.addEvent(RecipeTitleUpdatedEvent{
		RecipeID:  r.id,
		OldTitle:  oldTitle,
		NewTitle:  title,
		UpdatedAt: r.updatedAt,
	})

	return nil
}

// AddIngredient appends an ingredient, preserving declaration order
func (r *Recipe) AddIngredient(ingredient Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}

	r.ingredients = append(r.ingredients, ingredient)
	r.updatedAt = time.Now()

	return nil
}

// SetInstructions replaces the instructions text
func (r *Recipe) SetInstructions(instructions string) {
	r.instructions = instructions
	r.updatedAt = time.Now()
}

// SetTags replaces the tag set. Inferred meal types are reclassified
// because tags participate in classification.
func (r *Recipe) SetTags(tags []string) {
	r.tags = tags
	r.updatedAt = time.Now()
	if !r.mealTypesExplicit {
		r.classifyMealTypes()
	}
}

// SetMealTypes declares an explicit meal-type set. Passing an empty set
// reverts to classification from title and tags.
func (r *Recipe) SetMealTypes(mealTypes MealTypes) error {
	if len(mealTypes) == 0 {
		r.mealTypesExplicit = false
		r.classifyMealTypes()
		r.updatedAt = time.Now()
		return nil
	}

	for _, mt := range mealTypes {
		if !mt.IsValid() {
			return ErrInvalidMealType
		}
	}

	r.mealTypes = mealTypes.Dedupe()
	r.effectiveMeals = r.mealTypes.Effective()
	r.mealTypesExplicit = true
	r.updatedAt = time.Now()

	r.addEvent(RecipeMealTypesSetEvent{
		RecipeID:  r.id,
		MealTypes: r.mealTypes,
		SetAt:     r.updatedAt,
	})

	return nil
}

// SetTiming records preparation and active cooking time
func (r *Recipe) SetTiming(prepTime, cookTime time.Duration) error {
	if prepTime < 0 || cookTime < 0 {
		return ErrNegativeTiming
	}

	r.prepTime = prepTime
	r.cookTime = cookTime
	r.updatedAt = time.Now()

	return nil
}

// SetServings records how many people the recipe serves
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}

	r.servings = servings
	r.updatedAt = time.Now()

	return nil
}

// SetAppliances replaces the required-appliance set
func (r *Recipe) SetAppliances(appliances []ApplianceType) error {
	for _, a := range appliances {
		if !a.IsValid() {
			return ErrInvalidAppliance
		}
	}

	r.appliances = appliances
	r.updatedAt = time.Now()

	return nil
}

// RateBy records a member's like or dislike for the recipe
func (r *Recipe) RateBy(member string, preference Preference) error {
	if member == "" {
		return ErrEmptyMemberName
	}
	if !preference.IsValid() {
		return ErrInvalidPreference
	}

	if r.ratings == nil {
		r.ratings = make(map[string]Preference)
	}
	r.ratings[member] = preference
	r.updatedAt = time.Now()

	r.addEvent(RecipeRatedEvent{
		RecipeID:   r.id,
		Member:     member,
		Preference: preference,
		RatedAt:    r.updatedAt,
	})

	return nil
}

// classifyMealTypes applies the classifier and caches the expanded set
func (r *Recipe) classifyMealTypes() {
	r.mealTypes = InferMealTypes(r.title, r.tags)
	r.effectiveMeals = r.mealTypes.Effective()
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = []shared.DomainEvent{}
	return events
}

// validateTitle validates recipe title
func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
