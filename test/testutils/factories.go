// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	workspaceID uuid.UUID
	title       string
	ingredients []recipe.Ingredient
	tags        []string
	mealTypes   recipe.MealTypes
	prepTime    time.Duration
	cookTime    time.Duration
	servings    int
	appliances  []recipe.ApplianceType
	ratings     map[string]recipe.Preference
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		workspaceID: uuid.New(),
		title:       "Weeknight Test Dish",
		prepTime:    15 * time.Minute,
		cookTime:    30 * time.Minute,
		servings:    4,
	}
}

// WithWorkspace sets the owning workspace
func (rb *RecipeBuilder) WithWorkspace(workspaceID uuid.UUID) *RecipeBuilder {
	rb.workspaceID = workspaceID
	return rb
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.title = title
	return rb
}

// WithIngredients sets the recipe ingredients
func (rb *RecipeBuilder) WithIngredients(ingredients []recipe.Ingredient) *RecipeBuilder {
	rb.ingredients = ingredients
	return rb
}

// WithIngredientNames sets bare one-cup ingredients from names alone,
// which is all the constraint and search code reads
func (rb *RecipeBuilder) WithIngredientNames(names ...string) *RecipeBuilder {
	ingredients := make([]recipe.Ingredient, len(names))
	for i, name := range names {
		ingredients[i] = recipe.Ingredient{
			Name:   name,
			Amount: 1,
			Unit:   recipe.MeasurementUnitCup,
		}
	}
	rb.ingredients = ingredients
	return rb
}

// WithTags sets the recipe tags
func (rb *RecipeBuilder) WithTags(tags ...string) *RecipeBuilder {
	rb.tags = tags
	return rb
}

// WithMealTypes declares an explicit meal-type set
func (rb *RecipeBuilder) WithMealTypes(mealTypes ...recipe.MealType) *RecipeBuilder {
	rb.mealTypes = mealTypes
	return rb
}

// WithTimings sets prep and cook time
func (rb *RecipeBuilder) WithTimings(prepTime, cookTime time.Duration) *RecipeBuilder {
	rb.prepTime = prepTime
	rb.cookTime = cookTime
	return rb
}

// WithServings sets the number of servings
func (rb *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	rb.servings = servings
	return rb
}

// WithAppliances sets the required appliances
func (rb *RecipeBuilder) WithAppliances(appliances ...recipe.ApplianceType) *RecipeBuilder {
	rb.appliances = appliances
	return rb
}

// WithRating records one member's preference on the built recipe
func (rb *RecipeBuilder) WithRating(member string, preference recipe.Preference) *RecipeBuilder {
	if rb.ratings == nil {
		rb.ratings = make(map[string]recipe.Preference)
	}
	rb.ratings[member] = preference
	return rb
}

// Build constructs the recipe with validation
func (rb *RecipeBuilder) Build() (*recipe.Recipe, error) {
	r, err := recipe.NewRecipe(rb.workspaceID, rb.title)
	if err != nil {
		return nil, err
	}

	if len(rb.tags) > 0 {
		r.SetTags(rb.tags)
	}
	for _, ingredient := range rb.ingredients {
		if err := r.AddIngredient(ingredient); err != nil {
			return nil, err
		}
	}
	if len(rb.mealTypes) > 0 {
		if err := r.SetMealTypes(rb.mealTypes); err != nil {
			return nil, err
		}
	}
	if err := r.SetTiming(rb.prepTime, rb.cookTime); err != nil {
		return nil, err
	}
	if err := r.SetServings(rb.servings); err != nil {
		return nil, err
	}
	if len(rb.appliances) > 0 {
		if err := r.SetAppliances(rb.appliances); err != nil {
			return nil, err
		}
	}
	for member, preference := range rb.ratings {
		if err := r.RateBy(member, preference); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustBuild constructs the recipe and panics on validation failure.
// For test setup where the inputs are known good.
func (rb *RecipeBuilder) MustBuild() *recipe.Recipe {
	r, err := rb.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// RecipeFactory methods for creating common recipe types

// CreateSimpleRecipe creates a basic dinner recipe with minimal data
func (rf *RecipeFactory) CreateSimpleRecipe(workspaceID uuid.UUID) (*recipe.Recipe, error) {
	return NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle(rf.faker.Dinner()).
		WithIngredientNames(rf.faker.Vegetable(), rf.faker.Fruit()).
		Build()
}

// CreateBreakfastRecipe creates a recipe the classifier puts in the
// breakfast slot
func (rf *RecipeFactory) CreateBreakfastRecipe(workspaceID uuid.UUID) (*recipe.Recipe, error) {
	return NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle(rf.faker.Fruit() + " Oatmeal Bowl").
		WithIngredientNames("rolled oats", rf.faker.Fruit()).
		WithTimings(10*time.Minute, 5*time.Minute).
		WithServings(2).
		Build()
}

// CreateLunchRecipe creates a recipe the classifier puts in the lunch
// slot
func (rf *RecipeFactory) CreateLunchRecipe(workspaceID uuid.UUID) (*recipe.Recipe, error) {
	return NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle(rf.faker.Vegetable() + " Salad").
		WithIngredientNames(rf.faker.Vegetable(), "olive oil").
		WithTimings(15*time.Minute, 0).
		Build()
}

// CreateDinnerRecipe creates a recipe the classifier puts in the dinner
// slot
func (rf *RecipeFactory) CreateDinnerRecipe(workspaceID uuid.UUID) (*recipe.Recipe, error) {
	return NewRecipeBuilder().
		WithWorkspace(workspaceID).
		WithTitle("Roast " + rf.faker.Vegetable()).
		WithIngredientNames(rf.faker.Vegetable(), "garlic").
		WithTimings(20*time.Minute, 40*time.Minute).
		Build()
}

// CreateBalancedLibrary creates perType recipes for each core meal type,
// all in the given workspace. Titles are numbered so tests can tell
// recipes apart; meal types are explicit so coverage is exact.
func (rf *RecipeFactory) CreateBalancedLibrary(workspaceID uuid.UUID, perType int) ([]*recipe.Recipe, error) {
	titles := map[recipe.MealType]string{
		recipe.MealTypeBreakfast: "Morning Bowl",
		recipe.MealTypeLunch:     "Midday Plate",
		recipe.MealTypeDinner:    "Evening Roast",
	}

	var library []*recipe.Recipe
	for _, mt := range recipe.CoreMealTypes() {
		for i := 0; i < perType; i++ {
			r, err := NewRecipeBuilder().
				WithWorkspace(workspaceID).
				WithTitle(titles[mt] + " " + string(rune('A'+i))).
				WithIngredientNames(rf.faker.Vegetable()).
				WithMealTypes(mt).
				Build()
			if err != nil {
				return nil, err
			}
			library = append(library, r)
		}
	}
	return library, nil
}

// ProfileFactory provides methods to create test household profiles
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a new profile factory with seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{
		faker: gofakeit.New(seed),
	}
}

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	workspaceID       uuid.UUID
	members           []household.FamilyMember
	cookingMethods    []string
	timeCeilings      map[household.Period]time.Duration
	weeknightPriority string
}

// NewProfileBuilder creates a new profile builder with a single adult
// member
func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		workspaceID: uuid.New(),
		members: []household.FamilyMember{
			{Name: "Alex", AgeGroup: household.AgeGroupAdult},
		},
	}
}

// WithWorkspace sets the owning workspace
func (pb *ProfileBuilder) WithWorkspace(workspaceID uuid.UUID) *ProfileBuilder {
	pb.workspaceID = workspaceID
	return pb
}

// WithMembers replaces the member list
func (pb *ProfileBuilder) WithMembers(members ...household.FamilyMember) *ProfileBuilder {
	pb.members = members
	return pb
}

// WithCookingMethods sets the preferred cooking methods
func (pb *ProfileBuilder) WithCookingMethods(methods ...string) *ProfileBuilder {
	pb.cookingMethods = methods
	return pb
}

// WithTimeCeiling records a cooking-time ceiling for a period
func (pb *ProfileBuilder) WithTimeCeiling(period household.Period, ceiling time.Duration) *ProfileBuilder {
	if pb.timeCeilings == nil {
		pb.timeCeilings = make(map[household.Period]time.Duration)
	}
	pb.timeCeilings[period] = ceiling
	return pb
}

// WithWeeknightPriority sets the weeknight-priority phrase
func (pb *ProfileBuilder) WithWeeknightPriority(phrase string) *ProfileBuilder {
	pb.weeknightPriority = phrase
	return pb
}

// Build constructs the profile with validation
func (pb *ProfileBuilder) Build() (*household.Profile, error) {
	p, err := household.NewProfile(pb.workspaceID, pb.members)
	if err != nil {
		return nil, err
	}

	if len(pb.cookingMethods) > 0 {
		p.SetCookingMethods(pb.cookingMethods)
	}
	for period, ceiling := range pb.timeCeilings {
		if err := p.SetTimeCeiling(period, ceiling); err != nil {
			return nil, err
		}
	}
	if pb.weeknightPriority != "" {
		p.SetWeeknightPriority(pb.weeknightPriority)
	}

	return p, nil
}

// MustBuild constructs the profile and panics on validation failure
func (pb *ProfileBuilder) MustBuild() *household.Profile {
	p, err := pb.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// CreateFamilyProfile creates a two-member profile with one allergy and
// one dislike, the smallest shape that exercises every constraint path
func (pf *ProfileFactory) CreateFamilyProfile(workspaceID uuid.UUID) (*household.Profile, error) {
	return NewProfileBuilder().
		WithWorkspace(workspaceID).
		WithMembers(
			household.FamilyMember{
				Name:      pf.faker.FirstName(),
				AgeGroup:  household.AgeGroupAdult,
				Allergies: []string{"peanuts"},
			},
			household.FamilyMember{
				Name:     pf.faker.FirstName(),
				AgeGroup: household.AgeGroupChild,
				Dislikes: []string{"mushrooms"},
			},
		).
		Build()
}

// Grocery item helpers

// ExpiringGrocery creates a pantry item purchased three days before now
// that expires within the window tests use
func ExpiringGrocery(name string, now time.Time) household.GroceryItem {
	purchased := now.AddDate(0, 0, -3)
	expires := now.AddDate(0, 0, 1)
	return household.GroceryItem{
		Name:        name,
		PurchasedAt: &purchased,
		ExpiresAt:   &expires,
	}
}

// FreshGrocery creates a pantry item with a far-off expiry date
func FreshGrocery(name string, now time.Time) household.GroceryItem {
	purchased := now.AddDate(0, 0, -1)
	expires := now.AddDate(0, 0, 30)
	return household.GroceryItem{
		Name:        name,
		PurchasedAt: &purchased,
		ExpiresAt:   &expires,
	}
}

// UndatedGrocery creates a pantry item with no dates recorded
func UndatedGrocery(name string) household.GroceryItem {
	return household.GroceryItem{Name: name}
}
