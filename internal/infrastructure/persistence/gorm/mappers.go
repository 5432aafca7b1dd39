// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to a GORM model. Ratings travel
// through their own table, not the recipe row.
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	ingredients := make(IngredientSlice, len(r.Ingredients()))
	for i, ing := range r.Ingredients() {
		ingredients[i] = IngredientRecord{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     string(ing.Unit),
			Optional: ing.Optional,
			Notes:    ing.Notes,
		}
	}

	appliances := make(StringSlice, len(r.Appliances()))
	for i, a := range r.Appliances() {
		appliances[i] = string(a)
	}

	// Inferred meal types stay out of the row so reloading re-infers
	// them from whatever the title and tags say then.
	var mealTypes StringSlice
	if r.MealTypesExplicit() {
		mealTypes = StringSlice(r.MealTypes().Strings())
	}

	return &RecipeModel{
		ID:              r.ID(),
		WorkspaceID:     r.WorkspaceID(),
		Title:           r.Title(),
		Ingredients:     ingredients,
		Instructions:    r.Instructions(),
		Tags:            StringSlice(r.Tags()),
		MealTypes:       mealTypes,
		PrepTimeMinutes: int(r.PrepTime() / time.Minute),
		CookTimeMinutes: int(r.CookTime() / time.Minute),
		Servings:        r.Servings(),
		Appliances:      appliances,
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// ModelToRecipe rebuilds a domain recipe from a GORM model and its
// preloaded ratings
func ModelToRecipe(m *RecipeModel) (*recipe.Recipe, error) {
	ingredients := make([]recipe.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = recipe.Ingredient{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     recipe.MeasurementUnit(ing.Unit),
			Optional: ing.Optional,
			Notes:    ing.Notes,
		}
	}

	mealTypes := make(recipe.MealTypes, 0, len(m.MealTypes))
	for _, raw := range m.MealTypes {
		mt, ok := recipe.ParseMealType(raw)
		if !ok {
			return nil, recipe.ErrInvalidMealType
		}
		mealTypes = append(mealTypes, mt)
	}

	appliances := make([]recipe.ApplianceType, len(m.Appliances))
	for i, a := range m.Appliances {
		appliances[i] = recipe.ApplianceType(a)
	}

	var ratings map[string]recipe.Preference
	if len(m.Ratings) > 0 {
		ratings = make(map[string]recipe.Preference, len(m.Ratings))
		for _, rating := range m.Ratings {
			ratings[rating.Member] = recipe.Preference(rating.Preference)
		}
	}

	return recipe.ReconstructRecipe(
		m.ID,
		m.WorkspaceID,
		m.Title,
		ingredients,
		m.Instructions,
		[]string(m.Tags),
		mealTypes,
		time.Duration(m.PrepTimeMinutes)*time.Minute,
		time.Duration(m.CookTimeMinutes)*time.Minute,
		m.Servings,
		appliances,
		ratings,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ProfileToModel converts a household profile to a GORM model
func ProfileToModel(p *household.Profile) *HouseholdProfileModel {
	members := make(MemberSlice, len(p.Members()))
	for i, m := range p.Members() {
		members[i] = MemberRecord{
			Name:        m.Name,
			AgeGroup:    string(m.AgeGroup),
			Allergies:   m.Allergies,
			Dislikes:    m.Dislikes,
			Preferences: m.Preferences,
		}
	}

	ceilings := make(IntMap, len(p.TimeCeilings()))
	for period, ceiling := range p.TimeCeilings() {
		ceilings[string(period)] = int(ceiling / time.Minute)
	}

	return &HouseholdProfileModel{
		ID:                p.ID(),
		WorkspaceID:       p.WorkspaceID(),
		Members:           members,
		CookingMethods:    StringSlice(p.CookingMethods()),
		TimeCeilings:      ceilings,
		WeeknightPriority: p.WeeknightPriority(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

// ModelToProfile rebuilds a household profile from a GORM model
func ModelToProfile(m *HouseholdProfileModel) (*household.Profile, error) {
	members := make([]household.FamilyMember, len(m.Members))
	for i, rec := range m.Members {
		members[i] = household.FamilyMember{
			Name:        rec.Name,
			AgeGroup:    household.AgeGroup(rec.AgeGroup),
			Allergies:   rec.Allergies,
			Dislikes:    rec.Dislikes,
			Preferences: rec.Preferences,
		}
	}

	ceilings := make(map[household.Period]time.Duration, len(m.TimeCeilings))
	for period, minutes := range m.TimeCeilings {
		ceilings[household.Period(period)] = time.Duration(minutes) * time.Minute
	}

	return household.ReconstructProfile(
		m.ID,
		m.WorkspaceID,
		members,
		[]string(m.CookingMethods),
		ceilings,
		m.WeeknightPriority,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// GroceryItemsToModels converts pantry items for storage, preserving
// their order through Position
func GroceryItemsToModels(workspaceID uuid.UUID, items []household.GroceryItem) []GroceryItemModel {
	models := make([]GroceryItemModel, len(items))
	for i, item := range items {
		models[i] = GroceryItemModel{
			WorkspaceID: workspaceID,
			Name:        item.Name,
			PurchasedAt: item.PurchasedAt,
			ExpiresAt:   item.ExpiresAt,
			Position:    i,
		}
	}
	return models
}

// ModelsToGroceryItems converts stored pantry rows back to domain items
func ModelsToGroceryItems(models []GroceryItemModel) []household.GroceryItem {
	items := make([]household.GroceryItem, len(models))
	for i, m := range models {
		items[i] = household.GroceryItem{
			Name:        m.Name,
			PurchasedAt: m.PurchasedAt,
			ExpiresAt:   m.ExpiresAt,
		}
	}
	return items
}
