// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gormModels "github.com/mealsmith/planner/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DemoWorkspaceID is the workspace all seed data belongs to
var DemoWorkspaceID = uuid.MustParse("5b2e7f4a-9c31-4f8d-8a07-2f6c1d8e9b45")

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migration
	err = db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.RecipeRatingModel{},
		&gormModels.HouseholdProfileModel{},
		&gormModels.GroceryItemModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with a demo household and a
// small recipe library
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var profileCount int64
	db.Model(&gormModels.HouseholdProfileModel{}).Count(&profileCount)
	if profileCount > 0 {
		return nil // Already seeded
	}

	profile := gormModels.HouseholdProfileModel{
		WorkspaceID: DemoWorkspaceID,
		Members: gormModels.MemberSlice{
			{
				Name:        "Dana",
				AgeGroup:    "adult",
				Allergies:   []string{"peanuts"},
				Dislikes:    []string{"mushrooms"},
				Preferences: []string{"mediterranean"},
			},
			{
				Name:     "Riley",
				AgeGroup: "child",
				Dislikes: []string{"spicy food"},
			},
		},
		CookingMethods:    gormModels.StringSlice{"oven", "stovetop", "slow_cooker"},
		TimeCeilings:      gormModels.IntMap{"weekday": 30, "weekend": 60},
		WeeknightPriority: "quick cleanup",
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create demo profile: %w", err)
	}

	// Meal types are mostly left empty so the classifier fills them in
	// on load, the way imported recipes arrive in practice
	demoRecipes := []gormModels.RecipeModel{
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Berry Oatmeal with Honey",
			Ingredients: gormModels.IngredientSlice{
				{Name: "rolled oats", Amount: 2, Unit: "cup"},
				{Name: "mixed berries", Amount: 1, Unit: "cup"},
				{Name: "honey", Amount: 2, Unit: "tbsp"},
			},
			Instructions:    "Simmer oats in milk, top with berries and honey.",
			Tags:            gormModels.StringSlice{"vegetarian", "quick"},
			PrepTimeMinutes: 5,
			CookTimeMinutes: 10,
			Servings:        2,
			Appliances:      gormModels.StringSlice{"stovetop"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Garden Veggie Omelet",
			Ingredients: gormModels.IngredientSlice{
				{Name: "eggs", Amount: 4, Unit: "piece"},
				{Name: "bell pepper", Amount: 1, Unit: "piece"},
				{Name: "cheddar", Amount: 0.5, Unit: "cup", Optional: true},
			},
			Instructions:    "Whisk eggs, cook with vegetables, fold and serve.",
			Tags:            gormModels.StringSlice{"vegetarian"},
			PrepTimeMinutes: 10,
			CookTimeMinutes: 10,
			Servings:        2,
			Appliances:      gormModels.StringSlice{"stovetop"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Chicken Caesar Wrap",
			Ingredients: gormModels.IngredientSlice{
				{Name: "chicken breast", Amount: 2, Unit: "piece"},
				{Name: "romaine lettuce", Amount: 1, Unit: "piece"},
				{Name: "tortilla", Amount: 4, Unit: "piece"},
			},
			Instructions:    "Grill chicken, slice, wrap with lettuce and dressing.",
			Tags:            gormModels.StringSlice{"quick"},
			PrepTimeMinutes: 15,
			CookTimeMinutes: 10,
			Servings:        4,
			Appliances:      gormModels.StringSlice{"stovetop"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Creamy Tomato Soup",
			Ingredients: gormModels.IngredientSlice{
				{Name: "canned tomatoes", Amount: 2, Unit: "can"},
				{Name: "vegetable stock", Amount: 3, Unit: "cup"},
				{Name: "cream", Amount: 0.5, Unit: "cup"},
			},
			Instructions:    "Simmer tomatoes in stock, blend, stir in cream.",
			Tags:            gormModels.StringSlice{"vegetarian", "freezer-friendly"},
			PrepTimeMinutes: 10,
			CookTimeMinutes: 25,
			Servings:        4,
			Appliances:      gormModels.StringSlice{"stovetop", "blender"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Sheet Pan Salmon with Asparagus",
			Ingredients: gormModels.IngredientSlice{
				{Name: "salmon fillet", Amount: 4, Unit: "piece"},
				{Name: "asparagus", Amount: 1, Unit: "bunch"},
				{Name: "lemon", Amount: 1, Unit: "piece"},
			},
			Instructions:    "Roast salmon and asparagus on one sheet pan.",
			Tags:            gormModels.StringSlice{"mediterranean"},
			PrepTimeMinutes: 10,
			CookTimeMinutes: 18,
			Servings:        4,
			Appliances:      gormModels.StringSlice{"oven"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Slow Cooker Beef Stew",
			Ingredients: gormModels.IngredientSlice{
				{Name: "beef chuck", Amount: 2, Unit: "lb"},
				{Name: "carrots", Amount: 4, Unit: "piece"},
				{Name: "potatoes", Amount: 3, Unit: "piece"},
			},
			Instructions:    "Brown beef, add vegetables and stock, cook on low 8 hours.",
			Tags:            gormModels.StringSlice{"make-ahead"},
			PrepTimeMinutes: 20,
			CookTimeMinutes: 480,
			Servings:        6,
			Appliances:      gormModels.StringSlice{"slow_cooker"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Garlic Butter Pasta",
			Ingredients: gormModels.IngredientSlice{
				{Name: "spaghetti", Amount: 1, Unit: "lb"},
				{Name: "butter", Amount: 4, Unit: "tbsp"},
				{Name: "garlic", Amount: 4, Unit: "clove"},
			},
			Instructions:    "Cook pasta, toss with garlic butter and parmesan.",
			Tags:            gormModels.StringSlice{"vegetarian", "quick"},
			PrepTimeMinutes: 5,
			CookTimeMinutes: 15,
			Servings:        4,
			Appliances:      gormModels.StringSlice{"stovetop"},
		},
		{
			WorkspaceID: DemoWorkspaceID,
			Title:       "Cheesy Garlic Bread",
			Ingredients: gormModels.IngredientSlice{
				{Name: "baguette", Amount: 1, Unit: "piece"},
				{Name: "mozzarella", Amount: 1, Unit: "cup"},
				{Name: "garlic", Amount: 3, Unit: "clove"},
			},
			Instructions:    "Split baguette, spread garlic butter, top with cheese, bake.",
			Tags:            gormModels.StringSlice{"vegetarian"},
			MealTypes:       gormModels.StringSlice{"side_dish"},
			PrepTimeMinutes: 10,
			CookTimeMinutes: 12,
			Servings:        4,
			Appliances:      gormModels.StringSlice{"oven"},
		},
	}

	for i := range demoRecipes {
		if err := db.Create(&demoRecipes[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo recipe: %w", err)
		}
	}

	ratings := []gormModels.RecipeRatingModel{
		{WorkspaceID: DemoWorkspaceID, RecipeID: demoRecipes[4].ID, Member: "Dana", Preference: "like"},
		{WorkspaceID: DemoWorkspaceID, RecipeID: demoRecipes[5].ID, Member: "Dana", Preference: "dislike"},
		{WorkspaceID: DemoWorkspaceID, RecipeID: demoRecipes[6].ID, Member: "Riley", Preference: "like"},
	}
	for i := range ratings {
		if err := db.Create(&ratings[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo rating: %w", err)
		}
	}

	now := time.Now()
	purchased := now.AddDate(0, 0, -3)
	expiring := now.AddDate(0, 0, 2)
	later := now.AddDate(0, 0, 14)
	groceries := []gormModels.GroceryItemModel{
		{WorkspaceID: DemoWorkspaceID, Name: "spinach", PurchasedAt: &purchased, ExpiresAt: &expiring, Position: 0},
		{WorkspaceID: DemoWorkspaceID, Name: "eggs", PurchasedAt: &purchased, ExpiresAt: &later, Position: 1},
		{WorkspaceID: DemoWorkspaceID, Name: "rice", Position: 2},
	}
	for i := range groceries {
		if err := db.Create(&groceries[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo grocery item: %w", err)
		}
	}

	return nil
}
