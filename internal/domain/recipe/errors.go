package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleTooShort   = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong    = errors.New("recipe title must not exceed 200 characters")
	ErrInvalidServings = errors.New("servings must be greater than 0")
	ErrNegativeTiming  = errors.New("prep and cook time cannot be negative")

	// Classification and rating errors
	ErrInvalidMealType   = errors.New("unknown meal type token")
	ErrInvalidAppliance  = errors.New("unknown appliance token")
	ErrInvalidPreference = errors.New("preference must be like or dislike")
	ErrEmptyMemberName   = errors.New("member name is required")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
