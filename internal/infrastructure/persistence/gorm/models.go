// Package gorm provides GORM model definitions for the planner
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for library recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(255);not null;index"`

	// Recipe details
	Ingredients  IngredientSlice `gorm:"type:json"`
	Instructions string          `gorm:"type:text"`
	Tags         StringSlice     `gorm:"type:json"`

	// Meal slot membership. Empty means the domain layer infers the
	// set from title and tags on reload.
	MealTypes StringSlice `gorm:"type:json"`

	// Timing (stored in minutes)
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	Servings   int         `gorm:"default:1"`
	Appliances StringSlice `gorm:"type:json"`

	// Metadata
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Ratings []RecipeRatingModel `gorm:"foreignKey:RecipeID"`
}

// RecipeRatingModel represents one member's like/dislike of a recipe
type RecipeRatingModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipeID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_ratings_recipe_member"`
	Member      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_ratings_recipe_member"`
	Preference  string    `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HouseholdProfileModel represents the GORM model for the household
// profile. A workspace has at most one.
type HouseholdProfileModel struct {
	ID                uuid.UUID   `gorm:"type:char(36);primaryKey"`
	WorkspaceID       uuid.UUID   `gorm:"type:char(36);not null;uniqueIndex"`
	Members           MemberSlice `gorm:"type:json"`
	CookingMethods    StringSlice `gorm:"type:json"`
	TimeCeilings      IntMap      `gorm:"type:json"`
	WeeknightPriority string      `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GroceryItemModel represents one pantry item
type GroceryItemModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
	Position    int `gorm:"default:0"`
	CreatedAt   time.Time
}

// IngredientRecord is the JSON shape of one stored ingredient
type IngredientRecord struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Optional bool    `json:"optional,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// MemberRecord is the JSON shape of one stored family member
type MemberRecord struct {
	Name        string   `json:"name"`
	AgeGroup    string   `json:"age_group,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IngredientSlice custom type for handling ingredient lists in JSON
type IngredientSlice []IngredientRecord

// Scan implements the sql.Scanner interface
func (s *IngredientSlice) Scan(value interface{}) error {
	if value == nil {
		*s = IngredientSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into IngredientSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s IngredientSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// MemberSlice custom type for handling member lists in JSON
type MemberSlice []MemberRecord

// Scan implements the sql.Scanner interface
func (s *MemberSlice) Scan(value interface{}) error {
	if value == nil {
		*s = MemberSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into MemberSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s MemberSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IntMap custom type for handling string-keyed integer maps in JSON
type IntMap map[string]int

// Scan implements the sql.Scanner interface
func (m *IntMap) Scan(value interface{}) error {
	if value == nil {
		*m = IntMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into IntMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m IntMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeRatingModel
func (r *RecipeRatingModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for HouseholdProfileModel
func (h *HouseholdProfileModel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for GroceryItemModel
func (g *GroceryItemModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeRatingModel) TableName() string {
	return "recipe_ratings"
}

func (HouseholdProfileModel) TableName() string {
	return "household_profiles"
}

func (GroceryItemModel) TableName() string {
	return "grocery_items"
}
