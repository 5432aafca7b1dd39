package recipe

import (
	"errors"
	"strings"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents an ingredient in a recipe
type Ingredient struct {
	Name     string
	Amount   float64
	Unit     MeasurementUnit
	Optional bool
	Notes    string
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if i.Amount < 0 {
		return errors.New("ingredient amount cannot be negative")
	}
	return nil
}

// MeasurementUnit represents units of measurement
type MeasurementUnit string

const (
	// Volume units
	MeasurementUnitTeaspoon   MeasurementUnit = "tsp"
	MeasurementUnitTablespoon MeasurementUnit = "tbsp"
	MeasurementUnitCup        MeasurementUnit = "cup"
	MeasurementUnitOunce      MeasurementUnit = "oz"
	MeasurementUnitMilliliter MeasurementUnit = "ml"
	MeasurementUnitLiter      MeasurementUnit = "l"

	// Weight units
	MeasurementUnitGram     MeasurementUnit = "g"
	MeasurementUnitKilogram MeasurementUnit = "kg"
	MeasurementUnitPound    MeasurementUnit = "lb"

	// Count units
	MeasurementUnitPiece MeasurementUnit = "piece"
	MeasurementUnitDash  MeasurementUnit = "dash"
	MeasurementUnitPinch MeasurementUnit = "pinch"
)

// MealType identifies a meal slot a recipe can fill
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeSideDish  MealType = "side_dish"
)

// IsValid reports whether the meal type is a known token
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeSideDish:
		return true
	}
	return false
}

// IsCore reports whether the meal type is one the planner guarantees
// coverage for
func (m MealType) IsCore() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// ParseMealType normalizes a free-form token ("Side Dish", "side-dish")
// into a MealType
func ParseMealType(s string) (MealType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	mt := MealType(normalized)
	if mt.IsValid() {
		return mt, true
	}
	return "", false
}

// CoreMealTypes returns the meal types balanced-coverage retrieval
// guarantees minimums for, in canonical order
func CoreMealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}

// MealTypes is an ordered meal-type set
type MealTypes []MealType

// Contains reports set membership
func (s MealTypes) Contains(mt MealType) bool {
	for _, m := range s {
		if m == mt {
			return true
		}
	}
	return false
}

// Dedupe removes duplicates, keeping first occurrence order
func (s MealTypes) Dedupe() MealTypes {
	out := make(MealTypes, 0, len(s))
	for _, m := range s {
		if !out.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

// Effective expands side_dish into lunch and dinner membership. The
// declared set is left untouched; side_dish itself stays in the result
// so callers can still tell a side apart from a main.
func (s MealTypes) Effective() MealTypes {
	out := make(MealTypes, 0, len(s)+2)
	for _, m := range s {
		if !out.Contains(m) {
			out = append(out, m)
		}
		if m == MealTypeSideDish {
			if !out.Contains(MealTypeLunch) {
				out = append(out, MealTypeLunch)
			}
			if !out.Contains(MealTypeDinner) {
				out = append(out, MealTypeDinner)
			}
		}
	}
	return out
}

// Strings returns the set as plain strings
func (s MealTypes) Strings() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = string(m)
	}
	return out
}

// ApplianceType represents a required kitchen appliance
type ApplianceType string

const (
	ApplianceOven        ApplianceType = "oven"
	ApplianceStovetop    ApplianceType = "stovetop"
	ApplianceSlowCooker  ApplianceType = "slow_cooker"
	ApplianceInstantPot  ApplianceType = "instant_pot"
	ApplianceAirFryer    ApplianceType = "air_fryer"
	ApplianceGrill       ApplianceType = "grill"
	ApplianceBlender     ApplianceType = "blender"
	ApplianceMicrowave   ApplianceType = "microwave"
)

// IsValid reports whether the appliance is a known token
func (a ApplianceType) IsValid() bool {
	switch a {
	case ApplianceOven, ApplianceStovetop, ApplianceSlowCooker, ApplianceInstantPot,
		ApplianceAirFryer, ApplianceGrill, ApplianceBlender, ApplianceMicrowave:
		return true
	}
	return false
}

// Preference represents a member's reaction to a recipe
type Preference string

const (
	PreferenceLike    Preference = "like"
	PreferenceDislike Preference = "dislike"
)

// IsValid reports whether the preference is a known token
func (p Preference) IsValid() bool {
	return p == PreferenceLike || p == PreferenceDislike
}
