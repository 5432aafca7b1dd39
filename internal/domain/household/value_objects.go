package household

import (
	"errors"
	"time"
)

// Value Objects - Immutable objects that describe aspects of the domain

// FamilyMember represents one person in the household. Allergy and
// dislike order is preserved: constraint warnings follow it.
type FamilyMember struct {
	Name        string
	AgeGroup    AgeGroup
	Allergies   []string
	Dislikes    []string
	Preferences []string
}

// Validate validates the family member
func (m FamilyMember) Validate() error {
	if m.Name == "" {
		return errors.New("family member name is required")
	}
	if m.AgeGroup != "" && !m.AgeGroup.IsValid() {
		return errors.New("unknown age group")
	}
	return nil
}

// AgeGroup represents a coarse age bracket
type AgeGroup string

const (
	AgeGroupToddler AgeGroup = "toddler"
	AgeGroupChild   AgeGroup = "child"
	AgeGroupTeen    AgeGroup = "teen"
	AgeGroupAdult   AgeGroup = "adult"
	AgeGroupSenior  AgeGroup = "senior"
)

// IsValid reports whether the age group is a known token
func (a AgeGroup) IsValid() bool {
	switch a {
	case AgeGroupToddler, AgeGroupChild, AgeGroupTeen, AgeGroupAdult, AgeGroupSenior:
		return true
	}
	return false
}

// Period identifies a span of the week a cooking-time ceiling applies to
type Period string

const (
	PeriodWeekday Period = "weekday"
	PeriodWeekend Period = "weekend"
)

// IsValid reports whether the period is a known token
func (p Period) IsValid() bool {
	return p == PeriodWeekday || p == PeriodWeekend
}

// GroceryItem represents something currently in the pantry
type GroceryItem struct {
	Name        string
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
}

// Validate validates the grocery item
func (g GroceryItem) Validate() error {
	if g.Name == "" {
		return errors.New("grocery item name is required")
	}
	return nil
}

// ExpiringSoon reports whether the item should be used up: both dates
// known, purchased before expiry, and no more than windowDays left.
// Already-expired items count as expiring.
func (g GroceryItem) ExpiringSoon(now time.Time, windowDays int) bool {
	if g.PurchasedAt == nil || g.ExpiresAt == nil {
		return false
	}
	if !g.PurchasedAt.Before(*g.ExpiresAt) {
		return false
	}

	daysRemaining := int(g.ExpiresAt.Sub(now).Hours() / 24)
	return daysRemaining <= windowDays
}
