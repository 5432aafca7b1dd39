// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/plan"
)

// PlanningService defines the use cases of the meal planner.
// This is the primary port that driving adapters call.
type PlanningService interface {
	// GeneratePlan runs the full pipeline: load inputs, compose the
	// retrieval query, select candidates, build the generation context,
	// invoke the generator, and validate the result. Single pass, no
	// retries; a failure always carries its reason.
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) (*plan.WeekPlan, error)

	// RetrieveCandidates builds a balanced candidate set for a query
	// without invoking the generator.
	RetrieveCandidates(ctx context.Context, query RetrieveCandidatesQuery) (*plan.CandidateSet, error)

	// SuggestAlternatives returns ranked, allergy-safe swap suggestions
	// for one meal slot.
	SuggestAlternatives(ctx context.Context, query SuggestAlternativesQuery) ([]plan.AlternativeSuggestion, error)

	// CheckConstraints reports whether a recipe is safe for the
	// household and which warnings apply.
	CheckConstraints(ctx context.Context, query CheckConstraintsQuery) (*ConstraintReport, error)
}

// Command objects for operations

// GeneratePlanCommand contains data for generating a weekly plan
type GeneratePlanCommand struct {
	WorkspaceID     uuid.UUID `json:"workspace_id"`
	WeekStart       time.Time `json:"week_start"`
	FreeTextContext string    `json:"free_text_context,omitempty"`

	// TargetCandidates overrides the configured candidate budget when
	// greater than zero.
	TargetCandidates int `json:"target_candidates,omitempty"`
}

// Query objects

// RetrieveCandidatesQuery defines parameters for candidate retrieval
type RetrieveCandidatesQuery struct {
	WorkspaceID    uuid.UUID `json:"workspace_id"`
	Query          string    `json:"query,omitempty"`
	TargetCount    int       `json:"target_count,omitempty"`
	MinPerCoreType int       `json:"min_per_core_type,omitempty"`
}

// SuggestAlternativesQuery defines parameters for swap suggestions
type SuggestAlternativesQuery struct {
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	MealType    string      `json:"meal_type"`
	ExcludeIDs  []uuid.UUID `json:"exclude_ids,omitempty"`
	Limit       int         `json:"limit,omitempty"`
}

// CheckConstraintsQuery defines parameters for a constraint check
type CheckConstraintsQuery struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
}

// Response DTOs

// ConstraintReport is the result of a constraint check
type ConstraintReport struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	IsSafe   bool      `json:"is_safe"`
	Warnings []string  `json:"warnings,omitempty"`
}
