// Package planning provides the application layer for weekly meal
// planning: candidate retrieval, constraint checking, swap scoring and
// the generation pipeline. This implements the use cases defined in the
// inbound ports.
package planning

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/plan"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/infrastructure/config"
	"github.com/mealsmith/planner/internal/infrastructure/monitoring"
	"github.com/mealsmith/planner/internal/ports/inbound"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"github.com/mealsmith/planner/pkg/errors"
	"go.uber.org/zap"
)

// Generation outcome labels recorded on metrics
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// PlanningService implements the planning use cases
type PlanningService struct {
	recipes    outbound.RecipeRepository
	households outbound.HouseholdRepository
	ratings    outbound.RatingRepository
	search     outbound.SimilaritySearchService
	generator  outbound.PlanGeneratorService
	planner    config.PlannerConfig
	searchMax  int
	metrics    *monitoring.MetricsCollector
	logger     *zap.Logger
}

// NewPlanningService creates a new planning service. search may be nil
// when similarity search is disabled; retrieval then ranks with keyword
// search.
func NewPlanningService(
	recipes outbound.RecipeRepository,
	households outbound.HouseholdRepository,
	ratings outbound.RatingRepository,
	search outbound.SimilaritySearchService,
	generator outbound.PlanGeneratorService,
	cfg *config.Config,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) inbound.PlanningService {
	return &PlanningService{
		recipes:    recipes,
		households: households,
		ratings:    ratings,
		search:     search,
		generator:  generator,
		planner:    cfg.Planner,
		searchMax:  cfg.Search.MaxResults,
		metrics:    metrics,
		logger:     logger.Named("planning-service"),
	}
}

// GeneratePlan runs the full generation pipeline in a single pass
func (s *PlanningService) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*plan.WeekPlan, error) {
	start := time.Now()
	s.logger.Info("Generating weekly plan",
		zap.String("workspace_id", cmd.WorkspaceID.String()),
		zap.Time("week_start", cmd.WeekStart),
	)

	if cmd.WorkspaceID == uuid.Nil {
		return nil, s.failGeneration(start, errors.NewValidationError("workspace_id is required"))
	}
	if cmd.WeekStart.IsZero() {
		return nil, s.failGeneration(start, errors.NewValidationError("week_start is required"))
	}

	// Load inputs
	profile, err := s.households.FindByWorkspace(ctx, cmd.WorkspaceID)
	if err != nil {
		if stderrors.Is(err, household.ErrProfileNotFound) {
			return nil, s.failGeneration(start, errors.NewHouseholdNotFoundError(cmd.WorkspaceID.String()))
		}
		return nil, s.failGeneration(start, errors.NewDatabaseError("load household profile", err))
	}

	groceries, err := s.households.GroceriesFor(ctx, cmd.WorkspaceID)
	if err != nil {
		return nil, s.failGeneration(start, errors.NewDatabaseError("load groceries", err))
	}

	library, err := s.recipes.ListAll(ctx, cmd.WorkspaceID)
	if err != nil {
		return nil, s.failGeneration(start, errors.NewDatabaseError("list recipe library", err))
	}
	if len(library) == 0 {
		return nil, s.failGeneration(start, errors.NewEmptyLibraryError(cmd.WorkspaceID.String()))
	}

	ratings, err := s.ratings.RatingsFor(ctx, cmd.WorkspaceID)
	if err != nil {
		return nil, s.failGeneration(start, errors.NewDatabaseError("load ratings", err))
	}

	// Compose the retrieval query and select candidates
	query := ComposeQuery(profile, groceries, cmd.FreeTextContext)

	ranking, err := s.rankLibrary(ctx, cmd.WorkspaceID, query, library)
	if err != nil {
		return nil, s.failGeneration(start, err)
	}

	target := s.planner.TargetCandidates
	if cmd.TargetCandidates > 0 {
		target = cmd.TargetCandidates
	}
	candidates := RetrieveCandidates(library, ranking, target, s.planner.MinPerCoreType)
	s.reportShortfalls(cmd.WorkspaceID, library, candidates, s.planner.MinPerCoreType)
	s.metrics.CandidatesSelected(candidates.Len())

	// Build the generation context and invoke the generator
	genCtx, mode := BuildGenerationContext(ContextInputs{
		WorkspaceID:       cmd.WorkspaceID,
		WeekStart:         cmd.WeekStart,
		Profile:           profile,
		Groceries:         groceries,
		Candidates:        candidates,
		Ratings:           ratings,
		FreeText:          cmd.FreeTextContext,
		ExpiryWindowDays:  s.planner.ExpiryWindowDays,
		CoverageThreshold: s.planner.CoverageThreshold,
		Now:               time.Now(),
	})

	raw, err := s.generator.Generate(ctx, genCtx, GenerationInstruction(mode))
	if err != nil {
		return nil, s.failGeneration(start, errors.NewGenerationFailedError("plan generator call failed", err))
	}

	// Validate the raw result into a domain plan
	week, err := parseGeneratedPlan(raw, cmd.WeekStart)
	if err != nil {
		return nil, s.failGeneration(start, errors.NewMalformedPlanError(err.Error()))
	}

	s.metrics.PlanGeneration(statusCompleted, time.Since(start))
	s.logger.Info("Weekly plan generated",
		zap.String("workspace_id", cmd.WorkspaceID.String()),
		zap.String("coverage_mode", string(mode)),
		zap.Int("candidates", candidates.Len()),
		zap.Int("shopping_list_items", len(week.ShoppingList)),
	)
	return week, nil
}

// RetrieveCandidates builds a balanced candidate set without invoking
// the generator
func (s *PlanningService) RetrieveCandidates(ctx context.Context, q inbound.RetrieveCandidatesQuery) (*plan.CandidateSet, error) {
	library, err := s.recipes.ListAll(ctx, q.WorkspaceID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipe library", err)
	}

	query := strings.TrimSpace(q.Query)
	if query == "" {
		// No explicit query: compose one from whatever household state
		// exists. A workspace without a profile still gets retrieval.
		profile, err := s.households.FindByWorkspace(ctx, q.WorkspaceID)
		if err != nil && !stderrors.Is(err, household.ErrProfileNotFound) {
			return nil, errors.NewDatabaseError("load household profile", err)
		}
		groceries, err := s.households.GroceriesFor(ctx, q.WorkspaceID)
		if err != nil {
			return nil, errors.NewDatabaseError("load groceries", err)
		}
		query = ComposeQuery(profile, groceries, "")
	}

	ranking, err := s.rankLibrary(ctx, q.WorkspaceID, query, library)
	if err != nil {
		return nil, err
	}

	target := s.planner.TargetCandidates
	if q.TargetCount > 0 {
		target = q.TargetCount
	}
	minPer := s.planner.MinPerCoreType
	if q.MinPerCoreType > 0 {
		minPer = q.MinPerCoreType
	}

	candidates := RetrieveCandidates(library, ranking, target, minPer)
	s.reportShortfalls(q.WorkspaceID, library, candidates, minPer)
	s.metrics.CandidatesSelected(candidates.Len())

	return &candidates, nil
}

// SuggestAlternatives returns ranked, allergy-safe swap suggestions for
// one meal slot
func (s *PlanningService) SuggestAlternatives(ctx context.Context, q inbound.SuggestAlternativesQuery) ([]plan.AlternativeSuggestion, error) {
	mealType, ok := recipe.ParseMealType(q.MealType)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown meal type %q", q.MealType))
	}

	profile, err := s.households.FindByWorkspace(ctx, q.WorkspaceID)
	if err != nil {
		if stderrors.Is(err, household.ErrProfileNotFound) {
			return nil, errors.NewHouseholdNotFoundError(q.WorkspaceID.String())
		}
		return nil, errors.NewDatabaseError("load household profile", err)
	}

	library, err := s.recipes.ListAll(ctx, q.WorkspaceID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipe library", err)
	}

	ratings, err := s.ratings.RatingsFor(ctx, q.WorkspaceID)
	if err != nil {
		return nil, errors.NewDatabaseError("load ratings", err)
	}

	limit := s.planner.AlternativeLimit
	if q.Limit > 0 {
		limit = q.Limit
	}

	suggestions := SuggestAlternatives(library, mealType, q.ExcludeIDs, profile, ratings, limit)
	s.metrics.AlternativesServed(len(suggestions))

	s.logger.Debug("Alternatives suggested",
		zap.String("workspace_id", q.WorkspaceID.String()),
		zap.String("meal_type", string(mealType)),
		zap.Int("count", len(suggestions)),
	)
	return suggestions, nil
}

// CheckConstraints reports whether a recipe is safe for the household
func (s *PlanningService) CheckConstraints(ctx context.Context, q inbound.CheckConstraintsQuery) (*inbound.ConstraintReport, error) {
	profile, err := s.households.FindByWorkspace(ctx, q.WorkspaceID)
	if err != nil {
		if stderrors.Is(err, household.ErrProfileNotFound) {
			return nil, errors.NewHouseholdNotFoundError(q.WorkspaceID.String())
		}
		return nil, errors.NewDatabaseError("load household profile", err)
	}

	r, err := s.recipes.FindByID(ctx, q.WorkspaceID, q.RecipeID)
	if err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(q.RecipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}

	safe, warnings := CheckConstraints(r, profile)
	s.metrics.ConstraintWarnings(len(warnings))

	return &inbound.ConstraintReport{
		RecipeID: q.RecipeID,
		IsSafe:   safe,
		Warnings: warnings,
	}, nil
}

// rankLibrary produces the relevance ranking for retrieval. Similarity
// search is preferred; a nil collaborator or an empty ranking falls back
// to keyword search over the library. A failing search call is an error,
// not a fallback.
func (s *PlanningService) rankLibrary(ctx context.Context, workspaceID uuid.UUID, query string, library []*recipe.Recipe) ([]uuid.UUID, error) {
	if s.search != nil {
		ids, err := s.search.Rank(ctx, query, workspaceID, s.searchMax)
		if err != nil {
			return nil, errors.NewSearchUnavailableError(err)
		}
		if len(ids) > 0 {
			return ids, nil
		}
		s.logger.Info("Similarity search returned nothing, using keyword fallback",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("query", query),
		)
	}

	s.metrics.SearchFallback()
	ranked := KeywordSearch(library, query, s.searchMax)
	ids := make([]uuid.UUID, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID()
	}
	return ids, nil
}

// reportShortfalls logs meal types the candidate set left under the
// coverage floor, telling budget caps apart from genuinely thin
// libraries. Under-coverage is accepted, never an error.
func (s *PlanningService) reportShortfalls(workspaceID uuid.UUID, library []*recipe.Recipe, candidates plan.CandidateSet, minPerCoreType int) {
	shortfall := candidates.Shortfall(minPerCoreType)
	if len(shortfall) == 0 {
		return
	}

	available := coverageCounts(library)
	for _, mt := range recipe.CoreMealTypes() {
		missing, ok := shortfall[mt]
		if !ok {
			continue
		}
		s.metrics.RetrievalShortfall(string(mt))

		if available[mt] >= minPerCoreType {
			s.logger.Info("Candidate budget capped coverage for meal type",
				zap.String("workspace_id", workspaceID.String()),
				zap.String("meal_type", string(mt)),
				zap.Int("missing", missing),
				zap.Int("available", available[mt]),
			)
		} else {
			s.logger.Info("Library cannot cover meal type",
				zap.String("workspace_id", workspaceID.String()),
				zap.String("meal_type", string(mt)),
				zap.Int("available", available[mt]),
			)
		}
	}
}

// failGeneration records a failed generation and returns its error. The
// logged reason always names why the pipeline stopped.
func (s *PlanningService) failGeneration(start time.Time, err error) error {
	s.metrics.PlanGeneration(statusFailed, time.Since(start))

	reason := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		reason = appErr.Message
	}
	s.logger.Warn("Plan generation failed",
		zap.String("reason", reason),
		zap.Error(err),
	)
	return err
}

// parseGeneratedPlan validates the generator's raw output into a domain
// plan: exactly seven day entries, every day non-empty, every meal type
// known. Recipe ids that do not parse are dropped so the meal stands as
// generator-invented.
func parseGeneratedPlan(raw *outbound.GeneratedPlan, weekStart time.Time) (*plan.WeekPlan, error) {
	if raw == nil {
		return nil, stderrors.New("generator returned no plan")
	}

	days := make([]plan.DayPlan, 0, len(raw.Days))
	for i, d := range raw.Days {
		date := weekStart.AddDate(0, 0, i)

		label := strings.TrimSpace(d.Label)
		if label == "" {
			label = date.Weekday().String()
		}

		meals := make([]plan.PlannedMeal, 0, len(d.Meals))
		for j, m := range d.Meals {
			mealType, ok := recipe.ParseMealType(m.MealType)
			if !ok {
				return nil, fmt.Errorf("day %d meal %d has unknown meal type %q", i+1, j+1, m.MealType)
			}

			var recipeID *uuid.UUID
			if m.RecipeID != "" {
				if id, err := uuid.Parse(m.RecipeID); err == nil && id != uuid.Nil {
					recipeID = &id
				}
			}

			meals = append(meals, plan.PlannedMeal{
				MealType:    mealType,
				RecipeID:    recipeID,
				Title:       strings.TrimSpace(m.Title),
				PrepMinutes: m.PrepMinutes,
				Servings:    m.Servings,
				Note:        m.Note,
			})
		}

		days = append(days, plan.DayPlan{
			Label: label,
			Date:  date,
			Meals: meals,
		})
	}

	week := &plan.WeekPlan{
		WeekStart:    weekStart,
		Days:         days,
		ShoppingList: raw.ShoppingList,
	}
	if err := week.Validate(); err != nil {
		return nil, err
	}
	return week, nil
}
