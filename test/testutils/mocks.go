// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// NewMockRecipeRepository creates a new mock recipe repository
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{}
}

// Create stores a new recipe
func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Update replaces an existing recipe
func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Delete removes a recipe
func (m *MockRecipeRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// FindByID finds a recipe by id within a workspace
func (m *MockRecipeRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

// ListAll returns the workspace's recipe library
func (m *MockRecipeRepository) ListAll(ctx context.Context, workspaceID uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockHouseholdRepository provides a mock implementation of
// HouseholdRepository
type MockHouseholdRepository struct {
	mock.Mock
}

// NewMockHouseholdRepository creates a new mock household repository
func NewMockHouseholdRepository() *MockHouseholdRepository {
	return &MockHouseholdRepository{}
}

// Save stores the household profile
func (m *MockHouseholdRepository) Save(ctx context.Context, profile *household.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// FindByWorkspace returns the workspace's household profile
func (m *MockHouseholdRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*household.Profile, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Profile), args.Error(1)
}

// GroceriesFor returns the workspace's pantry items
func (m *MockHouseholdRepository) GroceriesFor(ctx context.Context, workspaceID uuid.UUID) ([]household.GroceryItem, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]household.GroceryItem), args.Error(1)
}

// SaveGroceries replaces the workspace's pantry items
func (m *MockHouseholdRepository) SaveGroceries(ctx context.Context, workspaceID uuid.UUID, items []household.GroceryItem) error {
	args := m.Called(ctx, workspaceID, items)
	return args.Error(0)
}

// MockRatingRepository provides a mock implementation of RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

// NewMockRatingRepository creates a new mock rating repository
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{}
}

// SaveRating records one member's preference for a recipe
func (m *MockRatingRepository) SaveRating(ctx context.Context, workspaceID, recipeID uuid.UUID, member string, preference recipe.Preference) error {
	args := m.Called(ctx, workspaceID, recipeID, member, preference)
	return args.Error(0)
}

// RatingsFor returns the workspace's rating snapshot
func (m *MockRatingRepository) RatingsFor(ctx context.Context, workspaceID uuid.UUID) (outbound.RatingSnapshot, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(outbound.RatingSnapshot), args.Error(1)
}

// MockSimilaritySearchService provides a mock implementation of
// SimilaritySearchService
type MockSimilaritySearchService struct {
	mock.Mock
}

// NewMockSimilaritySearchService creates a new mock similarity search
// service
func NewMockSimilaritySearchService() *MockSimilaritySearchService {
	return &MockSimilaritySearchService{}
}

// Rank returns a relevance-ordered recipe id ranking
func (m *MockSimilaritySearchService) Rank(ctx context.Context, query string, workspaceID uuid.UUID, maxResults int) ([]uuid.UUID, error) {
	args := m.Called(ctx, query, workspaceID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockPlanGeneratorService provides a mock implementation of
// PlanGeneratorService
type MockPlanGeneratorService struct {
	mock.Mock
}

// NewMockPlanGeneratorService creates a new mock plan generator
func NewMockPlanGeneratorService() *MockPlanGeneratorService {
	return &MockPlanGeneratorService{}
}

// Generate returns a raw weekly plan
func (m *MockPlanGeneratorService) Generate(ctx context.Context, genCtx outbound.GenerationContext, instruction string) (*outbound.GeneratedPlan, error) {
	args := m.Called(ctx, genCtx, instruction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedPlan), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// NewMockCacheRepository creates a new mock cache repository
func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{}
}

// Get retrieves a cached value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set stores a value with a TTL
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a cached value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Exists reports whether a key is present
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
