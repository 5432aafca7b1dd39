package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/ports/outbound"
)

// HouseholdRepository implements household persistence in memory
type HouseholdRepository struct {
	mutex     sync.RWMutex
	profiles  map[uuid.UUID]*household.Profile
	groceries map[uuid.UUID][]household.GroceryItem
}

// NewHouseholdRepository creates a new in-memory household repository
func NewHouseholdRepository() outbound.HouseholdRepository {
	return &HouseholdRepository{
		profiles:  make(map[uuid.UUID]*household.Profile),
		groceries: make(map[uuid.UUID][]household.GroceryItem),
	}
}

// Save upserts the workspace profile
func (r *HouseholdRepository) Save(ctx context.Context, profile *household.Profile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.profiles[profile.WorkspaceID()] = profile
	return nil
}

// FindByWorkspace returns the workspace profile
func (r *HouseholdRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*household.Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	profile, exists := r.profiles[workspaceID]
	if !exists {
		return nil, household.ErrProfileNotFound
	}
	return profile, nil
}

// GroceriesFor returns the workspace pantry in stored order
func (r *HouseholdRepository) GroceriesFor(ctx context.Context, workspaceID uuid.UUID) ([]household.GroceryItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items := r.groceries[workspaceID]
	out := make([]household.GroceryItem, len(items))
	copy(out, items)
	return out, nil
}

// SaveGroceries replaces the workspace pantry
func (r *HouseholdRepository) SaveGroceries(ctx context.Context, workspaceID uuid.UUID, items []household.GroceryItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := make([]household.GroceryItem, len(items))
	copy(stored, items)
	r.groceries[workspaceID] = stored
	return nil
}
