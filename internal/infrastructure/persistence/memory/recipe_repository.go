// Package memory provides in-memory repository implementations used by
// tests and the demo binary.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository in memory. ListAll
// returns recipes in insertion order, which keeps retrieval
// deterministic in tests.
type RecipeRepository struct {
	mutex   sync.RWMutex
	recipes map[uuid.UUID]map[uuid.UUID]*recipe.Recipe
	order   map[uuid.UUID][]uuid.UUID
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() outbound.RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[uuid.UUID]map[uuid.UUID]*recipe.Recipe),
		order:   make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create stores a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	workspace := rec.WorkspaceID()
	if _, exists := r.recipes[workspace][rec.ID()]; exists {
		return fmt.Errorf("recipe %s already exists", rec.ID())
	}

	if r.recipes[workspace] == nil {
		r.recipes[workspace] = make(map[uuid.UUID]*recipe.Recipe)
	}
	r.recipes[workspace][rec.ID()] = rec
	r.order[workspace] = append(r.order[workspace], rec.ID())
	return nil
}

// Update replaces an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	workspace := rec.WorkspaceID()
	if _, exists := r.recipes[workspace][rec.ID()]; !exists {
		return recipe.ErrRecipeNotFound
	}
	r.recipes[workspace][rec.ID()] = rec
	return nil
}

// Delete removes a recipe
func (r *RecipeRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.recipes[workspaceID][id]; !exists {
		return recipe.ErrRecipeNotFound
	}
	delete(r.recipes[workspaceID], id)

	ids := r.order[workspaceID]
	for i, existing := range ids {
		if existing == id {
			r.order[workspaceID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID finds a recipe in a workspace
func (r *RecipeRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec, exists := r.recipes[workspaceID][id]
	if !exists {
		return nil, recipe.ErrRecipeNotFound
	}
	return rec, nil
}

// ListAll returns every recipe in a workspace
func (r *RecipeRepository) ListAll(ctx context.Context, workspaceID uuid.UUID) ([]*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ids := r.order[workspaceID]
	out := make([]*recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, exists := r.recipes[workspaceID][id]; exists {
			out = append(out, rec)
		}
	}
	return out, nil
}
