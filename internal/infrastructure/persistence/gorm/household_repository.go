package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/household"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"gorm.io/gorm"
)

// HouseholdRepository implements household persistence using GORM
type HouseholdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new household repository
func NewHouseholdRepository(db *gorm.DB) outbound.HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// Save upserts the workspace profile
func (r *HouseholdRepository) Save(ctx context.Context, profile *household.Profile) error {
	model := ProfileToModel(profile)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// FindByWorkspace returns the workspace profile
func (r *HouseholdRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*household.Profile, error) {
	var model HouseholdProfileModel

	result := r.db.WithContext(ctx).
		First(&model, "workspace_id = ?", workspaceID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, household.ErrProfileNotFound
		}
		return nil, result.Error
	}

	return ModelToProfile(&model)
}

// GroceriesFor returns the workspace pantry in stored order
func (r *HouseholdRepository) GroceriesFor(ctx context.Context, workspaceID uuid.UUID) ([]household.GroceryItem, error) {
	var models []GroceryItemModel

	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return ModelsToGroceryItems(models), nil
}

// SaveGroceries replaces the workspace pantry
func (r *HouseholdRepository) SaveGroceries(ctx context.Context, workspaceID uuid.UUID, items []household.GroceryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspaceID).Delete(&GroceryItemModel{}).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		models := GroceryItemsToModels(workspaceID, items)
		return tx.Create(&models).Error
	})
}
