// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Get retrieves the user's category by key. Returns (nil, nil) when absent.
func (r *categoryRepository) Get(ctx context.Context, userID uuid.UUID, categoryKey string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, categoryKey).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// List retrieves all of the user's categories ordered by key.
func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("key ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Create inserts a new category, refusing a key the user already has.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CategoryModel{}).
			Where("user_id = ? AND key = ?", category.UserID, category.Key).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryKeyExists,
				"a category with this key already exists",
				domainerror.ErrCategoryKeyExists,
			)
		}
		return tx.Create(model.CategoryFromEntity(category)).Error
	})
}

// Update saves the name and budget limit; a nil limit clears it.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	return r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("user_id = ? AND key = ?", category.UserID, category.Key).
		Updates(map[string]interface{}{
			"name":         categoryModel.Name,
			"budget_limit": categoryModel.BudgetLimit,
			"updated_at":   category.UpdatedAt.UTC(),
		}).Error
}

// Delete removes the user's category by key.
func (r *categoryRepository) Delete(ctx context.Context, userID uuid.UUID, categoryKey string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, categoryKey).
		Delete(&model.CategoryModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
