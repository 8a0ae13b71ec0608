// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_key,priority:1"`
	Key         string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_key,priority:2"`
	Name        string              `gorm:"type:varchar(100);not null"`
	BudgetLimit decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	CreatedAt   time.Time           `gorm:"not null"`
	UpdatedAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var limit *decimal.Decimal
	if m.BudgetLimit.Valid {
		l := m.BudgetLimit.Decimal.Round(amountPlaces)
		limit = &l
	}

	return &entity.Category{
		ID:          m.ID,
		UserID:      m.UserID,
		Key:         m.Key,
		Name:        m.Name,
		BudgetLimit: limit,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var limit decimal.NullDecimal
	if category.BudgetLimit != nil {
		limit = decimal.NewNullDecimal(*category.BudgetLimit)
	}

	return &CategoryModel{
		ID:          category.ID,
		UserID:      category.UserID,
		Key:         category.Key,
		Name:        category.Name,
		BudgetLimit: limit,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
