// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// amountPlaces matches the scale of the amount columns.
const amountPlaces = 2

// TagList stores expense tags as a PostgreSQL text array.
// Other dialects fall back to the array literal in a text column.
type TagList []string

// Value implements the driver.Valuer interface.
func (t TagList) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

// Scan implements the sql.Scanner interface.
func (t *TagList) Scan(value interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(value); err != nil {
		return err
	}
	*t = TagList(arr)
	return nil
}

// GormDBDataType returns the column type for the current dialect.
func (TagList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_category_date,priority:1"`
	Category    string          `gorm:"type:varchar(100);not null;index:idx_expenses_user_category_date,priority:2"`
	Date        time.Time       `gorm:"not null;index:idx_expenses_user_category_date,priority:3"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Tags        TagList
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)

	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount.Round(amountPlaces),
		Category:    m.Category,
		Date:        m.Date.UTC(),
		Description: m.Description,
		Tags:        tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	tags := make(TagList, len(expense.Tags))
	copy(tags, expense.Tags)

	return &ExpenseModel{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        expense.Date.UTC(),
		Description: expense.Description,
		Tags:        tags,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
