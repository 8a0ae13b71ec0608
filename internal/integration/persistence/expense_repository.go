// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db           *gorm.DB
	serializable bool
}

// NewExpenseRepository creates a new expense repository instance.
// When serializable is set, conditional writes run at SERIALIZABLE isolation.
func NewExpenseRepository(db *gorm.DB, serializable bool) adapter.ExpenseRepository {
	return &expenseRepository{
		db:           db,
		serializable: serializable,
	}
}

// Create inserts a new expense.
func (r *expenseRepository) Create(ctx context.Context, userID uuid.UUID, data entity.CanonicalExpense) (*entity.Expense, error) {
	expenseModel := model.ExpenseFromEntity(entity.NewExpense(userID, data))
	if err := r.db.WithContext(ctx).Create(expenseModel).Error; err != nil {
		return nil, err
	}
	return expenseModel.ToEntity(), nil
}

// CreateWithinLimit re-sums the category for the period and inserts the expense
// in the same transaction, refusing the insert if the limit would be exceeded.
func (r *expenseRepository) CreateWithinLimit(
	ctx context.Context,
	userID uuid.UUID,
	data entity.CanonicalExpense,
	categoryName string,
	limit decimal.Decimal,
	periodStart time.Time,
	periodEnd time.Time,
) (*entity.Expense, error) {
	expenseModel := model.ExpenseFromEntity(entity.NewExpense(userID, data))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total, err := sumCategory(tx, userID, data.Category, periodStart, periodEnd)
		if err != nil {
			return err
		}

		wouldBe := total.Add(data.Amount)
		if wouldBe.GreaterThan(limit) {
			return domainerror.NewBudgetLimitExceededError(categoryName, limit, wouldBe)
		}

		return tx.Create(expenseModel).Error
	}, r.txOptions()...)
	if err != nil {
		return nil, err
	}

	return expenseModel.ToEntity(), nil
}

// Find retrieves the user's expenses matching the filter, ordered by date.
func (r *expenseRepository) Find(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", filter.EndDate.UTC())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var expenseModels []model.ExpenseModel
	if err := query.Order("date ASC, created_at ASC").Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// CategoryTotal sums the user's amounts for a category within [periodStart, periodEnd).
func (r *expenseRepository) CategoryTotal(
	ctx context.Context,
	userID uuid.UUID,
	categoryKey string,
	periodStart time.Time,
	periodEnd time.Time,
) (decimal.Decimal, error) {
	return sumCategory(r.db.WithContext(ctx), userID, categoryKey, periodStart, periodEnd)
}

func (r *expenseRepository) txOptions() []*sql.TxOptions {
	if !r.serializable {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
}

// sumCategory runs the month-total aggregate on db, which may be a transaction.
func sumCategory(db *gorm.DB, userID uuid.UUID, categoryKey string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&model.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ?", userID, categoryKey).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	// Amount columns hold 2 places; rounding drops float noise from dialects
	// that sum numerics as REAL.
	return total.Round(2), nil
}
