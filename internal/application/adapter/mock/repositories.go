// Package mock provides in-memory implementations of the adapter interfaces for tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ExpenseRepository is an in-memory adapter.ExpenseRepository.
type ExpenseRepository struct {
	mu       sync.Mutex
	expenses []*entity.Expense

	CreateErr error
	FindErr   error
	TotalErr  error

	CreateCalls int
	FindCalls   int
}

var _ adapter.ExpenseRepository = (*ExpenseRepository)(nil)

// NewExpenseRepository creates an empty in-memory expense repository.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{}
}

// Seed stores an expense directly, bypassing all checks.
func (r *ExpenseRepository) Seed(userID uuid.UUID, category string, amount string, date time.Time, tags ...string) *entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entity.NewExpense(userID, entity.CanonicalExpense{
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        date,
		Description: "seeded",
		Tags:        tags,
	})
	r.expenses = append(r.expenses, e)
	return e
}

// All returns every stored expense.
func (r *ExpenseRepository) All() []*entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Expense, len(r.expenses))
	copy(out, r.expenses)
	return out
}

// Create stores the expense.
func (r *ExpenseRepository) Create(_ context.Context, userID uuid.UUID, data entity.CanonicalExpense) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CreateCalls++
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	e := entity.NewExpense(userID, data)
	r.expenses = append(r.expenses, e)
	return e, nil
}

// CreateWithinLimit stores the expense if the month total stays within limit.
// The check and the insert run under the same lock.
func (r *ExpenseRepository) CreateWithinLimit(
	_ context.Context,
	userID uuid.UUID,
	data entity.CanonicalExpense,
	categoryName string,
	limit decimal.Decimal,
	periodStart time.Time,
	periodEnd time.Time,
) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CreateCalls++
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	total := r.sumLocked(userID, data.Category, periodStart, periodEnd)
	wouldBe := total.Add(data.Amount)
	if wouldBe.GreaterThan(limit) {
		return nil, domainerror.NewBudgetLimitExceededError(categoryName, limit, wouldBe)
	}

	e := entity.NewExpense(userID, data)
	r.expenses = append(r.expenses, e)
	return e, nil
}

// Find returns the user's expenses matching the filter, ordered by date.
func (r *ExpenseRepository) Find(_ context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.FindCalls++
	if r.FindErr != nil {
		return nil, r.FindErr
	}

	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !e.Date.Before(*filter.EndDate) {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// CategoryTotal sums the user's amounts for the category within the period.
func (r *ExpenseRepository) CategoryTotal(
	_ context.Context,
	userID uuid.UUID,
	categoryKey string,
	periodStart time.Time,
	periodEnd time.Time,
) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.TotalErr != nil {
		return decimal.Zero, r.TotalErr
	}
	return r.sumLocked(userID, categoryKey, periodStart, periodEnd), nil
}

func (r *ExpenseRepository) sumLocked(userID uuid.UUID, categoryKey string, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID != userID || e.Category != categoryKey {
			continue
		}
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// CategoryRepository is an in-memory adapter.CategoryRepository.
type CategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]map[string]*entity.Category

	GetErr   error
	WriteErr error
}

var _ adapter.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates an empty in-memory category repository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[uuid.UUID]map[string]*entity.Category),
	}
}

// Add registers a category for the user. An empty limit means unlimited.
func (r *CategoryRepository) Add(userID uuid.UUID, key, name, limit string) *entity.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	c := &entity.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Key:       key,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if limit != "" {
		l := decimal.RequireFromString(limit)
		c.BudgetLimit = &l
	}

	if r.categories[userID] == nil {
		r.categories[userID] = make(map[string]*entity.Category)
	}
	r.categories[userID][key] = c
	return c
}

// Get returns the user's category or (nil, nil).
func (r *CategoryRepository) Get(_ context.Context, userID uuid.UUID, categoryKey string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	c, ok := r.categories[userID][categoryKey]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

// List returns the user's categories ordered by key.
func (r *CategoryRepository) List(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	out := make([]*entity.Category, 0, len(r.categories[userID]))
	for _, c := range r.categories[userID] {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// Create stores the category, failing on a duplicate key.
func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.WriteErr != nil {
		return r.WriteErr
	}
	if r.categories[category.UserID] == nil {
		r.categories[category.UserID] = make(map[string]*entity.Category)
	}
	if _, exists := r.categories[category.UserID][category.Key]; exists {
		return domainerror.NewCategoryError(domainerror.ErrCodeCategoryKeyExists, "category key already exists", domainerror.ErrCategoryKeyExists)
	}
	clone := *category
	r.categories[category.UserID][category.Key] = &clone
	return nil
}

// Update replaces the stored category.
func (r *CategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.WriteErr != nil {
		return r.WriteErr
	}
	clone := *category
	r.categories[category.UserID][category.Key] = &clone
	return nil
}

// Delete removes the user's category by key.
func (r *CategoryRepository) Delete(_ context.Context, userID uuid.UUID, categoryKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.WriteErr != nil {
		return false, r.WriteErr
	}
	if _, ok := r.categories[userID][categoryKey]; !ok {
		return false, nil
	}
	delete(r.categories[userID], categoryKey)
	return true, nil
}
