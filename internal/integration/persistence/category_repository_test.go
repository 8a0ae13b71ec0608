package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func TestCategoryRepository_Get(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	userID := uuid.New()
	now := time.Now().UTC()
	limit := decimal.RequireFromString("250.00")

	require.NoError(t, db.Create(model.CategoryFromEntity(&entity.Category{
		ID: uuid.New(), UserID: userID, Key: "food", Name: "Food", BudgetLimit: &limit, CreatedAt: now, UpdatedAt: now,
	})).Error)
	require.NoError(t, db.Create(model.CategoryFromEntity(&entity.Category{
		ID: uuid.New(), UserID: userID, Key: "travel", Name: "Travel", CreatedAt: now, UpdatedAt: now,
	})).Error)

	t.Run("limited category", func(t *testing.T) {
		category, err := repo.Get(ctx, userID, "food")

		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Food", category.Name)
		require.True(t, category.HasBudgetLimit())
		assert.Equal(t, "250.00", category.BudgetLimit.StringFixed(2))
	})

	t.Run("unlimited category", func(t *testing.T) {
		category, err := repo.Get(ctx, userID, "travel")

		require.NoError(t, err)
		require.NotNil(t, category)
		assert.False(t, category.HasBudgetLimit())
	})

	t.Run("absent category", func(t *testing.T) {
		category, err := repo.Get(ctx, userID, "missing")

		require.NoError(t, err)
		assert.Nil(t, category)
	})

	t.Run("other user's category is absent", func(t *testing.T) {
		category, err := repo.Get(ctx, uuid.New(), "food")

		require.NoError(t, err)
		assert.Nil(t, category)
	})
}

func TestCategoryRepository_CreateListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	userID := uuid.New()
	limit := decimal.RequireFromString("100.00")

	require.NoError(t, repo.Create(ctx, entity.NewCategory(userID, "travel", "Travel", nil)))
	require.NoError(t, repo.Create(ctx, entity.NewCategory(userID, "food", "Food", &limit)))
	require.NoError(t, repo.Create(ctx, entity.NewCategory(uuid.New(), "food", "Someone else's food", nil)))

	t.Run("duplicate key is rejected", func(t *testing.T) {
		err := repo.Create(ctx, entity.NewCategory(userID, "food", "Food again", nil))

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerror.ErrCategoryKeyExists)
	})

	t.Run("list is scoped to the user and ordered by key", func(t *testing.T) {
		categories, err := repo.List(ctx, userID)

		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "food", categories[0].Key)
		assert.Equal(t, "travel", categories[1].Key)
	})

	t.Run("update renames and clears the limit", func(t *testing.T) {
		category, err := repo.Get(ctx, userID, "food")
		require.NoError(t, err)
		require.NotNil(t, category)

		category.Name = "Groceries"
		category.BudgetLimit = nil
		category.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, category))

		updated, err := repo.Get(ctx, userID, "food")
		require.NoError(t, err)
		assert.Equal(t, "Groceries", updated.Name)
		assert.False(t, updated.HasBudgetLimit())
	})

	t.Run("update sets a limit", func(t *testing.T) {
		category, err := repo.Get(ctx, userID, "travel")
		require.NoError(t, err)

		newLimit := decimal.RequireFromString("75.50")
		category.BudgetLimit = &newLimit
		require.NoError(t, repo.Update(ctx, category))

		updated, err := repo.Get(ctx, userID, "travel")
		require.NoError(t, err)
		require.True(t, updated.HasBudgetLimit())
		assert.Equal(t, "75.50", updated.BudgetLimit.StringFixed(2))
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, userID, "travel")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, userID, "travel")
		require.NoError(t, err)
		assert.False(t, deleted)

		category, err := repo.Get(ctx, userID, "travel")
		require.NoError(t, err)
		assert.Nil(t, category)
	})
}
