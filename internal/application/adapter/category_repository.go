// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines persistence operations for a user's categories.
type CategoryRepository interface {
	// Get retrieves the user's category by key. Returns (nil, nil) when absent.
	Get(ctx context.Context, userID uuid.UUID, categoryKey string) (*entity.Category, error)

	// List returns all of the user's categories ordered by key.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Create stores a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update saves the name and budget limit of an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes the user's category by key. Returns false when nothing was deleted.
	Delete(ctx context.Context, userID uuid.UUID, categoryKey string) (bool, error)
}
