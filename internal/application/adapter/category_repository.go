// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Both the persistent and the in-memory implementation must evaluate
// FindByFilter with the exact semantics of the query package.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByNameAndOwner retrieves a category by name and owner, used for
	// uniqueness checks before create and rename.
	FindByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (*entity.Category, error)

	// ExistsByNameAndOwner checks if a category with the given name exists for the owner.
	ExistsByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (bool, error)

	// FindByFilter retrieves one page of the owner's categories after
	// filtering and sorting.
	FindByFilter(
		ctx context.Context,
		ownerID uuid.UUID,
		filter query.Filter,
		direction query.Direction,
		page query.Page,
	) (*query.Result[*entity.Category], error)

	// FindAllByOwner retrieves every category of the owner, used by the
	// metrics aggregator.
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Dependent records keep existing with their
	// category reference cleared by RecordRepository.DetachCategory.
	Delete(ctx context.Context, id uuid.UUID) error
}
