// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	OwnerID   uuid.UUID
	Filter    query.Filter
	Direction query.Direction
	Page      query.Page
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Result *query.Result[*entity.Category]
}

// ListCategoriesUseCase handles category listing logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if err := ensureOwnerExists(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	direction := input.Direction
	if !direction.IsValid() {
		direction = query.DefaultDirection
	}

	result, err := uc.categoryRepo.FindByFilter(ctx, input.OwnerID, input.Filter, direction, input.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Result: result,
	}, nil
}
