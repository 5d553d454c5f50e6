// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := ensureOwnerExists(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	if len(input.Name) > entity.MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	// Uniqueness is enforced here at the business layer, not by a storage
	// constraint.
	exists, err := uc.categoryRepo.ExistsByNameAndOwner(ctx, input.Name, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(input.Name, input.Description, input.OwnerID)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// ensureOwnerExists fails with a not-found error before any records are
// touched when the owner is missing.
func ensureOwnerExists(ctx context.Context, userRepo adapter.UserRepository, ownerID uuid.UUID) error {
	exists, err := userRepo.ExistsByID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check owner existence: %w", err)
	}
	if !exists {
		return domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	return nil
}
