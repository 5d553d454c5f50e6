// Package record contains income and expense use cases.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// CreateRecordInput represents the input for record creation. Value is in
// minor currency units.
type CreateRecordInput struct {
	OwnerID     uuid.UUID
	Kind        entity.RecordKind
	Name        string
	Value       int64
	Description string
	CategoryID  *uuid.UUID
}

// CreateRecordOutput represents the output of record creation.
type CreateRecordOutput struct {
	Record *entity.Record
}

// CreateRecordUseCase handles income and expense creation logic.
type CreateRecordUseCase struct {
	recordRepo   adapter.RecordRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
}

// NewCreateRecordUseCase creates a new CreateRecordUseCase instance.
func NewCreateRecordUseCase(
	recordRepo adapter.RecordRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
) *CreateRecordUseCase {
	return &CreateRecordUseCase{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Execute performs the record creation.
func (uc *CreateRecordUseCase) Execute(ctx context.Context, input CreateRecordInput) (*CreateRecordOutput, error) {
	if err := ensureOwnerExists(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	if input.Value < 0 {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordValue,
			"value must not be negative",
			domainerror.ErrInvalidRecordValue,
		)
	}

	if len(input.Name) > entity.MaxRecordNameLength {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeRecordNameTooLong,
			fmt.Sprintf("record name must not exceed %d characters", entity.MaxRecordNameLength),
			domainerror.ErrRecordNameTooLong,
		)
	}

	if err := validateCategoryOwnership(ctx, uc.categoryRepo, input.CategoryID, input.OwnerID); err != nil {
		return nil, err
	}

	record := entity.NewRecord(
		input.OwnerID,
		input.Kind,
		input.Name,
		input.Value,
		input.Description,
		input.CategoryID,
	)

	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return &CreateRecordOutput{
		Record: record,
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

// validateCategoryOwnership checks that a referenced category exists and
// belongs to the owner. A nil reference is valid; records may be
// uncategorized.
func validateCategoryOwnership(
	ctx context.Context,
	categoryRepo adapter.CategoryRepository,
	categoryID *uuid.UUID,
	ownerID uuid.UUID,
) error {
	if categoryID == nil {
		return nil
	}

	category, err := categoryRepo.FindByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewRecordError(
				domainerror.ErrCodeRecordCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForRecord,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if category.OwnerID != ownerID {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	return nil
}
