// Package record contains income and expense use cases.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// UpdateRecordInput represents the input for record update. Nil fields are
// left unchanged. ClearCategory detaches the record from its category.
type UpdateRecordInput struct {
	RecordID      uuid.UUID
	OwnerID       uuid.UUID
	Kind          entity.RecordKind
	Name          *string
	Value         *int64
	Description   *string
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// UpdateRecordOutput represents the output of record update.
type UpdateRecordOutput struct {
	Record *entity.Record
}

// UpdateRecordUseCase handles income and expense update logic. Every edit
// that changes mutable fields appends exactly one history row capturing the
// pre-update values, atomically with the update.
type UpdateRecordUseCase struct {
	recordRepo   adapter.RecordRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateRecordUseCase creates a new UpdateRecordUseCase instance.
func NewUpdateRecordUseCase(
	recordRepo adapter.RecordRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateRecordUseCase {
	return &UpdateRecordUseCase{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the record update.
func (uc *UpdateRecordUseCase) Execute(ctx context.Context, input UpdateRecordInput) (*UpdateRecordOutput, error) {
	record, err := uc.findOwnedRecord(ctx, input.RecordID, input.OwnerID, input.Kind)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Name != nil && *input.Name != record.Name {
		if len(*input.Name) > entity.MaxRecordNameLength {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeRecordNameTooLong,
				fmt.Sprintf("record name must not exceed %d characters", entity.MaxRecordNameLength),
				domainerror.ErrRecordNameTooLong,
			)
		}
		changed = true
	}

	if input.Value != nil {
		if *input.Value < 0 {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeInvalidRecordValue,
				"value must not be negative",
				domainerror.ErrInvalidRecordValue,
			)
		}
		if *input.Value != record.Value {
			changed = true
		}
	}

	if input.Description != nil && *input.Description != record.Description {
		changed = true
	}

	if input.CategoryID != nil {
		if err := validateCategoryOwnership(ctx, uc.categoryRepo, input.CategoryID, input.OwnerID); err != nil {
			return nil, err
		}
		if record.CategoryID == nil || *record.CategoryID != *input.CategoryID {
			changed = true
		}
	}
	if input.ClearCategory && record.CategoryID != nil {
		changed = true
	}

	if !changed {
		return &UpdateRecordOutput{Record: record}, nil
	}

	// Snapshot the pre-update identity before mutating; the repository
	// persists both inside one transaction.
	snapshot := entity.NewRecordHistory(record)

	if input.Name != nil {
		record.Name = *input.Name
	}
	if input.Value != nil {
		record.Value = *input.Value
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.CategoryID != nil {
		record.CategoryID = input.CategoryID
	}
	if input.ClearCategory {
		record.CategoryID = nil
	}
	record.UpdatedAt = time.Now().UTC()

	if err := uc.recordRepo.Update(ctx, record, snapshot); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	return &UpdateRecordOutput{
		Record: record,
	}, nil
}

// findOwnedRecord loads a record and checks kind and ownership.
func (uc *UpdateRecordUseCase) findOwnedRecord(
	ctx context.Context,
	recordID, ownerID uuid.UUID,
	kind entity.RecordKind,
) (*entity.Record, error) {
	record, err := uc.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, newRecordNotFoundError()
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	if record.Kind != kind {
		return nil, newRecordNotFoundError()
	}

	if record.OwnerID != ownerID {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeNotAuthorizedRecord,
			"not authorized to modify this record",
			domainerror.ErrNotAuthorizedToModifyRecord,
		)
	}

	return record, nil
}

func newRecordNotFoundError() *domainerror.RecordError {
	return domainerror.NewRecordError(
		domainerror.ErrCodeRecordNotFound,
		"record not found",
		domainerror.ErrRecordNotFound,
	)
}
