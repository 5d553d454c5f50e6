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

// DeleteRecordInput represents the input for record deletion.
type DeleteRecordInput struct {
	RecordID uuid.UUID
	OwnerID  uuid.UUID
	Kind     entity.RecordKind
}

// DeleteRecordOutput represents the output of record deletion.
type DeleteRecordOutput struct {
	Success bool
}

// DeleteRecordUseCase handles income and expense deletion logic. Deleting a
// record cascades to delete all of its history rows.
type DeleteRecordUseCase struct {
	recordRepo adapter.RecordRepository
}

// NewDeleteRecordUseCase creates a new DeleteRecordUseCase instance.
func NewDeleteRecordUseCase(recordRepo adapter.RecordRepository) *DeleteRecordUseCase {
	return &DeleteRecordUseCase{
		recordRepo: recordRepo,
	}
}

// Execute performs the record deletion.
func (uc *DeleteRecordUseCase) Execute(ctx context.Context, input DeleteRecordInput) (*DeleteRecordOutput, error) {
	record, err := uc.recordRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, newRecordNotFoundError()
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	if record.Kind != input.Kind {
		return nil, newRecordNotFoundError()
	}

	if record.OwnerID != input.OwnerID {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeNotAuthorizedRecord,
			"not authorized to delete this record",
			domainerror.ErrNotAuthorizedToModifyRecord,
		)
	}

	if err := uc.recordRepo.Delete(ctx, input.RecordID); err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}

	return &DeleteRecordOutput{
		Success: true,
	}, nil
}
