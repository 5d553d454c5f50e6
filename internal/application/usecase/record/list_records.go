// Package record contains income and expense use cases.
package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// ListRecordsInput represents the input for listing incomes or expenses.
type ListRecordsInput struct {
	OwnerID   uuid.UUID
	Kind      entity.RecordKind
	Filter    query.Filter
	Direction query.Direction
	Page      query.Page
}

// ListRecordsOutput represents the output of listing incomes or expenses.
type ListRecordsOutput struct {
	Result *query.Result[*entity.Record]
}

// ListRecordsUseCase handles income and expense listing logic.
type ListRecordsUseCase struct {
	recordRepo adapter.RecordRepository
	userRepo   adapter.UserRepository
}

// NewListRecordsUseCase creates a new ListRecordsUseCase instance.
func NewListRecordsUseCase(
	recordRepo adapter.RecordRepository,
	userRepo adapter.UserRepository,
) *ListRecordsUseCase {
	return &ListRecordsUseCase{
		recordRepo: recordRepo,
		userRepo:   userRepo,
	}
}

// Execute performs the record listing.
func (uc *ListRecordsUseCase) Execute(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error) {
	if err := ensureOwnerExists(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	direction := input.Direction
	if !direction.IsValid() {
		direction = query.DefaultDirection
	}

	result, err := uc.recordRepo.FindByFilter(ctx, input.OwnerID, input.Kind, input.Filter, direction, input.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return &ListRecordsOutput{
		Result: result,
	}, nil
}
