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

// ListHistoryInput represents the input for listing the owner's income or
// expense history rows.
type ListHistoryInput struct {
	OwnerID   uuid.UUID
	Kind      entity.RecordKind
	Filter    query.Filter
	Direction query.Direction
	Page      query.Page
}

// ListHistoryOutput represents the output of listing history rows.
type ListHistoryOutput struct {
	Result *query.Result[*entity.RecordHistory]
}

// ListHistoryUseCase handles history listing logic. History rows flow
// through the same filter, sort and pagination pipeline as base records.
type ListHistoryUseCase struct {
	historyRepo adapter.HistoryRepository
	userRepo    adapter.UserRepository
}

// NewListHistoryUseCase creates a new ListHistoryUseCase instance.
func NewListHistoryUseCase(
	historyRepo adapter.HistoryRepository,
	userRepo adapter.UserRepository,
) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		historyRepo: historyRepo,
		userRepo:    userRepo,
	}
}

// Execute performs the history listing.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, input ListHistoryInput) (*ListHistoryOutput, error) {
	if err := ensureOwnerExists(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	direction := input.Direction
	if !direction.IsValid() {
		direction = query.DefaultDirection
	}

	result, err := uc.historyRepo.FindByFilter(ctx, input.OwnerID, input.Kind, input.Filter, direction, input.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return &ListHistoryOutput{
		Result: result,
	}, nil
}
