// Package metrics contains the calendar-bucketed aggregation use cases.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// MonthlyDeltaInput represents the input for the month-over-month delta of
// one record kind.
type MonthlyDeltaInput struct {
	OwnerID uuid.UUID
	Kind    entity.RecordKind

	// Now anchors the current calendar month; zero means time.Now.
	Now time.Time
}

// MonthlyDeltaOutput represents the month-over-month delta.
type MonthlyDeltaOutput struct {
	Delta Delta
}

// MonthlyDeltaUseCase computes the month-over-month delta for incomes or
// expenses.
type MonthlyDeltaUseCase struct {
	recordRepo adapter.RecordRepository
	userRepo   adapter.UserRepository
}

// NewMonthlyDeltaUseCase creates a new MonthlyDeltaUseCase instance.
func NewMonthlyDeltaUseCase(
	recordRepo adapter.RecordRepository,
	userRepo adapter.UserRepository,
) *MonthlyDeltaUseCase {
	return &MonthlyDeltaUseCase{
		recordRepo: recordRepo,
		userRepo:   userRepo,
	}
}

// Execute computes the delta.
func (uc *MonthlyDeltaUseCase) Execute(ctx context.Context, input MonthlyDeltaInput) (*MonthlyDeltaOutput, error) {
	exists, err := uc.userRepo.ExistsByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner existence: %w", err)
	}
	if !exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	records, err := uc.recordRepo.FindAllByOwner(ctx, input.OwnerID, input.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return &MonthlyDeltaOutput{
		Delta: MonthlyDelta(records, now),
	}, nil
}
