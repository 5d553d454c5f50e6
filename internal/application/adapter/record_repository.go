// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// RecordRepository defines the interface for income and expense persistence
// operations, discriminated by entity.RecordKind. It owns the write side of
// the history audit trail: updates append the pre-update snapshot and
// deletes cascade to history rows atomically with the primary mutation.
type RecordRepository interface {
	// Create creates a new record. No history row is written for the
	// initial creation event.
	Create(ctx context.Context, record *entity.Record) error

	// FindByID retrieves a record by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error)

	// FindByFilter retrieves one page of the owner's records of the given
	// kind after filtering and sorting.
	FindByFilter(
		ctx context.Context,
		ownerID uuid.UUID,
		kind entity.RecordKind,
		filter query.Filter,
		direction query.Direction,
		page query.Page,
	) (*query.Result[*entity.Record], error)

	// FindAllByOwner retrieves every record of the owner and kind, used by
	// the metrics aggregator.
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID, kind entity.RecordKind) ([]*entity.Record, error)

	// Update persists the mutated record and appends the pre-update snapshot
	// in the same transaction, so a crash cannot leave the audit trail and
	// the primary record inconsistent.
	Update(ctx context.Context, record *entity.Record, snapshot *entity.RecordHistory) error

	// Delete removes a record and, in the same transaction, all history rows
	// of the same owner that reference it.
	Delete(ctx context.Context, id uuid.UUID) error

	// DetachCategory clears the category reference on all records and
	// history rows of the owner that point at the category. Returns the
	// number of records touched.
	DetachCategory(ctx context.Context, categoryID, ownerID uuid.UUID) (int64, error)
}

// HistoryRepository defines the read-side interface over the append-only
// history collections. History rows are written exclusively through
// RecordRepository; no mutation API exists here.
type HistoryRepository interface {
	// FindByFilter retrieves one page of the owner's history rows of the
	// given kind after filtering and sorting.
	FindByFilter(
		ctx context.Context,
		ownerID uuid.UUID,
		kind entity.RecordKind,
		filter query.Filter,
		direction query.Direction,
		page query.Page,
	) (*query.Result[*entity.RecordHistory], error)
}
