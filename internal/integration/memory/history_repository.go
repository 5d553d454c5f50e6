package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

// historyRepository implements the read side over the in-memory history map.
type historyRepository struct {
	store *Store
}

// NewHistoryRepository creates a new in-memory history repository.
func NewHistoryRepository(store *Store) adapter.HistoryRepository {
	return &historyRepository{
		store: store,
	}
}

func (r *historyRepository) FindByFilter(
	_ context.Context,
	ownerID uuid.UUID,
	kind entity.RecordKind,
	filter query.Filter,
	direction query.Direction,
	page query.Page,
) (*query.Result[*entity.RecordHistory], error) {
	r.store.mu.RLock()
	entries := make([]*entity.RecordHistory, 0, len(r.store.history))
	for _, entry := range r.store.history {
		if entry.OwnerID == ownerID && entry.Kind == kind {
			entries = append(entries, cloneHistory(entry))
		}
	}
	r.store.mu.RUnlock()

	return query.Apply(entries, filter, direction, page)
}
