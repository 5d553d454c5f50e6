package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// recordRepository implements adapter.RecordRepository over the shared store.
// All mutations run under the store lock, so the update-plus-snapshot and
// delete-plus-cascade pairs are atomic the same way the SQL transactions are.
type recordRepository struct {
	store *Store
}

// NewRecordRepository creates a new in-memory record repository.
func NewRecordRepository(store *Store) adapter.RecordRepository {
	return &recordRepository{
		store: store,
	}
}

func (r *recordRepository) Create(_ context.Context, record *entity.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.records[record.ID] = cloneRecord(record)
	return nil
}

func (r *recordRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	record, ok := r.store.records[id]
	if !ok {
		return nil, domainerror.ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

func (r *recordRepository) FindByFilter(
	_ context.Context,
	ownerID uuid.UUID,
	kind entity.RecordKind,
	filter query.Filter,
	direction query.Direction,
	page query.Page,
) (*query.Result[*entity.Record], error) {
	r.store.mu.RLock()
	records := make([]*entity.Record, 0, len(r.store.records))
	for _, record := range r.store.records {
		if record.OwnerID == ownerID && record.Kind == kind {
			records = append(records, cloneRecord(record))
		}
	}
	r.store.mu.RUnlock()

	return query.Apply(records, filter, direction, page)
}

func (r *recordRepository) FindAllByOwner(_ context.Context, ownerID uuid.UUID, kind entity.RecordKind) ([]*entity.Record, error) {
	r.store.mu.RLock()
	records := make([]*entity.Record, 0, len(r.store.records))
	for _, record := range r.store.records {
		if record.OwnerID == ownerID && record.Kind == kind {
			records = append(records, cloneRecord(record))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return query.Compare(records[i], records[j], query.DirectionDesc) < 0
	})
	return records, nil
}

func (r *recordRepository) Update(_ context.Context, record *entity.Record, snapshot *entity.RecordHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[record.ID]; !ok {
		return domainerror.ErrRecordNotFound
	}
	r.store.records[record.ID] = cloneRecord(record)
	r.store.history[snapshot.ID] = cloneHistory(snapshot)
	return nil
}

func (r *recordRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[id]; !ok {
		return domainerror.ErrRecordNotFound
	}
	delete(r.store.records, id)
	for historyID, entry := range r.store.history {
		if entry.RecordID == id {
			delete(r.store.history, historyID)
		}
	}
	return nil
}

func (r *recordRepository) DetachCategory(_ context.Context, categoryID, ownerID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var detached int64
	for _, record := range r.store.records {
		if record.OwnerID == ownerID && record.CategoryID != nil && *record.CategoryID == categoryID {
			record.CategoryID = nil
			detached++
		}
	}
	for _, entry := range r.store.history {
		if entry.OwnerID == ownerID && entry.CategoryID != nil && *entry.CategoryID == categoryID {
			entry.CategoryID = nil
		}
	}
	return detached, nil
}
