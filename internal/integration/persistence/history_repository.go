package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	"github.com/finance-records/backend/internal/integration/persistence/model"
)

// historyRepository implements the read side over the append-only
// record_history table.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository instance.
func NewHistoryRepository(db *gorm.DB) adapter.HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

// FindByFilter retrieves one page of the owner's history rows of the given
// kind after filtering and sorting.
func (r *historyRepository) FindByFilter(
	ctx context.Context,
	ownerID uuid.UUID,
	kind entity.RecordKind,
	filter query.Filter,
	direction query.Direction,
	page query.Page,
) (*query.Result[*entity.RecordHistory], error) {
	q := r.db.WithContext(ctx).
		Model(&model.RecordHistoryModel{}).
		Where("owner_id = ? AND kind = ?", ownerID, string(kind))
	q = applyHistoryFilter(q, filter)

	q, meta, err := paginate(q, page)
	if err != nil {
		return nil, err
	}

	var historyModels []model.RecordHistoryModel
	if err := applyOrder(q, direction).Find(&historyModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.RecordHistory, len(historyModels))
	for i, hm := range historyModels {
		entries[i] = hm.ToEntity()
	}

	return query.NewResult(meta, entries), nil
}

// applyHistoryFilter mirrors applyFilter for the history table. Snapshots
// carry no updated_at column, so both date ranges resolve against the
// snapshot timestamp.
func applyHistoryFilter(q *gorm.DB, filter query.Filter) *gorm.DB {
	if filter.Name != "" {
		if q.Dialector.Name() == "sqlite" {
			q = q.Where("instr(name, ?) > 0", filter.Name)
		} else {
			q = q.Where("strpos(name, ?) > 0", filter.Name)
		}
	}
	if filter.Value != nil {
		q = q.Where("value = ?", *filter.Value)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if lo, hi, ok := filter.CreatedAt.Bounds(); ok {
		q = q.Where("created_at BETWEEN ? AND ?", lo, hi)
	}
	if lo, hi, ok := filter.UpdatedAt.Bounds(); ok {
		q = q.Where("created_at BETWEEN ? AND ?", lo, hi)
	}
	return q
}
