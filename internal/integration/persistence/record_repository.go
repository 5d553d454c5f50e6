package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/persistence/model"
)

// recordRepository implements the adapter.RecordRepository interface over the
// shared records table. Income and expense rows live side by side and every
// query is discriminated by the kind column.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) adapter.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// Create creates a new record in the database.
func (r *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	recordModel := model.RecordFromEntity(record)
	return r.db.WithContext(ctx).Create(recordModel).Error
}

// FindByID retrieves a record by its ID.
func (r *recordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	var recordModel model.RecordModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecordNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// FindByFilter retrieves one page of the owner's records of the given kind.
func (r *recordRepository) FindByFilter(
	ctx context.Context,
	ownerID uuid.UUID,
	kind entity.RecordKind,
	filter query.Filter,
	direction query.Direction,
	page query.Page,
) (*query.Result[*entity.Record], error) {
	q := r.db.WithContext(ctx).
		Model(&model.RecordModel{}).
		Where("owner_id = ? AND kind = ?", ownerID, string(kind))
	q = applyFilter(q, filter)

	q, meta, err := paginate(q, page)
	if err != nil {
		return nil, err
	}

	var recordModels []model.RecordModel
	if err := applyOrder(q, direction).Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.Record, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}

	return query.NewResult(meta, records), nil
}

// FindAllByOwner retrieves every record of the owner and kind.
func (r *recordRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, kind entity.RecordKind) ([]*entity.Record, error) {
	var recordModels []model.RecordModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, string(kind)).
		Order("created_at DESC, id ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.Record, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}
	return records, nil
}

// Update persists the mutated record and appends the pre-update snapshot in
// the same transaction.
func (r *recordRepository) Update(ctx context.Context, record *entity.Record, snapshot *entity.RecordHistory) error {
	recordModel := model.RecordFromEntity(record)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecordModel{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"name":        recordModel.Name,
				"value":       recordModel.Value,
				"description": recordModel.Description,
				"category_id": recordModel.CategoryID,
				"updated_at":  recordModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRecordNotFound
		}
		return tx.Create(model.RecordHistoryFromEntity(snapshot)).Error
	})
}

// Delete removes a record and its history trail in one transaction.
func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RecordHistoryModel{}, "record_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.RecordModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRecordNotFound
		}
		return nil
	})
}

// DetachCategory clears the category reference on all records and history
// rows of the owner that point at the category.
func (r *recordRepository) DetachCategory(ctx context.Context, categoryID, ownerID uuid.UUID) (int64, error) {
	var detached int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecordModel{}).
			Where("category_id = ? AND owner_id = ?", categoryID, ownerID).
			Update("category_id", nil)
		if result.Error != nil {
			return result.Error
		}
		detached = result.RowsAffected

		return tx.Model(&model.RecordHistoryModel{}).
			Where("category_id = ? AND owner_id = ?", categoryID, ownerID).
			Update("category_id", nil).Error
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}
