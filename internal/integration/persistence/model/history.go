// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/domain/entity"
)

// RecordHistoryModel represents the record_history table in the database.
// Rows are written once and only ever removed in bulk when their parent
// record is deleted.
type RecordHistoryModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecordID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind        string     `gorm:"type:varchar(10);not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Value       int64      `gorm:"not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the RecordHistoryModel.
func (RecordHistoryModel) TableName() string {
	return "record_history"
}

// ToEntity converts a RecordHistoryModel to a domain RecordHistory entity.
func (m *RecordHistoryModel) ToEntity() *entity.RecordHistory {
	return &entity.RecordHistory{
		ID:          m.ID,
		RecordID:    m.RecordID,
		OwnerID:     m.OwnerID,
		Kind:        entity.RecordKind(m.Kind),
		Name:        m.Name,
		Value:       m.Value,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
	}
}

// RecordHistoryFromEntity creates a RecordHistoryModel from a domain RecordHistory entity.
func RecordHistoryFromEntity(history *entity.RecordHistory) *RecordHistoryModel {
	return &RecordHistoryModel{
		ID:          history.ID,
		RecordID:    history.RecordID,
		OwnerID:     history.OwnerID,
		Kind:        string(history.Kind),
		Name:        history.Name,
		Value:       history.Value,
		Description: history.Description,
		CategoryID:  history.CategoryID,
		CreatedAt:   history.CreatedAt,
	}
}
