// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/domain/entity"
)

// RecordModel represents the records table in the database. Incomes and
// expenses share the table, discriminated by the kind column.
type RecordModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind        string     `gorm:"type:varchar(10);not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Value       int64      `gorm:"not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the RecordModel.
func (RecordModel) TableName() string {
	return "records"
}

// ToEntity converts a RecordModel to a domain Record entity.
func (m *RecordModel) ToEntity() *entity.Record {
	return &entity.Record{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Kind:        entity.RecordKind(m.Kind),
		Name:        m.Name,
		Value:       m.Value,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RecordFromEntity creates a RecordModel from a domain Record entity.
func RecordFromEntity(record *entity.Record) *RecordModel {
	return &RecordModel{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Kind:        string(record.Kind),
		Name:        record.Name,
		Value:       record.Value,
		Description: record.Description,
		CategoryID:  record.CategoryID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
