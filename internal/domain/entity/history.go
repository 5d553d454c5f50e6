// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecordHistory is an immutable snapshot of a Record taken at the moment an
// edit took effect, capturing the pre-update field values. History rows are
// append-only: they are never updated or individually deleted, only
// bulk-deleted when the parent record is deleted. No history exists for a
// record that has never been edited.
type RecordHistory struct {
	ID          uuid.UUID
	RecordID    uuid.UUID
	OwnerID     uuid.UUID
	Kind        RecordKind
	Name        string
	Value       int64
	Description string
	CategoryID  *uuid.UUID
	CreatedAt   time.Time // The moment the edit that produced this snapshot took effect
}

// NewRecordHistory snapshots the current state of a record before it is mutated.
func NewRecordHistory(record *Record) *RecordHistory {
	return &RecordHistory{
		ID:          uuid.New(),
		RecordID:    record.ID,
		OwnerID:     record.OwnerID,
		Kind:        record.Kind,
		Name:        record.Name,
		Value:       record.Value,
		Description: record.Description,
		CategoryID:  record.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
}

// FilterName returns the snapshotted name used by substring filtering.
func (h *RecordHistory) FilterName() string { return h.Name }

// FilterValue returns the snapshotted value in minor units.
func (h *RecordHistory) FilterValue() int64 { return h.Value }

// FilterCategoryID returns the snapshotted category reference.
func (h *RecordHistory) FilterCategoryID() *uuid.UUID { return h.CategoryID }

// FilterCreatedAt returns the snapshot timestamp.
func (h *RecordHistory) FilterCreatedAt() time.Time { return h.CreatedAt }

// FilterUpdatedAt returns the snapshot timestamp; history rows are immutable
// so creation and last update coincide.
func (h *RecordHistory) FilterUpdatedAt() time.Time { return h.CreatedAt }

// FilterID returns the identifier used as the deterministic sort tie-break.
func (h *RecordHistory) FilterID() uuid.UUID { return h.ID }
