// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind discriminates income records from expense records.
type RecordKind string

const (
	RecordKindIncome  RecordKind = "income"
	RecordKindExpense RecordKind = "expense"
)

// MaxRecordNameLength is the maximum allowed length for record names.
const MaxRecordNameLength = 255

// Record represents a single income or expense entry. Value is stored in
// minor currency units (cents) and is never negative.
type Record struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        RecordKind
	Name        string
	Value       int64
	Description string
	CategoryID  *uuid.UUID // Optional, records may be uncategorized
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecord creates a new Record entity.
func NewRecord(
	ownerID uuid.UUID,
	kind RecordKind,
	name string,
	value int64,
	description string,
	categoryID *uuid.UUID,
) *Record {
	now := time.Now().UTC()

	return &Record{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Kind:        kind,
		Name:        name,
		Value:       value,
		Description: description,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FilterName returns the name used by substring filtering.
func (r *Record) FilterName() string { return r.Name }

// FilterValue returns the monetary value in minor units.
func (r *Record) FilterValue() int64 { return r.Value }

// FilterCategoryID returns the category reference, nil when uncategorized.
func (r *Record) FilterCategoryID() *uuid.UUID { return r.CategoryID }

// FilterCreatedAt returns the creation timestamp used by date filtering and sorting.
func (r *Record) FilterCreatedAt() time.Time { return r.CreatedAt }

// FilterUpdatedAt returns the last-update timestamp used by date filtering.
func (r *Record) FilterUpdatedAt() time.Time { return r.UpdatedAt }

// FilterID returns the identifier used as the deterministic sort tie-break.
func (r *Record) FilterID() uuid.UUID { return r.ID }
