// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// Category groups income and expense records for a single owner.
// Category names are unique within an owner's records; uniqueness is
// enforced in the application layer before creation.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name, description string, ownerID uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FilterName returns the name used by substring filtering.
func (c *Category) FilterName() string { return c.Name }

// FilterValue returns zero; categories carry no monetary value.
func (c *Category) FilterValue() int64 { return 0 }

// FilterCategoryID returns nil; categories do not reference other categories.
func (c *Category) FilterCategoryID() *uuid.UUID { return nil }

// FilterCreatedAt returns the creation timestamp used by date filtering and sorting.
func (c *Category) FilterCreatedAt() time.Time { return c.CreatedAt }

// FilterUpdatedAt returns the last-update timestamp used by date filtering.
func (c *Category) FilterUpdatedAt() time.Time { return c.UpdatedAt }

// FilterID returns the identifier used as the deterministic sort tie-break.
func (c *Category) FilterID() uuid.UUID { return c.ID }
