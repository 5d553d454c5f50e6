// Package memory implements the repository interfaces on plain in-process
// maps. It backs the single-user installation mode and the contract tests
// that hold both storage backends to the same behavior.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/domain/entity"
)

// refreshToken is the in-memory counterpart of a refresh token row.
type refreshToken struct {
	userID      uuid.UUID
	invalidated bool
	expiresAt   time.Time
}

// Store holds all collections behind one lock. Repositories created from the
// same Store share state, so a category delete observes the records written
// through the record repository.
type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*entity.User
	categories map[uuid.UUID]*entity.Category
	records    map[uuid.UUID]*entity.Record
	history    map[uuid.UUID]*entity.RecordHistory
	tokens     map[string]*refreshToken
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]*entity.User),
		categories: make(map[uuid.UUID]*entity.Category),
		records:    make(map[uuid.UUID]*entity.Record),
		history:    make(map[uuid.UUID]*entity.RecordHistory),
		tokens:     make(map[string]*refreshToken),
	}
}

// Entities are copied on the way in and out so callers can never mutate
// stored state through a retained pointer.

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneCategory(cat *entity.Category) *entity.Category {
	c := *cat
	return &c
}

func cloneRecord(r *entity.Record) *entity.Record {
	c := *r
	if r.CategoryID != nil {
		id := *r.CategoryID
		c.CategoryID = &id
	}
	return &c
}

func cloneHistory(h *entity.RecordHistory) *entity.RecordHistory {
	c := *h
	if h.CategoryID != nil {
		id := *h.CategoryID
		c.CategoryID = &id
	}
	return &c
}
